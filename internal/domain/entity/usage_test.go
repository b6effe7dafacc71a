package entity

import (
	"fmt"
	"testing"
	"time"
)

func TestUsageLedgerRecord(t *testing.T) {
	l := NewUsageLedger("2026-08-25")
	now := time.Now()

	l.Record("gemini-2.0-flash", 10, 20, now)
	l.Record("gemini-2.0-flash", 5, 5, now)

	if l.DailyRequests != 2 || l.TotalRequests != 2 {
		t.Errorf("requests = %d/%d, want 2/2", l.DailyRequests, l.TotalRequests)
	}
	if l.DailyTokens != 40 || l.TotalTokens != 40 {
		t.Errorf("tokens = %d/%d, want 40/40", l.DailyTokens, l.TotalTokens)
	}
	if len(l.History) != 2 {
		t.Fatalf("history length = %d, want 2", len(l.History))
	}
	if l.History[0].TotalTokens != 30 {
		t.Errorf("first record total = %d, want 30", l.History[0].TotalTokens)
	}
}

func TestUsageLedgerHistoryCap(t *testing.T) {
	l := NewUsageLedger("2026-08-25")
	now := time.Now()

	for i := 0; i < HistoryLimit+20; i++ {
		l.Record(fmt.Sprintf("model-%d", i), 1, 1, now)
	}

	if len(l.History) != HistoryLimit {
		t.Fatalf("history length = %d, want %d", len(l.History), HistoryLimit)
	}
	// 保留的是最近的记录，且维持插入顺序
	if got, want := l.History[0].Model, "model-20"; got != want {
		t.Errorf("oldest kept record = %s, want %s", got, want)
	}
	if got, want := l.History[HistoryLimit-1].Model, fmt.Sprintf("model-%d", HistoryLimit+19); got != want {
		t.Errorf("newest record = %s, want %s", got, want)
	}
	// 累计计数不受淘汰影响
	if l.TotalRequests != HistoryLimit+20 {
		t.Errorf("total requests = %d, want %d", l.TotalRequests, HistoryLimit+20)
	}
}

func TestUsageLedgerResetIfNewDay(t *testing.T) {
	l := NewUsageLedger("2026-08-25")
	l.Record("m", 10, 10, time.Now())

	// 同一天重复调用不产生变化
	l.ResetIfNewDay("2026-08-25")
	if l.DailyRequests != 1 || l.DailyTokens != 20 {
		t.Errorf("same-day reset changed counters: %d/%d", l.DailyRequests, l.DailyTokens)
	}

	l.ResetIfNewDay("2026-08-26")
	if l.DailyRequests != 0 || l.DailyTokens != 0 {
		t.Errorf("daily counters not reset: %d/%d", l.DailyRequests, l.DailyTokens)
	}
	if l.LastResetDate != "2026-08-26" {
		t.Errorf("last reset date = %s, want 2026-08-26", l.LastResetDate)
	}
	// 累计计数与历史不重置
	if l.TotalRequests != 1 || l.TotalTokens != 20 {
		t.Errorf("lifetime counters reset: %d/%d", l.TotalRequests, l.TotalTokens)
	}
	if len(l.History) != 1 {
		t.Errorf("history reset: length = %d", len(l.History))
	}

	// 再次调用幂等
	l.ResetIfNewDay("2026-08-26")
	if l.DailyRequests != 0 || l.TotalRequests != 1 {
		t.Errorf("second reset not idempotent")
	}
}
