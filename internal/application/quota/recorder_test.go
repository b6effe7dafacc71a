package quota

import (
	"testing"
	"time"

	"novel-studio-api/internal/domain/entity"
)

func TestRecorderDayRollover(t *testing.T) {
	now := time.Date(2026, 8, 25, 23, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	r := NewRecorderWithClock(clock)

	sess := entity.NewSession("alice", "2026-08-25")
	r.Record(sess, entity.ProviderGemini, "gemini-2.0-flash", 10, 20)

	if sess.Usage.DailyTokens != 30 || sess.Usage.TotalTokens != 30 {
		t.Fatalf("tokens = %d/%d, want 30/30", sess.Usage.DailyTokens, sess.Usage.TotalTokens)
	}

	// 翻转到第二天后读取，日计数归零
	now = now.Add(2 * time.Hour)
	r.Refresh(sess)

	if sess.Usage.DailyRequests != 0 || sess.Usage.DailyTokens != 0 {
		t.Errorf("daily counters not reset: %d/%d", sess.Usage.DailyRequests, sess.Usage.DailyTokens)
	}
	if sess.Usage.TotalRequests != 1 || sess.Usage.TotalTokens != 30 {
		t.Errorf("lifetime counters changed: %d/%d", sess.Usage.TotalRequests, sess.Usage.TotalTokens)
	}

	// 新的一天记账从零累计
	r.Record(sess, entity.ProviderGemini, "gemini-2.0-flash", 1, 2)
	if sess.Usage.DailyTokens != 3 || sess.Usage.TotalTokens != 33 {
		t.Errorf("post-rollover tokens = %d/%d, want 3/33", sess.Usage.DailyTokens, sess.Usage.TotalTokens)
	}
}

func TestRecorderRefreshSameDayNoop(t *testing.T) {
	now := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)
	r := NewRecorderWithClock(func() time.Time { return now })

	sess := entity.NewSession("bob", "2026-08-25")
	r.Record(sess, entity.ProviderOpenAI, "gpt-4o-mini", 5, 5)

	r.Refresh(sess)
	r.Refresh(sess)

	if sess.Usage.DailyRequests != 1 || sess.Usage.DailyTokens != 10 {
		t.Errorf("same-day refresh changed counters: %d/%d", sess.Usage.DailyRequests, sess.Usage.DailyTokens)
	}
}

func TestRecorderNilSafe(t *testing.T) {
	r := NewRecorder()
	r.Refresh(nil)
	r.Record(nil, entity.ProviderGemini, "m", 1, 1)
}
