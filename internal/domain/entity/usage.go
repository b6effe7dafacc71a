// Package entity 定义领域实体
package entity

import "time"

// HistoryLimit 用量历史上限，超出后淘汰最旧记录
const HistoryLimit = 100

// UsageRecord 单次调用的用量记录
type UsageRecord struct {
	Timestamp      time.Time `json:"timestamp"`
	Model          string    `json:"model"`
	PromptTokens   int       `json:"prompt_tokens"`
	ResponseTokens int       `json:"response_tokens"`
	TotalTokens    int       `json:"total_tokens"`
}

// UsageLedger 用量账本
// 日计数在日期翻转时归零，累计计数永不重置
type UsageLedger struct {
	DailyRequests int           `json:"daily_requests"`
	DailyTokens   int           `json:"daily_tokens"`
	LastResetDate string        `json:"last_reset_date"`
	TotalRequests int           `json:"total_requests"`
	TotalTokens   int           `json:"total_tokens"`
	History       []UsageRecord `json:"history"`
}

// NewUsageLedger 创建用量账本
func NewUsageLedger(today string) *UsageLedger {
	return &UsageLedger{
		LastResetDate: today,
		History:       make([]UsageRecord, 0),
	}
}

// Record 记录一次成功调用的用量
func (l *UsageLedger) Record(model string, promptTokens, responseTokens int, now time.Time) {
	total := promptTokens + responseTokens

	l.DailyRequests++
	l.DailyTokens += total
	l.TotalRequests++
	l.TotalTokens += total

	l.History = append(l.History, UsageRecord{
		Timestamp:      now,
		Model:          model,
		PromptTokens:   promptTokens,
		ResponseTokens: responseTokens,
		TotalTokens:    total,
	})

	if len(l.History) > HistoryLimit {
		l.History = l.History[len(l.History)-HistoryLimit:]
	}
}

// ResetIfNewDay 日期翻转时归零日计数
// 同一天内重复调用不产生任何变化
func (l *UsageLedger) ResetIfNewDay(today string) {
	if l.LastResetDate == today {
		return
	}
	l.DailyRequests = 0
	l.DailyTokens = 0
	l.LastResetDate = today
}
