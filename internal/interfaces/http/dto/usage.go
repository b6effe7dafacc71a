package dto

import (
	"time"
	"unicode/utf8"

	"novel-studio-api/internal/domain/entity"
)

// 调用摘要错误信息的展示长度上限
const lastCallErrorDisplayRunes = 50

// LastCallView 直近一次调用摘要视图
type LastCallView struct {
	Model          string    `json:"model"`
	PromptTokens   int       `json:"prompt_tokens"`
	ResponseTokens int       `json:"response_tokens"`
	TotalTokens    int       `json:"total_tokens"`
	Error          string    `json:"error,omitempty"`
	CalledAt       time.Time `json:"called_at"`
}

// UsageResponse 用量统计响应
type UsageResponse struct {
	DailyRequests int                  `json:"daily_requests"`
	DailyTokens   int                  `json:"daily_tokens"`
	TotalRequests int                  `json:"total_requests"`
	TotalTokens   int                  `json:"total_tokens"`
	History       []entity.UsageRecord `json:"history"`
	LastCall      *LastCallView        `json:"last_call,omitempty"`
}

// NewLastCallView 由调用摘要构建视图，过长的错误信息截断展示
func NewLastCallView(s *entity.CallSummary) *LastCallView {
	if s == nil {
		return nil
	}

	errMsg := s.Error
	if runes := []rune(errMsg); utf8.RuneCountInString(errMsg) > lastCallErrorDisplayRunes {
		errMsg = string(runes[:lastCallErrorDisplayRunes]) + "..."
	}

	return &LastCallView{
		Model:          s.Model,
		PromptTokens:   s.PromptTokens,
		ResponseTokens: s.ResponseTokens,
		TotalTokens:    s.TotalTokens,
		Error:          errMsg,
		CalledAt:       s.CalledAt,
	}
}
