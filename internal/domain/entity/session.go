// Package entity 定义领域实体
package entity

import "time"

// ProviderID LLM 提供商标识
type ProviderID string

const (
	ProviderGemini ProviderID = "gemini"
	ProviderOpenAI ProviderID = "openai"
	ProviderClaude ProviderID = "claude"
)

// ValidProvider 检查提供商标识是否合法
func ValidProvider(p ProviderID) bool {
	switch p {
	case ProviderGemini, ProviderOpenAI, ProviderClaude:
		return true
	}
	return false
}

// CallSummary 直近一次 LLM 调用摘要，每次调用成功或失败都会整体覆盖
type CallSummary struct {
	Model          string    `json:"model"`
	PromptTokens   int       `json:"prompt_tokens"`
	ResponseTokens int       `json:"response_tokens"`
	TotalTokens    int       `json:"total_tokens"`
	Error          string    `json:"error,omitempty"`
	CalledAt       time.Time `json:"called_at"`
}

// Session 会话状态
// 每个用户一份，持有提供商选择、凭证、活动项目与用量账本；
// 所有修改都必须经由 SessionStore 持锁执行
type Session struct {
	UserName      string                `json:"user_name"`
	ActiveProject string                `json:"active_project,omitempty"`
	Provider      ProviderID            `json:"provider"`
	Credentials   map[ProviderID]string `json:"-"` // 凭证不参与序列化
	Usage         *UsageLedger          `json:"usage"`
	LastCall      *CallSummary          `json:"last_call,omitempty"`
	CreatedAt     time.Time             `json:"created_at"`
}

// NewSession 创建新会话
func NewSession(userName string, today string) *Session {
	return &Session{
		UserName:    userName,
		Provider:    ProviderGemini,
		Credentials: make(map[ProviderID]string),
		Usage:       NewUsageLedger(today),
		CreatedAt:   time.Now(),
	}
}

// Credential 返回指定提供商的凭证，未设置时为空串
func (s *Session) Credential(p ProviderID) string {
	if s.Credentials == nil {
		return ""
	}
	return s.Credentials[p]
}

// SetCredential 设置指定提供商的凭证
func (s *Session) SetCredential(p ProviderID, secret string) {
	if s.Credentials == nil {
		s.Credentials = make(map[ProviderID]string)
	}
	s.Credentials[p] = secret
}
