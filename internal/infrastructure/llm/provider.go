// Package llm 提供生成式模型供应商客户端与统一调用网关
package llm

import (
	"context"

	"novel-studio-api/internal/domain/entity"
)

// Completion 一次生成调用的结果
// UsageReported 为 false 时表示供应商未返回用量，Token 数需由调用方估算
type Completion struct {
	Text           string
	PromptTokens   int
	ResponseTokens int
	UsageReported  bool
}

// Client 单个供应商的生成客户端
type Client interface {
	// ID 供应商标识
	ID() entity.ProviderID
	// DisplayName 面向用户的供应商名称
	DisplayName() string
	// Model 当前使用的模型名
	Model() string
	// Complete 以给定凭证执行一次文本生成
	Complete(ctx context.Context, apiKey, prompt string) (*Completion, error)
}

// ClientResolver 按供应商标识解析客户端
type ClientResolver interface {
	Resolve(provider entity.ProviderID) (Client, error)
}
