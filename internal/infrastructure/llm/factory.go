package llm

import (
	"fmt"
	"sync"

	"novel-studio-api/internal/config"
	"novel-studio-api/internal/domain/entity"
	"novel-studio-api/pkg/errors"
)

// Factory 按配置懒加载各供应商客户端，并发安全
type Factory struct {
	cfg config.LLMConfig

	mu      sync.Mutex
	clients map[entity.ProviderID]Client
}

// NewFactory 创建客户端工厂
func NewFactory(cfg config.LLMConfig) *Factory {
	return &Factory{
		cfg:     cfg,
		clients: make(map[entity.ProviderID]Client),
	}
}

// Resolve 实现 ClientResolver 接口
func (f *Factory) Resolve(provider entity.ProviderID) (Client, error) {
	if !entity.ValidProvider(provider) {
		return nil, errors.New(errors.CodeInvalidParam, "unknown provider").
			WithDetail(string(provider))
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if client, ok := f.clients[provider]; ok {
		return client, nil
	}

	providerCfg, ok := f.cfg.Providers[string(provider)]
	if !ok {
		return nil, errors.New(errors.CodeInternalError,
			fmt.Sprintf("provider %s is not configured", provider))
	}

	var client Client
	switch provider {
	case entity.ProviderGemini:
		client = NewGeminiClient(providerCfg)
	case entity.ProviderOpenAI:
		client = NewOpenAIClient(providerCfg)
	case entity.ProviderClaude:
		client = NewClaudeClient(providerCfg)
	}

	f.clients[provider] = client
	return client, nil
}
