package llm

import (
	"context"
	"fmt"
	"time"

	"novel-studio-api/internal/application/quota"
	"novel-studio-api/internal/application/token"
	"novel-studio-api/internal/domain/entity"
	"novel-studio-api/pkg/errors"
	"novel-studio-api/pkg/logger"
	"novel-studio-api/pkg/metrics"
)

// Result 一次网关调用的结果
type Result struct {
	Text           string
	Provider       entity.ProviderID
	Model          string
	PromptTokens   int
	ResponseTokens int
}

// Gateway 统一的 LLM 调用入口
// 负责凭证校验、调用供应商、记账与调用摘要维护。
// Generate 必须在会话锁内调用，对会话的修改才是安全的
type Gateway struct {
	resolver ClientResolver
	recorder *quota.Recorder
}

// NewGateway 创建调用网关
func NewGateway(resolver ClientResolver, recorder *quota.Recorder) *Gateway {
	return &Gateway{resolver: resolver, recorder: recorder}
}

// Generate 以会话当前的提供商与凭证执行一次生成
//
// 凭证缺失时直接报错，不产生任何副作用；
// 供应商调用失败时仅覆盖调用摘要，不记账、不重试；
// 成功时记账并覆盖调用摘要
func (g *Gateway) Generate(ctx context.Context, sess *entity.Session, prompt string) (*Result, error) {
	provider := sess.Provider

	client, err := g.resolver.Resolve(provider)
	if err != nil {
		return nil, err
	}

	apiKey := sess.Credential(provider)
	if apiKey == "" {
		return nil, errors.New(errors.CodeMissingCredential,
			fmt.Sprintf("API key for %s is not configured", client.DisplayName()))
	}

	start := time.Now()
	completion, err := client.Complete(ctx, apiKey, prompt)
	duration := time.Since(start)

	if err != nil {
		sess.LastCall = &entity.CallSummary{
			Model:    client.Model(),
			Error:    err.Error(),
			CalledAt: time.Now(),
		}
		metrics.LLMCallTotal.WithLabelValues(string(provider), client.Model(), "error").Inc()
		logger.Error(ctx, "llm call failed", err,
			"provider", provider,
			"model", client.Model(),
			"duration", duration,
		)
		return nil, errors.Wrap(err, errors.CodeProviderError,
			fmt.Sprintf("%s call failed", client.DisplayName()))
	}

	promptTokens := completion.PromptTokens
	responseTokens := completion.ResponseTokens
	if !completion.UsageReported {
		promptTokens = token.Estimate(prompt)
		responseTokens = token.Estimate(completion.Text)
	}

	g.recorder.Record(sess, provider, client.Model(), promptTokens, responseTokens)
	sess.LastCall = &entity.CallSummary{
		Model:          client.Model(),
		PromptTokens:   promptTokens,
		ResponseTokens: responseTokens,
		TotalTokens:    promptTokens + responseTokens,
		CalledAt:       time.Now(),
	}

	metrics.LLMCallTotal.WithLabelValues(string(provider), client.Model(), "success").Inc()
	metrics.LLMCallDuration.WithLabelValues(string(provider), client.Model()).Observe(duration.Seconds())
	logger.Info(ctx, "llm call completed",
		"provider", provider,
		"model", client.Model(),
		"prompt_tokens", promptTokens,
		"response_tokens", responseTokens,
		"duration", duration,
	)

	return &Result{
		Text:           completion.Text,
		Provider:       provider,
		Model:          client.Model(),
		PromptTokens:   promptTokens,
		ResponseTokens: responseTokens,
	}, nil
}
