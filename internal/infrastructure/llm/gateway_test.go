package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"novel-studio-api/internal/application/quota"
	"novel-studio-api/internal/application/token"
	"novel-studio-api/internal/domain/entity"
	apperrors "novel-studio-api/pkg/errors"
)

type stubClient struct {
	id         entity.ProviderID
	model      string
	completion *Completion
	err        error
	calls      int
}

func (s *stubClient) ID() entity.ProviderID { return s.id }
func (s *stubClient) DisplayName() string   { return string(s.id) }
func (s *stubClient) Model() string         { return s.model }

func (s *stubClient) Complete(ctx context.Context, apiKey, prompt string) (*Completion, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.completion, nil
}

type stubResolver struct {
	client *stubClient
}

func (r *stubResolver) Resolve(provider entity.ProviderID) (Client, error) {
	return r.client, nil
}

func newTestGateway(client *stubClient) *Gateway {
	recorder := quota.NewRecorderWithClock(func() time.Time {
		return time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	})
	return NewGateway(&stubResolver{client: client}, recorder)
}

func newTestSession() *entity.Session {
	return entity.NewSession("alice", "2026-08-25")
}

func TestGatewayMissingCredentialNoSideEffects(t *testing.T) {
	client := &stubClient{id: entity.ProviderGemini, model: "gemini-2.0-flash"}
	g := newTestGateway(client)
	sess := newTestSession()

	_, err := g.Generate(context.Background(), sess, "prompt")
	if err == nil {
		t.Fatal("expected error for missing credential")
	}
	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeMissingCredential {
		t.Errorf("error code = %s, want %s", appErr.Code, apperrors.CodeMissingCredential)
	}

	// 零副作用：不调用、不写摘要、不记账
	if client.calls != 0 {
		t.Errorf("provider called %d times, want 0", client.calls)
	}
	if sess.LastCall != nil {
		t.Error("call summary written despite missing credential")
	}
	if sess.Usage.TotalRequests != 0 {
		t.Error("ledger mutated despite missing credential")
	}
}

func TestGatewayProviderErrorOverwritesSummaryOnly(t *testing.T) {
	client := &stubClient{
		id:    entity.ProviderClaude,
		model: "claude-3-haiku-20240307",
		err:   errors.New("upstream unavailable"),
	}
	g := newTestGateway(client)
	sess := newTestSession()
	sess.Provider = entity.ProviderClaude
	sess.SetCredential(entity.ProviderClaude, "sk-test")

	// 已有的成功摘要会被失败覆盖
	sess.LastCall = &entity.CallSummary{Model: "old", TotalTokens: 99}

	_, err := g.Generate(context.Background(), sess, "prompt")
	if err == nil {
		t.Fatal("expected provider error")
	}
	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeProviderError {
		t.Errorf("error code = %s, want %s", appErr.Code, apperrors.CodeProviderError)
	}

	if client.calls != 1 {
		t.Errorf("provider called %d times, want 1 (no retry)", client.calls)
	}
	if sess.LastCall == nil || sess.LastCall.Error == "" {
		t.Fatal("error summary not written")
	}
	if sess.LastCall.TotalTokens != 0 || sess.LastCall.PromptTokens != 0 {
		t.Error("failed call summary carries token counts")
	}
	if sess.LastCall.Model != client.model {
		t.Errorf("summary model = %s, want %s", sess.LastCall.Model, client.model)
	}
	// 不记账
	if sess.Usage.TotalRequests != 0 || sess.Usage.TotalTokens != 0 {
		t.Error("ledger mutated on provider error")
	}
}

func TestGatewaySuccessWithReportedUsage(t *testing.T) {
	client := &stubClient{
		id:    entity.ProviderOpenAI,
		model: "gpt-4o-mini",
		completion: &Completion{
			Text:           "generated text",
			PromptTokens:   11,
			ResponseTokens: 22,
			UsageReported:  true,
		},
	}
	g := newTestGateway(client)
	sess := newTestSession()
	sess.Provider = entity.ProviderOpenAI
	sess.SetCredential(entity.ProviderOpenAI, "sk-test")

	result, err := g.Generate(context.Background(), sess, "prompt")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if result.PromptTokens != 11 || result.ResponseTokens != 22 {
		t.Errorf("tokens = %d/%d, want 11/22", result.PromptTokens, result.ResponseTokens)
	}
	if sess.Usage.TotalRequests != 1 || sess.Usage.TotalTokens != 33 {
		t.Errorf("ledger = %d requests / %d tokens, want 1/33", sess.Usage.TotalRequests, sess.Usage.TotalTokens)
	}
	if sess.LastCall == nil || sess.LastCall.TotalTokens != 33 || sess.LastCall.Error != "" {
		t.Errorf("unexpected call summary: %+v", sess.LastCall)
	}
}

func TestGatewaySuccessEstimatesUnreportedUsage(t *testing.T) {
	prompt := "hello world"
	text := "生成された本文です"

	client := &stubClient{
		id:    entity.ProviderGemini,
		model: "gemini-2.0-flash",
		completion: &Completion{
			Text:          text,
			UsageReported: false,
		},
	}
	g := newTestGateway(client)
	sess := newTestSession()
	sess.SetCredential(entity.ProviderGemini, "key")

	result, err := g.Generate(context.Background(), sess, prompt)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	wantPrompt := token.Estimate(prompt)
	wantResponse := token.Estimate(text)
	if result.PromptTokens != wantPrompt || result.ResponseTokens != wantResponse {
		t.Errorf("tokens = %d/%d, want estimated %d/%d",
			result.PromptTokens, result.ResponseTokens, wantPrompt, wantResponse)
	}
	if sess.Usage.TotalTokens != wantPrompt+wantResponse {
		t.Errorf("ledger tokens = %d, want %d", sess.Usage.TotalTokens, wantPrompt+wantResponse)
	}
}
