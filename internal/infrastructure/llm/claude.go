package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"novel-studio-api/internal/config"
	"novel-studio-api/internal/domain/entity"
)

const anthropicVersion = "2023-06-01"

// ClaudeClient Anthropic Messages 客户端
type ClaudeClient struct {
	baseURL    string
	model      string
	maxTokens  int
	httpClient *http.Client
}

// NewClaudeClient 创建 Claude 客户端
func NewClaudeClient(cfg config.ProviderConfig) *ClaudeClient {
	return &ClaudeClient{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		model:      cfg.Model,
		maxTokens:  cfg.MaxTokens,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// ID 实现 Client 接口
func (c *ClaudeClient) ID() entity.ProviderID { return entity.ProviderClaude }

// DisplayName 实现 Client 接口
func (c *ClaudeClient) DisplayName() string { return "Anthropic Claude" }

// Model 实现 Client 接口
func (c *ClaudeClient) Model() string { return c.model }

type claudeRequest struct {
	Model     string          `json:"model"`
	MaxTokens int             `json:"max_tokens"`
	Messages  []claudeMessage `json:"messages"`
}

type claudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type claudeResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Usage struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Complete 实现 Client 接口
func (c *ClaudeClient) Complete(ctx context.Context, apiKey, prompt string) (*Completion, error) {
	body, err := json.Marshal(claudeRequest{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		Messages:  []claudeMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal claude request: %w", err)
	}

	url := c.baseURL + "/messages"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build claude request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("claude request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read claude response: %w", err)
	}

	var parsed claudeResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("decode claude response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		if parsed.Error != nil && parsed.Error.Message != "" {
			return nil, fmt.Errorf("claude api status %d: %s", resp.StatusCode, parsed.Error.Message)
		}
		return nil, fmt.Errorf("claude api status %d", resp.StatusCode)
	}

	var sb strings.Builder
	for _, block := range parsed.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	text := sb.String()
	if text == "" {
		return nil, fmt.Errorf("claude api returned empty content")
	}

	return &Completion{
		Text:           text,
		PromptTokens:   parsed.Usage.InputTokens,
		ResponseTokens: parsed.Usage.OutputTokens,
		UsageReported:  true,
	}, nil
}
