package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"novel-studio-api/internal/domain/entity"
	"novel-studio-api/internal/domain/repository"
	"novel-studio-api/internal/infrastructure/llm"
	"novel-studio-api/internal/interfaces/http/dto"
	"novel-studio-api/pkg/errors"
	"novel-studio-api/pkg/logger"
)

// 提供商的展示顺序
var providerOrder = []entity.ProviderID{
	entity.ProviderGemini,
	entity.ProviderOpenAI,
	entity.ProviderClaude,
}

// SettingsHandler 会话设置处理器
type SettingsHandler struct {
	sessions repository.SessionStore
	resolver llm.ClientResolver
}

// NewSettingsHandler 创建会话设置处理器
func NewSettingsHandler(sessions repository.SessionStore, resolver llm.ClientResolver) *SettingsHandler {
	return &SettingsHandler{sessions: sessions, resolver: resolver}
}

// Get 查看当前提供商与凭证配置状态
// GET /v1/settings
func (h *SettingsHandler) Get(c *gin.Context) {
	userName := currentUser(c)

	var resp dto.SettingsResponse
	err := h.sessions.View(c.Request.Context(), userName, func(sess *entity.Session) error {
		resp.Provider = string(sess.Provider)
		for _, id := range providerOrder {
			client, err := h.resolver.Resolve(id)
			if err != nil {
				return err
			}
			resp.Providers = append(resp.Providers, dto.ProviderStatus{
				ID:            string(id),
				DisplayName:   client.DisplayName(),
				Model:         client.Model(),
				HasCredential: sess.Credential(id) != "",
				Active:        sess.Provider == id,
			})
		}
		return nil
	})
	if err != nil {
		writeError(c, err)
		return
	}

	dto.Success(c, resp)
}

// SelectProvider 切换当前提供商
// PUT /v1/settings/provider
func (h *SettingsHandler) SelectProvider(c *gin.Context) {
	var req dto.SelectProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	provider := entity.ProviderID(strings.TrimSpace(req.Provider))
	if !entity.ValidProvider(provider) {
		writeError(c, errors.New(errors.CodeValidationFailed, "unknown provider").
			WithDetail(req.Provider))
		return
	}

	userName := currentUser(c)
	err := h.sessions.Update(c.Request.Context(), userName, func(sess *entity.Session) error {
		sess.Provider = provider
		return nil
	})
	if err != nil {
		writeError(c, err)
		return
	}

	logger.Info(c.Request.Context(), "provider selected", "provider", provider)
	dto.Success(c, gin.H{"provider": string(provider)})
}

// SetCredential 配置指定提供商的 API Key
// PUT /v1/settings/credentials
func (h *SettingsHandler) SetCredential(c *gin.Context) {
	var req dto.SetCredentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	provider := entity.ProviderID(strings.TrimSpace(req.Provider))
	if !entity.ValidProvider(provider) {
		writeError(c, errors.New(errors.CodeValidationFailed, "unknown provider").
			WithDetail(req.Provider))
		return
	}
	if strings.TrimSpace(req.APIKey) == "" {
		writeError(c, errors.New(errors.CodeValidationFailed, "api key is required"))
		return
	}

	userName := currentUser(c)
	err := h.sessions.Update(c.Request.Context(), userName, func(sess *entity.Session) error {
		sess.SetCredential(provider, req.APIKey)
		return nil
	})
	if err != nil {
		writeError(c, err)
		return
	}

	// 不回显凭证内容
	logger.Info(c.Request.Context(), "credential configured", "provider", provider)
	dto.Success(c, gin.H{"provider": string(provider), "configured": true})
}
