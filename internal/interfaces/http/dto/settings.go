package dto

// ProviderStatus 单个提供商的展示状态，凭证只展示是否已配置
type ProviderStatus struct {
	ID            string `json:"id"`
	DisplayName   string `json:"display_name"`
	Model         string `json:"model"`
	HasCredential bool   `json:"has_credential"`
	Active        bool   `json:"active"`
}

// SettingsResponse 会话设置响应
type SettingsResponse struct {
	Provider  string           `json:"provider"`
	Providers []ProviderStatus `json:"providers"`
}

// SelectProviderRequest 切换提供商请求
type SelectProviderRequest struct {
	Provider string `json:"provider" binding:"required"`
}

// SetCredentialRequest 配置 API Key 请求
type SetCredentialRequest struct {
	Provider string `json:"provider" binding:"required"`
	APIKey   string `json:"api_key" binding:"required"`
}
