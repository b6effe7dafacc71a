package dto

// RegisterRequest 注册请求
type RegisterRequest struct {
	UserName string `json:"user_name" binding:"required,min=1,max=64"`
	Password string `json:"password" binding:"required,min=6,max=128"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	UserName string `json:"user_name" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse 认证响应
type AuthResponse struct {
	UserName string `json:"user_name"`
	Token    string `json:"token"`
}

// ProfileResponse 当前用户信息
type ProfileResponse struct {
	UserName  string `json:"user_name"`
	CreatedAt string `json:"created_at"`
}
