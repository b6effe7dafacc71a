package handler

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"novel-studio-api/internal/domain/entity"
	"novel-studio-api/internal/domain/repository"
	"novel-studio-api/internal/interfaces/http/dto"
	"novel-studio-api/pkg/errors"
	"novel-studio-api/pkg/logger"
	"novel-studio-api/pkg/utils"
)

// AuthHandler 认证处理器
type AuthHandler struct {
	users    repository.UserStore
	sessions repository.SessionStore
	jwt      *utils.JWTManager
	tokenTTL time.Duration
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(users repository.UserStore, sessions repository.SessionStore, jwt *utils.JWTManager, tokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		users:    users,
		sessions: sessions,
		jwt:      jwt,
		tokenTTL: tokenTTL,
	}
}

// Register 注册新用户
// POST /v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	req.UserName = strings.TrimSpace(req.UserName)
	if req.UserName == "" {
		dto.BadRequest(c, "user name is required")
		return
	}

	user := &entity.User{Name: req.UserName, CreatedAt: time.Now()}
	if err := user.SetPassword(req.Password); err != nil {
		writeError(c, errors.Wrap(err, errors.CodeInternalError, "failed to hash password"))
		return
	}

	if err := h.users.Create(c.Request.Context(), user); err != nil {
		writeError(c, err)
		return
	}

	token, err := h.jwt.GenerateToken(user.Name, h.tokenTTL)
	if err != nil {
		writeError(c, errors.Wrap(err, errors.CodeInternalError, "failed to issue token"))
		return
	}

	if err := h.sessions.GetOrCreate(c.Request.Context(), user.Name); err != nil {
		writeError(c, err)
		return
	}

	logger.Info(c.Request.Context(), "user registered", "user", user.Name)
	dto.Created(c, dto.AuthResponse{UserName: user.Name, Token: token})
}

// Login 登录
// POST /v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	user, err := h.users.GetByName(c.Request.Context(), req.UserName)
	if err != nil {
		writeError(c, err)
		return
	}
	if user == nil || !user.CheckPassword(req.Password) {
		dto.Unauthorized(c, "invalid user name or password")
		return
	}

	token, err := h.jwt.GenerateToken(user.Name, h.tokenTTL)
	if err != nil {
		writeError(c, errors.Wrap(err, errors.CodeInternalError, "failed to issue token"))
		return
	}

	if err := h.sessions.GetOrCreate(c.Request.Context(), user.Name); err != nil {
		writeError(c, err)
		return
	}

	logger.Info(c.Request.Context(), "user logged in", "user", user.Name)
	dto.Success(c, dto.AuthResponse{UserName: user.Name, Token: token})
}

// Me 返回当前登录用户信息
// GET /v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.users.GetByName(c.Request.Context(), currentUser(c))
	if err != nil {
		writeError(c, err)
		return
	}
	if user == nil {
		dto.Unauthorized(c, "user no longer exists")
		return
	}
	dto.Success(c, dto.ProfileResponse{
		UserName:  user.Name,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	})
}
