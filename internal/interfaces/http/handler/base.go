// Package handler 提供 HTTP 请求处理器
package handler

import (
	"github.com/gin-gonic/gin"

	"novel-studio-api/internal/interfaces/http/dto"
	"novel-studio-api/internal/interfaces/http/middleware"
	"novel-studio-api/pkg/errors"
)

// currentUser 从认证中间件注入的上下文中取用户名
func currentUser(c *gin.Context) string {
	return c.GetString(middleware.UserNameKey)
}

// writeError 将业务错误映射为统一错误响应
func writeError(c *gin.Context, err error) {
	appErr := errors.AsAppError(err)
	dto.ErrorWithDetail(c, appErr.HTTPStatus, appErr.Message, &dto.ErrorDetail{
		ErrorCode: string(appErr.Code),
		Details:   appErr.Detail,
	})
}
