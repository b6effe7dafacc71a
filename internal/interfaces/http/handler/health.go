package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"novel-studio-api/internal/config"
)

// HealthHandler 健康检查处理器
type HealthHandler struct {
	cfg       *config.Config
	startedAt time.Time
}

// NewHealthHandler 创建健康检查处理器
func NewHealthHandler(cfg *config.Config) *HealthHandler {
	return &HealthHandler{cfg: cfg, startedAt: time.Now()}
}

// Health 健康检查
// GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":  "ok",
		"app":     h.cfg.App.Name,
		"version": h.cfg.App.Version,
		"uptime":  time.Since(h.startedAt).String(),
	})
}

// Ready 就绪检查
// GET /ready
func (h *HealthHandler) Ready(c *gin.Context) {
	c.JSON(200, gin.H{"status": "ready"})
}

// Live 存活检查
// GET /live
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(200, gin.H{"status": "alive"})
}
