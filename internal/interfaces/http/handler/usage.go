package handler

import (
	"github.com/gin-gonic/gin"

	"novel-studio-api/internal/application/quota"
	"novel-studio-api/internal/domain/entity"
	"novel-studio-api/internal/domain/repository"
	"novel-studio-api/internal/interfaces/http/dto"
)

// UsageHandler 用量统计处理器
type UsageHandler struct {
	sessions repository.SessionStore
	recorder *quota.Recorder
}

// NewUsageHandler 创建用量统计处理器
func NewUsageHandler(sessions repository.SessionStore, recorder *quota.Recorder) *UsageHandler {
	return &UsageHandler{sessions: sessions, recorder: recorder}
}

// Get 查看会话用量与直近一次调用摘要
// GET /v1/usage
func (h *UsageHandler) Get(c *gin.Context) {
	userName := currentUser(c)

	var resp dto.UsageResponse
	err := h.sessions.Update(c.Request.Context(), userName, func(sess *entity.Session) error {
		// 读取前先做日期翻转
		h.recorder.Refresh(sess)

		resp = dto.UsageResponse{
			DailyRequests: sess.Usage.DailyRequests,
			DailyTokens:   sess.Usage.DailyTokens,
			TotalRequests: sess.Usage.TotalRequests,
			TotalTokens:   sess.Usage.TotalTokens,
			History:       append([]entity.UsageRecord(nil), sess.Usage.History...),
			LastCall:      dto.NewLastCallView(sess.LastCall),
		}
		return nil
	})
	if err != nil {
		writeError(c, err)
		return
	}

	dto.Success(c, resp)
}
