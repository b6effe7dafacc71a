// Package quota 提供用量记账
package quota

import (
	"time"

	"novel-studio-api/internal/domain/entity"
	"novel-studio-api/pkg/metrics"
)

// Recorder 用量记录器
// 在会话账本上应用日期翻转与记账，并同步 Prometheus 计数
type Recorder struct {
	clock func() time.Time
}

// NewRecorder 创建用量记录器
func NewRecorder() *Recorder {
	return &Recorder{clock: time.Now}
}

// NewRecorderWithClock 创建使用指定时钟的记录器，测试用
func NewRecorderWithClock(clock func() time.Time) *Recorder {
	return &Recorder{clock: clock}
}

// Refresh 应用日期翻转，读取用量前调用
func (r *Recorder) Refresh(sess *entity.Session) {
	if sess == nil || sess.Usage == nil {
		return
	}
	sess.Usage.ResetIfNewDay(r.today())
}

// Record 记录一次成功调用
func (r *Recorder) Record(sess *entity.Session, provider entity.ProviderID, model string, promptTokens, responseTokens int) {
	if sess == nil || sess.Usage == nil {
		return
	}

	now := r.clock()
	sess.Usage.ResetIfNewDay(now.Format(time.DateOnly))
	sess.Usage.Record(model, promptTokens, responseTokens, now)

	metrics.LLMTokensUsed.WithLabelValues(string(provider), model, "prompt").Add(float64(promptTokens))
	metrics.LLMTokensUsed.WithLabelValues(string(provider), model, "completion").Add(float64(responseTokens))
}

func (r *Recorder) today() string {
	return r.clock().Format(time.DateOnly)
}
