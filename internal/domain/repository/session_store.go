// Package repository 定义数据访问接口
package repository

import (
	"context"

	"novel-studio-api/internal/domain/entity"
)

// SessionStore 会话存储接口
// 会话状态只能在 Update/View 的回调内访问，由实现持锁保证隔离；
// 同一会话同一时刻最多一个 LLM 调用在途
type SessionStore interface {
	// GetOrCreate 获取用户会话，不存在时创建
	GetOrCreate(ctx context.Context, userName string) error
	// Update 在持有会话写锁的情况下执行 fn
	Update(ctx context.Context, userName string, fn func(*entity.Session) error) error
	// View 在持有会话读锁的情况下执行 fn，fn 不得修改会话
	View(ctx context.Context, userName string, fn func(*entity.Session) error) error
}
