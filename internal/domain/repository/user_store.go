// Package repository 定义数据访问接口
package repository

import (
	"context"

	"novel-studio-api/internal/domain/entity"
)

// UserStore 用户存储接口
type UserStore interface {
	// Create 创建用户，用户名冲突时返回 Conflict 错误
	Create(ctx context.Context, user *entity.User) error
	// GetByName 按用户名查询，不存在时返回 nil
	GetByName(ctx context.Context, name string) (*entity.User, error)
}
