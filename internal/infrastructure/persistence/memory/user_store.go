// Package memory 提供进程内存储实现
// 全部状态随进程生命周期存在，不做持久化
package memory

import (
	"context"
	"sync"

	"novel-studio-api/internal/domain/entity"
	"novel-studio-api/internal/domain/repository"
	"novel-studio-api/pkg/errors"
)

// UserStore 进程内用户存储
type UserStore struct {
	mu    sync.RWMutex
	users map[string]*entity.User
}

var _ repository.UserStore = (*UserStore)(nil)

// NewUserStore 创建用户存储
func NewUserStore() *UserStore {
	return &UserStore{users: make(map[string]*entity.User)}
}

// Create 实现 repository.UserStore 接口
func (s *UserStore) Create(ctx context.Context, user *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.Name]; ok {
		return errors.New(errors.CodeConflict, "user already exists").WithDetail(user.Name)
	}
	s.users[user.Name] = user
	return nil
}

// GetByName 实现 repository.UserStore 接口
func (s *UserStore) GetByName(ctx context.Context, name string) (*entity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.users[name], nil
}
