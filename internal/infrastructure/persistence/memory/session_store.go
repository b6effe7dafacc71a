package memory

import (
	"context"
	"sync"
	"time"

	"novel-studio-api/internal/domain/entity"
	"novel-studio-api/internal/domain/repository"
	"novel-studio-api/pkg/metrics"
)

// sessionEntry 会话与其独立锁
// 持锁执行回调，保证同一会话的修改串行化，
// LLM 调用也在锁内执行，同一会话同一时刻最多一次在途
type sessionEntry struct {
	mu   sync.Mutex
	sess *entity.Session
}

// SessionStore 进程内会话存储
type SessionStore struct {
	mu      sync.RWMutex
	entries map[string]*sessionEntry
}

var _ repository.SessionStore = (*SessionStore)(nil)

// NewSessionStore 创建会话存储
func NewSessionStore() *SessionStore {
	return &SessionStore{entries: make(map[string]*sessionEntry)}
}

// GetOrCreate 实现 repository.SessionStore 接口
func (s *SessionStore) GetOrCreate(ctx context.Context, userName string) error {
	s.entry(userName)
	return nil
}

// Update 实现 repository.SessionStore 接口
func (s *SessionStore) Update(ctx context.Context, userName string, fn func(*entity.Session) error) error {
	e := s.entry(userName)
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.sess)
}

// View 实现 repository.SessionStore 接口
func (s *SessionStore) View(ctx context.Context, userName string, fn func(*entity.Session) error) error {
	return s.Update(ctx, userName, fn)
}

func (s *SessionStore) entry(userName string) *sessionEntry {
	s.mu.RLock()
	e, ok := s.entries[userName]
	s.mu.RUnlock()
	if ok {
		return e
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok = s.entries[userName]; ok {
		return e
	}

	e = &sessionEntry{
		sess: entity.NewSession(userName, time.Now().Format(time.DateOnly)),
	}
	s.entries[userName] = e
	metrics.ActiveSessions.Inc()
	return e
}
