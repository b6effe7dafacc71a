package memory

import (
	"context"
	"sync"

	"novel-studio-api/internal/domain/entity"
	"novel-studio-api/internal/domain/repository"
	"novel-studio-api/pkg/errors"
)

// userProjects 单个用户的项目集合
// names 维护创建顺序，导入的新项目追加在末尾
type userProjects struct {
	names    []string
	projects map[string]*entity.Project
}

func newUserProjects() *userProjects {
	return &userProjects{projects: make(map[string]*entity.Project)}
}

// ProjectStore 进程内项目存储，项目按用户隔离
type ProjectStore struct {
	mu    sync.RWMutex
	users map[string]*userProjects
}

var _ repository.ProjectStore = (*ProjectStore)(nil)

// NewProjectStore 创建项目存储
func NewProjectStore() *ProjectStore {
	return &ProjectStore{users: make(map[string]*userProjects)}
}

// List 实现 repository.ProjectStore 接口
func (s *ProjectStore) List(ctx context.Context, userName string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	up, ok := s.users[userName]
	if !ok {
		return []string{}, nil
	}
	names := make([]string, len(up.names))
	copy(names, up.names)
	return names, nil
}

// Create 实现 repository.ProjectStore 接口
func (s *ProjectStore) Create(ctx context.Context, userName, projectName string) (*entity.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	up, ok := s.users[userName]
	if !ok {
		up = newUserProjects()
		s.users[userName] = up
	}

	if _, exists := up.projects[projectName]; exists {
		return nil, errors.New(errors.CodeConflict, "project already exists").WithDetail(projectName)
	}

	p := entity.NewProject()
	up.projects[projectName] = p
	up.names = append(up.names, projectName)
	return p.Clone(), nil
}

// Get 实现 repository.ProjectStore 接口
func (s *ProjectStore) Get(ctx context.Context, userName, projectName string) (*entity.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, err := s.lookup(userName, projectName)
	if err != nil {
		return nil, err
	}
	return p.Clone(), nil
}

// Update 实现 repository.ProjectStore 接口
func (s *ProjectStore) Update(ctx context.Context, userName, projectName string, fn func(*entity.Project) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.lookup(userName, projectName)
	if err != nil {
		return err
	}
	return fn(p)
}

// Delete 实现 repository.ProjectStore 接口
func (s *ProjectStore) Delete(ctx context.Context, userName, projectName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	up, ok := s.users[userName]
	if !ok {
		return errors.ErrProjectNotFound
	}
	if _, exists := up.projects[projectName]; !exists {
		return errors.ErrProjectNotFound
	}

	delete(up.projects, projectName)
	for i, name := range up.names {
		if name == projectName {
			up.names = append(up.names[:i], up.names[i+1:]...)
			break
		}
	}
	return nil
}

// ExportAll 实现 repository.ProjectStore 接口
func (s *ProjectStore) ExportAll(ctx context.Context, userName string) (map[string]*entity.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]*entity.Project)
	up, ok := s.users[userName]
	if !ok {
		return out, nil
	}
	for name, p := range up.projects {
		out[name] = p.Clone()
	}
	return out, nil
}

// ImportAll 实现 repository.ProjectStore 接口
func (s *ProjectStore) ImportAll(ctx context.Context, userName string, projects map[string]*entity.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	up, ok := s.users[userName]
	if !ok {
		up = newUserProjects()
		s.users[userName] = up
	}

	for name, p := range projects {
		p.Normalize()
		if _, exists := up.projects[name]; !exists {
			up.names = append(up.names, name)
		}
		up.projects[name] = p.Clone()
	}
	return nil
}

func (s *ProjectStore) lookup(userName, projectName string) (*entity.Project, error) {
	up, ok := s.users[userName]
	if !ok {
		return nil, errors.ErrProjectNotFound
	}
	p, exists := up.projects[projectName]
	if !exists {
		return nil, errors.ErrProjectNotFound
	}
	return p, nil
}
