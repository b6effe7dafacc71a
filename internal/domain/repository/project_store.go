// Package repository 定义数据访问接口
package repository

import (
	"context"

	"novel-studio-api/internal/domain/entity"
)

// ProjectStore 项目存储接口，项目按用户隔离、按名称索引
type ProjectStore interface {
	// List 返回用户的项目名列表（按创建顺序）
	List(ctx context.Context, userName string) ([]string, error)
	// Create 创建同名唯一的新项目，冲突时返回 Conflict 错误
	Create(ctx context.Context, userName, projectName string) (*entity.Project, error)
	// Get 返回项目深拷贝快照，不存在时返回 ProjectNotFound 错误
	Get(ctx context.Context, userName, projectName string) (*entity.Project, error)
	// Update 在持锁状态下对项目执行 fn 并透传其错误；fn 应先校验后修改
	Update(ctx context.Context, userName, projectName string, fn func(*entity.Project) error) error
	// Delete 删除项目，不存在时返回 ProjectNotFound 错误
	Delete(ctx context.Context, userName, projectName string) error
	// ExportAll 返回用户全部项目的深拷贝映射
	ExportAll(ctx context.Context, userName string) (map[string]*entity.Project, error)
	// ImportAll 合并导入项目映射，同名项目整体覆盖
	ImportAll(ctx context.Context, userName string, projects map[string]*entity.Project) error
}
