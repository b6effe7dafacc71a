package dto

import (
	"time"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"novel-studio-api/internal/domain/entity"
)

// CreateProjectRequest 创建项目请求
type CreateProjectRequest struct {
	Name string `json:"name" binding:"required,min=1,max=128"`
}

// ProjectListResponse 项目列表响应
type ProjectListResponse struct {
	Projects []string `json:"projects"`
	Active   string   `json:"active,omitempty"`
}

// ProjectView 项目详情视图，字段名与导出文档一致
type ProjectView struct {
	Name           string                                            `json:"name"`
	CreatedAt      time.Time                                         `json:"createdAt"`
	Synopsis       string                                            `json:"synopsis"`
	Characters     *orderedmap.OrderedMap[string, *entity.Character] `json:"characters"`
	WorldSetting   string                                            `json:"worldSetting"`
	PlotOutline    string                                            `json:"plotOutline"`
	Chapters       *orderedmap.OrderedMap[string, string]            `json:"chapters"`
	Genre          string                                            `json:"genre"`
	TargetAudience string                                            `json:"targetAudience"`
	Theme          string                                            `json:"theme"`
	WritingMode    entity.WritingMode                                `json:"writingMode"`
	Glossary       map[string]*entity.GlossaryTerm                   `json:"glossary"`
}

// NewProjectView 由实体构建项目视图
func NewProjectView(name string, p *entity.Project) *ProjectView {
	return &ProjectView{
		Name:           name,
		CreatedAt:      p.CreatedAt,
		Synopsis:       p.Synopsis,
		Characters:     p.Characters,
		WorldSetting:   p.WorldSetting,
		PlotOutline:    p.PlotOutline,
		Chapters:       p.Chapters,
		Genre:          p.Genre,
		TargetAudience: p.TargetAudience,
		Theme:          p.Theme,
		WritingMode:    p.WritingMode,
		Glossary:       p.Glossary,
	}
}

// UpdateProjectRequest 更新项目基础字段请求，nil 字段不修改
type UpdateProjectRequest struct {
	Synopsis       *string `json:"synopsis"`
	WorldSetting   *string `json:"worldSetting"`
	PlotOutline    *string `json:"plotOutline"`
	Genre          *string `json:"genre"`
	TargetAudience *string `json:"targetAudience"`
	Theme          *string `json:"theme"`
}

// SetWritingModeRequest 设置执笔模式请求
type SetWritingModeRequest struct {
	Mode string `json:"mode" binding:"required"`
}
