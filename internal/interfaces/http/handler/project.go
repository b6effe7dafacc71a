package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"novel-studio-api/internal/domain/entity"
	"novel-studio-api/internal/domain/repository"
	"novel-studio-api/internal/interfaces/http/dto"
	"novel-studio-api/pkg/errors"
	"novel-studio-api/pkg/logger"
)

// ProjectHandler 项目处理器
type ProjectHandler struct {
	projects repository.ProjectStore
	sessions repository.SessionStore
}

// NewProjectHandler 创建项目处理器
func NewProjectHandler(projects repository.ProjectStore, sessions repository.SessionStore) *ProjectHandler {
	return &ProjectHandler{projects: projects, sessions: sessions}
}

// List 列出用户的项目
// GET /v1/projects
func (h *ProjectHandler) List(c *gin.Context) {
	userName := currentUser(c)

	names, err := h.projects.List(c.Request.Context(), userName)
	if err != nil {
		writeError(c, err)
		return
	}

	var active string
	_ = h.sessions.View(c.Request.Context(), userName, func(sess *entity.Session) error {
		active = sess.ActiveProject
		return nil
	})

	dto.Success(c, dto.ProjectListResponse{Projects: names, Active: active})
}

// Create 创建项目并设为当前活动项目
// POST /v1/projects
func (h *ProjectHandler) Create(c *gin.Context) {
	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(c, errors.New(errors.CodeValidationFailed, "project name is required"))
		return
	}

	userName := currentUser(c)
	p, err := h.projects.Create(c.Request.Context(), userName, req.Name)
	if err != nil {
		writeError(c, err)
		return
	}

	err = h.sessions.Update(c.Request.Context(), userName, func(sess *entity.Session) error {
		sess.ActiveProject = req.Name
		return nil
	})
	if err != nil {
		writeError(c, err)
		return
	}

	logger.Info(c.Request.Context(), "project created", "project", req.Name)
	dto.Created(c, dto.NewProjectView(req.Name, p))
}

// Get 查看项目详情
// GET /v1/projects/:name
func (h *ProjectHandler) Get(c *gin.Context) {
	userName := currentUser(c)
	name := c.Param("name")

	p, err := h.projects.Get(c.Request.Context(), userName, name)
	if err != nil {
		writeError(c, err)
		return
	}

	dto.Success(c, dto.NewProjectView(name, p))
}

// Update 更新项目基础字段
// PATCH /v1/projects/:name
func (h *ProjectHandler) Update(c *gin.Context) {
	var req dto.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	userName := currentUser(c)
	name := c.Param("name")

	err := h.projects.Update(c.Request.Context(), userName, name, func(p *entity.Project) error {
		if req.Synopsis != nil {
			p.Synopsis = *req.Synopsis
		}
		if req.WorldSetting != nil {
			p.WorldSetting = *req.WorldSetting
		}
		if req.PlotOutline != nil {
			p.PlotOutline = *req.PlotOutline
		}
		if req.Genre != nil {
			p.Genre = *req.Genre
		}
		if req.TargetAudience != nil {
			p.TargetAudience = *req.TargetAudience
		}
		if req.Theme != nil {
			p.Theme = *req.Theme
		}
		return nil
	})
	if err != nil {
		writeError(c, err)
		return
	}

	p, err := h.projects.Get(c.Request.Context(), userName, name)
	if err != nil {
		writeError(c, err)
		return
	}
	dto.Success(c, dto.NewProjectView(name, p))
}

// Delete 删除项目
// DELETE /v1/projects/:name
func (h *ProjectHandler) Delete(c *gin.Context) {
	userName := currentUser(c)
	name := c.Param("name")

	if err := h.projects.Delete(c.Request.Context(), userName, name); err != nil {
		writeError(c, err)
		return
	}

	// 删除的是活动项目时清空会话上的选择
	_ = h.sessions.Update(c.Request.Context(), userName, func(sess *entity.Session) error {
		if sess.ActiveProject == name {
			sess.ActiveProject = ""
		}
		return nil
	})

	logger.Info(c.Request.Context(), "project deleted", "project", name)
	dto.NoContent(c)
}

// Select 切换当前活动项目
// PUT /v1/projects/:name/select
func (h *ProjectHandler) Select(c *gin.Context) {
	userName := currentUser(c)
	name := c.Param("name")

	if _, err := h.projects.Get(c.Request.Context(), userName, name); err != nil {
		writeError(c, err)
		return
	}

	err := h.sessions.Update(c.Request.Context(), userName, func(sess *entity.Session) error {
		sess.ActiveProject = name
		return nil
	})
	if err != nil {
		writeError(c, err)
		return
	}

	dto.Success(c, gin.H{"active": name})
}

// SetWritingMode 设置执笔模式
// PUT /v1/projects/:name/writing-mode
func (h *ProjectHandler) SetWritingMode(c *gin.Context) {
	var req dto.SetWritingModeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	mode := entity.WritingMode(req.Mode)
	if !entity.ValidWritingMode(mode) {
		writeError(c, errors.New(errors.CodeValidationFailed, "invalid writing mode").
			WithDetail(req.Mode))
		return
	}

	userName := currentUser(c)
	name := c.Param("name")

	err := h.projects.Update(c.Request.Context(), userName, name, func(p *entity.Project) error {
		p.WritingMode = mode
		return nil
	})
	if err != nil {
		writeError(c, err)
		return
	}

	dto.Success(c, gin.H{"writing_mode": string(mode)})
}
