package handler

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"novel-studio-api/internal/domain/entity"
	"novel-studio-api/internal/domain/repository"
	"novel-studio-api/internal/interfaces/http/dto"
	"novel-studio-api/pkg/errors"
)

// ContentHandler 项目内容处理器，负责人物、章节与用语集的手动维护
type ContentHandler struct {
	projects repository.ProjectStore
}

// NewContentHandler 创建项目内容处理器
func NewContentHandler(projects repository.ProjectStore) *ContentHandler {
	return &ContentHandler{projects: projects}
}

// AddCharacter 新增登场人物，同名冲突
// POST /v1/projects/:name/characters
func (h *ContentHandler) AddCharacter(c *gin.Context) {
	var req dto.UpsertCharacterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(c, errors.New(errors.CodeValidationFailed, "character name is required"))
		return
	}

	role := entity.CharacterRole(req.Role)
	if role == "" {
		role = entity.RoleOther
	}
	if !entity.ValidCharacterRole(role) {
		writeError(c, errors.New(errors.CodeValidationFailed, "invalid character role").
			WithDetail(req.Role))
		return
	}

	err := h.projects.Update(c.Request.Context(), currentUser(c), c.Param("name"), func(p *entity.Project) error {
		if _, exists := p.Characters.Get(req.Name); exists {
			return errors.New(errors.CodeConflict, "character already exists").WithDetail(req.Name)
		}
		p.Characters.Set(req.Name, &entity.Character{Role: role, Details: req.Details})
		return nil
	})
	if err != nil {
		writeError(c, err)
		return
	}

	dto.Created(c, gin.H{"name": req.Name})
}

// UpdateCharacter 更新登场人物，未出现的字段保持原值
// PUT /v1/projects/:name/characters/:character
func (h *ContentHandler) UpdateCharacter(c *gin.Context) {
	var req dto.UpdateCharacterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	charName := c.Param("character")
	err := h.projects.Update(c.Request.Context(), currentUser(c), c.Param("name"), func(p *entity.Project) error {
		ch, exists := p.Characters.Get(charName)
		if !exists {
			return errors.ErrCharacterNotFound
		}
		if req.Role != nil {
			role := entity.CharacterRole(*req.Role)
			if !entity.ValidCharacterRole(role) {
				return errors.New(errors.CodeValidationFailed, "invalid character role").
					WithDetail(*req.Role)
			}
			ch.Role = role
		}
		if req.Details != nil {
			ch.Details = *req.Details
		}
		return nil
	})
	if err != nil {
		writeError(c, err)
		return
	}

	dto.Success(c, gin.H{"name": charName})
}

// DeleteCharacter 删除登场人物
// DELETE /v1/projects/:name/characters/:character
func (h *ContentHandler) DeleteCharacter(c *gin.Context) {
	charName := c.Param("character")
	err := h.projects.Update(c.Request.Context(), currentUser(c), c.Param("name"), func(p *entity.Project) error {
		if _, exists := p.Characters.Get(charName); !exists {
			return errors.ErrCharacterNotFound
		}
		p.Characters.Delete(charName)
		return nil
	})
	if err != nil {
		writeError(c, err)
		return
	}

	dto.NoContent(c)
}

// UpsertChapter 写入章节，已存在时整体覆盖，新章节追加在末尾
// PUT /v1/projects/:name/chapters
func (h *ContentHandler) UpsertChapter(c *gin.Context) {
	var req dto.UpsertChapterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(c, errors.New(errors.CodeValidationFailed, "chapter name is required"))
		return
	}

	err := h.projects.Update(c.Request.Context(), currentUser(c), c.Param("name"), func(p *entity.Project) error {
		p.Chapters.Set(req.Name, req.Content)
		return nil
	})
	if err != nil {
		writeError(c, err)
		return
	}

	dto.Success(c, gin.H{"name": req.Name})
}

// DeleteChapter 删除章节
// DELETE /v1/projects/:name/chapters/:chapter
func (h *ContentHandler) DeleteChapter(c *gin.Context) {
	chapterName := c.Param("chapter")
	err := h.projects.Update(c.Request.Context(), currentUser(c), c.Param("name"), func(p *entity.Project) error {
		if _, exists := p.Chapters.Get(chapterName); !exists {
			return errors.ErrChapterNotFound
		}
		p.Chapters.Delete(chapterName)
		return nil
	})
	if err != nil {
		writeError(c, err)
		return
	}

	dto.NoContent(c)
}

// AddGlossaryTerm 新增用语集条目，同名冲突
// POST /v1/projects/:name/glossary
func (h *ContentHandler) AddGlossaryTerm(c *gin.Context) {
	var req dto.AddGlossaryTermRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	req.Term = strings.TrimSpace(req.Term)
	if req.Term == "" {
		writeError(c, errors.New(errors.CodeValidationFailed, "term is required"))
		return
	}

	err := h.projects.Update(c.Request.Context(), currentUser(c), c.Param("name"), func(p *entity.Project) error {
		if _, exists := p.Glossary[req.Term]; exists {
			return errors.New(errors.CodeConflict, "glossary term already exists").WithDetail(req.Term)
		}
		p.Glossary[req.Term] = &entity.GlossaryTerm{
			Description: req.Description,
			AddedAt:     time.Now(),
		}
		return nil
	})
	if err != nil {
		writeError(c, err)
		return
	}

	dto.Created(c, gin.H{"term": req.Term})
}

// DeleteGlossaryTerm 删除用语集条目
// DELETE /v1/projects/:name/glossary/:term
func (h *ContentHandler) DeleteGlossaryTerm(c *gin.Context) {
	term := c.Param("term")
	err := h.projects.Update(c.Request.Context(), currentUser(c), c.Param("name"), func(p *entity.Project) error {
		if _, exists := p.Glossary[term]; !exists {
			return errors.ErrTermNotFound
		}
		delete(p.Glossary, term)
		return nil
	})
	if err != nil {
		writeError(c, err)
		return
	}

	dto.NoContent(c)
}
