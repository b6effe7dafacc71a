package handler

import (
	"github.com/gin-gonic/gin"

	"novel-studio-api/internal/application/story"
	"novel-studio-api/internal/domain/entity"
	"novel-studio-api/internal/domain/repository"
	"novel-studio-api/internal/interfaces/http/dto"
)

// GenerateHandler 生成处理器
type GenerateHandler struct {
	service  *story.Service
	projects repository.ProjectStore
}

// NewGenerateHandler 创建生成处理器
func NewGenerateHandler(service *story.Service, projects repository.ProjectStore) *GenerateHandler {
	return &GenerateHandler{service: service, projects: projects}
}

func generationResponse(r *story.GenerationResult) dto.GenerationResponse {
	return dto.GenerationResponse{
		Text:           r.Text,
		Model:          r.Model,
		PromptTokens:   r.PromptTokens,
		ResponseTokens: r.ResponseTokens,
		TotalTokens:    r.PromptTokens + r.ResponseTokens,
	}
}

// Synopsis 生成梗概
// POST /v1/projects/:name/generate/synopsis
func (h *GenerateHandler) Synopsis(c *gin.Context) {
	var req dto.GenerateSynopsisRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			dto.BadRequest(c, "invalid request body: "+err.Error())
			return
		}
	}

	result, err := h.service.GenerateSynopsis(c.Request.Context(), currentUser(c), c.Param("name"),
		story.SynopsisParams{CustomElements: req.CustomElements})
	if err != nil {
		writeError(c, err)
		return
	}
	dto.Success(c, generationResponse(result))
}

// Character 生成登场人物设定
// POST /v1/projects/:name/generate/character
func (h *GenerateHandler) Character(c *gin.Context) {
	var req dto.GenerateCharacterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	result, err := h.service.GenerateCharacter(c.Request.Context(), currentUser(c), c.Param("name"),
		story.CharacterParams{
			Name:    req.Name,
			Role:    entity.CharacterRole(req.Role),
			Details: req.Details,
		})
	if err != nil {
		writeError(c, err)
		return
	}
	dto.Success(c, generationResponse(result))
}

// World 生成世界观
// POST /v1/projects/:name/generate/world
func (h *GenerateHandler) World(c *gin.Context) {
	var req dto.GenerateWorldRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			dto.BadRequest(c, "invalid request body: "+err.Error())
			return
		}
	}

	result, err := h.service.GenerateWorldSetting(c.Request.Context(), currentUser(c), c.Param("name"),
		story.WorldParams{Elements: req.Elements})
	if err != nil {
		writeError(c, err)
		return
	}
	dto.Success(c, generationResponse(result))
}

// Chapter 生成单章
// POST /v1/projects/:name/generate/chapter
func (h *GenerateHandler) Chapter(c *gin.Context) {
	var req dto.GenerateChapterRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			dto.BadRequest(c, "invalid request body: "+err.Error())
			return
		}
	}

	result, err := h.service.GenerateChapter(c.Request.Context(), currentUser(c), c.Param("name"),
		story.ChapterParams{
			ChapterName:  req.ChapterName,
			Plot:         req.Plot,
			TargetLength: req.TargetLength,
			Style:        req.Style,
		})
	if err != nil {
		writeError(c, err)
		return
	}
	dto.Success(c, generationResponse(result))
}

// FullStory 生成整部作品
// POST /v1/projects/:name/generate/full-story
func (h *GenerateHandler) FullStory(c *gin.Context) {
	var req dto.GenerateFullStoryRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			dto.BadRequest(c, "invalid request body: "+err.Error())
			return
		}
	}

	result, err := h.service.GenerateFullStory(c.Request.Context(), currentUser(c), c.Param("name"),
		story.FullStoryParams{
			TargetLength: req.TargetLength,
			ChapterCount: req.ChapterCount,
			Style:        req.Style,
		})
	if err != nil {
		writeError(c, err)
		return
	}
	dto.Success(c, generationResponse(result))
}

// Theme 生成企划主题
// POST /v1/projects/:name/generate/theme
func (h *GenerateHandler) Theme(c *gin.Context) {
	var req dto.GenerateThemeRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			dto.BadRequest(c, "invalid request body: "+err.Error())
			return
		}
	}

	result, err := h.service.GenerateTheme(c.Request.Context(), currentUser(c), c.Param("name"),
		story.ThemeParams{
			Genre:    req.Genre,
			Audience: req.Audience,
			Tone:     req.Tone,
		})
	if err != nil {
		writeError(c, err)
		return
	}
	dto.Success(c, generationResponse(result))
}

// Modify 按指示修改一段内容，结果不写回项目
// POST /v1/modify
func (h *GenerateHandler) Modify(c *gin.Context) {
	var req dto.ModifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	result, err := h.service.Modify(c.Request.Context(), currentUser(c),
		req.Content, req.Instruction, req.ContentLabel)
	if err != nil {
		writeError(c, err)
		return
	}
	dto.Success(c, generationResponse(result))
}

// Quality 对梗概做启发式质量打分，不调用任何外部服务
// POST /v1/projects/:name/quality
func (h *GenerateHandler) Quality(c *gin.Context) {
	var req dto.QualityRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			dto.BadRequest(c, "invalid request body: "+err.Error())
			return
		}
	}

	synopsis := req.Synopsis
	if synopsis == "" {
		p, err := h.projects.Get(c.Request.Context(), currentUser(c), c.Param("name"))
		if err != nil {
			writeError(c, err)
			return
		}
		synopsis = p.Synopsis
	}

	dto.Success(c, dto.QualityResponse{Score: story.Score(synopsis)})
}

// Diagnose 对作品做编辑视角的综合诊断
// POST /v1/projects/:name/diagnosis
func (h *GenerateHandler) Diagnose(c *gin.Context) {
	result, err := h.service.Diagnose(c.Request.Context(), currentUser(c), c.Param("name"))
	if err != nil {
		writeError(c, err)
		return
	}
	dto.Success(c, generationResponse(result))
}

// Improve 生成作品改进建议
// POST /v1/projects/:name/improvement
func (h *GenerateHandler) Improve(c *gin.Context) {
	result, err := h.service.Improve(c.Request.Context(), currentUser(c), c.Param("name"))
	if err != nil {
		writeError(c, err)
		return
	}
	dto.Success(c, generationResponse(result))
}
