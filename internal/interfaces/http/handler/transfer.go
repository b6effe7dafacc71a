package handler

import (
	"encoding/json"
	"io"

	"github.com/gin-gonic/gin"

	"novel-studio-api/internal/domain/entity"
	"novel-studio-api/internal/domain/repository"
	"novel-studio-api/internal/interfaces/http/dto"
	"novel-studio-api/pkg/errors"
	"novel-studio-api/pkg/logger"
)

// TransferHandler 项目导入导出处理器
type TransferHandler struct {
	projects repository.ProjectStore
}

// NewTransferHandler 创建导入导出处理器
func NewTransferHandler(projects repository.ProjectStore) *TransferHandler {
	return &TransferHandler{projects: projects}
}

// wrappedDocument 兼容带 projects 包装字段的导入文档
type wrappedDocument struct {
	Projects map[string]*entity.Project `json:"projects"`
}

// Export 导出用户全部项目为 JSON 文档
// 顶层即项目名到项目的映射
// GET /v1/projects/export
func (h *TransferHandler) Export(c *gin.Context) {
	projects, err := h.projects.ExportAll(c.Request.Context(), currentUser(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="novel_projects.json"`)
	c.JSON(200, projects)
}

// Import 导入项目文档，同名项目整体覆盖
// 文档解析失败时不产生任何修改
// POST /v1/projects/import
func (h *TransferHandler) Import(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		writeError(c, errors.Wrap(err, errors.CodeImportFailed, "failed to read import payload"))
		return
	}

	var doc wrappedDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		writeError(c, errors.Wrap(err, errors.CodeImportFailed, "invalid import document"))
		return
	}

	// 无包装字段时按裸映射解析，这也是导出端的格式
	if doc.Projects == nil {
		var bare map[string]*entity.Project
		if err := json.Unmarshal(raw, &bare); err != nil || bare == nil {
			writeError(c, errors.New(errors.CodeImportFailed, "import document has no projects"))
			return
		}
		doc.Projects = bare
	}

	if err := h.projects.ImportAll(c.Request.Context(), currentUser(c), doc.Projects); err != nil {
		writeError(c, err)
		return
	}

	logger.Info(c.Request.Context(), "projects imported", "count", len(doc.Projects))
	dto.Success(c, gin.H{"imported": len(doc.Projects)})
}
