package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"novel-studio-api/internal/domain/entity"
	"novel-studio-api/internal/infrastructure/persistence/memory"
	"novel-studio-api/internal/interfaces/http/middleware"
)

func newTransferRouter(projects *memory.ProjectStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewTransferHandler(projects)

	r := gin.New()
	// 测试中直接注入用户名，跳过 JWT
	r.Use(func(c *gin.Context) {
		c.Set(middleware.UserNameKey, "alice")
		c.Next()
	})
	r.GET("/v1/projects/export", h.Export)
	r.POST("/v1/projects/import", h.Import)
	return r
}

func TestTransferExportImportRoundTrip(t *testing.T) {
	projects := memory.NewProjectStore()
	ctx := context.Background()

	if _, err := projects.Create(ctx, "alice", "作品A"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	_ = projects.Update(ctx, "alice", "作品A", func(p *entity.Project) error {
		p.Synopsis = "あらすじ"
		p.Chapters.Set("第1章", "本文")
		return nil
	})

	r := newTransferRouter(projects)

	// 导出文档顶层就是项目名到项目的映射
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/projects/export", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("export status = %d", w.Code)
	}
	var exported map[string]*entity.Project
	if err := json.Unmarshal(w.Body.Bytes(), &exported); err != nil {
		t.Fatalf("export document is not a bare project mapping: %v", err)
	}
	if exported["作品A"] == nil || exported["作品A"].Synopsis != "あらすじ" {
		t.Fatalf("export top level missing project: %s", w.Body.String())
	}

	// 删除后重新导入
	if err := projects.Delete(ctx, "alice", "作品A"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodPost, "/v1/projects/import", strings.NewReader(w.Body.String()))
	req2.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w2, req2)
	if w2.Code != http.StatusOK {
		t.Fatalf("import status = %d, body = %s", w2.Code, w2.Body.String())
	}

	p, err := projects.Get(ctx, "alice", "作品A")
	if err != nil {
		t.Fatalf("Get after import: %v", err)
	}
	if p.Synopsis != "あらすじ" {
		t.Errorf("synopsis = %q", p.Synopsis)
	}
	if v, _ := p.Chapters.Get("第1章"); v != "本文" {
		t.Errorf("chapter content = %q", v)
	}
}

func TestTransferImportMalformedJSONMutatesNothing(t *testing.T) {
	projects := memory.NewProjectStore()
	ctx := context.Background()

	if _, err := projects.Create(ctx, "alice", "既存"); err != nil {
		t.Fatalf("Create: %v", err)
	}

	r := newTransferRouter(projects)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/projects/import", strings.NewReader(`{"projects": {bad json`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("import status = %d, want 400", w.Code)
	}
	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}

	names, _ := projects.List(ctx, "alice")
	if len(names) != 1 || names[0] != "既存" {
		t.Errorf("project list changed after failed import: %v", names)
	}
}

func TestTransferImportWrappedDocument(t *testing.T) {
	projects := memory.NewProjectStore()
	r := newTransferRouter(projects)

	// 带 projects 包装字段的文档也能导入
	body := `{"projects": {"作品W": {"synopsis": "包装文档"}}}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/projects/import", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("import status = %d, body = %s", w.Code, w.Body.String())
	}
	p, err := projects.Get(context.Background(), "alice", "作品W")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if p.Synopsis != "包装文档" {
		t.Errorf("synopsis = %q", p.Synopsis)
	}
}

func TestTransferImportBareProjectMap(t *testing.T) {
	projects := memory.NewProjectStore()
	r := newTransferRouter(projects)

	// 只含项目映射、无包装字段的文档，与导出端格式一致
	body := `{"作品X": {"synopsis": "裸文档"}}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/projects/import", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("import status = %d, body = %s", w.Code, w.Body.String())
	}

	p, err := projects.Get(context.Background(), "alice", "作品X")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if p.Synopsis != "裸文档" {
		t.Errorf("synopsis = %q", p.Synopsis)
	}
	if p.Glossary == nil {
		t.Error("glossary not backfilled")
	}
}
