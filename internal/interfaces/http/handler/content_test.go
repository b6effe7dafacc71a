package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"novel-studio-api/internal/domain/entity"
	"novel-studio-api/internal/infrastructure/persistence/memory"
	"novel-studio-api/internal/interfaces/http/middleware"
)

func newContentRouter(projects *memory.ProjectStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewContentHandler(projects)

	r := gin.New()
	// 测试中直接注入用户名，跳过 JWT
	r.Use(func(c *gin.Context) {
		c.Set(middleware.UserNameKey, "alice")
		c.Next()
	})
	r.PUT("/v1/projects/:name/characters/:character", h.UpdateCharacter)
	return r
}

func putJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestUpdateCharacterPartialFields(t *testing.T) {
	projects := memory.NewProjectStore()
	ctx := context.Background()

	if _, err := projects.Create(ctx, "alice", "作品"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	_ = projects.Update(ctx, "alice", "作品", func(p *entity.Project) error {
		p.Characters.Set("勇者", &entity.Character{Role: entity.RoleProtagonist, Details: "詳細設定"})
		return nil
	})

	r := newContentRouter(projects)

	// 只更新役割时详细设定保持不变
	if w := putJSON(r, "/v1/projects/作品/characters/勇者", `{"role":"ライバル"}`); w.Code != http.StatusOK {
		t.Fatalf("role-only update status = %d, body = %s", w.Code, w.Body.String())
	}
	p, _ := projects.Get(ctx, "alice", "作品")
	ch, _ := p.Characters.Get("勇者")
	if ch.Role != entity.RoleRival {
		t.Errorf("role = %q, want %q", ch.Role, entity.RoleRival)
	}
	if ch.Details != "詳細設定" {
		t.Errorf("role-only update wiped details: %q", ch.Details)
	}

	// 只更新详细设定时役割保持不变
	if w := putJSON(r, "/v1/projects/作品/characters/勇者", `{"details":"新詳細"}`); w.Code != http.StatusOK {
		t.Fatalf("details-only update status = %d", w.Code)
	}
	p, _ = projects.Get(ctx, "alice", "作品")
	ch, _ = p.Characters.Get("勇者")
	if ch.Role != entity.RoleRival || ch.Details != "新詳細" {
		t.Errorf("after details update: role = %q, details = %q", ch.Role, ch.Details)
	}
}

func TestUpdateCharacterRejectsInvalidRole(t *testing.T) {
	projects := memory.NewProjectStore()
	ctx := context.Background()

	if _, err := projects.Create(ctx, "alice", "作品"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	_ = projects.Update(ctx, "alice", "作品", func(p *entity.Project) error {
		p.Characters.Set("勇者", &entity.Character{Role: entity.RoleProtagonist, Details: "詳細"})
		return nil
	})

	r := newContentRouter(projects)
	if w := putJSON(r, "/v1/projects/作品/characters/勇者", `{"role":"不明"}`); w.Code != http.StatusBadRequest {
		t.Errorf("invalid role status = %d, want 400", w.Code)
	}

	p, _ := projects.Get(ctx, "alice", "作品")
	ch, _ := p.Characters.Get("勇者")
	if ch.Role != entity.RoleProtagonist || ch.Details != "詳細" {
		t.Error("failed update mutated character")
	}
}
