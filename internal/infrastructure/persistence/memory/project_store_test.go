package memory

import (
	"context"
	"encoding/json"
	"testing"

	"novel-studio-api/internal/domain/entity"
	"novel-studio-api/pkg/errors"
)

func TestProjectStoreCreateAndConflict(t *testing.T) {
	s := NewProjectStore()
	ctx := context.Background()

	if _, err := s.Create(ctx, "alice", "作品A"); err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err := s.Create(ctx, "alice", "作品A")
	if err == nil {
		t.Fatal("expected conflict on duplicate name")
	}
	if errors.AsAppError(err).Code != errors.CodeConflict {
		t.Errorf("error code = %s, want %s", errors.AsAppError(err).Code, errors.CodeConflict)
	}

	// 不同用户之间互不影响
	if _, err := s.Create(ctx, "bob", "作品A"); err != nil {
		t.Errorf("cross-user create failed: %v", err)
	}
}

func TestProjectStoreListKeepsCreationOrder(t *testing.T) {
	s := NewProjectStore()
	ctx := context.Background()

	names := []string{"c-project", "a-project", "b-project"}
	for _, name := range names {
		if _, err := s.Create(ctx, "alice", name); err != nil {
			t.Fatalf("Create(%s): %v", name, err)
		}
	}

	got, err := s.List(ctx, "alice")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != len(names) {
		t.Fatalf("list length = %d, want %d", len(got), len(names))
	}
	for i := range names {
		if got[i] != names[i] {
			t.Errorf("list[%d] = %s, want %s", i, got[i], names[i])
		}
	}
}

func TestProjectStoreGetReturnsSnapshot(t *testing.T) {
	s := NewProjectStore()
	ctx := context.Background()

	if _, err := s.Create(ctx, "alice", "作品"); err != nil {
		t.Fatalf("Create: %v", err)
	}

	snap, err := s.Get(ctx, "alice", "作品")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	snap.Synopsis = "快照上的修改"

	again, _ := s.Get(ctx, "alice", "作品")
	if again.Synopsis != "" {
		t.Error("snapshot mutation leaked into store")
	}
}

func TestProjectStoreDelete(t *testing.T) {
	s := NewProjectStore()
	ctx := context.Background()

	if _, err := s.Create(ctx, "alice", "作品"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := s.Delete(ctx, "alice", "作品"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if err := s.Delete(ctx, "alice", "作品"); err == nil {
		t.Error("expected not-found on second delete")
	}
	if _, err := s.Get(ctx, "alice", "作品"); err == nil {
		t.Error("deleted project still readable")
	}

	names, _ := s.List(ctx, "alice")
	if len(names) != 0 {
		t.Errorf("list after delete = %v", names)
	}
}

func TestProjectStoreExportImportRoundTrip(t *testing.T) {
	src := NewProjectStore()
	ctx := context.Background()

	if _, err := src.Create(ctx, "alice", "作品A"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	err := src.Update(ctx, "alice", "作品A", func(p *entity.Project) error {
		p.Synopsis = "あらすじ"
		p.Characters.Set("主人公", &entity.Character{Role: entity.RoleProtagonist, Details: "詳細"})
		p.Chapters.Set("第1章", "本文1")
		p.Chapters.Set("第2章", "本文2")
		p.Glossary["魔法"] = &entity.GlossaryTerm{Description: "説明"}
		return nil
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	exported, err := src.ExportAll(ctx, "alice")
	if err != nil {
		t.Fatalf("ExportAll: %v", err)
	}

	// 经由 JSON 往返，模拟导出文件再导入
	data, err := json.Marshal(exported)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var restored map[string]*entity.Project
	if err := json.Unmarshal(data, &restored); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	dst := NewProjectStore()
	if err := dst.ImportAll(ctx, "bob", restored); err != nil {
		t.Fatalf("ImportAll: %v", err)
	}

	p, err := dst.Get(ctx, "bob", "作品A")
	if err != nil {
		t.Fatalf("Get after import: %v", err)
	}
	if p.Synopsis != "あらすじ" {
		t.Errorf("synopsis = %q", p.Synopsis)
	}
	if ch, _ := p.Characters.Get("主人公"); ch == nil || ch.Role != entity.RoleProtagonist {
		t.Error("character lost in round trip")
	}
	if v, _ := p.Chapters.Get("第2章"); v != "本文2" {
		t.Error("chapter lost in round trip")
	}
	first := p.Chapters.Oldest()
	if first == nil || first.Key != "第1章" {
		t.Error("chapter order lost in round trip")
	}
	if p.Glossary["魔法"] == nil {
		t.Error("glossary lost in round trip")
	}
}

func TestProjectStoreImportOverwritesAndBackfills(t *testing.T) {
	s := NewProjectStore()
	ctx := context.Background()

	if _, err := s.Create(ctx, "alice", "作品A"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	_ = s.Update(ctx, "alice", "作品A", func(p *entity.Project) error {
		p.Synopsis = "旧あらすじ"
		return nil
	})

	// 缺少集合字段的旧文档
	var imported entity.Project
	if err := json.Unmarshal([]byte(`{"synopsis":"新あらすじ"}`), &imported); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	err := s.ImportAll(ctx, "alice", map[string]*entity.Project{"作品A": &imported})
	if err != nil {
		t.Fatalf("ImportAll: %v", err)
	}

	p, _ := s.Get(ctx, "alice", "作品A")
	if p.Synopsis != "新あらすじ" {
		t.Errorf("synopsis = %q, want overwritten value", p.Synopsis)
	}
	if p.Glossary == nil || p.Characters == nil || p.Chapters == nil {
		t.Error("collections not backfilled on import")
	}
	if p.WritingMode != entity.WritingModeManual {
		t.Errorf("writing mode = %q, want backfilled manual", p.WritingMode)
	}

	// 同名覆盖不会在列表中产生重复项
	names, _ := s.List(ctx, "alice")
	if len(names) != 1 {
		t.Errorf("list after overwrite import = %v", names)
	}
}
