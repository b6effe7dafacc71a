package entity

import (
	"encoding/json"
	"fmt"
	"testing"
)

func TestProjectNormalizeBackfill(t *testing.T) {
	// 旧文档可能缺少集合字段与执笔模式
	var p Project
	if err := json.Unmarshal([]byte(`{"synopsis":"テスト"}`), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	p.Normalize()

	if p.Characters == nil || p.Glossary == nil || p.Chapters == nil {
		t.Fatal("collections not backfilled")
	}
	if p.WritingMode != WritingModeManual {
		t.Errorf("writing mode = %q, want %q", p.WritingMode, WritingModeManual)
	}
	if p.Synopsis != "テスト" {
		t.Errorf("synopsis lost during normalize: %q", p.Synopsis)
	}
}

func TestProjectChaptersOrderSurvivesJSON(t *testing.T) {
	p := NewProject()
	var want []string
	for i := 1; i <= 10; i++ {
		name := fmt.Sprintf("第%d章", i)
		p.Chapters.Set(name, "本文")
		want = append(want, name)
	}

	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var restored Project
	if err := json.Unmarshal(data, &restored); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	var got []string
	for pair := restored.Chapters.Oldest(); pair != nil; pair = pair.Next() {
		got = append(got, pair.Key)
	}

	if len(got) != len(want) {
		t.Fatalf("chapter count = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("chapter %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestProjectCloneIsDeep(t *testing.T) {
	p := NewProject()
	p.Characters.Set("主人公", &Character{Role: RoleProtagonist, Details: "詳細"})
	p.Chapters.Set("第1章", "本文")
	p.Glossary["魔法"] = &GlossaryTerm{Description: "説明"}

	cp := p.Clone()
	clonedCh, _ := cp.Characters.Get("主人公")
	clonedCh.Details = "変更"
	cp.Chapters.Set("第1章", "変更")
	cp.Glossary["魔法"].Description = "変更"

	if ch, _ := p.Characters.Get("主人公"); ch.Details != "詳細" {
		t.Error("character mutation leaked into original")
	}
	if v, _ := p.Chapters.Get("第1章"); v != "本文" {
		t.Error("chapter mutation leaked into original")
	}
	if p.Glossary["魔法"].Description != "説明" {
		t.Error("glossary mutation leaked into original")
	}
}

func TestProjectCharacterNamesLimitAndOrder(t *testing.T) {
	p := NewProject()
	for i := 0; i < 8; i++ {
		p.Characters.Set(fmt.Sprintf("人物%d", i), &Character{Role: RoleOther})
	}

	got := p.CharacterNames(5)
	if len(got) != 5 {
		t.Fatalf("CharacterNames(5) returned %d names", len(got))
	}
	// 按登场顺序取前 5 名
	for i, name := range got {
		if want := fmt.Sprintf("人物%d", i); name != want {
			t.Errorf("CharacterNames[%d] = %q, want %q", i, name, want)
		}
	}
	if got := len(p.CharacterNames(20)); got != 8 {
		t.Errorf("CharacterNames(20) returned %d names", got)
	}
}

func TestProjectCharacterOrderSurvivesJSON(t *testing.T) {
	p := NewProject()
	var want []string
	for i := 0; i < 6; i++ {
		name := fmt.Sprintf("人物%d", i)
		p.Characters.Set(name, &Character{Role: RoleOther})
		want = append(want, name)
	}

	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var restored Project
	if err := json.Unmarshal(data, &restored); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	var got []string
	for pair := restored.Characters.Oldest(); pair != nil; pair = pair.Next() {
		got = append(got, pair.Key)
	}
	if len(got) != len(want) {
		t.Fatalf("character count = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("character %d = %q, want %q", i, got[i], want[i])
		}
	}
}
