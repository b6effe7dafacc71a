// Package entity 定义领域实体
package entity

import (
	"time"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// WritingMode 执笔模式
type WritingMode string

const (
	WritingModeManual WritingMode = "manual"
	WritingModeAI     WritingMode = "ai"
	WritingModeHybrid WritingMode = "hybrid"
)

// ValidWritingMode 检查执笔模式是否合法
func ValidWritingMode(m WritingMode) bool {
	switch m {
	case WritingModeManual, WritingModeAI, WritingModeHybrid:
		return true
	}
	return false
}

// CharacterRole 角色定位，取值与界面选项一致
type CharacterRole string

const (
	RoleProtagonist CharacterRole = "主人公"
	RoleHeroine     CharacterRole = "ヒロイン"
	RoleRival       CharacterRole = "ライバル"
	RoleBestFriend  CharacterRole = "親友"
	RoleMentor      CharacterRole = "師匠"
	RoleAntagonist  CharacterRole = "敵役"
	RoleSupport     CharacterRole = "サポート"
	RoleOther       CharacterRole = "その他"
)

// ValidCharacterRole 检查角色定位是否合法
func ValidCharacterRole(r CharacterRole) bool {
	switch r {
	case RoleProtagonist, RoleHeroine, RoleRival, RoleBestFriend,
		RoleMentor, RoleAntagonist, RoleSupport, RoleOther:
		return true
	}
	return false
}

// Character 登场人物设定
type Character struct {
	Role    CharacterRole `json:"role"`
	Details string        `json:"details"`
}

// GlossaryTerm 用语集条目
type GlossaryTerm struct {
	Description string    `json:"description"`
	AddedAt     time.Time `json:"addedAt"`
}

// Project 创作项目聚合
// 字段 JSON 名即导出文档的字段名，人物与章节保持插入顺序
type Project struct {
	CreatedAt      time.Time                                  `json:"createdAt"`
	Synopsis       string                                     `json:"synopsis"`
	Characters     *orderedmap.OrderedMap[string, *Character] `json:"characters"`
	WorldSetting   string                                     `json:"worldSetting"`
	PlotOutline    string                                     `json:"plotOutline"`
	Chapters       *orderedmap.OrderedMap[string, string]     `json:"chapters"`
	Genre          string                                     `json:"genre"`
	TargetAudience string                                     `json:"targetAudience"`
	Theme          string                                     `json:"theme"`
	WritingMode    WritingMode                                `json:"writingMode"`
	Glossary       map[string]*GlossaryTerm                   `json:"glossary"`
}

// NewProject 创建新项目
func NewProject() *Project {
	return &Project{
		CreatedAt:   time.Now(),
		Characters:  orderedmap.New[string, *Character](),
		Chapters:    orderedmap.New[string, string](),
		Glossary:    make(map[string]*GlossaryTerm),
		WritingMode: WritingModeManual,
	}
}

// Normalize 回填缺失的集合字段
// 导入旧数据时可能缺少 glossary 等字段
func (p *Project) Normalize() {
	if p.Characters == nil {
		p.Characters = orderedmap.New[string, *Character]()
	}
	if p.Chapters == nil {
		p.Chapters = orderedmap.New[string, string]()
	}
	if p.Glossary == nil {
		p.Glossary = make(map[string]*GlossaryTerm)
	}
	if p.WritingMode == "" {
		p.WritingMode = WritingModeManual
	}
}

// CharacterNames 按登场顺序返回最多 limit 个人物名
func (p *Project) CharacterNames(limit int) []string {
	names := make([]string, 0, limit)
	if p.Characters == nil {
		return names
	}
	for pair := p.Characters.Oldest(); pair != nil; pair = pair.Next() {
		if len(names) >= limit {
			break
		}
		names = append(names, pair.Key)
	}
	return names
}

// Clone 深拷贝项目，用于对外返回快照
func (p *Project) Clone() *Project {
	if p == nil {
		return nil
	}

	cp := &Project{
		CreatedAt:      p.CreatedAt,
		Synopsis:       p.Synopsis,
		WorldSetting:   p.WorldSetting,
		PlotOutline:    p.PlotOutline,
		Genre:          p.Genre,
		TargetAudience: p.TargetAudience,
		Theme:          p.Theme,
		WritingMode:    p.WritingMode,
		Characters:     orderedmap.New[string, *Character](),
		Chapters:       orderedmap.New[string, string](),
		Glossary:       make(map[string]*GlossaryTerm, len(p.Glossary)),
	}

	if p.Characters != nil {
		for pair := p.Characters.Oldest(); pair != nil; pair = pair.Next() {
			c := *pair.Value
			cp.Characters.Set(pair.Key, &c)
		}
	}
	if p.Chapters != nil {
		for pair := p.Chapters.Oldest(); pair != nil; pair = pair.Next() {
			cp.Chapters.Set(pair.Key, pair.Value)
		}
	}
	for term, t := range p.Glossary {
		g := *t
		cp.Glossary[term] = &g
	}

	return cp
}
