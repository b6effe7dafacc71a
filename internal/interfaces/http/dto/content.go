package dto

// UpsertCharacterRequest 手动新增登场人物请求
type UpsertCharacterRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=64"`
	Role    string `json:"role"`
	Details string `json:"details"`
}

// UpdateCharacterRequest 更新登场人物请求，nil 字段不修改
type UpdateCharacterRequest struct {
	Role    *string `json:"role"`
	Details *string `json:"details"`
}

// UpsertChapterRequest 手动新增或更新章节请求
type UpsertChapterRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=128"`
	Content string `json:"content"`
}

// AddGlossaryTermRequest 新增用语集条目请求
type AddGlossaryTermRequest struct {
	Term        string `json:"term" binding:"required,min=1,max=64"`
	Description string `json:"description"`
}
