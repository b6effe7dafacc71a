package dto

// GenerateSynopsisRequest 梗概生成请求
type GenerateSynopsisRequest struct {
	CustomElements string `json:"custom_elements"`
}

// GenerateCharacterRequest 人物生成请求
type GenerateCharacterRequest struct {
	Name    string `json:"name" binding:"required"`
	Role    string `json:"role"`
	Details string `json:"details"`
}

// GenerateWorldRequest 世界观生成请求
type GenerateWorldRequest struct {
	Elements string `json:"elements"`
}

// GenerateChapterRequest 章节生成请求
type GenerateChapterRequest struct {
	ChapterName  string `json:"chapter_name"`
	Plot         string `json:"plot"`
	TargetLength string `json:"target_length"`
	Style        string `json:"style"`
}

// GenerateFullStoryRequest 整部作品生成请求
type GenerateFullStoryRequest struct {
	TargetLength string `json:"target_length"`
	ChapterCount string `json:"chapter_count"`
	Style        string `json:"style"`
}

// GenerateThemeRequest 企划主题生成请求
type GenerateThemeRequest struct {
	Genre    string `json:"genre"`
	Audience string `json:"audience"`
	Tone     string `json:"tone"`
}

// ModifyRequest 内容修改请求
type ModifyRequest struct {
	Content      string `json:"content" binding:"required"`
	Instruction  string `json:"instruction" binding:"required"`
	ContentLabel string `json:"content_label"`
}

// GenerationResponse 生成结果响应
type GenerationResponse struct {
	Text           string `json:"text"`
	Model          string `json:"model"`
	PromptTokens   int    `json:"prompt_tokens"`
	ResponseTokens int    `json:"response_tokens"`
	TotalTokens    int    `json:"total_tokens"`
}

// QualityRequest 梗概质量评分请求，缺省时使用项目当前梗概
type QualityRequest struct {
	Synopsis string `json:"synopsis"`
}

// QualityResponse 梗概质量评分响应
type QualityResponse struct {
	Score int `json:"score"`
}
