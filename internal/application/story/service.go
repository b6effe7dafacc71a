package story

import (
	"context"
	"strings"

	"novel-studio-api/internal/domain/entity"
	"novel-studio-api/internal/domain/repository"
	"novel-studio-api/internal/infrastructure/llm"
	"novel-studio-api/pkg/errors"
	"novel-studio-api/pkg/metrics"
)

// 整部作品生成结果写回章节表时使用的章节名
const fullStoryChapterLabel = "全体生成結果"

// GenerationResult 一次生成调用的结果
type GenerationResult struct {
	Text           string
	Model          string
	PromptTokens   int
	ResponseTokens int
}

// Service 创作内容生成服务
// 调用网关在会话锁内执行，保证同一会话同一时刻只有一次调用在途；
// 生成成功后再写回项目
type Service struct {
	gateway  *llm.Gateway
	projects repository.ProjectStore
	sessions repository.SessionStore
}

// NewService 创建生成服务
func NewService(gateway *llm.Gateway, projects repository.ProjectStore, sessions repository.SessionStore) *Service {
	return &Service{gateway: gateway, projects: projects, sessions: sessions}
}

// GenerateSynopsis 生成梗概并写回项目
func (s *Service) GenerateSynopsis(ctx context.Context, userName, projectName string, params SynopsisParams) (*GenerationResult, error) {
	p, err := s.projects.Get(ctx, userName, projectName)
	if err != nil {
		return nil, err
	}

	result, err := s.generate(ctx, userName, "synopsis", SynopsisPrompt(p, params))
	if err != nil {
		return nil, err
	}

	err = s.projects.Update(ctx, userName, projectName, func(p *entity.Project) error {
		p.Synopsis = result.Text
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GenerateCharacter 生成人物设定并写回项目
func (s *Service) GenerateCharacter(ctx context.Context, userName, projectName string, params CharacterParams) (*GenerationResult, error) {
	params.Name = strings.TrimSpace(params.Name)
	if params.Name == "" {
		return nil, errors.New(errors.CodeValidationFailed, "character name is required")
	}
	if params.Role == "" {
		params.Role = entity.RoleOther
	}
	if !entity.ValidCharacterRole(params.Role) {
		return nil, errors.New(errors.CodeValidationFailed, "invalid character role").
			WithDetail(string(params.Role))
	}

	p, err := s.projects.Get(ctx, userName, projectName)
	if err != nil {
		return nil, err
	}

	result, err := s.generate(ctx, userName, "character", CharacterPrompt(p, params))
	if err != nil {
		return nil, err
	}

	err = s.projects.Update(ctx, userName, projectName, func(p *entity.Project) error {
		p.Characters.Set(params.Name, &entity.Character{
			Role:    params.Role,
			Details: result.Text,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GenerateWorldSetting 生成世界观并写回项目
func (s *Service) GenerateWorldSetting(ctx context.Context, userName, projectName string, params WorldParams) (*GenerationResult, error) {
	p, err := s.projects.Get(ctx, userName, projectName)
	if err != nil {
		return nil, err
	}

	result, err := s.generate(ctx, userName, "world", WorldSettingPrompt(p, params))
	if err != nil {
		return nil, err
	}

	err = s.projects.Update(ctx, userName, projectName, func(p *entity.Project) error {
		p.WorldSetting = result.Text
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GenerateChapter 生成单章并写回章节表
func (s *Service) GenerateChapter(ctx context.Context, userName, projectName string, params ChapterParams) (*GenerationResult, error) {
	params.applyDefaults()

	p, err := s.projects.Get(ctx, userName, projectName)
	if err != nil {
		return nil, err
	}

	result, err := s.generate(ctx, userName, "chapter", ChapterPrompt(p, params))
	if err != nil {
		return nil, err
	}

	err = s.projects.Update(ctx, userName, projectName, func(p *entity.Project) error {
		p.Chapters.Set(params.ChapterName, result.Text)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GenerateFullStory 生成整部作品，章节表整体替换为单条生成结果
func (s *Service) GenerateFullStory(ctx context.Context, userName, projectName string, params FullStoryParams) (*GenerationResult, error) {
	params.applyDefaults()

	p, err := s.projects.Get(ctx, userName, projectName)
	if err != nil {
		return nil, err
	}

	result, err := s.generate(ctx, userName, "full_story", FullStoryPrompt(p, params))
	if err != nil {
		return nil, err
	}

	err = s.projects.Update(ctx, userName, projectName, func(p *entity.Project) error {
		chapters := p.Chapters
		for pair := chapters.Oldest(); pair != nil; pair = chapters.Oldest() {
			chapters.Delete(pair.Key)
		}
		chapters.Set(fullStoryChapterLabel, result.Text)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GenerateTheme 生成企划主题并写回项目
func (s *Service) GenerateTheme(ctx context.Context, userName, projectName string, params ThemeParams) (*GenerationResult, error) {
	if _, err := s.projects.Get(ctx, userName, projectName); err != nil {
		return nil, err
	}

	result, err := s.generate(ctx, userName, "theme", ThemePrompt(params))
	if err != nil {
		return nil, err
	}
	result.Text = strings.TrimSpace(result.Text)

	err = s.projects.Update(ctx, userName, projectName, func(p *entity.Project) error {
		p.Theme = result.Text
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Modify 按指示修改一段内容，返回修改后的文本，不写回项目
func (s *Service) Modify(ctx context.Context, userName, content, instruction, contentLabel string) (*GenerationResult, error) {
	if strings.TrimSpace(content) == "" {
		return nil, errors.New(errors.CodeValidationFailed, "content is required")
	}
	if strings.TrimSpace(instruction) == "" {
		return nil, errors.New(errors.CodeValidationFailed, "instruction is required")
	}

	return s.generate(ctx, userName, "modify", ModificationPrompt(content, instruction, contentLabel))
}

// Diagnose 对作品做编辑视角的综合诊断
func (s *Service) Diagnose(ctx context.Context, userName, projectName string) (*GenerationResult, error) {
	p, err := s.projects.Get(ctx, userName, projectName)
	if err != nil {
		return nil, err
	}

	return s.generate(ctx, userName, "diagnosis", DiagnosisPrompt(p))
}

// Improve 生成作品改进建议
func (s *Service) Improve(ctx context.Context, userName, projectName string) (*GenerationResult, error) {
	p, err := s.projects.Get(ctx, userName, projectName)
	if err != nil {
		return nil, err
	}

	return s.generate(ctx, userName, "improvement", ImprovementPrompt(p))
}

// generate 在会话锁内执行网关调用并维护生成指标
func (s *Service) generate(ctx context.Context, userName, kind, prompt string) (*GenerationResult, error) {
	var result *GenerationResult

	err := s.sessions.Update(ctx, userName, func(sess *entity.Session) error {
		r, err := s.gateway.Generate(ctx, sess, prompt)
		if err != nil {
			return err
		}
		result = &GenerationResult{
			Text:           r.Text,
			Model:          r.Model,
			PromptTokens:   r.PromptTokens,
			ResponseTokens: r.ResponseTokens,
		}
		return nil
	})
	if err != nil {
		metrics.GenerationTotal.WithLabelValues(kind, "error").Inc()
		return nil, err
	}

	metrics.GenerationTotal.WithLabelValues(kind, "success").Inc()
	return result, nil
}
