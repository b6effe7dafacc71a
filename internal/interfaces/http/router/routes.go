package router

import (
	"novel-studio-api/internal/interfaces/http/middleware"
)

// registerV1Routes 注册 /v1 业务路由
func (r *Router) registerV1Routes() {
	v1 := r.engine.Group("/v1")

	// 认证路由不需要 Token
	auth := v1.Group("/auth")
	{
		auth.POST("/register", r.handlers.Auth.Register)
		auth.POST("/login", r.handlers.Auth.Login)
	}

	// 其余路由走认证与限流
	protected := v1.Group("")
	protected.Use(middleware.Auth(middleware.AuthConfig{
		Secret: r.cfg.Security.JWT.Secret,
		Issuer: r.cfg.Security.JWT.Issuer,
	}))
	protected.Use(middleware.RateLimit(middleware.RateLimitConfig{
		Enabled:           r.cfg.Security.RateLimit.Enabled,
		RequestsPerSecond: r.cfg.Security.RateLimit.RequestsPerSecond,
	}, r.limiter))

	protected.GET("/auth/me", r.handlers.Auth.Me)

	// 会话设置
	settings := protected.Group("/settings")
	{
		settings.GET("", r.handlers.Settings.Get)
		settings.PUT("/provider", r.handlers.Settings.SelectProvider)
		settings.PUT("/credentials", r.handlers.Settings.SetCredential)
	}

	// 用量统计
	protected.GET("/usage", r.handlers.Usage.Get)

	// 内容修改（不绑定项目）
	protected.POST("/modify", r.handlers.Generate.Modify)

	// 项目
	projects := protected.Group("/projects")
	{
		projects.GET("", r.handlers.Project.List)
		projects.POST("", r.handlers.Project.Create)
		projects.GET("/export", r.handlers.Transfer.Export)
		projects.POST("/import", r.handlers.Transfer.Import)

		named := projects.Group("/:name")
		{
			named.GET("", r.handlers.Project.Get)
			named.PATCH("", r.handlers.Project.Update)
			named.DELETE("", r.handlers.Project.Delete)
			named.PUT("/select", r.handlers.Project.Select)
			named.PUT("/writing-mode", r.handlers.Project.SetWritingMode)

			// 手动内容维护
			named.POST("/characters", r.handlers.Content.AddCharacter)
			named.PUT("/characters/:character", r.handlers.Content.UpdateCharacter)
			named.DELETE("/characters/:character", r.handlers.Content.DeleteCharacter)
			named.PUT("/chapters", r.handlers.Content.UpsertChapter)
			named.DELETE("/chapters/:chapter", r.handlers.Content.DeleteChapter)
			named.POST("/glossary", r.handlers.Content.AddGlossaryTerm)
			named.DELETE("/glossary/:term", r.handlers.Content.DeleteGlossaryTerm)

			// AI 生成
			generate := named.Group("/generate")
			{
				generate.POST("/synopsis", r.handlers.Generate.Synopsis)
				generate.POST("/character", r.handlers.Generate.Character)
				generate.POST("/world", r.handlers.Generate.World)
				generate.POST("/chapter", r.handlers.Generate.Chapter)
				generate.POST("/full-story", r.handlers.Generate.FullStory)
				generate.POST("/theme", r.handlers.Generate.Theme)
			}

			// 分析
			named.POST("/quality", r.handlers.Generate.Quality)
			named.POST("/diagnosis", r.handlers.Generate.Diagnose)
			named.POST("/improvement", r.handlers.Generate.Improve)
		}
	}
}
