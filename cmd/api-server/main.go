// Package main 创作工作台 API 服务入口
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"novel-studio-api/internal/application/quota"
	"novel-studio-api/internal/application/story"
	"novel-studio-api/internal/config"
	"novel-studio-api/internal/infrastructure/llm"
	"novel-studio-api/internal/infrastructure/persistence/memory"
	redisinfra "novel-studio-api/internal/infrastructure/persistence/redis"
	"novel-studio-api/internal/interfaces/http/handler"
	"novel-studio-api/internal/interfaces/http/middleware"
	"novel-studio-api/internal/interfaces/http/router"
	"novel-studio-api/pkg/logger"
	"novel-studio-api/pkg/utils"

	"github.com/joho/godotenv"
)

// Version 版本信息，构建时注入
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// 加载 .env 文件（如果存在）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(
		cfg.Observability.Logging.Level,
		cfg.Observability.Logging.Format,
	)

	ctx := context.Background()
	log := logger.FromContext(ctx)
	log.Info("starting api-server",
		"version", Version,
		"build_time", BuildTime,
		"env", cfg.App.Env,
	)

	// 存储层
	users := memory.NewUserStore()
	sessions := memory.NewSessionStore()
	projects := memory.NewProjectStore()

	// 限流器（仅在启用时连接 Redis）
	var limiter middleware.RateLimiter
	if cfg.Security.RateLimit.Enabled {
		redisClient, err := redisinfra.NewClient(&cfg.Cache.Redis)
		if err != nil {
			logger.Fatal(ctx, "failed to connect redis", err)
		}
		defer redisClient.Close()
		limiter = redisinfra.NewRateLimiter(redisClient)
	}

	// 应用层
	recorder := quota.NewRecorder()
	factory := llm.NewFactory(cfg.LLM)
	gateway := llm.NewGateway(factory, recorder)
	storyService := story.NewService(gateway, projects, sessions)

	jwtManager := utils.NewJWTManager(cfg.Security.JWT.Secret, cfg.Security.JWT.Issuer)

	handlers := router.Handlers{
		Auth:     handler.NewAuthHandler(users, sessions, jwtManager, cfg.Security.JWT.Expiration),
		Settings: handler.NewSettingsHandler(sessions, factory),
		Project:  handler.NewProjectHandler(projects, sessions),
		Content:  handler.NewContentHandler(projects),
		Generate: handler.NewGenerateHandler(storyService, projects),
		Usage:    handler.NewUsageHandler(sessions, recorder),
		Transfer: handler.NewTransferHandler(projects),
		Health:   handler.NewHealthHandler(cfg),
	}

	r := router.New(cfg, handlers, limiter)

	addr := fmt.Sprintf("%s:%d", cfg.Server.HTTP.Host, cfg.Server.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.HTTP.ReadTimeout,
		WriteTimeout: cfg.Server.HTTP.WriteTimeout,
		IdleTimeout:  cfg.Server.HTTP.IdleTimeout,
	}

	go func() {
		log.Info("http server starting", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("http server error", "error", err)
			os.Exit(1)
		}
	}()

	// 等待中断信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
	}

	log.Info("server exited")
}
