package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/n3wth/skills-backend/api"
	"github.com/n3wth/skills-backend/internal/ai"
	"github.com/n3wth/skills-backend/internal/identity"
	"github.com/n3wth/skills-backend/internal/platform/config"
	"github.com/n3wth/skills-backend/internal/platform/database"
	"github.com/n3wth/skills-backend/internal/platform/health"
	"github.com/n3wth/skills-backend/internal/platform/shutdown"
	"github.com/n3wth/skills-backend/internal/platform/startup"
	"github.com/n3wth/skills-backend/pkg/lifecycle"
	"github.com/n3wth/skills-backend/pkg/logger"
)

func main() {
	// .env仅用于本地开发，缺失时静默跳过
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(fmt.Sprintf("加载配置失败: %v", err))
	}

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	identity.Configure(cfg.Auth.JWTSecret)
	database.InitAuthStore(cfg.Database.AuthStore)
	database.InitLegacyStore(cfg.Database.LegacyStore)
	database.InitRedis(cfg.Database.Redis)

	// 阻塞式获取初始Run ID，之后的健康检查靠它发现Redis重启
	health.InitializeRunID()

	if err := startup.InitializeApplication(); err != nil {
		panic(fmt.Sprintf("应用初始化失败，无法启动: %v", err))
	}
	if err := ai.PrimeModule(context.Background(), cfg.AI); err != nil {
		panic(fmt.Sprintf("AI模块初始化失败: %v", err))
	}

	// 启动后先做一次检查，再把持续检查交给后台服务
	health.PerformCheck()

	gracefulMgr := lifecycle.NewManager()
	forcefulMgr := lifecycle.NewManager()

	healthHandle, err := gracefulMgr.NewServiceHandle("redis-health-checker")
	if err != nil {
		panic(err)
	}
	go health.StartRedisHealthCheck(healthHandle)

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.Cors.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api.SetupRoutes(r)

	server := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: r,
	}
	go func() {
		logger.L.WithField("address", cfg.Server.Address).Info("服务器已准备就绪，开始监听")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			panic("Failed to start server: " + err.Error())
		}
	}()

	shutdown.NewCoordinator(gracefulMgr, forcefulMgr).ListenForSignalsAndShutdown(server)
}
