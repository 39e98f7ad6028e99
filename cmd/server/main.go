package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/2023-Capston-Design/Backend-RE/config"
	"github.com/2023-Capston-Design/Backend-RE/internal/api/handler"
	"github.com/2023-Capston-Design/Backend-RE/internal/api/router"
	"github.com/2023-Capston-Design/Backend-RE/internal/repository"
	"github.com/2023-Capston-Design/Backend-RE/internal/service"
	"github.com/2023-Capston-Design/Backend-RE/pkg/database"
	"github.com/2023-Capston-Design/Backend-RE/pkg/jwt"
	"github.com/2023-Capston-Design/Backend-RE/pkg/logger"
	"github.com/2023-Capston-Design/Backend-RE/pkg/password"
	"github.com/2023-Capston-Design/Backend-RE/pkg/redis"
)

func main() {
	configPath := flag.String("config", "", "配置文件路径")
	flag.Parse()

	// ── 配置 ──
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	// ── 日志 ──
	log, err := logger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync() //nolint:errcheck

	if cfg.Log.Format != "console" {
		gin.SetMode(gin.ReleaseMode)
	}

	// ── 数据库 ──
	db, err := database.NewDB(&cfg.Database, log)
	if err != nil {
		log.Fatal("初始化数据库失败", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal("获取底层 sql.DB 失败", zap.Error(err))
	}
	defer sqlDB.Close()

	if err := database.RunMigrations(sqlDB, log); err != nil {
		log.Fatal("数据库迁移失败", zap.Error(err))
	}

	// ── Redis ──
	// Redis 不可用时降级运行：登出黑名单不生效，其余功能不受影响
	redisClient, err := redis.NewClient(&cfg.Redis, log)
	if err != nil {
		log.Warn("Redis 不可用，降级运行", zap.Error(err))
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	// ── 组装依赖 ──
	jwtManager := jwt.NewManager(&cfg.Auth)
	hasher := password.NewHasher(cfg.Auth.BcryptCost)
	repo := repository.NewRepository(db)
	if err := service.EnsureBootstrapManager(context.Background(), repo, hasher, &cfg.Auth, log); err != nil {
		log.Fatal("初始化管理员失败", zap.Error(err))
	}
	svc := service.NewService(repo, hasher, jwtManager, redisClient, log)
	h := handler.NewHandler(svc)
	engine := router.Setup(h, jwtManager, redisClient, log)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// ── 启动与优雅退出 ──
	go func() {
		log.Info("HTTP 服务启动", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP 服务异常退出", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("收到退出信号，开始优雅关闭")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("优雅关闭失败", zap.Error(err))
	}

	log.Info("服务已退出")
}
