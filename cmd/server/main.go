package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/NASVIPS/rfid-attendance-system/config"
	"github.com/NASVIPS/rfid-attendance-system/internal/api/handler"
	"github.com/NASVIPS/rfid-attendance-system/internal/api/router"
	"github.com/NASVIPS/rfid-attendance-system/internal/repository"
	"github.com/NASVIPS/rfid-attendance-system/internal/service"
	"github.com/NASVIPS/rfid-attendance-system/internal/ws"
	"github.com/NASVIPS/rfid-attendance-system/pkg/database"
	"github.com/NASVIPS/rfid-attendance-system/pkg/jwt"
	"github.com/NASVIPS/rfid-attendance-system/pkg/logger"
	"github.com/NASVIPS/rfid-attendance-system/pkg/redis"
)

func main() {
	configPath := flag.String("config", "", "配置文件路径")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	zapLogger, err := logger.NewLogger(&cfg.Log)
	if err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer zapLogger.Sync() //nolint:errcheck

	db, err := database.NewDB(&cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("初始化数据库失败", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		zapLogger.Fatal("获取底层数据库连接失败", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, zapLogger); err != nil {
		zapLogger.Fatal("数据库迁移失败", zap.Error(err))
	}

	cache, err := redis.NewClient(&cfg.Redis, zapLogger)
	if err != nil {
		zapLogger.Fatal("初始化 Redis 失败", zap.Error(err))
	}
	defer cache.Close() //nolint:errcheck

	jwtMgr := jwt.NewManager(&cfg.Auth)

	repo := repository.NewRepository(db)
	svc := service.NewService(repo, jwtMgr, cache, zapLogger)

	hub := ws.NewHub(zapLogger)
	go hub.Run()

	h := handler.NewHandler(svc, hub, cfg, zapLogger)
	engine := router.Setup(h, svc, jwtMgr, cache, cfg, zapLogger)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		zapLogger.Info("HTTP 服务启动", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("HTTP 服务异常退出", zap.Error(err))
		}
	}()

	// 优雅停机
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("收到停机信号，开始优雅关闭")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("HTTP 服务关闭失败", zap.Error(err))
	}

	zapLogger.Info("服务已退出")
}
