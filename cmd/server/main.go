// Package main 是应用程序的入口点。
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

	"corevitals-go/internal/config"
	"corevitals-go/internal/handler"
	"corevitals-go/internal/middleware"
	"corevitals-go/internal/service"
	"corevitals-go/pkg/database"
	"corevitals-go/pkg/gateway"
	"corevitals-go/pkg/log"
	"corevitals-go/pkg/storage"
	"corevitals-go/pkg/token"

	"github.com/gin-gonic/gin"
)

func main() {
	configPath := flag.String("config", "./configs/config.yaml", "配置文件路径，凭证通过 COREVITALS_ 前缀的环境变量提供")
	flag.Parse()

	// 1. 初始化配置
	config.Init(*configPath)
	cfg := config.Conf

	// 2. 初始化日志记录器
	log.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.OutputPath)
	defer log.Sync() // 确保在程序退出时刷新所有缓冲的日志条目
	log.Info("日志记录器初始化成功")

	// 3. 初始化 Redis 与对象存储
	var counter middleware.Counter
	if cfg.RateLimit.Enabled {
		database.InitRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		counter = database.NewWindowCounter(database.RDB)
	}
	var audioStore gateway.AudioStore = gateway.DataURIStore{}
	if cfg.MinIO.Enabled {
		storage.InitMinIO(cfg.MinIO)
		audioStore = storage.NewAudioStore(storage.MinioClient, cfg.MinIO.BucketName, cfg.MinIO.URLExpiry)
	}

	// 4. 初始化 AI 网关与 Service (依赖注入)
	jwtManager := token.NewJWTManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpireHours, cfg.JWT.RefreshTokenExpireDays)
	gatewayClient := gateway.NewClient(cfg.Gateway, audioStore)
	services := handler.Services{
		Auth:      service.NewAuthService(cfg.Auth.Clients, jwtManager),
		Assistant: service.NewAssistantService(gatewayClient, cfg.Assistant.PersonaPrompt),
		CheckIn:   service.NewCheckInService(gatewayClient, cfg.Assistant.UserCategory),
		Media:     service.NewMediaService(gatewayClient),
		System:    service.NewSystemService(),
	}
	if len(cfg.Auth.Clients) == 0 {
		log.Warnf("auth.clients 为空，所有 token 申请都会被拒绝")
	}

	// 5. 设置 Gin 模式并注册路由
	gin.SetMode(cfg.Server.Mode)
	r := handler.NewRouter(services, jwtManager, counter, cfg.RateLimit)

	// 启动 HTTP 服务器并实现优雅停机
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("服务启动于 %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("HTTP 服务监听失败: %s\n", err)
		}
	}()

	// 等待中断信号以实现优雅停机
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("接收到停机信号，正在关闭服务...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("HTTP 服务器关闭失败: %v", err)
	}
	if database.RDB != nil {
		_ = database.RDB.Close()
	}
	log.Info("服务已优雅关闭")
}
