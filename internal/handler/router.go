package handler

import (
	"corevitals-go/internal/config"
	"corevitals-go/internal/middleware"
	"corevitals-go/internal/service"
	"corevitals-go/pkg/token"

	"github.com/gin-gonic/gin"
)

// Services 汇总路由需要的业务服务。
type Services struct {
	Auth      service.AuthService
	Assistant service.AssistantService
	CheckIn   service.CheckInService
	Media     service.MediaService
	System    service.SystemService
}

// NewRouter 创建路由引擎并注册全部接口。counter 为 nil 时不做限流。
func NewRouter(svc Services, jwtManager *token.JWTManager, counter middleware.Counter, rl config.RateLimitConfig) *gin.Engine {
	r := gin.New() // 使用 New() 创建一个不带默认中间件的引擎
	r.Use(middleware.RequestLogger("/api/v1/auth/token", "/api/v1/auth/refreshToken"), gin.Recovery())

	authHandler := NewAuthHandler(svc.Auth, jwtManager)
	chatHandler := NewChatHandler(svc.Assistant, counter, rl)
	checkInHandler := NewCheckInHandler(svc.CheckIn)
	mediaHandler := NewMediaHandler(svc.Media)
	systemHandler := NewSystemHandler(svc.System)

	apiV1 := r.Group("/api/v1")
	{
		// Auth 路由组，公开访问
		auth := apiV1.Group("/auth")
		{
			auth.POST("/token", authHandler.IssueToken)
			auth.POST("/refreshToken", authHandler.RefreshToken)
		}

		// 目录是静态数据，只需认证
		systems := apiV1.Group("/systems")
		systems.Use(middleware.AuthMiddleware(jwtManager))
		{
			systems.GET("", systemHandler.List)
			systems.GET("/:id", systemHandler.Get)
		}

		// 以下路由会调用外部 AI 服务，需要认证并限流
		ai := apiV1.Group("")
		ai.Use(middleware.AuthMiddleware(jwtManager), middleware.RateLimit(counter, rl))
		{
			ai.POST("/chat", chatHandler.Chat)
			ai.GET("/chat/ws", chatHandler.Handle)
			ai.POST("/checkins/analyze", checkInHandler.Analyze)
			ai.POST("/speech", mediaHandler.Speak)
			ai.POST("/videos", mediaHandler.CreateVideo)
			ai.GET("/videos/replicas", mediaHandler.ListReplicas)
		}
	}
	return r
}
