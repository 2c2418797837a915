package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"corevitals-go/internal/config"
	"corevitals-go/pkg/log"

	"github.com/gin-gonic/gin"
)

// MsgRateLimited 是超出限流时返回给客户端的提示。
const MsgRateLimited = "请求过于频繁，请稍后再试"

// Counter 是固定窗口计数器，生产环境由 database.WindowCounter 实现。
type Counter interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

// Limiter 按客户端做固定窗口计数，HTTP 请求和 WebSocket 消息共用同一组计数。
type Limiter struct {
	counter Counter
	cfg     config.RateLimitConfig
}

// Quota 是一次计数后的配额状态。
type Quota struct {
	Allowed   bool
	Limit     int
	Remaining int64
	Window    time.Duration
}

// NewLimiter 创建限流器。counter 为 nil 或未启用限流时，Allow 总是放行。
func NewLimiter(counter Counter, cfg config.RateLimitConfig) *Limiter {
	if cfg.Window <= 0 {
		cfg.Window = time.Minute
	}
	return &Limiter{counter: counter, cfg: cfg}
}

// Enabled 报告限流是否生效。
func (l *Limiter) Enabled() bool {
	return l != nil && l.cfg.Enabled && l.counter != nil
}

// Allow 为 subject 记一次访问。计数器出错时放行并返回错误，由调用方记录日志。
func (l *Limiter) Allow(ctx context.Context, subject string) (Quota, error) {
	if !l.Enabled() {
		return Quota{Allowed: true}, nil
	}
	q := Quota{Allowed: true, Limit: l.cfg.Requests, Window: l.cfg.Window}

	count, err := l.counter.Incr(ctx, windowKey(subject, l.cfg.Window, time.Now()), l.cfg.Window)
	if err != nil {
		q.Remaining = int64(q.Limit)
		return q, err
	}
	q.Remaining = int64(q.Limit) - count
	if q.Remaining < 0 {
		q.Remaining = 0
	}
	q.Allowed = count <= int64(q.Limit)
	return q, nil
}

func windowKey(subject string, window time.Duration, now time.Time) string {
	bucket := now.UnixNano() / int64(window)
	return "ratelimit:" + subject + ":" + strconv.FormatInt(bucket, 10)
}

// RateLimitSubject 返回限流主体：已认证时为 clientId，否则为客户端 IP。
func RateLimitSubject(c *gin.Context) string {
	if claims, ok := Claims(c); ok {
		return claims.ClientID
	}
	return c.ClientIP()
}

// RateLimit 限制每个客户端在一个窗口内访问上游 AI 服务的次数。
// 必须放在 AuthMiddleware 之后。计数器出错时放行请求，只记录日志。
func RateLimit(counter Counter, cfg config.RateLimitConfig) gin.HandlerFunc {
	limiter := NewLimiter(counter, cfg)
	return func(c *gin.Context) {
		if !limiter.Enabled() {
			c.Next()
			return
		}

		subject := RateLimitSubject(c)
		q, err := limiter.Allow(c.Request.Context(), subject)
		if err != nil {
			log.Warnw("限流计数失败，放行请求", "requestId", RequestID(c), "subject", subject, "error", err)
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(q.Limit))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(q.Remaining, 10))

		if !q.Allowed {
			c.Header("Retry-After", strconv.Itoa(int(q.Window.Seconds())))
			log.Warnw("客户端触发限流", "requestId", RequestID(c), "subject", subject)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"code": http.StatusTooManyRequests, "message": MsgRateLimited, "data": nil})
			return
		}
		c.Next()
	}
}
