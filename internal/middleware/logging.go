// Package middleware 存放 Gin 框架的中间件。
package middleware

import (
	"bytes"
	"io"
	"time"

	"corevitals-go/pkg/log"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// RequestIDHeader 是请求 ID 的请求/响应头。
	RequestIDHeader = "X-Request-ID"
	// RequestIDKey 是请求 ID 在 gin.Context 中的键。
	RequestIDKey = "requestId"

	maxLoggedBody = 1024
)

// bodyLogWriter 用于捕获响应体
type bodyLogWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

// Write 将响应写入 gin.ResponseWriter，同时保留前 maxLoggedBody 字节用于日志
func (w bodyLogWriter) Write(b []byte) (int, error) {
	if room := maxLoggedBody - w.body.Len(); room > 0 {
		w.body.Write(b[:min(room, len(b))])
	}
	return w.ResponseWriter.Write(b)
}

// RequestLogger 记录每个请求的摘要。请求体与响应体只在 debug 级别输出，且会被截断。
// skipBodies 中的路径从不记录请求体，用于凭证交换等接口。
func RequestLogger(skipBodies ...string) gin.HandlerFunc {
	skip := make(map[string]struct{}, len(skipBodies))
	for _, p := range skipBodies {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		startTime := time.Now()

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(RequestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)

		// 读取并重新缓存请求体
		var requestBody []byte
		if c.Request.Body != nil {
			requestBody, _ = io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewReader(requestBody))
		}

		blw := &bodyLogWriter{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = blw

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		log.Infow("HTTP Request Log",
			"requestId", requestID,
			"statusCode", c.Writer.Status(),
			"latency", time.Since(startTime).String(),
			"clientIP", c.ClientIP(),
			"method", c.Request.Method,
			"path", path,
		)
		if _, ok := skip[path]; ok {
			return
		}
		log.Debugw("HTTP Request Body",
			"requestId", requestID,
			"requestBody", truncateBody(requestBody),
			"responseBody", blw.body.String(),
		)
	}
}

// RequestID 返回当前请求的 ID。
func RequestID(c *gin.Context) string {
	return c.GetString(RequestIDKey)
}

func truncateBody(b []byte) string {
	if len(b) <= maxLoggedBody {
		return string(b)
	}
	return string(b[:maxLoggedBody]) + "...(truncated)"
}
