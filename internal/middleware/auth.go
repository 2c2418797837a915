// Package middleware 提供了处理 HTTP 请求的中间件。
package middleware

import (
	"net/http"
	"strings"

	"corevitals-go/pkg/log"
	"corevitals-go/pkg/token"

	"github.com/gin-gonic/gin"
)

// ClaimsKey 是 token claims 在 gin.Context 中的键。
const ClaimsKey = "claims"

// AuthMiddleware 创建一个 Gin 中间件，用于 JWT 认证。
// token 优先从 Authorization 头读取；浏览器无法为 WebSocket 设置请求头，因此也接受 ?token= 查询参数。
func AuthMiddleware(jwtManager *token.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := extractToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"code": http.StatusUnauthorized, "message": "请求未包含有效的授权信息", "data": nil})
			return
		}

		claims, err := jwtManager.VerifyAccessToken(tokenString)
		if err != nil {
			log.Warnw("token 校验失败", "requestId", RequestID(c), "error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"code": http.StatusUnauthorized, "message": "无效或已过期的 token", "data": nil})
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// Claims 取出 AuthMiddleware 存入的 claims。
func Claims(c *gin.Context) (*token.CustomClaims, bool) {
	v, exists := c.Get(ClaimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*token.CustomClaims)
	return claims, ok
}

func extractToken(c *gin.Context) (string, bool) {
	// Token 通常以 "Bearer <token>" 的形式提供
	const bearerPrefix = "Bearer "
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			return "", false
		}
		t := strings.TrimSpace(strings.TrimPrefix(authHeader, bearerPrefix))
		return t, t != ""
	}
	if t := c.Query("token"); t != "" {
		return t, true
	}
	return "", false
}
