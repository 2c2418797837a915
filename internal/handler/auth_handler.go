package handler

import (
	"errors"
	"net/http"

	"corevitals-go/internal/service"
	"corevitals-go/pkg/log"
	"corevitals-go/pkg/token"

	"github.com/gin-gonic/gin"
)

// AuthHandler 负责 API 客户端的 token 签发与刷新。
type AuthHandler struct {
	authService service.AuthService
	jwtManager  *token.JWTManager
}

// NewAuthHandler 创建一个新的 AuthHandler 实例。
func NewAuthHandler(authService service.AuthService, jwtManager *token.JWTManager) *AuthHandler {
	return &AuthHandler{authService: authService, jwtManager: jwtManager}
}

// TokenRequest 是换取 token 的请求体。
type TokenRequest struct {
	ClientID  string `json:"clientId" binding:"required"`
	ClientKey string `json:"clientKey" binding:"required"`
}

// RefreshTokenRequest 定义了刷新 token API 的请求体结构。
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// IssueToken 校验客户端凭证并签发 token。
func (h *AuthHandler) IssueToken(c *gin.Context) {
	var req TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "IssueToken", err)
		return
	}

	accessToken, refreshToken, err := h.authService.IssueToken(req.ClientID, req.ClientKey)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			fail(c, http.StatusUnauthorized, "客户端 ID 或密钥错误")
			return
		}
		respondError(c, "IssueToken", err)
		return
	}

	log.Infow("Token issued", "clientId", req.ClientID)
	success(c, "Token issued successfully", h.tokenPayload(accessToken, refreshToken))
}

// RefreshToken 处理刷新 token 的请求。
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "RefreshToken", err)
		return
	}

	newAccessToken, newRefreshToken, err := h.authService.RefreshToken(req.RefreshToken)
	if err != nil {
		log.Warnf("RefreshToken: Failed to refresh token, error: %v", err)
		fail(c, http.StatusUnauthorized, "无效的 refresh token")
		return
	}

	log.Info("Token refreshed successfully")
	success(c, "Token refreshed successfully", h.tokenPayload(newAccessToken, newRefreshToken))
}

func (h *AuthHandler) tokenPayload(accessToken, refreshToken string) gin.H {
	return gin.H{
		"token":        accessToken,
		"refreshToken": refreshToken,
		"expiresIn":    int(h.jwtManager.AccessTTL().Seconds()),
	}
}
