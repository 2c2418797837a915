package service

import (
	"errors"
	"fmt"

	"corevitals-go/internal/config"
	"corevitals-go/pkg/hash"
	"corevitals-go/pkg/log"
	"corevitals-go/pkg/token"
)

// ErrInvalidCredentials 表示客户端 ID 或密钥不正确。
var ErrInvalidCredentials = errors.New("invalid client credentials")

// AuthService 为 API 客户端签发和刷新 token。
type AuthService interface {
	IssueToken(clientID, clientKey string) (accessToken, refreshToken string, err error)
	RefreshToken(refreshTokenString string) (newAccessToken, newRefreshToken string, err error)
}

type authService struct {
	clients    map[string]config.ClientCredential
	jwtManager *token.JWTManager
}

// NewAuthService 创建一个新的 AuthService 实例。
func NewAuthService(clients []config.ClientCredential, jwtManager *token.JWTManager) AuthService {
	byID := make(map[string]config.ClientCredential, len(clients))
	for _, c := range clients {
		byID[c.ID] = c
	}
	return &authService{clients: byID, jwtManager: jwtManager}
}

// IssueToken 校验客户端密钥，成功后返回 access 与 refresh token。
func (s *authService) IssueToken(clientID, clientKey string) (string, string, error) {
	client, ok := s.clients[clientID]
	if !ok || !hash.CheckPasswordHash(clientKey, client.KeyHash) {
		log.Warnw("客户端认证失败", "clientId", clientID)
		return "", "", ErrInvalidCredentials
	}
	return s.issue(client)
}

// RefreshToken 用 refresh token 换取新的一对 token。客户端被移出配置后刷新失败。
func (s *authService) RefreshToken(refreshTokenString string) (string, string, error) {
	claims, err := s.jwtManager.VerifyRefreshToken(refreshTokenString)
	if err != nil {
		return "", "", fmt.Errorf("invalid refresh token: %w", err)
	}
	client, ok := s.clients[claims.ClientID]
	if !ok {
		return "", "", ErrInvalidCredentials
	}
	return s.issue(client)
}

func (s *authService) issue(client config.ClientCredential) (string, string, error) {
	accessToken, err := s.jwtManager.GenerateToken(client.ID)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate access token: %w", err)
	}
	refreshToken, err := s.jwtManager.GenerateRefreshToken(client.ID)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return accessToken, refreshToken, nil
}
