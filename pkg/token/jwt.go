// Package token 提供了用于生成和验证 JSON Web Tokens (JWT) 的功能。
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// token 类型，写入 claims 防止 refresh token 被当作 access token 使用。
const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

// ErrInvalidToken 表示 token 解析成功但不可用。
var ErrInvalidToken = errors.New("invalid token")

// JWTManager 负责管理 JWT 的生成和验证。
type JWTManager struct {
	secretKey       []byte        // secretKey 用于签名和验证 token 的密钥
	accessTokenDur  time.Duration // accessTokenDur 定义了 access token 的有效期
	refreshTokenDur time.Duration // refreshTokenDur 定义了 refresh token 的有效期
}

// CustomClaims 是 API 客户端 token 中携带的数据。
// 它嵌入了 jwt.RegisteredClaims 以包含标准的 JWT 声明（如过期时间）。
type CustomClaims struct {
	ClientID  string `json:"clientId"`
	TokenType string `json:"tokenType"`
	jwt.RegisteredClaims
}

// NewJWTManager 创建一个新的 JWTManager 实例。
// secret: 用于签名的密钥字符串。
// accessTokenExpireHours: access token 的过期时间（小时）。
// refreshTokenExpireDays: refresh token 的过期时间（天）。
func NewJWTManager(secret string, accessTokenExpireHours, refreshTokenExpireDays int) *JWTManager {
	return &JWTManager{
		secretKey:       []byte(secret),
		accessTokenDur:  time.Hour * time.Duration(accessTokenExpireHours),
		refreshTokenDur: time.Duration(refreshTokenExpireDays) * 24 * time.Hour,
	}
}

// GenerateToken 为客户端签发 access token。
func (m *JWTManager) GenerateToken(clientID string) (string, error) {
	return m.sign(clientID, TypeAccess, m.accessTokenDur)
}

// GenerateRefreshToken 签发有效期更长的 refresh token。
func (m *JWTManager) GenerateRefreshToken(clientID string) (string, error) {
	return m.sign(clientID, TypeRefresh, m.refreshTokenDur)
}

// AccessTTL 返回 access token 的有效期，用于响应中的 expiresIn。
func (m *JWTManager) AccessTTL() time.Duration {
	return m.accessTokenDur
}

func (m *JWTManager) sign(clientID, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := CustomClaims{
		ClientID:  clientID,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   clientID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	// 使用 HS256 签名
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secretKey)
}

// VerifyToken 验证给定的 token 字符串。
// 如果 token 有效，它会返回 CustomClaims 对象。
// 如果 token 无效（例如，签名不匹配或已过期），则返回错误。
func (m *JWTManager) VerifyToken(tokenString string) (*CustomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		// 检查签名方法是否为 HMAC
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secretKey, nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*CustomClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, ErrInvalidToken
}

// VerifyAccessToken 只接受 access token。
func (m *JWTManager) VerifyAccessToken(tokenString string) (*CustomClaims, error) {
	return m.verifyType(tokenString, TypeAccess)
}

// VerifyRefreshToken 只接受 refresh token。
func (m *JWTManager) VerifyRefreshToken(tokenString string) (*CustomClaims, error) {
	return m.verifyType(tokenString, TypeRefresh)
}

func (m *JWTManager) verifyType(tokenString, tokenType string) (*CustomClaims, error) {
	claims, err := m.VerifyToken(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != tokenType {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
