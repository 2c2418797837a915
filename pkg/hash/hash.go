// Package hash 封装 bcrypt 哈希，用于 API 客户端密钥的存储与校验。
package hash

import "golang.org/x/crypto/bcrypt"

// HashPassword 使用 bcrypt 生成哈希。
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash 比较明文与哈希是否匹配。
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
