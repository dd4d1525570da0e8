package security

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenIssuer = "Folio"

var (
	jwtSecret         = []byte("folio-dev-secret")
	jwtExpirationTime = 24 * time.Hour
)

// Configure 设置签名密钥与有效期，启动时调用一次
func Configure(secret string, ttl time.Duration) {
	if secret != "" {
		jwtSecret = []byte(secret)
	}
	if ttl > 0 {
		jwtExpirationTime = ttl
	}
}

// TokenTTL 当前 Token 有效期
func TokenTTL() time.Duration {
	return jwtExpirationTime
}

// UserClaims Token 中携带的用户身份
type UserClaims struct {
	UserID uint64 `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
