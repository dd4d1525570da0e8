package redis

import (
	"context"
	"time"

	"Folio/internal/pkg/consts"
)

// TokenStore 已注销 token 的签名黑名单
type TokenStore struct{}

func NewTokenStore() *TokenStore {
	return &TokenStore{}
}

func (TokenStore) Revoke(ctx context.Context, signature string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return SetWithExpiration(ctx, consts.TokenRevokedKey+signature, "1", ttl)
}

func (TokenStore) IsRevoked(ctx context.Context, signature string) (bool, error) {
	v, err := GetValue(ctx, consts.TokenRevokedKey+signature)
	if err != nil {
		return false, err
	}
	return v != "", nil
}
