package repositories

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenCache keeps refreshed access tokens in Redis keyed by refresh token,
// so a fleet of instances does not hammer the identity backend with one
// refresh round-trip per protected request. A nil *TokenCache is a no-op.
type TokenCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewTokenCache(client *redis.Client, ttl time.Duration) *TokenCache {
	if client == nil {
		return nil
	}
	return &TokenCache{Client: client, TTL: ttl}
}

// The refresh token itself never hits Redis as a key, only its digest.
func cacheKey(refreshToken string) string {
	sum := sha256.Sum256([]byte(refreshToken))
	return "access_token:" + hex.EncodeToString(sum[:])
}

func (c *TokenCache) Get(ctx context.Context, refreshToken string) (string, bool) {
	if c == nil || c.Client == nil {
		return "", false
	}
	val, err := c.Client.Get(ctx, cacheKey(refreshToken)).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func (c *TokenCache) Set(ctx context.Context, refreshToken, accessToken string) {
	if c == nil || c.Client == nil {
		return
	}
	// Cache failures are not worth failing the request over.
	_ = c.Client.Set(ctx, cacheKey(refreshToken), accessToken, c.TTL).Err()
}

func (c *TokenCache) Delete(ctx context.Context, refreshToken string) {
	if c == nil || c.Client == nil {
		return
	}
	_ = c.Client.Del(ctx, cacheKey(refreshToken)).Err()
}
