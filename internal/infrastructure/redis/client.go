// Package redis provides the Redis-backed refresh-token denylist. It is
// an optional backend: when no Redis URL is configured the server runs
// with stateless tokens and no revocation, the original behavior.
package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Denylist stores revoked refresh tokens until their natural expiry.
// Tokens are keyed by SHA-256 digest so the credential itself is never
// written to Redis.
type Denylist struct {
	rdb *redis.Client
}

// NewDenylist connects to Redis and verifies connectivity.
func NewDenylist(url string) (*Denylist, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &Denylist{rdb: rdb}, nil
}

func tokenKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "revoked:" + hex.EncodeToString(sum[:])
}

// Revoke marks a token revoked for ttl, after which the entry lapses
// together with the token's own expiry.
func (d *Denylist) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	return d.rdb.Set(ctx, tokenKey(token), "1", ttl).Err()
}

// IsRevoked reports whether the token has been revoked.
func (d *Denylist) IsRevoked(ctx context.Context, token string) (bool, error) {
	err := d.rdb.Get(ctx, tokenKey(token)).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Ping checks connectivity
func (d *Denylist) Ping(ctx context.Context) error {
	return d.rdb.Ping(ctx).Err()
}

// Close closes the Redis connection
func (d *Denylist) Close() error {
	return d.rdb.Close()
}
