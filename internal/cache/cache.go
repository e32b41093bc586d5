// Package cache holds the revocation state shared with token-revoking
// collaborators. It is backed by Redis; the go-redis client is a pooled,
// concurrency-safe handle, so revocation checks from concurrent requests do
// not serialize behind a process-wide lock.
package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// Key contract shared with revocation writers.
const (
	globalRevokeKey  = "jwt:revoke:global_before"
	userRevokeKey    = "jwt:revoke:user_before"
	revokedTokensKey = "jwt:revoked_tokens"
)

// ErrUnavailable tags cache failures so the HTTP boundary can categorize
// them. A failed revocation read must never pass as "not revoked".
var ErrUnavailable = errors.New("cache unavailable")

// RevocationCache is the full contract over the revocation state: the reads
// used on every authenticated request plus the raise-only writes used by
// logout and admin revocation.
type RevocationCache interface {
	GlobalRevokeBefore(ctx context.Context) (int64, bool, error)
	UserRevokeBefore(ctx context.Context, userID string) (int64, bool, error)
	IsTokenRevoked(ctx context.Context, tokenID string) (bool, error)

	RevokeToken(ctx context.Context, tokenID string) error
	RevokeUserBefore(ctx context.Context, userID string, epoch int64) error
	RevokeAllBefore(ctx context.Context, epoch int64) error

	Close() error
}

type redisCache struct {
	rdb *redis.Client
}

// Raise-only writes: the stored epoch only ever moves forward, so a racing
// older write can never resurrect already-revoked tokens.
var raiseGlobalScript = redis.NewScript(`
local cur = redis.call('GET', KEYS[1])
if (not cur) or (tonumber(ARGV[1]) > tonumber(cur)) then
	redis.call('SET', KEYS[1], ARGV[1])
end
return 1
`)

var raiseUserScript = redis.NewScript(`
local cur = redis.call('HGET', KEYS[1], ARGV[1])
if (not cur) or (tonumber(ARGV[2]) > tonumber(cur)) then
	redis.call('HSET', KEYS[1], ARGV[1], ARGV[2])
end
return 1
`)

// NewRedis opens a client from a URL (redis://:pass@host:6379/0) and pings it
// so a bad address fails at startup rather than on the first login.
func NewRedis(ctx context.Context, redisURL string) (RevocationCache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	slog.Info("cache connected", "addr", opt.Addr)
	return &redisCache{rdb: rdb}, nil
}

func (c *redisCache) GlobalRevokeBefore(ctx context.Context) (int64, bool, error) {
	raw, err := c.rdb.Get(ctx, globalRevokeKey).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("%w: read global revoke mark: %w", ErrUnavailable, err)
	}

	epoch, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("%w: malformed global revoke mark %q: %w", ErrUnavailable, raw, err)
	}

	return epoch, true, nil
}

func (c *redisCache) UserRevokeBefore(ctx context.Context, userID string) (int64, bool, error) {
	raw, err := c.rdb.HGet(ctx, userRevokeKey, userID).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("%w: read user revoke mark: %w", ErrUnavailable, err)
	}

	epoch, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("%w: malformed user revoke mark %q: %w", ErrUnavailable, raw, err)
	}

	return epoch, true, nil
}

func (c *redisCache) IsTokenRevoked(ctx context.Context, tokenID string) (bool, error) {
	revoked, err := c.rdb.HExists(ctx, revokedTokensKey, tokenID).Result()
	if err != nil {
		return false, fmt.Errorf("%w: check revoked token: %w", ErrUnavailable, err)
	}

	return revoked, nil
}

func (c *redisCache) RevokeToken(ctx context.Context, tokenID string) error {
	if err := c.rdb.HSet(ctx, revokedTokensKey, tokenID, "1").Err(); err != nil {
		return fmt.Errorf("%w: revoke token: %w", ErrUnavailable, err)
	}

	return nil
}

func (c *redisCache) RevokeUserBefore(ctx context.Context, userID string, epoch int64) error {
	err := raiseUserScript.Run(ctx, c.rdb, []string{userRevokeKey}, userID, strconv.FormatInt(epoch, 10)).Err()
	if err != nil {
		return fmt.Errorf("%w: revoke user tokens: %w", ErrUnavailable, err)
	}

	return nil
}

func (c *redisCache) RevokeAllBefore(ctx context.Context, epoch int64) error {
	err := raiseGlobalScript.Run(ctx, c.rdb, []string{globalRevokeKey}, strconv.FormatInt(epoch, 10)).Err()
	if err != nil {
		return fmt.Errorf("%w: revoke all tokens: %w", ErrUnavailable, err)
	}

	return nil
}

func (c *redisCache) Close() error { return c.rdb.Close() }
