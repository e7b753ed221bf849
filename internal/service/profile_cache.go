package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/galexandre/showtrack/internal/dto"
	"github.com/galexandre/showtrack/pkg/database"
)

// RedisProfileCache caches assembled user profiles in Redis
type RedisProfileCache struct {
	redis *database.Redis
	ttl   time.Duration
}

// NewRedisProfileCache creates a new Redis-backed profile cache
func NewRedisProfileCache(r *database.Redis, ttl time.Duration) *RedisProfileCache {
	return &RedisProfileCache{redis: r, ttl: ttl}
}

func profileKey(userID string) string {
	return fmt.Sprintf("profile:user:%s", userID)
}

// Get returns the cached profile, or nil on a miss
func (c *RedisProfileCache) Get(ctx context.Context, userID string) (*dto.UserProfile, error) {
	data, err := c.redis.Client.Get(ctx, profileKey(userID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read profile from cache: %w", err)
	}

	var profile dto.UserProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to decode cached profile: %w", err)
	}

	return &profile, nil
}

// Set stores a profile with the configured TTL
func (c *RedisProfileCache) Set(ctx context.Context, userID string, profile *dto.UserProfile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}

	if err := c.redis.Client.Set(ctx, profileKey(userID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write profile to cache: %w", err)
	}

	return nil
}

// Invalidate drops the cached profile after a mutation
func (c *RedisProfileCache) Invalidate(ctx context.Context, userID string) error {
	if err := c.redis.Client.Del(ctx, profileKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate cached profile: %w", err)
	}
	return nil
}
