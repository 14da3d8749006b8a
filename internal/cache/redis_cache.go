package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/cypherlabdev/bet-analytics-service/internal/models"
)

// RedisCache holds assembled analytics responses (TTL'd, one entry per event
// and bucketing policy) and the previous realtime snapshot per event, which
// serves as the momentum baseline between snapshot computations.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// RedisCacheConfig holds Redis cache configuration
type RedisCacheConfig struct {
	Addr     string        // e.g., "localhost:6379"
	Password string
	DB       int
	TTL      time.Duration // e.g., 5 * time.Minute
}

// NewRedisCache creates a new Redis cache
func NewRedisCache(config RedisCacheConfig, logger zerolog.Logger) *RedisCache {
	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	return &RedisCache{
		client: client,
		ttl:    config.TTL,
		logger: logger.With().Str("component", "redis_cache").Logger(),
	}
}

// SetAnalytics caches an assembled analytics response for one policy
func (c *RedisCache) SetAnalytics(ctx context.Context, policy models.BucketPolicy, response *models.AnalyticsResponse) error {
	key := analyticsKey(response.EventID, policy)

	// Serialize to JSON
	data, err := json.Marshal(response)
	if err != nil {
		return fmt.Errorf("failed to marshal analytics response: %w", err)
	}

	// Set in Redis with TTL
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set in Redis: %w", err)
	}

	c.logger.Debug().
		Str("key", key).
		Dur("ttl", c.ttl).
		Msg("cached analytics response")

	return nil
}

// GetAnalytics retrieves a cached analytics response
func (c *RedisCache) GetAnalytics(ctx context.Context, eventID string, policy models.BucketPolicy) (*models.AnalyticsResponse, error) {
	key := analyticsKey(eventID, policy)

	// Get from Redis
	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, fmt.Errorf("analytics not found in cache")
	} else if err != nil {
		return nil, fmt.Errorf("failed to get from Redis: %w", err)
	}

	// Deserialize
	var response models.AnalyticsResponse
	if err := json.Unmarshal(data, &response); err != nil {
		return nil, fmt.Errorf("failed to unmarshal analytics response: %w", err)
	}

	return &response, nil
}

// InvalidateAnalytics drops every cached response for an event, across all
// policies. The realtime snapshot survives: it is the momentum baseline, not
// a stale answer.
func (c *RedisCache) InvalidateAnalytics(ctx context.Context, eventID string) error {
	pattern := fmt.Sprintf("analytics:%s:*", eventID)

	// Scan for keys matching pattern
	var cursor uint64
	var keys []string

	for {
		var scanKeys []string
		var err error
		scanKeys, cursor, err = c.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return fmt.Errorf("failed to scan keys: %w", err)
		}

		keys = append(keys, scanKeys...)

		if cursor == 0 {
			break
		}
	}

	if len(keys) == 0 {
		return nil
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete keys: %w", err)
	}

	c.logger.Debug().
		Str("event_id", eventID).
		Int("count", len(keys)).
		Msg("invalidated cached analytics")

	return nil
}

// SetSnapshot stores the latest realtime snapshot for an event
func (c *RedisCache) SetSnapshot(ctx context.Context, eventID string, point *models.DataPoint) error {
	key := snapshotKey(eventID)

	data, err := json.Marshal(point)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set in Redis: %w", err)
	}

	return nil
}

// GetSnapshot retrieves the previous realtime snapshot for an event
func (c *RedisCache) GetSnapshot(ctx context.Context, eventID string) (*models.DataPoint, error) {
	key := snapshotKey(eventID)

	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, fmt.Errorf("snapshot not found in cache")
	} else if err != nil {
		return nil, fmt.Errorf("failed to get from Redis: %w", err)
	}

	var point models.DataPoint
	if err := json.Unmarshal(data, &point); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}

	return &point, nil
}

// Ping checks Redis connection
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// analyticsKey builds the Redis key: analytics:{event_id}:{policy}
func analyticsKey(eventID string, policy models.BucketPolicy) string {
	return fmt.Sprintf("analytics:%s:%s", eventID, policy)
}

// snapshotKey builds the Redis key: snapshot:{event_id}
func snapshotKey(eventID string) string {
	return fmt.Sprintf("snapshot:%s", eventID)
}
