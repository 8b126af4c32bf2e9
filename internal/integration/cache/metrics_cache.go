// Package cache implements the metrics cache on top of Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/httpsniic/sistema-cmc-server/internal/application/adapter"
	"github.com/httpsniic/sistema-cmc-server/internal/domain/entity"
)

const (
	keyPrefix = "cmc:metrics"
	scanCount = 100
)

type redisMetricsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisMetricsCache creates a metrics cache backed by client. Values are
// stored as JSON and expire after ttl.
func NewRedisMetricsCache(client *redis.Client, ttl time.Duration) adapter.MetricsCache {
	return &redisMetricsCache{
		client: client,
		ttl:    ttl,
	}
}

// NewRedisClient parses a redis:// URL and returns a connected client.
func NewRedisClient(ctx context.Context, rawURL, password string, db int) (*redis.Client, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	if password != "" {
		opts.Password = password
	}
	if db != 0 {
		opts.DB = db
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}

func metricsKey(storeID string, period entity.Period) string {
	return fmt.Sprintf("%s:%s:%s", keyPrefix, storeID, period.Key())
}

// Get implements adapter.MetricsCache.
func (c *redisMetricsCache) Get(ctx context.Context, storeID string, period entity.Period, dest interface{}) (bool, error) {
	raw, err := c.client.Get(ctx, metricsKey(storeID, period)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read cached metrics: %w", err)
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		// A payload from an older shape is treated as a miss.
		slog.Warn("Discarding undecodable cached metrics",
			"store_id", storeID,
			"period", period.Key(),
			"error", err,
		)
		return false, nil
	}
	return true, nil
}

// Set implements adapter.MetricsCache.
func (c *redisMetricsCache) Set(ctx context.Context, storeID string, period entity.Period, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode metrics: %w", err)
	}
	if err := c.client.Set(ctx, metricsKey(storeID, period), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache metrics: %w", err)
	}
	return nil
}

// Invalidate implements adapter.MetricsCache.
func (c *redisMetricsCache) Invalidate(ctx context.Context, storeID string, period entity.Period) error {
	if err := c.client.Del(ctx, metricsKey(storeID, period)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate metrics: %w", err)
	}
	return nil
}

// InvalidateStore implements adapter.MetricsCache. Keys are found with SCAN
// so a large keyspace is never blocked by KEYS.
func (c *redisMetricsCache) InvalidateStore(ctx context.Context, storeID string) error {
	pattern := fmt.Sprintf("%s:%s:*", keyPrefix, storeID)
	iter := c.client.Scan(ctx, 0, pattern, scanCount).Iterator()

	keys := make([]string, 0, scanCount)
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
		if len(keys) == scanCount {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("failed to invalidate store metrics: %w", err)
			}
			keys = keys[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan store metrics: %w", err)
	}
	if len(keys) > 0 {
		if err := c.client.Del(ctx, keys...).Err(); err != nil {
			return fmt.Errorf("failed to invalidate store metrics: %w", err)
		}
	}
	return nil
}

// NoopMetricsCache never stores anything. It is used when Redis is disabled.
type NoopMetricsCache struct{}

// Get always misses.
func (NoopMetricsCache) Get(context.Context, string, entity.Period, interface{}) (bool, error) {
	return false, nil
}

// Set discards the value.
func (NoopMetricsCache) Set(context.Context, string, entity.Period, interface{}) error {
	return nil
}

// Invalidate does nothing.
func (NoopMetricsCache) Invalidate(context.Context, string, entity.Period) error {
	return nil
}

// InvalidateStore does nothing.
func (NoopMetricsCache) InvalidateStore(context.Context, string) error {
	return nil
}
