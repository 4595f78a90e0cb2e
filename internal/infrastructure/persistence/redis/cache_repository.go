// Package redis provides the Redis-backed cache repository
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/platebook/v1/internal/infrastructure/config"
	"github.com/platebook/v1/internal/infrastructure/monitoring"
	"github.com/platebook/v1/internal/ports/outbound"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewClient creates a Redis client from configuration and verifies the
// connection with a ping.
func NewClient(cfg *config.Config, log *zap.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.Database,
		MaxRetries:   cfg.Redis.MaxRetries,
		MinIdleConns: cfg.Redis.MinIdleConns,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
		PoolSize:     cfg.Redis.PoolSize,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.Info("Connected to Redis", zap.String("addr", cfg.RedisAddr()))
	return client, nil
}

// CacheRepository implements the cache repository interface using Redis
type CacheRepository struct {
	client  *redis.Client
	logger  *zap.Logger
	metrics *monitoring.MetricsCollector
}

// NewCacheRepository creates a new Redis cache repository. metrics may be nil.
func NewCacheRepository(client *redis.Client, logger *zap.Logger, metrics *monitoring.MetricsCollector) outbound.CacheRepository {
	return &CacheRepository{
		client:  client,
		logger:  logger.Named("redis-cache"),
		metrics: metrics,
	}
}

func (r *CacheRepository) record(operation, result string) {
	if r.metrics != nil {
		r.metrics.RecordCacheOperation(operation, result)
	}
}

// Get retrieves a value. A missing key yields (nil, nil).
func (r *CacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		r.record("get", "miss")
		return nil, nil
	}
	if err != nil {
		r.record("get", "error")
		r.logger.Debug("Cache get failed", zap.String("key", key), zap.Error(err))
		return nil, err
	}
	r.record("get", "hit")
	return data, nil
}

// Set stores a value with a TTL
func (r *CacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		r.record("set", "error")
		r.logger.Error("Cache set failed", zap.String("key", key), zap.Error(err))
		return err
	}
	r.record("set", "ok")
	return nil
}

// Delete removes a value
func (r *CacheRepository) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		r.record("delete", "error")
		r.logger.Error("Cache delete failed", zap.String("key", key), zap.Error(err))
		return err
	}
	r.record("delete", "ok")
	return nil
}

// Exists checks if a key exists
func (r *CacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	n, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// MGet retrieves multiple values; missing keys are omitted from the result
func (r *CacheRepository) MGet(ctx context.Context, keys []string) (map[string][]byte, error) {
	if len(keys) == 0 {
		return map[string][]byte{}, nil
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	result := make(map[string][]byte, len(keys))
	for i, v := range values {
		if v == nil {
			continue
		}
		if s, ok := v.(string); ok {
			result[keys[i]] = []byte(s)
		}
	}
	return result, nil
}

// MSet stores multiple values with a shared TTL
func (r *CacheRepository) MSet(ctx context.Context, items map[string][]byte, ttl time.Duration) error {
	pipe := r.client.Pipeline()
	for key, value := range items {
		pipe.Set(ctx, key, value, ttl)
	}
	_, err := pipe.Exec(ctx)
	return err
}

// Increment increments a counter key
func (r *CacheRepository) Increment(ctx context.Context, key string) (int64, error) {
	return r.client.Incr(ctx, key).Result()
}

// Decrement decrements a counter key
func (r *CacheRepository) Decrement(ctx context.Context, key string) (int64, error) {
	return r.client.Decr(ctx, key).Result()
}
