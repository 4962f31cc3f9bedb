package cache

import (
	"context"
	"errors"
	"time"

	"movie-review/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ErrMiss is returned by Get when the key is absent.
var ErrMiss = errors.New("cache: miss")

// Cache is the byte-level key/value surface used by read-through decorators.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Close() error
}

// Open returns the Redis cache when one is configured and reachable, and an
// in-process Memory cache otherwise.
func Open(cfg utils.RedisConfig, log *zap.Logger) Cache {
	c, err := NewRedis(cfg, log)
	if err == nil && c != nil {
		return c
	}
	if err != nil {
		log.Warn("Redis unavailable", zap.Error(err))
	}
	log.Info("Using in-process catalog cache", zap.Int("max_entries", DefaultMemoryEntries))
	return NewMemory()
}

type redisCache struct {
	rdb *redis.Client
}

// NewRedis connects to Redis. It returns nil, nil when no address is
// configured or the server cannot be reached; callers treat nil as "no cache".
func NewRedis(cfg utils.RedisConfig, log *zap.Logger) (Cache, error) {
	if cfg.Addr == "" {
		log.Info("Redis address not configured")
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		ReadTimeout:  time.Duration(cfg.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeoutSeconds) * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn("Failed to connect to redis",
			zap.String("addr", cfg.Addr),
			zap.Error(err),
		)
		_ = rdb.Close()
		return nil, nil
	}

	log.Info("Redis connected", zap.String("addr", cfg.Addr))
	return &redisCache{rdb: rdb}, nil
}

func (c *redisCache) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, err
	}
	return val, nil
}

func (c *redisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.rdb.Set(ctx, key, value, ttl).Err()
}

func (c *redisCache) Close() error {
	return c.rdb.Close()
}
