package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/clothora/backend/internal/domain/catalog"
	"github.com/clothora/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisProductCache caches product reads in Redis.
// Cache failures degrade to database reads and are only logged.
type RedisProductCache struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisProductCache creates a new RedisProductCache
func NewRedisProductCache(cfg config.RedisConfig, logger *zap.Logger) *RedisProductCache {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	return &RedisProductCache{
		client: client,
		logger: logger,
	}
}

// Ping checks the Redis connection
func (c *RedisProductCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (c *RedisProductCache) Close() error {
	return c.client.Close()
}

func productKey(id uuid.UUID) string {
	return "product:" + id.String()
}

// GetProduct returns the cached product when present
func (c *RedisProductCache) GetProduct(ctx context.Context, id uuid.UUID) (*catalog.Product, bool) {
	data, err := c.client.Get(ctx, productKey(id)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("product cache read failed",
				zap.String("product_id", id.String()),
				zap.Error(err))
		}
		return nil, false
	}

	var product catalog.Product
	if err := json.Unmarshal(data, &product); err != nil {
		c.logger.Warn("product cache entry corrupt, dropping",
			zap.String("product_id", id.String()),
			zap.Error(err))
		c.client.Del(ctx, productKey(id))
		return nil, false
	}

	return &product, true
}

// SetProduct stores a product with the given TTL
func (c *RedisProductCache) SetProduct(ctx context.Context, product *catalog.Product, ttl time.Duration) {
	data, err := json.Marshal(product)
	if err != nil {
		c.logger.Warn("product cache marshal failed",
			zap.String("product_id", product.ID.String()),
			zap.Error(err))
		return
	}

	if err := c.client.Set(ctx, productKey(product.ID), data, ttl).Err(); err != nil {
		c.logger.Warn("product cache write failed",
			zap.String("product_id", product.ID.String()),
			zap.Error(err))
	}
}

// InvalidateProduct drops the cached product
func (c *RedisProductCache) InvalidateProduct(ctx context.Context, id uuid.UUID) {
	if err := c.client.Del(ctx, productKey(id)).Err(); err != nil {
		c.logger.Warn("product cache invalidation failed",
			zap.String("product_id", id.String()),
			zap.Error(err))
	}
}
