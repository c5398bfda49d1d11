package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"shutterbay-backend/models"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	productCachePrefix     = "product:detail:"
	productListCachePrefix = "products:v:"
	cacheVersionKey        = "products:version"

	defaultCacheTTL = 5 * time.Minute
)

// ProductCache caches catalog reads in Redis. List keys embed a version
// counter; bumping the version on any catalog write invalidates every cached
// list at once.
type ProductCache struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewProductCache(client *redis.Client) *ProductCache {
	return &ProductCache{
		redis: client,
		ttl:   defaultCacheTTL,
	}
}

func (c *ProductCache) GetProduct(ctx context.Context, productID string) (*models.Product, bool) {
	data, err := c.redis.Get(ctx, productCachePrefix+productID).Result()
	if err != nil {
		return nil, false
	}

	var product models.Product
	if err := json.Unmarshal([]byte(data), &product); err != nil {
		zap.L().Warn("Failed to unmarshal cached product", zap.Error(err))
		return nil, false
	}
	return &product, true
}

// SetProductAsync caches a product off the request path.
func (c *ProductCache) SetProductAsync(productID string, product *models.Product) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		data, err := json.Marshal(product)
		if err != nil {
			zap.L().Warn("Failed to marshal product for cache", zap.Error(err))
			return
		}
		if err := c.redis.Set(ctx, productCachePrefix+productID, data, c.ttl).Err(); err != nil {
			zap.L().Warn("Failed to cache product", zap.Error(err))
		}
	}()
}

func (c *ProductCache) GetList(ctx context.Context, cacheKey string) (*ProductList, bool) {
	version, err := c.getVersion(ctx)
	if err != nil || version == 0 {
		return nil, false
	}

	data, err := c.redis.Get(ctx, c.listKey(version, cacheKey)).Result()
	if err != nil {
		return nil, false
	}

	var list ProductList
	if err := json.Unmarshal([]byte(data), &list); err != nil {
		zap.L().Warn("Failed to unmarshal cached product list", zap.Error(err))
		return nil, false
	}
	return &list, true
}

func (c *ProductCache) SetListAsync(cacheKey string, list *ProductList) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		version, err := c.getVersion(ctx)
		if err != nil || version == 0 {
			return
		}
		data, err := json.Marshal(list)
		if err != nil {
			zap.L().Warn("Failed to marshal product list for cache", zap.Error(err))
			return
		}
		if err := c.redis.Set(ctx, c.listKey(version, cacheKey), data, c.ttl).Err(); err != nil {
			zap.L().Warn("Failed to cache product list", zap.Error(err))
		}
	}()
}

// Invalidate bumps the list version and drops the detail entry.
func (c *ProductCache) Invalidate(ctx context.Context, productID string) {
	if err := c.redis.Incr(ctx, cacheVersionKey).Err(); err != nil {
		zap.L().Warn("Failed to bump product cache version", zap.Error(err))
	}
	if productID != "" {
		if err := c.redis.Del(ctx, productCachePrefix+productID).Err(); err != nil {
			zap.L().Warn("Failed to drop cached product", zap.Error(err))
		}
	}
}

func (c *ProductCache) getVersion(ctx context.Context) (int64, error) {
	version, err := c.redis.Get(ctx, cacheVersionKey).Int64()
	if err == redis.Nil {
		// First use; seed the version so list keys become valid.
		if err := c.redis.Set(ctx, cacheVersionKey, 1, 0).Err(); err != nil {
			return 0, err
		}
		return 1, nil
	}
	return version, err
}

func (c *ProductCache) listKey(version int64, cacheKey string) string {
	return fmt.Sprintf("%s%d:%s", productListCachePrefix, version, cacheKey)
}
