package products

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/NaaAyeley-design/E-Commerce-sub003/internal/domain/product"
)

var ErrCacheMiss = errors.New("catalog cache miss")

const cacheVersionKey = "catalog:products:ver"

// ListingCache keeps rendered public product listings in Redis for a
// short TTL. Invalidation bumps a version counter instead of scanning
// for keys, so stale entries just age out.
type ListingCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewListingCache(rdb *redis.Client, ttl time.Duration) *ListingCache {
	return &ListingCache{rdb: rdb, ttl: ttl}
}

func (c *ListingCache) key(ctx context.Context, f ListFilter) (string, error) {
	ver, err := c.rdb.Get(ctx, cacheVersionKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", err
	}
	return fmt.Sprintf("catalog:products:v%d:%s:%s", ver, f.CategorySlug, f.BrandSlug), nil
}

func (c *ListingCache) Get(ctx context.Context, f ListFilter) ([]product.Product, error) {
	key, err := c.key(ctx, f)
	if err != nil {
		return nil, err
	}
	data, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}
	var items []product.Product
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("unmarshal listing failed: %w", err)
	}
	return items, nil
}

func (c *ListingCache) Set(ctx context.Context, f ListFilter, items []product.Product) error {
	key, err := c.key(ctx, f)
	if err != nil {
		return err
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal listing failed: %w", err)
	}
	return c.rdb.Set(ctx, key, data, c.ttl).Err()
}

// Invalidate makes every cached listing unreachable by bumping the
// version counter.
func (c *ListingCache) Invalidate(ctx context.Context) {
	_ = c.rdb.Incr(ctx, cacheVersionKey).Err()
}
