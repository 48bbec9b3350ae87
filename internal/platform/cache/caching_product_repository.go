// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"kalakraft_backend/internal/feature/catalog/domain/entity"
	"kalakraft_backend/internal/feature/catalog/usecase"
)

// CachingProductRepository decorates a ProductRepository with Redis caching.
// It implements the decorator pattern, transparently adding caching without
// modifying the underlying repository. Writes go to the inner repository
// first and then invalidate affected cache entries, so reads never serve a
// product that predates the write.
type CachingProductRepository struct {
	inner     usecase.ProductRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// NewCachingProductRepository decorates a ProductRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "products".
func NewCachingProductRepository(rdb *redis.Client, ttl time.Duration, inner usecase.ProductRepository, namespace string) *CachingProductRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "products"
	}
	return &CachingProductRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// ListActive retrieves the active catalog, checking cache first then falling
// back to the database.
func (c *CachingProductRepository) ListActive(ctx context.Context) ([]entity.Product, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.ListActive(ctx)
	}

	key := c.listKey()

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Product
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	out, err := c.inner.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// FindBySlug retrieves a single product, cache first.
func (c *CachingProductRepository) FindBySlug(ctx context.Context, slug string) (*entity.Product, error) {
	if c.rdb == nil {
		return c.inner.FindBySlug(ctx, slug)
	}

	key := c.slugKey(slug)

	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out entity.Product
		if err := json.Unmarshal(b, &out); err == nil {
			return &out, nil
		}
		_ = c.rdb.Del(ctx, key).Err()
	}

	out, err := c.inner.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// FindByID always hits the inner repository; admin flows need current data.
func (c *CachingProductRepository) FindByID(ctx context.Context, id uint) (*entity.Product, error) {
	return c.inner.FindByID(ctx, id)
}

// Create inserts a product and invalidates the catalog cache.
func (c *CachingProductRepository) Create(ctx context.Context, p *entity.Product) error {
	if err := c.inner.Create(ctx, p); err != nil {
		return err
	}
	c.invalidate(ctx, p)
	return nil
}

// Update saves a product and invalidates the catalog cache.
func (c *CachingProductRepository) Update(ctx context.Context, p *entity.Product) error {
	if err := c.inner.Update(ctx, p); err != nil {
		return err
	}
	c.invalidate(ctx, p)
	return nil
}

// invalidate removes the cache entries a write may have made stale.
func (c *CachingProductRepository) invalidate(ctx context.Context, p *entity.Product) {
	if c.rdb == nil {
		return
	}
	// Best effort: don't fail the write if cache deletion fails
	_ = c.rdb.Del(ctx, c.listKey(), c.slugKey(p.Slug)).Err()
}

// listKey generates the cache key for the active-catalog listing.
func (c *CachingProductRepository) listKey() string {
	return fmt.Sprintf("%s:active", c.namespace)
}

// slugKey generates the cache key for a single product lookup.
func (c *CachingProductRepository) slugKey(slug string) string {
	return fmt.Sprintf("%s:slug:%s", c.namespace, safe(slug))
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
