package catalog

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/packlane/storefront/pkg/logger"
	redisclient "github.com/packlane/storefront/pkg/redis"
)

type cacheStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	CatalogKey(parts ...string) string
}

// Cached is a read-through decorator over a catalog Source. Cache failures
// degrade to a direct fetch; they never surface to the caller.
type Cached struct {
	src   Source
	store cacheStore
	ttl   time.Duration
	logg  *logger.Logger
}

// NewCached wraps src with a Redis-backed read-through cache.
func NewCached(src Source, store *redisclient.Client, ttl time.Duration, logg *logger.Logger) *Cached {
	return &Cached{src: src, store: store, ttl: ttl, logg: logg}
}

// ListProducts returns the cached catalog snapshot, fetching on a miss.
func (c *Cached) ListProducts(ctx context.Context) ([]Product, error) {
	key := c.store.CatalogKey("products")
	var cached []Product
	if c.lookup(ctx, key, &cached) {
		return cached, nil
	}
	products, err := c.src.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	c.fill(ctx, key, products)
	return products, nil
}

// ListCategories returns the cached category list, fetching on a miss.
func (c *Cached) ListCategories(ctx context.Context) ([]string, error) {
	key := c.store.CatalogKey("categories")
	var cached []string
	if c.lookup(ctx, key, &cached) {
		return cached, nil
	}
	categories, err := c.src.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	c.fill(ctx, key, categories)
	return categories, nil
}

// GetProduct returns a cached product, fetching on a miss. Negative results
// are not cached.
func (c *Cached) GetProduct(ctx context.Context, id int) (Product, error) {
	key := c.store.CatalogKey("product", strconv.Itoa(id))
	var cached Product
	if c.lookup(ctx, key, &cached) {
		return cached, nil
	}
	product, err := c.src.GetProduct(ctx, id)
	if err != nil {
		return Product{}, err
	}
	c.fill(ctx, key, product)
	return product, nil
}

func (c *Cached) lookup(ctx context.Context, key string, dest any) bool {
	raw, err := c.store.Get(ctx, key)
	if err != nil {
		if !redisclient.IsMiss(err) && c.logg != nil {
			c.logg.Warn(c.logg.WithField(ctx, "cache_key", key), "catalog cache read failed")
		}
		return false
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		if c.logg != nil {
			c.logg.Warn(c.logg.WithField(ctx, "cache_key", key), "catalog cache entry corrupt")
		}
		return false
	}
	return true
}

func (c *Cached) fill(ctx context.Context, key string, value any) {
	buf, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := c.store.Set(ctx, key, string(buf), c.ttl); err != nil && c.logg != nil {
		c.logg.Warn(c.logg.WithField(ctx, "cache_key", key), "catalog cache write failed")
	}
}
