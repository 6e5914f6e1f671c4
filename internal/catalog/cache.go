package catalog

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/glossline-ai/sales-agent/internal/model"
	"github.com/glossline-ai/sales-agent/pkg/metrics"
)

const activeProductsKey = "active_products"

// CachedAccessor wraps an Accessor with a bounded-staleness product cache.
// The catalog is read-only from the core's perspective, so serving a list up
// to one refresh interval old is acceptable.
type CachedAccessor struct {
	inner Accessor
	cache *gocache.Cache
}

// NewCachedAccessor creates a caching accessor with the given re-fetch
// interval.
func NewCachedAccessor(inner Accessor, refreshInterval time.Duration) *CachedAccessor {
	return &CachedAccessor{
		inner: inner,
		cache: gocache.New(refreshInterval, 2*refreshInterval),
	}
}

// ListActiveProducts returns the cached list, re-fetching once it expires.
// A failed refresh falls through to the error so stale data is never served
// past its window.
func (c *CachedAccessor) ListActiveProducts(ctx context.Context) ([]model.Product, error) {
	if cached, ok := c.cache.Get(activeProductsKey); ok {
		return cached.([]model.Product), nil
	}

	products, err := c.inner.ListActiveProducts(ctx)
	if err != nil {
		metrics.CatalogRefreshes.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.CatalogRefreshes.WithLabelValues("success").Inc()

	c.cache.SetDefault(activeProductsKey, products)
	return products, nil
}

// GetProduct serves single lookups from the cached list when possible.
func (c *CachedAccessor) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	if cached, ok := c.cache.Get(activeProductsKey); ok {
		for _, p := range cached.([]model.Product) {
			if p.ID == id {
				product := p
				return &product, nil
			}
		}
	}
	return c.inner.GetProduct(ctx, id)
}
