package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glossline-ai/sales-agent/internal/model"
)

type countingAccessor struct {
	products []model.Product
	err      error
	calls    int
}

func (a *countingAccessor) ListActiveProducts(ctx context.Context) ([]model.Product, error) {
	a.calls++
	return a.products, a.err
}

func (a *countingAccessor) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	for i := range a.products {
		if a.products[i].ID == id {
			return &a.products[i], nil
		}
	}
	return nil, ErrNotFound
}

func TestCachedAccessorServesFromCache(t *testing.T) {
	ctx := context.Background()
	inner := &countingAccessor{products: []model.Product{{ID: "p1", Name: "Midnight Oud"}}}
	cached := NewCachedAccessor(inner, time.Minute)

	for i := 0; i < 5; i++ {
		products, err := cached.ListActiveProducts(ctx)
		require.NoError(t, err)
		assert.Len(t, products, 1)
	}
	assert.Equal(t, 1, inner.calls)

	// Single lookups come out of the cached list without touching the store.
	product, err := cached.GetProduct(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "Midnight Oud", product.Name)
	assert.Equal(t, 1, inner.calls)
}

func TestCachedAccessorPropagatesErrors(t *testing.T) {
	ctx := context.Background()
	inner := &countingAccessor{err: errors.New("connection refused")}
	cached := NewCachedAccessor(inner, time.Minute)

	_, err := cached.ListActiveProducts(ctx)
	assert.Error(t, err)

	// Errors are not cached; the next call retries.
	_, err = cached.ListActiveProducts(ctx)
	assert.Error(t, err)
	assert.Equal(t, 2, inner.calls)
}
