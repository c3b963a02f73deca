package memory

import (
	"context"
	"time"

	"github.com/Gunvolt24/flowers/internal/domain"
	"github.com/Gunvolt24/flowers/internal/ports"
)

var _ ports.ProductListCache = (*ProductListCache)(nil)

// ProductListCache — списки товаров по магазину.
type ProductListCache struct {
	lru *lruTTL[[]domain.Product]
}

func NewProductListCache(capacity int, ttl time.Duration) *ProductListCache {
	return &ProductListCache{lru: newLRUTTL("products", capacity, ttl, cloneProducts)}
}

func (c *ProductListCache) Get(_ context.Context, shopID string) ([]domain.Product, bool) {
	return c.lru.get(shopID)
}

func (c *ProductListCache) Set(_ context.Context, shopID string, products []domain.Product) error {
	c.lru.set(shopID, products)
	return nil
}

func (c *ProductListCache) Invalidate(_ context.Context, shopID string) error {
	c.lru.remove(shopID)
	return nil
}

func cloneProducts(in []domain.Product) []domain.Product {
	if in == nil {
		return nil
	}
	return append([]domain.Product(nil), in...)
}
