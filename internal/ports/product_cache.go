package ports

import (
	"context"

	"github.com/Gunvolt24/flowers/internal/domain"
)

// ProductListCache — кэш списков товаров, ключ — идентификатор магазина.
type ProductListCache interface {
	Get(ctx context.Context, shopID string) ([]domain.Product, bool)
	Set(ctx context.Context, shopID string, products []domain.Product) error
	// Invalidate — сбросить список магазина (после create/update товара).
	Invalidate(ctx context.Context, shopID string) error
}
