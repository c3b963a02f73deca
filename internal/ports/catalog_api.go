package ports

import (
	"context"

	"github.com/Gunvolt24/flowers/internal/domain"
)

// CatalogAPI — REST API каталога (товары магазинов и категории).
// Авторизация, базовый адрес и таймауты — забота реализации.
type CatalogAPI interface {
	GetProduct(ctx context.Context, shopID, productID string) (*domain.Product, error)
	ListProducts(ctx context.Context, shopID string) ([]domain.Product, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	CreateProduct(ctx context.Context, shopID string, payload domain.ProductPayload) error
	UpdateProduct(ctx context.Context, shopID, productID string, payload domain.ProductPayload) error
}
