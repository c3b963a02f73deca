package ports

import (
	"context"

	"github.com/Gunvolt24/flowers/internal/domain"
	"github.com/Gunvolt24/flowers/internal/orderdraft"
)

// OrderReadService — сервис чтения заказов.
type OrderReadService interface {
	GetOrder(ctx context.Context, orderUID string) (*domain.Order, error)
	UnsentOrders(ctx context.Context) ([]*domain.Order, error)
	OrdersByStatus(ctx context.Context, status domain.OrderStatus, limit, offset int) ([]*domain.Order, error)
}

// CheckoutService — черновики заказа витрины и их оформление.
type CheckoutService interface {
	Start(ctx context.Context) (string, orderdraft.State, error)
	Get(ctx context.Context, sessionID string) (orderdraft.State, error)
	Dispatch(ctx context.Context, sessionID string, action orderdraft.Action) (orderdraft.State, error)
	Next(ctx context.Context, sessionID string) (orderdraft.State, error)
	Back(ctx context.Context, sessionID string) (orderdraft.State, error)
	Submit(ctx context.Context, sessionID string, items []domain.OrderItem) (*domain.Order, error)
}

// ProductForm — форма создания/редактирования товара (один экземпляр на одну форму).
type ProductForm interface {
	IsEdit() bool
	Load(ctx context.Context) (domain.ProductDraft, error)
	LoadCategories(ctx context.Context) ([]domain.Category, error)
	Submit(ctx context.Context, draft domain.ProductDraft) (string, error)
}

// ProductService — товары магазинов для админки.
type ProductService interface {
	ListProducts(ctx context.Context, shopID string) ([]domain.Product, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	OpenForm(shopID, productID string) ProductForm
}
