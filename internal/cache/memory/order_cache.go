package memory

import (
	"context"
	"time"

	"github.com/Gunvolt24/flowers/internal/domain"
	"github.com/Gunvolt24/flowers/internal/ports"
)

var _ ports.OrderCache = (*OrderCache)(nil)

// OrderCache — LRU/TTL кэш оформленных заказов по order_uid.
type OrderCache struct {
	lru *lruTTL[*domain.Order]
}

func NewOrderCache(capacity int, ttl time.Duration) *OrderCache {
	return &OrderCache{lru: newLRUTTL("orders", capacity, ttl, cloneOrder)}
}

func (c *OrderCache) Get(_ context.Context, orderUID string) (*domain.Order, bool) {
	return c.lru.get(orderUID)
}

func (c *OrderCache) Set(_ context.Context, order *domain.Order) error {
	if order == nil || order.OrderUID == "" {
		return nil
	}
	c.lru.set(order.OrderUID, order)
	return nil
}

func (c *OrderCache) WarmUp(ctx context.Context, orders []*domain.Order) error {
	for _, order := range orders {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := c.Set(ctx, order); err != nil {
			return err
		}
	}
	return nil
}

// cloneOrder — возвращает копию заказа, чтобы внешние изменения
// не отражались на данных внутри кэша.
func cloneOrder(order *domain.Order) *domain.Order {
	if order == nil {
		return nil
	}
	clonedOrder := *order
	if order.Items != nil {
		clonedOrder.Items = append([]domain.OrderItem(nil), order.Items...)
	}
	return &clonedOrder
}
