package ports

import (
	"context"

	"github.com/Gunvolt24/flowers/internal/domain"
)

// OrderCache — кэш оформленных заказов перед Postgres, ключ — order_uid.
// Реализация потокобезопасна и отдаёт копии: изменение полученного заказа не меняет кэш.
type OrderCache interface {
	// Get — (order, true) при попадании; просроченная запись считается промахом.
	Get(ctx context.Context, orderUID string) (*domain.Order, bool)
	Set(ctx context.Context, order *domain.Order) error
	// WarmUp — заполнить кэш последними заказами при старте; прерывается отменой ctx.
	WarmUp(ctx context.Context, orders []*domain.Order) error
}
