package ports

import (
	"context"

	"github.com/Gunvolt24/flowers/internal/domain"
)

// OrderRepository — хранилище оформленных заказов.
type OrderRepository interface {
	// Save — идемпотентно по order_uid: повтор сообщения из очереди не создаёт дубликат.
	Save(ctx context.Context, order *domain.Order) error
	// GetByUID — (nil, nil), если заказа нет.
	GetByUID(ctx context.Context, orderUID string) (*domain.Order, error)
	// ClaimUnsent — вернуть ещё не отправленные заказы и пометить их отправленными (атомарно).
	ClaimUnsent(ctx context.Context) ([]*domain.Order, error)
	ListByStatus(ctx context.Context, status domain.OrderStatus, limit, offset int) ([]*domain.Order, error)
	LastN(ctx context.Context, n int) ([]*domain.Order, error)
}
