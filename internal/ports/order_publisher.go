package ports

import (
	"context"

	"github.com/Gunvolt24/flowers/internal/domain"
)

// OrderPublisher — отправка оформленного заказа в очередь на сохранение.
type OrderPublisher interface {
	Publish(ctx context.Context, order *domain.Order) error
}
