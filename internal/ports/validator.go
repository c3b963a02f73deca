package ports

import (
	"context"

	"github.com/Gunvolt24/flowers/internal/domain"
)

// OrderValidator — проверка заказа перед сохранением или публикацией.
// Ошибки полей возвращаются одним значением с сообщением на каждое поле (ключи как в JSON формы).
type OrderValidator interface {
	Validate(ctx context.Context, order *domain.Order) error
}
