package ports

import "context"

// MessageConsumer — фоновый приёмник оформленных заказов из очереди.
// Run блокируется до отмены ctx; Close освобождает соединение с брокером и безопасен при повторном вызове.
type MessageConsumer interface {
	Run(ctx context.Context) error
	Close() error
}
