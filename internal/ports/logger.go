package ports

import "context"

// Logger — логгер сервиса. Метаданные из ctx (request_id, trace_id, checkout_sid, shop_id)
// реализация добавляет к записи сама, поэтому вызывающему коду их передавать не нужно.
type Logger interface {
	Infof(ctx context.Context, format string, args ...any)
	Warnf(ctx context.Context, format string, args ...any)
	Errorf(ctx context.Context, format string, args ...any)
}
