// Пакет ctxmeta — метаданные запроса в context.Context (request_id, сессия оформления, магазин, trace).
// HTTP-слой кладёт значения, логгер и исходящие клиенты читают; друг от друга они не зависят.
package ctxmeta

import "context"

type ctxKey string

// Ключи контекста.
const (
	KeyRequestID ctxKey = "request_id"
	KeySessionID ctxKey = "checkout_sid"
	KeyShopID    ctxKey = "shop_id"
)

func with(ctx context.Context, key ctxKey, value string) context.Context {
	if ctx == nil || value == "" {
		return ctx
	}
	return context.WithValue(ctx, key, value)
}

func get(ctx context.Context, key ctxKey) (string, bool) {
	if ctx == nil {
		return "", false
	}
	v, ok := ctx.Value(key).(string)
	return v, ok && v != ""
}

// WithRequestID — кладёт request_id; пустое значение контекст не меняет.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return with(ctx, KeyRequestID, requestID)
}

// RequestIDFromContext — request_id из контекста.
func RequestIDFromContext(ctx context.Context) (string, bool) { return get(ctx, KeyRequestID) }

// WithSessionID — кладёт идентификатор сессии оформления заказа.
func WithSessionID(ctx context.Context, sid string) context.Context {
	return with(ctx, KeySessionID, sid)
}

// SessionIDFromContext — идентификатор сессии оформления из контекста.
func SessionIDFromContext(ctx context.Context) (string, bool) { return get(ctx, KeySessionID) }

// WithShopID — кладёт идентификатор магазина (админка).
func WithShopID(ctx context.Context, shopID string) context.Context {
	return with(ctx, KeyShopID, shopID)
}

// ShopIDFromContext — идентификатор магазина из контекста.
func ShopIDFromContext(ctx context.Context) (string, bool) { return get(ctx, KeyShopID) }
