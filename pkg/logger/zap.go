// Пакет logger — реализация ports.Logger на zap.
// Метаданные запроса из ctxmeta (request_id, trace_id, сессия, магазин) попадают в поля записи.
package logger

import (
	"context"

	"go.uber.org/zap"

	"github.com/Gunvolt24/flowers/pkg/ctxmeta"
)

// ZapLogger — логгер сервиса поверх zap.SugaredLogger.
type ZapLogger struct {
	base  *zap.Logger
	sugar *zap.SugaredLogger
}

// NewZapLogger — production (JSON) или development (консоль) конфигурация.
// Второе значение — Sync для вызова при остановке.
func NewZapLogger(isProd bool) (*ZapLogger, func() error, error) {
	build := zap.NewDevelopment
	if isProd {
		build = zap.NewProduction
	}
	base, err := build()
	if err != nil {
		return nil, nil, err
	}
	return FromZap(base), base.Sync, nil
}

// FromZap — обёртка над готовым *zap.Logger (например, zaptest/observer в тестах).
func FromZap(base *zap.Logger) *ZapLogger {
	return &ZapLogger{base: base, sugar: base.Sugar()}
}

// Named — дочерний логгер с именем компонента (kafka, catalog, http ...).
func (z *ZapLogger) Named(name string) *ZapLogger {
	return FromZap(z.base.Named(name))
}

func (z *ZapLogger) Infof(ctx context.Context, format string, args ...any) {
	z.withCtx(ctx).Infof(format, args...)
}

func (z *ZapLogger) Warnf(ctx context.Context, format string, args ...any) {
	z.withCtx(ctx).Warnf(format, args...)
}

func (z *ZapLogger) Errorf(ctx context.Context, format string, args ...any) {
	z.withCtx(ctx).Errorf(format, args...)
}

func (z *ZapLogger) Base() *zap.Logger { return z.base }

func (z *ZapLogger) withCtx(ctx context.Context) *zap.SugaredLogger {
	if ctx == nil {
		return z.sugar
	}
	var kv []any
	if rid, ok := ctxmeta.RequestIDFromContext(ctx); ok {
		kv = append(kv, "request_id", rid)
	}
	if tr, ok := ctxmeta.TraceIDFromContext(ctx); ok {
		kv = append(kv, "trace_id", tr)
	}
	if sid, ok := ctxmeta.SessionIDFromContext(ctx); ok {
		kv = append(kv, "checkout_sid", sid)
	}
	if shop, ok := ctxmeta.ShopIDFromContext(ctx); ok {
		kv = append(kv, "shop_id", shop)
	}
	if len(kv) == 0 {
		return z.sugar
	}
	return z.sugar.With(kv...)
}
