package ctxmeta

import (
	"context"

	"go.opentelemetry.io/otel/trace"
)

// TraceIDFromContext — trace_id активного спана; false, если спана нет или он не записывается.
func TraceIDFromContext(ctx context.Context) (string, bool) {
	if sc, ok := spanContext(ctx); ok {
		return sc.TraceID().String(), true
	}
	return "", false
}

// SpanIDFromContext — span_id активного спана.
func SpanIDFromContext(ctx context.Context) (string, bool) {
	if sc, ok := spanContext(ctx); ok {
		return sc.SpanID().String(), true
	}
	return "", false
}

func spanContext(ctx context.Context) (trace.SpanContext, bool) {
	if ctx == nil {
		return trace.SpanContext{}, false
	}
	sc := trace.SpanFromContext(ctx).SpanContext()
	return sc, sc.IsValid()
}
