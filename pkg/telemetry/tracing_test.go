package telemetry_test

import (
	"context"
	"testing"
	"time"

	"go.opentelemetry.io/otel"

	"github.com/Gunvolt24/flowers/pkg/telemetry"
)

// Экспортёр OTLP/HTTP подключается лениво, поэтому настройка проходит и без коллектора.
func TestSetupTracing_InstallsGlobalProvider(t *testing.T) {
	shutdown, err := telemetry.SetupTracing(context.Background(), telemetry.Config{
		ServiceName: "flowers-test",
		Endpoint:    "127.0.0.1:1",
		SampleRatio: 5, // прижимается к 1
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, span := otel.Tracer("test").Start(context.Background(), "op")
	if !span.SpanContext().IsSampled() {
		t.Fatal("ratio above 1 must sample everything")
	}
	span.End()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	_ = shutdown(ctx) // экспорт в недоступный коллектор может вернуть ошибку — не важно
}
