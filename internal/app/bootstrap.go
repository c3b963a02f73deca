// Пакет app — сборка зависимостей сервиса и жизненный цикл (запуск и корректная остановка).
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Gunvolt24/flowers/config"
	cachemem "github.com/Gunvolt24/flowers/internal/cache/memory"
	"github.com/Gunvolt24/flowers/internal/cache/rediscache"
	"github.com/Gunvolt24/flowers/internal/catalog"
	"github.com/Gunvolt24/flowers/internal/kafka"
	"github.com/Gunvolt24/flowers/internal/ports"
	"github.com/Gunvolt24/flowers/internal/repo/postgres"
	rest "github.com/Gunvolt24/flowers/internal/transport/http"
	"github.com/Gunvolt24/flowers/internal/usecase"
	"github.com/Gunvolt24/flowers/pkg/logger"
	"github.com/Gunvolt24/flowers/pkg/metrics"
	"github.com/Gunvolt24/flowers/pkg/telemetry"
	"github.com/Gunvolt24/flowers/pkg/validate"
)

// Version — версия сборки (подставляется через -ldflags).
var Version = "dev"

// App — собранное приложение и его внешние интерфейсы (HTTP, метрики, consumer).
type App struct {
	Logger          ports.Logger          // логгер
	HTTPServer      *http.Server          // HTTP-сервер API
	MetricsServer   *http.Server          // отдельный сервер /metrics; nil — метрики только на API
	KafkaConsumer   ports.MessageConsumer // консьюмер заказов
	gracefulTimeout time.Duration         // время ожидания завершения HTTP-серверов
}

// Cleanup — функция освобождения ресурсов.
type Cleanup func()

// applyGinMode — устанавливает режим Gin по строке;
// неизвестное значение → debug и предупреждение в лог.
func applyGinMode(ctx context.Context, mode string, log ports.Logger) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	case "", "debug":
		gin.SetMode(gin.DebugMode)
	default:
		gin.SetMode(gin.DebugMode)
		log.Warnf(ctx, "unknown GIN_MODE=%q, fallback to debug", mode)
	}
}

// tokenSource — файл токена (перечитывается на каждый запрос), иначе статический токен из конфигурации.
func tokenSource(cfg config.Catalog) ports.TokenSource {
	if cfg.TokenFile != "" {
		return catalog.NewFileTokenSource(cfg.TokenFile)
	}
	return catalog.StaticToken(cfg.Token)
}

// draftStore — хранилище черновиков по конфигурации; closer освобождает соединение (для redis).
func draftStore(ctx context.Context, cfg config.Drafts) (ports.DraftStore, func() error, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Backend)) {
	case "", "memory":
		return cachemem.NewDraftStore(cfg.Capacity, cfg.TTL), func() error { return nil }, nil
	case "redis":
		store := rediscache.NewDraftStore(cfg.RedisAddr, cfg.RedisPrefix, cfg.TTL)
		if err := store.Ping(ctx); err != nil {
			_ = store.Close()
			return nil, nil, fmt.Errorf("redis ping %s: %w", cfg.RedisAddr, err)
		}
		return store, store.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown drafts backend %q", cfg.Backend)
	}
}

// Bootstrap — собирает зависимости и возвращает приложение, функцию очистки и ошибку.
func Bootstrap(ctx context.Context, cfg *config.Config) (*App, Cleanup, error) {
	// Логгер (dev/prod режим задаётся конфигурацией).
	logg, cleanupLogger, err := logger.NewZapLogger(cfg.Logger.IsProd)
	if err != nil {
		return nil, func() {}, err
	}

	// Стек очистки: выполняется в обратном порядке.
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
		if cerr := cleanupLogger(); cerr != nil {
			logg.Warnf(ctx, "cleanup logger: %v", cerr)
		}
	}
	fail := func(err error) (*App, Cleanup, error) {
		logg.Errorf(ctx, "bootstrap failed: %v", err)
		cleanup()
		return nil, func() {}, err
	}

	// Регистрация метрик (Prometheus).
	metrics.MustRegister()

	// Трейсинг OTEL (при включённой конфигурации); по умолчанию — no-op.
	if cfg.Tracing.Enabled {
		shutdownTrace, tErr := telemetry.SetupTracing(ctx, telemetry.Config{
			ServiceName: cfg.Tracing.ServiceName,
			Version:     Version,
			Endpoint:    cfg.Tracing.Endpoint,
			SampleRatio: cfg.Tracing.SampleRatio,
		})
		if tErr != nil {
			logg.Warnf(ctx, "failed to setup tracing: %v", tErr)
		} else {
			logg.Infof(ctx, "otel tracing enabled service=%s endpoint=%s sample=%.2f",
				cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
			closers = append(closers, func() {
				sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if terr := shutdownTrace(sctx); terr != nil {
					logg.Warnf(ctx, "shutdown tracing: %v", terr)
				}
			})
		}
	}

	// Миграции и пул подключений Postgres.
	if cfg.Postgres.AutoMigrate {
		if err := postgres.Migrate(ctx, cfg.Postgres.DSN); err != nil {
			return fail(err)
		}
	}
	pool, err := postgres.NewPool(ctx, cfg.Postgres.DSN, postgres.PoolOptions{MaxConns: cfg.Postgres.MaxConns})
	if err != nil {
		return fail(err)
	}
	closers = append(closers, pool.Close)

	// Заказы: репозиторий, кэш, сервис чтения и сохранения.
	orderCache := cachemem.NewOrderCache(cfg.Cache.Capacity, cfg.Cache.TTL)
	orderRepo := postgres.NewOrderRepository(pool)
	orderValidator := validate.NewOrderValidator()
	orderService := usecase.NewOrderService(orderRepo, orderCache, logg, orderValidator)

	if n := cfg.Cache.WarmUpN; n > 0 {
		if err := orderService.WarmUpCache(ctx, n); err != nil {
			logg.Warnf(ctx, "warm-up cache failed: %v", err)
		}
	}

	// Каталог товаров и админка.
	catalogClient := catalog.NewClient(catalog.Options{
		BaseURL: cfg.Catalog.BaseURL,
		Timeout: cfg.Catalog.Timeout,
		Tracing: cfg.Tracing.Enabled,
	}, tokenSource(cfg.Catalog), logg)
	productCache := cachemem.NewProductListCache(cfg.ProductsCache.Capacity, cfg.ProductsCache.TTL)
	productService := usecase.NewProductService(catalogClient, productCache, logg)

	// Оформление заказа: черновики и публикация в Kafka.
	drafts, closeDrafts, err := draftStore(ctx, cfg.Drafts)
	if err != nil {
		return fail(err)
	}
	closers = append(closers, func() {
		if cerr := closeDrafts(); cerr != nil {
			logg.Warnf(ctx, "drafts store close error: %v", cerr)
		}
	})

	producer := kafka.NewProducer(&kafka.ProducerConfig{
		Brokers:      cfg.Kafka.Brokers,
		Topic:        cfg.Kafka.Topic,
		WriteTimeout: cfg.Kafka.WriteTimeout,
	})
	closers = append(closers, func() {
		if cerr := producer.Close(); cerr != nil {
			logg.Warnf(ctx, "kafka producer close error: %v", cerr)
		}
	})
	checkoutService := usecase.NewCheckoutService(drafts, orderValidator, producer, logg)

	// Консьюмер заказов.
	consumer := kafka.NewConsumer(&kafka.ConsumerConfig{
		Brokers:        cfg.Kafka.Brokers,
		GroupID:        cfg.Kafka.GroupID,
		Topic:          cfg.Kafka.Topic,
		StartOffset:    cfg.Kafka.StartOffset,
		ProcessTimeout: cfg.Kafka.ProcessTimeout,
		RetryInitial:   cfg.Kafka.RetryInitial,
		RetryMax:       cfg.Kafka.RetryMax,
	}, orderService, logg)
	closers = append(closers, func() {
		if cerr := consumer.Close(); cerr != nil {
			logg.Warnf(ctx, "kafka consumer close error: %v", cerr)
		}
	})

	// Роутер и HTTP-сервер.
	applyGinMode(ctx, cfg.HTTP.GinMode, logg)

	otelServiceName := ""
	if cfg.Tracing.Enabled {
		otelServiceName = cfg.Tracing.ServiceName
	}
	router := rest.NewRouter(
		rest.NewHandler(orderService, checkoutService, productService, logg),
		rest.RouterOptions{ServiceName: otelServiceName, HandlerTimeout: cfg.HTTP.HandlerTimeout},
	)
	if cfg.HTTP.MaxMultipartMemory > 0 {
		router.MaxMultipartMemory = cfg.HTTP.MaxMultipartMemory
	}

	app := &App{
		Logger: logg,
		HTTPServer: &http.Server{
			Addr:              cfg.HTTP.Addr,
			Handler:           router,
			ReadTimeout:       cfg.HTTP.ReadTimeout,
			WriteTimeout:      cfg.HTTP.WriteTimeout,
			ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
			IdleTimeout:       cfg.HTTP.IdleTimeout,
		},
		MetricsServer:   metricsServer(cfg.Metrics.Addr, cfg.HTTP.Addr),
		KafkaConsumer:   consumer,
		gracefulTimeout: cfg.HTTP.GracefulTimeout,
	}
	return app, cleanup, nil
}

// metricsServer — отдельный listener для Prometheus, если адрес задан и отличается от API.
func metricsServer(addr, apiAddr string) *http.Server {
	if addr == "" || addr == apiAddr {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
}

// Run — запускает HTTP-серверы и консьюмера; ждёт отмены контекста или ошибки и останавливает их.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 3)

	// Запуск консьюмера.
	go func() {
		a.Logger.Infof(ctx, "kafka consumer starting")
		if err := a.KafkaConsumer.Run(ctx); err != nil {
			errCh <- err
		}
	}()

	servers := []*http.Server{a.HTTPServer}
	if a.MetricsServer != nil {
		servers = append(servers, a.MetricsServer)
	}
	for _, srv := range servers {
		go func(srv *http.Server) {
			a.Logger.Infof(ctx, "http server starting (addr=%s)", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}(srv)
	}

	// Ожидание сигнала остановки или фоновой ошибки.
	var runErr error
	select {
	case <-ctx.Done():
		a.Logger.Infof(ctx, "shutdown requested, starting graceful shutdown")
	case err := <-errCh:
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			a.Logger.Infof(ctx, "background component stopped: %v", err)
		} else {
			a.Logger.Errorf(ctx, "background error: %v", err)
			runErr = err
		}
	}

	gt := a.gracefulTimeout
	if gt <= 0 {
		gt = 5 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), gt)
	defer cancel()

	for _, srv := range servers {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			a.Logger.Warnf(ctx, "http server shutdown failed addr=%s: %v", srv.Addr, err)
		} else {
			a.Logger.Infof(ctx, "http server stopped gracefully addr=%s", srv.Addr)
		}
	}

	if err := a.KafkaConsumer.Close(); err != nil {
		a.Logger.Warnf(ctx, "kafka consumer close error: %v", err)
	}

	a.Logger.Infof(ctx, "service stopped")
	return runErr
}
