package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Kafka: конвейер заказов (producer + consumer).
var (
	KafkaMessagesConsumed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_consumed_total",
			Help: "Number of messages fetched from Kafka",
		},
		[]string{"topic"},
	)
	KafkaMessagesProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_processed_total",
			Help: "Number of messages processed successfully",
		},
		[]string{"topic"},
	)
	KafkaMessagesFailed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_failed_total",
			Help: "Number of messages failed to process",
		},
		[]string{"topic"},
	)
	KafkaMessagesPublished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_published_total",
			Help: "Number of messages published to Kafka",
		},
		[]string{"topic", "result"}, // ok|error
	)
)

// Кэши: заказы, черновики оформления, списки товаров.
var (
	CacheOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Cache operations",
		},
		[]string{"cache", "op"}, // hit|miss|evicted|expired|invalidated
	)
	CacheSize = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_size",
			Help: "Number of items currently in cache",
		},
		[]string{"cache"},
	)
)

// Внешний каталог и бизнес-операции.
var (
	CatalogRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_requests_total",
			Help: "Requests sent to the catalog API",
		},
		[]string{"method", "code"},
	)
	CatalogRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_request_duration_seconds",
			Help:    "Catalog API request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)
	ProductSubmissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "product_submissions_total",
			Help: "Product form submissions",
		},
		[]string{"mode", "result"}, // create|edit; ok|invalid|failed
	)
	CheckoutActions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkout_actions_total",
			Help: "Order draft actions dispatched",
		},
		[]string{"type"},
	)
)

var registerOnce sync.Once

// MustRegister — регистрация всех метрик в default registry; повторные вызовы безопасны.
func MustRegister() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			KafkaMessagesConsumed, KafkaMessagesProcessed, KafkaMessagesFailed, KafkaMessagesPublished,
			CacheOps, CacheSize,
			CatalogRequests, CatalogRequestDuration, ProductSubmissions, CheckoutActions,
		)
	})
}
