package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/Gunvolt24/flowers/pkg/metrics"
)

func TestMustRegister_TwiceDoesNotPanic(t *testing.T) {
	metrics.MustRegister()
	metrics.MustRegister()

	// после регистрации метрики видны в default registry
	metrics.CheckoutActions.WithLabelValues("setStep").Inc()
	n, err := testutil.GatherAndCount(prometheus.DefaultGatherer, "checkout_actions_total")
	if err != nil || n == 0 {
		t.Fatalf("checkout_actions_total not gathered: n=%d err=%v", n, err)
	}
}

func TestCounters_Increment(t *testing.T) {
	tests := []struct {
		name string
		c    prometheus.Counter
	}{
		{"consumed", metrics.KafkaMessagesConsumed.WithLabelValues("orders")},
		{"processed", metrics.KafkaMessagesProcessed.WithLabelValues("orders")},
		{"failed", metrics.KafkaMessagesFailed.WithLabelValues("orders")},
		{"published ok", metrics.KafkaMessagesPublished.WithLabelValues("orders", "ok")},
		{"catalog 502", metrics.CatalogRequests.WithLabelValues("GET", "502")},
		{"product edit invalid", metrics.ProductSubmissions.WithLabelValues("edit", "invalid")},
		{"toggle", metrics.CheckoutActions.WithLabelValues("toggleSelfPickup")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(tt.c)
			tt.c.Inc()
			if got := testutil.ToFloat64(tt.c); got != before+1 {
				t.Fatalf("got=%v want=%v", got, before+1)
			}
		})
	}
}

func TestCacheOps_LabelsAreIndependent(t *testing.T) {
	draftsHit := metrics.CacheOps.WithLabelValues("drafts", "hit")
	draftsMiss := metrics.CacheOps.WithLabelValues("drafts", "miss")
	productsHit := metrics.CacheOps.WithLabelValues("products", "hit")

	hit, miss, other := testutil.ToFloat64(draftsHit), testutil.ToFloat64(draftsMiss), testutil.ToFloat64(productsHit)
	draftsHit.Add(2)

	if testutil.ToFloat64(draftsHit) != hit+2 || testutil.ToFloat64(draftsMiss) != miss || testutil.ToFloat64(productsHit) != other {
		t.Fatalf("label sets must not affect each other")
	}
}

func TestCatalogRequestDuration_Observed(t *testing.T) {
	before := testutil.CollectAndCount(metrics.CatalogRequestDuration)
	metrics.CatalogRequestDuration.WithLabelValues("PATCH").Observe(0.12)
	metrics.CatalogRequestDuration.WithLabelValues("PATCH").Observe(0.3)

	if got := testutil.CollectAndCount(metrics.CatalogRequestDuration); got != before+1 {
		t.Fatalf("one new series expected: before=%d got=%d", before, got)
	}
}
