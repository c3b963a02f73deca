package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/segmentio/kafka-go"

	"github.com/Gunvolt24/flowers/internal/domain"
	"github.com/Gunvolt24/flowers/internal/kafka/mocks"
	"github.com/Gunvolt24/flowers/pkg/ctxmeta"
	"github.com/Gunvolt24/flowers/pkg/metrics"
)

func TestPublish_KeyValueAndHeaders(t *testing.T) {
	ctrl := gomock.NewController(t)
	w := mocks.NewMockwriter(ctrl)
	p := newProducer(w, "orders-pub-ok")

	order := &domain.Order{
		OrderUID:  "ord-42",
		OrderForm: domain.OrderForm{FullName: "Анна", PhoneNumber: "+7"},
		Items:     []domain.OrderItem{{ProductID: 1, Name: "Тюльпаны", Price: 100, Quantity: 3}},
		Status:    domain.OrderStatusNew,
	}

	w.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, msgs ...kafka.Message) error {
			if len(msgs) != 1 {
				t.Fatalf("want 1 message, got %d", len(msgs))
			}
			m := msgs[0]
			if string(m.Key) != "ord-42" {
				t.Fatalf("key: want ord-42, got %q", m.Key)
			}
			var got domain.Order
			if err := json.Unmarshal(m.Value, &got); err != nil {
				t.Fatalf("value must be order JSON: %v", err)
			}
			if got.OrderUID != "ord-42" || got.FullName != "Анна" || len(got.Items) != 1 {
				t.Fatalf("unexpected payload: %+v", got)
			}
			if len(m.Headers) != 1 || m.Headers[0].Key != "X-Request-ID" || string(m.Headers[0].Value) != "rid-1" {
				t.Fatalf("request id header missing: %+v", m.Headers)
			}
			return nil
		})

	before := testutil.ToFloat64(metrics.KafkaMessagesPublished.WithLabelValues("orders-pub-ok", "ok"))
	if err := p.Publish(ctxmeta.WithRequestID(context.Background(), "rid-1"), order); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	after := testutil.ToFloat64(metrics.KafkaMessagesPublished.WithLabelValues("orders-pub-ok", "ok"))
	if after-before != 1 {
		t.Fatalf("published ok counter: want +1, got %v", after-before)
	}
}

func TestPublish_WriterErrorWrapped(t *testing.T) {
	ctrl := gomock.NewController(t)
	w := mocks.NewMockwriter(ctrl)
	p := newProducer(w, "orders-pub-err")

	boom := errors.New("leader not available")
	w.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(boom)

	err := p.Publish(context.Background(), &domain.Order{OrderUID: "ord-1"})
	if !errors.Is(err, boom) {
		t.Fatalf("want wrapped writer error, got %v", err)
	}
	if v := testutil.ToFloat64(metrics.KafkaMessagesPublished.WithLabelValues("orders-pub-err", "error")); v != 1 {
		t.Fatalf("published error counter: want 1, got %v", v)
	}
}

func TestPublish_RejectsEmptyOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	p := newProducer(mocks.NewMockwriter(ctrl), "orders")

	if err := p.Publish(context.Background(), nil); err == nil {
		t.Fatal("nil order must fail")
	}
	if err := p.Publish(context.Background(), &domain.Order{}); err == nil {
		t.Fatal("order without uid must fail")
	}
}

func TestProducerClose_Once(t *testing.T) {
	ctrl := gomock.NewController(t)
	w := mocks.NewMockwriter(ctrl)
	w.EXPECT().Close().Return(nil).Times(1)

	p := newProducer(w, "orders")
	_ = p.Close()
	_ = p.Close()
}

func TestProducerConfig_writer(t *testing.T) {
	t.Parallel()

	cfg := ProducerConfig{Brokers: []string{"k1:9092"}, Topic: "orders"}
	w := cfg.writer()

	if w.Topic != "orders" {
		t.Fatalf("Topic: want orders, got %s", w.Topic)
	}
	if w.RequiredAcks != kafka.RequireAll {
		t.Fatalf("RequiredAcks: want all, got %v", w.RequiredAcks)
	}
	if _, ok := w.Balancer.(*kafka.Hash); !ok {
		t.Fatalf("Balancer: want hash by key, got %T", w.Balancer)
	}
	if w.WriteTimeout != 10*time.Second {
		t.Fatalf("WriteTimeout default: want 10s, got %s", w.WriteTimeout)
	}
}

func TestConsumerConfig_withDefaults(t *testing.T) {
	t.Parallel()

	got := (&ConsumerConfig{RetryInitial: 2 * time.Minute}).withDefaults()
	if got.ProcessTimeout != 5*time.Second {
		t.Fatalf("ProcessTimeout default: want 5s, got %s", got.ProcessTimeout)
	}
	if got.RetryMax != 2*time.Minute {
		t.Fatalf("RetryMax must not be below RetryInitial, got %s", got.RetryMax)
	}

	got = (&ConsumerConfig{}).withDefaults()
	if got.RetryInitial != time.Second || got.RetryMax != 30*time.Second {
		t.Fatalf("retry defaults: got %s / %s", got.RetryInitial, got.RetryMax)
	}
}
