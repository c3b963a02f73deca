package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Gunvolt24/flowers/internal/domain"
)

func bouquetOrder(uid string) *domain.Order {
	return &domain.Order{
		OrderUID:  uid,
		OrderForm: domain.OrderForm{FullName: "Анна", PhoneNumber: "+79990000000", IsSelfPickup: true},
		Items:     []domain.OrderItem{{ProductID: 1, Name: "Пионы", Price: 2500, Quantity: 1}},
		Status:    domain.OrderStatusNew,
	}
}

func TestOrderCache_HitAndMiss(t *testing.T) {
	c := NewOrderCache(2, 5*time.Minute)
	ctx := context.Background()

	if _, ok := c.Get(ctx, "uid-1"); ok {
		t.Fatalf("expected miss before Set")
	}
	if err := c.Set(ctx, bouquetOrder("uid-1")); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, ok := c.Get(ctx, "uid-1")
	if !ok || got.OrderUID != "uid-1" || got.FullName != "Анна" {
		t.Fatalf("unexpected hit: %+v ok=%v", got, ok)
	}
}

func TestOrderCache_SkipsOrdersWithoutUID(t *testing.T) {
	c := NewOrderCache(2, 0)
	ctx := context.Background()

	for _, o := range []*domain.Order{nil, {}} {
		if err := c.Set(ctx, o); err != nil {
			t.Fatalf("set must be a no-op, got %v", err)
		}
	}
	if c.lru.len() != 0 {
		t.Fatalf("orders without uid must not be cached")
	}
}

func TestOrderCache_ReturnsCopies(t *testing.T) {
	c := NewOrderCache(1, 0)
	ctx := context.Background()
	orig := bouquetOrder("uid-1")
	_ = c.Set(ctx, orig)

	orig.Items[0].Name = "Розы"
	orig.Status = domain.OrderStatusCanceled
	got, _ := c.Get(ctx, "uid-1")
	got.Items[0].Quantity = 99

	again, _ := c.Get(ctx, "uid-1")
	if again.Items[0].Name != "Пионы" || again.Items[0].Quantity != 1 || again.Status != domain.OrderStatusNew {
		t.Fatalf("cache must be isolated from callers, got %+v", again)
	}
}

func TestCloneOrder_NilItems(t *testing.T) {
	if cloneOrder(nil) != nil {
		t.Fatalf("nil must clone to nil")
	}
	o := &domain.Order{OrderUID: "uid-1"}
	if c := cloneOrder(o); c == o || c.Items != nil {
		t.Fatalf("clone must be a new value with nil items: %+v", c)
	}
}

func TestOrderCache_WarmUp(t *testing.T) {
	c := NewOrderCache(10, 0)
	last := []*domain.Order{bouquetOrder("a"), nil, bouquetOrder("b")}

	if err := c.WarmUp(context.Background(), last); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.lru.len() != 2 {
		t.Fatalf("want 2 cached orders, got %d", c.lru.len())
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	fresh := NewOrderCache(10, 0)
	if err := fresh.WarmUp(ctx, last); !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
	if fresh.lru.len() != 0 {
		t.Fatalf("nothing must be cached after cancel")
	}
}
