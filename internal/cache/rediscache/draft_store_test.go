package rediscache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Gunvolt24/flowers/internal/orderdraft"
)

// fakeRedis — хранилище в map с записью последнего TTL.
type fakeRedis struct {
	data    map[string]string
	lastTTL time.Duration
	err     error
}

func newFakeRedis() *fakeRedis { return &fakeRedis{data: map[string]string{}} }

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	if f.err != nil {
		return redis.NewStringResult("", f.err)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value interface{}, ttl time.Duration) *redis.StatusCmd {
	if f.err != nil {
		return redis.NewStatusResult("", f.err)
	}
	f.data[key] = string(value.([]byte))
	f.lastTTL = ttl
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) *redis.IntCmd {
	var n int64
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			delete(f.data, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func (f *fakeRedis) Ping(context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", f.err)
}

func TestDraftStore_RoundTrip(t *testing.T) {
	fr := newFakeRedis()
	s := newDraftStore(fr, "test", 30*time.Minute)
	ctx := context.Background()

	st := orderdraft.InitialState()
	st.CurrentStep = 3
	st.FormData.City = "Казань"
	st.Errors["house"] = "Укажите дом."

	if err := s.Save(ctx, "sid-1", st); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, ok := fr.data["test:draft:sid-1"]; !ok {
		t.Fatalf("unexpected keys: %v", fr.data)
	}
	if fr.lastTTL != 30*time.Minute {
		t.Fatalf("ttl must be applied on save, got %v", fr.lastTTL)
	}

	got, ok, err := s.Load(ctx, "sid-1")
	if err != nil || !ok {
		t.Fatalf("load: ok=%v err=%v", ok, err)
	}
	if got.CurrentStep != 3 || got.FormData.City != "Казань" || got.Errors["house"] != "Укажите дом." || !got.FormData.IsSelfPickup {
		t.Fatalf("unexpected state: %+v", got)
	}
}

func TestDraftStore_Miss(t *testing.T) {
	s := newDraftStore(newFakeRedis(), "", time.Minute)

	_, ok, err := s.Load(context.Background(), "nope")
	if ok || err != nil {
		t.Fatalf("want clean miss, got ok=%v err=%v", ok, err)
	}
}

func TestDraftStore_Delete(t *testing.T) {
	fr := newFakeRedis()
	s := newDraftStore(fr, "p", time.Minute)
	ctx := context.Background()

	_ = s.Save(ctx, "sid", orderdraft.InitialState())
	if err := s.Delete(ctx, "sid"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(fr.data) != 0 {
		t.Fatalf("key must be removed, left %v", fr.data)
	}
}

func TestDraftStore_RedisErrorPropagates(t *testing.T) {
	fr := newFakeRedis()
	fr.err = errors.New("connection refused")
	s := newDraftStore(fr, "p", time.Minute)
	ctx := context.Background()

	if _, _, err := s.Load(ctx, "sid"); err == nil {
		t.Fatalf("expected load error")
	}
	if err := s.Save(ctx, "sid", orderdraft.InitialState()); err == nil {
		t.Fatalf("expected save error")
	}
	if err := s.Ping(ctx); err == nil {
		t.Fatalf("expected ping error")
	}
}

func TestDraftStore_CorruptedValue(t *testing.T) {
	fr := newFakeRedis()
	fr.data["p:draft:sid"] = "{not json"
	s := newDraftStore(fr, "p", time.Minute)

	if _, _, err := s.Load(context.Background(), "sid"); err == nil {
		t.Fatalf("expected decode error")
	}
}
