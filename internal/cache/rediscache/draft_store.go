// Пакет rediscache — хранилище черновиков оформления в Redis (общие для нескольких реплик).
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Gunvolt24/flowers/internal/orderdraft"
	"github.com/Gunvolt24/flowers/internal/ports"
	"github.com/Gunvolt24/flowers/pkg/metrics"
)

var _ ports.DraftStore = (*DraftStore)(nil)

const cacheName = "drafts_redis"

// client — используемое подмножество redis.Cmdable.
type client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Ping(ctx context.Context) *redis.StatusCmd
}

// DraftStore — черновик хранится JSON-строкой под ключом {prefix}:draft:{sessionID}, TTL обновляется при каждом Save.
type DraftStore struct {
	client client
	prefix string
	ttl    time.Duration
	closer func() error
}

// NewDraftStore — подключение к Redis по адресу addr.
func NewDraftStore(addr, prefix string, ttl time.Duration) *DraftStore {
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	s := newDraftStore(rdb, prefix, ttl)
	s.closer = rdb.Close
	return s
}

func newDraftStore(c client, prefix string, ttl time.Duration) *DraftStore {
	if prefix == "" {
		prefix = "flowers"
	}
	return &DraftStore{client: c, prefix: prefix, ttl: ttl}
}

// Ping — проверка соединения при старте.
func (s *DraftStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *DraftStore) Load(ctx context.Context, sessionID string) (orderdraft.State, bool, error) {
	raw, err := s.client.Get(ctx, s.key(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.CacheOps.WithLabelValues(cacheName, "miss").Inc()
		return orderdraft.State{}, false, nil
	}
	if err != nil {
		return orderdraft.State{}, false, fmt.Errorf("redis get draft: %w", err)
	}

	var st orderdraft.State
	if err := json.Unmarshal(raw, &st); err != nil {
		return orderdraft.State{}, false, fmt.Errorf("decode draft: %w", err)
	}
	if st.Errors == nil {
		st.Errors = map[string]string{}
	}
	metrics.CacheOps.WithLabelValues(cacheName, "hit").Inc()
	return st, true, nil
}

func (s *DraftStore) Save(ctx context.Context, sessionID string, state orderdraft.State) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}
	if err := s.client.Set(ctx, s.key(sessionID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set draft: %w", err)
	}
	return nil
}

func (s *DraftStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis del draft: %w", err)
	}
	metrics.CacheOps.WithLabelValues(cacheName, "invalidated").Inc()
	return nil
}

// Close — закрыть соединение (только для клиента, созданного NewDraftStore).
func (s *DraftStore) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer()
}

func (s *DraftStore) key(sessionID string) string {
	return fmt.Sprintf("%s:draft:%s", s.prefix, sessionID)
}
