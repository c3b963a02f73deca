package memory

import (
	"context"
	"time"

	"github.com/Gunvolt24/flowers/internal/orderdraft"
	"github.com/Gunvolt24/flowers/internal/ports"
)

var _ ports.DraftStore = (*DraftStore)(nil)

// DraftStore — черновики оформления в памяти процесса. Неактивные сессии истекают по TTL,
// при переполнении вытесняются самые давние.
type DraftStore struct {
	lru *lruTTL[orderdraft.State]
}

func NewDraftStore(capacity int, ttl time.Duration) *DraftStore {
	return &DraftStore{lru: newLRUTTL("drafts", capacity, ttl, orderdraft.State.Clone)}
}

func (s *DraftStore) Load(_ context.Context, sessionID string) (orderdraft.State, bool, error) {
	st, ok := s.lru.get(sessionID)
	return st, ok, nil
}

func (s *DraftStore) Save(_ context.Context, sessionID string, state orderdraft.State) error {
	s.lru.set(sessionID, state)
	return nil
}

func (s *DraftStore) Delete(_ context.Context, sessionID string) error {
	s.lru.remove(sessionID)
	return nil
}
