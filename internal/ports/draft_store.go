package ports

import (
	"context"

	"github.com/Gunvolt24/flowers/internal/orderdraft"
)

// DraftStore — хранилище черновиков заказа по идентификатору сессии оформления.
type DraftStore interface {
	// Load — (state, true, nil) если черновик есть; (zero, false, nil) если нет.
	Load(ctx context.Context, sessionID string) (orderdraft.State, bool, error)
	Save(ctx context.Context, sessionID string, state orderdraft.State) error
	Delete(ctx context.Context, sessionID string) error
}
