package ports

import "context"

// TokenSource — источник bearer-токена; вызывается на каждый исходящий запрос.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}
