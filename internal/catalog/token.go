package catalog

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/Gunvolt24/flowers/internal/ports"
)

var (
	_ ports.TokenSource = StaticToken("")
	_ ports.TokenSource = (*FileTokenSource)(nil)
)

// StaticToken — неизменяемый токен (из конфигурации или для тестов).
type StaticToken string

func (t StaticToken) Token(context.Context) (string, error) {
	if t == "" {
		return "", ErrEmptyToken
	}
	return string(t), nil
}

// FileTokenSource — токен, сохранённый после входа администратора.
// Файл перечитывается на каждый запрос: обновлённый токен подхватывается без пересоздания клиента.
type FileTokenSource struct {
	Path string
}

func NewFileTokenSource(path string) *FileTokenSource {
	return &FileTokenSource{Path: path}
}

func (s *FileTokenSource) Token(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	raw, err := os.ReadFile(s.Path)
	if err != nil {
		return "", fmt.Errorf("read token file: %w", err)
	}
	token := strings.TrimSpace(string(raw))
	if token == "" {
		return "", ErrEmptyToken
	}
	return token, nil
}
