package catalog

import (
	"errors"
	"fmt"
)

// ErrEmptyToken — источник вернул пустой токен.
var ErrEmptyToken = errors.New("catalog token is empty")

// APIError — ответ каталога с не-2xx статусом.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("catalog %s %s: status %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("catalog %s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

// IsNotFound — upstream ответил 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == 404
}
