// Пакет httpx — общие gin-middleware и разбор параметров запроса.
package httpx

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ErrBadPagination — limit/offset не являются неотрицательными целыми.
var ErrBadPagination = errors.New("limit and offset must be non-negative integers")

// ClampInt — ограничение значения v в диапазоне [lo, hi].
func ClampInt(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

// ParseLimitOffset — limit/offset из query. Отсутствующие берутся по умолчанию,
// limit прижимается к [1, maxLimit]; нечисловые или отрицательные значения — ErrBadPagination.
func ParseLimitOffset(c *gin.Context, defaultLimit, maxLimit int) (limit, offset int, err error) {
	limit = ClampInt(defaultLimit, 1, maxLimit)
	if raw, ok := c.GetQuery("limit"); ok {
		v, convErr := strconv.Atoi(raw)
		if convErr != nil || v < 0 {
			return 0, 0, ErrBadPagination
		}
		limit = ClampInt(v, 1, maxLimit)
	}
	if raw, ok := c.GetQuery("offset"); ok {
		v, convErr := strconv.Atoi(raw)
		if convErr != nil || v < 0 {
			return 0, 0, ErrBadPagination
		}
		offset = v
	}
	return limit, offset, nil
}
