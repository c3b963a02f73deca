package httpx

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
)

// Timeout — ограничивает время обработки запроса дедлайном контекста.
// Обработчик сам должен передавать c.Request.Context() в вызовы (БД, каталог, брокер).
func Timeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if d <= 0 {
			c.Next()
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
