package httpx

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Gunvolt24/flowers/internal/ports"
)

// quietPaths — служебные маршруты, которые не пишутся в лог.
var quietPaths = map[string]struct{}{
	"/metrics": {},
	"/ping":    {},
}

// RequestLogger — одна строка лога на запрос. request_id и trace_id добавляет сам логгер из контекста.
// 5xx пишутся уровнем error, 4xx — warn.
func RequestLogger(log ports.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if _, quiet := quietPaths[path]; quiet {
			return
		}
		if path == "" {
			path = c.Request.URL.Path
		}

		status := c.Writer.Status()
		const format = "http %s %s status=%d ip=%s duration=%s size=%d errors=%q"
		args := []any{c.Request.Method, path, status, c.ClientIP(), time.Since(start), c.Writer.Size(), c.Errors.String()}

		ctx := c.Request.Context()
		switch {
		case status >= 500:
			log.Errorf(ctx, format, args...)
		case status >= 400:
			log.Warnf(ctx, format, args...)
		default:
			log.Infof(ctx, format, args...)
		}
	}
}
