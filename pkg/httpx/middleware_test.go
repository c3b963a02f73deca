package httpx_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Gunvolt24/flowers/pkg/httpx"
)

type recLogger struct {
	mu    sync.Mutex
	lines map[string][]string
}

func (l *recLogger) add(level, format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.lines == nil {
		l.lines = map[string][]string{}
	}
	l.lines[level] = append(l.lines[level], fmt.Sprintf(format, args...))
}

func (l *recLogger) Infof(_ context.Context, f string, a ...any)  { l.add("info", f, a...) }
func (l *recLogger) Warnf(_ context.Context, f string, a ...any)  { l.add("warn", f, a...) }
func (l *recLogger) Errorf(_ context.Context, f string, a ...any) { l.add("error", f, a...) }

func TestRequestLogger_LevelsAndQuietPaths(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log := &recLogger{}

	r := gin.New()
	r.Use(httpx.RequestLogger(log))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusBadGateway) })

	for _, p := range []string{"/ping", "/ok", "/missing", "/boom"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, p, http.NoBody))
	}

	if len(log.lines["info"]) != 1 || len(log.lines["warn"]) != 1 || len(log.lines["error"]) != 1 {
		t.Fatalf("unexpected log levels: %v", log.lines)
	}
}

func TestTimeout_SetsDeadline(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var deadline time.Time
	var has bool
	r := gin.New()
	r.Use(httpx.Timeout(50 * time.Millisecond))
	r.GET("/", func(c *gin.Context) {
		deadline, has = c.Request.Context().Deadline()
		c.Status(http.StatusNoContent)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", http.NoBody))
	if !has || time.Until(deadline) > 50*time.Millisecond {
		t.Fatalf("deadline must be set within 50ms, got %v (has=%v)", deadline, has)
	}
}

func TestTimeout_ZeroDisables(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var has bool
	r := gin.New()
	r.Use(httpx.Timeout(0))
	r.GET("/", func(c *gin.Context) {
		_, has = c.Request.Context().Deadline()
	})
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", http.NoBody))
	if has {
		t.Fatal("zero timeout must not set deadline")
	}
}
