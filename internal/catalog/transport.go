package catalog

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Gunvolt24/flowers/internal/ports"
	"github.com/Gunvolt24/flowers/pkg/ctxmeta"
	"github.com/Gunvolt24/flowers/pkg/metrics"
)

// BearerTransport — RoundTripper, который на каждый запрос берёт актуальный токен у TokenSource
// и проставляет Authorization и X-Request-ID. Исходный запрос не изменяется.
type BearerTransport struct {
	Base   http.RoundTripper
	Tokens ports.TokenSource
}

func (t *BearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	token, err := t.Tokens.Token(req.Context())
	if err != nil {
		closeBody(req)
		return nil, fmt.Errorf("catalog auth: %w", err)
	}

	out := req.Clone(req.Context())
	out.Header.Set("Authorization", "Bearer "+token)
	if rid, ok := ctxmeta.RequestIDFromContext(req.Context()); ok && out.Header.Get("X-Request-ID") == "" {
		out.Header.Set("X-Request-ID", rid)
	}
	return t.base().RoundTrip(out)
}

func (t *BearerTransport) base() http.RoundTripper {
	if t.Base != nil {
		return t.Base
	}
	return http.DefaultTransport
}

// metricsTransport — счётчик и гистограмма запросов к каталогу.
type metricsTransport struct {
	base http.RoundTripper
}

func (t metricsTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.base.RoundTrip(req)
	metrics.CatalogRequestDuration.WithLabelValues(req.Method).Observe(time.Since(start).Seconds())

	code := "error"
	if err == nil {
		code = strconv.Itoa(resp.StatusCode)
	}
	metrics.CatalogRequests.WithLabelValues(req.Method, code).Inc()
	return resp, err
}

// RoundTripper обязан закрыть тело запроса даже при ошибке.
func closeBody(req *http.Request) {
	if req.Body != nil {
		_ = req.Body.Close()
	}
}
