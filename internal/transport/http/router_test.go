package rest_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang/mock/gomock"

	"github.com/Gunvolt24/flowers/internal/domain"
	"github.com/Gunvolt24/flowers/internal/ports/mocks"
	rest "github.com/Gunvolt24/flowers/internal/transport/http"
	"github.com/Gunvolt24/flowers/internal/usecase"
)

type noopLogger struct{}

func (noopLogger) Infof(context.Context, string, ...any)  {}
func (noopLogger) Warnf(context.Context, string, ...any)  {}
func (noopLogger) Errorf(context.Context, string, ...any) {}

// deps — моки сервисов за роутером.
type deps struct {
	orders   *mocks.MockOrderReadService
	checkout *mocks.MockCheckoutService
	products *mocks.MockProductService
	router   http.Handler
}

func newDeps(t *testing.T, timeout time.Duration) *deps {
	t.Helper()
	ctrl := gomock.NewController(t)
	d := &deps{
		orders:   mocks.NewMockOrderReadService(ctrl),
		checkout: mocks.NewMockCheckoutService(ctrl),
		products: mocks.NewMockProductService(ctrl),
	}
	h := rest.NewHandler(d.orders, d.checkout, d.products, noopLogger{})
	d.router = rest.NewRouter(h, rest.RouterOptions{HandlerTimeout: timeout})
	return d
}

func (d *deps) do(method, target string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	d.router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var got map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v body=%s", err, w.Body.String())
	}
	msg, _ := got["error"].(string)
	return msg
}

func TestGetOrder_Found(t *testing.T) {
	d := newDeps(t, 0)
	want := &domain.Order{OrderUID: "order-1", Items: []domain.OrderItem{{ProductID: 1, Name: "Розы", Quantity: 1}}}
	d.orders.EXPECT().GetOrder(gomock.Any(), "order-1").Return(want, nil)

	w := d.do(http.MethodGet, "/order/order-1", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d, body=%s", w.Code, w.Body.String())
	}
	var got domain.Order
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if got.OrderUID != "order-1" || len(got.Items) != 1 {
		t.Fatalf("wrong order: %+v", got)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatalf("X-Request-ID header must be set")
	}
}

func TestGetOrder_NotFound(t *testing.T) {
	d := newDeps(t, 0)
	d.orders.EXPECT().GetOrder(gomock.Any(), "missing").Return(nil, nil)

	w := d.do(http.MethodGet, "/order/missing", nil)

	if w.Code != http.StatusNotFound || decodeError(t, w) != "order not found" {
		t.Fatalf("want 404 order not found, got %d, body=%s", w.Code, w.Body.String())
	}
}

func TestGetOrder_InternalError(t *testing.T) {
	d := newDeps(t, 0)
	d.orders.EXPECT().GetOrder(gomock.Any(), "intErr").Return(nil, errors.New("db error"))

	w := d.do(http.MethodGet, "/order/intErr", nil)

	if w.Code != http.StatusInternalServerError || decodeError(t, w) != "internal server error" {
		t.Fatalf("want 500, got %d, body=%s", w.Code, w.Body.String())
	}
}

func TestGetOrder_HandlerTimeout(t *testing.T) {
	d := newDeps(t, 10*time.Millisecond)
	d.orders.EXPECT().GetOrder(gomock.Any(), "slow").DoAndReturn(
		func(ctx context.Context, _ string) (*domain.Order, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		})

	w := d.do(http.MethodGet, "/order/slow", nil)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("want 500 on handler timeout, got %d", w.Code)
	}
}

func TestUnsentOrders(t *testing.T) {
	d := newDeps(t, 0)
	d.orders.EXPECT().UnsentOrders(gomock.Any()).Return(nil, nil)

	w := d.do(http.MethodGet, "/orders", nil)

	if w.Code != http.StatusOK || w.Body.String() != "[]" {
		t.Fatalf("empty list must be [], got %d %s", w.Code, w.Body.String())
	}
}

func TestOrdersByStatus(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		setup    func(d *deps)
		wantCode int
	}{
		{
			name:  "ok with pagination",
			query: "?status=NEW&limit=2&offset=4",
			setup: func(d *deps) {
				d.orders.EXPECT().OrdersByStatus(gomock.Any(), domain.OrderStatusNew, 2, 4).
					Return([]*domain.Order{{OrderUID: "a"}, {OrderUID: "b"}}, nil)
			},
			wantCode: http.StatusOK,
		},
		{
			name:  "limit clamped",
			query: "?status=NEW&limit=1000",
			setup: func(d *deps) {
				d.orders.EXPECT().OrdersByStatus(gomock.Any(), domain.OrderStatusNew, 100, 0).Return(nil, nil)
			},
			wantCode: http.StatusOK,
		},
		{
			name:     "bad pagination",
			query:    "?status=NEW&offset=-1",
			setup:    func(*deps) {},
			wantCode: http.StatusBadRequest,
		},
		{
			name:  "unknown status",
			query: "?status=LOST",
			setup: func(d *deps) {
				d.orders.EXPECT().OrdersByStatus(gomock.Any(), domain.OrderStatus("LOST"), 20, 0).
					Return(nil, usecase.ErrInvalidStatus)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name:  "repository failure",
			query: "?status=NEW",
			setup: func(d *deps) {
				d.orders.EXPECT().OrdersByStatus(gomock.Any(), domain.OrderStatusNew, 20, 0).
					Return(nil, errors.New("db down"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newDeps(t, 0)
			tt.setup(d)

			w := d.do(http.MethodGet, "/orders/status"+tt.query, nil)
			if w.Code != tt.wantCode {
				t.Fatalf("want %d, got %d body=%s", tt.wantCode, w.Code, w.Body.String())
			}
		})
	}
}

func TestServiceRoutes(t *testing.T) {
	d := newDeps(t, 0)

	if w := d.do(http.MethodGet, "/ping", nil); w.Code != http.StatusOK || w.Body.String() != "pong" {
		t.Fatalf("/ping: got %d %q", w.Code, w.Body.String())
	}
	if w := d.do(http.MethodGet, "/metrics", nil); w.Code != http.StatusOK {
		t.Fatalf("/metrics: got %d", w.Code)
	}

	w := d.do(http.MethodGet, "/no/such/route", nil)
	if w.Code != http.StatusNotFound || decodeError(t, w) != "route not found" {
		t.Fatalf("404: got %d %s", w.Code, w.Body.String())
	}

	w = d.do(http.MethodPost, "/order/some-id", nil)
	if w.Code != http.StatusMethodNotAllowed || decodeError(t, w) != "method not allowed" {
		t.Fatalf("405: got %d %s", w.Code, w.Body.String())
	}
	if w.Header().Get("Allow") != http.MethodGet {
		t.Fatalf("Allow header: got %q", w.Header().Get("Allow"))
	}
}
