//go:build integration

package rest_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	cachemem "github.com/Gunvolt24/flowers/internal/cache/memory"
	"github.com/Gunvolt24/flowers/internal/domain"
	pgrepo "github.com/Gunvolt24/flowers/internal/repo/postgres"
	"github.com/Gunvolt24/flowers/internal/testutil"
	rest "github.com/Gunvolt24/flowers/internal/transport/http"
	"github.com/Gunvolt24/flowers/internal/usecase"
	"github.com/Gunvolt24/flowers/pkg/logger"
	"github.com/Gunvolt24/flowers/pkg/validate"
)

// pgServer — сервер поверх настоящего Postgres; опубликованные заказы сохраняются напрямую,
// как это сделал бы консьюмер.
type pgServer struct {
	ts   *httptest.Server
	repo *pgrepo.OrderRepository
}

// savingPublisher — вместо брокера сразу отдаёт заказ в OrderService.
type savingPublisher struct {
	mu  sync.Mutex
	svc *usecase.OrderService
}

func (p *savingPublisher) Publish(ctx context.Context, order *domain.Order) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	raw, err := json.Marshal(order)
	if err != nil {
		return err
	}
	return p.svc.SaveFromMessage(ctx, raw)
}

func startServer(t *testing.T) *pgServer {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	t.Cleanup(cancel)

	pg, stop, err := testutil.StartPostgresTC(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = stop(context.Background()) })
	require.NoError(t, testutil.ApplyMigrationsGoose(pg.DSN))

	pool, err := pgrepo.NewPool(ctx, pg.DSN, pgrepo.PoolOptions{MaxConns: 4})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	logg, cleanup, err := logger.NewZapLogger(false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cleanup() })

	repo := pgrepo.NewOrderRepository(pool)
	validator := validate.NewOrderValidator()
	orders := usecase.NewOrderService(repo, cachemem.NewOrderCache(100, time.Minute), logg, validator)
	checkout := usecase.NewCheckoutService(
		cachemem.NewDraftStore(100, time.Hour), validator, &savingPublisher{svc: orders}, logg,
	)

	h := rest.NewHandler(orders, checkout, nil, logg)
	ts := httptest.NewServer(rest.NewRouter(h, rest.RouterOptions{HandlerTimeout: 5 * time.Second}))
	t.Cleanup(ts.Close)

	return &pgServer{ts: ts, repo: repo}
}

func (s *pgServer) call(t *testing.T, method, path, body string) (int, []byte) {
	t.Helper()
	req, err := http.NewRequest(method, s.ts.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var raw json.RawMessage
	_ = json.NewDecoder(resp.Body).Decode(&raw)
	return resp.StatusCode, raw
}

// 1) GET /order/:uid — 200 для сохранённого заказа, 404 для неизвестного.
func TestHTTP_GetOrder_TC(t *testing.T) {
	s := startServer(t)
	ord := testutil.MakeOrder()
	require.NoError(t, s.repo.Save(context.Background(), &ord))

	code, raw := s.call(t, http.MethodGet, "/order/"+ord.OrderUID, "")
	require.Equal(t, http.StatusOK, code)
	var got domain.Order
	require.NoError(t, json.Unmarshal(raw, &got))
	require.Equal(t, ord.OrderUID, got.OrderUID)
	require.Len(t, got.Items, 1)

	code, raw = s.call(t, http.MethodGet, "/order/not-existing-uid", "")
	require.Equal(t, http.StatusNotFound, code)
	require.JSONEq(t, `{"error":"order not found"}`, string(raw))
}

// 2) GET /orders выдаёт неотправленные заказы один раз; /orders/status пагинирует.
func TestHTTP_UnsentAndByStatus_TC(t *testing.T) {
	s := startServer(t)
	ctx := context.Background()
	base := time.Now().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		o := testutil.MakeOrder(testutil.WithCreatedAt(base.Add(time.Duration(i) * time.Minute)))
		require.NoError(t, s.repo.Save(ctx, &o))
	}
	other := testutil.MakeOrder(testutil.WithStatus(domain.OrderStatusDelivered))
	require.NoError(t, s.repo.Save(ctx, &other))

	code, raw := s.call(t, http.MethodGet, "/orders", "")
	require.Equal(t, http.StatusOK, code)
	var unsent []domain.Order
	require.NoError(t, json.Unmarshal(raw, &unsent))
	require.Len(t, unsent, 4)

	code, raw = s.call(t, http.MethodGet, "/orders", "")
	require.Equal(t, http.StatusOK, code)
	require.JSONEq(t, `[]`, string(raw))

	code, raw = s.call(t, http.MethodGet, "/orders/status?status=NEW&limit=2&offset=1", "")
	require.Equal(t, http.StatusOK, code)
	var page []domain.Order
	require.NoError(t, json.Unmarshal(raw, &page))
	require.Len(t, page, 2)
	for _, o := range page {
		require.Equal(t, domain.OrderStatusNew, o.Status)
	}

	code, _ = s.call(t, http.MethodGet, "/orders/status?status=LOST", "")
	require.Equal(t, http.StatusBadRequest, code)
}

// 3) Полный сценарий оформления: шаги мастера, ошибки полей, отправка и чтение заказа.
func TestHTTP_CheckoutFlow_TC(t *testing.T) {
	s := startServer(t)

	code, raw := s.call(t, http.MethodPost, "/checkout", "")
	require.Equal(t, http.StatusCreated, code)
	var started struct {
		SessionID string `json:"sessionId"`
	}
	require.NoError(t, json.Unmarshal(raw, &started))
	sid := "/checkout/" + started.SessionID

	// пустые контакты — 422 и ошибки в состоянии
	code, raw = s.call(t, http.MethodPost, sid+"/next", "")
	require.Equal(t, http.StatusUnprocessableEntity, code)
	require.Contains(t, string(raw), usecase.MsgFullName)

	code, _ = s.call(t, http.MethodPatch, sid+"/form", `{"fullName":"Анна","phoneNumber":"+79990001122"}`)
	require.Equal(t, http.StatusOK, code)
	code, _ = s.call(t, http.MethodDelete, sid+"/errors/fullName", "")
	require.Equal(t, http.StatusOK, code)
	code, _ = s.call(t, http.MethodPost, sid+"/next", "")
	require.Equal(t, http.StatusOK, code)

	// курьерская доставка
	code, _ = s.call(t, http.MethodPost, sid+"/self-pickup", "")
	require.Equal(t, http.StatusOK, code)
	code, _ = s.call(t, http.MethodPatch, sid+"/form", `{
		"recipientName":"Иван","recipientPhone":"+79991112233",
		"city":"Казань","street":"Баумана","house":"1",
		"deliveryMethod":"COURIER","deliveryDate":"2026-03-08","deliveryTime":"10:00-12:00"}`)
	require.Equal(t, http.StatusOK, code)

	code, raw = s.call(t, http.MethodPost, sid+"/submit", `{"items":[{"id":7,"name":"Тюльпаны","price":1500,"quantity":3}]}`)
	require.Equal(t, http.StatusCreated, code)
	var submitted struct {
		OrderUID string `json:"order_uid"`
	}
	require.NoError(t, json.Unmarshal(raw, &submitted))
	require.NotEmpty(t, submitted.OrderUID)

	code, raw = s.call(t, http.MethodGet, "/order/"+submitted.OrderUID, "")
	require.Equal(t, http.StatusOK, code)
	var got domain.Order
	require.NoError(t, json.Unmarshal(raw, &got))
	require.Equal(t, "Казань", got.City)
	require.Equal(t, domain.OrderStatusNew, got.Status)
	require.Len(t, got.Items, 1)

	// после отправки форма сброшена
	code, raw = s.call(t, http.MethodGet, sid, "")
	require.Equal(t, http.StatusOK, code)
	require.Contains(t, string(raw), `"fullName":""`)
}

// 4) /ping, /metrics, 404 и 405.
func TestHTTP_Health_Metrics_And_Fallbacks_TC(t *testing.T) {
	logg, cleanup, err := logger.NewZapLogger(false)
	require.NoError(t, err)
	defer func() { _ = cleanup() }()

	ts := httptest.NewServer(rest.NewRouter(rest.NewHandler(nil, nil, nil, logg), rest.RouterOptions{}))
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/ping")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/no/such/route")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = http.Post(ts.URL+"/order/some-id", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	require.Equal(t, http.MethodGet, resp.Header.Get("Allow"))
}
