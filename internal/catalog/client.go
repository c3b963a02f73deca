// Пакет catalog — HTTP-клиент REST API каталога (товары магазинов, категории).
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/Gunvolt24/flowers/internal/domain"
	"github.com/Gunvolt24/flowers/internal/ports"
)

// Проверка, что Client удовлетворяет порту CatalogAPI.
var _ ports.CatalogAPI = (*Client)(nil)

// maxErrorBody — сколько байт тела ошибки сохраняем в APIError.
const maxErrorBody = 512

// Options — параметры клиента.
type Options struct {
	BaseURL string
	Timeout time.Duration
	Tracing bool
	// Base — нижний транспорт (nil -> http.DefaultTransport).
	Base http.RoundTripper
}

// Client — клиент каталога. Токен берётся у TokenSource на каждый запрос.
type Client struct {
	baseURL string
	http    *http.Client
	log     ports.Logger
}

// NewClient — сборка цепочки транспортов: [otelhttp] -> метрики -> bearer -> base.
func NewClient(opts Options, tokens ports.TokenSource, log ports.Logger) *Client {
	var rt http.RoundTripper = &BearerTransport{Base: opts.Base, Tokens: tokens}
	rt = metricsTransport{base: rt}
	if opts.Tracing {
		rt = otelhttp.NewTransport(rt)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		http:    &http.Client{Transport: rt, Timeout: timeout},
		log:     log,
	}
}

// GetProduct — GET /shops/{shopId}/products/{productId}.
func (c *Client) GetProduct(ctx context.Context, shopID, productID string) (*domain.Product, error) {
	var dto productDTO
	if err := c.getJSON(ctx, productPath(shopID, productID), &dto); err != nil {
		return nil, err
	}

	p, ok := dto.toDomain()
	if !ok {
		c.log.Warnf(ctx, "catalog: malformed price shop=%s product=%s price=%s", shopID, productID, string(dto.Price))
	}
	return &p, nil
}

// ListProducts — GET /shops/{shopId}/products.
func (c *Client) ListProducts(ctx context.Context, shopID string) ([]domain.Product, error) {
	var dtos []productDTO
	if err := c.getJSON(ctx, productsPath(shopID), &dtos); err != nil {
		return nil, err
	}

	out := make([]domain.Product, 0, len(dtos))
	for _, d := range dtos {
		p, ok := d.toDomain()
		if !ok {
			c.log.Warnf(ctx, "catalog: malformed price shop=%s product=%d price=%s", shopID, d.ID, string(d.Price))
		}
		out = append(out, p)
	}
	return out, nil
}

// ListCategories — GET /categories.
func (c *Client) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var dtos []categoryDTO
	if err := c.getJSON(ctx, "/categories", &dtos); err != nil {
		return nil, err
	}

	out := make([]domain.Category, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, d.toDomain())
	}
	return out, nil
}

// CreateProduct — POST /shops/{shopId}/products (multipart).
func (c *Client) CreateProduct(ctx context.Context, shopID string, payload domain.ProductPayload) error {
	return c.send(ctx, http.MethodPost, productsPath(shopID), payload)
}

// UpdateProduct — PUT /shops/{shopId}/products/{productId} (multipart).
func (c *Client) UpdateProduct(ctx context.Context, shopID, productID string, payload domain.ProductPayload) error {
	return c.send(ctx, http.MethodPut, productPath(shopID, productID), payload)
}

func (c *Client) getJSON(ctx context.Context, path string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, http.NoBody)
	if err != nil {
		return fmt.Errorf("catalog: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.do(req, path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("catalog GET %s: decode: %w", path, err)
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, path string, payload domain.ProductPayload) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(payload.Data))
	if err != nil {
		return fmt.Errorf("catalog: build request: %w", err)
	}
	req.Header.Set("Content-Type", payload.ContentType)

	resp, err := c.do(req, path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// do — выполнить запрос; не-2xx превращается в *APIError (тело закрыто).
func (c *Client) do(req *http.Request, path string) (*http.Response, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog %s %s: %w", req.Method, path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &APIError{
			Method:     req.Method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}
	return resp, nil
}

func productsPath(shopID string) string {
	return "/shops/" + url.PathEscape(shopID) + "/products"
}

func productPath(shopID, productID string) string {
	return productsPath(shopID) + "/" + url.PathEscape(productID)
}
