// Пакет rest — HTTP-интерфейс сервиса: админка товаров, оформление заказа на витрине и чтение заказов.
package rest

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/Gunvolt24/flowers/internal/ports"
	"github.com/Gunvolt24/flowers/pkg/httpx"
)

// Handler — обработчики HTTP поверх сервисов доменного слоя.
type Handler struct {
	orders   ports.OrderReadService
	checkout ports.CheckoutService
	products ports.ProductService
	log      ports.Logger
}

// NewHandler — DI-конструктор.
func NewHandler(
	orders ports.OrderReadService,
	checkout ports.CheckoutService,
	products ports.ProductService,
	log ports.Logger,
) *Handler {
	return &Handler{orders: orders, checkout: checkout, products: products, log: log}
}

// RouterOptions — параметры сборки роутера.
type RouterOptions struct {
	// ServiceName — имя сервиса для otelgin; пустое значение отключает серверные спаны.
	ServiceName    string
	HandlerTimeout time.Duration
}

// NewRouter — маршруты и цепочка middleware: recovery -> request id -> [otelgin] -> лог -> таймаут.
func NewRouter(h *Handler, opts RouterOptions) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true

	r.Use(gin.Recovery())
	r.Use(httpx.RequestIDMiddleware())
	if opts.ServiceName != "" {
		r.Use(otelgin.Middleware(opts.ServiceName))
	}
	r.Use(httpx.RequestLogger(h.log))
	r.Use(httpx.Timeout(opts.HandlerTimeout))

	r.NoRoute(func(c *gin.Context) { writeError(c, http.StatusNotFound, "route not found") })
	r.NoMethod(func(c *gin.Context) { writeError(c, http.StatusMethodNotAllowed, "method not allowed") })

	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Заказы.
	r.GET("/order/:uid", h.getOrder)
	r.GET("/orders", h.listUnsentOrders)
	r.GET("/orders/status", h.listOrdersByStatus)

	// Админка товаров.
	admin := r.Group("/admin")
	admin.GET("/categories", h.listCategories)
	shop := admin.Group("/shops/:shopId", shopContext())
	shop.GET("/products", h.listProducts)
	shop.GET("/product-form", h.createForm)
	shop.GET("/products/:productId/form", h.editForm)
	shop.POST("/products", h.createProduct)
	shop.PUT("/products/:productId", h.updateProduct)

	// Оформление заказа.
	r.POST("/checkout", h.startCheckout)
	sess := r.Group("/checkout/:sid", sessionContext())
	sess.GET("", h.getCheckout)
	sess.POST("/actions", h.dispatchAction)
	sess.PUT("/step", h.setStep)
	sess.PATCH("/form", h.patchForm)
	sess.PUT("/errors", h.setErrors)
	sess.DELETE("/errors/:field", h.clearError)
	sess.POST("/self-pickup", h.toggleSelfPickup)
	sess.POST("/reset", h.resetOrder)
	sess.POST("/next", h.nextStep)
	sess.POST("/back", h.prevStep)
	sess.POST("/submit", h.submitOrder)

	return r
}

// writeError — единый формат ошибки: {"error": "..."}.
func writeError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

// internalError — логирует причину и отдаёт клиенту 500 без подробностей.
func (h *Handler) internalError(c *gin.Context, op string, err error) {
	h.log.Errorf(c.Request.Context(), "%s failed: %v", op, err)
	_ = c.Error(err)
	writeError(c, http.StatusInternalServerError, "internal server error")
}
