package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Gunvolt24/flowers/internal/domain"
	"github.com/Gunvolt24/flowers/internal/usecase"
	"github.com/Gunvolt24/flowers/pkg/httpx"
)

const (
	defaultOrdersLimit = 20
	maxOrdersLimit     = 100
)

func (h *Handler) getOrder(c *gin.Context) {
	uid := c.Param("uid")
	order, err := h.orders.GetOrder(c.Request.Context(), uid)
	if err != nil {
		h.internalError(c, "GetOrder uid="+uid, err)
		return
	}
	if order == nil {
		writeError(c, http.StatusNotFound, "order not found")
		return
	}
	c.JSON(http.StatusOK, order)
}

// listUnsentOrders — выдаёт ещё не отправленные заказы; выданные помечаются отправленными.
func (h *Handler) listUnsentOrders(c *gin.Context) {
	orders, err := h.orders.UnsentOrders(c.Request.Context())
	if err != nil {
		h.internalError(c, "UnsentOrders", err)
		return
	}
	c.JSON(http.StatusOK, nonNil(orders))
}

func (h *Handler) listOrdersByStatus(c *gin.Context) {
	limit, offset, err := httpx.ParseLimitOffset(c, defaultOrdersLimit, maxOrdersLimit)
	if err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}

	status := domain.OrderStatus(c.Query("status"))
	orders, err := h.orders.OrdersByStatus(c.Request.Context(), status, limit, offset)
	switch {
	case errors.Is(err, usecase.ErrInvalidStatus):
		writeError(c, http.StatusBadRequest, "unknown order status")
	case err != nil:
		h.internalError(c, "OrdersByStatus status="+string(status), err)
	default:
		c.JSON(http.StatusOK, nonNil(orders))
	}
}

// nonNil — пустой список отдаётся как [], а не null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
