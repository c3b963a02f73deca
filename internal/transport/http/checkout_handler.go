package rest

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Gunvolt24/flowers/internal/domain"
	"github.com/Gunvolt24/flowers/internal/orderdraft"
	"github.com/Gunvolt24/flowers/internal/usecase"
	"github.com/Gunvolt24/flowers/pkg/ctxmeta"
	"github.com/Gunvolt24/flowers/pkg/validate"
)

// sessionContext — кладёт идентификатор сессии оформления в контекст запроса (для логов).
func sessionContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := ctxmeta.WithSessionID(c.Request.Context(), c.Param("sid"))
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

type startCheckoutResponse struct {
	SessionID string           `json:"sessionId"`
	State     orderdraft.State `json:"state"`
}

type stepRequest struct {
	Step *int `json:"step" binding:"required"`
}

type submitRequest struct {
	Items []domain.OrderItem `json:"items"`
}

type submitResponse struct {
	OrderUID string             `json:"order_uid"`
	Status   domain.OrderStatus `json:"status"`
}

func (h *Handler) startCheckout(c *gin.Context) {
	sid, state, err := h.checkout.Start(c.Request.Context())
	if err != nil {
		h.internalError(c, "checkout start", err)
		return
	}
	c.JSON(http.StatusCreated, startCheckoutResponse{SessionID: sid, State: state})
}

func (h *Handler) getCheckout(c *gin.Context) {
	state, err := h.checkout.Get(c.Request.Context(), c.Param("sid"))
	h.writeState(c, "checkout get", state, err)
}

// dispatchAction — произвольное действие в виде {"type": "...", "payload": ...}.
func (h *Handler) dispatchAction(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		writeError(c, http.StatusBadRequest, "cannot read body")
		return
	}
	action, err := orderdraft.DecodeAction(raw)
	if err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}
	h.dispatch(c, action)
}

func (h *Handler) setStep(c *gin.Context) {
	var req stepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "step is required")
		return
	}
	h.dispatch(c, orderdraft.SetStep{Step: *req.Step})
}

func (h *Handler) patchForm(c *gin.Context) {
	var patch domain.OrderFormPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		writeError(c, http.StatusBadRequest, "invalid form data")
		return
	}
	h.dispatch(c, orderdraft.SetFormData{Patch: patch})
}

func (h *Handler) setErrors(c *gin.Context) {
	var errs map[string]string
	if err := c.ShouldBindJSON(&errs); err != nil {
		writeError(c, http.StatusBadRequest, "errors must be an object of strings")
		return
	}
	h.dispatch(c, orderdraft.SetErrors{Errors: errs})
}

func (h *Handler) clearError(c *gin.Context) {
	h.dispatch(c, orderdraft.ClearOrderError{Field: c.Param("field")})
}

func (h *Handler) toggleSelfPickup(c *gin.Context) {
	h.dispatch(c, orderdraft.ToggleSelfPickup{})
}

func (h *Handler) resetOrder(c *gin.Context) {
	h.dispatch(c, orderdraft.ResetOrder{})
}

// nextStep — при незаполненном шаге 422 и состояние с ошибками полей.
func (h *Handler) nextStep(c *gin.Context) {
	state, err := h.checkout.Next(c.Request.Context(), c.Param("sid"))
	if errors.Is(err, usecase.ErrStepInvalid) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "step is invalid", "state": state})
		return
	}
	h.writeState(c, "checkout next", state, err)
}

func (h *Handler) prevStep(c *gin.Context) {
	state, err := h.checkout.Back(c.Request.Context(), c.Param("sid"))
	h.writeState(c, "checkout back", state, err)
}

func (h *Handler) submitOrder(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid submit body")
		return
	}

	order, err := h.checkout.Submit(c.Request.Context(), c.Param("sid"), req.Items)
	var fieldsErr *validate.FieldsError
	switch {
	case errors.Is(err, usecase.ErrDraftNotFound):
		writeError(c, http.StatusNotFound, "checkout session not found")
	case errors.As(err, &fieldsErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "order is invalid", "fields": fieldsErr.Fields})
	case err != nil:
		h.internalError(c, "checkout submit", err)
	default:
		c.JSON(http.StatusCreated, submitResponse{OrderUID: order.OrderUID, Status: order.Status})
	}
}

func (h *Handler) dispatch(c *gin.Context, action orderdraft.Action) {
	state, err := h.checkout.Dispatch(c.Request.Context(), c.Param("sid"), action)
	h.writeState(c, "checkout "+action.Type(), state, err)
}

func (h *Handler) writeState(c *gin.Context, op string, state orderdraft.State, err error) {
	switch {
	case errors.Is(err, usecase.ErrDraftNotFound):
		writeError(c, http.StatusNotFound, "checkout session not found")
	case err != nil:
		h.internalError(c, op, err)
	default:
		c.JSON(http.StatusOK, state)
	}
}
