package rest_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"

	"github.com/Gunvolt24/flowers/internal/domain"
	"github.com/Gunvolt24/flowers/internal/orderdraft"
	"github.com/Gunvolt24/flowers/internal/usecase"
	"github.com/Gunvolt24/flowers/pkg/ctxmeta"
	"github.com/Gunvolt24/flowers/pkg/validate"
)

func strPtr(s string) *string { return &s }

func decodeState(t *testing.T, raw []byte) orderdraft.State {
	t.Helper()
	var s orderdraft.State
	if err := json.Unmarshal(raw, &s); err != nil {
		t.Fatalf("invalid state json: %v body=%s", err, raw)
	}
	return s
}

func TestStartCheckout(t *testing.T) {
	d := newDeps(t, 0)
	d.checkout.EXPECT().Start(gomock.Any()).Return("sid-1", orderdraft.InitialState(), nil)

	w := d.do(http.MethodPost, "/checkout", nil)

	if w.Code != http.StatusCreated {
		t.Fatalf("want 201, got %d", w.Code)
	}
	var got struct {
		SessionID string           `json:"sessionId"`
		State     orderdraft.State `json:"state"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if got.SessionID != "sid-1" || !got.State.FormData.IsSelfPickup {
		t.Fatalf("unexpected response: %+v", got)
	}
}

func TestGetCheckout_NotFound(t *testing.T) {
	d := newDeps(t, 0)
	d.checkout.EXPECT().Get(gomock.Any(), "nope").Return(orderdraft.State{}, usecase.ErrDraftNotFound)

	w := d.do(http.MethodGet, "/checkout/nope", nil)

	if w.Code != http.StatusNotFound {
		t.Fatalf("want 404, got %d", w.Code)
	}
}

func TestCheckout_SessionIDInContext(t *testing.T) {
	d := newDeps(t, 0)
	d.checkout.EXPECT().Get(gomock.Any(), "sid-7").DoAndReturn(
		func(ctx context.Context, _ string) (orderdraft.State, error) {
			if sid, ok := ctxmeta.SessionIDFromContext(ctx); !ok || sid != "sid-7" {
				t.Errorf("session id in ctx: got %q ok=%v", sid, ok)
			}
			return orderdraft.InitialState(), nil
		})

	if w := d.do(http.MethodGet, "/checkout/sid-7", nil); w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", w.Code)
	}
}

// Каждый маршрут переводится в своё действие.
func TestCheckout_ActionRoutes(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   orderdraft.Action
	}{
		{"generic envelope", http.MethodPost, "/checkout/s/actions", `{"type":"setStep","payload":2}`, orderdraft.SetStep{Step: 2}},
		{"step", http.MethodPut, "/checkout/s/step", `{"step":0}`, orderdraft.SetStep{Step: 0}},
		{"form", http.MethodPatch, "/checkout/s/form", `{"city":"Казань"}`,
			orderdraft.SetFormData{Patch: domain.OrderFormPatch{City: strPtr("Казань")}}},
		{"errors", http.MethodPut, "/checkout/s/errors", `{"city":"Укажите город."}`,
			orderdraft.SetErrors{Errors: map[string]string{"city": "Укажите город."}}},
		{"clear error", http.MethodDelete, "/checkout/s/errors/phoneNumber", "", orderdraft.ClearOrderError{Field: "phoneNumber"}},
		{"self pickup", http.MethodPost, "/checkout/s/self-pickup", "", orderdraft.ToggleSelfPickup{}},
		{"reset", http.MethodPost, "/checkout/s/reset", "", orderdraft.ResetOrder{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newDeps(t, 0)
			d.checkout.EXPECT().Dispatch(gomock.Any(), "s", tt.want).Return(orderdraft.InitialState(), nil)

			var body io.Reader
			if tt.body != "" {
				body = strings.NewReader(tt.body)
			}
			w := d.do(tt.method, tt.path, body)
			if w.Code != http.StatusOK {
				t.Fatalf("want 200, got %d body=%s", w.Code, w.Body.String())
			}
		})
	}
}

func TestCheckout_BadBodies(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
		body   string
	}{
		{"unknown action", http.MethodPost, "/checkout/s/actions", `{"type":"fly"}`},
		{"broken envelope", http.MethodPost, "/checkout/s/actions", `{`},
		{"step missing", http.MethodPut, "/checkout/s/step", `{}`},
		{"step not int", http.MethodPut, "/checkout/s/step", `{"step":"two"}`},
		{"form not object", http.MethodPatch, "/checkout/s/form", `[1]`},
		{"errors not strings", http.MethodPut, "/checkout/s/errors", `{"city":1}`},
		{"submit broken", http.MethodPost, "/checkout/s/submit", `{"items":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newDeps(t, 0) // без EXPECT: сервис вызываться не должен

			w := d.do(tt.method, tt.path, strings.NewReader(tt.body))
			if w.Code != http.StatusBadRequest {
				t.Fatalf("want 400, got %d body=%s", w.Code, w.Body.String())
			}
		})
	}
}

func TestCheckout_DispatchStoreFailure(t *testing.T) {
	d := newDeps(t, 0)
	d.checkout.EXPECT().Dispatch(gomock.Any(), "s", orderdraft.ResetOrder{}).
		Return(orderdraft.State{}, errors.New("redis down"))

	w := d.do(http.MethodPost, "/checkout/s/reset", nil)
	if w.Code != http.StatusInternalServerError || decodeError(t, w) != "internal server error" {
		t.Fatalf("want 500 without details, got %d %s", w.Code, w.Body.String())
	}
}

func TestCheckout_NextInvalidStep(t *testing.T) {
	d := newDeps(t, 0)
	state := orderdraft.InitialState()
	state.Errors = map[string]string{"fullName": usecase.MsgFullName}
	d.checkout.EXPECT().Next(gomock.Any(), "s").Return(state, usecase.ErrStepInvalid)

	w := d.do(http.MethodPost, "/checkout/s/next", nil)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("want 422, got %d", w.Code)
	}
	var got struct {
		State orderdraft.State `json:"state"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if got.State.Errors["fullName"] != usecase.MsgFullName {
		t.Fatalf("field errors must be returned, got %v", got.State.Errors)
	}
}

func TestCheckout_NextAndBack(t *testing.T) {
	d := newDeps(t, 0)
	moved := orderdraft.InitialState()
	moved.CurrentStep = 1
	d.checkout.EXPECT().Next(gomock.Any(), "s").Return(moved, nil)
	d.checkout.EXPECT().Back(gomock.Any(), "s").Return(orderdraft.InitialState(), nil)

	w := d.do(http.MethodPost, "/checkout/s/next", nil)
	if w.Code != http.StatusOK || decodeState(t, w.Body.Bytes()).CurrentStep != 1 {
		t.Fatalf("next: got %d %s", w.Code, w.Body.String())
	}
	w = d.do(http.MethodPost, "/checkout/s/back", nil)
	if w.Code != http.StatusOK || decodeState(t, w.Body.Bytes()).CurrentStep != 0 {
		t.Fatalf("back: got %d %s", w.Code, w.Body.String())
	}
}

func TestCheckout_Submit(t *testing.T) {
	items := []domain.OrderItem{{ProductID: 7, Name: "Тюльпаны", Price: 1500, Quantity: 3}}
	body := `{"items":[{"id":7,"name":"Тюльпаны","price":1500,"quantity":3}]}`

	tests := []struct {
		name     string
		result   *domain.Order
		err      error
		wantCode int
	}{
		{"created", &domain.Order{OrderUID: "uid-1", Status: domain.OrderStatusNew}, nil, http.StatusCreated},
		{"session missing", nil, usecase.ErrDraftNotFound, http.StatusNotFound},
		{"invalid order", nil, &validate.FieldsError{Fields: domain.FieldErrors{"city": "Укажите город."}}, http.StatusUnprocessableEntity},
		{"publish failed", nil, errors.New("publish order: broker down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newDeps(t, 0)
			d.checkout.EXPECT().Submit(gomock.Any(), "s", items).Return(tt.result, tt.err)

			w := d.do(http.MethodPost, "/checkout/s/submit", strings.NewReader(body))
			if w.Code != tt.wantCode {
				t.Fatalf("want %d, got %d body=%s", tt.wantCode, w.Code, w.Body.String())
			}
			if tt.wantCode == http.StatusCreated && !strings.Contains(w.Body.String(), `"order_uid":"uid-1"`) {
				t.Fatalf("order uid must be returned: %s", w.Body.String())
			}
			if tt.wantCode == http.StatusUnprocessableEntity && !strings.Contains(w.Body.String(), "Укажите город.") {
				t.Fatalf("field messages must be returned: %s", w.Body.String())
			}
		})
	}
}
