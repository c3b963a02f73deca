package orderdraft

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Gunvolt24/flowers/internal/domain"
)

// Типы действий (совпадают с именами в JSON-конверте).
const (
	TypeSetStep          = "setStep"
	TypeSetFormData      = "setFormData"
	TypeSetErrors        = "setErrors"
	TypeToggleSelfPickup = "toggleSelfPickup"
	TypeClearOrderError  = "clearOrderError"
	TypeResetOrder       = "resetOrder"
)

// ErrUnknownAction — тип действия не поддерживается.
var ErrUnknownAction = errors.New("unknown order draft action")

// Action — действие над черновиком. Реализации только в этом пакете.
type Action interface {
	Type() string
	apply(State) State
}

// SetStep — безусловно заменяет текущий шаг.
type SetStep struct {
	Step int `json:"step"`
}

// SetFormData — поверхностное слияние частичных данных формы.
type SetFormData struct {
	Patch domain.OrderFormPatch
}

// SetErrors — полностью заменяет map ошибок.
type SetErrors struct {
	Errors map[string]string
}

// ToggleSelfPickup — переключает самовывоз.
type ToggleSelfPickup struct{}

// ClearOrderError — удаляет ошибку одного поля.
type ClearOrderError struct {
	Field string `json:"field"`
}

// ResetOrder — сбрасывает форму и ошибки (шаг не трогает).
type ResetOrder struct{}

func (SetStep) Type() string          { return TypeSetStep }
func (SetFormData) Type() string      { return TypeSetFormData }
func (SetErrors) Type() string        { return TypeSetErrors }
func (ToggleSelfPickup) Type() string { return TypeToggleSelfPickup }
func (ClearOrderError) Type() string  { return TypeClearOrderError }
func (ResetOrder) Type() string       { return TypeResetOrder }

// envelope — транспортный вид действия: {"type": "...", "payload": ...}.
type envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// DecodeAction — разбирает JSON-конверт в конкретное действие.
func DecodeAction(raw []byte) (Action, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decode action: %w", err)
	}

	payload := bytes.TrimSpace(env.Payload)
	decode := func(dst any) error {
		if len(payload) == 0 || bytes.Equal(payload, []byte("null")) {
			return fmt.Errorf("decode action %s: payload is required", env.Type)
		}
		if err := json.Unmarshal(payload, dst); err != nil {
			return fmt.Errorf("decode action %s: %w", env.Type, err)
		}
		return nil
	}

	switch env.Type {
	case TypeSetStep:
		var step int
		if err := decode(&step); err != nil {
			return nil, err
		}
		return SetStep{Step: step}, nil
	case TypeSetFormData:
		var patch domain.OrderFormPatch
		if err := decode(&patch); err != nil {
			return nil, err
		}
		return SetFormData{Patch: patch}, nil
	case TypeSetErrors:
		var errs map[string]string
		if err := decode(&errs); err != nil {
			return nil, err
		}
		return SetErrors{Errors: errs}, nil
	case TypeToggleSelfPickup:
		return ToggleSelfPickup{}, nil
	case TypeClearOrderError:
		var field string
		if err := decode(&field); err != nil {
			return nil, err
		}
		return ClearOrderError{Field: field}, nil
	case TypeResetOrder:
		return ResetOrder{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, env.Type)
	}
}
