package validate

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Gunvolt24/flowers/internal/domain"
	"github.com/Gunvolt24/flowers/internal/ports"
)

// Проверка, что OrderValidator удовлетворяет интерфейсу OrderValidator.
var _ ports.OrderValidator = (*OrderValidator)(nil)

// ErrInvalidOrder — базовая (sentinel error) ошибка валидации.
var ErrInvalidOrder = errors.New("order validation failed")

// FieldsError — ошибка валидации с сообщениями по полям (ключи — JSON-имена).
// errors.Is(err, ErrInvalidOrder) == true.
type FieldsError struct {
	Fields domain.FieldErrors
}

func (e *FieldsError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return ErrInvalidOrder.Error() + ": " + strings.Join(parts, "; ")
}

func (e *FieldsError) Unwrap() error { return ErrInvalidOrder }

// OrderValidator — валидация заказа по тегам validate доменных структур.
type OrderValidator struct {
	v *validator.Validate
}

// NewOrderValidator — конструктор OrderValidator.
// Возвращает ErrInvalidOrder (с обёрнутой причиной) при любой проблеме.
func NewOrderValidator() *OrderValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonName)
	return &OrderValidator{v: v}
}

// Validate — проверяет корректность полей заказа.
func (ov *OrderValidator) Validate(_ context.Context, order *domain.Order) error {
	if order == nil {
		return fmt.Errorf("%w: заказ не может быть nil", ErrInvalidOrder)
	}
	if order.Status != "" && !order.Status.Valid() {
		return &FieldsError{Fields: domain.FieldErrors{"status": "Неизвестный статус."}}
	}

	err := ov.v.Struct(order)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return fmt.Errorf("%w: %v", ErrInvalidOrder, err)
	}

	fields := make(domain.FieldErrors, len(ve))
	for _, fe := range ve {
		fields[fieldKey(fe.Namespace())] = messageForTag(fe.Tag(), fe.Param())
	}
	return &FieldsError{Fields: fields}
}

// jsonName — имя поля из json-тега; "" для полей без тега (встроенная форма).
func jsonName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

// fieldKey — путь поля без корня и встроенной формы: Order.OrderForm.city -> city, Order.items[0].name -> items[0].name.
func fieldKey(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		namespace = namespace[i+1:]
	}
	return strings.TrimPrefix(namespace, "OrderForm.")
}

func messageForTag(tag, param string) string {
	switch tag {
	case "required", "required_if":
		return "Обязательное поле."
	case "min":
		return "Должно быть не меньше " + param + "."
	case "gt":
		return "Должно быть больше " + param + "."
	case "gte":
		return "Не может быть меньше " + param + "."
	default:
		return "Некорректное значение."
	}
}
