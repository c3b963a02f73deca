package productform

import (
	"math"
	"sort"
	"strings"

	"github.com/Gunvolt24/flowers/internal/domain"
)

// Сообщения об ошибках обязательных полей.
const (
	MsgNameRequired     = "Название обязательно."
	MsgPriceRequired    = "Цена обязательна."
	MsgCategoryRequired = "Категория обязательна."
)

// ValidationError — черновик не прошёл проверку; отправка не выполнялась.
type ValidationError struct {
	Fields domain.FieldErrors
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return "product draft is invalid: " + strings.Join(keys, ", ")
}

// Validate — обязательны name, price (не ноль) и categoryId. Пустая map — черновик валиден.
func Validate(d domain.ProductDraft) domain.FieldErrors {
	errs := domain.FieldErrors{}
	if d.Name == "" {
		errs["name"] = MsgNameRequired
	}
	if d.Price == 0 || math.IsNaN(d.Price) {
		errs["price"] = MsgPriceRequired
	}
	if d.CategoryID == "" {
		errs["categoryId"] = MsgCategoryRequired
	}
	return errs
}
