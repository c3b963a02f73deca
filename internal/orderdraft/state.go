// Пакет orderdraft — контейнер состояния черновика заказа (мастер оформления на витрине).
// Все изменения идут через Reduce: старое состояние + действие -> новое состояние, без побочных эффектов.
// Валидации здесь нет, её выполняет вызывающая сторона перед переходом между шагами.
package orderdraft

import "github.com/Gunvolt24/flowers/internal/domain"

// Ключи ошибок получателя, которые сбрасываются при переключении самовывоза.
const (
	FieldRecipientName  = "recipientName"
	FieldRecipientPhone = "recipientPhone"
)

// State — текущий шаг мастера, данные формы и ошибки по полям.
type State struct {
	CurrentStep int               `json:"currentStep"`
	FormData    domain.OrderForm  `json:"formData"`
	Errors      map[string]string `json:"errors"`
}

// InitialForm — форма по умолчанию: самовывоз, способ доставки DELIVERY, остальное пусто.
func InitialForm() domain.OrderForm {
	return domain.OrderForm{
		IsSelfPickup:   true,
		DeliveryMethod: domain.DeliveryMethodDelivery,
	}
}

// InitialState — начальное состояние черновика; мастер оформления
// начинается с первого шага, CurrentStep = 0.
func InitialState() State {
	return State{
		CurrentStep: 0,
		FormData:    InitialForm(),
		Errors:      map[string]string{},
	}
}

// Clone — глубокая копия (map ошибок не разделяется между состояниями).
func (s State) Clone() State {
	out := s
	out.Errors = make(map[string]string, len(s.Errors))
	for k, v := range s.Errors {
		out.Errors[k] = v
	}
	return out
}
