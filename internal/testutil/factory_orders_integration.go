//go:build integration

package testutil

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/Gunvolt24/flowers/internal/domain"
)

func randHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func UniqSuffix() string { return randHex(6) }

// MakeOrder — валидный заказ с уникальным uid (курьерская доставка, одна позиция).
func MakeOrder(opts ...func(*domain.Order)) domain.Order {
	o := domain.Order{
		OrderUID: "ord-" + UniqSuffix(),
		OrderForm: domain.OrderForm{
			FullName:       "Анна Петрова",
			PhoneNumber:    "+79990001122",
			IsSelfPickup:   false,
			RecipientName:  "Мария",
			RecipientPhone: "+79993334455",
			City:           "Казань",
			Street:         "Баумана",
			House:          "12",
			Apartment:      "7",
			DeliveryMethod: domain.DeliveryMethodDelivery,
			DeliveryDate:   "2026-03-08",
			DeliveryTime:   "10:00-12:00",
			CardText:       "С праздником!",
		},
		Items: []domain.OrderItem{
			{ProductID: 1, Name: "Букет тюльпанов", Price: 2500, Quantity: 1},
		},
		Status:    domain.OrderStatusNew,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}

	for _, fn := range opts {
		fn(&o)
	}
	return o
}

func WithOrderUID(uid string) func(*domain.Order) {
	return func(o *domain.Order) { o.OrderUID = uid }
}

func WithStatus(status domain.OrderStatus) func(*domain.Order) {
	return func(o *domain.Order) { o.Status = status }
}

func WithCreatedAt(at time.Time) func(*domain.Order) {
	return func(o *domain.Order) { o.CreatedAt = at.UTC().Truncate(time.Microsecond) }
}

func WithItems(n int) func(*domain.Order) {
	return func(o *domain.Order) {
		o.Items = make([]domain.OrderItem, 0, n)
		for i := 0; i < n; i++ {
			o.Items = append(o.Items, domain.OrderItem{
				ProductID: int64(100 + i),
				Name:      "Роза " + UniqSuffix(),
				Price:     float64(150 * (i + 1)),
				Quantity:  i + 1,
			})
		}
	}
}
