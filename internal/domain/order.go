package domain

import "time"

// DeliveryMethodDelivery — способ доставки по умолчанию.
const DeliveryMethodDelivery = "DELIVERY"

// OrderForm — данные формы оформления заказа (шаги мастера на витрине).
type OrderForm struct {
	FullName       string `json:"fullName" validate:"required"`
	PhoneNumber    string `json:"phoneNumber" validate:"required"`
	IsSelfPickup   bool   `json:"isSelfPickup"`
	RecipientName  string `json:"recipientName" validate:"required_if=IsSelfPickup false"`
	RecipientPhone string `json:"recipientPhone" validate:"required_if=IsSelfPickup false"`
	City           string `json:"city" validate:"required_if=IsSelfPickup false"`
	Street         string `json:"street" validate:"required_if=IsSelfPickup false"`
	House          string `json:"house" validate:"required_if=IsSelfPickup false"`
	Building       string `json:"building"`
	Apartment      string `json:"apartment"`
	DeliveryMethod string `json:"deliveryMethod"`
	DeliveryDate   string `json:"deliveryDate"`
	DeliveryTime   string `json:"deliveryTime"`
	Wishes         string `json:"wishes"`
	CardText       string `json:"cardText"`
}

// OrderFormPatch — частичное обновление формы: nil-поля не трогаем.
type OrderFormPatch struct {
	FullName       *string `json:"fullName,omitempty"`
	PhoneNumber    *string `json:"phoneNumber,omitempty"`
	IsSelfPickup   *bool   `json:"isSelfPickup,omitempty"`
	RecipientName  *string `json:"recipientName,omitempty"`
	RecipientPhone *string `json:"recipientPhone,omitempty"`
	City           *string `json:"city,omitempty"`
	Street         *string `json:"street,omitempty"`
	House          *string `json:"house,omitempty"`
	Building       *string `json:"building,omitempty"`
	Apartment      *string `json:"apartment,omitempty"`
	DeliveryMethod *string `json:"deliveryMethod,omitempty"`
	DeliveryDate   *string `json:"deliveryDate,omitempty"`
	DeliveryTime   *string `json:"deliveryTime,omitempty"`
	Wishes         *string `json:"wishes,omitempty"`
	CardText       *string `json:"cardText,omitempty"`
}

// OrderStatus — статус заказа в обработке магазином.
type OrderStatus string

const (
	OrderStatusNew        OrderStatus = "NEW"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCanceled   OrderStatus = "CANCELED"
)

// Valid — известный ли статус.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusNew, OrderStatusProcessing, OrderStatusDelivered, OrderStatusCanceled:
		return true
	}
	return false
}

// OrderItem — позиция заказа.
type OrderItem struct {
	ProductID int64   `json:"id" validate:"gt=0"`
	Name      string  `json:"name" validate:"required"`
	Price     float64 `json:"price" validate:"gte=0"`
	Quantity  int     `json:"quantity" validate:"gt=0"`
}

// Order — оформленный заказ; форма встроена, поля в JSON лежат на верхнем уровне.
type Order struct {
	OrderUID string `json:"order_uid" validate:"required"`
	OrderForm
	Items     []OrderItem `json:"items" validate:"min=1,dive"`
	Status    OrderStatus `json:"status"`
	IsSent    bool        `json:"is_sent"`
	CreatedAt time.Time   `json:"created_at"`
}
