package usecase

import (
	"strings"

	"github.com/Gunvolt24/flowers/internal/domain"
	"github.com/Gunvolt24/flowers/internal/orderdraft"
)

// Сообщения об ошибках шагов оформления.
const (
	MsgFullName       = "Укажите имя."
	MsgPhoneNumber    = "Укажите телефон."
	MsgRecipientName  = "Укажите имя получателя."
	MsgRecipientPhone = "Укажите телефон получателя."
	MsgCity           = "Укажите город."
	MsgStreet         = "Укажите улицу."
	MsgHouse          = "Укажите дом."
	MsgDeliveryDate   = "Укажите дату доставки."
	MsgDeliveryTime   = "Укажите время доставки."
)

// ValidateStep — ошибки полей, которые мешают уйти с шага step. Пустая map — шаг заполнен.
// Получатель и адрес проверяются только при доставке (не самовывоз); пожелания необязательны.
func ValidateStep(step int, f domain.OrderForm) domain.FieldErrors {
	errs := domain.FieldErrors{}
	require := func(field, value, msg string) {
		if strings.TrimSpace(value) == "" {
			errs[field] = msg
		}
	}

	switch step {
	case orderdraft.StepContacts:
		require("fullName", f.FullName, MsgFullName)
		require("phoneNumber", f.PhoneNumber, MsgPhoneNumber)
	case orderdraft.StepRecipient:
		if !f.IsSelfPickup {
			require(orderdraft.FieldRecipientName, f.RecipientName, MsgRecipientName)
			require(orderdraft.FieldRecipientPhone, f.RecipientPhone, MsgRecipientPhone)
		}
	case orderdraft.StepAddress:
		if !f.IsSelfPickup {
			require("city", f.City, MsgCity)
			require("street", f.Street, MsgStreet)
			require("house", f.House, MsgHouse)
		}
	case orderdraft.StepDateTime:
		require("deliveryDate", f.DeliveryDate, MsgDeliveryDate)
		require("deliveryTime", f.DeliveryTime, MsgDeliveryTime)
	}
	return errs
}

// submitMessages — сообщения валидатора заказа, заменяемые текстами шагов.
var submitMessages = map[string]string{
	"fullName":                     MsgFullName,
	"phoneNumber":                  MsgPhoneNumber,
	orderdraft.FieldRecipientName:  MsgRecipientName,
	orderdraft.FieldRecipientPhone: MsgRecipientPhone,
	"city":                         MsgCity,
	"street":                       MsgStreet,
	"house":                        MsgHouse,
}

// formErrors — ошибки валидатора заказа в виде, пригодном для SetErrors.
func formErrors(fields domain.FieldErrors) map[string]string {
	out := make(map[string]string, len(fields))
	for k, v := range fields {
		if msg, ok := submitMessages[k]; ok {
			v = msg
		}
		out[k] = v
	}
	return out
}
