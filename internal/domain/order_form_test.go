package domain_test

import (
	"testing"

	"github.com/Gunvolt24/flowers/internal/domain"
)

func strPtr(s string) *string { return &s }

func TestOrderForm_Apply_KeepsUnsetFields(t *testing.T) {
	base := domain.OrderForm{
		FullName:       "Анна",
		PhoneNumber:    "+79990000000",
		IsSelfPickup:   true,
		DeliveryMethod: domain.DeliveryMethodDelivery,
	}

	got := base.Apply(domain.OrderFormPatch{City: strPtr("Москва")})

	if got.City != "Москва" {
		t.Fatalf("city: want Москва, got %q", got.City)
	}
	if got.FullName != "Анна" || got.PhoneNumber != "+79990000000" || !got.IsSelfPickup {
		t.Fatalf("unset fields must be retained: %+v", got)
	}
	if base.City != "" {
		t.Fatalf("Apply must not mutate receiver, got city=%q", base.City)
	}
}

func TestOrderForm_Apply_EmptyStringOverrides(t *testing.T) {
	base := domain.OrderForm{FullName: "Анна"}
	f := false

	got := base.Apply(domain.OrderFormPatch{FullName: strPtr(""), IsSelfPickup: &f})
	if got.FullName != "" {
		t.Fatalf("explicit empty value must override, got %q", got.FullName)
	}
	if got.IsSelfPickup {
		t.Fatalf("isSelfPickup must be false")
	}
}

func TestOrderStatus_Valid(t *testing.T) {
	for _, s := range []domain.OrderStatus{"NEW", "PROCESSING", "DELIVERED", "CANCELED"} {
		if !s.Valid() {
			t.Fatalf("%s must be valid", s)
		}
	}
	if domain.OrderStatus("LOST").Valid() {
		t.Fatalf("unknown status must be invalid")
	}
}
