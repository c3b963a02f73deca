package domain

// Apply — поверхностное слияние patch в копию формы; незаданные поля сохраняются.
func (f OrderForm) Apply(p OrderFormPatch) OrderForm {
	setString(&f.FullName, p.FullName)
	setString(&f.PhoneNumber, p.PhoneNumber)
	if p.IsSelfPickup != nil {
		f.IsSelfPickup = *p.IsSelfPickup
	}
	setString(&f.RecipientName, p.RecipientName)
	setString(&f.RecipientPhone, p.RecipientPhone)
	setString(&f.City, p.City)
	setString(&f.Street, p.Street)
	setString(&f.House, p.House)
	setString(&f.Building, p.Building)
	setString(&f.Apartment, p.Apartment)
	setString(&f.DeliveryMethod, p.DeliveryMethod)
	setString(&f.DeliveryDate, p.DeliveryDate)
	setString(&f.DeliveryTime, p.DeliveryTime)
	setString(&f.Wishes, p.Wishes)
	setString(&f.CardText, p.CardText)
	return f
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
