package validate

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"

	"github.com/Gunvolt24/flowers/internal/domain"
)

// ErrTrailingData — после объекта заказа во входе есть ещё данные.
var ErrTrailingData = errors.New("trailing data after order")

// DecodeOrder — строгий разбор одного заказа: неизвестные поля и хвост после объекта запрещены.
// Значения по умолчанию не подставляются, проверка полей — забота вызывающего.
func DecodeOrder(raw []byte) (*domain.Order, error) {
	var order domain.Order
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&order); err != nil {
		return nil, err
	}
	if err := dec.Decode(new(struct{})); !errors.Is(err, io.EOF) {
		return nil, ErrTrailingData
	}
	return &order, nil
}
