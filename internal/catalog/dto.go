package catalog

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/Gunvolt24/flowers/internal/domain"
)

// productDTO — товар в ответе каталога. price приходит числом или строкой,
// categoryId — числом, строкой или null; приводим при переводе в домен.
type productDTO struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	Price       json.RawMessage `json:"price"`
	Ingredients *string         `json:"ingredients"`
	CategoryID  json.RawMessage `json:"categoryId"`
	Image       *string         `json:"image"`
}

type categoryDTO struct {
	ID   json.RawMessage `json:"id"`
	Name string          `json:"name"`
}

// toDomain — перевод в домен; ok=false, если цену не удалось разобрать (тогда Price = 0).
func (d productDTO) toDomain() (p domain.Product, ok bool) {
	price, ok := parsePrice(d.Price)
	return domain.Product{
		ID:          d.ID,
		Name:        d.Name,
		Description: deref(d.Description),
		Price:       price,
		Ingredients: deref(d.Ingredients),
		CategoryID:  idString(d.CategoryID),
		Image:       deref(d.Image),
	}, ok
}

func (d categoryDTO) toDomain() domain.Category {
	return domain.Category{ID: idString(d.ID), Name: d.Name}
}

// parsePrice — число или строка с числом; отсутствующая цена это 0 без ошибки.
// NaN и бесконечности считаются нераспознанной ценой.
func parsePrice(raw json.RawMessage) (float64, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, true
	}

	s := string(raw)
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, false
		}
		s = strings.TrimSpace(s)
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// idString — идентификатор в строковом виде; null, 0 и "" дают "".
func idString(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return ""
		}
		return s
	}
	v, err := strconv.ParseFloat(string(raw), 64)
	if err != nil || v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
