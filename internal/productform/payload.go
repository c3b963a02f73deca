package productform

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"strconv"
	"strings"

	"github.com/Gunvolt24/flowers/internal/domain"
)

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// BuildPayload — multipart-тело create/update: name, description, price, category_id, ingredients[, image].
// Цена кодируется кратчайшей десятичной строкой (500, 99.9).
func BuildPayload(d domain.ProductDraft) (domain.ProductPayload, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := [...][2]string{
		{"name", d.Name},
		{"description", d.Description},
		{"price", strconv.FormatFloat(d.Price, 'f', -1, 64)},
		{"category_id", d.CategoryID},
		{"ingredients", d.Ingredients},
	}
	for _, f := range fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return domain.ProductPayload{}, fmt.Errorf("write field %s: %w", f[0], err)
		}
	}

	if d.Image != nil {
		if err := writeImage(w, d.Image); err != nil {
			return domain.ProductPayload{}, err
		}
	}

	if err := w.Close(); err != nil {
		return domain.ProductPayload{}, fmt.Errorf("close multipart: %w", err)
	}
	return domain.ProductPayload{ContentType: w.FormDataContentType(), Data: buf.Bytes()}, nil
}

func writeImage(w *multipart.Writer, img *domain.FileRef) error {
	ctype := img.ContentType
	if ctype == "" {
		ctype = "application/octet-stream"
	}
	name := img.Filename
	if name == "" {
		name = "image"
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename="%s"`, quoteEscaper.Replace(name)))
	h.Set("Content-Type", ctype)

	part, err := w.CreatePart(h)
	if err != nil {
		return fmt.Errorf("create image part: %w", err)
	}
	if _, err := part.Write(img.Data); err != nil {
		return fmt.Errorf("write image: %w", err)
	}
	return nil
}
