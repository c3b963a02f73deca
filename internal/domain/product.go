package domain

// FileRef — загруженный файл (изображение букета), который уходит в multipart как есть.
type FileRef struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ProductDraft — черновик товара в форме админки (ещё не сохранён на сервере).
type ProductDraft struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Ingredients string   `json:"ingredients"`
	CategoryID  string   `json:"categoryId"`
	Image       *FileRef `json:"-"`
}

// Product — товар магазина в том виде, в котором его отдаёт каталог.
type Product struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Ingredients string  `json:"ingredients"`
	CategoryID  string  `json:"categoryId"`
	Image       string  `json:"image,omitempty"`
}

// Category — категория товара (только чтение).
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ProductPayload — собранное multipart-тело запроса create/update.
type ProductPayload struct {
	ContentType string
	Data        []byte
}

// FieldErrors — ошибки валидации формы: поле -> сообщение.
type FieldErrors map[string]string
