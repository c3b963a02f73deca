package rest

import (
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Gunvolt24/flowers/internal/catalog"
	"github.com/Gunvolt24/flowers/internal/domain"
	"github.com/Gunvolt24/flowers/internal/ports"
	"github.com/Gunvolt24/flowers/internal/productform"
	"github.com/Gunvolt24/flowers/pkg/ctxmeta"
)

// maxImageSize — предел размера изображения товара в multipart.
const maxImageSize = 10 << 20

var errImageTooLarge = errors.New("image is too large")

// shopContext — кладёт идентификатор магазина в контекст запроса (для логов).
func shopContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := ctxmeta.WithShopID(c.Request.Context(), c.Param("shopId"))
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

type formResponse struct {
	Edit       bool                `json:"edit"`
	Draft      domain.ProductDraft `json:"draft"`
	Categories []domain.Category   `json:"categories"`
}

func (h *Handler) listCategories(c *gin.Context) {
	cats, err := h.products.ListCategories(c.Request.Context())
	if err != nil {
		h.upstreamError(c, "ListCategories", err)
		return
	}
	c.JSON(http.StatusOK, nonNil(cats))
}

func (h *Handler) listProducts(c *gin.Context) {
	shopID := c.Param("shopId")
	products, err := h.products.ListProducts(c.Request.Context(), shopID)
	if err != nil {
		h.upstreamError(c, "ListProducts shop="+shopID, err)
		return
	}
	c.JSON(http.StatusOK, nonNil(products))
}

func (h *Handler) createForm(c *gin.Context) {
	h.renderForm(c, h.products.OpenForm(c.Param("shopId"), ""))
}

func (h *Handler) editForm(c *gin.Context) {
	h.renderForm(c, h.products.OpenForm(c.Param("shopId"), c.Param("productId")))
}

func (h *Handler) createProduct(c *gin.Context) {
	h.submitForm(c, h.products.OpenForm(c.Param("shopId"), ""))
}

func (h *Handler) updateProduct(c *gin.Context) {
	h.submitForm(c, h.products.OpenForm(c.Param("shopId"), c.Param("productId")))
}

// renderForm — начальное состояние формы: черновик (пустой при создании) и категории.
func (h *Handler) renderForm(c *gin.Context, form ports.ProductForm) {
	ctx := c.Request.Context()
	draft, err := form.Load(ctx)
	if err != nil {
		h.upstreamError(c, "product form load", err)
		return
	}
	cats, err := form.LoadCategories(ctx)
	if err != nil {
		h.upstreamError(c, "product form categories", err)
		return
	}
	c.JSON(http.StatusOK, formResponse{Edit: form.IsEdit(), Draft: draft, Categories: nonNil(cats)})
}

// submitForm — загрузка формы, отправка черновика из multipart и 303 на страницу магазина.
func (h *Handler) submitForm(c *gin.Context, form ports.ProductForm) {
	draft, err := draftFromRequest(c)
	if err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}

	ctx := c.Request.Context()
	if _, err := form.Load(ctx); err != nil {
		h.upstreamError(c, "product form load", err)
		return
	}

	location, err := form.Submit(ctx, draft)
	var validationErr *productform.ValidationError
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "product is invalid", "fields": validationErr.Fields})
	case errors.Is(err, productform.ErrNotReady), errors.Is(err, productform.ErrSubmitting):
		writeError(c, http.StatusConflict, err.Error())
	case err != nil:
		h.upstreamError(c, "product submit", err)
	default:
		c.Redirect(http.StatusSeeOther, location)
	}
}

// upstreamError — 404 если каталог не знает сущность, иначе 502.
func (h *Handler) upstreamError(c *gin.Context, op string, err error) {
	_ = c.Error(err)
	if catalog.IsNotFound(err) {
		writeError(c, http.StatusNotFound, "not found")
		return
	}
	h.log.Errorf(c.Request.Context(), "%s failed: %v", op, err)
	writeError(c, http.StatusBadGateway, "catalog unavailable")
}

// draftFromRequest — поля формы товара из multipart или urlencoded тела.
// Нечисловая или бесконечная цена превращается в 0 и отсекается проверкой обязательных полей.
func draftFromRequest(c *gin.Context) (domain.ProductDraft, error) {
	d := domain.ProductDraft{
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
		Ingredients: c.PostForm("ingredients"),
		CategoryID:  strings.TrimSpace(c.PostForm("categoryId")),
	}
	if raw := strings.TrimSpace(c.PostForm("price")); raw != "" {
		if p, err := strconv.ParseFloat(raw, 64); err == nil && !math.IsNaN(p) && !math.IsInf(p, 0) {
			d.Price = p
		}
	}

	header, err := c.FormFile("image")
	switch {
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		return d, nil
	case err != nil:
		return d, fmt.Errorf("invalid multipart form: %w", err)
	}
	if header.Size > maxImageSize {
		return d, errImageTooLarge
	}

	f, err := header.Open()
	if err != nil {
		return d, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxImageSize+1))
	if err != nil {
		return d, fmt.Errorf("read image: %w", err)
	}
	if len(data) > maxImageSize {
		return d, errImageTooLarge
	}

	d.Image = &domain.FileRef{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}
	return d, nil
}
