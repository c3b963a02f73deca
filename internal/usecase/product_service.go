package usecase

import (
	"context"

	"github.com/Gunvolt24/flowers/internal/domain"
	"github.com/Gunvolt24/flowers/internal/ports"
	"github.com/Gunvolt24/flowers/internal/productform"
)

// Проверка, что ProductService удовлетворяет интерфейсу ProductService.
var _ ports.ProductService = (*ProductService)(nil)

// ProductService — товары магазина для админки: списки с кэшем и формы товара.
type ProductService struct {
	api   ports.CatalogAPI
	cache ports.ProductListCache
	log   ports.Logger
}

// NewProductService — DI-конструктор.
func NewProductService(api ports.CatalogAPI, cache ports.ProductListCache, log ports.Logger) *ProductService {
	return &ProductService{api: api, cache: cache, log: log}
}

// ListProducts — товары магазина: из кэша, при промахе из каталога с записью в кэш.
func (s *ProductService) ListProducts(ctx context.Context, shopID string) ([]domain.Product, error) {
	if list, ok := s.cache.Get(ctx, shopID); ok {
		return list, nil
	}

	list, err := s.api.ListProducts(ctx, shopID)
	if err != nil {
		s.log.Errorf(ctx, "catalog.ListProducts failed shop=%s err=%v", shopID, err)
		return nil, err
	}
	if setErr := s.cache.Set(ctx, shopID, list); setErr != nil {
		s.log.Warnf(ctx, "product cache set failed shop=%s err=%v", shopID, setErr)
	}
	return list, nil
}

// ListCategories — справочник категорий.
func (s *ProductService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.api.ListCategories(ctx)
}

// OpenForm — новый контроллер формы товара; productID == "" — создание.
func (s *ProductService) OpenForm(shopID, productID string) ports.ProductForm {
	return productform.NewController(s.api, s.cache, s.log, shopID, productID)
}
