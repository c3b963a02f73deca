// Пакет productform — контроллер формы создания/редактирования товара в админке:
// загрузка товара и категорий, проверка черновика, сборка multipart и отправка в каталог.
package productform

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/Gunvolt24/flowers/internal/domain"
	"github.com/Gunvolt24/flowers/internal/ports"
	"github.com/Gunvolt24/flowers/pkg/metrics"
)

// Проверка, что Controller удовлетворяет порту ProductForm.
var _ ports.ProductForm = (*Controller)(nil)

var (
	// ErrNotReady — форма ещё не загружена (или уже отправлена).
	ErrNotReady = errors.New("product form is not ready")
	// ErrSubmitting — предыдущая отправка ещё не завершилась.
	ErrSubmitting = errors.New("product form is being submitted")
)

// Snapshot — состояние формы для отображения.
type Snapshot struct {
	Edit       bool
	Load       LoadState
	Phase      Phase
	Draft      domain.ProductDraft
	Categories []domain.Category
	Err        error
}

// Controller — одна форма товара. Режим редактирования определяется при создании и не меняется.
type Controller struct {
	api    ports.CatalogAPI
	cache  ports.ProductListCache
	log    ports.Logger
	shopID string
	prodID string
	edit   bool

	// catMu сериализует загрузку категорий: список грузится один раз за жизнь формы.
	catMu sync.Mutex

	mu         sync.Mutex
	load       LoadState
	phase      Phase
	draft      domain.ProductDraft
	categories []domain.Category
	catLoaded  bool
	err        error
}

// NewController — productID == "" означает создание нового товара.
func NewController(
	api ports.CatalogAPI,
	cache ports.ProductListCache,
	log ports.Logger,
	shopID, productID string,
) *Controller {
	edit := productID != ""
	return &Controller{
		api:    api,
		cache:  cache,
		log:    log,
		shopID: shopID,
		prodID: productID,
		edit:   edit,
		load:   initialLoadState(edit),
		phase:  PhaseLoading,
	}
}

func (c *Controller) IsEdit() bool { return c.edit }

// Load — в режиме редактирования товар и категории грузятся параллельно,
// при создании черновик пустой и грузятся только категории. Ошибки не ретраим.
func (c *Controller) Load(ctx context.Context) (domain.ProductDraft, error) {
	if !c.edit {
		if _, err := c.LoadCategories(ctx); err != nil {
			return domain.ProductDraft{}, err
		}
		return domain.ProductDraft{}, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := c.api.GetProduct(gctx, c.shopID, c.prodID)
		if err != nil {
			return fmt.Errorf("load product shop=%s product=%s: %w", c.shopID, c.prodID, err)
		}
		c.onProduct(draftFromProduct(p))
		return nil
	})
	g.Go(func() error {
		_, err := c.LoadCategories(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		c.fail(err)
		c.log.Warnf(ctx, "product form load failed shop=%s product=%s err=%v", c.shopID, c.prodID, err)
		return domain.ProductDraft{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft, nil
}

// LoadCategories — категории загружаются один раз; дальше возвращается сохранённый список.
func (c *Controller) LoadCategories(ctx context.Context) ([]domain.Category, error) {
	c.catMu.Lock()
	defer c.catMu.Unlock()

	if cats, ok := c.cachedCategories(); ok {
		return cats, nil
	}

	cats, err := c.api.ListCategories(ctx)
	if err != nil {
		err = fmt.Errorf("load categories: %w", err)
		c.fail(err)
		return nil, err
	}
	c.onCategories(cats)
	return append([]domain.Category(nil), cats...), nil
}

// Validate — проверка обязательных полей.
func (c *Controller) Validate(d domain.ProductDraft) domain.FieldErrors {
	return Validate(d)
}

// Submit — проверка, сборка multipart и create/update. Невалидный черновик — *ValidationError без сетевых вызовов.
// При успехе сбрасывает кэш списка товаров магазина и возвращает адрес страницы магазина.
func (c *Controller) Submit(ctx context.Context, d domain.ProductDraft) (string, error) {
	mode := c.mode()

	if err := c.beginSubmit(); err != nil {
		return "", err
	}

	if fields := Validate(d); len(fields) > 0 {
		c.endSubmit(nil)
		metrics.ProductSubmissions.WithLabelValues(mode, "invalid").Inc()
		return "", &ValidationError{Fields: fields}
	}

	payload, err := BuildPayload(d)
	if err == nil {
		if c.edit {
			err = c.api.UpdateProduct(ctx, c.shopID, c.prodID, payload)
		} else {
			err = c.api.CreateProduct(ctx, c.shopID, payload)
		}
	}
	if err != nil {
		err = fmt.Errorf("submit product shop=%s: %w", c.shopID, err)
		c.endSubmit(err)
		metrics.ProductSubmissions.WithLabelValues(mode, "failed").Inc()
		c.log.Errorf(ctx, "product submit failed shop=%s product=%s err=%v", c.shopID, c.prodID, err)
		return "", err
	}

	if invErr := c.cache.Invalidate(ctx, c.shopID); invErr != nil {
		c.log.Warnf(ctx, "product list cache invalidate failed shop=%s err=%v", c.shopID, invErr)
	}

	c.mu.Lock()
	c.phase = PhaseSuccess
	c.err = nil
	c.mu.Unlock()

	metrics.ProductSubmissions.WithLabelValues(mode, "ok").Inc()
	c.log.Infof(ctx, "product %s ok shop=%s product=%s", mode, c.shopID, c.prodID)
	return ShopPath(c.shopID), nil
}

// Snapshot — копия текущего состояния формы.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		Edit:       c.edit,
		Load:       c.load,
		Phase:      c.phase,
		Draft:      c.draft,
		Categories: append([]domain.Category(nil), c.categories...),
		Err:        c.err,
	}
}

// Err — последняя ошибка загрузки или отправки.
func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// ShopPath — страница магазина, куда возвращаемся после сохранения товара.
func ShopPath(shopID string) string { return "/shops/" + shopID }

func (c *Controller) mode() string {
	if c.edit {
		return "edit"
	}
	return "create"
}

func (c *Controller) beginSubmit() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.phase {
	case PhaseReady:
		c.phase = PhaseSubmitting
		return nil
	case PhaseSubmitting:
		return ErrSubmitting
	default:
		return fmt.Errorf("%w: load=%s phase=%s", ErrNotReady, c.load, c.phase)
	}
}

func (c *Controller) endSubmit(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.phase = PhaseReady
	c.err = err
}

func (c *Controller) cachedCategories() ([]domain.Category, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.catLoaded {
		return nil, false
	}
	return append([]domain.Category(nil), c.categories...), true
}

func (c *Controller) onProduct(d domain.ProductDraft) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = d
	c.advance(ProductLoaded)
}

func (c *Controller) onCategories(cats []domain.Category) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.categories = append([]domain.Category(nil), cats...)
	c.catLoaded = true
	c.advance(CategoriesLoaded)
}

// advance — вызывается под c.mu.
func (c *Controller) advance(ev LoadEvent) {
	c.load = c.load.Next(ev)
	if c.load == Ready && c.phase == PhaseLoading {
		c.phase = PhaseReady
		c.err = nil
	}
}

func (c *Controller) fail(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.err = err
}

// draftFromProduct — изображение в черновик не переносится: файл выбирается заново.
func draftFromProduct(p *domain.Product) domain.ProductDraft {
	return domain.ProductDraft{
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Ingredients: p.Ingredients,
		CategoryID:  p.CategoryID,
	}
}
