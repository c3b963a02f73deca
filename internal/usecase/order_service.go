package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Gunvolt24/flowers/internal/domain"
	"github.com/Gunvolt24/flowers/internal/ports"
	"github.com/Gunvolt24/flowers/pkg/validate"
)

// Проверка, что OrderService удовлетворяет интерфейсу OrderReadService.
var _ ports.OrderReadService = (*OrderService)(nil)

// ErrInvalidStatus — неизвестный статус в фильтре списка заказов.
var ErrInvalidStatus = errors.New("unknown order status")

// OrderService — сохранение заказов из топика и их выдача магазину.
type OrderService struct {
	repo      ports.OrderRepository
	cache     ports.OrderCache
	log       ports.Logger
	validator ports.OrderValidator
	now       func() time.Time
}

// NewOrderService — DI-конструктор.
func NewOrderService(
	repo ports.OrderRepository,
	cache ports.OrderCache,
	log ports.Logger,
	validator ports.OrderValidator,
) *OrderService {
	return &OrderService{
		repo:      repo,
		cache:     cache,
		log:       log,
		validator: validator,
		now:       time.Now,
	}
}

// GetOrder — заказ по UID: кэш, при промахе БД с записью в кэш.
// (nil, nil), если заказа нет.
func (s *OrderService) GetOrder(ctx context.Context, orderUID string) (*domain.Order, error) {
	if order, found := s.cache.Get(ctx, orderUID); found {
		return order, nil
	}

	start := time.Now()
	order, err := s.repo.GetByUID(ctx, orderUID)
	if err != nil {
		s.log.Errorf(ctx, "repo.GetByUID failed order_uid=%s err=%v", orderUID, err)
		return nil, err
	}
	if order == nil {
		return nil, nil
	}

	if setErr := s.cache.Set(ctx, order); setErr != nil {
		s.log.Warnf(ctx, "cache.Set failed order_uid=%s err=%v", orderUID, setErr)
	}
	s.log.Infof(ctx, "cache miss order_uid=%s db_took=%s", orderUID, time.Since(start))
	return order, nil
}

// UnsentOrders — заказы, ещё не выданные магазину; после выдачи помечаются отправленными.
func (s *OrderService) UnsentOrders(ctx context.Context) ([]*domain.Order, error) {
	orders, err := s.repo.ClaimUnsent(ctx)
	if err != nil {
		s.log.Errorf(ctx, "repo.ClaimUnsent failed err=%v", err)
		return nil, err
	}
	// Флаг is_sent изменился — обновляем кэш, чтобы GetOrder не отдавал старое значение.
	for _, o := range orders {
		if setErr := s.cache.Set(ctx, o); setErr != nil {
			s.log.Warnf(ctx, "cache.Set failed order_uid=%s err=%v", o.OrderUID, setErr)
		}
	}
	if len(orders) > 0 {
		s.log.Infof(ctx, "handed out %d unsent orders", len(orders))
	}
	return orders, nil
}

// OrdersByStatus — страница заказов в статусе status (пагинация проверена на транспорте).
func (s *OrderService) OrdersByStatus(
	ctx context.Context,
	status domain.OrderStatus,
	limit, offset int,
) ([]*domain.Order, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	return s.repo.ListByStatus(ctx, status, limit, offset)
}

// SaveFromMessage — сохранить заказ из сообщения топика (raw JSON):
//  1. строгий разбор JSON (неизвестные поля и хвост после объекта запрещены);
//  2. значения по умолчанию: статус NEW, время создания;
//  3. валидация;
//  4. идемпотентное сохранение;
//  5. запись в кэш строки, перечитанной из БД: повторная доставка не должна
//     затереть в кэше is_sent, уже выставленный выдачей магазину.
//
// Ошибки разбора и валидации оборачивают validate.ErrInvalidOrder: такое сообщение повторять бессмысленно.
func (s *OrderService) SaveFromMessage(ctx context.Context, raw []byte) error {
	order, err := validate.DecodeOrder(raw)
	if err != nil {
		s.log.Warnf(ctx, "invalid json err=%v", err)
		return fmt.Errorf("%w: invalid json: %v", validate.ErrInvalidOrder, err)
	}

	if order.Status == "" {
		order.Status = domain.OrderStatusNew
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = s.now().UTC()
	}

	if err := s.validator.Validate(ctx, order); err != nil {
		s.log.Warnf(ctx, "validation failed order_uid=%s err=%v", order.OrderUID, err)
		return fmt.Errorf("validation failed: %w", err)
	}

	if err := s.repo.Save(ctx, order); err != nil {
		s.log.Errorf(ctx, "repo.Save failed order_uid=%s err=%v", order.OrderUID, err)
		return fmt.Errorf("failed to save order: %w", err)
	}

	s.refreshCache(ctx, order.OrderUID)

	s.log.Infof(ctx, "order saved uid=%s items=%d", order.OrderUID, len(order.Items))
	return nil
}

// refreshCache — положить в кэш актуальную строку заказа.
func (s *OrderService) refreshCache(ctx context.Context, orderUID string) {
	stored, err := s.repo.GetByUID(ctx, orderUID)
	if err != nil || stored == nil {
		s.log.Warnf(ctx, "reload after save failed order_uid=%s err=%v", orderUID, err)
		return
	}
	if err := s.cache.Set(ctx, stored); err != nil {
		s.log.Warnf(ctx, "cache.Set failed order_uid=%s err=%v", orderUID, err)
	}
}

// WarmUpCache — прогрев кэша последними N заказами. n <= 0 — прогрев пропускается.
func (s *OrderService) WarmUpCache(ctx context.Context, n int) error {
	if n <= 0 {
		s.log.Warnf(ctx, "cache warm-up skipped: n=%d", n)
		return nil
	}

	start := time.Now()
	list, err := s.repo.LastN(ctx, n)
	if err != nil {
		s.log.Errorf(ctx, "repo.LastN failed n=%d err=%v", n, err)
		return err
	}
	if warmUpErr := s.cache.WarmUp(ctx, list); warmUpErr != nil {
		s.log.Warnf(ctx, "cache.WarmUp failed err=%v", warmUpErr)
	}
	s.log.Infof(ctx, "cache warmed with %d orders in %s", len(list), time.Since(start))
	return nil
}
