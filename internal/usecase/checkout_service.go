package usecase

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Gunvolt24/flowers/internal/domain"
	"github.com/Gunvolt24/flowers/internal/orderdraft"
	"github.com/Gunvolt24/flowers/internal/ports"
	"github.com/Gunvolt24/flowers/pkg/metrics"
	"github.com/Gunvolt24/flowers/pkg/validate"
)

// Проверка, что CheckoutService удовлетворяет интерфейсу CheckoutService.
var _ ports.CheckoutService = (*CheckoutService)(nil)

var (
	// ErrDraftNotFound — нет черновика с таким идентификатором сессии (или он истёк).
	ErrDraftNotFound = errors.New("order draft not found")
	// ErrStepInvalid — текущий шаг заполнен не полностью; ошибки уже лежат в состоянии.
	ErrStepInvalid = errors.New("checkout step is invalid")
)

const sessionLocks = 64

// CheckoutService — черновики оформления заказа: хранит состояние по сессии,
// применяет действия и отправляет готовый заказ в топик.
type CheckoutService struct {
	drafts    ports.DraftStore
	validator ports.OrderValidator
	publisher ports.OrderPublisher
	log       ports.Logger
	now       func() time.Time
	newID     func() string

	// Действия одной сессии применяются последовательно (load → reduce → save).
	locks [sessionLocks]sync.Mutex
}

// NewCheckoutService — DI-конструктор.
func NewCheckoutService(
	drafts ports.DraftStore,
	validator ports.OrderValidator,
	publisher ports.OrderPublisher,
	log ports.Logger,
) *CheckoutService {
	return &CheckoutService{
		drafts:    drafts,
		validator: validator,
		publisher: publisher,
		log:       log,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// Start — новая сессия с начальным состоянием черновика.
func (s *CheckoutService) Start(ctx context.Context) (string, orderdraft.State, error) {
	sid := s.newID()
	state := orderdraft.InitialState()
	if err := s.drafts.Save(ctx, sid, state); err != nil {
		return "", orderdraft.State{}, fmt.Errorf("save draft: %w", err)
	}
	s.log.Infof(ctx, "checkout started sid=%s", sid)
	return sid, state, nil
}

// Get — текущее состояние черновика.
func (s *CheckoutService) Get(ctx context.Context, sessionID string) (orderdraft.State, error) {
	return s.load(ctx, sessionID)
}

// Dispatch — применяет действие к черновику и сохраняет результат.
func (s *CheckoutService) Dispatch(ctx context.Context, sessionID string, action orderdraft.Action) (orderdraft.State, error) {
	mu := s.lock(sessionID)
	mu.Lock()
	defer mu.Unlock()

	state, err := s.load(ctx, sessionID)
	if err != nil {
		return orderdraft.State{}, err
	}
	return s.apply(ctx, sessionID, state, action)
}

// Next — проверяет текущий шаг и переходит к следующему (не дальше последнего).
// При незаполненных полях сохраняет ошибки в состоянии и возвращает ErrStepInvalid вместе с ним.
func (s *CheckoutService) Next(ctx context.Context, sessionID string) (orderdraft.State, error) {
	mu := s.lock(sessionID)
	mu.Lock()
	defer mu.Unlock()

	state, err := s.load(ctx, sessionID)
	if err != nil {
		return orderdraft.State{}, err
	}

	if errs := ValidateStep(state.CurrentStep, state.FormData); len(errs) > 0 {
		state, err = s.apply(ctx, sessionID, state, orderdraft.SetErrors{Errors: errs})
		if err != nil {
			return orderdraft.State{}, err
		}
		return state, fmt.Errorf("%w: %s", ErrStepInvalid, orderdraft.StepName(state.CurrentStep))
	}

	next := min(state.CurrentStep+1, orderdraft.LastStep)
	return s.apply(ctx, sessionID, state, orderdraft.SetStep{Step: next})
}

// Back — шаг назад (не меньше первого). Поля не проверяются.
func (s *CheckoutService) Back(ctx context.Context, sessionID string) (orderdraft.State, error) {
	mu := s.lock(sessionID)
	mu.Lock()
	defer mu.Unlock()

	state, err := s.load(ctx, sessionID)
	if err != nil {
		return orderdraft.State{}, err
	}
	return s.apply(ctx, sessionID, state, orderdraft.SetStep{Step: max(state.CurrentStep-1, 0)})
}

// Submit — собирает заказ из черновика и позиций корзины, проверяет и публикует его.
// Ошибки валидации попадают в состояние черновика (SetErrors), возвращается *validate.FieldsError.
// После успешной публикации форма сбрасывается (ResetOrder).
func (s *CheckoutService) Submit(ctx context.Context, sessionID string, items []domain.OrderItem) (*domain.Order, error) {
	mu := s.lock(sessionID)
	mu.Lock()
	defer mu.Unlock()

	state, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	order := &domain.Order{
		OrderUID:  s.newID(),
		OrderForm: state.FormData,
		Items:     append([]domain.OrderItem(nil), items...),
		Status:    domain.OrderStatusNew,
		CreatedAt: s.now().UTC(),
	}

	if err := s.validator.Validate(ctx, order); err != nil {
		var fe *validate.FieldsError
		if errors.As(err, &fe) {
			if _, saveErr := s.apply(ctx, sessionID, state, orderdraft.SetErrors{Errors: formErrors(fe.Fields)}); saveErr != nil {
				return nil, saveErr
			}
		}
		s.log.Warnf(ctx, "checkout submit rejected sid=%s err=%v", sessionID, err)
		return nil, err
	}

	if err := s.publisher.Publish(ctx, order); err != nil {
		s.log.Errorf(ctx, "checkout publish failed sid=%s order_uid=%s err=%v", sessionID, order.OrderUID, err)
		return nil, fmt.Errorf("publish order: %w", err)
	}

	if _, err := s.apply(ctx, sessionID, state, orderdraft.ResetOrder{}); err != nil {
		// Заказ уже опубликован: ошибку сброса формы только логируем.
		s.log.Warnf(ctx, "reset draft after submit failed sid=%s err=%v", sessionID, err)
	}
	s.log.Infof(ctx, "checkout submitted sid=%s order_uid=%s items=%d", sessionID, order.OrderUID, len(order.Items))
	return order, nil
}

func (s *CheckoutService) load(ctx context.Context, sessionID string) (orderdraft.State, error) {
	state, found, err := s.drafts.Load(ctx, sessionID)
	if err != nil {
		return orderdraft.State{}, fmt.Errorf("load draft: %w", err)
	}
	if !found {
		return orderdraft.State{}, ErrDraftNotFound
	}
	return state, nil
}

func (s *CheckoutService) apply(
	ctx context.Context,
	sessionID string,
	state orderdraft.State,
	action orderdraft.Action,
) (orderdraft.State, error) {
	next := orderdraft.Reduce(state, action)
	if err := s.drafts.Save(ctx, sessionID, next); err != nil {
		return orderdraft.State{}, fmt.Errorf("save draft: %w", err)
	}
	if action != nil {
		metrics.CheckoutActions.WithLabelValues(action.Type()).Inc()
	}
	return next, nil
}

func (s *CheckoutService) lock(sessionID string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(sessionID))
	return &s.locks[h.Sum32()%sessionLocks]
}
