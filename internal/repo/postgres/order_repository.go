package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Gunvolt24/flowers/internal/domain"
	"github.com/Gunvolt24/flowers/internal/ports"
)

// Проверка, что OrderRepository удовлетворяет интерфейсу OrderRepository.
var _ ports.OrderRepository = (*OrderRepository)(nil)

const orderColumns = `
	order_uid, full_name, phone_number, is_self_pickup, recipient_name, recipient_phone,
	city, street, house, building, apartment, delivery_method, delivery_date, delivery_time,
	wishes, card_text, status, is_sent, created_at`

// OrderRepository — реализация репозитория заказов на Postgres (pgxpool).
type OrderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository - конструктор OrderRepository.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository { return &OrderRepository{pool: pool} }

// Save — транзакционно сохраняет заказ (идемпотентный upsert + полная замена позиций).
// is_sent при повторном сохранении не сбрасывается.
func (r *OrderRepository) Save(ctx context.Context, order *domain.Order) error {
	if order == nil || order.OrderUID == "" {
		return errors.New("order is empty or order_uid is required")
	}
	status := order.Status
	if status == "" {
		status = domain.OrderStatusNew
	}
	createdAt := order.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	transaction, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer rollback(ctx, transaction)

	f := order.OrderForm
	if _, err = transaction.Exec(ctx, `
		INSERT INTO orders (`+orderColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, FALSE, $18)
		ON CONFLICT (order_uid) DO UPDATE SET
			full_name = EXCLUDED.full_name,
			phone_number = EXCLUDED.phone_number,
			is_self_pickup = EXCLUDED.is_self_pickup,
			recipient_name = EXCLUDED.recipient_name,
			recipient_phone = EXCLUDED.recipient_phone,
			city = EXCLUDED.city,
			street = EXCLUDED.street,
			house = EXCLUDED.house,
			building = EXCLUDED.building,
			apartment = EXCLUDED.apartment,
			delivery_method = EXCLUDED.delivery_method,
			delivery_date = EXCLUDED.delivery_date,
			delivery_time = EXCLUDED.delivery_time,
			wishes = EXCLUDED.wishes,
			card_text = EXCLUDED.card_text,
			status = EXCLUDED.status
	`,
		order.OrderUID, f.FullName, f.PhoneNumber, f.IsSelfPickup, f.RecipientName, f.RecipientPhone,
		f.City, f.Street, f.House, f.Building, f.Apartment, f.DeliveryMethod, f.DeliveryDate, f.DeliveryTime,
		f.Wishes, f.CardText, string(status), createdAt,
	); err != nil {
		return fmt.Errorf("upsert order: %w", err)
	}

	// items — replace: удаляем и вставляем список заново.
	if _, err = transaction.Exec(ctx, `DELETE FROM order_items WHERE order_uid = $1`, order.OrderUID); err != nil {
		return fmt.Errorf("delete items: %w", err)
	}
	if len(order.Items) > 0 {
		if err = copyItems(ctx, transaction, order.OrderUID, order.Items); err != nil {
			return err
		}
	}

	// Завершаем транзакцию
	if err := transaction.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// GetByUID — получить заказ по uid. Если не нашли, возвращает (nil, nil).
func (r *OrderRepository) GetByUID(ctx context.Context, uid string) (*domain.Order, error) {
	order, err := scanOrder(r.pool.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE order_uid = $1`, uid))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select order: %w", err)
	}

	if err := r.attachItems(ctx, r.pool, []*domain.Order{order}); err != nil {
		return nil, err
	}
	return order, nil
}

// ClaimUnsent — выбрать неотправленные заказы и пометить их отправленными в одной транзакции.
// Конкурентные вызовы не получат один и тот же заказ (FOR UPDATE SKIP LOCKED).
func (r *OrderRepository) ClaimUnsent(ctx context.Context) ([]*domain.Order, error) {
	transaction, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer rollback(ctx, transaction)

	orders, err := queryOrders(ctx, transaction, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE NOT is_sent
		ORDER BY created_at, order_uid
		FOR UPDATE SKIP LOCKED
	`)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	uids := make([]string, 0, len(orders))
	for _, o := range orders {
		uids = append(uids, o.OrderUID)
	}
	if _, err := transaction.Exec(ctx, `UPDATE orders SET is_sent = TRUE WHERE order_uid = ANY($1::text[])`, uids); err != nil {
		return nil, fmt.Errorf("mark sent: %w", err)
	}
	if err := r.attachItems(ctx, transaction, orders); err != nil {
		return nil, err
	}

	if err := transaction.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	// В ответе — состояние на момент выдачи (уже отправлены).
	for _, o := range orders {
		o.IsSent = true
	}
	return orders, nil
}

// ListByStatus — постраничный список заказов в статусе status (новые сначала).
func (r *OrderRepository) ListByStatus(ctx context.Context, status domain.OrderStatus, limit, offset int) ([]*domain.Order, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	orders, err := queryOrders(ctx, r.pool, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE status = $1
		ORDER BY created_at DESC, order_uid DESC
		LIMIT $2 OFFSET $3
	`, string(status), limit, offset)
	if err != nil {
		return nil, err
	}
	if err := r.attachItems(ctx, r.pool, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// LastN — последние N заказов (для прогрева кэша).
func (r *OrderRepository) LastN(ctx context.Context, n int) ([]*domain.Order, error) {
	if n <= 0 {
		return nil, nil
	}

	orders, err := queryOrders(ctx, r.pool, `
		SELECT `+orderColumns+`
		FROM orders
		ORDER BY created_at DESC
		LIMIT $1
	`, n)
	if err != nil {
		return nil, err
	}
	if err := r.attachItems(ctx, r.pool, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// querier — общее у pgxpool.Pool и pgx.Tx.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func queryOrders(ctx context.Context, q querier, sql string, args ...any) ([]*domain.Order, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("select orders: %w", err)
	}
	defer rows.Close()

	orders := make([]*domain.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("orders rows: %w", err)
	}
	return orders, nil
}

// attachItems — позиции для всех заказов одним запросом, порядок заказов сохраняется.
func (r *OrderRepository) attachItems(ctx context.Context, q querier, orders []*domain.Order) error {
	if len(orders) == 0 {
		return nil
	}
	byUID := make(map[string]*domain.Order, len(orders))
	uids := make([]string, 0, len(orders))
	for _, o := range orders {
		byUID[o.OrderUID] = o
		uids = append(uids, o.OrderUID)
	}

	rows, err := q.Query(ctx, `
		SELECT order_uid, product_id, name, price, quantity
		FROM order_items
		WHERE order_uid = ANY($1::text[])
		ORDER BY order_uid, position
	`, uids)
	if err != nil {
		return fmt.Errorf("select items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var uid string
		var item domain.OrderItem
		if err := rows.Scan(&uid, &item.ProductID, &item.Name, &item.Price, &item.Quantity); err != nil {
			return fmt.Errorf("scan item: %w", err)
		}
		if o := byUID[uid]; o != nil {
			o.Items = append(o.Items, item)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("items rows: %w", err)
	}
	return nil
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	var status string
	err := row.Scan(
		&o.OrderUID, &o.FullName, &o.PhoneNumber, &o.IsSelfPickup, &o.RecipientName, &o.RecipientPhone,
		&o.City, &o.Street, &o.House, &o.Building, &o.Apartment, &o.DeliveryMethod, &o.DeliveryDate, &o.DeliveryTime,
		&o.Wishes, &o.CardText, &status, &o.IsSent, &o.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	o.Status = domain.OrderStatus(status)
	return &o, nil
}

// copyItems — вставка позиций заказа через COPY.
func copyItems(ctx context.Context, tx pgx.Tx, orderUID string, items []domain.OrderItem) error {
	rows := make([][]any, 0, len(items))
	for i, item := range items {
		rows = append(rows, []any{orderUID, i, item.ProductID, item.Name, item.Price, item.Quantity})
	}

	_, err := tx.CopyFrom(
		ctx,
		pgx.Identifier{"order_items"},
		[]string{"order_uid", "position", "product_id", "name", "price", "quantity"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("copy items: %w", err)
	}
	return nil
}

// rollback — откат незавершённой транзакции; после Commit вернёт ErrTxClosed, это не ошибка.
func rollback(ctx context.Context, tx pgx.Tx) {
	_ = tx.Rollback(ctx)
}
