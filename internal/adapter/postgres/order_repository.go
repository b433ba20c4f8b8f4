package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/YelzhanWeb/tableside/internal/domain"
	"github.com/YelzhanWeb/tableside/internal/interfaces"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type orderRepository struct {
	db  DB
	now func() time.Time
}

func NewOrderRepository(db DB) interfaces.OrderStore {
	return &orderRepository{db: db, now: time.Now}
}

const orderColumns = `id, table_no, items, total, status, created_at`

// Items are kept as a JSON text column, the same shape the order feed emits.
func (r *orderRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("failed to encode items: %w", err)
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = domain.Timestamp{Time: r.now()}
	}

	query := `
		INSERT INTO orders (table_no, items, total, status, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err = r.db.QueryRow(ctx, query,
		order.TableNo, string(items), order.Total, string(order.Status), order.CreatedAt.Time,
	).Scan(&order.ID)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}
	return nil
}

func (r *orderRepository) FindOrder(ctx context.Context, id int) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	order, err := scanOrder(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("order %d: %w", id, domain.ErrOrderNotFound)
	}
	if err != nil {
		return nil, err
	}
	return order, nil
}

// ModifyOrder locks the row for the length of the transaction so concurrent
// writers apply one after another.
func (r *orderRepository) ModifyOrder(ctx context.Context, id int, change func(order *domain.Order) error) (*domain.Order, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1 FOR UPDATE`
	order, err := scanOrder(tx.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("order %d: %w", id, domain.ErrOrderNotFound)
	}
	if err != nil {
		return nil, err
	}

	if err := change(order); err != nil {
		return nil, err
	}
	items, err := json.Marshal(order.Items)
	if err != nil {
		return nil, fmt.Errorf("failed to encode items: %w", err)
	}

	update := `
		UPDATE orders
		SET items = $1, total = $2, status = $3
		WHERE id = $4
	`
	if _, err := tx.Exec(ctx, update, string(items), order.Total, string(order.Status), id); err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit order update: %w", err)
	}
	order.ID = id
	return order, nil
}

func (r *orderRepository) ListOrders(ctx context.Context) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY id DESC`
	return r.queryOrders(ctx, query)
}

func (r *orderRepository) ListOrdersBetween(ctx context.Context, from, to time.Time) ([]domain.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE created_at >= $1 AND created_at < $2
		ORDER BY id DESC
	`
	return r.queryOrders(ctx, query, from, to)
}

func (r *orderRepository) queryOrders(ctx context.Context, query string, args ...any) ([]domain.Order, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	orders := make([]domain.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read orders: %w", err)
	}
	return orders, nil
}

func (r *orderRepository) CreateAddition(ctx context.Context, addition *domain.Addition) error {
	if addition.CreatedAt.IsZero() {
		addition.CreatedAt = domain.Timestamp{Time: r.now()}
	}

	query := `
		INSERT INTO order_additions (order_id, table_no, item_name, qty, price, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	err := r.db.QueryRow(ctx, query,
		addition.OrderID, addition.TableNo, addition.ItemName, addition.Quantity,
		addition.Price, string(addition.Status), addition.CreatedAt.Time,
	).Scan(&addition.ID)
	if err != nil {
		return fmt.Errorf("failed to insert addition: %w", err)
	}
	return nil
}

const additionColumns = `id, order_id, table_no, item_name, qty, price, status, created_at`

func (r *orderRepository) FindAddition(ctx context.Context, id int) (*domain.Addition, error) {
	query := `SELECT ` + additionColumns + ` FROM order_additions WHERE id = $1`

	a, err := scanAddition(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("addition %d: %w", id, domain.ErrAdditionNotFound)
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *orderRepository) UpdateAddition(ctx context.Context, addition *domain.Addition) error {
	tag, err := r.db.Exec(ctx, `UPDATE order_additions SET status = $1 WHERE id = $2`, string(addition.Status), addition.ID)
	if err != nil {
		return fmt.Errorf("failed to update addition: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("addition %d: %w", addition.ID, domain.ErrAdditionNotFound)
	}
	return nil
}

// ListAdditions returns additions oldest first; an empty status matches all.
func (r *orderRepository) ListAdditions(ctx context.Context, status domain.AdditionStatus) ([]domain.Addition, error) {
	query := `
		SELECT ` + additionColumns + `
		FROM order_additions
		WHERE $1::text = '' OR status = $1
		ORDER BY id ASC
	`
	rows, err := r.db.Query(ctx, query, string(status))
	if err != nil {
		return nil, fmt.Errorf("failed to query additions: %w", err)
	}
	defer rows.Close()

	list := make([]domain.Addition, 0)
	for rows.Next() {
		a, err := scanAddition(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read additions: %w", err)
	}
	return list, nil
}

func scanOrder(row Row) (*domain.Order, error) {
	var (
		order     domain.Order
		items     string
		total     decimal.Decimal
		status    string
		createdAt time.Time
	)
	if err := row.Scan(&order.ID, &order.TableNo, &items, &total, &status, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan order: %w", err)
	}
	if err := json.Unmarshal([]byte(items), &order.Items); err != nil {
		return nil, fmt.Errorf("order %d: %w", order.ID, err)
	}
	order.Total = total
	order.Status = domain.Status(status)
	order.CreatedAt = domain.Timestamp{Time: createdAt}
	return &order, nil
}

func scanAddition(row Row) (*domain.Addition, error) {
	var (
		a         domain.Addition
		price     decimal.Decimal
		status    string
		createdAt time.Time
	)
	err := row.Scan(&a.ID, &a.OrderID, &a.TableNo, &a.ItemName, &a.Quantity, &price, &status, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan addition: %w", err)
	}
	a.Price = price
	a.Status = domain.AdditionStatus(status)
	a.CreatedAt = domain.Timestamp{Time: createdAt}
	return &a, nil
}
