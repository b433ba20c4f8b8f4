package postgres

import (
	"context"
	"fmt"

	"github.com/YelzhanWeb/tableside/internal/domain"
	"github.com/YelzhanWeb/tableside/internal/interfaces"
)

type transitionRepository struct {
	db DB
}

func NewTransitionRepository(db DB) interfaces.TransitionRepository {
	return &transitionRepository{db: db}
}

func (r *transitionRepository) LogTransition(ctx context.Context, t domain.Transition) error {
	query := `
		INSERT INTO order_status_log (order_id, table_no, old_status, new_status, observed_by, observed_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.Exec(ctx, query,
		t.OrderID, t.TableNo, string(t.OldStatus), string(t.NewStatus), t.ObservedBy, t.ObservedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to log transition: %w", err)
	}
	return nil
}

func (r *transitionRepository) GetStatusHistory(ctx context.Context, orderID int) ([]domain.Transition, error) {
	query := `
		SELECT order_id, table_no, old_status, new_status, observed_by, observed_at
		FROM order_status_log
		WHERE order_id = $1
		ORDER BY observed_at ASC, id ASC
	`

	rows, err := r.db.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to query status history: %w", err)
	}
	defer rows.Close()

	var history []domain.Transition
	for rows.Next() {
		var (
			t        domain.Transition
			old, cur string
		)
		if err := rows.Scan(&t.OrderID, &t.TableNo, &old, &cur, &t.ObservedBy, &t.ObservedAt); err != nil {
			return nil, fmt.Errorf("failed to scan status log: %w", err)
		}
		t.OldStatus, t.NewStatus = domain.Status(old), domain.Status(cur)
		history = append(history, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read status history: %w", err)
	}
	return history, nil
}
