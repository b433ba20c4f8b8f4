package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/YelzhanWeb/tableside/internal/domain"
	"github.com/YelzhanWeb/tableside/internal/interfaces"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type menuRepository struct {
	db DB
}

func NewMenuRepository(db DB) interfaces.MenuStore {
	return &menuRepository{db: db}
}

const menuColumns = `id, name, price, category, image, available`

func (r *menuRepository) CreateMenuItem(ctx context.Context, item *domain.MenuItem) error {
	query := `
		INSERT INTO menu (name, price, category, image, available)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.db.QueryRow(ctx, query,
		item.Name, item.Price, item.Category, item.Image, bool(item.Available),
	).Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("failed to create menu item: %w", err)
	}
	return nil
}

func (r *menuRepository) FindMenuItem(ctx context.Context, id int) (*domain.MenuItem, error) {
	query := `SELECT ` + menuColumns + ` FROM menu WHERE id = $1`

	item, err := scanMenuItem(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("menu item %d: %w", id, domain.ErrMenuItemNotFound)
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *menuRepository) UpdateMenuItem(ctx context.Context, item *domain.MenuItem) error {
	query := `
		UPDATE menu
		SET name = $1, price = $2, category = $3, image = $4, available = $5
		WHERE id = $6
	`
	tag, err := r.db.Exec(ctx, query,
		item.Name, item.Price, item.Category, item.Image, bool(item.Available), item.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update menu item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("menu item %d: %w", item.ID, domain.ErrMenuItemNotFound)
	}
	return nil
}

func (r *menuRepository) DeleteMenuItem(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM menu WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete menu item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("menu item %d: %w", id, domain.ErrMenuItemNotFound)
	}
	return nil
}

// ListMenu returns the menu, newest first.
func (r *menuRepository) ListMenu(ctx context.Context) ([]domain.MenuItem, error) {
	rows, err := r.db.Query(ctx, `SELECT `+menuColumns+` FROM menu ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query menu: %w", err)
	}
	defer rows.Close()

	items := make([]domain.MenuItem, 0)
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read menu: %w", err)
	}
	return items, nil
}

func scanMenuItem(row Row) (*domain.MenuItem, error) {
	var (
		item      domain.MenuItem
		price     decimal.Decimal
		available bool
	)
	if err := row.Scan(&item.ID, &item.Name, &price, &item.Category, &item.Image, &available); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan menu item: %w", err)
	}
	item.Price = price
	item.Available = domain.Flag(available)
	return &item, nil
}
