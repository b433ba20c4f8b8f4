package postgres

import (
	"context"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS menu (
		id         SERIAL PRIMARY KEY,
		name       TEXT NOT NULL,
		price      NUMERIC(10,2) NOT NULL,
		category   TEXT NOT NULL DEFAULT '',
		image      TEXT NOT NULL DEFAULT '',
		available  BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id         SERIAL PRIMARY KEY,
		table_no   INTEGER NOT NULL,
		items      TEXT NOT NULL,
		total      NUMERIC(10,2) NOT NULL,
		status     TEXT NOT NULL DEFAULT 'Received',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS order_additions (
		id         SERIAL PRIMARY KEY,
		order_id   INTEGER NOT NULL REFERENCES orders(id),
		table_no   INTEGER NOT NULL,
		item_name  TEXT NOT NULL,
		qty        INTEGER NOT NULL,
		price      NUMERIC(10,2) NOT NULL,
		status     TEXT NOT NULL DEFAULT 'New',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS order_status_log (
		id          SERIAL PRIMARY KEY,
		order_id    INTEGER NOT NULL,
		table_no    INTEGER NOT NULL,
		old_status  TEXT NOT NULL DEFAULT '',
		new_status  TEXT NOT NULL,
		observed_by TEXT NOT NULL,
		observed_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_order_status_log_order ON order_status_log (order_id, observed_at)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders (created_at)`,
}

// EnsureSchema creates the tables this repository needs if they are missing.
func EnsureSchema(ctx context.Context, db DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
