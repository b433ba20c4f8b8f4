package postgres

import (
	"context"
	"fmt"
	"reflect"
)

type execCall struct {
	sql  string
	args []any
}

// fakeDB replays canned rows and records every statement.
type fakeDB struct {
	rows     [][]any
	rowErr   error
	affected int64
	execs    []execCall
	queries  []execCall

	commits   int
	rollbacks int
}

type fakeTag int64

func (t fakeTag) RowsAffected() int64 { return int64(t) }

type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) != len(r.values) {
		return fmt.Errorf("scan: %d targets for %d values", len(dest), len(r.values))
	}
	for i, d := range dest {
		reflect.ValueOf(d).Elem().Set(reflect.ValueOf(r.values[i]))
	}
	return nil
}

type fakeRows struct {
	rows [][]any
	pos  int
}

func (r *fakeRows) Next() bool {
	r.pos++
	return r.pos <= len(r.rows)
}

func (r *fakeRows) Scan(dest ...any) error {
	return fakeRow{values: r.rows[r.pos-1]}.Scan(dest...)
}

func (r *fakeRows) Close()     {}
func (r *fakeRows) Err() error { return nil }

func (db *fakeDB) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	db.queries = append(db.queries, execCall{sql, args})
	return &fakeRows{rows: db.rows}, nil
}

func (db *fakeDB) QueryRow(ctx context.Context, sql string, args ...any) Row {
	db.queries = append(db.queries, execCall{sql, args})
	if db.rowErr != nil || len(db.rows) == 0 {
		return fakeRow{err: db.rowErr}
	}
	return fakeRow{values: db.rows[0]}
}

func (db *fakeDB) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	db.execs = append(db.execs, execCall{sql, args})
	return fakeTag(db.affected), nil
}

func (db *fakeDB) Begin(ctx context.Context) (Tx, error) {
	return &fakeTx{db: db}, nil
}

func (db *fakeDB) Close() {}

// fakeTx runs statements against its parent fakeDB and counts how it ends.
type fakeTx struct {
	db   *fakeDB
	done bool
}

func (tx *fakeTx) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	return tx.db.Query(ctx, sql, args...)
}

func (tx *fakeTx) QueryRow(ctx context.Context, sql string, args ...any) Row {
	return tx.db.QueryRow(ctx, sql, args...)
}

func (tx *fakeTx) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	return tx.db.Exec(ctx, sql, args...)
}

func (tx *fakeTx) Commit(ctx context.Context) error {
	tx.done = true
	tx.db.commits++
	return nil
}

func (tx *fakeTx) Rollback(ctx context.Context) error {
	if tx.done {
		return nil
	}
	tx.done = true
	tx.db.rollbacks++
	return nil
}
