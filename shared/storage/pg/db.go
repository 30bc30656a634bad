package pg

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/itchan-dev/chatkit/shared/config"
	"github.com/itchan-dev/chatkit/shared/logger"
	"github.com/itchan-dev/chatkit/shared/storage"
)

// DB implements storage.Database over a pool or a single transaction.
type DB struct {
	q    Querier
	pool *sql.DB // nil when q is a transaction
	log  *slog.Logger
}

// Interface satisfaction checks - compile-time verification
var _ storage.Database[Record] = (*DB)(nil)

// New wraps an open pool.
func New(pool *sql.DB) *DB {
	return &DB{q: pool, pool: pool, log: logger.Component("pg")}
}

// Open connects with the given pool settings and wraps the result.
func Open(ctx context.Context, cfg *config.Pg, connCfg ConnectionConfig) (*DB, error) {
	pool, err := Connect(ctx, cfg, connCfg)
	if err != nil {
		return nil, err
	}
	return New(pool), nil
}

// InTx runs fn with a DB bound to one transaction. Nested calls reuse the outer transaction.
func (d *DB) InTx(ctx context.Context, fn func(tx *DB) error) error {
	if d.pool == nil {
		return fn(d)
	}
	return WithTx(ctx, d.pool, func(tx *sql.Tx) error {
		return fn(&DB{q: tx, log: d.log})
	})
}

func (d *DB) Fetch(ctx context.Context, query string, args ...any) (records []Record, err error) {
	defer d.finish("fetch", time.Now(), &err)

	rows, err := d.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows, 0)
}

func (d *DB) FetchRow(ctx context.Context, query string, args ...any) (record *Record, err error) {
	defer d.finish("fetchrow", time.Now(), &err)

	rows, err := d.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch row: %w", err)
	}
	defer rows.Close()

	records, err := scanRecords(rows, 1)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return &records[0], nil
}

func (d *DB) FetchVal(ctx context.Context, query string, args ...any) (val any, err error) {
	defer d.finish("fetchval", time.Now(), &err)

	rows, err := d.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch value: %w", err)
	}
	defer rows.Close()

	records, err := scanRecords(rows, 1)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 || records[0].Len() == 0 {
		return nil, nil
	}
	return records[0].Index(0), nil
}

func (d *DB) Execute(ctx context.Context, query string, args ...any) (status string, err error) {
	defer d.finish("execute", time.Now(), &err)
	return d.exec(ctx, query, args)
}

func (d *DB) ExecuteMany(ctx context.Context, query string, argSets [][]any) (status string, err error) {
	defer d.finish("executemany", time.Now(), &err)

	if len(argSets) == 0 {
		return "", nil
	}
	err = d.InTx(ctx, func(tx *DB) error {
		for i, args := range argSets {
			s, err := tx.exec(ctx, query, args)
			if err != nil {
				return fmt.Errorf("argument set %d: %w", i, err)
			}
			status = s
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return status, nil
}

// Close releases the pool. Transaction-bound DBs have nothing to close.
func (d *DB) Close() error {
	if d.pool == nil {
		return nil
	}
	return d.pool.Close()
}

func (d *DB) exec(ctx context.Context, query string, args []any) (string, error) {
	res, err := d.q.ExecContext(ctx, query, args...)
	if err != nil {
		return "", fmt.Errorf("failed to execute: %w", err)
	}
	n, rowsErr := res.RowsAffected()
	return commandTag(query, n, rowsErr == nil), nil
}

func (d *DB) finish(op string, start time.Time, errp *error) {
	observe(op, start, *errp)
	if *errp != nil {
		d.log.Error("database operation failed", "op", op, "duration", time.Since(start), "error", *errp)
	}
}
