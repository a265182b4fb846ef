package kvstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const schema = `CREATE TABLE IF NOT EXISTS kv_store (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// PGConn is the subset of *pgxpool.Pool the store needs.
type PGConn interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

type Postgres struct {
	db PGConn
}

func NewPostgres(db PGConn) *Postgres {
	return &Postgres{db: db}
}

func (p *Postgres) EnsureSchema(ctx context.Context) error {
	if _, err := p.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("create kv_store: %w", err)
	}
	return nil
}

func (p *Postgres) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value string
	if err := p.db.QueryRow(ctx, `SELECT value FROM kv_store WHERE key=$1`, key).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("select %s: %w", key, err)
	}
	return []byte(value), true, nil
}

func (p *Postgres) SetMany(ctx context.Context, values map[string][]byte) error {
	tx, err := p.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := upsert(ctx, tx, values); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// SetManyIf locks the watched row for the length of the transaction.
func (p *Postgres) SetManyIf(ctx context.Context, watched string, expected []byte, values map[string][]byte) error {
	tx, err := p.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	var current string
	found := true
	if err := tx.QueryRow(ctx, `SELECT value FROM kv_store WHERE key=$1 FOR UPDATE`, watched).Scan(&current); err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("select %s: %w", watched, err)
		}
		found = false
	}
	if !matches([]byte(current), found, expected) {
		return ErrConflict
	}

	if err := upsert(ctx, tx, values); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func upsert(ctx context.Context, tx pgx.Tx, values map[string][]byte) error {
	for k, v := range values {
		if _, err := tx.Exec(ctx, `INSERT INTO kv_store (key, value, updated_at) VALUES ($1, $2, now())
			ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`, k, string(v)); err != nil {
			return fmt.Errorf("upsert %s: %w", k, err)
		}
	}
	return nil
}

func (p *Postgres) Delete(ctx context.Context, key string) error {
	if _, err := p.db.Exec(ctx, `DELETE FROM kv_store WHERE key=$1`, key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

var (
	_ Store             = (*Postgres)(nil)
	_ ConditionalSetter = (*Postgres)(nil)
)
