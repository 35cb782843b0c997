// Package postgres is implementation of storage.KV interface.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"github.com/Decentr-net/blockconnect/internal/storage"
)

var log = logrus.WithField("layer", "storage").WithField("package", "postgres")
var errBeginCalledWithinTx = errors.New("can not begin tx within tx")

type pg struct {
	ext sqlx.ExtContext
}

type slotDTO struct {
	Key       string    `db:"key"`
	Value     []byte    `db:"value"`
	UpdatedAt time.Time `db:"updated_at"`
}

// New creates new instance of pg.
func New(db *sql.DB) storage.KV {
	return pg{
		ext: sqlx.NewDb(db, "postgres"),
	}
}

func (s pg) InTx(ctx context.Context, f func(kv storage.KV) error) error {
	if _, ok := s.ext.(*sqlx.Tx); ok {
		return f(s)
	}

	db, ok := s.ext.(*sqlx.DB)
	if !ok {
		return errBeginCalledWithinTx
	}

	tx, err := db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return fmt.Errorf("failed to create tx: %w", err)
	}

	if err := func(kv storage.KV) error {
		// writers are serialized, readers outside of tx see the last committed state
		if _, err := tx.ExecContext(ctx, `LOCK TABLE slot IN EXCLUSIVE MODE`); err != nil {
			return fmt.Errorf("failed to lock slot table: %w", err)
		}

		return f(kv)
	}(pg{ext: tx}); err != nil {
		if err := tx.Rollback(); err != nil {
			log.WithError(err).Error("failed to rollback tx")
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit tx: %w", err)
	}

	return nil
}

func (s pg) Ping(ctx context.Context) error {
	var one int
	if err := sqlx.GetContext(ctx, s.ext, &one, `SELECT 1`); err != nil {
		return fmt.Errorf("failed to ping: %w", err)
	}

	return nil
}

func (s pg) Get(ctx context.Context, key string) ([]byte, error) {
	var v slotDTO

	if err := sqlx.GetContext(ctx, s.ext, &v, `
			SELECT key, value, updated_at FROM slot WHERE key = $1
		`, key,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}

		return nil, fmt.Errorf("failed to query: %w", err)
	}

	return v.Value, nil
}

func (s pg) Set(ctx context.Context, key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}

	if _, err := sqlx.NamedExecContext(ctx, s.ext,
		`
			INSERT INTO slot(key, value, updated_at) VALUES(:key, :value, :updated_at)
			ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at
		`, slotDTO{
			Key:       key,
			Value:     value,
			UpdatedAt: time.Now().UTC(),
		},
	); err != nil {
		return fmt.Errorf("failed to exec: %w", err)
	}

	return nil
}

func (s pg) Delete(ctx context.Context, key string) error {
	if _, err := s.ext.ExecContext(ctx, `DELETE FROM slot WHERE key = $1`, key); err != nil {
		return fmt.Errorf("failed to exec: %w", err)
	}

	return nil
}
