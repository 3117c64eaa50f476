package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.KVStore = (*PostgresKV)(nil)

// PostgresKV keeps the same kvstore table as the sqlite adapter, the
// schema is applied by cmd/migrator.
type PostgresKV struct {
	db *sql.DB
}

func NewPostgresKV(ctx context.Context, dsn string) (PostgresKV, error) {
	const op = "PostgresKV"
	log := slog.With("op", op)

	connConfig, err := pgx.ParseConfig(dsn)
	if err != nil {
		return PostgresKV{}, fmt.Errorf("%s: %w", op, err)
	}
	connStr := stdlib.RegisterConnConfig(connConfig)
	db, _ := sql.Open("pgx", connStr)

	s := PostgresKV{db}
	if err := db.PingContext(ctx); err != nil {
		return PostgresKV{}, fmt.Errorf("%s: database is unavailable: %w", op, err)
	}

	log.Info("postgres storage is available")
	return s, nil
}

func (s PostgresKV) Get(ctx context.Context, key string) ([]byte, error) {
	const op = "PostgresKV.Get"

	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM kvstore WHERE key = $1`, key,
	).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, port.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return []byte(value), nil
}

func (s PostgresKV) Set(ctx context.Context, key string, value []byte) error {
	const op = "PostgresKV.Set"

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kvstore (key, value, updated_at)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (key)
		 DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
		key, string(value), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s PostgresKV) Delete(ctx context.Context, key string) error {
	const op = "PostgresKV.Delete"

	_, err := s.db.ExecContext(ctx,
		`DELETE FROM kvstore WHERE key = $1`, key,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s PostgresKV) Close() {
	const op = "PostgresKV.Close"
	log := slog.With("op", op)

	log.Info("closing postgres storage...")

	if err := s.db.Close(); err != nil {
		log.Error("failed to close", "err", err)
		return
	}
	log.Info("postgres storage is closed")
}
