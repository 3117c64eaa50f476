// Package storage provides the key-value persistence adapters behind
// [port.KVStore]: an embedded sqlite file (default) and postgres.
// Values are JSON documents, a write touches exactly one key.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"

	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.KVStore = (*SQLiteKV)(nil)

type SQLiteKV struct {
	db *sql.DB
}

func NewSQLiteKV(ctx context.Context, path string) (SQLiteKV, error) {
	const op = "SQLiteKV"
	log := slog.With("op", op)

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return SQLiteKV{}, fmt.Errorf("%s: %w", op, err)
	}

	_, err = db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS kvstore (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at DATETIME NOT NULL
		)
	`)
	if err != nil {
		_ = db.Close()
		return SQLiteKV{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("sqlite storage is ready", "path", path)
	return SQLiteKV{db}, nil
}

func (s SQLiteKV) Get(ctx context.Context, key string) ([]byte, error) {
	const op = "SQLiteKV.Get"

	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM kvstore WHERE key = ?`, key,
	).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, port.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return []byte(value), nil
}

func (s SQLiteKV) Set(ctx context.Context, key string, value []byte) error {
	const op = "SQLiteKV.Set"

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kvstore (key, value, updated_at)
		 VALUES (?, ?, ?)
		 ON CONFLICT(key)
		 DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(value), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s SQLiteKV) Delete(ctx context.Context, key string) error {
	const op = "SQLiteKV.Delete"

	_, err := s.db.ExecContext(ctx,
		`DELETE FROM kvstore WHERE key = ?`, key,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s SQLiteKV) Close() {
	const op = "SQLiteKV.Close"
	log := slog.With("op", op)

	log.Info("closing sqlite storage...")

	if err := s.db.Close(); err != nil {
		log.Error("failed to close", "err", err)
		return
	}
	log.Info("sqlite storage is closed")
}
