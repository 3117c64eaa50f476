// Package service holds the storefront core: the catalog pipeline and
// the persisted state containers backed by [port.KVStore].
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/niksmo/storefront/internal/core/port"
)

// Storage keys. Each container owns exactly one key and rewrites its
// whole value on change, mirroring a local-storage entry.
const (
	cartKey     = "cart"
	wishlistKey = "wishlist"
	compareKey  = "compare"
	ordersKey   = "orders"
	themeKey    = "theme"
	sessionKey  = "session"
)

var (
	ErrEmptyCart        = errors.New("cart is empty")
	ErrInvalidQuantity  = errors.New("quantity must be positive")
	ErrCompareFull      = errors.New("compare set is full")
	ErrAlreadyInCompare = errors.New("product is already in compare set")
)

// loadState reads a JSON value, an absent key yields the zero value.
func loadState[T any](
	ctx context.Context, store port.KVStore, key, op string,
) (T, error) {
	var v T

	b, err := store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, port.ErrNotFound) {
			return v, nil
		}
		return v, fmt.Errorf("%s: %w", op, err)
	}

	if err := json.Unmarshal(b, &v); err != nil {
		return v, fmt.Errorf("%s: %w", op, err)
	}
	return v, nil
}

func saveState[T any](
	ctx context.Context, store port.KVStore, key string, v T, op string,
) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := store.Set(ctx, key, b); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func slogWarn(op, msg string, err error) {
	slog.With("op", op).Warn(msg, "err", err)
}
