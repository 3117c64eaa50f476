// Package httphandler exposes the storefront REST API over a
// [http.ServeMux].
package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/internal/core/service"
)

func respondJSON(w http.ResponseWriter, status int, v any) {
	const op = "httphandler.respondJSON"

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.With("op", op).Error("failed to write response body", "err", err)
	}
}

func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, port.ErrNotFound):
		http.Error(w, "item not found", http.StatusNotFound)
	case errors.Is(err, errInvalidRef):
		http.Error(w, "invalid product reference", http.StatusBadRequest)
	case errors.Is(err, service.ErrInvalidQuantity):
		http.Error(w, "quantity must be positive", http.StatusBadRequest)
	case errors.Is(err, service.ErrEmptyCart):
		http.Error(w, "cart is empty", http.StatusConflict)
	case errors.Is(err, service.ErrCompareFull):
		http.Error(w, "compare set is full", http.StatusConflict)
	case errors.Is(err, service.ErrAlreadyInCompare):
		http.Error(w, "product is already in compare set", http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		return false
	}
	return true
}
