package httphandler

import (
	"log/slog"
	"net/http"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

// GET /v1/cart
// POST /v1/cart JSON {"source", "id", "quantity"}
// DELETE /v1/cart
// PATCH /v1/cart/{source}/{id} JSON {"quantity"}
// DELETE /v1/cart/{source}/{id}

type CartHandler struct {
	cart port.CartManager
}

func RegisterCart(mux *http.ServeMux, cart port.CartManager) {
	h := CartHandler{cart}
	mux.HandleFunc("GET /v1/cart", h.GetCart)
	mux.HandleFunc("POST /v1/cart", h.AddItem)
	mux.HandleFunc("DELETE /v1/cart", h.ClearCart)
	mux.HandleFunc("PATCH /v1/cart/{source}/{id}", h.UpdateQuantity)
	mux.HandleFunc("DELETE /v1/cart/{source}/{id}", h.RemoveItem)
}

func (h CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.GetCart"

	items, err := h.cart.CartItems(r.Context())
	if err != nil {
		respondError(w, err)
		slog.With("op", op).Error("failed to read cart", "err", err)
		return
	}

	respondJSON(w, http.StatusOK, Cart{
		Items:  toAPICartItems(items),
		Totals: toAPITotals(domain.ComputeCartTotals(items)),
	})
}

func (h CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.AddItem"
	log := slog.With("op", op)

	var body ProductRefBody
	if !decodeBody(w, r, &body) {
		return
	}

	ref, err := makeRef(body.Source, body.ID)
	if err != nil {
		respondError(w, err)
		return
	}

	quantity := body.Quantity
	if quantity == 0 {
		quantity = 1
	}

	line, err := h.cart.AddToCart(r.Context(), ref, quantity)
	if err != nil {
		respondError(w, err)
		log.Warn("failed to add to cart", "ref", ref.String(), "err", err)
		return
	}

	respondJSON(w, http.StatusCreated, CartItem{
		Product:  toAPIProduct(line.Product),
		Quantity: line.Quantity,
	})
}

func (h CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.cart.ClearCart(r.Context()); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	ref, err := pathRef(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var body QuantityBody
	if !decodeBody(w, r, &body) {
		return
	}

	if err := h.cart.UpdateCartQuantity(r.Context(), ref, body.Quantity); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ref, err := pathRef(r)
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.cart.RemoveFromCart(r.Context(), ref); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
