package httphandler

import (
	"log/slog"
	"net/http"

	"github.com/niksmo/storefront/internal/core/port"
)

// POST /v1/orders JSON {"address", "payment_method"}
// GET /v1/orders
// GET /v1/orders/{id}
// GET /v1/orders/{id}/tracking

type OrdersHandler struct {
	orders port.OrdersManager
}

func RegisterOrders(mux *http.ServeMux, orders port.OrdersManager) {
	h := OrdersHandler{orders}
	mux.HandleFunc("POST /v1/orders", h.Checkout)
	mux.HandleFunc("GET /v1/orders", h.ListOrders)
	mux.HandleFunc("GET /v1/orders/{id}", h.GetOrder)
	mux.HandleFunc("GET /v1/orders/{id}/tracking", h.GetTracking)
}

func (h OrdersHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	const op = "OrdersHandler.Checkout"
	log := slog.With("op", op)

	var body CheckoutBody
	if !decodeBody(w, r, &body) {
		return
	}

	order, err := h.orders.Checkout(
		r.Context(), toDomainAddress(body.Address), body.PaymentMethod,
	)
	if err != nil {
		respondError(w, err)
		log.Warn("checkout failed", "err", err)
		return
	}

	respondJSON(w, http.StatusCreated, toAPIOrder(order))
	log.Info("order placed", "orderID", order.ID, "items", len(order.Items))
}

func (h OrdersHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.Orders(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	out := make([]Order, len(orders))
	for i, o := range orders {
		out[i] = toAPIOrder(o)
	}
	respondJSON(w, http.StatusOK, out)
}

func (h OrdersHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.orders.Order(r.Context(), r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toAPIOrder(order))
}

func (h OrdersHandler) GetTracking(w http.ResponseWriter, r *http.Request) {
	events, err := h.orders.OrderTracking(r.Context(), r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toAPITracking(events))
}
