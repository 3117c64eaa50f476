package httphandler

import (
	"net/http"

	"github.com/niksmo/storefront/internal/core/port"
)

// GET /v1/compare
// POST /v1/compare JSON {"source", "id"}
// DELETE /v1/compare
// DELETE /v1/compare/{source}/{id}

type CompareHandler struct {
	compare port.CompareManager
}

func RegisterCompare(mux *http.ServeMux, compare port.CompareManager) {
	h := CompareHandler{compare}
	mux.HandleFunc("GET /v1/compare", h.GetCompare)
	mux.HandleFunc("POST /v1/compare", h.AddItem)
	mux.HandleFunc("DELETE /v1/compare", h.Clear)
	mux.HandleFunc("DELETE /v1/compare/{source}/{id}", h.RemoveItem)
}

func (h CompareHandler) GetCompare(w http.ResponseWriter, r *http.Request) {
	items, err := h.compare.CompareItems(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toAPIProducts(items))
}

func (h CompareHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var body ProductRefBody
	if !decodeBody(w, r, &body) {
		return
	}

	ref, err := makeRef(body.Source, body.ID)
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.compare.AddToCompare(r.Context(), ref); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h CompareHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.compare.ClearCompare(r.Context()); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h CompareHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ref, err := pathRef(r)
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.compare.RemoveFromCompare(r.Context(), ref); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
