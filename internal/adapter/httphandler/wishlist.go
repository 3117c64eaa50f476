package httphandler

import (
	"net/http"

	"github.com/niksmo/storefront/internal/core/port"
)

// GET /v1/wishlist
// POST /v1/wishlist JSON {"source", "id"} (toggles membership)
// DELETE /v1/wishlist
// DELETE /v1/wishlist/{source}/{id}

type WishlistHandler struct {
	wishlist port.WishlistManager
}

func RegisterWishlist(mux *http.ServeMux, wishlist port.WishlistManager) {
	h := WishlistHandler{wishlist}
	mux.HandleFunc("GET /v1/wishlist", h.GetWishlist)
	mux.HandleFunc("POST /v1/wishlist", h.Toggle)
	mux.HandleFunc("DELETE /v1/wishlist", h.Clear)
	mux.HandleFunc("DELETE /v1/wishlist/{source}/{id}", h.RemoveItem)
}

func (h WishlistHandler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	items, err := h.wishlist.WishlistItems(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toAPIProducts(items))
}

func (h WishlistHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	var body ProductRefBody
	if !decodeBody(w, r, &body) {
		return
	}

	ref, err := makeRef(body.Source, body.ID)
	if err != nil {
		respondError(w, err)
		return
	}

	added, err := h.wishlist.ToggleWishlist(r.Context(), ref)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"added": added})
}

func (h WishlistHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.wishlist.ClearWishlist(r.Context()); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h WishlistHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ref, err := pathRef(r)
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.wishlist.RemoveFromWishlist(r.Context(), ref); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
