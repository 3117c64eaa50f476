package httphandler

import (
	"log/slog"
	"net/http"

	"github.com/niksmo/storefront/internal/core/port"
)

// GET /v1/products?q=&category=&price_min=&price_max=&sort=&page=&page_size=
// GET /v1/products/{source}/{id}
// GET /v1/products/{source}/{id}/similar?limit=
// GET /v1/suggestions?q=&limit=

type CatalogHandler struct {
	searcher  port.ProductsSearcher
	provider  port.ProductProvider
	suggester port.Suggester
}

func RegisterCatalog(
	mux *http.ServeMux,
	searcher port.ProductsSearcher,
	provider port.ProductProvider,
	suggester port.Suggester,
) {
	h := CatalogHandler{searcher, provider, suggester}
	mux.HandleFunc("GET /v1/products", h.SearchProducts)
	mux.HandleFunc("GET /v1/products/{source}/{id}", h.GetProduct)
	mux.HandleFunc("GET /v1/products/{source}/{id}/similar", h.GetSimilar)
	mux.HandleFunc("GET /v1/suggestions", h.GetSuggestions)
}

func (h CatalogHandler) SearchProducts(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.SearchProducts"

	q := r.URL.Query()
	res := h.searcher.SearchProducts(
		r.Context(),
		queryInt(q, "page", 0),
		queryInt(q, "page_size", 0),
		parseCriteria(q),
	)

	respondJSON(w, http.StatusOK, SearchResult{
		Items:    toAPIProducts(res.Items),
		Total:    res.Total,
		Page:     res.Page,
		PageSize: res.PageSize,
		HasMore:  res.HasMore,
		Token:    res.Token,
	})

	slog.With("op", op).Debug("search served",
		"total", res.Total, "page", res.Page)
}

func (h CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	ref, err := pathRef(r)
	if err != nil {
		respondError(w, err)
		return
	}

	p, ok := h.provider.Product(r.Context(), ref)
	if !ok {
		http.Error(w, "item not found", http.StatusNotFound)
		return
	}

	respondJSON(w, http.StatusOK, toAPIProduct(p))
}

func (h CatalogHandler) GetSimilar(w http.ResponseWriter, r *http.Request) {
	ref, err := pathRef(r)
	if err != nil {
		respondError(w, err)
		return
	}

	n := queryInt(r.URL.Query(), "limit", 4)
	similar := h.provider.Similar(r.Context(), ref, n)

	respondJSON(w, http.StatusOK, toAPIProducts(similar))
}

func (h CatalogHandler) GetSuggestions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	suggestions := h.suggester.Suggest(
		r.Context(), q.Get("q"), queryInt(q, "limit", 0),
	)

	out := make([]Suggestion, len(suggestions))
	for i, s := range suggestions {
		out[i] = Suggestion{
			Source: string(s.Ref.Source),
			ID:     s.Ref.ID,
			Title:  s.Title,
		}
	}
	respondJSON(w, http.StatusOK, out)
}
