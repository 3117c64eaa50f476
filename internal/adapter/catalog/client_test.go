package catalog_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/niksmo/storefront/internal/adapter/catalog"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

const testRate = 85.5

func newTestClient(t *testing.T, h http.HandlerFunc) catalog.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return catalog.NewClient(srv.URL, 0, testRate)
}

func TestClientProducts(t *testing.T) {
	t.Run("ListWithoutQuery", func(t *testing.T) {
		cl := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/products", r.URL.Path)
			assert.Equal(t, "30", r.URL.Query().Get("limit"))
			assert.Empty(t, r.URL.Query().Get("q"))

			w.Write([]byte(`{
				"products": [
					{"id": 1, "title": "Essence Mascara", "price": 9.99},
					{"id": 2, "title": "Powder Canister", "price": 14.99}
				],
				"total": 2
			}`))
		})

		ps, err := cl.Products(t.Context(), "", 30, 0)
		require.NoError(t, err)
		require.Len(t, ps, 2)
		assert.Equal(t, domain.SourceDummyJSON, ps[0].Ref.Source)
		assert.Equal(t, "Essence Mascara", ps[0].Title)
	})

	t.Run("SearchPathWithQuery", func(t *testing.T) {
		cl := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/products/search", r.URL.Path)
			assert.Equal(t, "phone", r.URL.Query().Get("q"))
			assert.Equal(t, "20", r.URL.Query().Get("skip"))

			w.Write([]byte(`{"products": [], "total": 0}`))
		})

		ps, err := cl.Products(t.Context(), "phone", 30, 20)
		require.NoError(t, err)
		assert.Empty(t, ps)
	})

	t.Run("ServerError", func(t *testing.T) {
		cl := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

		_, err := cl.Products(t.Context(), "", 30, 0)
		require.Error(t, err)
	})
}

func TestClientProduct(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		cl := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/products/5", r.URL.Path)
			w.Write([]byte(`{"id": 5, "title": "Kiwi", "price": 2.5}`))
		})

		p, err := cl.Product(t.Context(), 5)
		require.NoError(t, err)
		assert.Equal(t, 5, p.Ref.ID)
		assert.Equal(t, "Kiwi", p.Title)
	})

	t.Run("NotFound", func(t *testing.T) {
		cl := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})

		_, err := cl.Product(t.Context(), 404)
		require.Error(t, err)
		assert.ErrorIs(t, err, port.ErrNotFound)
	})
}

func TestClientSuggestions(t *testing.T) {
	cl := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/search", r.URL.Path)
		assert.NotEmpty(t, r.URL.Query().Get("select"))

		w.Write([]byte(`{
			"products": [{"id": 7, "title": "iPhone 15", "brand": "Apple"}],
			"total": 1
		}`))
	})

	ps, err := cl.Suggestions(t.Context(), "iph", 15)
	require.NoError(t, err)
	require.Len(t, ps, 1)
	assert.Equal(t, "iPhone 15", ps[0].Title)
}
