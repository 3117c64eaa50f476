package httphandler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/niksmo/storefront/internal/adapter/httphandler"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/internal/core/service"
)

var testProduct = domain.Product{
	Ref:                domain.ProductRef{Source: domain.SourceStore, ID: 1},
	Title:              "Aurora X5 Smartphone",
	Price:              24999,
	DiscountPercentage: 12,
	Rating:             4.5,
	Stock:              25,
	Category:           "smartphones",
}

type fakeCatalog struct{}

func (fakeCatalog) SearchProducts(
	_ context.Context, page, pageSize int, _ domain.SearchCriteria,
) domain.SearchResult {
	return domain.SearchResult{
		Items:    []domain.Product{testProduct},
		Total:    1,
		Page:     page,
		PageSize: pageSize,
		Token:    7,
	}
}

func (fakeCatalog) Product(
	_ context.Context, ref domain.ProductRef,
) (domain.Product, bool) {
	if ref == testProduct.Ref {
		return testProduct, true
	}
	return domain.Product{}, false
}

func (fakeCatalog) Similar(
	context.Context, domain.ProductRef, int,
) []domain.Product {
	return []domain.Product{testProduct}
}

func (fakeCatalog) Suggest(
	_ context.Context, query string, _ int,
) []domain.Suggestion {
	return []domain.Suggestion{{Ref: testProduct.Ref, Title: testProduct.Title}}
}

type fakeCart struct {
	err error
}

func (f fakeCart) AddToCart(
	_ context.Context, ref domain.ProductRef, quantity int,
) (domain.CartItem, error) {
	if f.err != nil {
		return domain.CartItem{}, f.err
	}
	return domain.CartItem{Product: testProduct, Quantity: quantity}, nil
}

func (f fakeCart) UpdateCartQuantity(
	context.Context, domain.ProductRef, int,
) error {
	return f.err
}

func (f fakeCart) RemoveFromCart(context.Context, domain.ProductRef) error {
	return f.err
}

func (f fakeCart) ClearCart(context.Context) error { return f.err }

func (f fakeCart) CartItems(context.Context) ([]domain.CartItem, error) {
	return nil, f.err
}

func (f fakeCart) CartTotals(context.Context) (domain.CartTotals, error) {
	return domain.CartTotals{}, f.err
}

func newTestServer(t *testing.T, cartErr error) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	httphandler.RegisterCatalog(mux, fakeCatalog{}, fakeCatalog{}, fakeCatalog{})
	httphandler.RegisterCart(mux, fakeCart{err: cartErr})

	srv := httptest.NewServer(httphandler.AllowJSON(mux))
	t.Cleanup(srv.Close)
	return srv
}

func getJSON(t *testing.T, url string, v any) int {
	t.Helper()

	res, err := http.Get(url)
	require.NoError(t, err)
	defer res.Body.Close()

	if v != nil && res.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(res.Body).Decode(v))
	}
	return res.StatusCode
}

func postJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()

	res, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { res.Body.Close() })
	return res
}

func TestSearchProductsRoute(t *testing.T) {
	srv := newTestServer(t, nil)

	var got httphandler.SearchResult
	status := getJSON(t, srv.URL+"/v1/products?q=phone&page=2", &got)

	assert.Equal(t, http.StatusOK, status)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Aurora X5 Smartphone", got.Items[0].Title)
	assert.Equal(t, 21999, got.Items[0].DiscountedPrice)
	assert.Equal(t, 2, got.Page)
	assert.EqualValues(t, 7, got.Token)
}

func TestGetProductRoute(t *testing.T) {
	srv := newTestServer(t, nil)

	t.Run("Found", func(t *testing.T) {
		var got httphandler.Product
		status := getJSON(t, srv.URL+"/v1/products/store/1", &got)

		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "store", got.Source)
		assert.Equal(t, 1, got.ID)
	})

	t.Run("UnknownID", func(t *testing.T) {
		status := getJSON(t, srv.URL+"/v1/products/store/99", nil)
		assert.Equal(t, http.StatusNotFound, status)
	})

	t.Run("UnknownSource", func(t *testing.T) {
		status := getJSON(t, srv.URL+"/v1/products/amazon/1", nil)
		assert.Equal(t, http.StatusBadRequest, status)
	})
}

func TestSuggestionsRoute(t *testing.T) {
	srv := newTestServer(t, nil)

	var got []httphandler.Suggestion
	status := getJSON(t, srv.URL+"/v1/suggestions?q=aur", &got)

	assert.Equal(t, http.StatusOK, status)
	require.Len(t, got, 1)
	assert.Equal(t, "Aurora X5 Smartphone", got[0].Title)
}

func TestAddToCartRoute(t *testing.T) {
	t.Run("DefaultsQuantityToOne", func(t *testing.T) {
		srv := newTestServer(t, nil)

		res := postJSON(t, srv.URL+"/v1/cart", `{"source":"store","id":1}`)
		assert.Equal(t, http.StatusCreated, res.StatusCode)

		var got httphandler.CartItem
		require.NoError(t, json.NewDecoder(res.Body).Decode(&got))
		assert.Equal(t, 1, got.Quantity)
	})

	t.Run("InvalidQuantityMapsTo400", func(t *testing.T) {
		srv := newTestServer(t, fmt.Errorf("op: %w", service.ErrInvalidQuantity))

		res := postJSON(
			t, srv.URL+"/v1/cart", `{"source":"store","id":1,"quantity":-1}`,
		)
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	})

	t.Run("UnknownProductMapsTo404", func(t *testing.T) {
		srv := newTestServer(t, fmt.Errorf("op: %w", port.ErrNotFound))

		res := postJSON(t, srv.URL+"/v1/cart", `{"source":"store","id":77}`)
		assert.Equal(t, http.StatusNotFound, res.StatusCode)
	})

	t.Run("NonJSONBodyRejected", func(t *testing.T) {
		srv := newTestServer(t, nil)

		res, err := http.Post(
			srv.URL+"/v1/cart", "text/plain", strings.NewReader("source=store"),
		)
		require.NoError(t, err)
		defer res.Body.Close()

		assert.Equal(t, http.StatusUnsupportedMediaType, res.StatusCode)
	})
}
