// Package catalog provides the product sources: the DummyJSON HTTP
// client for the external catalog and the fixed local product list.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.CatalogSource = (*Client)(nil)

const suggestFields = "id,title,brand,category,thumbnail"

type Client struct {
	baseURL string
	httpc   *http.Client
	rate    float64
}

func NewClient(baseURL string, timeout time.Duration, currencyRate float64) Client {
	return Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: timeout},
		rate:    currencyRate,
	}
}

type listResponse struct {
	Products []rawRecord `json:"products"`
	Total    int         `json:"total"`
}

func (c Client) Products(
	ctx context.Context, query string, limit, skip int,
) ([]domain.Product, error) {
	const op = "catalog.Client.Products"

	u := c.listURL(query, limit, skip, "")

	var body listResponse
	if err := c.getJSON(ctx, u, &body); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return c.normalizeAll(body.Products), nil
}

func (c Client) Product(
	ctx context.Context, id int,
) (domain.Product, error) {
	const op = "catalog.Client.Product"

	u := fmt.Sprintf("%s/products/%d", c.baseURL, id)

	var raw rawRecord
	if err := c.getJSON(ctx, u, &raw); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	return Normalize(raw, c.rate), nil
}

func (c Client) Suggestions(
	ctx context.Context, query string, limit int,
) ([]domain.Product, error) {
	const op = "catalog.Client.Suggestions"

	u := c.listURL(query, limit, 0, suggestFields)

	var body listResponse
	if err := c.getJSON(ctx, u, &body); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return c.normalizeAll(body.Products), nil
}

func (c Client) listURL(query string, limit, skip int, selectFields string) string {
	q := url.Values{}
	q.Set("limit", fmt.Sprint(limit))
	if skip > 0 {
		q.Set("skip", fmt.Sprint(skip))
	}
	if selectFields != "" {
		q.Set("select", selectFields)
	}

	path := "/products"
	if query != "" {
		path = "/products/search"
		q.Set("q", query)
	}

	return c.baseURL + path + "?" + q.Encode()
}

func (c Client) getJSON(ctx context.Context, u string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}

	res, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return port.ErrNotFound
	}
	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %s", res.Status)
	}

	return json.NewDecoder(res.Body).Decode(v)
}

func (c Client) normalizeAll(raws []rawRecord) []domain.Product {
	ps := make([]domain.Product, 0, len(raws))
	for _, raw := range raws {
		ps = append(ps, Normalize(raw, c.rate))
	}
	return ps
}
