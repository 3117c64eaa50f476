package httphandler

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/niksmo/storefront/internal/core/domain"
)

type (
	Product struct {
		Source             string            `json:"source"`
		ID                 int               `json:"id"`
		Title              string            `json:"title"`
		Description        string            `json:"description"`
		Price              int               `json:"price"`
		DiscountPercentage float64           `json:"discount_percentage"`
		DiscountedPrice    int               `json:"discounted_price"`
		Rating             float64           `json:"rating"`
		Stock              int               `json:"stock"`
		Brand              string            `json:"brand"`
		Category           string            `json:"category"`
		Thumbnail          string            `json:"thumbnail"`
		Images             []string          `json:"images"`
		Features           []string          `json:"features"`
		Specifications     map[string]string `json:"specifications"`
		Tags               []string          `json:"tags"`
	}

	SearchResult struct {
		Items    []Product `json:"items"`
		Total    int       `json:"total"`
		Page     int       `json:"page"`
		PageSize int       `json:"page_size"`
		HasMore  bool      `json:"has_more"`
		Token    uint64    `json:"token"`
	}

	Suggestion struct {
		Source string `json:"source"`
		ID     int    `json:"id"`
		Title  string `json:"title"`
	}

	CartItem struct {
		Product  Product `json:"product"`
		Quantity int     `json:"quantity"`
	}

	CartTotals struct {
		Count    int `json:"count"`
		Subtotal int `json:"subtotal"`
		Discount int `json:"discount"`
		Total    int `json:"total"`
	}

	Cart struct {
		Items  []CartItem `json:"items"`
		Totals CartTotals `json:"totals"`
	}

	ShippingAddress struct {
		Name       string `json:"name"`
		Line1      string `json:"line1"`
		Line2      string `json:"line2"`
		City       string `json:"city"`
		State      string `json:"state"`
		PostalCode string `json:"postal_code"`
		Phone      string `json:"phone"`
	}

	TrackingEvent struct {
		Status      string    `json:"status"`
		Description string    `json:"description"`
		At          time.Time `json:"at"`
	}

	Order struct {
		ID            string          `json:"id"`
		Items         []CartItem      `json:"items"`
		Totals        CartTotals      `json:"totals"`
		Address       ShippingAddress `json:"address"`
		PaymentMethod string          `json:"payment_method"`
		Status        string          `json:"status"`
		CreatedAt     time.Time       `json:"created_at"`
		Tracking      []TrackingEvent `json:"tracking"`
	}

	Session struct {
		UserID    string    `json:"user_id"`
		Name      string    `json:"name"`
		Email     string    `json:"email"`
		CreatedAt time.Time `json:"created_at"`
	}
)

// Request bodies.

type (
	ProductRefBody struct {
		Source   string `json:"source"`
		ID       int    `json:"id"`
		Quantity int    `json:"quantity,omitempty"`
	}

	QuantityBody struct {
		Quantity int `json:"quantity"`
	}

	CheckoutBody struct {
		Address       ShippingAddress `json:"address"`
		PaymentMethod string          `json:"payment_method"`
	}

	ThemeBody struct {
		Theme string `json:"theme"`
	}

	SessionBody struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
)

func toAPIProduct(p domain.Product) Product {
	return Product{
		Source:             string(p.Ref.Source),
		ID:                 p.Ref.ID,
		Title:              p.Title,
		Description:        p.Description,
		Price:              p.Price,
		DiscountPercentage: p.DiscountPercentage,
		DiscountedPrice:    p.DiscountedPrice(),
		Rating:             p.Rating,
		Stock:              p.Stock,
		Brand:              p.Brand,
		Category:           p.Category,
		Thumbnail:          p.Thumbnail,
		Images:             p.Images,
		Features:           p.Features,
		Specifications:     p.Specifications,
		Tags:               p.Tags,
	}
}

func toAPIProducts(ps []domain.Product) []Product {
	out := make([]Product, len(ps))
	for i, p := range ps {
		out[i] = toAPIProduct(p)
	}
	return out
}

func toAPICartItems(items []domain.CartItem) []CartItem {
	out := make([]CartItem, len(items))
	for i, item := range items {
		out[i] = CartItem{
			Product:  toAPIProduct(item.Product),
			Quantity: item.Quantity,
		}
	}
	return out
}

func toAPITotals(t domain.CartTotals) CartTotals {
	return CartTotals{
		Count:    t.Count,
		Subtotal: t.Subtotal,
		Discount: t.Discount,
		Total:    t.Total,
	}
}

func toAPITracking(events []domain.TrackingEvent) []TrackingEvent {
	out := make([]TrackingEvent, len(events))
	for i, e := range events {
		out[i] = TrackingEvent{
			Status:      string(e.Status),
			Description: e.Description,
			At:          e.At,
		}
	}
	return out
}

func toAPIOrder(o domain.Order) Order {
	return Order{
		ID:            o.ID,
		Items:         toAPICartItems(o.Items),
		Totals:        toAPITotals(o.Totals),
		Address:       toAPIAddress(o.Address),
		PaymentMethod: o.PaymentMethod,
		Status:        string(o.Status),
		CreatedAt:     o.CreatedAt,
		Tracking:      toAPITracking(o.Tracking),
	}
}

func toAPIAddress(a domain.ShippingAddress) ShippingAddress {
	return ShippingAddress(a)
}

func toDomainAddress(a ShippingAddress) domain.ShippingAddress {
	return domain.ShippingAddress(a)
}

// Parsing helpers.

var errInvalidRef = errors.New("invalid product reference")

func parseSource(s string) (domain.Source, error) {
	switch domain.Source(s) {
	case domain.SourceStore:
		return domain.SourceStore, nil
	case domain.SourceDummyJSON:
		return domain.SourceDummyJSON, nil
	}
	return "", fmt.Errorf("%w: unknown source %q", errInvalidRef, s)
}

func makeRef(source string, id int) (domain.ProductRef, error) {
	src, err := parseSource(source)
	if err != nil {
		return domain.ProductRef{}, err
	}
	if id <= 0 {
		return domain.ProductRef{}, fmt.Errorf("%w: non-positive id", errInvalidRef)
	}
	return domain.ProductRef{Source: src, ID: id}, nil
}

func pathRef(r *http.Request) (domain.ProductRef, error) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		return domain.ProductRef{}, fmt.Errorf("%w: non-numeric id", errInvalidRef)
	}
	return makeRef(r.PathValue("source"), id)
}

func parseCriteria(q url.Values) domain.SearchCriteria {
	return domain.SearchCriteria{
		Query:    q.Get("q"),
		Category: q.Get("category"),
		PriceMin: queryInt(q, "price_min", 0),
		PriceMax: queryInt(q, "price_max", 0),
		SortBy:   domain.SortBy(q.Get("sort")),
	}
}

func queryInt(q url.Values, key string, fallback int) int {
	v := q.Get(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
