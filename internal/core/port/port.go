package port

import (
	"context"
	"errors"

	"github.com/niksmo/storefront/internal/core/domain"
)

// ErrNotFound signals an absent entity, both the catalog source and the
// key-value store use it instead of transport specific errors.
var ErrNotFound = errors.New("not found")

// Outbound ports.

type (
	// CatalogSource is the external product catalog. Implementations
	// return normalized domain products.
	CatalogSource interface {
		// Products lists up to limit records starting at skip,
		// narrowed server-side by query when it is non-empty.
		Products(ctx context.Context, query string, limit, skip int) ([]domain.Product, error)

		// Product resolves one record by its source-local id,
		// ErrNotFound on a 404-equivalent response.
		Product(ctx context.Context, id int) (domain.Product, error)

		// Suggestions lists lightweight records matching query.
		Suggestions(ctx context.Context, query string, limit int) ([]domain.Product, error)
	}

	// KVStore persists JSON state under fixed keys, single-key writes
	// are atomic. Get returns ErrNotFound for an absent key.
	KVStore interface {
		Get(ctx context.Context, key string) ([]byte, error)
		Set(ctx context.Context, key string, value []byte) error
		Delete(ctx context.Context, key string) error
	}

	// ClientEventProducer publishes best-effort telemetry events.
	ClientEventProducer interface {
		ProduceEvent(ctx context.Context, e domain.ClientEvent) error
	}
)

// Inbound ports.

type ProductsSearcher interface {
	SearchProducts(ctx context.Context, page, pageSize int, c domain.SearchCriteria) domain.SearchResult
}

type ProductProvider interface {
	Product(ctx context.Context, ref domain.ProductRef) (domain.Product, bool)
	Similar(ctx context.Context, ref domain.ProductRef, n int) []domain.Product
}

type Suggester interface {
	Suggest(ctx context.Context, query string, limit int) []domain.Suggestion
}

type CartManager interface {
	AddToCart(ctx context.Context, ref domain.ProductRef, quantity int) (domain.CartItem, error)
	UpdateCartQuantity(ctx context.Context, ref domain.ProductRef, quantity int) error
	RemoveFromCart(ctx context.Context, ref domain.ProductRef) error
	ClearCart(ctx context.Context) error
	CartItems(ctx context.Context) ([]domain.CartItem, error)
	CartTotals(ctx context.Context) (domain.CartTotals, error)
}

type WishlistManager interface {
	ToggleWishlist(ctx context.Context, ref domain.ProductRef) (added bool, err error)
	RemoveFromWishlist(ctx context.Context, ref domain.ProductRef) error
	ClearWishlist(ctx context.Context) error
	WishlistItems(ctx context.Context) ([]domain.Product, error)
	InWishlist(ctx context.Context, ref domain.ProductRef) (bool, error)
}

type CompareManager interface {
	AddToCompare(ctx context.Context, ref domain.ProductRef) error
	RemoveFromCompare(ctx context.Context, ref domain.ProductRef) error
	ClearCompare(ctx context.Context) error
	CompareItems(ctx context.Context) ([]domain.Product, error)
}

type OrdersManager interface {
	Checkout(ctx context.Context, addr domain.ShippingAddress, paymentMethod string) (domain.Order, error)
	Orders(ctx context.Context) ([]domain.Order, error)
	Order(ctx context.Context, id string) (domain.Order, error)
	OrderTracking(ctx context.Context, id string) ([]domain.TrackingEvent, error)
}

type PrefsManager interface {
	Theme(ctx context.Context) (domain.Theme, error)
	SetTheme(ctx context.Context, t domain.Theme) error
	Session(ctx context.Context) (domain.Session, error)
	SaveSession(ctx context.Context, s domain.Session) error
	ClearSession(ctx context.Context) error
}
