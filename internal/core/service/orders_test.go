package service_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/internal/core/service"
)

const testPaymentDelay = time.Millisecond

func testAddress() domain.ShippingAddress {
	return domain.ShippingAddress{
		Name:       "Jordan Rivers",
		Line1:      "12 Harbor Lane",
		City:       "Mumbai",
		State:      "Maharashtra",
		PostalCode: "400001",
		Phone:      "+91 98200 00000",
	}
}

type ordersFixture struct {
	store  *memKV
	cart   service.CartService
	orders service.OrdersService
	events *eventsRecorder
}

func newOrdersFixture(t *testing.T, products ...domain.Product) ordersFixture {
	t.Helper()

	store := newMemKV()
	events := &eventsRecorder{}
	cart := service.NewCartService(store, newStubProvider(products...), events)
	orders := service.NewOrdersService(store, cart, events, testPaymentDelay)

	return ordersFixture{store, cart, orders, events}
}

func TestCheckout(t *testing.T) {
	phone, laptop := testProducts()

	t.Run("EmptyCartRejected", func(t *testing.T) {
		f := newOrdersFixture(t)

		_, err := f.orders.Checkout(t.Context(), testAddress(), "card")
		assert.ErrorIs(t, err, service.ErrEmptyCart)
	})

	t.Run("FreezesCartSnapshot", func(t *testing.T) {
		f := newOrdersFixture(t, phone, laptop)

		_, err := f.cart.AddToCart(t.Context(), phone.Ref, 2)
		require.NoError(t, err)
		_, err = f.cart.AddToCart(t.Context(), laptop.Ref, 1)
		require.NoError(t, err)

		order, err := f.orders.Checkout(t.Context(), testAddress(), "card")
		require.NoError(t, err)

		assert.NotEmpty(t, order.ID)
		assert.Equal(t, domain.OrderPlaced, order.Status)
		assert.Len(t, order.Items, 2)
		assert.Equal(t, 3, order.Totals.Count)
		assert.Equal(t, "card", order.PaymentMethod)
		require.Len(t, order.Tracking, 1)
		assert.Equal(t, domain.OrderPlaced, order.Tracking[0].Status)
	})

	t.Run("ClearsCart", func(t *testing.T) {
		f := newOrdersFixture(t, phone)

		_, err := f.cart.AddToCart(t.Context(), phone.Ref, 1)
		require.NoError(t, err)

		_, err = f.orders.Checkout(t.Context(), testAddress(), "card")
		require.NoError(t, err)

		items, err := f.cart.CartItems(t.Context())
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("NewestFirstHistory", func(t *testing.T) {
		f := newOrdersFixture(t, phone)

		_, err := f.cart.AddToCart(t.Context(), phone.Ref, 1)
		require.NoError(t, err)
		first, err := f.orders.Checkout(t.Context(), testAddress(), "card")
		require.NoError(t, err)

		_, err = f.cart.AddToCart(t.Context(), phone.Ref, 1)
		require.NoError(t, err)
		second, err := f.orders.Checkout(t.Context(), testAddress(), "cod")
		require.NoError(t, err)

		history, err := f.orders.Orders(t.Context())
		require.NoError(t, err)
		require.Len(t, history, 2)
		assert.Equal(t, second.ID, history[0].ID)
		assert.Equal(t, first.ID, history[1].ID)
	})

	t.Run("EmitsOrderPlacedEvent", func(t *testing.T) {
		f := newOrdersFixture(t, phone)

		_, err := f.cart.AddToCart(t.Context(), phone.Ref, 2)
		require.NoError(t, err)
		order, err := f.orders.Checkout(t.Context(), testAddress(), "card")
		require.NoError(t, err)

		placed := f.events.byType(domain.EventOrderPlaced)
		require.Len(t, placed, 1)
		assert.Equal(t, order.ID, placed[0].OrderID)
		assert.Equal(t, 2, placed[0].Quantity)
	})

	t.Run("CanceledContextAbortsPayment", func(t *testing.T) {
		store := newMemKV()
		events := &eventsRecorder{}
		cart := service.NewCartService(store, newStubProvider(phone), events)
		orders := service.NewOrdersService(store, cart, events, time.Minute)

		_, err := cart.AddToCart(t.Context(), phone.Ref, 1)
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		_, err = orders.Checkout(ctx, testAddress(), "card")
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)

		history, err := orders.Orders(t.Context())
		require.NoError(t, err)
		assert.Empty(t, history)
	})
}

func TestOrderLookup(t *testing.T) {
	phone, _ := testProducts()

	t.Run("ByID", func(t *testing.T) {
		f := newOrdersFixture(t, phone)

		_, err := f.cart.AddToCart(t.Context(), phone.Ref, 1)
		require.NoError(t, err)
		placed, err := f.orders.Checkout(t.Context(), testAddress(), "card")
		require.NoError(t, err)

		got, err := f.orders.Order(t.Context(), placed.ID)
		require.NoError(t, err)
		assert.Equal(t, placed.ID, got.ID)
	})

	t.Run("UnknownIDNotFound", func(t *testing.T) {
		f := newOrdersFixture(t)

		_, err := f.orders.Order(t.Context(), "missing")
		assert.ErrorIs(t, err, port.ErrNotFound)
	})
}

func TestOrderTracking(t *testing.T) {
	phone, _ := testProducts()

	t.Run("FreshOrderOnlyPlaced", func(t *testing.T) {
		f := newOrdersFixture(t, phone)

		_, err := f.cart.AddToCart(t.Context(), phone.Ref, 1)
		require.NoError(t, err)
		placed, err := f.orders.Checkout(t.Context(), testAddress(), "card")
		require.NoError(t, err)

		events, err := f.orders.OrderTracking(t.Context(), placed.ID)
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, domain.OrderPlaced, events[0].Status)
	})

	t.Run("ElapsedTimeAppendsStages", func(t *testing.T) {
		f := newOrdersFixture(t, phone)

		_, err := f.cart.AddToCart(t.Context(), phone.Ref, 1)
		require.NoError(t, err)
		placed, err := f.orders.Checkout(t.Context(), testAddress(), "card")
		require.NoError(t, err)

		backdateOrder(t, f.store, placed.ID, 2*time.Hour)

		events, err := f.orders.OrderTracking(t.Context(), placed.ID)
		require.NoError(t, err)
		require.Len(t, events, 3)
		assert.Equal(t, domain.OrderPlaced, events[0].Status)
		assert.Equal(t, domain.OrderProcessing, events[1].Status)
		assert.Equal(t, domain.OrderShipped, events[2].Status)

		order, err := f.orders.Order(t.Context(), placed.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.OrderShipped, order.Status)
	})

	t.Run("StagesAppendOnlyOnce", func(t *testing.T) {
		f := newOrdersFixture(t, phone)

		_, err := f.cart.AddToCart(t.Context(), phone.Ref, 1)
		require.NoError(t, err)
		placed, err := f.orders.Checkout(t.Context(), testAddress(), "card")
		require.NoError(t, err)

		backdateOrder(t, f.store, placed.ID, 25*time.Hour)

		first, err := f.orders.OrderTracking(t.Context(), placed.ID)
		require.NoError(t, err)
		second, err := f.orders.OrderTracking(t.Context(), placed.ID)
		require.NoError(t, err)

		require.Len(t, first, 4)
		assert.Equal(t, domain.OrderDelivered, first[3].Status)
		assert.Len(t, second, len(first))
	})

	t.Run("UnknownIDNotFound", func(t *testing.T) {
		f := newOrdersFixture(t)

		_, err := f.orders.OrderTracking(t.Context(), "missing")
		assert.ErrorIs(t, err, port.ErrNotFound)
	})
}

// backdateOrder shifts the stored checkout time into the past to let
// mocked fulfilment stages become due.
func backdateOrder(t *testing.T, store *memKV, id string, by time.Duration) {
	t.Helper()

	b, err := store.Get(t.Context(), "orders")
	require.NoError(t, err)

	var orders []domain.Order
	require.NoError(t, json.Unmarshal(b, &orders))

	for i := range orders {
		if orders[i].ID == id {
			orders[i].CreatedAt = orders[i].CreatedAt.Add(-by)
			for j := range orders[i].Tracking {
				orders[i].Tracking[j].At = orders[i].Tracking[j].At.Add(-by)
			}
		}
	}

	b, err = json.Marshal(orders)
	require.NoError(t, err)
	require.NoError(t, store.Set(t.Context(), "orders", b))
}
