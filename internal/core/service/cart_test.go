package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/internal/core/service"
)

func testProducts() (phone, laptop domain.Product) {
	phone = domain.Product{
		Ref:                storeRef(1),
		Title:              "Aurora X5 Smartphone",
		Price:              24999,
		DiscountPercentage: 12,
		Stock:              25,
	}
	laptop = domain.Product{
		Ref:   storeRef(2),
		Title: "Nimbus Pro 14 Laptop",
		Price: 74999,
		Stock: 10,
	}
	return phone, laptop
}

func TestCartAdd(t *testing.T) {
	phone, laptop := testProducts()

	t.Run("NewLineSnapshotsProduct", func(t *testing.T) {
		events := &eventsRecorder{}
		svc := service.NewCartService(
			newMemKV(), newStubProvider(phone, laptop), events,
		)

		line, err := svc.AddToCart(t.Context(), phone.Ref, 2)
		require.NoError(t, err)
		assert.Equal(t, phone, line.Product)
		assert.Equal(t, 2, line.Quantity)

		added := events.byType(domain.EventCartItemAdded)
		require.Len(t, added, 1)
		assert.Equal(t, 2, added[0].Quantity)
	})

	t.Run("RepeatAddMergesQuantity", func(t *testing.T) {
		svc := service.NewCartService(
			newMemKV(), newStubProvider(phone), &eventsRecorder{},
		)

		_, err := svc.AddToCart(t.Context(), phone.Ref, 1)
		require.NoError(t, err)
		line, err := svc.AddToCart(t.Context(), phone.Ref, 3)
		require.NoError(t, err)

		assert.Equal(t, 4, line.Quantity)

		items, err := svc.CartItems(t.Context())
		require.NoError(t, err)
		require.Len(t, items, 1)
	})

	t.Run("NonPositiveQuantityRejected", func(t *testing.T) {
		svc := service.NewCartService(
			newMemKV(), newStubProvider(phone), &eventsRecorder{},
		)

		_, err := svc.AddToCart(t.Context(), phone.Ref, 0)
		assert.ErrorIs(t, err, service.ErrInvalidQuantity)
	})

	t.Run("UnknownProductRejected", func(t *testing.T) {
		svc := service.NewCartService(
			newMemKV(), newStubProvider(), &eventsRecorder{},
		)

		_, err := svc.AddToCart(t.Context(), storeRef(99), 1)
		assert.ErrorIs(t, err, port.ErrNotFound)
	})
}

func TestCartUpdateQuantity(t *testing.T) {
	phone, _ := testProducts()

	t.Run("SetsAbsoluteQuantity", func(t *testing.T) {
		svc := service.NewCartService(
			newMemKV(), newStubProvider(phone), &eventsRecorder{},
		)

		_, err := svc.AddToCart(t.Context(), phone.Ref, 5)
		require.NoError(t, err)
		require.NoError(t, svc.UpdateCartQuantity(t.Context(), phone.Ref, 2))

		items, err := svc.CartItems(t.Context())
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, 2, items[0].Quantity)
	})

	t.Run("ZeroQuantityRemovesLine", func(t *testing.T) {
		svc := service.NewCartService(
			newMemKV(), newStubProvider(phone), &eventsRecorder{},
		)

		_, err := svc.AddToCart(t.Context(), phone.Ref, 5)
		require.NoError(t, err)
		require.NoError(t, svc.UpdateCartQuantity(t.Context(), phone.Ref, 0))

		items, err := svc.CartItems(t.Context())
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("AbsentLineNotFound", func(t *testing.T) {
		svc := service.NewCartService(
			newMemKV(), newStubProvider(phone), &eventsRecorder{},
		)

		err := svc.UpdateCartQuantity(t.Context(), phone.Ref, 2)
		assert.ErrorIs(t, err, port.ErrNotFound)
	})
}

func TestCartRemoveAndClear(t *testing.T) {
	phone, laptop := testProducts()

	t.Run("RemoveKeepsOtherLines", func(t *testing.T) {
		svc := service.NewCartService(
			newMemKV(), newStubProvider(phone, laptop), &eventsRecorder{},
		)

		_, err := svc.AddToCart(t.Context(), phone.Ref, 1)
		require.NoError(t, err)
		_, err = svc.AddToCart(t.Context(), laptop.Ref, 1)
		require.NoError(t, err)

		require.NoError(t, svc.RemoveFromCart(t.Context(), phone.Ref))

		items, err := svc.CartItems(t.Context())
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, laptop.Ref, items[0].Product.Ref)
	})

	t.Run("RemoveAbsentNotFound", func(t *testing.T) {
		svc := service.NewCartService(
			newMemKV(), newStubProvider(phone), &eventsRecorder{},
		)

		err := svc.RemoveFromCart(t.Context(), phone.Ref)
		assert.ErrorIs(t, err, port.ErrNotFound)
	})

	t.Run("ClearEmptiesCart", func(t *testing.T) {
		svc := service.NewCartService(
			newMemKV(), newStubProvider(phone), &eventsRecorder{},
		)

		_, err := svc.AddToCart(t.Context(), phone.Ref, 1)
		require.NoError(t, err)
		require.NoError(t, svc.ClearCart(t.Context()))

		items, err := svc.CartItems(t.Context())
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("ClearEmptyCartSucceeds", func(t *testing.T) {
		svc := service.NewCartService(
			newMemKV(), newStubProvider(), &eventsRecorder{},
		)
		assert.NoError(t, svc.ClearCart(t.Context()))
	})
}

func TestCartTotals(t *testing.T) {
	phone, laptop := testProducts()

	svc := service.NewCartService(
		newMemKV(), newStubProvider(phone, laptop), &eventsRecorder{},
	)

	_, err := svc.AddToCart(t.Context(), phone.Ref, 2)
	require.NoError(t, err)
	_, err = svc.AddToCart(t.Context(), laptop.Ref, 1)
	require.NoError(t, err)

	totals, err := svc.CartTotals(t.Context())
	require.NoError(t, err)

	assert.Equal(t, 3, totals.Count)
	assert.Equal(t, 2*24999+74999, totals.Subtotal)
	// phone discounted: 24999 at 12% off = 21999
	assert.Equal(t, 2*21999+74999, totals.Total)
	assert.Equal(t, totals.Subtotal-totals.Total, totals.Discount)
}
