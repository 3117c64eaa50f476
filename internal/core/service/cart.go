package service

import (
	"context"
	"fmt"
	"time"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.CartManager = (*CartService)(nil)

// CartService keeps the cart lines under a single storage key, each
// line snapshots the product at the time it was added.
type CartService struct {
	store    port.KVStore
	products port.ProductProvider
	events   port.ClientEventProducer
}

func NewCartService(
	store port.KVStore,
	products port.ProductProvider,
	events port.ClientEventProducer,
) CartService {
	return CartService{store, products, events}
}

func (s CartService) AddToCart(
	ctx context.Context, ref domain.ProductRef, quantity int,
) (domain.CartItem, error) {
	const op = "CartService.AddToCart"

	if quantity <= 0 {
		return domain.CartItem{}, fmt.Errorf("%s: %w", op, ErrInvalidQuantity)
	}

	p, ok := s.products.Product(ctx, ref)
	if !ok {
		return domain.CartItem{}, fmt.Errorf("%s: %w", op, port.ErrNotFound)
	}

	items, err := loadState[[]domain.CartItem](ctx, s.store, cartKey, op)
	if err != nil {
		return domain.CartItem{}, err
	}

	var line domain.CartItem
	found := false
	for i := range items {
		if items[i].Product.Ref == ref {
			items[i].Quantity += quantity
			line = items[i]
			found = true
			break
		}
	}
	if !found {
		line = domain.CartItem{Product: p, Quantity: quantity}
		items = append(items, line)
	}

	if err := saveState(ctx, s.store, cartKey, items, op); err != nil {
		return domain.CartItem{}, err
	}

	s.emit(ctx, domain.ClientEvent{
		Type:       domain.EventCartItemAdded,
		Source:     ref.Source,
		ProductID:  ref.ID,
		Quantity:   quantity,
		OccurredAt: time.Now(),
	})

	return line, nil
}

func (s CartService) UpdateCartQuantity(
	ctx context.Context, ref domain.ProductRef, quantity int,
) error {
	const op = "CartService.UpdateCartQuantity"

	if quantity <= 0 {
		return s.RemoveFromCart(ctx, ref)
	}

	items, err := loadState[[]domain.CartItem](ctx, s.store, cartKey, op)
	if err != nil {
		return err
	}

	for i := range items {
		if items[i].Product.Ref == ref {
			items[i].Quantity = quantity
			return saveState(ctx, s.store, cartKey, items, op)
		}
	}
	return fmt.Errorf("%s: %w", op, port.ErrNotFound)
}

func (s CartService) RemoveFromCart(
	ctx context.Context, ref domain.ProductRef,
) error {
	const op = "CartService.RemoveFromCart"

	items, err := loadState[[]domain.CartItem](ctx, s.store, cartKey, op)
	if err != nil {
		return err
	}

	kept := items[:0]
	for _, item := range items {
		if item.Product.Ref != ref {
			kept = append(kept, item)
		}
	}
	if len(kept) == len(items) {
		return fmt.Errorf("%s: %w", op, port.ErrNotFound)
	}

	return saveState(ctx, s.store, cartKey, kept, op)
}

func (s CartService) ClearCart(ctx context.Context) error {
	const op = "CartService.ClearCart"

	if err := s.store.Delete(ctx, cartKey); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s CartService) CartItems(ctx context.Context) ([]domain.CartItem, error) {
	const op = "CartService.CartItems"
	return loadState[[]domain.CartItem](ctx, s.store, cartKey, op)
}

func (s CartService) CartTotals(ctx context.Context) (domain.CartTotals, error) {
	const op = "CartService.CartTotals"

	items, err := loadState[[]domain.CartItem](ctx, s.store, cartKey, op)
	if err != nil {
		return domain.CartTotals{}, err
	}
	return domain.ComputeCartTotals(items), nil
}

func (s CartService) emit(ctx context.Context, e domain.ClientEvent) {
	const op = "CartService.emit"

	if err := s.events.ProduceEvent(ctx, e); err != nil {
		slogWarn(op, "failed to produce client event", err)
	}
}
