package service

import (
	"context"
	"fmt"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.WishlistManager = (*WishlistService)(nil)

type WishlistService struct {
	store    port.KVStore
	products port.ProductProvider
}

func NewWishlistService(
	store port.KVStore, products port.ProductProvider,
) WishlistService {
	return WishlistService{store, products}
}

// ToggleWishlist adds the product when absent and removes it when
// present, reporting whether it was added.
func (s WishlistService) ToggleWishlist(
	ctx context.Context, ref domain.ProductRef,
) (bool, error) {
	const op = "WishlistService.ToggleWishlist"

	items, err := loadState[[]domain.Product](ctx, s.store, wishlistKey, op)
	if err != nil {
		return false, err
	}

	for i, item := range items {
		if item.Ref == ref {
			items = append(items[:i], items[i+1:]...)
			return false, saveState(ctx, s.store, wishlistKey, items, op)
		}
	}

	p, ok := s.products.Product(ctx, ref)
	if !ok {
		return false, fmt.Errorf("%s: %w", op, port.ErrNotFound)
	}

	items = append(items, p)
	return true, saveState(ctx, s.store, wishlistKey, items, op)
}

func (s WishlistService) RemoveFromWishlist(
	ctx context.Context, ref domain.ProductRef,
) error {
	const op = "WishlistService.RemoveFromWishlist"

	items, err := loadState[[]domain.Product](ctx, s.store, wishlistKey, op)
	if err != nil {
		return err
	}

	kept := items[:0]
	for _, item := range items {
		if item.Ref != ref {
			kept = append(kept, item)
		}
	}
	if len(kept) == len(items) {
		return fmt.Errorf("%s: %w", op, port.ErrNotFound)
	}

	return saveState(ctx, s.store, wishlistKey, kept, op)
}

func (s WishlistService) ClearWishlist(ctx context.Context) error {
	const op = "WishlistService.ClearWishlist"

	if err := s.store.Delete(ctx, wishlistKey); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s WishlistService) WishlistItems(
	ctx context.Context,
) ([]domain.Product, error) {
	const op = "WishlistService.WishlistItems"
	return loadState[[]domain.Product](ctx, s.store, wishlistKey, op)
}

func (s WishlistService) InWishlist(
	ctx context.Context, ref domain.ProductRef,
) (bool, error) {
	const op = "WishlistService.InWishlist"

	items, err := loadState[[]domain.Product](ctx, s.store, wishlistKey, op)
	if err != nil {
		return false, err
	}

	for _, item := range items {
		if item.Ref == ref {
			return true, nil
		}
	}
	return false, nil
}
