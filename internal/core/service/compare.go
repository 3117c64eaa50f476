package service

import (
	"context"
	"fmt"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.CompareManager = (*CompareService)(nil)

const defaultCompareLimit = 4

// CompareService keeps the product comparison set, capped at a fixed
// capacity.
type CompareService struct {
	store    port.KVStore
	products port.ProductProvider
	limit    int
}

func NewCompareService(
	store port.KVStore, products port.ProductProvider, limit int,
) CompareService {
	if limit <= 0 {
		limit = defaultCompareLimit
	}
	return CompareService{store, products, limit}
}

func (s CompareService) AddToCompare(
	ctx context.Context, ref domain.ProductRef,
) error {
	const op = "CompareService.AddToCompare"

	items, err := loadState[[]domain.Product](ctx, s.store, compareKey, op)
	if err != nil {
		return err
	}

	for _, item := range items {
		if item.Ref == ref {
			return fmt.Errorf("%s: %w", op, ErrAlreadyInCompare)
		}
	}
	if len(items) >= s.limit {
		return fmt.Errorf("%s: %w", op, ErrCompareFull)
	}

	p, ok := s.products.Product(ctx, ref)
	if !ok {
		return fmt.Errorf("%s: %w", op, port.ErrNotFound)
	}

	items = append(items, p)
	return saveState(ctx, s.store, compareKey, items, op)
}

func (s CompareService) RemoveFromCompare(
	ctx context.Context, ref domain.ProductRef,
) error {
	const op = "CompareService.RemoveFromCompare"

	items, err := loadState[[]domain.Product](ctx, s.store, compareKey, op)
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

	return saveState(ctx, s.store, compareKey, kept, op)
}

func (s CompareService) ClearCompare(ctx context.Context) error {
	const op = "CompareService.ClearCompare"

	if err := s.store.Delete(ctx, compareKey); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s CompareService) CompareItems(
	ctx context.Context,
) ([]domain.Product, error) {
	const op = "CompareService.CompareItems"
	return loadState[[]domain.Product](ctx, s.store, compareKey, op)
}
