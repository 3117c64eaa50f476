package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.OrdersManager = (*OrdersService)(nil)

const defaultPaymentDelay = 1500 * time.Millisecond

// Mocked fulfilment: a status is reached once the given time has
// passed since checkout.
var trackingStages = []struct {
	status      domain.OrderStatus
	after       time.Duration
	description string
}{
	{domain.OrderProcessing, time.Minute, "Order is being processed"},
	{domain.OrderShipped, time.Hour, "Package handed over to the courier"},
	{domain.OrderDelivered, 24 * time.Hour, "Package delivered"},
}

// OrdersService runs the checkout flow and keeps the order history.
// Payment is simulated with a fixed delay, orders freeze the cart
// snapshot at checkout time.
type OrdersService struct {
	store        port.KVStore
	cart         port.CartManager
	events       port.ClientEventProducer
	paymentDelay time.Duration
}

func NewOrdersService(
	store port.KVStore,
	cart port.CartManager,
	events port.ClientEventProducer,
	paymentDelay time.Duration,
) OrdersService {
	if paymentDelay <= 0 {
		paymentDelay = defaultPaymentDelay
	}
	return OrdersService{store, cart, events, paymentDelay}
}

func (s OrdersService) Checkout(
	ctx context.Context, addr domain.ShippingAddress, paymentMethod string,
) (domain.Order, error) {
	const op = "OrdersService.Checkout"

	items, err := s.cart.CartItems(ctx)
	if err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}
	if len(items) == 0 {
		return domain.Order{}, fmt.Errorf("%s: %w", op, ErrEmptyCart)
	}

	if err := s.processPayment(ctx); err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	now := time.Now()
	order := domain.Order{
		ID:            uuid.NewString(),
		Items:         items,
		Totals:        domain.ComputeCartTotals(items),
		Address:       addr,
		PaymentMethod: paymentMethod,
		Status:        domain.OrderPlaced,
		CreatedAt:     now,
		Tracking: []domain.TrackingEvent{{
			Status:      domain.OrderPlaced,
			Description: "Order placed, payment confirmed",
			At:          now,
		}},
	}

	orders, err := loadState[[]domain.Order](ctx, s.store, ordersKey, op)
	if err != nil {
		return domain.Order{}, err
	}

	// newest first
	orders = append([]domain.Order{order}, orders...)
	if err := saveState(ctx, s.store, ordersKey, orders, op); err != nil {
		return domain.Order{}, err
	}

	if err := s.cart.ClearCart(ctx); err != nil {
		slogWarn(op, "failed to clear cart after checkout", err)
	}

	s.emit(ctx, domain.ClientEvent{
		Type:       domain.EventOrderPlaced,
		OrderID:    order.ID,
		Quantity:   order.Totals.Count,
		OccurredAt: now,
	})

	return order, nil
}

// processPayment simulates the payment gateway with a fixed delay.
func (s OrdersService) processPayment(ctx context.Context) error {
	timer := time.NewTimer(s.paymentDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (s OrdersService) Orders(ctx context.Context) ([]domain.Order, error) {
	const op = "OrdersService.Orders"
	return loadState[[]domain.Order](ctx, s.store, ordersKey, op)
}

func (s OrdersService) Order(
	ctx context.Context, id string,
) (domain.Order, error) {
	const op = "OrdersService.Order"

	orders, err := loadState[[]domain.Order](ctx, s.store, ordersKey, op)
	if err != nil {
		return domain.Order{}, err
	}

	for _, o := range orders {
		if o.ID == id {
			return o, nil
		}
	}
	return domain.Order{}, fmt.Errorf("%s: %w", op, port.ErrNotFound)
}

// OrderTracking derives the mocked fulfilment progress from the time
// elapsed since checkout, appends newly reached stages to the history
// and persists them.
func (s OrdersService) OrderTracking(
	ctx context.Context, id string,
) ([]domain.TrackingEvent, error) {
	const op = "OrdersService.OrderTracking"

	orders, err := loadState[[]domain.Order](ctx, s.store, ordersKey, op)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range orders {
		if orders[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, fmt.Errorf("%s: %w", op, port.ErrNotFound)
	}

	order := &orders[idx]
	changed := false
	for _, stage := range trackingStages {
		if time.Since(order.CreatedAt) < stage.after {
			break
		}
		if hasTrackingStatus(order.Tracking, stage.status) {
			continue
		}
		order.Tracking = append(order.Tracking, domain.TrackingEvent{
			Status:      stage.status,
			Description: stage.description,
			At:          order.CreatedAt.Add(stage.after),
		})
		order.Status = stage.status
		changed = true
	}

	if changed {
		if err := saveState(ctx, s.store, ordersKey, orders, op); err != nil {
			return nil, err
		}
	}

	return order.Tracking, nil
}

func hasTrackingStatus(
	events []domain.TrackingEvent, status domain.OrderStatus,
) bool {
	for _, e := range events {
		if e.Status == status {
			return true
		}
	}
	return false
}

func (s OrdersService) emit(ctx context.Context, e domain.ClientEvent) {
	const op = "OrdersService.emit"

	if err := s.events.ProduceEvent(ctx, e); err != nil {
		slogWarn(op, "failed to produce client event", err)
	}
}
