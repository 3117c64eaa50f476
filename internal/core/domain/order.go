package domain

import "time"

type OrderStatus string

const (
	OrderPlaced     OrderStatus = "placed"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
)

type (
	ShippingAddress struct {
		Name       string
		Line1      string
		Line2      string
		City       string
		State      string
		PostalCode string
		Phone      string
	}

	TrackingEvent struct {
		Status      OrderStatus
		Description string
		At          time.Time
	}

	// Order freezes the cart snapshot at checkout time, its items are
	// not kept consistent with the live catalog.
	Order struct {
		ID            string
		Items         []CartItem
		Totals        CartTotals
		Address       ShippingAddress
		PaymentMethod string
		Status        OrderStatus
		CreatedAt     time.Time
		Tracking      []TrackingEvent
	}
)
