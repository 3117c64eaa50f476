package domain

import "time"

type ClientEventType string

const (
	EventProductViewed   ClientEventType = "product_viewed"
	EventProductSearched ClientEventType = "product_searched"
	EventCartItemAdded   ClientEventType = "cart_item_added"
	EventOrderPlaced     ClientEventType = "order_placed"
)

// ClientEvent is a best-effort telemetry record, unused fields stay zero.
type ClientEvent struct {
	Type       ClientEventType
	Source     Source
	ProductID  int
	Query      string
	Quantity   int
	OrderID    string
	OccurredAt time.Time
}
