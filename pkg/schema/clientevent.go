package schema

const ClientEventSchemaTextV1 = `{
	"type": "record",
	"namespace": "storefront",
	"name": "client_event",
	"fields": [
		{"name": "event_type", "type": "string"},
		{"name": "source", "type": "string"},
		{"name": "product_id", "type": "long"},
		{"name": "query", "type": "string"},
		{"name": "quantity", "type": "long"},
		{"name": "order_id", "type": "string"},
		{"name": "occurred_at", "type": "long"}
	]
}`

// ClientEventV1 is the wire shape of one storefront telemetry event.
// OccurredAt is unix milliseconds.
type ClientEventV1 struct {
	EventType  string `avro:"event_type"`
	Source     string `avro:"source"`
	ProductID  int64  `avro:"product_id"`
	Query      string `avro:"query"`
	Quantity   int64  `avro:"quantity"`
	OrderID    string `avro:"order_id"`
	OccurredAt int64  `avro:"occurred_at"`
}
