package kafka

import "time"

// EventType определяет тип события
type EventType string

const (
	// Order события
	EventTypeOrderPlaced EventType = "order.placed"

	// Cart события
	EventTypeCartCleared EventType = "cart.cleared"
)

// Topics для Kafka
const (
	TopicOrderEvents     = "shoppingcart.order.events"
	TopicDeadLetterQueue = "shoppingcart.dlq" // Dead Letter Queue для failed messages
)

// Kafka headers для retry логики
const (
	HeaderRetryCount    = "x-retry-count"
	HeaderOriginalTopic = "x-original-topic"
	HeaderErrorMessage  = "x-error-message"
	HeaderFailedAt      = "x-failed-at"
)

// OrderPlacedLine описывает строку заказа в событии.
type OrderPlacedLine struct {
	ProductID  int64  `json:"product_id"`
	Name       string `json:"name"`
	PriceMinor int64  `json:"price_minor"`
	Quantity   int32  `json:"quantity"`
}

// OrderPlacedEvent представляет событие размещённого заказа.
type OrderPlacedEvent struct {
	EventType  EventType         `json:"event_type"`
	OrderID    string            `json:"order_id"`
	CustomerID int64             `json:"customer_id"`
	TotalMinor int64             `json:"total_minor"`
	Lines      []OrderPlacedLine `json:"lines"`
	OrderedAt  time.Time         `json:"ordered_at"`
}

// NewOrderPlacedEvent создает новое событие размещения заказа
func NewOrderPlacedEvent(orderID string, customerID int64, totalMinor int64, lines []OrderPlacedLine, orderedAt time.Time) *OrderPlacedEvent {
	return &OrderPlacedEvent{
		EventType:  EventTypeOrderPlaced,
		OrderID:    orderID,
		CustomerID: customerID,
		TotalMinor: totalMinor,
		Lines:      lines,
		OrderedAt:  orderedAt,
	}
}
