// Package events carries the outbound notification ports: order events
// published to a message broker and cart changes broadcast cross-process.
package events

import (
	"context"
	"time"
)

// Routing keys for published events.
const (
	OrderCreatedKey = "order.created"
)

// OrderCreatedEvent is emitted after a checkout persists a new order.
type OrderCreatedEvent struct {
	OrderID     string    `json:"orderId"`
	TotalAmount float64   `json:"totalAmount"`
	ItemCount   int       `json:"itemCount"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Publisher publishes domain events to interested external consumers.
// Publishing is best-effort; callers log failures and move on.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload interface{}) error
	Close() error
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, interface{}) error { return nil }
func (NopPublisher) Close() error                                       { return nil }
