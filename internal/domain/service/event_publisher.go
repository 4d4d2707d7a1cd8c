// Package service defines domain service contracts implemented by the infrastructure layer.
package service

import (
	"context"
)

// Order event types published to the message queue.
const (
	EventTypeOrderCreated = "order_created"
	EventTypeOrderUpdated = "order_updated"
)

// OrderEvent represents an order lifecycle event for downstream consumers
// (restaurant dashboards, notification fan-out, analytics).
type OrderEvent struct {
	RequestID    string `json:"request_id,omitempty"` // For distributed tracing
	EventType    string `json:"event_type"`
	OrderID      string `json:"order_id"`
	UserID       string `json:"user_id"`
	RestaurantID string `json:"restaurant_id"`
	Total        int64  `json:"total"`
	LineCount    int    `json:"line_count"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishOrderEvent publishes an order lifecycle event for async processing
	PublishOrderEvent(ctx context.Context, event *OrderEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
