package repository

import (
	"context"

	"bites/internal/domain/entity"
	"bites/internal/errors"

	"github.com/google/uuid"
)

// ErrOrderNotFound is returned when an order is not found.
var ErrOrderNotFound = errors.New("order not found")

// OrderRepository defines the interface for order-related database operations.
type OrderRepository interface {
	// CreateOrder persists a new order together with its lines.
	CreateOrder(ctx context.Context, order *entity.Order) error

	// FindOrderByID retrieves an order with its lines by its unique ID.
	FindOrderByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	// FindOrdersByUser retrieves all orders of a user, newest first.
	FindOrdersByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error)

	// ReplaceOrder atomically replaces an order's line set, address, payment
	// method and discount in a single update. Lines absent from the given order
	// are removed; this is the terminal submit of an order edit, not an
	// incremental per-line mutation.
	ReplaceOrder(ctx context.Context, order *entity.Order) error
}
