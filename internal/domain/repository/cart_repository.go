// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"bites/internal/domain/entity"
	"bites/internal/errors"

	"github.com/google/uuid"
)

// Domain-specific errors for cart persistence.
var (
	// ErrCartNotFound is returned when a cart is not found.
	ErrCartNotFound = errors.New("cart not found")
	// ErrCartLineNotFound is returned when no line exists for a (cart, product)
	// pair. This is an expected outcome of the existence lookup, not a fault:
	// the caller reacts by creating the first line for that pair.
	ErrCartLineNotFound = errors.New("cart line not found")
	// ErrDuplicateCartLine is returned when an insert would create a second line
	// for the same (cart, product) pair.
	ErrDuplicateCartLine = errors.New("cart line already exists for this product")
)

// CartRepository defines the interface for cart-related database operations.
// Lines are soft-deactivated, never hard-deleted; every method that returns
// lines returns both active and inactive rows unless stated otherwise.
type CartRepository interface {
	// GetOrCreateCart returns the user's single open cart, creating one if absent.
	// The operation is idempotent: two sequential calls return the same cart.
	GetOrCreateCart(ctx context.Context, userID uuid.UUID) (*entity.Cart, error)

	// FindCartByUser retrieves the user's open cart without creating one.
	// Returns ErrCartNotFound if the user has no open cart.
	FindCartByUser(ctx context.Context, userID uuid.UUID) (*entity.Cart, error)

	// FindLinesByCart retrieves all lines (active and inactive) for a cart.
	FindLinesByCart(ctx context.Context, cartID uuid.UUID) ([]*entity.CartLine, error)

	// FindLineByCartAndProduct performs the existence lookup for a (cart, product)
	// pair regardless of the line's active flag.
	// Returns ErrCartLineNotFound when no line has ever been created for the pair.
	FindLineByCartAndProduct(ctx context.Context, cartID, productID uuid.UUID) (*entity.CartLine, error)

	// CreateLine persists the first line for a (cart, product) pair.
	// Returns ErrDuplicateCartLine if a line for the pair already exists.
	CreateLine(ctx context.Context, line *entity.CartLine) error

	// UpdateLine persists quantity, subtotal and status changes of an existing line.
	UpdateLine(ctx context.Context, line *entity.CartLine) error

	// CountActiveLines returns the number of active lines in a cart. This feeds
	// the badge count shown by clients and is read-through, best-effort data.
	CountActiveLines(ctx context.Context, cartID uuid.UUID) (int64, error)

	// DeactivateLines soft-deactivates every active line of a cart, releasing
	// the cart's restaurant scope.
	DeactivateLines(ctx context.Context, cartID uuid.UUID) error
}
