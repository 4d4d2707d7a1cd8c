// Package usecase defines the application-facing contracts of the service layer.
package usecase

import (
	"context"

	"bites/internal/domain/entity"

	"github.com/google/uuid"
)

// CartMutation is the result of a successful cart write: the created or mutated
// line plus the refreshed count of active lines for badge display.
type CartMutation struct {
	Line            *entity.CartLine `json:"line"`
	ActiveLineCount int64            `json:"active_line_count"`
}

// CartUsecase owns the single-restaurant consistency rule of the shopping cart
// and the add/update/reactivate reconciliation of its lines.
type CartUsecase interface {
	// AddOrIncrementLine adds quantityDelta of a product to the user's cart.
	// A cart holds items from at most one restaurant: adding a product from a
	// different restaurant is rejected and the caller must clear or complete
	// the cart first. For a product already in the cart the existing line is
	// updated: quantities accumulate on an active line and reset on
	// reactivation of a removed one. Validation happens before any write;
	// on failure the cart is left untouched.
	AddOrIncrementLine(ctx context.Context, userID, productID uuid.UUID, quantityDelta int) (*CartMutation, error)

	// DeactivateLine removes a product from the cart by soft-deactivating its
	// line. The line is retained and will be reactivated on a later re-add.
	DeactivateLine(ctx context.Context, userID, productID uuid.UUID) (*CartMutation, error)

	// ClearCart deactivates every active line, releasing the cart's restaurant scope.
	ClearCart(ctx context.Context, userID uuid.UUID) error

	// GetCart returns the user's cart with all its lines, creating the cart if absent.
	GetCart(ctx context.Context, userID uuid.UUID) (*entity.Cart, error)

	// RefreshActiveLineCount re-reads the number of active lines in the user's cart.
	RefreshActiveLineCount(ctx context.Context, userID uuid.UUID) (int64, error)
}
