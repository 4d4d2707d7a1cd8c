package usecase

import (
	"context"

	"bites/internal/domain/entity"

	"github.com/google/uuid"
)

// CheckoutInput carries the user's checkout selections.
type CheckoutInput struct {
	AddressID     uuid.UUID            `json:"address_id" validate:"required"`
	PaymentMethod entity.PaymentMethod `json:"payment_method" validate:"required"`
	DiscountCode  string               `json:"discount_code,omitempty"`
	Note          string               `json:"note,omitempty"`
}

// OrderEditLine is one line of a locally edited order. LineID is set for lines
// retained from the original order and nil for lines added during the edit.
type OrderEditLine struct {
	LineID    *uuid.UUID `json:"line_id,omitempty"`
	ProductID uuid.UUID  `json:"product_id" validate:"required"`
	Quantity  int        `json:"quantity" validate:"required"`
	Note      string     `json:"note,omitempty"`
}

// OrderEditInput is the locally edited state of an order, submitted as a whole.
type OrderEditInput struct {
	Lines         []*OrderEditLine     `json:"lines" validate:"required"`
	AddressID     uuid.UUID            `json:"address_id" validate:"required"`
	PaymentMethod entity.PaymentMethod `json:"payment_method" validate:"required"`
	DiscountCode  string               `json:"discount_code,omitempty"`
}

// OrderReplacePayload is the full-replace payload produced by reconciling an
// order edit. It is submitted in one terminal call; editing performs no
// incremental per-line backend writes.
type OrderReplacePayload struct {
	OrderID       uuid.UUID            `json:"order_id"`
	Lines         []*OrderEditLine     `json:"lines"`
	AddressID     uuid.UUID            `json:"address_id"`
	PaymentMethod entity.PaymentMethod `json:"payment_method"`
	DiscountCode  string               `json:"discount_code,omitempty"`
}

// OrderUsecase covers checkout and the edit flow of already-placed orders.
type OrderUsecase interface {
	// Checkout converts the user's active cart into an order: the active line
	// set must be non-empty, the selected address must belong to the user and
	// lie within the restaurant's delivery range. Cart lines are deactivated in
	// the same transaction that creates the order.
	Checkout(ctx context.Context, userID uuid.UUID, input *CheckoutInput) (*entity.Order, error)

	// GetOrder returns one of the user's orders with its lines.
	GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*entity.Order, error)

	// ListOrders returns all of the user's orders, newest first.
	ListOrders(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error)

	// ReconcileOrderEdit validates a locally edited line set against the
	// original order and produces the full-replace payload. It performs no I/O:
	// all failures are detected before any backend call is issued.
	ReconcileOrderEdit(original *entity.Order, input *OrderEditInput) (*OrderReplacePayload, error)

	// SubmitOrderEdit reconciles and atomically applies an order edit. Only
	// orders still in processing status may be edited.
	SubmitOrderEdit(ctx context.Context, userID, orderID uuid.UUID, input *OrderEditInput) (*entity.Order, error)
}
