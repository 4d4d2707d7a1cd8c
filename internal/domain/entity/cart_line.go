package entity

import (
	"time"

	"github.com/google/uuid"
)

// LineStatus is the lifecycle state of a cart line.
type LineStatus string

const (
	// LineStatusActive indicates the line counts toward the cart's contents.
	LineStatusActive LineStatus = "active"
	// LineStatusInactive indicates the line was removed but is retained as
	// history. There is no transition back to non-existence: a removed line
	// is reactivated on re-add, never recreated.
	LineStatusInactive LineStatus = "inactive"
)

// IsActive reports whether the line counts toward the cart's contents.
func (s LineStatus) IsActive() bool {
	return s == LineStatusActive
}

// CartLine is a single product entry in a cart. For a given (cart, product)
// pair at most one line ever exists; repeated adds mutate that line.
//
// LineSubtotal is stored in the backend's legacy unit_price field, which holds
// price x quantity rather than a true per-unit price. The wire name is kept for
// compatibility; the internal name says what the value actually is.
type CartLine struct {
	ID           uuid.UUID  `json:"id"`            // The Global Unique Identifier (GUID) for the line.
	CartID       uuid.UUID  `json:"cart_id"`       // The ID of the owning cart.
	ProductID    uuid.UUID  `json:"product_id"`    // The ID of the product.
	RestaurantID uuid.UUID  `json:"restaurant_id"` // Denormalized owning-restaurant reference of the product.
	Quantity     int        `json:"quantity"`      // Positive count of the product.
	LineSubtotal int64      `json:"unit_price"`    // price x quantity, kept under the legacy wire name.
	Status       LineStatus `json:"status"`        // Active or inactive (soft-deleted).
	CreatedAt    time.Time  `json:"created_at"`    // Timestamp of when the line was first created.
	UpdatedAt    time.Time  `json:"updated_at"`    // Timestamp of the last modification.
}

// NewCartLine creates the first (and only) line for a (cart, product) pair.
func NewCartLine(cartID uuid.UUID, product *Product, quantity int) *CartLine {
	return &CartLine{
		ID:           uuid.New(),
		CartID:       cartID,
		ProductID:    product.ID,
		RestaurantID: product.RestaurantID,
		Quantity:     quantity,
		LineSubtotal: product.Price * int64(quantity),
		Status:       LineStatusActive,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
}

// ApplyAdd mutates the line for a repeated add of its product, following the
// line state table:
//
//	Active   -> Active: quantity accumulates (q + delta)
//	Inactive -> Active: reactivation starts a fresh count (exactly delta)
//
// The subtotal is recomputed from the current product price in both cases.
func (l *CartLine) ApplyAdd(unitPrice int64, delta int) {
	switch l.Status {
	case LineStatusActive:
		l.Quantity += delta
	case LineStatusInactive:
		l.Status = LineStatusActive
		l.Quantity = delta
	}
	l.LineSubtotal = unitPrice * int64(l.Quantity)
	l.UpdatedAt = time.Now()
}

// Deactivate soft-deletes the line. The quantity is kept as history; a later
// re-add resets it via ApplyAdd.
func (l *CartLine) Deactivate() {
	l.Status = LineStatusInactive
	l.UpdatedAt = time.Now()
}
