// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// CartStatus represents the lifecycle status of a cart.
type CartStatus string

const (
	// CartStatusOpen indicates the cart is the user's current active cart.
	CartStatusOpen CartStatus = "open"
	// CartStatusCheckedOut indicates the cart has been converted into an order.
	CartStatusCheckedOut CartStatus = "checked_out"
)

// Cart is a user's shopping cart. A user has at most one open cart at a time;
// it is created lazily on first need.
type Cart struct {
	ID        uuid.UUID   `json:"id"`         // The Global Unique Identifier (GUID) for the cart.
	UserID    uuid.UUID   `json:"user_id"`    // The ID of the user owning this cart.
	Status    CartStatus  `json:"status"`     // Lifecycle status of the cart.
	Lines     []*CartLine `json:"lines"`      // All lines of the cart, active and inactive.
	CreatedAt time.Time   `json:"created_at"` // Timestamp of when the cart was created.
	UpdatedAt time.Time   `json:"updated_at"` // Timestamp of the last modification.
}

// ActiveLines returns the lines currently in the cart (soft-deactivated lines excluded).
func (c *Cart) ActiveLines() []*CartLine {
	active := make([]*CartLine, 0, len(c.Lines))
	for _, line := range c.Lines {
		if line.Status.IsActive() {
			active = append(active, line)
		}
	}

	return active
}

// RestaurantScope returns the restaurant implied by the active line set.
// The boolean is false when the cart has no active lines and therefore no scope.
func (c *Cart) RestaurantScope() (uuid.UUID, bool) {
	return RestaurantScope(c.ActiveLines())
}

// RestaurantScope derives the restaurant implied by a set of active lines.
// Any line would do since the active set is homogeneous by invariant; the first
// one is used. HomogeneousScope verifies the invariant actually holds.
func RestaurantScope(active []*CartLine) (uuid.UUID, bool) {
	if len(active) == 0 {
		return uuid.Nil, false
	}

	return active[0].RestaurantID, true
}

// HomogeneousScope reports whether every line in the active set references the
// same restaurant. A false result means the single-restaurant invariant has been
// violated by an out-of-band write and further cart writes must be blocked.
func HomogeneousScope(active []*CartLine) bool {
	for _, line := range active[1:] {
		if line.RestaurantID != active[0].RestaurantID {
			return false
		}
	}

	return true
}
