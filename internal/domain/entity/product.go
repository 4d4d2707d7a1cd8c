package entity

import (
	"time"

	"github.com/google/uuid"
)

// Product is a menu item offered by a restaurant.
//
// RestaurantID is always populated: the persistence layer normalizes the two
// shapes the backend historically produced for this relationship (a bare
// restaurant_id column or an embedded restaurant object) into this one field,
// so business logic never has to chase a fallback chain.
type Product struct {
	ID           uuid.UUID `json:"id"`            // The Global Unique Identifier (GUID) for the product.
	RestaurantID uuid.UUID `json:"restaurant_id"` // The ID of the restaurant owning this product.
	Name         string    `json:"name"`          // Display name of the product.
	Price        int64     `json:"price"`         // Current unit price in the smallest currency unit.
	IsAvailable  bool      `json:"is_available"`  // Indicates whether the product can currently be ordered.
	CreatedAt    time.Time `json:"created_at"`    // Timestamp of when the product was created.
	UpdatedAt    time.Time `json:"updated_at"`    // Timestamp of the last modification.
}

// HasRestaurant reports whether the owning restaurant could be resolved.
// A product without one is a data error and must not enter a cart.
func (p *Product) HasRestaurant() bool {
	return p.RestaurantID != uuid.Nil
}
