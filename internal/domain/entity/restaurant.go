package entity

import (
	"time"

	"github.com/google/uuid"
)

// Restaurant is a merchant selling products through the platform.
type Restaurant struct {
	ID             uuid.UUID `json:"id"`              // The Global Unique Identifier (GUID) for the restaurant.
	Name           string    `json:"name"`            // Display name of the restaurant.
	Latitude       float64   `json:"latitude"`        // The geographic latitude of the restaurant.
	Longitude      float64   `json:"longitude"`       // The geographic longitude of the restaurant.
	DeliveryRadius float64   `json:"delivery_radius"` // Maximum delivery distance in meters; 0 means use the configured default.
	IsOpen         bool      `json:"is_open"`         // Indicates whether the restaurant currently accepts orders.
	CreatedAt      time.Time `json:"created_at"`      // Timestamp of when the restaurant was created.
	UpdatedAt      time.Time `json:"updated_at"`      // Timestamp of the last modification.
}
