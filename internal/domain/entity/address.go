package entity

import (
	"time"

	"github.com/google/uuid"
)

// Address is a delivery address saved by a user.
// At most one address per user is the default at any time; the first saved
// address becomes the default automatically.
type Address struct {
	ID          uuid.UUID `json:"id"`           // The Global Unique Identifier (GUID) for the address.
	UserID      uuid.UUID `json:"user_id"`      // The ID of the user owning this address.
	Label       string    `json:"label"`        // A user-defined label, e.g., "Home", "Office".
	FullAddress string    `json:"full_address"` // The full, human-readable street address.
	Latitude    float64   `json:"latitude"`     // The geographic latitude.
	Longitude   float64   `json:"longitude"`    // The geographic longitude.
	IsDefault   bool      `json:"is_default"`   // Indicates if this is the user's default delivery address.
	CreatedAt   time.Time `json:"created_at"`   // Timestamp of when this address was created.
	UpdatedAt   time.Time `json:"updated_at"`   // Timestamp of the last modification.
}
