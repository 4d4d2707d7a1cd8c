package repository

import (
	"context"

	"bites/internal/domain/entity"
	"bites/internal/errors"

	"github.com/google/uuid"
)

// ErrRestaurantNotFound is returned when a restaurant is not found.
var ErrRestaurantNotFound = errors.New("restaurant not found")

// RestaurantRepository defines the interface for restaurant-related database operations.
type RestaurantRepository interface {
	// FindRestaurantByID retrieves a restaurant by its unique ID.
	FindRestaurantByID(ctx context.Context, id uuid.UUID) (*entity.Restaurant, error)
}
