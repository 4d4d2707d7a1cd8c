package repository

import (
	"context"

	"bites/internal/domain/entity"
	"bites/internal/errors"

	"github.com/google/uuid"
)

// ErrProductNotFound is returned when a product is not found.
var ErrProductNotFound = errors.New("product not found")

// ProductRepository defines the interface for product-related database operations.
type ProductRepository interface {
	// FindProductByID retrieves a product by its unique ID. The implementation
	// normalizes the owning-restaurant reference into Product.RestaurantID,
	// whichever shape the row carries it in.
	FindProductByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// FindProductsByRestaurant retrieves all available products of a restaurant.
	FindProductsByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]*entity.Product, error)
}
