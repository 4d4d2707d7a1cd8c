package usecase

import (
	"context"

	"bites/internal/domain/entity"

	"github.com/google/uuid"
)

// RestaurantMenu is a restaurant together with its orderable products.
type RestaurantMenu struct {
	Restaurant *entity.Restaurant `json:"restaurant"`
	Products   []*entity.Product  `json:"products"`
}

// CatalogUsecase exposes read-only restaurant browsing.
type CatalogUsecase interface {
	// GetRestaurant returns a restaurant by ID.
	GetRestaurant(ctx context.Context, restaurantID uuid.UUID) (*entity.Restaurant, error)

	// GetRestaurantMenu returns a restaurant with its available products.
	GetRestaurantMenu(ctx context.Context, restaurantID uuid.UUID) (*RestaurantMenu, error)
}
