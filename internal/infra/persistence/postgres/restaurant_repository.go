package postgres

import (
	"context"

	"bites/internal/domain/entity"
	"bites/internal/domain/repository"
	"bites/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// restaurantRepository implements the repository.RestaurantRepository interface.
type restaurantRepository struct {
	db *gorm.DB
}

// NewRestaurantRepository is the constructor for restaurantRepository.
func NewRestaurantRepository(db *gorm.DB) repository.RestaurantRepository {
	return &restaurantRepository{
		db: db,
	}
}

// FindRestaurantByID retrieves a restaurant by its unique ID.
func (repo *restaurantRepository) FindRestaurantByID(ctx context.Context, id uuid.UUID) (*entity.Restaurant, error) {
	var restaurantM model.RestaurantModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&restaurantM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRestaurantNotFound
		}

		return nil, errors.Wrap(err, "failed to find restaurant by ID")
	}

	return toRestaurantDomain(&restaurantM), nil
}

// toRestaurantDomain converts a GORM restaurant model to a domain entity.
func toRestaurantDomain(restaurantM *model.RestaurantModel) *entity.Restaurant {
	return &entity.Restaurant{
		ID:             restaurantM.ID,
		Name:           restaurantM.Name,
		Latitude:       restaurantM.Latitude,
		Longitude:      restaurantM.Longitude,
		DeliveryRadius: restaurantM.DeliveryRadius,
		IsOpen:         restaurantM.IsOpen,
		CreatedAt:      restaurantM.CreatedAt,
		UpdatedAt:      restaurantM.UpdatedAt,
	}
}
