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

// productRepository implements the repository.ProductRepository interface.
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository is the constructor for productRepository.
func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepository{
		db: db,
	}
}

// FindProductByID retrieves a product by its unique ID. The owning restaurant
// is preloaded so rows that carry the reference only through the association
// still resolve to a populated RestaurantID.
func (repo *productRepository) FindProductByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var productM model.ProductModel

	if err := repo.db.WithContext(ctx).
		Preload("Restaurant").
		Where("id = ?", id).
		First(&productM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product by ID")
	}

	return toProductDomain(&productM), nil
}

// FindProductsByRestaurant retrieves all available products of a restaurant.
func (repo *productRepository) FindProductsByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]*entity.Product, error) {
	var productModels []*model.ProductModel

	if err := repo.db.WithContext(ctx).
		Where("restaurant_id = ? AND is_available = ?", restaurantID, true).
		Order("name ASC").
		Find(&productModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find products by restaurant")
	}

	products := make([]*entity.Product, 0, len(productModels))
	for _, productM := range productModels {
		products = append(products, toProductDomain(productM))
	}

	return products, nil
}

// toProductDomain converts a GORM product model to a domain entity, normalizing
// the owning-restaurant reference: the bare restaurant_id column wins, the
// preloaded association is the fallback for historic rows without one.
func toProductDomain(productM *model.ProductModel) *entity.Product {
	restaurantID := uuid.Nil
	switch {
	case productM.RestaurantID != nil:
		restaurantID = *productM.RestaurantID
	case productM.Restaurant != nil:
		restaurantID = productM.Restaurant.ID
	}

	return &entity.Product{
		ID:           productM.ID,
		RestaurantID: restaurantID,
		Name:         productM.Name,
		Price:        productM.Price,
		IsAvailable:  productM.IsAvailable,
		CreatedAt:    productM.CreatedAt,
		UpdatedAt:    productM.UpdatedAt,
	}
}
