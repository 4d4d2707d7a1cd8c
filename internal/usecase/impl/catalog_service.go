package impl

import (
	"context"
	"log/slog"

	"bites/internal/domain/entity"
	domainerrors "bites/internal/domain/errors"
	"bites/internal/domain/repository"
	"bites/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// catalogService implements the CatalogUsecase interface.
type catalogService struct {
	restaurantRepo repository.RestaurantRepository
	productRepo    repository.ProductRepository
	logger         *slog.Logger
}

// CatalogServiceParams holds dependencies for CatalogService, injected by Fx.
type CatalogServiceParams struct {
	fx.In

	RestaurantRepo repository.RestaurantRepository
	ProductRepo    repository.ProductRepository
	Logger         *slog.Logger
}

// NewCatalogService is the constructor for catalogService.
func NewCatalogService(params CatalogServiceParams) usecase.CatalogUsecase {
	return &catalogService{
		restaurantRepo: params.RestaurantRepo,
		productRepo:    params.ProductRepo,
		logger:         params.Logger,
	}
}

// GetRestaurant returns a restaurant by ID.
func (s *catalogService) GetRestaurant(ctx context.Context, restaurantID uuid.UUID) (*entity.Restaurant, error) {
	restaurant, err := s.restaurantRepo.FindRestaurantByID(ctx, restaurantID)
	if err != nil {
		if errors.Is(err, repository.ErrRestaurantNotFound) {
			return nil, errors.Wrap(domainerrors.ErrRestaurantNotFound, "restaurant lookup")
		}

		return nil, errors.Wrap(err, "failed to find restaurant")
	}

	return restaurant, nil
}

// GetRestaurantMenu returns a restaurant with its available products.
func (s *catalogService) GetRestaurantMenu(ctx context.Context, restaurantID uuid.UUID) (*usecase.RestaurantMenu, error) {
	restaurant, err := s.GetRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	products, err := s.productRepo.FindProductsByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list restaurant products")
	}

	return &usecase.RestaurantMenu{
		Restaurant: restaurant,
		Products:   products,
	}, nil
}
