package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"bites/internal/domain/entity"
	domainerrors "bites/internal/domain/errors"
	"bites/internal/domain/repository"
	mockRepo "bites/internal/mocks/repository"
	"bites/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// catalogServiceFixtures holds all test dependencies for catalog service tests.
type catalogServiceFixtures struct {
	service        usecase.CatalogUsecase
	restaurantRepo *mockRepo.MockRestaurantRepository
	productRepo    *mockRepo.MockProductRepository
}

func createTestCatalogService(t *testing.T) catalogServiceFixtures {
	restaurantRepo := mockRepo.NewMockRestaurantRepository(t)
	productRepo := mockRepo.NewMockProductRepository(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	service := NewCatalogService(CatalogServiceParams{
		RestaurantRepo: restaurantRepo,
		ProductRepo:    productRepo,
		Logger:         logger,
	})

	return catalogServiceFixtures{
		service:        service,
		restaurantRepo: restaurantRepo,
		productRepo:    productRepo,
	}
}

func TestCatalogService_GetRestaurantMenu_ReturnsRestaurantWithProducts(t *testing.T) {
	fx := createTestCatalogService(t)

	ctx := context.Background()
	restaurant := &entity.Restaurant{ID: uuid.New(), Name: "Night Market Stand", IsOpen: true}
	products := []*entity.Product{
		testProduct(restaurant.ID, 120),
		testProduct(restaurant.ID, 80),
	}

	fx.restaurantRepo.EXPECT().FindRestaurantByID(ctx, restaurant.ID).Return(restaurant, nil)
	fx.productRepo.EXPECT().FindProductsByRestaurant(ctx, restaurant.ID).Return(products, nil)

	menu, err := fx.service.GetRestaurantMenu(ctx, restaurant.ID)

	require.NoError(t, err)
	assert.Equal(t, restaurant, menu.Restaurant)
	assert.Len(t, menu.Products, 2)
}

func TestCatalogService_GetRestaurant_NotFound(t *testing.T) {
	fx := createTestCatalogService(t)

	ctx := context.Background()
	restaurantID := uuid.New()

	fx.restaurantRepo.EXPECT().FindRestaurantByID(ctx, restaurantID).Return(nil, repository.ErrRestaurantNotFound)

	restaurant, err := fx.service.GetRestaurant(ctx, restaurantID)

	require.Error(t, err)
	assert.Nil(t, restaurant)
	assert.True(t, errors.Is(err, domainerrors.ErrRestaurantNotFound))
}
