package impl

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"bites/config"
	"bites/internal/domain/entity"
	domainerrors "bites/internal/domain/errors"
	"bites/internal/domain/repository"
	mockRepo "bites/internal/mocks/repository"
	"bites/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// cartServiceFixtures holds all test dependencies for cart service tests.
type cartServiceFixtures struct {
	service     usecase.CartUsecase
	cartRepo    *mockRepo.MockCartRepository
	productRepo *mockRepo.MockProductRepository
}

func createTestCartService(t *testing.T) cartServiceFixtures {
	cartRepo := mockRepo.NewMockCartRepository(t)
	productRepo := mockRepo.NewMockProductRepository(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{
		Cart: &config.CartConfig{MaxLineQuantity: 99},
	}

	service := NewCartService(CartServiceParams{
		CartRepo:    cartRepo,
		ProductRepo: productRepo,
		Guard:       NewCartGuard(),
		Config:      cfg,
		Logger:      logger,
	})

	return cartServiceFixtures{
		service:     service,
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

func testProduct(restaurantID uuid.UUID, price int64) *entity.Product {
	return &entity.Product{
		ID:           uuid.New(),
		RestaurantID: restaurantID,
		Name:         "Beef Noodles",
		Price:        price,
		IsAvailable:  true,
	}
}

func TestCartService_AddOrIncrementLine_CreatesLineOnEmptyCart(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	userID := uuid.New()
	restaurantID := uuid.New()
	product := testProduct(restaurantID, 150)
	cart := &entity.Cart{ID: uuid.New(), UserID: userID, Status: entity.CartStatusOpen}

	fx.productRepo.EXPECT().FindProductByID(ctx, product.ID).Return(product, nil)
	fx.cartRepo.EXPECT().GetOrCreateCart(ctx, userID).Return(cart, nil)
	fx.cartRepo.EXPECT().FindLinesByCart(ctx, cart.ID).Return(nil, nil)
	fx.cartRepo.EXPECT().FindLineByCartAndProduct(ctx, cart.ID, product.ID).Return(nil, repository.ErrCartLineNotFound)
	fx.cartRepo.EXPECT().CreateLine(ctx, mock.AnythingOfType("*entity.CartLine")).Return(nil)
	fx.cartRepo.EXPECT().CountActiveLines(ctx, cart.ID).Return(int64(1), nil)

	mutation, err := fx.service.AddOrIncrementLine(ctx, userID, product.ID, 2)

	require.NoError(t, err)
	assert.Equal(t, product.ID, mutation.Line.ProductID)
	assert.Equal(t, restaurantID, mutation.Line.RestaurantID)
	assert.Equal(t, 2, mutation.Line.Quantity)
	assert.Equal(t, int64(300), mutation.Line.LineSubtotal)
	assert.Equal(t, entity.LineStatusActive, mutation.Line.Status)
	assert.Equal(t, int64(1), mutation.ActiveLineCount)
}

func TestCartService_AddOrIncrementLine_AccumulatesExistingLine(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	userID := uuid.New()
	restaurantID := uuid.New()
	product := testProduct(restaurantID, 150)
	cart := &entity.Cart{ID: uuid.New(), UserID: userID, Status: entity.CartStatusOpen}
	existing := &entity.CartLine{
		ID:           uuid.New(),
		CartID:       cart.ID,
		ProductID:    product.ID,
		RestaurantID: restaurantID,
		Quantity:     2,
		LineSubtotal: 300,
		Status:       entity.LineStatusActive,
	}

	fx.productRepo.EXPECT().FindProductByID(ctx, product.ID).Return(product, nil)
	fx.cartRepo.EXPECT().GetOrCreateCart(ctx, userID).Return(cart, nil)
	fx.cartRepo.EXPECT().FindLinesByCart(ctx, cart.ID).Return([]*entity.CartLine{existing}, nil)
	fx.cartRepo.EXPECT().FindLineByCartAndProduct(ctx, cart.ID, product.ID).Return(existing, nil)
	fx.cartRepo.EXPECT().UpdateLine(ctx, existing).Return(nil)
	fx.cartRepo.EXPECT().CountActiveLines(ctx, cart.ID).Return(int64(1), nil)

	mutation, err := fx.service.AddOrIncrementLine(ctx, userID, product.ID, 1)

	require.NoError(t, err)
	assert.Equal(t, 3, mutation.Line.Quantity)
	assert.Equal(t, int64(450), mutation.Line.LineSubtotal)
	assert.Equal(t, int64(1), mutation.ActiveLineCount)
}

func TestCartService_AddOrIncrementLine_BlocksCrossRestaurantAdd(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	userID := uuid.New()
	product := testProduct(uuid.New(), 150)
	cart := &entity.Cart{ID: uuid.New(), UserID: userID, Status: entity.CartStatusOpen}
	otherLine := &entity.CartLine{
		ID:           uuid.New(),
		CartID:       cart.ID,
		ProductID:    uuid.New(),
		RestaurantID: uuid.New(),
		Quantity:     1,
		Status:       entity.LineStatusActive,
	}

	fx.productRepo.EXPECT().FindProductByID(ctx, product.ID).Return(product, nil)
	fx.cartRepo.EXPECT().GetOrCreateCart(ctx, userID).Return(cart, nil)
	fx.cartRepo.EXPECT().FindLinesByCart(ctx, cart.ID).Return([]*entity.CartLine{otherLine}, nil)

	mutation, err := fx.service.AddOrIncrementLine(ctx, userID, product.ID, 1)

	require.Error(t, err)
	assert.Nil(t, mutation)
	assert.True(t, errors.Is(err, domainerrors.ErrCrossRestaurantConflict))
	assert.Equal(t, 1, otherLine.Quantity)
}

func TestCartService_AddOrIncrementLine_ReactivatesInactiveLineWithFreshQuantity(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	userID := uuid.New()
	restaurantID := uuid.New()
	product := testProduct(restaurantID, 100)
	cart := &entity.Cart{ID: uuid.New(), UserID: userID, Status: entity.CartStatusOpen}
	removed := &entity.CartLine{
		ID:           uuid.New(),
		CartID:       cart.ID,
		ProductID:    product.ID,
		RestaurantID: restaurantID,
		Quantity:     5,
		LineSubtotal: 500,
		Status:       entity.LineStatusInactive,
	}

	fx.productRepo.EXPECT().FindProductByID(ctx, product.ID).Return(product, nil)
	fx.cartRepo.EXPECT().GetOrCreateCart(ctx, userID).Return(cart, nil)
	fx.cartRepo.EXPECT().FindLinesByCart(ctx, cart.ID).Return([]*entity.CartLine{removed}, nil)
	fx.cartRepo.EXPECT().FindLineByCartAndProduct(ctx, cart.ID, product.ID).Return(removed, nil)
	fx.cartRepo.EXPECT().UpdateLine(ctx, removed).Return(nil)
	fx.cartRepo.EXPECT().CountActiveLines(ctx, cart.ID).Return(int64(1), nil)

	mutation, err := fx.service.AddOrIncrementLine(ctx, userID, product.ID, 2)

	require.NoError(t, err)
	assert.Equal(t, entity.LineStatusActive, mutation.Line.Status)
	assert.Equal(t, 2, mutation.Line.Quantity, "reactivation starts a fresh count instead of resuming the old one")
	assert.Equal(t, int64(200), mutation.Line.LineSubtotal)
}

func TestCartService_AddOrIncrementLine_RejectsNonPositiveDelta(t *testing.T) {
	fx := createTestCartService(t)

	mutation, err := fx.service.AddOrIncrementLine(context.Background(), uuid.New(), uuid.New(), 0)

	require.Error(t, err)
	assert.Nil(t, mutation)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidQuantity))
}

func TestCartService_AddOrIncrementLine_RequiresAuthentication(t *testing.T) {
	fx := createTestCartService(t)

	mutation, err := fx.service.AddOrIncrementLine(context.Background(), uuid.Nil, uuid.New(), 1)

	require.Error(t, err)
	assert.Nil(t, mutation)
	assert.True(t, errors.Is(err, domainerrors.ErrNotAuthenticated))
}

func TestCartService_AddOrIncrementLine_RejectsProductWithoutRestaurant(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	userID := uuid.New()
	product := testProduct(uuid.Nil, 150)
	cart := &entity.Cart{ID: uuid.New(), UserID: userID, Status: entity.CartStatusOpen}

	fx.cartRepo.EXPECT().GetOrCreateCart(ctx, userID).Return(cart, nil)
	fx.productRepo.EXPECT().FindProductByID(ctx, product.ID).Return(product, nil)

	mutation, err := fx.service.AddOrIncrementLine(ctx, userID, product.ID, 1)

	require.Error(t, err)
	assert.Nil(t, mutation)
	assert.True(t, errors.Is(err, domainerrors.ErrAmbiguousRestaurant))
}

func TestCartService_AddOrIncrementLine_CartFailurePrecedesProductLookup(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()

	fx.cartRepo.EXPECT().GetOrCreateCart(ctx, userID).Return(nil, errors.New("connection reset"))

	mutation, err := fx.service.AddOrIncrementLine(ctx, userID, productID, 1)

	require.Error(t, err)
	assert.Nil(t, mutation)
	assert.True(t, errors.Is(err, domainerrors.ErrCartUnavailable))
	fx.productRepo.AssertNotCalled(t, "FindProductByID", ctx, productID)
}

func TestCartService_AddOrIncrementLine_RejectsQuantityAboveCap(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	userID := uuid.New()
	restaurantID := uuid.New()
	product := testProduct(restaurantID, 100)
	cart := &entity.Cart{ID: uuid.New(), UserID: userID, Status: entity.CartStatusOpen}
	existing := &entity.CartLine{
		ID:           uuid.New(),
		CartID:       cart.ID,
		ProductID:    product.ID,
		RestaurantID: restaurantID,
		Quantity:     98,
		Status:       entity.LineStatusActive,
	}

	fx.productRepo.EXPECT().FindProductByID(ctx, product.ID).Return(product, nil)
	fx.cartRepo.EXPECT().GetOrCreateCart(ctx, userID).Return(cart, nil)
	fx.cartRepo.EXPECT().FindLinesByCart(ctx, cart.ID).Return([]*entity.CartLine{existing}, nil)
	fx.cartRepo.EXPECT().FindLineByCartAndProduct(ctx, cart.ID, product.ID).Return(existing, nil)

	mutation, err := fx.service.AddOrIncrementLine(ctx, userID, product.ID, 2)

	require.Error(t, err)
	assert.Nil(t, mutation)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidQuantity))
	assert.Equal(t, 98, existing.Quantity)
}

func TestCartService_AddOrIncrementLine_MixedCartBlocksWrites(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	userID := uuid.New()
	product := testProduct(uuid.New(), 150)
	cart := &entity.Cart{ID: uuid.New(), UserID: userID, Status: entity.CartStatusOpen}
	mixed := []*entity.CartLine{
		{ID: uuid.New(), CartID: cart.ID, ProductID: uuid.New(), RestaurantID: uuid.New(), Quantity: 1, Status: entity.LineStatusActive},
		{ID: uuid.New(), CartID: cart.ID, ProductID: uuid.New(), RestaurantID: uuid.New(), Quantity: 1, Status: entity.LineStatusActive},
	}

	fx.productRepo.EXPECT().FindProductByID(ctx, product.ID).Return(product, nil)
	fx.cartRepo.EXPECT().GetOrCreateCart(ctx, userID).Return(cart, nil)
	fx.cartRepo.EXPECT().FindLinesByCart(ctx, cart.ID).Return(mixed, nil)

	mutation, err := fx.service.AddOrIncrementLine(ctx, userID, product.ID, 1)

	require.Error(t, err)
	assert.Nil(t, mutation)
	assert.True(t, errors.Is(err, domainerrors.ErrCartInconsistent))
}

func TestCartService_AddOrIncrementLine_CountRefreshFailureFallsBack(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	userID := uuid.New()
	restaurantID := uuid.New()
	product := testProduct(restaurantID, 150)
	cart := &entity.Cart{ID: uuid.New(), UserID: userID, Status: entity.CartStatusOpen}

	fx.productRepo.EXPECT().FindProductByID(ctx, product.ID).Return(product, nil)
	fx.cartRepo.EXPECT().GetOrCreateCart(ctx, userID).Return(cart, nil)
	fx.cartRepo.EXPECT().FindLinesByCart(ctx, cart.ID).Return(nil, nil)
	fx.cartRepo.EXPECT().FindLineByCartAndProduct(ctx, cart.ID, product.ID).Return(nil, repository.ErrCartLineNotFound)
	fx.cartRepo.EXPECT().CreateLine(ctx, mock.AnythingOfType("*entity.CartLine")).Return(nil)
	fx.cartRepo.EXPECT().CountActiveLines(ctx, cart.ID).Return(int64(0), errors.New("connection reset"))

	mutation, err := fx.service.AddOrIncrementLine(ctx, userID, product.ID, 1)

	require.NoError(t, err, "a failed count refresh must not surface after a successful mutation")
	assert.Equal(t, int64(1), mutation.ActiveLineCount, "falls back to the locally derived count")
}

func TestCartService_AddOrIncrementLine_SerializesConcurrentAddsOnOneCart(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	userID := uuid.New()
	restaurantID := uuid.New()
	productA := testProduct(restaurantID, 100)
	productB := testProduct(restaurantID, 200)
	cart := &entity.Cart{ID: uuid.New(), UserID: userID, Status: entity.CartStatusOpen}

	var lookups atomic.Int32
	firstInLookup := make(chan struct{})
	releaseFirst := make(chan struct{})

	fx.cartRepo.EXPECT().GetOrCreateCart(ctx, userID).Return(cart, nil).Times(2)
	fx.productRepo.EXPECT().FindProductByID(ctx, productA.ID).Return(productA, nil)
	fx.productRepo.EXPECT().FindProductByID(ctx, productB.ID).Return(productB, nil)
	fx.cartRepo.EXPECT().FindLinesByCart(ctx, cart.ID).RunAndReturn(func(context.Context, uuid.UUID) ([]*entity.CartLine, error) {
		if lookups.Add(1) == 1 {
			close(firstInLookup)
			<-releaseFirst
		}

		return nil, nil
	}).Times(2)
	fx.cartRepo.EXPECT().FindLineByCartAndProduct(ctx, cart.ID, productA.ID).Return(nil, repository.ErrCartLineNotFound)
	fx.cartRepo.EXPECT().FindLineByCartAndProduct(ctx, cart.ID, productB.ID).Return(nil, repository.ErrCartLineNotFound)
	fx.cartRepo.EXPECT().CreateLine(ctx, mock.AnythingOfType("*entity.CartLine")).Return(nil).Times(2)
	fx.cartRepo.EXPECT().CountActiveLines(ctx, cart.ID).Return(int64(1), nil).Times(2)

	firstDone := make(chan error, 1)
	secondDone := make(chan error, 1)

	go func() {
		_, err := fx.service.AddOrIncrementLine(ctx, userID, productA.ID, 1)
		firstDone <- err
	}()

	<-firstInLookup

	go func() {
		_, err := fx.service.AddOrIncrementLine(ctx, userID, productB.ID, 1)
		secondDone <- err
	}()

	// While the first add is parked inside its line lookup, the second add
	// must stay queued behind the cart guard instead of starting its own.
	select {
	case <-secondDone:
		t.Fatal("second add completed while the first was still in flight")
	case <-time.After(50 * time.Millisecond):
	}
	assert.Equal(t, int32(1), lookups.Load(), "second add must not reach its line lookup before the first resolves")

	close(releaseFirst)

	require.NoError(t, <-firstDone)
	require.NoError(t, <-secondDone)
	assert.Equal(t, int32(2), lookups.Load())
}

func TestCartService_DeactivateLine_SoftRemovesActiveLine(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	userID := uuid.New()
	cart := &entity.Cart{ID: uuid.New(), UserID: userID, Status: entity.CartStatusOpen}
	productID := uuid.New()
	line := &entity.CartLine{
		ID:        uuid.New(),
		CartID:    cart.ID,
		ProductID: productID,
		Quantity:  3,
		Status:    entity.LineStatusActive,
	}

	fx.cartRepo.EXPECT().FindCartByUser(ctx, userID).Return(cart, nil)
	fx.cartRepo.EXPECT().FindLinesByCart(ctx, cart.ID).Return([]*entity.CartLine{line}, nil)
	fx.cartRepo.EXPECT().FindLineByCartAndProduct(ctx, cart.ID, productID).Return(line, nil)
	fx.cartRepo.EXPECT().UpdateLine(ctx, line).Return(nil)
	fx.cartRepo.EXPECT().CountActiveLines(ctx, cart.ID).Return(int64(0), nil)

	mutation, err := fx.service.DeactivateLine(ctx, userID, productID)

	require.NoError(t, err)
	assert.Equal(t, entity.LineStatusInactive, mutation.Line.Status)
	assert.Equal(t, 3, mutation.Line.Quantity, "the removed quantity is kept as history")
	assert.Equal(t, int64(0), mutation.ActiveLineCount)
}

func TestCartService_DeactivateLine_CountRefreshFailureFallsBack(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	userID := uuid.New()
	restaurantID := uuid.New()
	cart := &entity.Cart{ID: uuid.New(), UserID: userID, Status: entity.CartStatusOpen}
	productID := uuid.New()
	target := &entity.CartLine{
		ID:           uuid.New(),
		CartID:       cart.ID,
		ProductID:    productID,
		RestaurantID: restaurantID,
		Quantity:     2,
		Status:       entity.LineStatusActive,
	}
	other := &entity.CartLine{
		ID:           uuid.New(),
		CartID:       cart.ID,
		ProductID:    uuid.New(),
		RestaurantID: restaurantID,
		Quantity:     1,
		Status:       entity.LineStatusActive,
	}

	fx.cartRepo.EXPECT().FindCartByUser(ctx, userID).Return(cart, nil)
	fx.cartRepo.EXPECT().FindLinesByCart(ctx, cart.ID).Return([]*entity.CartLine{target, other}, nil)
	fx.cartRepo.EXPECT().FindLineByCartAndProduct(ctx, cart.ID, productID).Return(target, nil)
	fx.cartRepo.EXPECT().UpdateLine(ctx, target).Return(nil)
	fx.cartRepo.EXPECT().CountActiveLines(ctx, cart.ID).Return(int64(0), errors.New("connection reset"))

	mutation, err := fx.service.DeactivateLine(ctx, userID, productID)

	require.NoError(t, err, "a failed count refresh must not surface after a successful mutation")
	assert.Equal(t, int64(1), mutation.ActiveLineCount, "falls back to the remaining active lines")
}

func TestCartService_DeactivateLine_UnknownProduct(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	userID := uuid.New()
	cart := &entity.Cart{ID: uuid.New(), UserID: userID, Status: entity.CartStatusOpen}
	productID := uuid.New()

	fx.cartRepo.EXPECT().FindCartByUser(ctx, userID).Return(cart, nil)
	fx.cartRepo.EXPECT().FindLinesByCart(ctx, cart.ID).Return(nil, nil)
	fx.cartRepo.EXPECT().FindLineByCartAndProduct(ctx, cart.ID, productID).Return(nil, repository.ErrCartLineNotFound)

	mutation, err := fx.service.DeactivateLine(ctx, userID, productID)

	require.Error(t, err)
	assert.Nil(t, mutation)
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))
}

func TestCartService_ClearCart_NoCartIsNoop(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	userID := uuid.New()

	fx.cartRepo.EXPECT().FindCartByUser(ctx, userID).Return(nil, repository.ErrCartNotFound)

	err := fx.service.ClearCart(ctx, userID)

	require.NoError(t, err)
}

func TestCartService_ClearCart_DeactivatesAllLines(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	userID := uuid.New()
	cart := &entity.Cart{ID: uuid.New(), UserID: userID, Status: entity.CartStatusOpen}

	fx.cartRepo.EXPECT().FindCartByUser(ctx, userID).Return(cart, nil)
	fx.cartRepo.EXPECT().DeactivateLines(ctx, cart.ID).Return(nil)

	err := fx.service.ClearCart(ctx, userID)

	require.NoError(t, err)
}

func TestCartService_RefreshActiveLineCount_NoCartReturnsZero(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	userID := uuid.New()

	fx.cartRepo.EXPECT().FindCartByUser(ctx, userID).Return(nil, repository.ErrCartNotFound)

	count, err := fx.service.RefreshActiveLineCount(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestCartService_GetCart_LoadsLines(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	userID := uuid.New()
	cart := &entity.Cart{ID: uuid.New(), UserID: userID, Status: entity.CartStatusOpen}
	restaurantID := uuid.New()
	lines := []*entity.CartLine{
		{ID: uuid.New(), CartID: cart.ID, ProductID: uuid.New(), RestaurantID: restaurantID, Quantity: 1, Status: entity.LineStatusActive},
		{ID: uuid.New(), CartID: cart.ID, ProductID: uuid.New(), RestaurantID: restaurantID, Quantity: 2, Status: entity.LineStatusInactive},
	}

	fx.cartRepo.EXPECT().GetOrCreateCart(ctx, userID).Return(cart, nil)
	fx.cartRepo.EXPECT().FindLinesByCart(ctx, cart.ID).Return(lines, nil)

	result, err := fx.service.GetCart(ctx, userID)

	require.NoError(t, err)
	assert.Len(t, result.Lines, 2)
	assert.Len(t, result.ActiveLines(), 1)
}
