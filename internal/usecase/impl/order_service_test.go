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
	mockSvc "bites/internal/mocks/service"
	"bites/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// orderServiceFixtures holds all test dependencies for order service tests.
type orderServiceFixtures struct {
	service   usecase.OrderUsecase
	txManager *mockRepo.MockTransactionManager
	orderRepo *mockRepo.MockOrderRepository
	publisher *mockSvc.MockEventPublisher
	guard     *CartGuard
}

func createTestOrderService(t *testing.T) orderServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	orderRepo := mockRepo.NewMockOrderRepository(t)
	publisher := mockSvc.NewMockEventPublisher(t)
	guard := NewCartGuard()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{
		Delivery: &config.DeliveryConfig{DefaultRadiusMeters: 5000},
	}

	service := NewOrderService(OrderServiceParams{
		TxManager:      txManager,
		OrderRepo:      orderRepo,
		EventPublisher: publisher,
		CartGuard:      guard,
		Config:         cfg,
		Logger:         logger,
	})

	return orderServiceFixtures{
		service:   service,
		txManager: txManager,
		orderRepo: orderRepo,
		publisher: publisher,
		guard:     guard,
	}
}

func processingOrder(userID uuid.UUID) *entity.Order {
	orderID := uuid.New()

	return &entity.Order{
		ID:            orderID,
		UserID:        userID,
		RestaurantID:  uuid.New(),
		AddressID:     uuid.New(),
		PaymentMethod: entity.PaymentMethodCash,
		Status:        entity.OrderStatusProcessing,
		Total:         300,
		Lines: []*entity.OrderLine{
			{ID: uuid.New(), OrderID: orderID, ProductID: uuid.New(), Quantity: 2, LineSubtotal: 300},
		},
	}
}

func TestOrderService_ReconcileOrderEdit_ProducesFullReplacePayload(t *testing.T) {
	fx := createTestOrderService(t)

	original := processingOrder(uuid.New())
	retained := original.Lines[0]
	input := &usecase.OrderEditInput{
		Lines: []*usecase.OrderEditLine{
			{LineID: &retained.ID, ProductID: retained.ProductID, Quantity: 3},
			{ProductID: uuid.New(), Quantity: 1},
		},
		AddressID:     original.AddressID,
		PaymentMethod: entity.PaymentMethodCard,
	}

	payload, err := fx.service.ReconcileOrderEdit(original, input)

	require.NoError(t, err)
	assert.Equal(t, original.ID, payload.OrderID)
	assert.Len(t, payload.Lines, 2)
	assert.Equal(t, entity.PaymentMethodCard, payload.PaymentMethod)
}

func TestOrderService_ReconcileOrderEdit_RejectsEmptyLineSet(t *testing.T) {
	fx := createTestOrderService(t)

	original := processingOrder(uuid.New())
	input := &usecase.OrderEditInput{
		Lines:         []*usecase.OrderEditLine{},
		AddressID:     original.AddressID,
		PaymentMethod: entity.PaymentMethodCash,
	}

	payload, err := fx.service.ReconcileOrderEdit(original, input)

	require.Error(t, err)
	assert.Nil(t, payload)
	assert.True(t, errors.Is(err, domainerrors.ErrEmptyOrder))
}

func TestOrderService_ReconcileOrderEdit_RejectsNonPositiveQuantity(t *testing.T) {
	fx := createTestOrderService(t)

	original := processingOrder(uuid.New())
	input := &usecase.OrderEditInput{
		Lines: []*usecase.OrderEditLine{
			{ProductID: uuid.New(), Quantity: 0},
		},
		AddressID:     original.AddressID,
		PaymentMethod: entity.PaymentMethodCash,
	}

	payload, err := fx.service.ReconcileOrderEdit(original, input)

	require.Error(t, err)
	assert.Nil(t, payload)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidOrderLine))
}

func TestOrderService_ReconcileOrderEdit_RejectsUnknownRetainedLine(t *testing.T) {
	fx := createTestOrderService(t)

	original := processingOrder(uuid.New())
	strayLineID := uuid.New()
	input := &usecase.OrderEditInput{
		Lines: []*usecase.OrderEditLine{
			{LineID: &strayLineID, ProductID: uuid.New(), Quantity: 1},
		},
		AddressID:     original.AddressID,
		PaymentMethod: entity.PaymentMethodCash,
	}

	payload, err := fx.service.ReconcileOrderEdit(original, input)

	require.Error(t, err)
	assert.Nil(t, payload)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidOrderLine))
}

func TestOrderService_ReconcileOrderEdit_RejectsNonProcessingOrder(t *testing.T) {
	fx := createTestOrderService(t)

	original := processingOrder(uuid.New())
	original.Status = entity.OrderStatusConfirmed
	input := &usecase.OrderEditInput{
		Lines: []*usecase.OrderEditLine{
			{ProductID: uuid.New(), Quantity: 1},
		},
		AddressID:     original.AddressID,
		PaymentMethod: entity.PaymentMethodCash,
	}

	payload, err := fx.service.ReconcileOrderEdit(original, input)

	require.Error(t, err)
	assert.Nil(t, payload)
	assert.True(t, errors.Is(err, domainerrors.ErrOrderNotEditable))
}

func TestOrderService_SubmitOrderEdit_ReplacesOrderAtomically(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	userID := uuid.New()
	original := processingOrder(userID)
	retained := original.Lines[0]
	product := &entity.Product{
		ID:           retained.ProductID,
		RestaurantID: original.RestaurantID,
		Price:        150,
		IsAvailable:  true,
	}
	address := &entity.Address{ID: original.AddressID, UserID: userID}
	input := &usecase.OrderEditInput{
		Lines: []*usecase.OrderEditLine{
			{LineID: &retained.ID, ProductID: retained.ProductID, Quantity: 4},
		},
		AddressID:     original.AddressID,
		PaymentMethod: entity.PaymentMethodCash,
	}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockOrderRepo := mockRepo.NewMockOrderRepository(t)
			mockAddressRepo := mockRepo.NewMockAddressRepository(t)
			mockProductRepo := mockRepo.NewMockProductRepository(t)

			mockFactory.EXPECT().OrderRepo().Return(mockOrderRepo)
			mockFactory.EXPECT().AddressRepo().Return(mockAddressRepo)
			mockFactory.EXPECT().ProductRepo().Return(mockProductRepo)
			mockOrderRepo.EXPECT().FindOrderByID(ctx, original.ID).Return(original, nil)
			mockAddressRepo.EXPECT().FindAddressByID(ctx, original.AddressID).Return(address, nil)
			mockProductRepo.EXPECT().FindProductByID(ctx, retained.ProductID).Return(product, nil)
			mockOrderRepo.EXPECT().ReplaceOrder(ctx, original).Return(nil)

			return fn(mockFactory)
		})
	fx.publisher.EXPECT().PublishOrderEvent(ctx, mock.AnythingOfType("*service.OrderEvent")).Return(nil)

	updated, err := fx.service.SubmitOrderEdit(ctx, userID, original.ID, input)

	require.NoError(t, err)
	require.Len(t, updated.Lines, 1)
	assert.Equal(t, retained.ID, updated.Lines[0].ID)
	assert.Equal(t, 4, updated.Lines[0].Quantity)
	assert.Equal(t, int64(600), updated.Lines[0].LineSubtotal)
	assert.Equal(t, int64(600), updated.Total)
}

func TestOrderService_SubmitOrderEdit_ForeignOrderIsForbidden(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	userID := uuid.New()
	original := processingOrder(uuid.New())
	input := &usecase.OrderEditInput{
		Lines: []*usecase.OrderEditLine{
			{ProductID: uuid.New(), Quantity: 1},
		},
		AddressID:     original.AddressID,
		PaymentMethod: entity.PaymentMethodCash,
	}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockOrderRepo := mockRepo.NewMockOrderRepository(t)

			mockFactory.EXPECT().OrderRepo().Return(mockOrderRepo)
			mockOrderRepo.EXPECT().FindOrderByID(ctx, original.ID).Return(original, nil)

			return fn(mockFactory)
		})

	updated, err := fx.service.SubmitOrderEdit(ctx, userID, original.ID, input)

	require.Error(t, err)
	assert.Nil(t, updated)
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
}

func TestOrderService_Checkout_CreatesOrderAndClearsCart(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	userID := uuid.New()
	restaurantID := uuid.New()
	cart := &entity.Cart{ID: uuid.New(), UserID: userID, Status: entity.CartStatusOpen}
	lines := []*entity.CartLine{
		{ID: uuid.New(), CartID: cart.ID, ProductID: uuid.New(), RestaurantID: restaurantID, Quantity: 2, LineSubtotal: 300, Status: entity.LineStatusActive},
		{ID: uuid.New(), CartID: cart.ID, ProductID: uuid.New(), RestaurantID: restaurantID, Quantity: 1, LineSubtotal: 80, Status: entity.LineStatusInactive},
	}
	restaurant := &entity.Restaurant{
		ID:             restaurantID,
		Latitude:       25.0340,
		Longitude:      121.5645,
		DeliveryRadius: 3000,
		IsOpen:         true,
	}
	address := &entity.Address{
		ID:        uuid.New(),
		UserID:    userID,
		Latitude:  25.0330,
		Longitude: 121.5654,
	}
	input := &usecase.CheckoutInput{
		AddressID:     address.ID,
		PaymentMethod: entity.PaymentMethodCash,
	}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockCartRepo := mockRepo.NewMockCartRepository(t)
			mockRestaurantRepo := mockRepo.NewMockRestaurantRepository(t)
			mockAddressRepo := mockRepo.NewMockAddressRepository(t)
			mockOrderRepo := mockRepo.NewMockOrderRepository(t)

			mockFactory.EXPECT().CartRepo().Return(mockCartRepo)
			mockFactory.EXPECT().RestaurantRepo().Return(mockRestaurantRepo)
			mockFactory.EXPECT().AddressRepo().Return(mockAddressRepo)
			mockFactory.EXPECT().OrderRepo().Return(mockOrderRepo)
			mockCartRepo.EXPECT().FindCartByUser(ctx, userID).Return(cart, nil)
			mockCartRepo.EXPECT().FindLinesByCart(ctx, cart.ID).Return(lines, nil)
			mockRestaurantRepo.EXPECT().FindRestaurantByID(ctx, restaurantID).Return(restaurant, nil)
			mockAddressRepo.EXPECT().FindAddressByID(ctx, address.ID).Return(address, nil)
			mockOrderRepo.EXPECT().CreateOrder(ctx, mock.AnythingOfType("*entity.Order")).Return(nil)
			mockCartRepo.EXPECT().DeactivateLines(ctx, cart.ID).Return(nil)

			return fn(mockFactory)
		})
	fx.publisher.EXPECT().PublishOrderEvent(ctx, mock.AnythingOfType("*service.OrderEvent")).Return(nil)

	order, err := fx.service.Checkout(ctx, userID, input)

	require.NoError(t, err)
	assert.Equal(t, restaurantID, order.RestaurantID)
	assert.Equal(t, entity.OrderStatusProcessing, order.Status)
	require.Len(t, order.Lines, 1, "inactive cart lines are not snapshotted")
	assert.Equal(t, int64(300), order.Total)
}

func TestOrderService_Checkout_EmptyCart(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	userID := uuid.New()
	cart := &entity.Cart{ID: uuid.New(), UserID: userID, Status: entity.CartStatusOpen}
	input := &usecase.CheckoutInput{
		AddressID:     uuid.New(),
		PaymentMethod: entity.PaymentMethodCash,
	}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockCartRepo := mockRepo.NewMockCartRepository(t)

			mockFactory.EXPECT().CartRepo().Return(mockCartRepo)
			mockCartRepo.EXPECT().FindCartByUser(ctx, userID).Return(cart, nil)
			mockCartRepo.EXPECT().FindLinesByCart(ctx, cart.ID).Return(nil, nil)

			return fn(mockFactory)
		})

	order, err := fx.service.Checkout(ctx, userID, input)

	require.Error(t, err)
	assert.Nil(t, order)
	assert.True(t, errors.Is(err, domainerrors.ErrEmptyOrder))
}

func TestOrderService_Checkout_WaitsForInFlightCartMutation(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	userID := uuid.New()
	cart := &entity.Cart{ID: uuid.New(), UserID: userID, Status: entity.CartStatusOpen}
	input := &usecase.CheckoutInput{
		AddressID:     uuid.New(),
		PaymentMethod: entity.PaymentMethodCash,
	}

	var lookups atomic.Int32

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockCartRepo := mockRepo.NewMockCartRepository(t)

			mockFactory.EXPECT().CartRepo().Return(mockCartRepo)
			mockCartRepo.EXPECT().FindCartByUser(ctx, userID).Return(cart, nil)
			mockCartRepo.EXPECT().FindLinesByCart(ctx, cart.ID).RunAndReturn(func(context.Context, uuid.UUID) ([]*entity.CartLine, error) {
				lookups.Add(1)

				return nil, nil
			})

			return fn(mockFactory)
		})

	// Simulate an add still in flight on the same cart.
	release := fx.guard.Lock(cart.ID)

	checkoutDone := make(chan error, 1)
	go func() {
		_, err := fx.service.Checkout(ctx, userID, input)
		checkoutDone <- err
	}()

	select {
	case <-checkoutDone:
		t.Fatal("checkout snapshotted the cart while a mutation held the guard")
	case <-time.After(50 * time.Millisecond):
	}
	assert.Equal(t, int32(0), lookups.Load(), "checkout must not read cart lines before the guard is released")

	release()

	err := <-checkoutDone
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrEmptyOrder))
	assert.Equal(t, int32(1), lookups.Load())
}

func TestOrderService_Checkout_AddressOutOfRange(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	userID := uuid.New()
	restaurantID := uuid.New()
	cart := &entity.Cart{ID: uuid.New(), UserID: userID, Status: entity.CartStatusOpen}
	lines := []*entity.CartLine{
		{ID: uuid.New(), CartID: cart.ID, ProductID: uuid.New(), RestaurantID: restaurantID, Quantity: 1, LineSubtotal: 150, Status: entity.LineStatusActive},
	}
	restaurant := &entity.Restaurant{
		ID:             restaurantID,
		Latitude:       25.0340,
		Longitude:      121.5645,
		DeliveryRadius: 1000,
		IsOpen:         true,
	}
	farAway := &entity.Address{
		ID:        uuid.New(),
		UserID:    userID,
		Latitude:  24.1469,
		Longitude: 120.6839,
	}
	input := &usecase.CheckoutInput{
		AddressID:     farAway.ID,
		PaymentMethod: entity.PaymentMethodCash,
	}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockCartRepo := mockRepo.NewMockCartRepository(t)
			mockRestaurantRepo := mockRepo.NewMockRestaurantRepository(t)
			mockAddressRepo := mockRepo.NewMockAddressRepository(t)

			mockFactory.EXPECT().CartRepo().Return(mockCartRepo)
			mockFactory.EXPECT().RestaurantRepo().Return(mockRestaurantRepo)
			mockFactory.EXPECT().AddressRepo().Return(mockAddressRepo)
			mockCartRepo.EXPECT().FindCartByUser(ctx, userID).Return(cart, nil)
			mockCartRepo.EXPECT().FindLinesByCart(ctx, cart.ID).Return(lines, nil)
			mockRestaurantRepo.EXPECT().FindRestaurantByID(ctx, restaurantID).Return(restaurant, nil)
			mockAddressRepo.EXPECT().FindAddressByID(ctx, farAway.ID).Return(farAway, nil)

			return fn(mockFactory)
		})

	order, err := fx.service.Checkout(ctx, userID, input)

	require.Error(t, err)
	assert.Nil(t, order)
	assert.True(t, errors.Is(err, domainerrors.ErrAddressOutOfRange))
}

func TestOrderService_Checkout_RestaurantClosed(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	userID := uuid.New()
	restaurantID := uuid.New()
	cart := &entity.Cart{ID: uuid.New(), UserID: userID, Status: entity.CartStatusOpen}
	lines := []*entity.CartLine{
		{ID: uuid.New(), CartID: cart.ID, ProductID: uuid.New(), RestaurantID: restaurantID, Quantity: 1, LineSubtotal: 150, Status: entity.LineStatusActive},
	}
	restaurant := &entity.Restaurant{ID: restaurantID, IsOpen: false}
	input := &usecase.CheckoutInput{
		AddressID:     uuid.New(),
		PaymentMethod: entity.PaymentMethodCash,
	}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockCartRepo := mockRepo.NewMockCartRepository(t)
			mockRestaurantRepo := mockRepo.NewMockRestaurantRepository(t)

			mockFactory.EXPECT().CartRepo().Return(mockCartRepo)
			mockFactory.EXPECT().RestaurantRepo().Return(mockRestaurantRepo)
			mockCartRepo.EXPECT().FindCartByUser(ctx, userID).Return(cart, nil)
			mockCartRepo.EXPECT().FindLinesByCart(ctx, cart.ID).Return(lines, nil)
			mockRestaurantRepo.EXPECT().FindRestaurantByID(ctx, restaurantID).Return(restaurant, nil)

			return fn(mockFactory)
		})

	order, err := fx.service.Checkout(ctx, userID, input)

	require.Error(t, err)
	assert.Nil(t, order)
	assert.True(t, errors.Is(err, domainerrors.ErrRestaurantClosed))
}

func TestOrderService_Checkout_PublishFailureDoesNotFailCheckout(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	userID := uuid.New()
	restaurantID := uuid.New()
	cart := &entity.Cart{ID: uuid.New(), UserID: userID, Status: entity.CartStatusOpen}
	lines := []*entity.CartLine{
		{ID: uuid.New(), CartID: cart.ID, ProductID: uuid.New(), RestaurantID: restaurantID, Quantity: 1, LineSubtotal: 150, Status: entity.LineStatusActive},
	}
	restaurant := &entity.Restaurant{
		ID:             restaurantID,
		Latitude:       25.0340,
		Longitude:      121.5645,
		DeliveryRadius: 3000,
		IsOpen:         true,
	}
	address := &entity.Address{
		ID:        uuid.New(),
		UserID:    userID,
		Latitude:  25.0330,
		Longitude: 121.5654,
	}
	input := &usecase.CheckoutInput{
		AddressID:     address.ID,
		PaymentMethod: entity.PaymentMethodCash,
	}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockCartRepo := mockRepo.NewMockCartRepository(t)
			mockRestaurantRepo := mockRepo.NewMockRestaurantRepository(t)
			mockAddressRepo := mockRepo.NewMockAddressRepository(t)
			mockOrderRepo := mockRepo.NewMockOrderRepository(t)

			mockFactory.EXPECT().CartRepo().Return(mockCartRepo)
			mockFactory.EXPECT().RestaurantRepo().Return(mockRestaurantRepo)
			mockFactory.EXPECT().AddressRepo().Return(mockAddressRepo)
			mockFactory.EXPECT().OrderRepo().Return(mockOrderRepo)
			mockCartRepo.EXPECT().FindCartByUser(ctx, userID).Return(cart, nil)
			mockCartRepo.EXPECT().FindLinesByCart(ctx, cart.ID).Return(lines, nil)
			mockRestaurantRepo.EXPECT().FindRestaurantByID(ctx, restaurantID).Return(restaurant, nil)
			mockAddressRepo.EXPECT().FindAddressByID(ctx, address.ID).Return(address, nil)
			mockOrderRepo.EXPECT().CreateOrder(ctx, mock.AnythingOfType("*entity.Order")).Return(nil)
			mockCartRepo.EXPECT().DeactivateLines(ctx, cart.ID).Return(nil)

			return fn(mockFactory)
		})
	fx.publisher.EXPECT().PublishOrderEvent(ctx, mock.AnythingOfType("*service.OrderEvent")).Return(errors.New("broker unavailable"))

	order, err := fx.service.Checkout(ctx, userID, input)

	require.NoError(t, err, "publishing is best-effort once the order is committed")
	assert.NotNil(t, order)
}

func TestOrderService_GetOrder_ForeignOrderIsForbidden(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	order := processingOrder(uuid.New())

	fx.orderRepo.EXPECT().FindOrderByID(ctx, order.ID).Return(order, nil)

	result, err := fx.service.GetOrder(ctx, uuid.New(), order.ID)

	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
}

func TestOrderService_GetOrder_NotFound(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	orderID := uuid.New()

	fx.orderRepo.EXPECT().FindOrderByID(ctx, orderID).Return(nil, repository.ErrOrderNotFound)

	result, err := fx.service.GetOrder(ctx, uuid.New(), orderID)

	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, domainerrors.ErrOrderNotFound))
}
