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
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// addressServiceFixtures holds all test dependencies for address service tests.
type addressServiceFixtures struct {
	service     usecase.AddressUsecase
	txManager   *mockRepo.MockTransactionManager
	addressRepo *mockRepo.MockAddressRepository
}

func createTestAddressService(t *testing.T) addressServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	addressRepo := mockRepo.NewMockAddressRepository(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	service := NewAddressService(AddressServiceParams{
		TxManager:   txManager,
		AddressRepo: addressRepo,
		Logger:      logger,
	})

	return addressServiceFixtures{
		service:     service,
		txManager:   txManager,
		addressRepo: addressRepo,
	}
}

func TestAddressService_CreateAddress_FirstAddressBecomesDefault(t *testing.T) {
	fx := createTestAddressService(t)

	ctx := context.Background()
	userID := uuid.New()
	input := &usecase.AddressInput{
		Label:       "Home",
		FullAddress: "No. 7, Section 5, Xinyi Road, Taipei",
		Latitude:    25.0330,
		Longitude:   121.5654,
		IsDefault:   false,
	}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockAddressRepo := mockRepo.NewMockAddressRepository(t)

			mockFactory.EXPECT().AddressRepo().Return(mockAddressRepo)
			mockAddressRepo.EXPECT().CountAddressesByUser(ctx, userID).Return(int64(0), nil)
			mockAddressRepo.EXPECT().CreateAddress(ctx, mock.AnythingOfType("*entity.Address")).Return(nil)

			return fn(mockFactory)
		})

	address, err := fx.service.CreateAddress(ctx, userID, input)

	require.NoError(t, err)
	assert.True(t, address.IsDefault, "the first saved address becomes the default even when not requested")
	assert.Equal(t, userID, address.UserID)
}

func TestAddressService_CreateAddress_NewDefaultDemotesPrevious(t *testing.T) {
	fx := createTestAddressService(t)

	ctx := context.Background()
	userID := uuid.New()
	previous := &entity.Address{ID: uuid.New(), UserID: userID, Label: "Home", IsDefault: true}
	input := &usecase.AddressInput{
		Label:       "Office",
		FullAddress: "No. 100, Roosevelt Road, Taipei",
		Latitude:    25.0170,
		Longitude:   121.5331,
		IsDefault:   true,
	}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockAddressRepo := mockRepo.NewMockAddressRepository(t)

			mockFactory.EXPECT().AddressRepo().Return(mockAddressRepo)
			mockAddressRepo.EXPECT().CountAddressesByUser(ctx, userID).Return(int64(1), nil)
			mockAddressRepo.EXPECT().FindDefaultAddressByUser(ctx, userID).Return(previous, nil)
			mockAddressRepo.EXPECT().UpdateAddress(ctx, previous).Return(nil)
			mockAddressRepo.EXPECT().CreateAddress(ctx, mock.AnythingOfType("*entity.Address")).Return(nil)

			return fn(mockFactory)
		})

	address, err := fx.service.CreateAddress(ctx, userID, input)

	require.NoError(t, err)
	assert.True(t, address.IsDefault)
	assert.False(t, previous.IsDefault, "the previous default is demoted in the same transaction")
}

func TestAddressService_SetDefaultAddress_AlreadyDefaultIsNoop(t *testing.T) {
	fx := createTestAddressService(t)

	ctx := context.Background()
	userID := uuid.New()
	address := &entity.Address{ID: uuid.New(), UserID: userID, IsDefault: true}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockAddressRepo := mockRepo.NewMockAddressRepository(t)

			mockFactory.EXPECT().AddressRepo().Return(mockAddressRepo)
			mockAddressRepo.EXPECT().FindAddressByID(ctx, address.ID).Return(address, nil)

			return fn(mockFactory)
		})

	err := fx.service.SetDefaultAddress(ctx, userID, address.ID)

	require.NoError(t, err)
}

func TestAddressService_SetDefaultAddress_ForeignAddressIsRejected(t *testing.T) {
	fx := createTestAddressService(t)

	ctx := context.Background()
	userID := uuid.New()
	foreign := &entity.Address{ID: uuid.New(), UserID: uuid.New(), IsDefault: false}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockAddressRepo := mockRepo.NewMockAddressRepository(t)

			mockFactory.EXPECT().AddressRepo().Return(mockAddressRepo)
			mockAddressRepo.EXPECT().FindAddressByID(ctx, foreign.ID).Return(foreign, nil)

			return fn(mockFactory)
		})

	err := fx.service.SetDefaultAddress(ctx, userID, foreign.ID)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrAddressOwnershipViolation))
}

func TestAddressService_DeleteAddress_DefaultDeletionPromotesRemaining(t *testing.T) {
	fx := createTestAddressService(t)

	ctx := context.Background()
	userID := uuid.New()
	deleted := &entity.Address{ID: uuid.New(), UserID: userID, Label: "Home", IsDefault: true}
	remaining := &entity.Address{ID: uuid.New(), UserID: userID, Label: "Office", IsDefault: false}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockAddressRepo := mockRepo.NewMockAddressRepository(t)

			mockFactory.EXPECT().AddressRepo().Return(mockAddressRepo)
			mockAddressRepo.EXPECT().FindAddressByID(ctx, deleted.ID).Return(deleted, nil)
			mockAddressRepo.EXPECT().DeleteAddress(ctx, deleted.ID).Return(nil)
			mockAddressRepo.EXPECT().FindAddressesByUser(ctx, userID).Return([]*entity.Address{remaining}, nil)
			mockAddressRepo.EXPECT().UpdateAddress(ctx, remaining).Return(nil)

			return fn(mockFactory)
		})

	err := fx.service.DeleteAddress(ctx, userID, deleted.ID)

	require.NoError(t, err)
	assert.True(t, remaining.IsDefault, "the most recent remaining address becomes the new default")
}

func TestAddressService_DeleteAddress_NotFound(t *testing.T) {
	fx := createTestAddressService(t)

	ctx := context.Background()
	userID := uuid.New()
	addressID := uuid.New()

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockAddressRepo := mockRepo.NewMockAddressRepository(t)

			mockFactory.EXPECT().AddressRepo().Return(mockAddressRepo)
			mockAddressRepo.EXPECT().FindAddressByID(ctx, addressID).Return(nil, repository.ErrAddressNotFound)

			return fn(mockFactory)
		})

	err := fx.service.DeleteAddress(ctx, userID, addressID)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrAddressNotFound))
}

func TestAddressService_ListAddresses_ReturnsUserAddresses(t *testing.T) {
	fx := createTestAddressService(t)

	ctx := context.Background()
	userID := uuid.New()
	addresses := []*entity.Address{
		{ID: uuid.New(), UserID: userID, Label: "Office"},
		{ID: uuid.New(), UserID: userID, Label: "Home", IsDefault: true},
	}

	fx.addressRepo.EXPECT().FindAddressesByUser(ctx, userID).Return(addresses, nil)

	result, err := fx.service.ListAddresses(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, addresses, result)
}
