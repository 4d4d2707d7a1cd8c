package impl

import (
	"context"
	"log/slog"
	"time"

	"bites/internal/domain/entity"
	domainerrors "bites/internal/domain/errors"
	"bites/internal/domain/repository"
	"bites/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// addressService implements the AddressUsecase interface.
type addressService struct {
	txManager   repository.TransactionManager
	addressRepo repository.AddressRepository
	logger      *slog.Logger
}

// AddressServiceParams holds dependencies for AddressService, injected by Fx.
type AddressServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	AddressRepo repository.AddressRepository
	Logger      *slog.Logger
}

// NewAddressService creates a new address service instance
func NewAddressService(params AddressServiceParams) usecase.AddressUsecase {
	return &addressService{
		txManager:   params.TxManager,
		addressRepo: params.AddressRepo,
		logger:      params.Logger,
	}
}

func (s *addressService) ListAddresses(ctx context.Context, userID uuid.UUID) ([]*entity.Address, error) {
	if userID == uuid.Nil {
		return nil, errors.Wrap(domainerrors.ErrNotAuthenticated, "address access requires a signed-in user")
	}

	addresses, err := s.addressRepo.FindAddressesByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find addresses by user")
	}

	return addresses, nil
}

// CreateAddress saves a new address. The first address a user saves becomes
// the default; a later address marked default demotes the previous one inside
// the same transaction.
func (s *addressService) CreateAddress(ctx context.Context, userID uuid.UUID, input *usecase.AddressInput) (*entity.Address, error) {
	if userID == uuid.Nil {
		return nil, errors.Wrap(domainerrors.ErrNotAuthenticated, "address access requires a signed-in user")
	}
	if input == nil {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "address payload is required")
	}

	address := &entity.Address{
		ID:          uuid.New(),
		UserID:      userID,
		Label:       input.Label,
		FullAddress: input.FullAddress,
		Latitude:    input.Latitude,
		Longitude:   input.Longitude,
		IsDefault:   input.IsDefault,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	err := s.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		addressRepo := repoFactory.AddressRepo()

		count, err := addressRepo.CountAddressesByUser(ctx, userID)
		if err != nil {
			return errors.Wrap(err, "failed to count addresses")
		}
		if count == 0 {
			address.IsDefault = true
		} else if address.IsDefault {
			if err := s.demoteDefault(ctx, addressRepo, userID); err != nil {
				return err
			}
		}

		if err := addressRepo.CreateAddress(ctx, address); err != nil {
			return errors.Wrap(err, "failed to create address")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return address, nil
}

func (s *addressService) UpdateAddress(ctx context.Context, userID, addressID uuid.UUID, input *usecase.AddressInput) error {
	if userID == uuid.Nil {
		return errors.Wrap(domainerrors.ErrNotAuthenticated, "address access requires a signed-in user")
	}
	if input == nil {
		return errors.Wrap(domainerrors.ErrValidationFailed, "address payload is required")
	}

	return s.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		addressRepo := repoFactory.AddressRepo()

		address, err := s.findUserAddress(ctx, addressRepo, userID, addressID)
		if err != nil {
			return err
		}

		if input.IsDefault && !address.IsDefault {
			if err := s.demoteDefault(ctx, addressRepo, userID); err != nil {
				return err
			}
		}

		address.Label = input.Label
		address.FullAddress = input.FullAddress
		address.Latitude = input.Latitude
		address.Longitude = input.Longitude
		// An update never silently drops the default flag; demotion only
		// happens through promoting another address or deleting this one.
		if input.IsDefault {
			address.IsDefault = true
		}
		address.UpdatedAt = time.Now()

		if err := addressRepo.UpdateAddress(ctx, address); err != nil {
			return errors.Wrap(err, "failed to update address")
		}

		return nil
	})
}

func (s *addressService) SetDefaultAddress(ctx context.Context, userID, addressID uuid.UUID) error {
	if userID == uuid.Nil {
		return errors.Wrap(domainerrors.ErrNotAuthenticated, "address access requires a signed-in user")
	}

	return s.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		addressRepo := repoFactory.AddressRepo()

		address, err := s.findUserAddress(ctx, addressRepo, userID, addressID)
		if err != nil {
			return err
		}
		if address.IsDefault {
			return nil
		}

		if err := s.demoteDefault(ctx, addressRepo, userID); err != nil {
			return err
		}

		address.IsDefault = true
		address.UpdatedAt = time.Now()

		if err := addressRepo.UpdateAddress(ctx, address); err != nil {
			return errors.Wrap(err, "failed to update address")
		}

		return nil
	})
}

// DeleteAddress removes an address. Deleting the default promotes the most
// recently created remaining address so the user keeps exactly one default.
func (s *addressService) DeleteAddress(ctx context.Context, userID, addressID uuid.UUID) error {
	if userID == uuid.Nil {
		return errors.Wrap(domainerrors.ErrNotAuthenticated, "address access requires a signed-in user")
	}

	return s.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		addressRepo := repoFactory.AddressRepo()

		address, err := s.findUserAddress(ctx, addressRepo, userID, addressID)
		if err != nil {
			return err
		}

		if err := addressRepo.DeleteAddress(ctx, addressID); err != nil {
			return errors.Wrap(err, "failed to delete address")
		}

		if !address.IsDefault {
			return nil
		}

		remaining, err := addressRepo.FindAddressesByUser(ctx, userID)
		if err != nil {
			return errors.Wrap(err, "failed to find addresses by user")
		}
		if len(remaining) == 0 {
			return nil
		}

		promoted := remaining[0]
		promoted.IsDefault = true
		promoted.UpdatedAt = time.Now()

		if err := addressRepo.UpdateAddress(ctx, promoted); err != nil {
			return errors.Wrap(err, "failed to promote replacement default address")
		}

		return nil
	})
}

// findUserAddress loads an address and verifies ownership.
func (s *addressService) findUserAddress(ctx context.Context, addressRepo repository.AddressRepository, userID, addressID uuid.UUID) (*entity.Address, error) {
	address, err := addressRepo.FindAddressByID(ctx, addressID)
	if err != nil {
		if errors.Is(err, repository.ErrAddressNotFound) {
			return nil, errors.Wrap(domainerrors.ErrAddressNotFound, "address not found")
		}

		return nil, errors.Wrap(err, "failed to find address")
	}
	if address.UserID != userID {
		return nil, errors.Wrap(domainerrors.ErrAddressOwnershipViolation, "address belongs to another user")
	}

	return address, nil
}

// demoteDefault clears the user's current default address, if any.
func (s *addressService) demoteDefault(ctx context.Context, addressRepo repository.AddressRepository, userID uuid.UUID) error {
	current, err := addressRepo.FindDefaultAddressByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrAddressNotFound) {
			return nil
		}

		return errors.Wrap(err, "failed to find default address")
	}

	current.IsDefault = false
	current.UpdatedAt = time.Now()

	if err := addressRepo.UpdateAddress(ctx, current); err != nil {
		return errors.Wrap(err, "failed to demote default address")
	}

	return nil
}
