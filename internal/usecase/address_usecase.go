package usecase

import (
	"context"

	"bites/internal/domain/entity"

	"github.com/google/uuid"
)

// AddressInput carries the mutable fields of a delivery address.
type AddressInput struct {
	Label       string  `json:"label" validate:"required"`
	FullAddress string  `json:"full_address" validate:"required"`
	Latitude    float64 `json:"latitude" validate:"required"`
	Longitude   float64 `json:"longitude" validate:"required"`
	IsDefault   bool    `json:"is_default"`
}

// AddressUsecase manages a user's delivery addresses and the default-address
// invariant: at most one default per user, the first saved address becomes the
// default, and deleting the default promotes another address when one remains.
type AddressUsecase interface {
	// ListAddresses returns all of the user's addresses, newest first.
	ListAddresses(ctx context.Context, userID uuid.UUID) ([]*entity.Address, error)

	// CreateAddress saves a new address. The user's first address becomes the
	// default regardless of the input flag.
	CreateAddress(ctx context.Context, userID uuid.UUID, input *AddressInput) (*entity.Address, error)

	// UpdateAddress updates an address owned by the user.
	UpdateAddress(ctx context.Context, userID, addressID uuid.UUID, input *AddressInput) error

	// SetDefaultAddress makes the given address the user's default, demoting
	// the previous default in the same transaction.
	SetDefaultAddress(ctx context.Context, userID, addressID uuid.UUID) error

	// DeleteAddress removes an address owned by the user. When the default is
	// deleted, the most recent remaining address is promoted.
	DeleteAddress(ctx context.Context, userID, addressID uuid.UUID) error
}
