package postgres

import (
	"context"

	"bites/internal/domain/entity"
	domainerrors "bites/internal/domain/errors"
	"bites/internal/domain/repository"
	"bites/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// cartRepository implements the repository.CartRepository interface.
type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository is the constructor for cartRepository.
func NewCartRepository(db *gorm.DB) repository.CartRepository {
	return &cartRepository{
		db: db,
	}
}

// GetOrCreateCart returns the user's open cart, creating one if absent.
func (repo *cartRepository) GetOrCreateCart(ctx context.Context, userID uuid.UUID) (*entity.Cart, error) {
	var cartM model.CartModel

	err := repo.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, string(entity.CartStatusOpen)).
		First(&cartM).Error
	if err == nil {
		return toCartDomain(&cartM), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.Wrap(err, "failed to find open cart")
	}

	cartM = model.CartModel{
		UserID: userID,
		Status: string(entity.CartStatusOpen),
	}
	if err := repo.db.WithContext(ctx).Create(&cartM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			// A concurrent request created the cart first; reuse it.
			if err := repo.db.WithContext(ctx).
				Where("user_id = ? AND status = ?", userID, string(entity.CartStatusOpen)).
				First(&cartM).Error; err != nil {
				return nil, errors.Wrap(err, "failed to reload concurrently created cart")
			}

			return toCartDomain(&cartM), nil
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to create cart")
	}

	return toCartDomain(&cartM), nil
}

// FindCartByUser retrieves the user's open cart without creating one.
func (repo *cartRepository) FindCartByUser(ctx context.Context, userID uuid.UUID) (*entity.Cart, error) {
	var cartM model.CartModel

	if err := repo.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, string(entity.CartStatusOpen)).
		First(&cartM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCartNotFound
		}

		return nil, errors.Wrap(err, "failed to find cart by user")
	}

	return toCartDomain(&cartM), nil
}

// FindLinesByCart retrieves all lines of a cart, active and inactive.
func (repo *cartRepository) FindLinesByCart(ctx context.Context, cartID uuid.UUID) ([]*entity.CartLine, error) {
	var lineModels []*model.CartLineModel

	if err := repo.db.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Order("created_at ASC").
		Find(&lineModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find cart lines")
	}

	lines := make([]*entity.CartLine, 0, len(lineModels))
	for _, lineM := range lineModels {
		lines = append(lines, toCartLineDomain(lineM))
	}

	return lines, nil
}

// FindLineByCartAndProduct looks up the single line for a (cart, product) pair,
// regardless of its active flag.
func (repo *cartRepository) FindLineByCartAndProduct(ctx context.Context, cartID, productID uuid.UUID) (*entity.CartLine, error) {
	var lineM model.CartLineModel

	if err := repo.db.WithContext(ctx).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		First(&lineM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCartLineNotFound
		}

		return nil, errors.Wrap(err, "failed to find cart line by product")
	}

	return toCartLineDomain(&lineM), nil
}

// CreateLine persists the first line for a (cart, product) pair.
func (repo *cartRepository) CreateLine(ctx context.Context, line *entity.CartLine) error {
	lineM := fromCartLineDomain(line)

	if err := repo.db.WithContext(ctx).Create(lineM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateCartLine
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrProductNotFound.WrapMessage("invalid cart or product reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create cart line")
	}

	line.ID = lineM.ID
	line.CreatedAt = lineM.CreatedAt
	line.UpdatedAt = lineM.UpdatedAt

	return nil
}

// UpdateLine persists quantity, subtotal and status changes of an existing line.
func (repo *cartRepository) UpdateLine(ctx context.Context, line *entity.CartLine) error {
	lineM := fromCartLineDomain(line)

	result := repo.db.WithContext(ctx).
		Model(&model.CartLineModel{}).
		Where("id = ?", line.ID).
		Updates(map[string]any{
			"quantity":   lineM.Quantity,
			"unit_price": lineM.UnitPrice,
			"status":     lineM.Status,
			"updated_at": lineM.UpdatedAt,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update cart line")
	}
	if result.RowsAffected == 0 {
		return repository.ErrCartLineNotFound
	}

	return nil
}

// CountActiveLines returns the number of active lines in a cart.
func (repo *cartRepository) CountActiveLines(ctx context.Context, cartID uuid.UUID) (int64, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.CartLineModel{}).
		Where("cart_id = ? AND status = ?", cartID, string(entity.LineStatusActive)).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count active cart lines")
	}

	return count, nil
}

// DeactivateLines soft-deactivates every active line of a cart.
func (repo *cartRepository) DeactivateLines(ctx context.Context, cartID uuid.UUID) error {
	if err := repo.db.WithContext(ctx).
		Model(&model.CartLineModel{}).
		Where("cart_id = ? AND status = ?", cartID, string(entity.LineStatusActive)).
		Update("status", string(entity.LineStatusInactive)).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to deactivate cart lines")
	}

	return nil
}

// toCartDomain converts a GORM cart model to a domain entity.
func toCartDomain(cartM *model.CartModel) *entity.Cart {
	return &entity.Cart{
		ID:        cartM.ID,
		UserID:    cartM.UserID,
		Status:    entity.CartStatus(cartM.Status),
		CreatedAt: cartM.CreatedAt,
		UpdatedAt: cartM.UpdatedAt,
	}
}

// toCartLineDomain converts a GORM cart line model to a domain entity.
func toCartLineDomain(lineM *model.CartLineModel) *entity.CartLine {
	return &entity.CartLine{
		ID:           lineM.ID,
		CartID:       lineM.CartID,
		ProductID:    lineM.ProductID,
		RestaurantID: lineM.RestaurantID,
		Quantity:     lineM.Quantity,
		LineSubtotal: lineM.UnitPrice,
		Status:       entity.LineStatus(lineM.Status),
		CreatedAt:    lineM.CreatedAt,
		UpdatedAt:    lineM.UpdatedAt,
	}
}

// fromCartLineDomain converts a domain cart line to its GORM model.
func fromCartLineDomain(line *entity.CartLine) *model.CartLineModel {
	return &model.CartLineModel{
		ID:           line.ID,
		CartID:       line.CartID,
		ProductID:    line.ProductID,
		RestaurantID: line.RestaurantID,
		Quantity:     line.Quantity,
		UnitPrice:    line.LineSubtotal,
		Status:       string(line.Status),
		CreatedAt:    line.CreatedAt,
		UpdatedAt:    line.UpdatedAt,
	}
}
