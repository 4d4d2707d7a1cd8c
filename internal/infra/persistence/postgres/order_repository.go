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

// orderRepository implements the repository.OrderRepository interface.
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{
		db: db,
	}
}

// CreateOrder persists a new order together with its lines.
func (repo *orderRepository) CreateOrder(ctx context.Context, order *entity.Order) error {
	orderM := fromOrderDomain(order)

	if err := repo.db.WithContext(ctx).Create(orderM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("invalid user, restaurant or address reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create order")
	}

	order.ID = orderM.ID
	order.CreatedAt = orderM.CreatedAt
	order.UpdatedAt = orderM.UpdatedAt

	return nil
}

// FindOrderByID retrieves an order with its lines by its unique ID.
func (repo *orderRepository) FindOrderByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var orderM model.OrderModel

	if err := repo.db.WithContext(ctx).
		Preload("Lines").
		Where("id = ?", id).
		First(&orderM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order by ID")
	}

	return toOrderDomain(&orderM), nil
}

// FindOrdersByUser retrieves all orders of a user, newest first.
func (repo *orderRepository) FindOrdersByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	var orderModels []*model.OrderModel

	if err := repo.db.WithContext(ctx).
		Preload("Lines").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orderModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find orders by user")
	}

	orders := make([]*entity.Order, 0, len(orderModels))
	for _, orderM := range orderModels {
		orders = append(orders, toOrderDomain(orderM))
	}

	return orders, nil
}

// ReplaceOrder atomically replaces an order's line set, address, payment method
// and discount. Lines absent from the given order are deleted, not kept.
func (repo *orderRepository) ReplaceOrder(ctx context.Context, order *entity.Order) error {
	orderM := fromOrderDomain(order)

	result := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("id = ?", order.ID).
		Updates(map[string]any{
			"address_id":     orderM.AddressID,
			"payment_method": orderM.PaymentMethod,
			"discount_code":  orderM.DiscountCode,
			"total":          orderM.Total,
			"updated_at":     orderM.UpdatedAt,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update order")
	}
	if result.RowsAffected == 0 {
		return repository.ErrOrderNotFound
	}

	if err := repo.db.WithContext(ctx).
		Where("order_id = ?", order.ID).
		Delete(&model.OrderLineModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete replaced order lines")
	}

	if len(orderM.Lines) > 0 {
		if err := repo.db.WithContext(ctx).Create(orderM.Lines).Error; err != nil {
			return domainerrors.NewDatabaseExecuteError(err, "failed to insert replacement order lines")
		}
	}

	return nil
}

// toOrderDomain converts a GORM order model to a domain entity.
func toOrderDomain(orderM *model.OrderModel) *entity.Order {
	lines := make([]*entity.OrderLine, 0, len(orderM.Lines))
	for _, lineM := range orderM.Lines {
		lines = append(lines, &entity.OrderLine{
			ID:           lineM.ID,
			OrderID:      lineM.OrderID,
			ProductID:    lineM.ProductID,
			Quantity:     lineM.Quantity,
			LineSubtotal: lineM.UnitPrice,
			Note:         lineM.Note,
		})
	}

	return &entity.Order{
		ID:            orderM.ID,
		UserID:        orderM.UserID,
		RestaurantID:  orderM.RestaurantID,
		AddressID:     orderM.AddressID,
		PaymentMethod: entity.PaymentMethod(orderM.PaymentMethod),
		DiscountCode:  orderM.DiscountCode,
		Note:          orderM.Note,
		Status:        entity.OrderStatus(orderM.Status),
		Total:         orderM.Total,
		Lines:         lines,
		CreatedAt:     orderM.CreatedAt,
		UpdatedAt:     orderM.UpdatedAt,
	}
}

// fromOrderDomain converts a domain order to its GORM model.
func fromOrderDomain(order *entity.Order) *model.OrderModel {
	lines := make([]*model.OrderLineModel, 0, len(order.Lines))
	for _, line := range order.Lines {
		lines = append(lines, &model.OrderLineModel{
			ID:        line.ID,
			OrderID:   line.OrderID,
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.LineSubtotal,
			Note:      line.Note,
		})
	}

	return &model.OrderModel{
		ID:            order.ID,
		UserID:        order.UserID,
		RestaurantID:  order.RestaurantID,
		AddressID:     order.AddressID,
		PaymentMethod: order.PaymentMethod.String(),
		DiscountCode:  order.DiscountCode,
		Note:          order.Note,
		Status:        string(order.Status),
		Total:         order.Total,
		Lines:         lines,
		CreatedAt:     order.CreatedAt,
		UpdatedAt:     order.UpdatedAt,
	}
}
