package impl

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"bites/config"
	deliverycontext "bites/internal/delivery/context"
	"bites/internal/domain/entity"
	domainerrors "bites/internal/domain/errors"
	"bites/internal/domain/repository"
	"bites/internal/domain/service"
	"bites/internal/usecase"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// orderService implements the OrderUsecase interface.
type orderService struct {
	txManager      repository.TransactionManager
	orderRepo      repository.OrderRepository
	eventPublisher service.EventPublisher
	cartGuard      *CartGuard
	config         *config.Config
	logger         *slog.Logger
}

// OrderServiceParams holds dependencies for OrderService, injected by Fx.
type OrderServiceParams struct {
	fx.In

	TxManager      repository.TransactionManager
	OrderRepo      repository.OrderRepository
	EventPublisher service.EventPublisher
	CartGuard      *CartGuard
	Config         *config.Config
	Logger         *slog.Logger
}

// NewOrderService creates a new order service instance
func NewOrderService(params OrderServiceParams) usecase.OrderUsecase {
	return &orderService{
		txManager:      params.TxManager,
		orderRepo:      params.OrderRepo,
		eventPublisher: params.EventPublisher,
		cartGuard:      params.CartGuard,
		config:         params.Config,
		logger:         params.Logger,
	}
}

// Checkout converts the user's active cart into an order. Order creation and
// cart-line deactivation happen in one transaction; the order event is
// published after commit, best-effort.
func (s *orderService) Checkout(ctx context.Context, userID uuid.UUID, input *usecase.CheckoutInput) (*entity.Order, error) {
	if userID == uuid.Nil {
		return nil, errors.Wrap(domainerrors.ErrNotAuthenticated, "checkout requires a signed-in user")
	}
	if input == nil || !input.PaymentMethod.IsValid() {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "unsupported payment method")
	}

	var order *entity.Order

	err := s.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		cartRepo := repoFactory.CartRepo()

		cart, err := cartRepo.FindCartByUser(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrCartNotFound) {
				return errors.Wrap(domainerrors.ErrEmptyOrder, "user has no open cart")
			}

			return errors.Wrap(err, "failed to find cart")
		}

		// Hold the cart guard while the cart is snapshotted and drained, so a
		// concurrent add cannot land between the line read and the deactivation.
		unlock := s.cartGuard.Lock(cart.ID)
		defer unlock()

		lines, err := cartRepo.FindLinesByCart(ctx, cart.ID)
		if err != nil {
			return errors.Wrap(err, "failed to load cart lines")
		}

		active := filterActive(lines)
		if len(active) == 0 {
			return errors.Wrap(domainerrors.ErrEmptyOrder, "cart has no active lines")
		}
		if !entity.HomogeneousScope(active) {
			s.logger.Error("cart active lines reference more than one restaurant",
				slog.String("cartID", cart.ID.String()),
			)

			return errors.Wrap(domainerrors.ErrCartInconsistent, "active lines reference more than one restaurant")
		}

		scope, _ := entity.RestaurantScope(active)
		restaurant, err := repoFactory.RestaurantRepo().FindRestaurantByID(ctx, scope)
		if err != nil {
			if errors.Is(err, repository.ErrRestaurantNotFound) {
				return errors.Wrap(domainerrors.ErrRestaurantNotFound, "cart restaurant no longer exists")
			}

			return errors.Wrap(err, "failed to find restaurant")
		}
		if !restaurant.IsOpen {
			return errors.Wrap(domainerrors.ErrRestaurantClosed, "restaurant is not accepting orders")
		}

		address, err := s.resolveUserAddress(ctx, repoFactory.AddressRepo(), userID, input.AddressID)
		if err != nil {
			return err
		}
		if !s.withinDeliveryRange(restaurant, address) {
			return errors.Wrap(domainerrors.ErrAddressOutOfRange, "address is outside the restaurant's delivery radius")
		}

		order = buildOrderFromCart(userID, restaurant.ID, active, input)
		if err := repoFactory.OrderRepo().CreateOrder(ctx, order); err != nil {
			return errors.Wrap(err, "failed to create order")
		}

		if err := cartRepo.DeactivateLines(ctx, cart.ID); err != nil {
			return errors.Wrap(err, "failed to clear cart after checkout")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishOrderEvent(ctx, service.EventTypeOrderCreated, order)

	return order, nil
}

// GetOrder returns one of the user's orders with its lines.
func (s *orderService) GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*entity.Order, error) {
	if userID == uuid.Nil {
		return nil, errors.Wrap(domainerrors.ErrNotAuthenticated, "order access requires a signed-in user")
	}

	order, err := s.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, errors.Wrap(domainerrors.ErrOrderNotFound, "order not found")
		}

		return nil, errors.Wrap(err, "failed to find order")
	}
	if order.UserID != userID {
		return nil, errors.Wrap(domainerrors.ErrForbidden, "order belongs to another user")
	}

	return order, nil
}

// ListOrders returns all of the user's orders, newest first.
func (s *orderService) ListOrders(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	if userID == uuid.Nil {
		return nil, errors.Wrap(domainerrors.ErrNotAuthenticated, "order access requires a signed-in user")
	}

	orders, err := s.orderRepo.FindOrdersByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find orders by user")
	}

	return orders, nil
}

// ReconcileOrderEdit validates a locally edited line set against the original
// order and produces the full-replace payload. No I/O happens here: every
// failure is detected before any backend call would be issued.
func (s *orderService) ReconcileOrderEdit(original *entity.Order, input *usecase.OrderEditInput) (*usecase.OrderReplacePayload, error) {
	if !original.Status.Editable() {
		return nil, errors.Wrapf(domainerrors.ErrOrderNotEditable, "order is %s", original.Status)
	}
	if input == nil || len(input.Lines) == 0 {
		return nil, errors.Wrap(domainerrors.ErrEmptyOrder, "edit removed every line of the order")
	}
	if input.AddressID == uuid.Nil {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "a delivery address must be selected")
	}
	if !input.PaymentMethod.IsValid() {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "unsupported payment method")
	}

	seen := make(map[uuid.UUID]struct{}, len(input.Lines))
	for i, line := range input.Lines {
		if line.ProductID == uuid.Nil {
			return nil, errors.Wrapf(domainerrors.ErrInvalidOrderLine.WithDetails(lineRef(i, line)), "line %d references no product", i+1)
		}
		if line.Quantity < 1 {
			return nil, errors.Wrapf(domainerrors.ErrInvalidOrderLine.WithDetails(lineRef(i, line)), "line %d has quantity %d", i+1, line.Quantity)
		}
		if _, dup := seen[line.ProductID]; dup {
			return nil, errors.Wrapf(domainerrors.ErrInvalidOrderLine.WithDetails(lineRef(i, line)), "line %d duplicates a product", i+1)
		}
		seen[line.ProductID] = struct{}{}

		if line.LineID != nil && original.LineByID(*line.LineID) == nil {
			return nil, errors.Wrapf(domainerrors.ErrInvalidOrderLine.WithDetails(lineRef(i, line)), "line %d retains an unknown line ID", i+1)
		}
	}

	return &usecase.OrderReplacePayload{
		OrderID:       original.ID,
		Lines:         input.Lines,
		AddressID:     input.AddressID,
		PaymentMethod: input.PaymentMethod,
		DiscountCode:  input.DiscountCode,
	}, nil
}

// SubmitOrderEdit reconciles and atomically applies an order edit as a single
// full-replace update, then publishes an order-updated event best-effort.
func (s *orderService) SubmitOrderEdit(ctx context.Context, userID, orderID uuid.UUID, input *usecase.OrderEditInput) (*entity.Order, error) {
	if userID == uuid.Nil {
		return nil, errors.Wrap(domainerrors.ErrNotAuthenticated, "order editing requires a signed-in user")
	}

	var updated *entity.Order

	err := s.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		orderRepo := repoFactory.OrderRepo()

		order, err := orderRepo.FindOrderByID(ctx, orderID)
		if err != nil {
			if errors.Is(err, repository.ErrOrderNotFound) {
				return errors.Wrap(domainerrors.ErrOrderNotFound, "order not found")
			}

			return errors.Wrap(err, "failed to find order")
		}
		if order.UserID != userID {
			return errors.Wrap(domainerrors.ErrForbidden, "order belongs to another user")
		}

		payload, err := s.ReconcileOrderEdit(order, input)
		if err != nil {
			return err
		}

		if _, err := s.resolveUserAddress(ctx, repoFactory.AddressRepo(), userID, payload.AddressID); err != nil {
			return err
		}

		replacement, err := buildReplacementLines(ctx, repoFactory.ProductRepo(), order, payload.Lines)
		if err != nil {
			return err
		}

		order.Lines = replacement
		order.AddressID = payload.AddressID
		order.PaymentMethod = payload.PaymentMethod
		order.DiscountCode = payload.DiscountCode
		order.Total = sumLineSubtotals(replacement)
		order.UpdatedAt = time.Now()

		if err := orderRepo.ReplaceOrder(ctx, order); err != nil {
			return errors.Wrap(err, "failed to replace order")
		}
		updated = order

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishOrderEvent(ctx, service.EventTypeOrderUpdated, updated)

	return updated, nil
}

// resolveUserAddress loads an address and verifies it belongs to the user.
func (s *orderService) resolveUserAddress(ctx context.Context, addressRepo repository.AddressRepository, userID, addressID uuid.UUID) (*entity.Address, error) {
	address, err := addressRepo.FindAddressByID(ctx, addressID)
	if err != nil {
		if errors.Is(err, repository.ErrAddressNotFound) {
			return nil, errors.Wrap(domainerrors.ErrAddressNotFound, "selected address not found")
		}

		return nil, errors.Wrap(err, "failed to find address")
	}
	if address.UserID != userID {
		return nil, errors.Wrap(domainerrors.ErrAddressOwnershipViolation, "selected address belongs to another user")
	}

	return address, nil
}

// withinDeliveryRange checks the haversine distance between the restaurant and
// the delivery address against the restaurant's radius, falling back to the
// configured default. A non-positive radius disables the check.
func (s *orderService) withinDeliveryRange(restaurant *entity.Restaurant, address *entity.Address) bool {
	radius := restaurant.DeliveryRadius
	if radius <= 0 && s.config != nil && s.config.Delivery != nil {
		radius = s.config.Delivery.DefaultRadiusMeters
	}
	if radius <= 0 {
		return true
	}

	distance := geo.DistanceHaversine(
		orb.Point{restaurant.Longitude, restaurant.Latitude},
		orb.Point{address.Longitude, address.Latitude},
	)

	return distance <= radius
}

// publishOrderEvent emits an order lifecycle event. Publishing is best-effort:
// the order mutation has already committed, so a publish failure is only logged.
func (s *orderService) publishOrderEvent(ctx context.Context, eventType string, order *entity.Order) {
	if s.eventPublisher == nil || order == nil {
		return
	}

	event := &service.OrderEvent{
		RequestID:    deliverycontext.GetRequestIDFromContext(ctx),
		EventType:    eventType,
		OrderID:      order.ID.String(),
		UserID:       order.UserID.String(),
		RestaurantID: order.RestaurantID.String(),
		Total:        order.Total,
		LineCount:    len(order.Lines),
	}

	if err := s.eventPublisher.PublishOrderEvent(ctx, event); err != nil {
		s.logger.Warn("order event publish failed",
			slog.String("orderID", event.OrderID),
			slog.String("eventType", eventType),
			slog.Any("error", err),
		)
	}
}

// buildOrderFromCart snapshots the active cart lines into a new order.
func buildOrderFromCart(userID, restaurantID uuid.UUID, active []*entity.CartLine, input *usecase.CheckoutInput) *entity.Order {
	order := &entity.Order{
		ID:            uuid.New(),
		UserID:        userID,
		RestaurantID:  restaurantID,
		AddressID:     input.AddressID,
		PaymentMethod: input.PaymentMethod,
		DiscountCode:  input.DiscountCode,
		Note:          input.Note,
		Status:        entity.OrderStatusProcessing,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	for _, line := range active {
		order.Lines = append(order.Lines, &entity.OrderLine{
			ID:           uuid.New(),
			OrderID:      order.ID,
			ProductID:    line.ProductID,
			Quantity:     line.Quantity,
			LineSubtotal: line.LineSubtotal,
		})
	}
	order.Total = sumLineSubtotals(order.Lines)

	return order
}

// buildReplacementLines materializes the reconciled payload lines into order
// lines, re-pricing each from the current product and verifying that every
// product still belongs to the order's restaurant.
func buildReplacementLines(ctx context.Context, productRepo repository.ProductRepository, order *entity.Order, lines []*usecase.OrderEditLine) ([]*entity.OrderLine, error) {
	replacement := make([]*entity.OrderLine, 0, len(lines))
	for i, line := range lines {
		product, err := productRepo.FindProductByID(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return nil, errors.Wrapf(domainerrors.ErrInvalidOrderLine.WithDetails(lineRef(i, line)), "line %d references an unknown product", i+1)
			}

			return nil, errors.Wrap(err, "failed to find product")
		}
		if product.RestaurantID != order.RestaurantID {
			return nil, errors.Wrapf(domainerrors.ErrInvalidOrderLine.WithDetails(lineRef(i, line)), "line %d references a product of another restaurant", i+1)
		}

		id := uuid.New()
		if line.LineID != nil {
			id = *line.LineID
		}

		replacement = append(replacement, &entity.OrderLine{
			ID:           id,
			OrderID:      order.ID,
			ProductID:    line.ProductID,
			Quantity:     line.Quantity,
			LineSubtotal: product.Price * int64(line.Quantity),
			Note:         line.Note,
		})
	}

	return replacement, nil
}

func sumLineSubtotals(lines []*entity.OrderLine) int64 {
	var total int64
	for _, line := range lines {
		total += line.LineSubtotal
	}

	return total
}

func lineRef(index int, line *usecase.OrderEditLine) string {
	return "line " + strconv.Itoa(index+1) + " (product " + line.ProductID.String() + ")"
}
