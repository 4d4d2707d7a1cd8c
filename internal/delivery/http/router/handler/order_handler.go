package handler

import (
	"log/slog"
	"net/http"

	"bites/internal/delivery/http/response"
	"bites/internal/domain/entity"
	"bites/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// OrderHandlerParams holds dependencies for OrderHandler, injected by Fx.
type OrderHandlerParams struct {
	fx.In

	OrderUC usecase.OrderUsecase
	Logger  *slog.Logger
}

// OrderHandler holds dependencies for order-related handlers
type OrderHandler struct {
	orderUC usecase.OrderUsecase
	logger  *slog.Logger
}

// NewOrderHandler is the constructor for OrderHandler
func NewOrderHandler(params OrderHandlerParams) *OrderHandler {
	return &OrderHandler{
		orderUC: params.OrderUC,
		logger:  params.Logger,
	}
}

// CheckoutRequest represents the request body for converting the cart into an order
type CheckoutRequest struct {
	AddressID     uuid.UUID `json:"address_id" validate:"required"`
	PaymentMethod string    `json:"payment_method" validate:"required"`
	DiscountCode  string    `json:"discount_code,omitempty"`
	Note          string    `json:"note,omitempty"`
}

// OrderEditLineRequest is a single line of an edited order. line_id is present
// for lines retained from the original order and absent for new lines.
type OrderEditLineRequest struct {
	LineID    *uuid.UUID `json:"line_id,omitempty"`
	ProductID uuid.UUID  `json:"product_id" validate:"required"`
	Quantity  int        `json:"quantity" validate:"required,min=1"`
	Note      string     `json:"note,omitempty"`
}

// EditOrderRequest represents the full edited state of an order, submitted as a whole
type EditOrderRequest struct {
	Lines         []*OrderEditLineRequest `json:"lines" validate:"required,min=1,dive"`
	AddressID     uuid.UUID               `json:"address_id" validate:"required"`
	PaymentMethod string                  `json:"payment_method" validate:"required"`
	DiscountCode  string                  `json:"discount_code,omitempty"`
}

// Checkout handles converting the user's active cart into an order
func (h *OrderHandler) Checkout(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid checkout input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	input := &usecase.CheckoutInput{
		AddressID:     req.AddressID,
		PaymentMethod: entity.PaymentMethod(req.PaymentMethod),
		DiscountCode:  req.DiscountCode,
		Note:          req.Note,
	}

	order, err := h.orderUC.Checkout(c.Request().Context(), userID, input)
	if err != nil {
		return handleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, order, "Order created successfully")
}

// GetOrder handles retrieving one of the user's orders with its lines
func (h *OrderHandler) GetOrder(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid order ID")
	}

	order, err := h.orderUC.GetOrder(c.Request().Context(), userID, orderID)
	if err != nil {
		return handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, order, "Order retrieved successfully")
}

// ListOrders handles retrieving all of the user's orders
func (h *OrderHandler) ListOrders(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	orders, err := h.orderUC.ListOrders(c.Request().Context(), userID)
	if err != nil {
		return handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, orders, "Orders retrieved successfully")
}

// EditOrder handles replacing an order that is still in processing status
func (h *OrderHandler) EditOrder(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid order ID")
	}

	var req EditOrderRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid order edit input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	input := &usecase.OrderEditInput{
		Lines:         make([]*usecase.OrderEditLine, 0, len(req.Lines)),
		AddressID:     req.AddressID,
		PaymentMethod: entity.PaymentMethod(req.PaymentMethod),
		DiscountCode:  req.DiscountCode,
	}
	for _, line := range req.Lines {
		input.Lines = append(input.Lines, &usecase.OrderEditLine{
			LineID:    line.LineID,
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Note:      line.Note,
		})
	}

	order, err := h.orderUC.SubmitOrderEdit(c.Request().Context(), userID, orderID, input)
	if err != nil {
		return handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, order, "Order updated successfully")
}
