package handler

import (
	"log/slog"
	"net/http"

	"bites/internal/delivery/http/response"
	"bites/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// CartHandlerParams holds dependencies for CartHandler, injected by Fx.
type CartHandlerParams struct {
	fx.In

	CartUC usecase.CartUsecase
	Logger *slog.Logger
}

// CartHandler holds dependencies for cart-related handlers
type CartHandler struct {
	cartUC usecase.CartUsecase
	logger *slog.Logger
}

// NewCartHandler is the constructor for CartHandler
func NewCartHandler(params CartHandlerParams) *CartHandler {
	return &CartHandler{
		cartUC: params.CartUC,
		logger: params.Logger,
	}
}

// AddCartLineRequest represents the request body for adding a product to the cart
type AddCartLineRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1"`
}

// AddLine handles adding a product to the cart, accumulating onto an existing line
func (h *CartHandler) AddLine(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req AddCartLineRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid cart line input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	mutation, err := h.cartUC.AddOrIncrementLine(c.Request().Context(), userID, req.ProductID, req.Quantity)
	if err != nil {
		return handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, mutation, "Cart line added successfully")
}

// RemoveLine handles removing a product from the cart
func (h *CartHandler) RemoveLine(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid product ID")
	}

	mutation, err := h.cartUC.DeactivateLine(c.Request().Context(), userID, productID)
	if err != nil {
		return handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, mutation, "Cart line removed successfully")
}

// GetCart handles retrieving the user's cart with all its lines
func (h *CartHandler) GetCart(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	cart, err := h.cartUC.GetCart(c.Request().Context(), userID)
	if err != nil {
		return handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, cart, "Cart retrieved successfully")
}

// GetCartCount handles retrieving the number of active cart lines for badge display
func (h *CartHandler) GetCartCount(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	count, err := h.cartUC.RefreshActiveLineCount(c.Request().Context(), userID)
	if err != nil {
		return handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]int64{"count": count}, "Cart count retrieved successfully")
}

// ClearCart handles deactivating every line of the user's cart
func (h *CartHandler) ClearCart(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	if err := h.cartUC.ClearCart(c.Request().Context(), userID); err != nil {
		return handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Cart cleared successfully"}, "Cart cleared successfully")
}
