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

// CatalogHandlerParams holds dependencies for CatalogHandler, injected by Fx.
type CatalogHandlerParams struct {
	fx.In

	CatalogUC usecase.CatalogUsecase
	Logger    *slog.Logger
}

// CatalogHandler holds dependencies for restaurant browsing handlers
type CatalogHandler struct {
	catalogUC usecase.CatalogUsecase
	logger    *slog.Logger
}

// NewCatalogHandler is the constructor for CatalogHandler
func NewCatalogHandler(params CatalogHandlerParams) *CatalogHandler {
	return &CatalogHandler{
		catalogUC: params.CatalogUC,
		logger:    params.Logger,
	}
}

// GetRestaurant handles retrieving a restaurant by ID
func (h *CatalogHandler) GetRestaurant(c echo.Context) error {
	restaurantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid restaurant ID")
	}

	restaurant, err := h.catalogUC.GetRestaurant(c.Request().Context(), restaurantID)
	if err != nil {
		return handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, restaurant, "Restaurant retrieved successfully")
}

// GetRestaurantMenu handles retrieving a restaurant together with its products
func (h *CatalogHandler) GetRestaurantMenu(c echo.Context) error {
	restaurantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid restaurant ID")
	}

	menu, err := h.catalogUC.GetRestaurantMenu(c.Request().Context(), restaurantID)
	if err != nil {
		return handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, menu, "Restaurant menu retrieved successfully")
}
