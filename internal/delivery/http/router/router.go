// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"bites/internal/delivery/http/middleware"
	"bites/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	CartHandler    *handler.CartHandler
	OrderHandler   *handler.OrderHandler
	AddressHandler *handler.AddressHandler
	CatalogHandler *handler.CatalogHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	cartHandler    *handler.CartHandler
	orderHandler   *handler.OrderHandler
	addressHandler *handler.AddressHandler
	catalogHandler *handler.CatalogHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		cartHandler:    params.CartHandler,
		orderHandler:   params.OrderHandler,
		addressHandler: params.AddressHandler,
		catalogHandler: params.CatalogHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Public restaurant browsing
	restaurantGroup := e.Group("/restaurants")
	{
		restaurantGroup.GET("/:id", r.catalogHandler.GetRestaurant)
		restaurantGroup.GET("/:id/menu", r.catalogHandler.GetRestaurantMenu)
	}

	// Cart routes that require authentication
	cartGroup := e.Group("/cart")
	cartGroup.Use(r.authMiddleware.Authenticate)
	{
		cartGroup.GET("", r.cartHandler.GetCart)
		cartGroup.DELETE("", r.cartHandler.ClearCart)
		cartGroup.GET("/count", r.cartHandler.GetCartCount)
		cartGroup.POST("/lines", r.cartHandler.AddLine)
		cartGroup.DELETE("/lines/:productId", r.cartHandler.RemoveLine)
	}

	// Order routes that require authentication
	orderGroup := e.Group("/orders")
	orderGroup.Use(r.authMiddleware.Authenticate)
	{
		orderGroup.POST("", r.orderHandler.Checkout)
		orderGroup.GET("", r.orderHandler.ListOrders)
		orderGroup.GET("/:id", r.orderHandler.GetOrder)
		orderGroup.PUT("/:id", r.orderHandler.EditOrder)
	}

	// Address routes that require authentication
	addressGroup := e.Group("/addresses")
	addressGroup.Use(r.authMiddleware.Authenticate)
	{
		addressGroup.GET("", r.addressHandler.ListAddresses)
		addressGroup.POST("", r.addressHandler.CreateAddress)
		addressGroup.PUT("/:id", r.addressHandler.UpdateAddress)
		addressGroup.PUT("/:id/default", r.addressHandler.SetDefaultAddress)
		addressGroup.DELETE("/:id", r.addressHandler.DeleteAddress)
	}
}
