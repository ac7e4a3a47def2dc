// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"himart/internal/delivery/http/middleware"
	"himart/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler      *handler.AuthHandler
	ProductHandler   *handler.ProductHandler
	DiscoveryHandler *handler.DiscoveryHandler
	CartHandler      *handler.CartHandler
	SellerHandler    *handler.SellerHandler
	AuthMiddleware   *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler      *handler.AuthHandler
	productHandler   *handler.ProductHandler
	discoveryHandler *handler.DiscoveryHandler
	cartHandler      *handler.CartHandler
	sellerHandler    *handler.SellerHandler
	authMiddleware   *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:      params.AuthHandler,
		productHandler:   params.ProductHandler,
		discoveryHandler: params.DiscoveryHandler,
		cartHandler:      params.CartHandler,
		sellerHandler:    params.SellerHandler,
		authMiddleware:   params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	requireAuth := r.authMiddleware.RequireAuth
	optionalAuth := r.authMiddleware.OptionalAuth

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.POST("/login/google", r.authHandler.GoogleLogin)
		authGroup.GET("/login/google/callback", r.authHandler.GoogleCallback)
		authGroup.POST("/login/facebook", r.authHandler.FacebookLogin)
		authGroup.POST("/refresh", r.authHandler.Refresh)
		authGroup.GET("/session", r.authHandler.Session, requireAuth)
		authGroup.POST("/logout", r.authHandler.Logout, requireAuth)
	}

	productGroup := e.Group("/product")
	{
		productGroup.GET("", r.productHandler.Get, optionalAuth)
		productGroup.POST("", r.productHandler.Create, requireAuth)
		productGroup.PUT("", r.productHandler.Update, requireAuth)
		productGroup.DELETE("", r.productHandler.Delete, requireAuth)
		productGroup.POST("/rate", r.productHandler.Rate, requireAuth)
		productGroup.GET("/qrcode", r.productHandler.QRCode)
	}

	// Listings personalise impressions for logged-in visitors
	productsGroup := e.Group("/products", optionalAuth)
	{
		productsGroup.GET("", r.discoveryHandler.List)
		productsGroup.GET("/trending", r.discoveryHandler.Trending)
		productsGroup.GET("/latest", r.discoveryHandler.Latest)
		productsGroup.GET("/user-choices", r.discoveryHandler.UserChoices)
		productsGroup.GET("/discounts", r.discoveryHandler.Discounted)
		productsGroup.GET("/minisearch", r.discoveryHandler.Search)
	}

	sellerGroup := e.Group("/seller", requireAuth)
	{
		sellerGroup.POST("/register", r.sellerHandler.Register)
		sellerGroup.GET("/session", r.sellerHandler.Session)
		sellerGroup.GET("/data", r.sellerHandler.Data)
	}

	cartGroup := e.Group("/cart", requireAuth)
	{
		cartGroup.GET("", r.cartHandler.List)
		cartGroup.POST("", r.cartHandler.Add)
		cartGroup.PUT("", r.cartHandler.Update)
		cartGroup.DELETE("", r.cartHandler.Remove)
		cartGroup.GET("/count", r.cartHandler.Count)
	}
}
