// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"souq/internal/delivery/http/middleware"
	"souq/internal/delivery/http/router/handler"
	"souq/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler     *handler.UserHandler
	ProductHandler  *handler.ProductHandler
	CategoryHandler *handler.CategoryHandler
	ReviewHandler   *handler.ReviewHandler
	WishlistHandler *handler.WishlistHandler
	AuthMiddleware  *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler     *handler.UserHandler
	productHandler  *handler.ProductHandler
	categoryHandler *handler.CategoryHandler
	reviewHandler   *handler.ReviewHandler
	wishlistHandler *handler.WishlistHandler
	authMiddleware  *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:     params.UserHandler,
		productHandler:  params.ProductHandler,
		categoryHandler: params.CategoryHandler,
		reviewHandler:   params.ReviewHandler,
		wishlistHandler: params.WishlistHandler,
		authMiddleware:  params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.userHandler.Register)
		authGroup.POST("/login", r.userHandler.Login)
		authGroup.POST("/forgot-password", r.userHandler.ForgotPassword)
		authGroup.PATCH("/reset-password/:token", r.userHandler.ResetPassword)
	}

	// User routes
	userGroup := e.Group("/users")
	userGroup.Use(r.authMiddleware.Authenticate)
	{
		userGroup.GET("", r.userHandler.ListUsers, r.authMiddleware.RequireRole(entity.RoleAdmin))
		userGroup.GET("/me", r.userHandler.GetProfile)
		userGroup.PATCH("/me", r.userHandler.UpdateProfile)
		userGroup.DELETE("/me", r.userHandler.DeleteAccount)
		userGroup.GET("/:id", r.userHandler.GetUser)
		userGroup.GET("/:id/reviews", r.reviewHandler.GetUserReviews)
	}

	// Product routes; reads are public, writes require authentication.
	productGroup := e.Group("/products")
	{
		productGroup.GET("", r.productHandler.ListProducts)
		productGroup.GET("/search", r.productHandler.SearchProducts)
		productGroup.GET("/:id", r.productHandler.GetProduct)
		productGroup.GET("/:id/reviews", r.reviewHandler.GetProductReviews)

		productGroup.POST("", r.productHandler.AddProduct, r.authMiddleware.Authenticate)
		productGroup.PATCH("/:id", r.productHandler.UpdateProduct, r.authMiddleware.Authenticate)
		productGroup.DELETE("/:id", r.productHandler.DeleteProduct, r.authMiddleware.Authenticate)
		productGroup.POST("/:id/reviews", r.reviewHandler.AddReview, r.authMiddleware.Authenticate)
	}

	// Review routes
	reviewGroup := e.Group("/reviews")
	reviewGroup.Use(r.authMiddleware.Authenticate)
	{
		reviewGroup.PATCH("/:id", r.reviewHandler.UpdateReview)
		reviewGroup.DELETE("/:id", r.reviewHandler.DeleteReview)
	}

	// Category routes; mutations are admin only.
	categoryGroup := e.Group("/categories")
	{
		categoryGroup.GET("", r.categoryHandler.ListCategories)
		categoryGroup.GET("/:id", r.categoryHandler.GetCategory)

		adminOnly := []echo.MiddlewareFunc{
			r.authMiddleware.Authenticate,
			r.authMiddleware.RequireRole(entity.RoleAdmin),
		}
		categoryGroup.POST("", r.categoryHandler.AddCategory, adminOnly...)
		categoryGroup.PATCH("/:id", r.categoryHandler.UpdateCategory, adminOnly...)
		categoryGroup.DELETE("/:id", r.categoryHandler.DeleteCategory, adminOnly...)
	}

	// Wishlist routes
	wishlistGroup := e.Group("/wishlist")
	wishlistGroup.Use(r.authMiddleware.Authenticate)
	{
		wishlistGroup.GET("", r.wishlistHandler.GetWishlist)
		wishlistGroup.POST("/:productId", r.wishlistHandler.AddToWishlist)
		wishlistGroup.DELETE("/:productId", r.wishlistHandler.RemoveFromWishlist)
	}
}
