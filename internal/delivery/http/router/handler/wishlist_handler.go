package handler

import (
	"log/slog"
	"net/http"

	"souq/internal/delivery/http/middleware"
	"souq/internal/delivery/http/response"
	"souq/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// WishlistHandlerParams holds dependencies for WishlistHandler, injected by Fx.
type WishlistHandlerParams struct {
	fx.In

	WishlistUC usecase.WishlistUsecase
	Logger     *slog.Logger
}

// WishlistHandler holds dependencies for wishlist-related handlers.
type WishlistHandler struct {
	uc     usecase.WishlistUsecase
	logger *slog.Logger
}

// NewWishlistHandler is the constructor for WishlistHandler.
func NewWishlistHandler(params WishlistHandlerParams) *WishlistHandler {
	return &WishlistHandler{
		uc:     params.WishlistUC,
		logger: params.Logger,
	}
}

// AddToWishlist handles wishlisting a product for the caller.
func (h *WishlistHandler) AddToWishlist(c echo.Context) error {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Missing caller")
	}

	productID, err := parseIDParam(c, "productId")
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid product ID")
	}

	wishlist, err := h.uc.AddToWishlist(c.Request().Context(), caller, productID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, wishlist, "Product added to wishlist")
}

// RemoveFromWishlist handles removing a product from the caller's wishlist.
func (h *WishlistHandler) RemoveFromWishlist(c echo.Context) error {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Missing caller")
	}

	productID, err := parseIDParam(c, "productId")
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid product ID")
	}

	if err := h.uc.RemoveFromWishlist(c.Request().Context(), caller, productID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Product removed from wishlist"}, "Product removed from wishlist")
}

// GetWishlist handles resolving the caller's wishlist to products.
func (h *WishlistHandler) GetWishlist(c echo.Context) error {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Missing caller")
	}

	products, err := h.uc.GetWishlist(c.Request().Context(), caller.ID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toProductViews(products), "Wishlist retrieved successfully")
}
