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

// ReviewHandlerParams holds dependencies for ReviewHandler, injected by Fx.
type ReviewHandlerParams struct {
	fx.In

	ReviewUC usecase.ReviewUsecase
	Logger   *slog.Logger
}

// ReviewHandler holds dependencies for review-related handlers.
type ReviewHandler struct {
	uc     usecase.ReviewUsecase
	logger *slog.Logger
}

// NewReviewHandler is the constructor for ReviewHandler.
func NewReviewHandler(params ReviewHandlerParams) *ReviewHandler {
	return &ReviewHandler{
		uc:     params.ReviewUC,
		logger: params.Logger,
	}
}

// AddReviewRequest represents the request body for writing a review.
// Rating bounds are enforced by the usecase, which owns the range rule.
type AddReviewRequest struct {
	Rating  float64 `json:"rating"`
	Comment string  `json:"comment,omitempty"`
}

// UpdateReviewRequest represents the request body for editing a review.
type UpdateReviewRequest struct {
	Rating  *float64 `json:"rating,omitempty"`
	Comment *string  `json:"comment,omitempty"`
}

// AddReview handles writing a review for a product.
func (h *ReviewHandler) AddReview(c echo.Context) error {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Missing caller")
	}

	productID, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid product ID")
	}

	var req AddReviewRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid review input")
	}

	review, err := h.uc.AddReview(c.Request().Context(), caller, productID, &usecase.AddReviewInput{
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, toReviewView(review), "Review created successfully")
}

// GetProductReviews handles retrieving the reviews of a product.
func (h *ReviewHandler) GetProductReviews(c echo.Context) error {
	productID, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid product ID")
	}

	reviews, err := h.uc.GetProductReviews(c.Request().Context(), productID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toReviewViews(reviews), "Reviews retrieved successfully")
}

// GetUserReviews handles retrieving the reviews a user authored.
func (h *ReviewHandler) GetUserReviews(c echo.Context) error {
	userID, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid user ID")
	}

	reviews, err := h.uc.GetUserReviews(c.Request().Context(), userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toReviewViews(reviews), "Reviews retrieved successfully")
}

// UpdateReview handles editing a review by its author.
func (h *ReviewHandler) UpdateReview(c echo.Context) error {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Missing caller")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid review ID")
	}

	var req UpdateReviewRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid review input")
	}

	review, err := h.uc.UpdateReview(c.Request().Context(), caller, id, &usecase.UpdateReviewInput{
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toReviewView(review), "Review updated successfully")
}

// DeleteReview handles removing a review by its author.
func (h *ReviewHandler) DeleteReview(c echo.Context) error {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Missing caller")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid review ID")
	}

	if err := h.uc.DeleteReview(c.Request().Context(), caller, id); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Review deleted"}, "Review deleted successfully")
}
