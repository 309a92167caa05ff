package handler

import (
	"log/slog"
	"net/http"

	"souq/internal/delivery/http/response"
	"souq/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// CategoryHandlerParams holds dependencies for CategoryHandler, injected by Fx.
type CategoryHandlerParams struct {
	fx.In

	CategoryUC usecase.CategoryUsecase
	Logger     *slog.Logger
}

// CategoryHandler holds dependencies for category-related handlers.
type CategoryHandler struct {
	uc     usecase.CategoryUsecase
	logger *slog.Logger
}

// NewCategoryHandler is the constructor for CategoryHandler.
func NewCategoryHandler(params CategoryHandlerParams) *CategoryHandler {
	return &CategoryHandler{
		uc:     params.CategoryUC,
		logger: params.Logger,
	}
}

// CategoryRequest represents the request body for creating or renaming a
// category.
type CategoryRequest struct {
	Name string `json:"name" validate:"required"`
}

// AddCategory handles creating a category. Admin only.
func (h *CategoryHandler) AddCategory(c echo.Context) error {
	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid category input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	category, err := h.uc.AddCategory(c.Request().Context(), req.Name)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, toCategoryView(category), "Category created successfully")
}

// GetCategory handles retrieving one category by id.
func (h *CategoryHandler) GetCategory(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid category ID")
	}

	category, err := h.uc.GetCategory(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toCategoryView(category), "Category retrieved successfully")
}

// ListCategories handles retrieving all categories.
func (h *CategoryHandler) ListCategories(c echo.Context) error {
	categories, err := h.uc.ListCategories(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toCategoryViews(categories), "Categories retrieved successfully")
}

// UpdateCategory handles renaming a category. Admin only.
func (h *CategoryHandler) UpdateCategory(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid category ID")
	}

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid category input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	category, err := h.uc.UpdateCategory(c.Request().Context(), id, req.Name)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toCategoryView(category), "Category updated successfully")
}

// DeleteCategory handles removing an empty category. Admin only.
func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid category ID")
	}

	if err := h.uc.DeleteCategory(c.Request().Context(), id); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Category deleted"}, "Category deleted successfully")
}
