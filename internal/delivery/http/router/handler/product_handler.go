package handler

import (
	"log/slog"
	"net/http"

	"souq/internal/delivery/http/middleware"
	"souq/internal/delivery/http/response"
	"souq/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// ProductHandlerParams holds dependencies for ProductHandler, injected by Fx.
type ProductHandlerParams struct {
	fx.In

	ProductUC usecase.ProductUsecase
	Logger    *slog.Logger
}

// ProductHandler holds dependencies for product-related handlers.
type ProductHandler struct {
	uc     usecase.ProductUsecase
	logger *slog.Logger
}

// NewProductHandler is the constructor for ProductHandler.
func NewProductHandler(params ProductHandlerParams) *ProductHandler {
	return &ProductHandler{
		uc:     params.ProductUC,
		logger: params.Logger,
	}
}

// AddProductRequest represents the request body for listing a product.
type AddProductRequest struct {
	Name        string    `json:"name" validate:"required"`
	Price       float64   `json:"price" validate:"required,gt=0"`
	Description string    `json:"description,omitempty"`
	Photo       string    `json:"photo,omitempty"`
	Category    uuid.UUID `json:"category" validate:"required"`
}

// UpdateProductRequest represents the request body for a product update.
type UpdateProductRequest struct {
	Name        *string    `json:"name,omitempty"`
	Price       *float64   `json:"price,omitempty" validate:"omitempty,gt=0"`
	Description *string    `json:"description,omitempty"`
	Photo       *string    `json:"photo,omitempty"`
	Category    *uuid.UUID `json:"category,omitempty"`
}

// AddProduct handles listing a new product owned by the caller.
func (h *ProductHandler) AddProduct(c echo.Context) error {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Missing caller")
	}

	var req AddProductRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	product, err := h.uc.AddProduct(c.Request().Context(), caller, &usecase.AddProductInput{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		Photo:       req.Photo,
		Category:    req.Category,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, toProductView(product), "Product created successfully")
}

// GetProduct handles retrieving one product by id.
func (h *ProductHandler) GetProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid product ID")
	}

	product, err := h.uc.GetProduct(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toProductView(product), "Product retrieved successfully")
}

// ListProducts handles retrieving a page of products.
func (h *ProductHandler) ListProducts(c echo.Context) error {
	limit, offset := parsePagination(c)

	products, err := h.uc.ListProducts(c.Request().Context(), limit, offset)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toProductViews(products), "Products retrieved successfully")
}

// SearchProducts handles keyword search over product names.
func (h *ProductHandler) SearchProducts(c echo.Context) error {
	keyword := c.QueryParam("q")
	if keyword == "" {
		return response.BadRequest(c, "INVALID_INPUT", "Query parameter 'q' is required")
	}
	limit, offset := parsePagination(c)

	products, err := h.uc.SearchProducts(c.Request().Context(), keyword, limit, offset)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toProductViews(products), "Products retrieved successfully")
}

// UpdateProduct handles a field-level product update by its owner.
func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Missing caller")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid product ID")
	}

	var req UpdateProductRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	product, err := h.uc.UpdateProduct(c.Request().Context(), caller, id, &usecase.UpdateProductInput{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		Photo:       req.Photo,
		Category:    req.Category,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toProductView(product), "Product updated successfully")
}

// DeleteProduct handles the product deletion cascade.
func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Missing caller")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid product ID")
	}

	if err := h.uc.DeleteProduct(c.Request().Context(), caller, id); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Product deleted"}, "Product deleted successfully")
}
