package repository

import (
	"context"

	"souq/internal/domain/entity"
	"souq/internal/errors"

	"github.com/google/uuid"
)

// Domain-specific errors for category persistence.
var (
	// ErrCategoryNotFound is returned when a category document is absent.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrDuplicateCategory is returned when creating a category whose name is taken.
	ErrDuplicateCategory = errors.New("category name already exists")
)

// CategoryRepository defines the standard operations for category persistence.
type CategoryRepository interface {
	// FindByID retrieves a single category by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)

	// FindByName retrieves a single category by its unique name.
	FindByName(ctx context.Context, name string) (*entity.Category, error)

	// List retrieves all categories.
	List(ctx context.Context) ([]*entity.Category, error)

	// Create persists a new category document.
	Create(ctx context.Context, category *entity.Category) error

	// UpdateFields issues a targeted field-level update on a category document.
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error

	// AddProduct inserts a product id into the category's product set.
	AddProduct(ctx context.Context, categoryID, productID uuid.UUID) error

	// RemoveProduct removes a product id from the category's product set.
	RemoveProduct(ctx context.Context, categoryID, productID uuid.UUID) error

	// Delete removes the category document.
	Delete(ctx context.Context, id uuid.UUID) error
}
