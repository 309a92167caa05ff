package usecase

import (
	"context"

	"souq/internal/domain/entity"

	"github.com/google/uuid"
)

// CategoryUsecase covers category lifecycle. Mutations are admin only
// (enforced at the route, as the original exposes them).
type CategoryUsecase interface {
	// AddCategory creates a category with a unique name.
	AddCategory(ctx context.Context, name string) (*entity.Category, error)

	// GetCategory retrieves a category by id.
	GetCategory(ctx context.Context, id uuid.UUID) (*entity.Category, error)

	// ListCategories retrieves all categories.
	ListCategories(ctx context.Context) ([]*entity.Category, error)

	// UpdateCategory renames a category.
	UpdateCategory(ctx context.Context, id uuid.UUID, name string) (*entity.Category, error)

	// DeleteCategory removes an empty category. Deleting a category that
	// still contains products is refused with a conflict, so no product is
	// left pointing at a missing category.
	DeleteCategory(ctx context.Context, id uuid.UUID) error
}
