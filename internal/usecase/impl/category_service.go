package impl

import (
	"context"
	"time"

	"souq/internal/domain/entity"
	domainerrors "souq/internal/domain/errors"
	"souq/internal/domain/repository"
	"souq/internal/errors"
	"souq/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

type categoryService struct {
	categories repository.CategoryRepository
}

// CategoryServiceParams holds dependencies for CategoryService, injected by Fx.
type CategoryServiceParams struct {
	fx.In

	Categories repository.CategoryRepository
}

// NewCategoryService creates a new category service instance.
func NewCategoryService(params CategoryServiceParams) usecase.CategoryUsecase {
	return &categoryService{categories: params.Categories}
}

// AddCategory creates a category with a unique name.
func (s *categoryService) AddCategory(ctx context.Context, name string) (*entity.Category, error) {
	now := time.Now()
	category := &entity.Category{
		ID:        uuid.New(),
		Name:      name,
		Products:  []uuid.UUID{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.categories.Create(ctx, category); err != nil {
		if errors.Is(err, repository.ErrDuplicateCategory) {
			return nil, domainerrors.ErrCategoryExists
		}
		return nil, errors.Wrap(err, "create category")
	}

	return category, nil
}

// GetCategory retrieves a category by id.
func (s *categoryService) GetCategory(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, domainerrors.ErrCategoryNotFound
		}
		return nil, errors.Wrap(err, "load category")
	}

	return category, nil
}

// ListCategories retrieves all categories.
func (s *categoryService) ListCategories(ctx context.Context) ([]*entity.Category, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list categories")
	}

	return categories, nil
}

// UpdateCategory renames a category. The new name must remain unique.
func (s *categoryService) UpdateCategory(ctx context.Context, id uuid.UUID, name string) (*entity.Category, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, domainerrors.ErrCategoryNotFound
		}
		return nil, errors.Wrap(err, "load category")
	}

	if name == category.Name {
		return category, nil
	}

	if existing, err := s.categories.FindByName(ctx, name); err == nil && existing.ID != id {
		return nil, domainerrors.ErrCategoryExists
	} else if err != nil && !errors.Is(err, repository.ErrCategoryNotFound) {
		return nil, errors.Wrap(err, "check category name")
	}

	fields := map[string]any{
		"name":      name,
		"updatedAt": time.Now(),
	}
	if err := s.categories.UpdateFields(ctx, id, fields); err != nil {
		return nil, errors.Wrap(err, "update category")
	}

	updated, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "reload category")
	}

	return updated, nil
}

// DeleteCategory removes an empty category. A category that still holds
// products is refused so no product ends up pointing at a missing
// category; products must be moved or deleted first.
func (s *categoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return domainerrors.ErrCategoryNotFound
		}
		return errors.Wrap(err, "load category")
	}

	if len(category.Products) > 0 {
		return domainerrors.ErrCategoryNotEmpty
	}

	if err := s.categories.Delete(ctx, id); err != nil && !errors.Is(err, repository.ErrCategoryNotFound) {
		return errors.Wrap(err, "delete category")
	}

	return nil
}
