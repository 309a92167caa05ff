package impl

import (
	"context"
	"testing"

	"souq/internal/domain/entity"
	domainerrors "souq/internal/domain/errors"
	"souq/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryService_AddCategory(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	category, err := env.categorySvc.AddCategory(ctx, "Electronics")
	require.NoError(t, err)
	assert.Equal(t, "Electronics", category.Name)
	assert.Empty(t, category.Products)
}

func TestCategoryService_AddCategory_DuplicateName(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.categorySvc.AddCategory(ctx, "Electronics")
	require.NoError(t, err)

	_, err = env.categorySvc.AddCategory(ctx, "Electronics")
	assert.ErrorIs(t, err, domainerrors.ErrCategoryExists)
}

func TestCategoryService_UpdateCategory(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	category, err := env.categorySvc.AddCategory(ctx, "Electronics")
	require.NoError(t, err)

	updated, err := env.categorySvc.UpdateCategory(ctx, category.ID, "Gadgets")
	require.NoError(t, err)
	assert.Equal(t, "Gadgets", updated.Name)
}

func TestCategoryService_UpdateCategory_NameCollision(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.categorySvc.AddCategory(ctx, "Electronics")
	require.NoError(t, err)
	other, err := env.categorySvc.AddCategory(ctx, "Photography")
	require.NoError(t, err)

	_, err = env.categorySvc.UpdateCategory(ctx, other.ID, "Electronics")
	assert.ErrorIs(t, err, domainerrors.ErrCategoryExists)

	// Renaming to its own current name is a no-op, not a collision.
	same, err := env.categorySvc.UpdateCategory(ctx, other.ID, "Photography")
	require.NoError(t, err)
	assert.Equal(t, "Photography", same.Name)
}

func TestCategoryService_DeleteCategory_RefusedWhenNotEmpty(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.seedUser(t, entity.RoleUser)
	category := env.seedCategory(t, "Electronics")
	product := env.seedProduct(t, owner, category, "Camera")

	err := env.categorySvc.DeleteCategory(ctx, category.ID)
	assert.ErrorIs(t, err, domainerrors.ErrCategoryNotEmpty)

	// After the product is gone the category can be removed.
	require.NoError(t, env.productSvc.DeleteProduct(ctx, env.reloadUser(t, owner.ID), product.ID))
	require.NoError(t, env.categorySvc.DeleteCategory(ctx, category.ID))

	_, err = env.categories.FindByID(ctx, category.ID)
	assert.ErrorIs(t, err, repository.ErrCategoryNotFound)
}

func TestCategoryService_DeleteCategory_NotFound(t *testing.T) {
	env := newTestEnv(t)

	err := env.categorySvc.DeleteCategory(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrCategoryNotFound)
}
