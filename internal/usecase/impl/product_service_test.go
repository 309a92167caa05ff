package impl

import (
	"context"
	"testing"

	"souq/internal/domain/entity"
	domainerrors "souq/internal/domain/errors"
	"souq/internal/domain/repository"
	"souq/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductService_AddProduct(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.seedUser(t, entity.RoleUser)
	category := env.seedCategory(t, "Electronics")

	product, err := env.productSvc.AddProduct(ctx, owner, &usecase.AddProductInput{
		Name:     "Camera",
		Price:    199.99,
		Category: category.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, owner.ID, product.OwnedBy)
	assert.Equal(t, category.ID, product.Category)
	assert.Contains(t, env.reloadUser(t, owner.ID).ProductsOwned, product.ID)
	assert.Contains(t, env.reloadCategory(t, category.ID).Products, product.ID)
}

func TestProductService_AddProduct_MissingCategory(t *testing.T) {
	env := newTestEnv(t)

	owner := env.seedUser(t, entity.RoleUser)

	_, err := env.productSvc.AddProduct(context.Background(), owner, &usecase.AddProductInput{
		Name:     "Camera",
		Price:    199.99,
		Category: uuid.New(),
	})
	assert.ErrorIs(t, err, domainerrors.ErrCategoryNotFound)
}

func TestProductService_UpdateProduct_RelinksCategory(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.seedUser(t, entity.RoleUser)
	oldCategory := env.seedCategory(t, "Electronics")
	newCategory := env.seedCategory(t, "Photography")
	product := env.seedProduct(t, owner, oldCategory, "Camera")

	updated, err := env.productSvc.UpdateProduct(ctx, env.reloadUser(t, owner.ID), product.ID, &usecase.UpdateProductInput{
		Category: &newCategory.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, newCategory.ID, updated.Category)
	assert.NotContains(t, env.reloadCategory(t, oldCategory.ID).Products, product.ID)
	assert.Contains(t, env.reloadCategory(t, newCategory.ID).Products, product.ID)
}

func TestProductService_UpdateProduct_Fields(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.seedUser(t, entity.RoleUser)
	category := env.seedCategory(t, "Electronics")
	product := env.seedProduct(t, owner, category, "Camera")

	name := "Camera Mk II"
	price := 249.50
	updated, err := env.productSvc.UpdateProduct(ctx, env.reloadUser(t, owner.ID), product.ID, &usecase.UpdateProductInput{
		Name:  &name,
		Price: &price,
	})
	require.NoError(t, err)

	assert.Equal(t, "Camera Mk II", updated.Name)
	assert.InDelta(t, 249.50, updated.Price, 1e-9)
}

func TestProductService_UpdateProduct_NotOwner(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.seedUser(t, entity.RoleUser)
	stranger := env.seedUser(t, entity.RoleUser)
	category := env.seedCategory(t, "Electronics")
	product := env.seedProduct(t, owner, category, "Camera")

	name := "Hijacked"
	_, err := env.productSvc.UpdateProduct(ctx, stranger, product.ID, &usecase.UpdateProductInput{Name: &name})
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestProductService_DeleteProduct_NotOwner(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.seedUser(t, entity.RoleUser)
	stranger := env.seedUser(t, entity.RoleUser)
	category := env.seedCategory(t, "Electronics")
	product := env.seedProduct(t, owner, category, "Camera")

	err := env.productSvc.DeleteProduct(ctx, stranger, product.ID)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	_, err = env.products.FindByID(ctx, product.ID)
	assert.NoError(t, err)
}

func TestProductService_DeleteProduct_AdminAllowed(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.seedUser(t, entity.RoleUser)
	admin := env.seedUser(t, entity.RoleAdmin)
	category := env.seedCategory(t, "Electronics")
	product := env.seedProduct(t, owner, category, "Camera")

	require.NoError(t, env.productSvc.DeleteProduct(ctx, admin, product.ID))

	_, err := env.products.FindByID(ctx, product.ID)
	assert.ErrorIs(t, err, repository.ErrProductNotFound)
	assert.NotContains(t, env.reloadUser(t, owner.ID).ProductsOwned, product.ID)
}

func TestProductService_SearchProducts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.seedUser(t, entity.RoleUser)
	category := env.seedCategory(t, "Electronics")
	env.seedProduct(t, owner, category, "Digital Camera")
	env.seedProduct(t, owner, category, "Tripod")

	products, err := env.productSvc.SearchProducts(ctx, "camera", 0, 0)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Digital Camera", products[0].Name)
}

func TestProductService_ListProducts_DefaultPageSize(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.seedUser(t, entity.RoleUser)
	category := env.seedCategory(t, "Electronics")
	for range defaultPageSize + 2 {
		env.seedProduct(t, owner, category, "Gadget")
	}

	products, err := env.productSvc.ListProducts(ctx, 0, 0)
	require.NoError(t, err)
	assert.Len(t, products, defaultPageSize)
}
