package impl

import (
	"context"
	"testing"

	"souq/internal/domain/entity"
	domainerrors "souq/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelationshipGraph_Attach_Wishlist_BothHalves(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.seedUser(t, entity.RoleUser)
	owner := env.seedUser(t, entity.RoleUser)
	category := env.seedCategory(t, "Electronics")
	product := env.seedProduct(t, owner, category, "Camera")

	require.NoError(t, env.graph.Attach(ctx, EdgeWishlist, user.ID, product.ID))

	reloadedUser := env.reloadUser(t, user.ID)
	reloadedProduct := env.reloadProduct(t, product.ID)
	assert.Contains(t, reloadedUser.WishList, product.ID)
	assert.Contains(t, reloadedProduct.UsersWishlisted, user.ID)
}

func TestRelationshipGraph_Attach_Idempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.seedUser(t, entity.RoleUser)
	owner := env.seedUser(t, entity.RoleUser)
	category := env.seedCategory(t, "Electronics")
	product := env.seedProduct(t, owner, category, "Camera")

	require.NoError(t, env.graph.Attach(ctx, EdgeWishlist, user.ID, product.ID))
	require.NoError(t, env.graph.Attach(ctx, EdgeWishlist, user.ID, product.ID))

	reloadedUser := env.reloadUser(t, user.ID)
	reloadedProduct := env.reloadProduct(t, product.ID)
	assert.Len(t, reloadedUser.WishList, 1)
	assert.Len(t, reloadedProduct.UsersWishlisted, 1)
}

func TestRelationshipGraph_Attach_MissingEndpoint(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.seedUser(t, entity.RoleUser)

	err := env.graph.Attach(ctx, EdgeWishlist, user.ID, uuid.New())
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidReference)

	// Nothing was written on the existing side.
	assert.Empty(t, env.reloadUser(t, user.ID).WishList)
}

func TestRelationshipGraph_Attach_Categorization(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.seedUser(t, entity.RoleUser)
	oldCategory := env.seedCategory(t, "Electronics")
	newCategory := env.seedCategory(t, "Photography")
	product := env.seedProduct(t, owner, oldCategory, "Camera")

	require.NoError(t, env.graph.Detach(ctx, EdgeCategorization, oldCategory.ID, product.ID))
	require.NoError(t, env.graph.Attach(ctx, EdgeCategorization, newCategory.ID, product.ID))

	assert.NotContains(t, env.reloadCategory(t, oldCategory.ID).Products, product.ID)
	assert.Contains(t, env.reloadCategory(t, newCategory.ID).Products, product.ID)
	assert.Equal(t, newCategory.ID, env.reloadProduct(t, product.ID).Category)
}

func TestRelationshipGraph_Detach_MissingEdgeIsNoop(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.seedUser(t, entity.RoleUser)

	// Neither the edge nor the product exists; detaching must converge.
	assert.NoError(t, env.graph.Detach(ctx, EdgeWishlist, user.ID, uuid.New()))
	assert.NoError(t, env.graph.Detach(ctx, EdgeOwnership, uuid.New(), uuid.New()))
}

func TestRelationshipGraph_DetachAll_Wishlist(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.seedUser(t, entity.RoleUser)
	fanA := env.seedUser(t, entity.RoleUser)
	fanB := env.seedUser(t, entity.RoleUser)
	category := env.seedCategory(t, "Electronics")
	product := env.seedProduct(t, owner, category, "Camera")

	require.NoError(t, env.graph.Attach(ctx, EdgeWishlist, fanA.ID, product.ID))
	require.NoError(t, env.graph.Attach(ctx, EdgeWishlist, fanB.ID, product.ID))

	require.NoError(t, env.graph.DetachAll(ctx, EdgeWishlist, product.ID))

	assert.Empty(t, env.reloadUser(t, fanA.ID).WishList)
	assert.Empty(t, env.reloadUser(t, fanB.ID).WishList)
}

func TestRelationshipGraph_DetachAll_UnsupportedKind(t *testing.T) {
	env := newTestEnv(t)

	err := env.graph.DetachAll(context.Background(), EdgeOwnership, uuid.New())
	assert.Error(t, err)
}
