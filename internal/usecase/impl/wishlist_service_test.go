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

func TestWishlistService_AddToWishlist(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.seedUser(t, entity.RoleUser)
	owner := env.seedUser(t, entity.RoleUser)
	category := env.seedCategory(t, "Electronics")
	product := env.seedProduct(t, owner, category, "Camera")

	wishlist, err := env.wishlistSvc.AddToWishlist(ctx, user, product.ID)
	require.NoError(t, err)
	assert.Contains(t, wishlist, product.ID)
	assert.Contains(t, env.reloadProduct(t, product.ID).UsersWishlisted, user.ID)
}

func TestWishlistService_AddToWishlist_Duplicate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.seedUser(t, entity.RoleUser)
	owner := env.seedUser(t, entity.RoleUser)
	category := env.seedCategory(t, "Electronics")
	product := env.seedProduct(t, owner, category, "Camera")

	_, err := env.wishlistSvc.AddToWishlist(ctx, user, product.ID)
	require.NoError(t, err)

	// The duplicate check runs against the caller's loaded edge set.
	_, err = env.wishlistSvc.AddToWishlist(ctx, env.reloadUser(t, user.ID), product.ID)
	assert.ErrorIs(t, err, domainerrors.ErrAlreadyWishlisted)
	assert.Len(t, env.reloadUser(t, user.ID).WishList, 1)
}

func TestWishlistService_AddToWishlist_MissingProduct(t *testing.T) {
	env := newTestEnv(t)

	user := env.seedUser(t, entity.RoleUser)

	_, err := env.wishlistSvc.AddToWishlist(context.Background(), user, uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}

func TestWishlistService_RemoveFromWishlist_Idempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.seedUser(t, entity.RoleUser)
	owner := env.seedUser(t, entity.RoleUser)
	category := env.seedCategory(t, "Electronics")
	product := env.seedProduct(t, owner, category, "Camera")

	_, err := env.wishlistSvc.AddToWishlist(ctx, user, product.ID)
	require.NoError(t, err)

	require.NoError(t, env.wishlistSvc.RemoveFromWishlist(ctx, user, product.ID))
	assert.Empty(t, env.reloadUser(t, user.ID).WishList)

	// Removing again converges instead of failing.
	assert.NoError(t, env.wishlistSvc.RemoveFromWishlist(ctx, user, product.ID))
}

func TestWishlistService_GetWishlist_SkipsDanglingIDs(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.seedUser(t, entity.RoleUser)
	owner := env.seedUser(t, entity.RoleUser)
	category := env.seedCategory(t, "Electronics")
	kept := env.seedProduct(t, owner, category, "Camera")
	doomed := env.seedProduct(t, owner, category, "Tripod")

	_, err := env.wishlistSvc.AddToWishlist(ctx, user, kept.ID)
	require.NoError(t, err)
	_, err = env.wishlistSvc.AddToWishlist(ctx, env.reloadUser(t, user.ID), doomed.ID)
	require.NoError(t, err)

	// Delete the record directly, as a concurrent cascade that has not
	// reached this wishlist yet would.
	require.NoError(t, env.products.Delete(ctx, doomed.ID))

	products, err := env.wishlistSvc.GetWishlist(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, kept.ID, products[0].ID)
}

func TestWishlistService_GetWishlist_MissingUser(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.wishlistSvc.GetWishlist(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}
