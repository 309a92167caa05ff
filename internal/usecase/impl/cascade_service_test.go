package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"souq/internal/domain/entity"
	domainerrors "souq/internal/domain/errors"
	"souq/internal/domain/repository"
	"souq/internal/domain/service"
	"souq/internal/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCascadeCoordinator_DeleteProduct(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.seedUser(t, entity.RoleUser)
	reviewer := env.seedUser(t, entity.RoleUser)
	fan := env.seedUser(t, entity.RoleUser)
	category := env.seedCategory(t, "Electronics")
	product := env.seedProduct(t, owner, category, "Camera")

	review := env.seedReview(t, reviewer, product, 4)
	require.NoError(t, env.graph.Attach(ctx, EdgeWishlist, fan.ID, product.ID))

	require.NoError(t, env.cascade.DeleteProduct(ctx, env.reloadProduct(t, product.ID)))

	// The record is gone.
	_, err := env.products.FindByID(ctx, product.ID)
	assert.ErrorIs(t, err, repository.ErrProductNotFound)

	// Every edge that pointed at it is gone too.
	assert.NotContains(t, env.reloadCategory(t, category.ID).Products, product.ID)
	assert.NotContains(t, env.reloadUser(t, owner.ID).ProductsOwned, product.ID)
	assert.NotContains(t, env.reloadUser(t, fan.ID).WishList, product.ID)

	// Its reviews are deleted with their authorship edges.
	_, err = env.reviews.FindByID(ctx, review.ID)
	assert.ErrorIs(t, err, repository.ErrReviewNotFound)
	assert.NotContains(t, env.reloadUser(t, reviewer.ID).Reviews, review.ID)
}

func TestCascadeCoordinator_DeleteProduct_SkipsMissingReviews(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.seedUser(t, entity.RoleUser)
	reviewer := env.seedUser(t, entity.RoleUser)
	category := env.seedCategory(t, "Electronics")
	product := env.seedProduct(t, owner, category, "Camera")
	review := env.seedReview(t, reviewer, product, 3)

	// Simulate a retried cascade: the review record vanished but the
	// product's edge set still lists it.
	require.NoError(t, env.reviews.Delete(ctx, review.ID))
	require.Contains(t, env.reloadProduct(t, product.ID).Reviews, review.ID)

	require.NoError(t, env.cascade.DeleteProduct(ctx, env.reloadProduct(t, product.ID)))

	_, err := env.products.FindByID(ctx, product.ID)
	assert.ErrorIs(t, err, repository.ErrProductNotFound)
}

func TestCascadeCoordinator_DeleteUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	victim := env.seedUser(t, entity.RoleUser)
	otherOwner := env.seedUser(t, entity.RoleUser)
	category := env.seedCategory(t, "Electronics")

	ownProduct := env.seedProduct(t, victim, category, "Camera")
	otherProduct := env.seedProduct(t, otherOwner, category, "Tripod")

	// The victim reviewed someone else's product; that product survives
	// with its aggregate refreshed.
	ownReview := env.seedReview(t, victim, otherProduct, 5)
	require.Equal(t, 1, env.reloadProduct(t, otherProduct.ID).RatingsQuantity)

	require.NoError(t, env.cascade.DeleteUser(ctx, env.reloadUser(t, victim.ID)))

	_, err := env.users.FindByID(ctx, victim.ID)
	assert.ErrorIs(t, err, repository.ErrUserNotFound)

	_, err = env.products.FindByID(ctx, ownProduct.ID)
	assert.ErrorIs(t, err, repository.ErrProductNotFound)

	_, err = env.reviews.FindByID(ctx, ownReview.ID)
	assert.ErrorIs(t, err, repository.ErrReviewNotFound)

	surviving := env.reloadProduct(t, otherProduct.ID)
	assert.Equal(t, 0, surviving.RatingsQuantity)
	assert.Zero(t, surviving.AvgRating)
	assert.NotContains(t, surviving.Reviews, ownReview.ID)

	// The owned product's category membership was unwound by its nested
	// cascade, while the surviving product stays categorized.
	reloadedCategory := env.reloadCategory(t, category.ID)
	assert.NotContains(t, reloadedCategory.Products, ownProduct.ID)
	assert.Contains(t, reloadedCategory.Products, otherProduct.ID)
}

func TestCascadeCoordinator_DeleteUser_DetachesOwnWishlist(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	victim := env.seedUser(t, entity.RoleUser)
	otherOwner := env.seedUser(t, entity.RoleUser)
	category := env.seedCategory(t, "Electronics")
	surviving := env.seedProduct(t, otherOwner, category, "Tripod")

	require.NoError(t, env.graph.Attach(ctx, EdgeWishlist, victim.ID, surviving.ID))
	require.Contains(t, env.reloadProduct(t, surviving.ID).UsersWishlisted, victim.ID)

	require.NoError(t, env.cascade.DeleteUser(ctx, env.reloadUser(t, victim.ID)))

	// The dead user's id must not linger in the surviving product's
	// wishlisted-by set.
	assert.NotContains(t, env.reloadProduct(t, surviving.ID).UsersWishlisted, victim.ID)
}

func TestCascadeCoordinator_DeleteUser_SkipsMissingSecondaries(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	victim := env.seedUser(t, entity.RoleUser)
	category := env.seedCategory(t, "Electronics")
	product := env.seedProduct(t, victim, category, "Camera")

	// Delete the product record directly so the user's ownership set holds
	// a dangling id, as after an aborted earlier cascade.
	require.NoError(t, env.products.Delete(ctx, product.ID))

	require.NoError(t, env.cascade.DeleteUser(ctx, env.reloadUser(t, victim.ID)))

	_, err := env.users.FindByID(ctx, victim.ID)
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestCascadeCoordinator_DeleteReview(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.seedUser(t, entity.RoleUser)
	reviewer := env.seedUser(t, entity.RoleUser)
	category := env.seedCategory(t, "Electronics")
	product := env.seedProduct(t, owner, category, "Camera")
	review := env.seedReview(t, reviewer, product, 4)

	loaded, err := env.reviews.FindByID(ctx, review.ID)
	require.NoError(t, err)
	require.NoError(t, env.cascade.DeleteReview(ctx, loaded))

	_, err = env.reviews.FindByID(ctx, review.ID)
	assert.ErrorIs(t, err, repository.ErrReviewNotFound)
	assert.NotContains(t, env.reloadUser(t, reviewer.ID).Reviews, review.ID)
	assert.NotContains(t, env.reloadProduct(t, product.ID).Reviews, review.ID)
	assert.Equal(t, 0, env.reloadProduct(t, product.ID).RatingsQuantity)
}

func TestCascadeCoordinator_PublishesEvents(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.seedUser(t, entity.RoleUser)
	category := env.seedCategory(t, "Electronics")
	product := env.seedProduct(t, owner, category, "Camera")

	require.NoError(t, env.cascade.DeleteProduct(ctx, env.reloadProduct(t, product.ID)))

	types := make([]string, 0, len(env.events.events))
	for _, event := range env.events.events {
		types = append(types, event.Type)
	}
	assert.Contains(t, types, service.EventProductDeleted)
}

// failingUserRepository errors on ownership detach to force a cascade abort
// partway through.
type failingUserRepository struct {
	repository.UserRepository
}

func (r *failingUserRepository) RemoveProductOwned(context.Context, uuid.UUID, uuid.UUID) error {
	return errors.New("store offline")
}

func TestCascadeCoordinator_DeleteProduct_SurfacesPartialFailure(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.seedUser(t, entity.RoleUser)
	category := env.seedCategory(t, "Electronics")
	product := env.seedProduct(t, owner, category, "Camera")

	users := &failingUserRepository{UserRepository: env.users}
	graph := NewRelationshipGraph(RelationshipGraphParams{
		Users:      users,
		Products:   env.products,
		Categories: env.categories,
		Reviews:    env.reviews,
	})
	cascade := NewCascadeCoordinator(CascadeCoordinatorParams{
		Users:    users,
		Products: env.products,
		Reviews:  env.reviews,
		Graph:    graph,
		Rating:   env.rating,
		Events:   env.events,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	err := cascade.DeleteProduct(ctx, env.reloadProduct(t, product.ID))
	require.Error(t, err)

	var cascadeErr *domainerrors.CascadeError
	require.ErrorAs(t, err, &cascadeErr)
	assert.Equal(t, "product", cascadeErr.Root)
	assert.Equal(t, product.ID, cascadeErr.RootID)
	assert.Equal(t, "detach ownership edge", cascadeErr.Step)

	// Steps before the abort already applied; there is no rollback.
	assert.NotContains(t, env.reloadCategory(t, category.ID).Products, product.ID)

	// The record itself survives, so a retry can converge.
	_, err = env.products.FindByID(ctx, product.ID)
	assert.NoError(t, err)
}

func TestCascadeError_UnwrapsCause(t *testing.T) {
	cause := errors.New("store offline")
	err := domainerrors.NewCascadeError("product", uuid.New(), "detach wishlist edges", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "PARTIAL_CASCADE_FAILURE", err.ErrorCode())
	assert.Contains(t, err.Error(), "detach wishlist edges")
}
