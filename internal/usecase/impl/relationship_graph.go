// Package impl contains the use case implementations: the relationship
// graph, the authorization checker, the rating recomputation, the cascade
// deletion coordinator and the per-entity services built on top of them.
package impl

import (
	"context"

	domainerrors "souq/internal/domain/errors"
	"souq/internal/domain/repository"
	"souq/internal/errors"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// EdgeKind names one of the bidirectional associations stored redundantly
// on both endpoint documents.
type EdgeKind string

const (
	// EdgeOwnership links User.ProductsOwned with Product.OwnedBy.
	EdgeOwnership EdgeKind = "ownership"
	// EdgeWishlist links User.WishList with Product.UsersWishlisted.
	EdgeWishlist EdgeKind = "wishlist"
	// EdgeCategorization links Category.Products with Product.Category.
	EdgeCategorization EdgeKind = "categorization"
	// EdgeAuthorship links User.Reviews with Review.Owner.
	EdgeAuthorship EdgeKind = "authorship"
	// EdgeProductReviews links Product.Reviews with Review.Product.
	EdgeProductReviews EdgeKind = "productReviews"
)

// RelationshipGraph centralizes every edge mutation. The store keeps
// relationships denormalized on both endpoints with no foreign-key engine,
// so the one invariant that matters — both sides updated, never just one —
// is enforced here instead of being scattered across the entity services.
//
// The underlying store offers no cross-document atomicity. Each operation
// issues two single-document writes in a fixed order; a crash between them
// leaves a half-applied edge. Operations are idempotent so a retry converges
// rather than duplicating.
type RelationshipGraph struct {
	users      repository.UserRepository
	products   repository.ProductRepository
	categories repository.CategoryRepository
	reviews    repository.ReviewRepository
}

// RelationshipGraphParams holds dependencies for RelationshipGraph, injected by Fx.
type RelationshipGraphParams struct {
	fx.In

	Users      repository.UserRepository
	Products   repository.ProductRepository
	Categories repository.CategoryRepository
	Reviews    repository.ReviewRepository
}

// NewRelationshipGraph creates the edge-mutation primitive used by the
// entity services and the cascade coordinator.
func NewRelationshipGraph(params RelationshipGraphParams) *RelationshipGraph {
	return &RelationshipGraph{
		users:      params.Users,
		products:   params.Products,
		categories: params.Categories,
		reviews:    params.Reviews,
	}
}

// Attach inserts idB into A's edge field and idA into B's edge field.
// Both endpoints must exist, otherwise an InvalidReference error is
// returned and nothing is written. Attaching an already-present pair on a
// set-valued edge is a no-op; the check is made against the loaded document
// rather than assumed from storage semantics.
func (g *RelationshipGraph) Attach(ctx context.Context, kind EdgeKind, idA, idB uuid.UUID) error {
	switch kind {
	case EdgeOwnership:
		user, err := g.users.FindByID(ctx, idA)
		if err != nil {
			return invalidReference("user", idA, err)
		}
		if _, err := g.products.FindByID(ctx, idB); err != nil {
			return invalidReference("product", idB, err)
		}
		if user.OwnsProduct(idB) {
			return nil
		}
		if err := g.users.AddProductOwned(ctx, idA, idB); err != nil {
			return errors.Wrap(err, "add product to ownership set")
		}
		return errors.Wrap(g.products.UpdateFields(ctx, idB, map[string]any{"ownedBy": idA}), "set product owner")

	case EdgeWishlist:
		user, err := g.users.FindByID(ctx, idA)
		if err != nil {
			return invalidReference("user", idA, err)
		}
		if _, err := g.products.FindByID(ctx, idB); err != nil {
			return invalidReference("product", idB, err)
		}
		if user.HasWishlisted(idB) {
			return nil
		}
		if err := g.users.AddWishlist(ctx, idA, idB); err != nil {
			return errors.Wrap(err, "add product to wishlist")
		}
		return errors.Wrap(g.products.AddWishlister(ctx, idB, idA), "add user to wishlisted-by set")

	case EdgeCategorization:
		if _, err := g.categories.FindByID(ctx, idA); err != nil {
			return invalidReference("category", idA, err)
		}
		if _, err := g.products.FindByID(ctx, idB); err != nil {
			return invalidReference("product", idB, err)
		}
		if err := g.categories.AddProduct(ctx, idA, idB); err != nil {
			return errors.Wrap(err, "add product to category set")
		}
		return errors.Wrap(g.products.UpdateFields(ctx, idB, map[string]any{"category": idA}), "set product category")

	case EdgeAuthorship:
		user, err := g.users.FindByID(ctx, idA)
		if err != nil {
			return invalidReference("user", idA, err)
		}
		if _, err := g.reviews.FindByID(ctx, idB); err != nil {
			return invalidReference("review", idB, err)
		}
		if user.AuthoredReview(idB) {
			return nil
		}
		if err := g.users.AddReview(ctx, idA, idB); err != nil {
			return errors.Wrap(err, "add review to authorship set")
		}
		return errors.Wrap(g.reviews.UpdateFields(ctx, idB, map[string]any{"owner": idA}), "set review owner")

	case EdgeProductReviews:
		if _, err := g.products.FindByID(ctx, idA); err != nil {
			return invalidReference("product", idA, err)
		}
		if _, err := g.reviews.FindByID(ctx, idB); err != nil {
			return invalidReference("review", idB, err)
		}
		if err := g.products.AddReview(ctx, idA, idB); err != nil {
			return errors.Wrap(err, "add review to product set")
		}
		return errors.Wrap(g.reviews.UpdateFields(ctx, idB, map[string]any{"product": idA}), "set review product")
	}

	return errors.Errorf("unknown edge kind %q", kind)
}

// Detach removes idB from A's edge field and idA from B's edge field.
// A missing edge or a missing endpoint is a no-op, not an error, so
// retries and re-entrant cascades converge. Single-valued endpoints are
// left untouched: their holder is either deleted right after or re-attached
// to a new counterpart.
func (g *RelationshipGraph) Detach(ctx context.Context, kind EdgeKind, idA, idB uuid.UUID) error {
	switch kind {
	case EdgeOwnership:
		return errors.Wrap(g.users.RemoveProductOwned(ctx, idA, idB), "remove product from ownership set")

	case EdgeWishlist:
		if err := g.users.RemoveWishlist(ctx, idA, idB); err != nil {
			return errors.Wrap(err, "remove product from wishlist")
		}
		return errors.Wrap(g.products.RemoveWishlister(ctx, idB, idA), "remove user from wishlisted-by set")

	case EdgeCategorization:
		return errors.Wrap(g.categories.RemoveProduct(ctx, idA, idB), "remove product from category set")

	case EdgeAuthorship:
		return errors.Wrap(g.users.RemoveReview(ctx, idA, idB), "remove review from authorship set")

	case EdgeProductReviews:
		return errors.Wrap(g.products.RemoveReview(ctx, idA, idB), "remove review from product set")
	}

	return errors.Errorf("unknown edge kind %q", kind)
}

// DetachAll removes every occurrence of id from the many side of an edge
// across all holders. Only the wishlist edge needs it: a deleted product
// must disappear from every wishlist, while the other edges are unwound by
// the cascade's explicit per-entity loops.
func (g *RelationshipGraph) DetachAll(ctx context.Context, kind EdgeKind, id uuid.UUID) error {
	if kind != EdgeWishlist {
		return errors.Errorf("detachAll is not supported for edge kind %q", kind)
	}

	return errors.Wrap(g.users.PullWishlistFromAll(ctx, id), "pull product from all wishlists")
}

// invalidReference maps a repository not-found to the InvalidReference
// error kind; any other failure is passed through wrapped.
func invalidReference(entityKind string, id uuid.UUID, err error) error {
	switch {
	case errors.Is(err, repository.ErrUserNotFound),
		errors.Is(err, repository.ErrProductNotFound),
		errors.Is(err, repository.ErrCategoryNotFound),
		errors.Is(err, repository.ErrReviewNotFound):
		return domainerrors.ErrInvalidReference.WithDetails(entityKind + " " + id.String() + " does not exist")
	default:
		return errors.Wrapf(err, "load %s %s", entityKind, id)
	}
}
