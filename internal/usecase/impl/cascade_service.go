package impl

import (
	"context"
	"log/slog"
	"time"

	"souq/internal/domain/entity"
	domainerrors "souq/internal/domain/errors"
	"souq/internal/domain/repository"
	"souq/internal/domain/service"
	"souq/internal/errors"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// CascadeCoordinator deletes an entity and every edge that would otherwise
// dangle, in a fixed order, with idempotent re-entry.
//
// The store has no multi-document transactions and the coordinator performs
// no rollback: a failure partway leaves edges updated for completed steps
// but not later ones. Such failures are surfaced as CascadeError
// (PARTIAL_CASCADE_FAILURE) so callers can tell an inconsistent store from
// a refused operation. A "not found" on a secondary entity mid-cascade is
// treated as already satisfied and skipped, which makes a retry of an
// aborted cascade converge.
//
// Known race, inherited from the original design: a concurrent writer can
// attach an edge to the root while its cascade is running (e.g. wishlisting
// a product that is mid-deletion). The coordinator does not serialize per
// root id; every edge operation is idempotent and retry-safe instead, and
// repair is a caller/out-of-band policy decision.
type CascadeCoordinator struct {
	users    repository.UserRepository
	products repository.ProductRepository
	reviews  repository.ReviewRepository
	graph    *RelationshipGraph
	rating   *RatingService
	events   service.EventPublisher
	logger   *slog.Logger
}

// CascadeCoordinatorParams holds dependencies for CascadeCoordinator, injected by Fx.
type CascadeCoordinatorParams struct {
	fx.In

	Users    repository.UserRepository
	Products repository.ProductRepository
	Reviews  repository.ReviewRepository
	Graph    *RelationshipGraph
	Rating   *RatingService
	Events   service.EventPublisher
	Logger   *slog.Logger
}

// NewCascadeCoordinator creates the cascade deletion coordinator.
func NewCascadeCoordinator(params CascadeCoordinatorParams) *CascadeCoordinator {
	return &CascadeCoordinator{
		users:    params.Users,
		products: params.Products,
		reviews:  params.Reviews,
		graph:    params.Graph,
		rating:   params.Rating,
		events:   params.Events,
		logger:   params.Logger,
	}
}

// DeleteProduct removes a product, its edges and its reviews:
//
//  1. detach from its category
//  2. remove it from every wishlist holding it
//  3. detach the ownership edge on its owner
//  4. delete every review written for it (authorship edge first), skipping
//     reviews already gone
//  5. delete the product record
//
// The caller must have loaded the product and passed authorization; the
// coordinator only orchestrates writes.
func (c *CascadeCoordinator) DeleteProduct(ctx context.Context, product *entity.Product) error {
	if err := c.deleteProduct(ctx, product); err != nil {
		return err
	}

	c.publish(ctx, service.EventProductDeleted, product.ID)

	return nil
}

func (c *CascadeCoordinator) deleteProduct(ctx context.Context, product *entity.Product) error {
	rootID := product.ID

	if err := c.graph.Detach(ctx, EdgeCategorization, product.Category, rootID); err != nil {
		return domainerrors.NewCascadeError("product", rootID, "detach category edge", err)
	}

	if err := c.graph.DetachAll(ctx, EdgeWishlist, rootID); err != nil {
		return domainerrors.NewCascadeError("product", rootID, "detach wishlist edges", err)
	}

	if err := c.graph.Detach(ctx, EdgeOwnership, product.OwnedBy, rootID); err != nil {
		return domainerrors.NewCascadeError("product", rootID, "detach ownership edge", err)
	}

	for _, reviewID := range product.Reviews {
		review, err := c.reviews.FindByID(ctx, reviewID)
		if err != nil {
			if errors.Is(err, repository.ErrReviewNotFound) {
				// Listed on the product but already deleted: nothing to unwind.
				continue
			}
			return domainerrors.NewCascadeError("product", rootID, "load review "+reviewID.String(), err)
		}

		// The product is mid-deletion, so the aggregate refresh is skipped.
		if err := c.deleteReview(ctx, review, false); err != nil {
			return domainerrors.NewCascadeError("product", rootID, "delete review "+reviewID.String(), err)
		}
	}

	if err := c.products.Delete(ctx, rootID); err != nil && !errors.Is(err, repository.ErrProductNotFound) {
		return domainerrors.NewCascadeError("product", rootID, "delete product record", err)
	}

	return nil
}

// DeleteUser removes an account after unwinding everything that hangs off
// it: every review the user authored, then every product the user owns
// (each with the full product cascade), then the user's own wishlist edges,
// then the user record itself. Reviews and products must be fully unwound
// before the user disappears — the nested operations are authorized against
// the still-live caller.
func (c *CascadeCoordinator) DeleteUser(ctx context.Context, user *entity.User) error {
	rootID := user.ID

	for _, reviewID := range user.Reviews {
		review, err := c.reviews.FindByID(ctx, reviewID)
		if err != nil {
			if errors.Is(err, repository.ErrReviewNotFound) {
				continue
			}
			return domainerrors.NewCascadeError("user", rootID, "load review "+reviewID.String(), err)
		}

		if err := c.deleteReview(ctx, review, true); err != nil {
			return domainerrors.NewCascadeError("user", rootID, "delete review "+reviewID.String(), err)
		}
	}

	for _, productID := range user.ProductsOwned {
		product, err := c.products.FindByID(ctx, productID)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				continue
			}
			return domainerrors.NewCascadeError("user", rootID, "load product "+productID.String(), err)
		}

		if err := c.deleteProduct(ctx, product); err != nil {
			return domainerrors.NewCascadeError("user", rootID, "delete product "+productID.String(), err)
		}
	}

	// The user's outgoing wishlist edges: without this the dead user's id
	// would linger in Product.UsersWishlisted of every wishlisted product.
	for _, productID := range user.WishList {
		if err := c.graph.Detach(ctx, EdgeWishlist, rootID, productID); err != nil {
			return domainerrors.NewCascadeError("user", rootID, "detach wishlist edge "+productID.String(), err)
		}
	}

	if err := c.users.Delete(ctx, rootID); err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return domainerrors.NewCascadeError("user", rootID, "delete user record", err)
	}

	c.publish(ctx, service.EventUserDeleted, rootID)

	return nil
}

// DeleteReview removes a standalone review: authorship edge, product edge,
// record, then the product's rating aggregate.
func (c *CascadeCoordinator) DeleteReview(ctx context.Context, review *entity.Review) error {
	if err := c.deleteReview(ctx, review, true); err != nil {
		return domainerrors.NewCascadeError("review", review.ID, "delete review", err)
	}

	c.publish(ctx, service.EventReviewDeleted, review.ID)

	return nil
}

// deleteReview is the review-deletion sub-procedure shared by the
// standalone path and the nested cascades. recomputeRating is false when
// the reviewed product is itself mid-deletion.
func (c *CascadeCoordinator) deleteReview(ctx context.Context, review *entity.Review, recomputeRating bool) error {
	if err := c.graph.Detach(ctx, EdgeAuthorship, review.Owner, review.ID); err != nil {
		return errors.Wrap(err, "detach authorship edge")
	}

	if err := c.graph.Detach(ctx, EdgeProductReviews, review.Product, review.ID); err != nil {
		return errors.Wrap(err, "detach product edge")
	}

	if err := c.reviews.Delete(ctx, review.ID); err != nil && !errors.Is(err, repository.ErrReviewNotFound) {
		return errors.Wrap(err, "delete review record")
	}

	if recomputeRating {
		return c.rating.Recompute(ctx, review.Product)
	}

	return nil
}

// publish emits a catalog event best-effort. A completed cascade is never
// failed because downstream notification failed.
func (c *CascadeCoordinator) publish(ctx context.Context, eventType string, entityID uuid.UUID) {
	event := &service.CatalogEvent{
		Type:       eventType,
		EntityID:   entityID.String(),
		OccurredAt: time.Now().UTC(),
	}

	if err := c.events.PublishCatalogEvent(ctx, event); err != nil {
		c.logger.Warn("failed to publish catalog event",
			slog.String("type", eventType),
			slog.String("entity_id", event.EntityID),
			slog.Any("error", err),
		)
	}
}
