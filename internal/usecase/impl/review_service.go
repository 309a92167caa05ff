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
	"souq/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

type reviewService struct {
	users    repository.UserRepository
	products repository.ProductRepository
	reviews  repository.ReviewRepository
	graph    *RelationshipGraph
	rating   *RatingService
	cascade  *CascadeCoordinator
	authz    usecase.Authorizer
	events   service.EventPublisher
	logger   *slog.Logger
}

// ReviewServiceParams holds dependencies for ReviewService, injected by Fx.
type ReviewServiceParams struct {
	fx.In

	Users    repository.UserRepository
	Products repository.ProductRepository
	Reviews  repository.ReviewRepository
	Graph    *RelationshipGraph
	Rating   *RatingService
	Cascade  *CascadeCoordinator
	Authz    usecase.Authorizer
	Events   service.EventPublisher
	Logger   *slog.Logger
}

// NewReviewService creates a new review service instance.
func NewReviewService(params ReviewServiceParams) usecase.ReviewUsecase {
	return &reviewService{
		users:    params.Users,
		products: params.Products,
		reviews:  params.Reviews,
		graph:    params.Graph,
		rating:   params.Rating,
		cascade:  params.Cascade,
		authz:    params.Authz,
		events:   params.Events,
		logger:   params.Logger,
	}
}

// AddReview creates a review, attaches the authorship edge on the caller
// and the product-review edge on the product, then refreshes the product's
// rating aggregate. The record is created first so both attachments see an
// existing review; a failure between the writes leaves a retriable
// half-linked review (no rollback, by the stated store model).
func (s *reviewService) AddReview(ctx context.Context, caller *entity.User, productID uuid.UUID, input *usecase.AddReviewInput) (*entity.Review, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}
		return nil, errors.Wrap(err, "load product")
	}

	if !entity.ValidRating(input.Rating) {
		return nil, domainerrors.ErrInvalidRating
	}

	now := time.Now()
	review := &entity.Review{
		ID:        uuid.New(),
		Owner:     caller.ID,
		Product:   product.ID,
		Rating:    input.Rating,
		Comment:   input.Comment,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, errors.Wrap(err, "create review")
	}

	if err := s.graph.Attach(ctx, EdgeAuthorship, caller.ID, review.ID); err != nil {
		return nil, err
	}

	if err := s.graph.Attach(ctx, EdgeProductReviews, product.ID, review.ID); err != nil {
		return nil, err
	}

	if err := s.rating.Recompute(ctx, product.ID); err != nil {
		return nil, err
	}

	s.publishWritten(ctx, review)

	return review, nil
}

// GetProductReviews retrieves every review written for a product.
func (s *reviewService) GetProductReviews(ctx context.Context, productID uuid.UUID) ([]*entity.Review, error) {
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}
		return nil, errors.Wrap(err, "load product")
	}

	reviews, err := s.reviews.FindByProduct(ctx, productID)
	if err != nil {
		return nil, errors.Wrap(err, "load product reviews")
	}

	return reviews, nil
}

// GetUserReviews resolves a user's authorship set to review documents,
// skipping ids that no longer resolve.
func (s *reviewService) GetUserReviews(ctx context.Context, userID uuid.UUID) ([]*entity.Review, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}
		return nil, errors.Wrap(err, "load user")
	}

	reviews := make([]*entity.Review, 0, len(user.Reviews))
	for _, reviewID := range user.Reviews {
		review, err := s.reviews.FindByID(ctx, reviewID)
		if err != nil {
			if errors.Is(err, repository.ErrReviewNotFound) {
				continue
			}
			return nil, errors.Wrap(err, "load review")
		}
		reviews = append(reviews, review)
	}

	return reviews, nil
}

// UpdateReview applies rating/comment changes after the reviewOwner
// capability check and refreshes the aggregate when the rating changed.
func (s *reviewService) UpdateReview(ctx context.Context, caller *entity.User, id uuid.UUID, input *usecase.UpdateReviewInput) (*entity.Review, error) {
	review, err := s.reviews.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return nil, domainerrors.ErrReviewNotFound
		}
		return nil, errors.Wrap(err, "load review")
	}

	if err := s.authz.Authorize(caller, usecase.CapabilityReviewOwner, id); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	ratingChanged := false
	if input.Rating != nil {
		if !entity.ValidRating(*input.Rating) {
			return nil, domainerrors.ErrInvalidRating
		}
		fields["rating"] = *input.Rating
		ratingChanged = *input.Rating != review.Rating
	}
	if input.Comment != nil {
		fields["comment"] = *input.Comment
	}

	if len(fields) == 0 {
		return review, nil
	}
	fields["updatedAt"] = time.Now()

	if err := s.reviews.UpdateFields(ctx, id, fields); err != nil {
		return nil, errors.Wrap(err, "update review")
	}

	if ratingChanged {
		if err := s.rating.Recompute(ctx, review.Product); err != nil {
			return nil, err
		}
	}

	updated, err := s.reviews.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "reload review")
	}

	s.publishWritten(ctx, updated)

	return updated, nil
}

// DeleteReview removes a review through the cascade coordinator after the
// reviewOwner capability check.
func (s *reviewService) DeleteReview(ctx context.Context, caller *entity.User, id uuid.UUID) error {
	review, err := s.reviews.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return domainerrors.ErrReviewNotFound
		}
		return errors.Wrap(err, "load review")
	}

	if err := s.authz.Authorize(caller, usecase.CapabilityReviewOwner, id); err != nil {
		return err
	}

	return s.cascade.DeleteReview(ctx, review)
}

func (s *reviewService) publishWritten(ctx context.Context, review *entity.Review) {
	event := &service.CatalogEvent{
		Type:       service.EventReviewWritten,
		EntityID:   review.ID.String(),
		ActorID:    review.Owner.String(),
		OccurredAt: time.Now().UTC(),
	}

	if err := s.events.PublishCatalogEvent(ctx, event); err != nil {
		s.logger.Warn("failed to publish review event",
			slog.String("review_id", event.EntityID),
			slog.Any("error", err),
		)
	}
}
