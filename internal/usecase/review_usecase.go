package usecase

import (
	"context"

	"souq/internal/domain/entity"

	"github.com/google/uuid"
)

// AddReviewInput carries the fields accepted at review creation.
type AddReviewInput struct {
	Rating  float64
	Comment string
}

// UpdateReviewInput carries the updatable review fields. Nil means keep.
type UpdateReviewInput struct {
	Rating  *float64
	Comment *string
}

// ReviewUsecase covers review lifecycle. Every mutation refreshes the
// reviewed product's rating aggregate.
type ReviewUsecase interface {
	// AddReview creates a review by the caller for a product, attaches the
	// authorship and product-review edges and recomputes the aggregate.
	AddReview(ctx context.Context, caller *entity.User, productID uuid.UUID, input *AddReviewInput) (*entity.Review, error)

	// GetProductReviews retrieves every review written for a product.
	GetProductReviews(ctx context.Context, productID uuid.UUID) ([]*entity.Review, error)

	// GetUserReviews retrieves every review authored by a user.
	GetUserReviews(ctx context.Context, userID uuid.UUID) ([]*entity.Review, error)

	// UpdateReview applies field changes; requires the reviewOwner
	// capability. Recomputes the aggregate when the rating changes.
	UpdateReview(ctx context.Context, caller *entity.User, id uuid.UUID, input *UpdateReviewInput) (*entity.Review, error)

	// DeleteReview detaches both edges, removes the review and recomputes
	// the aggregate; requires the reviewOwner capability.
	DeleteReview(ctx context.Context, caller *entity.User, id uuid.UUID) error
}
