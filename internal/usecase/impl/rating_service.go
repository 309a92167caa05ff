package impl

import (
	"context"

	"souq/internal/domain/repository"
	"souq/internal/errors"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// RatingService keeps Product.RatingsQuantity and Product.AvgRating equal
// to the count and mean of the product's current review set. It is a
// derived-state refresh, not a stream aggregate: every call reads the full
// review set and recomputes from scratch, trading efficiency for
// correctness simplicity.
type RatingService struct {
	products repository.ProductRepository
	reviews  repository.ReviewRepository
}

// RatingServiceParams holds dependencies for RatingService, injected by Fx.
type RatingServiceParams struct {
	fx.In

	Products repository.ProductRepository
	Reviews  repository.ReviewRepository
}

// NewRatingService creates the rating aggregate recomputation service.
func NewRatingService(params RatingServiceParams) *RatingService {
	return &RatingService{
		products: params.Products,
		reviews:  params.Reviews,
	}
}

// Recompute refreshes the rating aggregate of one product. An empty review
// set resets both the quantity and the average to zero rather than leaving
// stale values. A product that no longer exists is tolerated: the write is
// a no-op when a concurrent cascade already removed the document.
func (s *RatingService) Recompute(ctx context.Context, productID uuid.UUID) error {
	reviews, err := s.reviews.FindByProduct(ctx, productID)
	if err != nil {
		return errors.Wrap(err, "load reviews for rating recomputation")
	}

	quantity := len(reviews)
	avg := 0.0
	if quantity > 0 {
		sum := 0.0
		for _, review := range reviews {
			sum += review.Rating
		}
		avg = sum / float64(quantity)
	}

	return errors.Wrap(s.products.SetRatingStats(ctx, productID, quantity, avg), "persist rating aggregate")
}
