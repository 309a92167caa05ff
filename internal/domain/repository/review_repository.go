package repository

import (
	"context"

	"souq/internal/domain/entity"
	"souq/internal/errors"

	"github.com/google/uuid"
)

// ErrReviewNotFound is returned when a review document is absent.
var ErrReviewNotFound = errors.New("review not found")

// ReviewRepository defines the standard operations for review persistence.
type ReviewRepository interface {
	// FindByID retrieves a single review by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error)

	// FindByProduct retrieves every review written for a product. The rating
	// recomputation reads this full set on every review mutation.
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]*entity.Review, error)

	// Create persists a new review document.
	Create(ctx context.Context, review *entity.Review) error

	// UpdateFields issues a targeted field-level update on a review document.
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error

	// Delete removes the review document.
	Delete(ctx context.Context, id uuid.UUID) error
}
