package repository

import (
	"context"

	"souq/internal/domain/entity"
	"souq/internal/errors"

	"github.com/google/uuid"
)

// ErrProductNotFound is returned when a product document is absent.
var ErrProductNotFound = errors.New("product not found")

// ProductRepository defines the standard operations for product persistence.
type ProductRepository interface {
	// FindByID retrieves a single product by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// List retrieves a page of products.
	List(ctx context.Context, limit, offset int) ([]*entity.Product, error)

	// SearchByName retrieves a page of products whose name contains the
	// keyword, case-insensitively.
	SearchByName(ctx context.Context, keyword string, limit, offset int) ([]*entity.Product, error)

	// Create persists a new product document.
	Create(ctx context.Context, product *entity.Product) error

	// UpdateFields issues a targeted field-level update on a product document.
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error

	// AddReview inserts a review id into the product's review set.
	AddReview(ctx context.Context, productID, reviewID uuid.UUID) error

	// RemoveReview removes a review id from the product's review set.
	RemoveReview(ctx context.Context, productID, reviewID uuid.UUID) error

	// AddWishlister inserts a user id into the product's wishlisted-by set.
	AddWishlister(ctx context.Context, productID, userID uuid.UUID) error

	// RemoveWishlister removes a user id from the product's wishlisted-by set.
	RemoveWishlister(ctx context.Context, productID, userID uuid.UUID) error

	// SetRatingStats persists the recomputed rating aggregate.
	SetRatingStats(ctx context.Context, productID uuid.UUID, quantity int, avg float64) error

	// Delete removes the product document.
	Delete(ctx context.Context, id uuid.UUID) error
}
