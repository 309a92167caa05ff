package entity

import (
	"time"

	"github.com/google/uuid"
)

// Product is a catalog listing. Category and OwnedBy are the single-valued
// halves of the categorization and ownership edges; Reviews and
// UsersWishlisted are set-valued halves mirrored on Review and User
// documents.
type Product struct {
	ID          uuid.UUID
	Name        string
	Price       float64
	Description string
	Photo       string

	Category uuid.UUID // Required; must reference an existing Category.
	OwnedBy  uuid.UUID // The listing user.

	Reviews         []uuid.UUID // Reviews written for this product.
	UsersWishlisted []uuid.UUID // Users that wishlisted this product.

	// Derived rating aggregate, recomputed from the full review set after
	// every review mutation. Never written except by the recomputation.
	RatingsQuantity int
	AvgRating       float64

	CreatedAt time.Time
	UpdatedAt time.Time
}
