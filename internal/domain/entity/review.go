package entity

import (
	"time"

	"github.com/google/uuid"
)

// Rating bounds enforced on review create and update.
const (
	MinRating = 0
	MaxRating = 5
)

// Review is a user's rating of a product. Owner and Product are the
// single-valued halves of the authorship and product-review edges.
type Review struct {
	ID      uuid.UUID
	Owner   uuid.UUID // Required; the authoring user.
	Product uuid.UUID // Required; the reviewed product.
	Rating  float64   // In [MinRating, MaxRating].
	Comment string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidRating reports whether a rating value is inside the allowed range.
func ValidRating(rating float64) bool {
	return rating >= MinRating && rating <= MaxRating
}
