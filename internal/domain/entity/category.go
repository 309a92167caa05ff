package entity

import (
	"time"

	"github.com/google/uuid"
)

// Category groups products. Products is the set-valued half of the
// categorization edge; the single-valued half is Product.Category.
type Category struct {
	ID       uuid.UUID
	Name     string // Unique.
	Products []uuid.UUID

	CreatedAt time.Time
	UpdatedAt time.Time
}
