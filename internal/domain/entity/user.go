// Package entity contains the core business objects of the catalog,
// stored as denormalized documents with the edge sets kept on both
// endpoints of every relationship.
package entity

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// User is an account in the marketplace. ProductsOwned, WishList and
// Reviews are denormalized edge sets; their mirror halves live on the
// Product and Review documents and are kept in sync by the relationship
// graph, never written directly by callers.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string // Unique login identifier.
	PasswordHash string
	Photo        string
	Role         Role

	ProductsOwned []uuid.UUID // Products this user listed for sale.
	WishList      []uuid.UUID // Products this user wishlisted.
	Reviews       []uuid.UUID // Reviews this user authored.

	// Password reset state. The token is stored hashed; the plaintext
	// token only ever travels in the reset email.
	PasswordResetToken   string
	PasswordResetExpires time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OwnsProduct reports whether the product id appears in the user's
// ownership edge set.
func (u *User) OwnsProduct(productID uuid.UUID) bool {
	return slices.Contains(u.ProductsOwned, productID)
}

// HasWishlisted reports whether the product id appears in the user's
// wishlist edge set.
func (u *User) HasWishlisted(productID uuid.UUID) bool {
	return slices.Contains(u.WishList, productID)
}

// AuthoredReview reports whether the review id appears in the user's
// authorship edge set.
func (u *User) AuthoredReview(reviewID uuid.UUID) bool {
	return slices.Contains(u.Reviews, reviewID)
}
