// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers
// and the infrastructure layer.
//
// Every operation is single-document: implementations must not be assumed
// to provide any ordering or atomicity across documents. Set mutators
// (Add*/Remove*/Pull*) are idempotent — adding a present member or removing
// an absent one succeeds without effect, and mutating a missing document is
// a no-op rather than an error, so edge maintenance stays safely retryable.
package repository

import (
	"context"

	"souq/internal/domain/entity"
	"souq/internal/errors"

	"github.com/google/uuid"
)

// Domain-specific errors for user persistence.
var (
	// ErrUserNotFound is returned when a user document is absent.
	ErrUserNotFound = errors.New("user not found")
	// ErrDuplicateEmail is returned when creating a user with a taken email.
	ErrDuplicateEmail = errors.New("email already registered")
)

// UserRepository defines the standard operations for user persistence.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a single user by their email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByResetToken retrieves the user holding the given hashed password
	// reset token.
	FindByResetToken(ctx context.Context, tokenHash string) (*entity.User, error)

	// List retrieves a page of users.
	List(ctx context.Context, limit, offset int) ([]*entity.User, error)

	// Create persists a new user document.
	Create(ctx context.Context, user *entity.User) error

	// UpdateFields issues a targeted field-level update on a user document.
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error

	// AddProductOwned inserts a product id into the user's ownership set.
	AddProductOwned(ctx context.Context, userID, productID uuid.UUID) error

	// RemoveProductOwned removes a product id from the user's ownership set.
	RemoveProductOwned(ctx context.Context, userID, productID uuid.UUID) error

	// AddWishlist inserts a product id into the user's wishlist set.
	AddWishlist(ctx context.Context, userID, productID uuid.UUID) error

	// RemoveWishlist removes a product id from the user's wishlist set.
	RemoveWishlist(ctx context.Context, userID, productID uuid.UUID) error

	// PullWishlistFromAll removes a product id from the wishlist of every
	// user holding it. Used by cascades.
	PullWishlistFromAll(ctx context.Context, productID uuid.UUID) error

	// AddReview inserts a review id into the user's authorship set.
	AddReview(ctx context.Context, userID, reviewID uuid.UUID) error

	// RemoveReview removes a review id from the user's authorship set.
	RemoveReview(ctx context.Context, userID, reviewID uuid.UUID) error

	// Delete removes the user document.
	Delete(ctx context.Context, id uuid.UUID) error
}
