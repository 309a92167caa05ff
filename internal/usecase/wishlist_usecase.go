package usecase

import (
	"context"

	"souq/internal/domain/entity"

	"github.com/google/uuid"
)

// WishlistUsecase covers the wishlist edge between users and products.
type WishlistUsecase interface {
	// AddToWishlist attaches the wishlist edge between the caller and a
	// product. An already-wishlisted product is rejected with a conflict;
	// duplicates are never produced.
	AddToWishlist(ctx context.Context, caller *entity.User, productID uuid.UUID) ([]uuid.UUID, error)

	// RemoveFromWishlist detaches the wishlist edge. Removing a product
	// that is not wishlisted is an idempotent no-op.
	RemoveFromWishlist(ctx context.Context, caller *entity.User, productID uuid.UUID) error

	// GetWishlist retrieves the products on a user's wishlist.
	GetWishlist(ctx context.Context, userID uuid.UUID) ([]*entity.Product, error)
}
