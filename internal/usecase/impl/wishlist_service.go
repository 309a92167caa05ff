package impl

import (
	"context"

	"souq/internal/domain/entity"
	domainerrors "souq/internal/domain/errors"
	"souq/internal/domain/repository"
	"souq/internal/errors"
	"souq/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

type wishlistService struct {
	users    repository.UserRepository
	products repository.ProductRepository
	graph    *RelationshipGraph
}

// WishlistServiceParams holds dependencies for WishlistService, injected by Fx.
type WishlistServiceParams struct {
	fx.In

	Users    repository.UserRepository
	Products repository.ProductRepository
	Graph    *RelationshipGraph
}

// NewWishlistService creates a new wishlist service instance.
func NewWishlistService(params WishlistServiceParams) usecase.WishlistUsecase {
	return &wishlistService{
		users:    params.Users,
		products: params.Products,
		graph:    params.Graph,
	}
}

// AddToWishlist attaches the wishlist edge between the caller and the
// product. A pair that is already wishlisted is rejected with a conflict;
// the check runs against the caller's loaded edge set before any write, so
// duplicates are never produced.
func (s *wishlistService) AddToWishlist(ctx context.Context, caller *entity.User, productID uuid.UUID) ([]uuid.UUID, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}
		return nil, errors.Wrap(err, "load product")
	}

	if caller.HasWishlisted(product.ID) {
		return nil, domainerrors.ErrAlreadyWishlisted
	}

	if err := s.graph.Attach(ctx, EdgeWishlist, caller.ID, product.ID); err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, caller.ID)
	if err != nil {
		return nil, errors.Wrap(err, "reload user after wishlist attach")
	}

	return user.WishList, nil
}

// RemoveFromWishlist detaches the wishlist edge. Detaching an edge that
// does not exist is an idempotent no-op, tolerating retries.
func (s *wishlistService) RemoveFromWishlist(ctx context.Context, caller *entity.User, productID uuid.UUID) error {
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return domainerrors.ErrProductNotFound
		}
		return errors.Wrap(err, "load product")
	}

	return s.graph.Detach(ctx, EdgeWishlist, caller.ID, productID)
}

// GetWishlist resolves a user's wishlist to product documents. Ids that no
// longer resolve are skipped: a concurrent product cascade may not have
// reached this wishlist yet.
func (s *wishlistService) GetWishlist(ctx context.Context, userID uuid.UUID) ([]*entity.Product, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}
		return nil, errors.Wrap(err, "load user")
	}

	products := make([]*entity.Product, 0, len(user.WishList))
	for _, productID := range user.WishList {
		product, err := s.products.FindByID(ctx, productID)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				continue
			}
			return nil, errors.Wrap(err, "load wishlisted product")
		}
		products = append(products, product)
	}

	return products, nil
}
