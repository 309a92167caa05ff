package memory

import (
	"context"
	"sync"
	"time"

	"souq/internal/domain/entity"
	"souq/internal/domain/repository"
	"souq/internal/errors"

	"github.com/google/uuid"
)

// UserStore is the in-memory UserRepository.
type UserStore struct {
	mu    sync.RWMutex
	users map[uuid.UUID]*entity.User
}

// NewUserStore creates an empty in-memory user store.
func NewUserStore() *UserStore {
	return &UserStore{users: make(map[uuid.UUID]*entity.User)}
}

var _ repository.UserRepository = (*UserStore)(nil)

func cloneUser(u *entity.User) *entity.User {
	clone := *u
	clone.ProductsOwned = slicesClone(u.ProductsOwned)
	clone.WishList = slicesClone(u.WishList)
	clone.Reviews = slicesClone(u.Reviews)

	return &clone
}

func slicesClone(ids []uuid.UUID) []uuid.UUID {
	if ids == nil {
		return nil
	}

	return append([]uuid.UUID{}, ids...)
}

// FindByID retrieves a single user by their unique ID.
func (s *UserStore) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	return cloneUser(user), nil
}

// FindByEmail retrieves a single user by their email address.
func (s *UserStore) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.Email == email {
			return cloneUser(user), nil
		}
	}

	return nil, repository.ErrUserNotFound
}

// FindByResetToken retrieves the user holding the given hashed reset token.
func (s *UserStore) FindByResetToken(_ context.Context, tokenHash string) (*entity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if tokenHash == "" {
		return nil, repository.ErrUserNotFound
	}

	for _, user := range s.users {
		if user.PasswordResetToken == tokenHash {
			return cloneUser(user), nil
		}
	}

	return nil, repository.ErrUserNotFound
}

// List retrieves a page of users in insertion-independent id order.
func (s *UserStore) List(_ context.Context, limit, offset int) ([]*entity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]*entity.User, 0, len(s.users))
	for _, user := range s.users {
		users = append(users, cloneUser(user))
	}
	sortByID(users, func(u *entity.User) uuid.UUID { return u.ID })

	return page(users, limit, offset), nil
}

// Create persists a new user document, enforcing email uniqueness.
func (s *UserStore) Create(_ context.Context, user *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}

	s.users[user.ID] = cloneUser(user)

	return nil
}

// UpdateFields issues a targeted field-level update on a user document.
func (s *UserStore) UpdateFields(_ context.Context, id uuid.UUID, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}

	if email, ok := fields["email"].(string); ok {
		for _, existing := range s.users {
			if existing.ID != id && existing.Email == email {
				return repository.ErrDuplicateEmail
			}
		}
	}

	for name, value := range fields {
		switch name {
		case "name":
			user.Name = value.(string)
		case "email":
			user.Email = value.(string)
		case "photo":
			user.Photo = value.(string)
		case "password":
			user.PasswordHash = value.(string)
		case "passwordResetToken":
			user.PasswordResetToken = value.(string)
		case "passwordResetExpires":
			user.PasswordResetExpires = value.(time.Time)
		case "updatedAt":
			user.UpdatedAt = value.(time.Time)
		default:
			return errors.Errorf("unknown user field %q", name)
		}
	}

	return nil
}

// AddProductOwned inserts a product id into the user's ownership set.
func (s *UserStore) AddProductOwned(_ context.Context, userID, productID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user, ok := s.users[userID]; ok {
		user.ProductsOwned = addToSet(user.ProductsOwned, productID)
	}

	return nil
}

// RemoveProductOwned removes a product id from the user's ownership set.
func (s *UserStore) RemoveProductOwned(_ context.Context, userID, productID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user, ok := s.users[userID]; ok {
		user.ProductsOwned = pullFromSet(user.ProductsOwned, productID)
	}

	return nil
}

// AddWishlist inserts a product id into the user's wishlist set.
func (s *UserStore) AddWishlist(_ context.Context, userID, productID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user, ok := s.users[userID]; ok {
		user.WishList = addToSet(user.WishList, productID)
	}

	return nil
}

// RemoveWishlist removes a product id from the user's wishlist set.
func (s *UserStore) RemoveWishlist(_ context.Context, userID, productID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user, ok := s.users[userID]; ok {
		user.WishList = pullFromSet(user.WishList, productID)
	}

	return nil
}

// PullWishlistFromAll removes a product id from every wishlist holding it.
func (s *UserStore) PullWishlistFromAll(_ context.Context, productID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		user.WishList = pullFromSet(user.WishList, productID)
	}

	return nil
}

// AddReview inserts a review id into the user's authorship set.
func (s *UserStore) AddReview(_ context.Context, userID, reviewID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user, ok := s.users[userID]; ok {
		user.Reviews = addToSet(user.Reviews, reviewID)
	}

	return nil
}

// RemoveReview removes a review id from the user's authorship set.
func (s *UserStore) RemoveReview(_ context.Context, userID, reviewID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user, ok := s.users[userID]; ok {
		user.Reviews = pullFromSet(user.Reviews, reviewID)
	}

	return nil
}

// Delete removes the user document.
func (s *UserStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return repository.ErrUserNotFound
	}
	delete(s.users, id)

	return nil
}
