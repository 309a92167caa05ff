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

// ReviewStore is the in-memory ReviewRepository.
type ReviewStore struct {
	mu      sync.RWMutex
	reviews map[uuid.UUID]*entity.Review
}

// NewReviewStore creates an empty in-memory review store.
func NewReviewStore() *ReviewStore {
	return &ReviewStore{reviews: make(map[uuid.UUID]*entity.Review)}
}

var _ repository.ReviewRepository = (*ReviewStore)(nil)

func cloneReview(r *entity.Review) *entity.Review {
	clone := *r

	return &clone
}

// FindByID retrieves a single review by its unique ID.
func (s *ReviewStore) FindByID(_ context.Context, id uuid.UUID) (*entity.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	review, ok := s.reviews[id]
	if !ok {
		return nil, repository.ErrReviewNotFound
	}

	return cloneReview(review), nil
}

// FindByProduct retrieves every review written for a product.
func (s *ReviewStore) FindByProduct(_ context.Context, productID uuid.UUID) ([]*entity.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	reviews := make([]*entity.Review, 0)
	for _, review := range s.reviews {
		if review.Product == productID {
			reviews = append(reviews, cloneReview(review))
		}
	}
	sortByID(reviews, func(r *entity.Review) uuid.UUID { return r.ID })

	return reviews, nil
}

// Create persists a new review document.
func (s *ReviewStore) Create(_ context.Context, review *entity.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reviews[review.ID] = cloneReview(review)

	return nil
}

// UpdateFields issues a targeted field-level update on a review document.
func (s *ReviewStore) UpdateFields(_ context.Context, id uuid.UUID, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	review, ok := s.reviews[id]
	if !ok {
		return repository.ErrReviewNotFound
	}

	for name, value := range fields {
		switch name {
		case "rating":
			review.Rating = value.(float64)
		case "comment":
			review.Comment = value.(string)
		case "owner":
			review.Owner = value.(uuid.UUID)
		case "product":
			review.Product = value.(uuid.UUID)
		case "updatedAt":
			review.UpdatedAt = value.(time.Time)
		default:
			return errors.Errorf("unknown review field %q", name)
		}
	}

	return nil
}

// Delete removes the review document.
func (s *ReviewStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.reviews[id]; !ok {
		return repository.ErrReviewNotFound
	}
	delete(s.reviews, id)

	return nil
}
