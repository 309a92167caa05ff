package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"souq/internal/domain/entity"
	"souq/internal/domain/repository"
	"souq/internal/errors"

	"github.com/google/uuid"
)

// ProductStore is the in-memory ProductRepository.
type ProductStore struct {
	mu       sync.RWMutex
	products map[uuid.UUID]*entity.Product
}

// NewProductStore creates an empty in-memory product store.
func NewProductStore() *ProductStore {
	return &ProductStore{products: make(map[uuid.UUID]*entity.Product)}
}

var _ repository.ProductRepository = (*ProductStore)(nil)

func cloneProduct(p *entity.Product) *entity.Product {
	clone := *p
	clone.Reviews = slicesClone(p.Reviews)
	clone.UsersWishlisted = slicesClone(p.UsersWishlisted)

	return &clone
}

// FindByID retrieves a single product by its unique ID.
func (s *ProductStore) FindByID(_ context.Context, id uuid.UUID) (*entity.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	product, ok := s.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}

	return cloneProduct(product), nil
}

// List retrieves a page of products.
func (s *ProductStore) List(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	products := make([]*entity.Product, 0, len(s.products))
	for _, product := range s.products {
		products = append(products, cloneProduct(product))
	}
	sortByID(products, func(p *entity.Product) uuid.UUID { return p.ID })

	return page(products, limit, offset), nil
}

// SearchByName retrieves a page of products whose name contains the
// keyword, case-insensitively.
func (s *ProductStore) SearchByName(_ context.Context, keyword string, limit, offset int) ([]*entity.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(keyword)
	matches := make([]*entity.Product, 0)
	for _, product := range s.products {
		if strings.Contains(strings.ToLower(product.Name), needle) {
			matches = append(matches, cloneProduct(product))
		}
	}
	sortByID(matches, func(p *entity.Product) uuid.UUID { return p.ID })

	return page(matches, limit, offset), nil
}

// Create persists a new product document.
func (s *ProductStore) Create(_ context.Context, product *entity.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.products[product.ID] = cloneProduct(product)

	return nil
}

// UpdateFields issues a targeted field-level update on a product document.
func (s *ProductStore) UpdateFields(_ context.Context, id uuid.UUID, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, ok := s.products[id]
	if !ok {
		return repository.ErrProductNotFound
	}

	for name, value := range fields {
		switch name {
		case "name":
			product.Name = value.(string)
		case "price":
			product.Price = value.(float64)
		case "description":
			product.Description = value.(string)
		case "photo":
			product.Photo = value.(string)
		case "category":
			product.Category = value.(uuid.UUID)
		case "ownedBy":
			product.OwnedBy = value.(uuid.UUID)
		case "updatedAt":
			product.UpdatedAt = value.(time.Time)
		default:
			return errors.Errorf("unknown product field %q", name)
		}
	}

	return nil
}

// AddReview inserts a review id into the product's review set.
func (s *ProductStore) AddReview(_ context.Context, productID, reviewID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if product, ok := s.products[productID]; ok {
		product.Reviews = addToSet(product.Reviews, reviewID)
	}

	return nil
}

// RemoveReview removes a review id from the product's review set.
func (s *ProductStore) RemoveReview(_ context.Context, productID, reviewID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if product, ok := s.products[productID]; ok {
		product.Reviews = pullFromSet(product.Reviews, reviewID)
	}

	return nil
}

// AddWishlister inserts a user id into the product's wishlisted-by set.
func (s *ProductStore) AddWishlister(_ context.Context, productID, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if product, ok := s.products[productID]; ok {
		product.UsersWishlisted = addToSet(product.UsersWishlisted, userID)
	}

	return nil
}

// RemoveWishlister removes a user id from the product's wishlisted-by set.
func (s *ProductStore) RemoveWishlister(_ context.Context, productID, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if product, ok := s.products[productID]; ok {
		product.UsersWishlisted = pullFromSet(product.UsersWishlisted, userID)
	}

	return nil
}

// SetRatingStats persists the recomputed rating aggregate. A missing
// product is a no-op: the document may have been cascaded away since the
// recomputation was triggered.
func (s *ProductStore) SetRatingStats(_ context.Context, productID uuid.UUID, quantity int, avg float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if product, ok := s.products[productID]; ok {
		product.RatingsQuantity = quantity
		product.AvgRating = avg
	}

	return nil
}

// Delete removes the product document.
func (s *ProductStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		return repository.ErrProductNotFound
	}
	delete(s.products, id)

	return nil
}
