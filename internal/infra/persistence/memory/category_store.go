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

// CategoryStore is the in-memory CategoryRepository.
type CategoryStore struct {
	mu         sync.RWMutex
	categories map[uuid.UUID]*entity.Category
}

// NewCategoryStore creates an empty in-memory category store.
func NewCategoryStore() *CategoryStore {
	return &CategoryStore{categories: make(map[uuid.UUID]*entity.Category)}
}

var _ repository.CategoryRepository = (*CategoryStore)(nil)

func cloneCategory(c *entity.Category) *entity.Category {
	clone := *c
	clone.Products = slicesClone(c.Products)

	return &clone
}

// FindByID retrieves a single category by its unique ID.
func (s *CategoryStore) FindByID(_ context.Context, id uuid.UUID) (*entity.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	category, ok := s.categories[id]
	if !ok {
		return nil, repository.ErrCategoryNotFound
	}

	return cloneCategory(category), nil
}

// FindByName retrieves a single category by its unique name.
func (s *CategoryStore) FindByName(_ context.Context, name string) (*entity.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, category := range s.categories {
		if category.Name == name {
			return cloneCategory(category), nil
		}
	}

	return nil, repository.ErrCategoryNotFound
}

// List retrieves all categories.
func (s *CategoryStore) List(_ context.Context) ([]*entity.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	categories := make([]*entity.Category, 0, len(s.categories))
	for _, category := range s.categories {
		categories = append(categories, cloneCategory(category))
	}
	sortByID(categories, func(c *entity.Category) uuid.UUID { return c.ID })

	return categories, nil
}

// Create persists a new category document, enforcing name uniqueness.
func (s *CategoryStore) Create(_ context.Context, category *entity.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.categories {
		if existing.Name == category.Name {
			return repository.ErrDuplicateCategory
		}
	}

	s.categories[category.ID] = cloneCategory(category)

	return nil
}

// UpdateFields issues a targeted field-level update on a category document.
func (s *CategoryStore) UpdateFields(_ context.Context, id uuid.UUID, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	category, ok := s.categories[id]
	if !ok {
		return repository.ErrCategoryNotFound
	}

	for name, value := range fields {
		switch name {
		case "name":
			category.Name = value.(string)
		case "updatedAt":
			category.UpdatedAt = value.(time.Time)
		default:
			return errors.Errorf("unknown category field %q", name)
		}
	}

	return nil
}

// AddProduct inserts a product id into the category's product set.
func (s *CategoryStore) AddProduct(_ context.Context, categoryID, productID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if category, ok := s.categories[categoryID]; ok {
		category.Products = addToSet(category.Products, productID)
	}

	return nil
}

// RemoveProduct removes a product id from the category's product set.
func (s *CategoryStore) RemoveProduct(_ context.Context, categoryID, productID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if category, ok := s.categories[categoryID]; ok {
		category.Products = pullFromSet(category.Products, productID)
	}

	return nil
}

// Delete removes the category document.
func (s *CategoryStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categories[id]; !ok {
		return repository.ErrCategoryNotFound
	}
	delete(s.categories, id)

	return nil
}
