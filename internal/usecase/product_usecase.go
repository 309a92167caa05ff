package usecase

import (
	"context"

	"souq/internal/domain/entity"

	"github.com/google/uuid"
)

// AddProductInput carries the fields accepted at product creation.
type AddProductInput struct {
	Name        string
	Price       float64
	Description string
	Photo       string
	Category    uuid.UUID
}

// UpdateProductInput carries the updatable product fields. Nil means keep.
type UpdateProductInput struct {
	Name        *string
	Price       *float64
	Description *string
	Photo       *string
	Category    *uuid.UUID
}

// ProductUsecase covers product lifecycle and lookup.
type ProductUsecase interface {
	// AddProduct creates a product owned by the caller and attaches the
	// categorization and ownership edges.
	AddProduct(ctx context.Context, caller *entity.User, input *AddProductInput) (*entity.Product, error)

	// GetProduct retrieves a product by id.
	GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// ListProducts retrieves a page of products.
	ListProducts(ctx context.Context, limit, offset int) ([]*entity.Product, error)

	// SearchProducts retrieves a page of products matching the keyword.
	SearchProducts(ctx context.Context, keyword string, limit, offset int) ([]*entity.Product, error)

	// UpdateProduct applies field changes; requires the productOwner
	// capability. A category change re-links the categorization edge on
	// both sides.
	UpdateProduct(ctx context.Context, caller *entity.User, id uuid.UUID, input *UpdateProductInput) (*entity.Product, error)

	// DeleteProduct runs the full product cascade; requires the
	// productOwner capability.
	DeleteProduct(ctx context.Context, caller *entity.User, id uuid.UUID) error
}
