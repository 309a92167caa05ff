package impl

import (
	"context"
	"time"

	"souq/internal/domain/entity"
	domainerrors "souq/internal/domain/errors"
	"souq/internal/domain/repository"
	"souq/internal/errors"
	"souq/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

const defaultPageSize = 10

type productService struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	graph      *RelationshipGraph
	cascade    *CascadeCoordinator
	authz      usecase.Authorizer
}

// ProductServiceParams holds dependencies for ProductService, injected by Fx.
type ProductServiceParams struct {
	fx.In

	Products   repository.ProductRepository
	Categories repository.CategoryRepository
	Graph      *RelationshipGraph
	Cascade    *CascadeCoordinator
	Authz      usecase.Authorizer
}

// NewProductService creates a new product service instance.
func NewProductService(params ProductServiceParams) usecase.ProductUsecase {
	return &productService{
		products:   params.Products,
		categories: params.Categories,
		graph:      params.Graph,
		cascade:    params.Cascade,
		authz:      params.Authz,
	}
}

// AddProduct creates a product owned by the caller. The record is created
// with its single-valued edge halves already set, then the set-valued
// halves are attached through the graph: category first, ownership second.
func (s *productService) AddProduct(ctx context.Context, caller *entity.User, input *usecase.AddProductInput) (*entity.Product, error) {
	if _, err := s.categories.FindByID(ctx, input.Category); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, domainerrors.ErrCategoryNotFound
		}
		return nil, errors.Wrap(err, "load category")
	}

	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New(),
		Name:        input.Name,
		Price:       input.Price,
		Description: input.Description,
		Photo:       input.Photo,
		Category:    input.Category,
		OwnedBy:     caller.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.products.Create(ctx, product); err != nil {
		return nil, errors.Wrap(err, "create product")
	}

	if err := s.graph.Attach(ctx, EdgeCategorization, input.Category, product.ID); err != nil {
		return nil, err
	}

	if err := s.graph.Attach(ctx, EdgeOwnership, caller.ID, product.ID); err != nil {
		return nil, err
	}

	return product, nil
}

// GetProduct retrieves a product by id.
func (s *productService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}
		return nil, errors.Wrap(err, "load product")
	}

	return product, nil
}

// ListProducts retrieves a page of products.
func (s *productService) ListProducts(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	products, err := s.products.List(ctx, normalizeLimit(limit), max(offset, 0))
	if err != nil {
		return nil, errors.Wrap(err, "list products")
	}

	return products, nil
}

// SearchProducts retrieves a page of products whose name matches the
// keyword case-insensitively.
func (s *productService) SearchProducts(ctx context.Context, keyword string, limit, offset int) ([]*entity.Product, error) {
	products, err := s.products.SearchByName(ctx, keyword, normalizeLimit(limit), max(offset, 0))
	if err != nil {
		return nil, errors.Wrap(err, "search products")
	}

	return products, nil
}

// UpdateProduct applies field changes after the productOwner capability
// check. A category change is re-linked through the graph so both the old
// and the new category's product sets stay consistent.
func (s *productService) UpdateProduct(ctx context.Context, caller *entity.User, id uuid.UUID, input *usecase.UpdateProductInput) (*entity.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}
		return nil, errors.Wrap(err, "load product")
	}

	if err := s.authz.Authorize(caller, usecase.CapabilityProductOwner, id); err != nil {
		return nil, err
	}

	if input.Category != nil && *input.Category != product.Category {
		if _, err := s.categories.FindByID(ctx, *input.Category); err != nil {
			if errors.Is(err, repository.ErrCategoryNotFound) {
				return nil, domainerrors.ErrCategoryNotFound
			}
			return nil, errors.Wrap(err, "load category")
		}

		if err := s.graph.Detach(ctx, EdgeCategorization, product.Category, id); err != nil {
			return nil, err
		}
		if err := s.graph.Attach(ctx, EdgeCategorization, *input.Category, id); err != nil {
			return nil, err
		}
	}

	fields := map[string]any{}
	if input.Name != nil {
		fields["name"] = *input.Name
	}
	if input.Price != nil {
		fields["price"] = *input.Price
	}
	if input.Description != nil {
		fields["description"] = *input.Description
	}
	if input.Photo != nil {
		fields["photo"] = *input.Photo
	}

	if len(fields) > 0 {
		fields["updatedAt"] = time.Now()
		if err := s.products.UpdateFields(ctx, id, fields); err != nil {
			return nil, errors.Wrap(err, "update product")
		}
	}

	updated, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "reload product")
	}

	return updated, nil
}

// DeleteProduct runs the full product cascade after the productOwner
// capability check.
func (s *productService) DeleteProduct(ctx context.Context, caller *entity.User, id uuid.UUID) error {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return domainerrors.ErrProductNotFound
		}
		return errors.Wrap(err, "load product")
	}

	if err := s.authz.Authorize(caller, usecase.CapabilityProductOwner, id); err != nil {
		return err
	}

	return s.cascade.DeleteProduct(ctx, product)
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return defaultPageSize
	}

	return limit
}
