package mongodb

import (
	"context"

	"souq/internal/domain/entity"
	"souq/internal/domain/repository"
	"souq/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// categoryRepository implements the repository.CategoryRepository interface on MongoDB.
type categoryRepository struct {
	coll *mongo.Collection
}

// NewCategoryRepository is the constructor for categoryRepository.
func NewCategoryRepository(db *mongo.Database) repository.CategoryRepository {
	return &categoryRepository{coll: db.Collection(model.CategoryModel{}.CollectionName())}
}

// FindByID retrieves a single category by its unique ID.
func (repo *categoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	return repo.findOne(ctx, bson.M{"_id": id.String()})
}

// FindByName retrieves a single category by its unique name.
func (repo *categoryRepository) FindByName(ctx context.Context, name string) (*entity.Category, error) {
	return repo.findOne(ctx, bson.M{"name": name})
}

func (repo *categoryRepository) findOne(ctx context.Context, filter bson.M) (*entity.Category, error) {
	var categoryM model.CategoryModel
	if err := repo.coll.FindOne(ctx, filter).Decode(&categoryM); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrCategoryNotFound
		}

		return nil, errors.Wrap(err, "failed to find category")
	}

	return toCategoryDomain(&categoryM)
}

// List retrieves all categories in id order.
func (repo *categoryRepository) List(ctx context.Context) ([]*entity.Category, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

	cursor, err := repo.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list categories")
	}
	defer cursor.Close(ctx)

	var models []model.CategoryModel
	if err := cursor.All(ctx, &models); err != nil {
		return nil, errors.Wrap(err, "failed to decode categories")
	}

	categories := make([]*entity.Category, 0, len(models))
	for i := range models {
		category, err := toCategoryDomain(&models[i])
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}

	return categories, nil
}

// Create persists a new category document, enforcing name uniqueness
// through the collection's unique index.
func (repo *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	if _, err := repo.coll.InsertOne(ctx, fromCategoryDomain(category)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicateCategory
		}

		return errors.Wrap(err, "failed to create category")
	}

	return nil
}

// UpdateFields issues a targeted field-level update on a category document.
func (repo *categoryRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	result, err := repo.coll.UpdateOne(ctx, bson.M{"_id": id.String()}, setFields(fields))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicateCategory
		}

		return errors.Wrap(err, "failed to update category")
	}
	if result.MatchedCount == 0 {
		return repository.ErrCategoryNotFound
	}

	return nil
}

// AddProduct inserts a product id into the category's product set.
func (repo *categoryRepository) AddProduct(ctx context.Context, categoryID, productID uuid.UUID) error {
	_, err := repo.coll.UpdateOne(ctx,
		bson.M{"_id": categoryID.String()},
		bson.M{"$addToSet": bson.M{"products": productID.String()}},
	)

	return errors.Wrap(err, "failed to add product to category")
}

// RemoveProduct removes a product id from the category's product set.
func (repo *categoryRepository) RemoveProduct(ctx context.Context, categoryID, productID uuid.UUID) error {
	_, err := repo.coll.UpdateOne(ctx,
		bson.M{"_id": categoryID.String()},
		bson.M{"$pull": bson.M{"products": productID.String()}},
	)

	return errors.Wrap(err, "failed to remove product from category")
}

// Delete removes the category document.
func (repo *categoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := repo.coll.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return errors.Wrap(err, "failed to delete category")
	}
	if result.DeletedCount == 0 {
		return repository.ErrCategoryNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toCategoryDomain converts a CategoryModel document to a domain Category entity.
func toCategoryDomain(data *model.CategoryModel) (*entity.Category, error) {
	id, err := uuid.Parse(data.ID)
	if err != nil {
		return nil, errors.Wrap(err, "malformed category id")
	}

	products, err := parseIDs(data.Products)
	if err != nil {
		return nil, err
	}

	return &entity.Category{
		ID:        id,
		Name:      data.Name,
		Products:  products,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}, nil
}

// fromCategoryDomain converts a domain Category entity to a CategoryModel document.
func fromCategoryDomain(data *entity.Category) *model.CategoryModel {
	return &model.CategoryModel{
		ID:        data.ID.String(),
		Name:      data.Name,
		Products:  idStrings(data.Products),
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}
