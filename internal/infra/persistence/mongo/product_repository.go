package mongodb

import (
	"context"
	"regexp"

	"souq/internal/domain/entity"
	"souq/internal/domain/repository"
	"souq/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// productRepository implements the repository.ProductRepository interface on MongoDB.
type productRepository struct {
	coll *mongo.Collection
}

// NewProductRepository is the constructor for productRepository.
func NewProductRepository(db *mongo.Database) repository.ProductRepository {
	return &productRepository{coll: db.Collection(model.ProductModel{}.CollectionName())}
}

// FindByID retrieves a single product by its unique ID.
func (repo *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var productM model.ProductModel
	if err := repo.coll.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&productM); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product")
	}

	return toProductDomain(&productM)
}

// List retrieves a page of products in id order.
func (repo *productRepository) List(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	return repo.find(ctx, bson.M{}, limit, offset)
}

// SearchByName retrieves a page of products whose name contains the
// keyword, case-insensitively.
func (repo *productRepository) SearchByName(ctx context.Context, keyword string, limit, offset int) ([]*entity.Product, error) {
	filter := bson.M{"name": primitive.Regex{
		Pattern: regexp.QuoteMeta(keyword),
		Options: "i",
	}}

	return repo.find(ctx, filter, limit, offset)
}

func (repo *productRepository) find(ctx context.Context, filter bson.M, limit, offset int) ([]*entity.Product, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := repo.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}
	defer cursor.Close(ctx)

	var models []model.ProductModel
	if err := cursor.All(ctx, &models); err != nil {
		return nil, errors.Wrap(err, "failed to decode products")
	}

	products := make([]*entity.Product, 0, len(models))
	for i := range models {
		product, err := toProductDomain(&models[i])
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}

	return products, nil
}

// Create persists a new product document.
func (repo *productRepository) Create(ctx context.Context, product *entity.Product) error {
	if _, err := repo.coll.InsertOne(ctx, fromProductDomain(product)); err != nil {
		return errors.Wrap(err, "failed to create product")
	}

	return nil
}

// UpdateFields issues a targeted field-level update on a product document.
func (repo *productRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	result, err := repo.coll.UpdateOne(ctx, bson.M{"_id": id.String()}, setFields(fields))
	if err != nil {
		return errors.Wrap(err, "failed to update product")
	}
	if result.MatchedCount == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

// AddReview inserts a review id into the product's review set.
func (repo *productRepository) AddReview(ctx context.Context, productID, reviewID uuid.UUID) error {
	return repo.mutateSet(ctx, productID, "$addToSet", "reviews", reviewID)
}

// RemoveReview removes a review id from the product's review set.
func (repo *productRepository) RemoveReview(ctx context.Context, productID, reviewID uuid.UUID) error {
	return repo.mutateSet(ctx, productID, "$pull", "reviews", reviewID)
}

// AddWishlister inserts a user id into the product's wishlisted-by set.
func (repo *productRepository) AddWishlister(ctx context.Context, productID, userID uuid.UUID) error {
	return repo.mutateSet(ctx, productID, "$addToSet", "usersWishlisted", userID)
}

// RemoveWishlister removes a user id from the product's wishlisted-by set.
func (repo *productRepository) RemoveWishlister(ctx context.Context, productID, userID uuid.UUID) error {
	return repo.mutateSet(ctx, productID, "$pull", "usersWishlisted", userID)
}

// SetRatingStats persists the recomputed rating aggregate. A missing
// product is a no-op: the document may have been cascaded away since the
// recomputation was triggered.
func (repo *productRepository) SetRatingStats(ctx context.Context, productID uuid.UUID, quantity int, avg float64) error {
	_, err := repo.coll.UpdateOne(ctx,
		bson.M{"_id": productID.String()},
		bson.M{"$set": bson.M{"ratingsQuantity": quantity, "avgRating": avg}},
	)

	return errors.Wrap(err, "failed to set rating stats")
}

func (repo *productRepository) mutateSet(ctx context.Context, productID uuid.UUID, op, field string, member uuid.UUID) error {
	_, err := repo.coll.UpdateOne(ctx,
		bson.M{"_id": productID.String()},
		bson.M{op: bson.M{field: member.String()}},
	)

	return errors.Wrapf(err, "failed to apply %s on %s", op, field)
}

// Delete removes the product document.
func (repo *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := repo.coll.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return errors.Wrap(err, "failed to delete product")
	}
	if result.DeletedCount == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toProductDomain converts a ProductModel document to a domain Product entity.
func toProductDomain(data *model.ProductModel) (*entity.Product, error) {
	id, err := uuid.Parse(data.ID)
	if err != nil {
		return nil, errors.Wrap(err, "malformed product id")
	}
	category, err := uuid.Parse(data.Category)
	if err != nil {
		return nil, errors.Wrap(err, "malformed category id")
	}
	ownedBy, err := uuid.Parse(data.OwnedBy)
	if err != nil {
		return nil, errors.Wrap(err, "malformed owner id")
	}

	reviews, err := parseIDs(data.Reviews)
	if err != nil {
		return nil, err
	}
	wishlisters, err := parseIDs(data.UsersWishlisted)
	if err != nil {
		return nil, err
	}

	return &entity.Product{
		ID:              id,
		Name:            data.Name,
		Price:           data.Price,
		Description:     data.Description,
		Photo:           data.Photo,
		Category:        category,
		OwnedBy:         ownedBy,
		Reviews:         reviews,
		UsersWishlisted: wishlisters,
		RatingsQuantity: data.RatingsQuantity,
		AvgRating:       data.AvgRating,
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}, nil
}

// fromProductDomain converts a domain Product entity to a ProductModel document.
func fromProductDomain(data *entity.Product) *model.ProductModel {
	return &model.ProductModel{
		ID:              data.ID.String(),
		Name:            data.Name,
		Price:           data.Price,
		Description:     data.Description,
		Photo:           data.Photo,
		Category:        data.Category.String(),
		OwnedBy:         data.OwnedBy.String(),
		Reviews:         idStrings(data.Reviews),
		UsersWishlisted: idStrings(data.UsersWishlisted),
		RatingsQuantity: data.RatingsQuantity,
		AvgRating:       data.AvgRating,
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}
}
