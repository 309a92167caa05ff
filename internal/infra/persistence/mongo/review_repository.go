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

// reviewRepository implements the repository.ReviewRepository interface on MongoDB.
type reviewRepository struct {
	coll *mongo.Collection
}

// NewReviewRepository is the constructor for reviewRepository.
func NewReviewRepository(db *mongo.Database) repository.ReviewRepository {
	return &reviewRepository{coll: db.Collection(model.ReviewModel{}.CollectionName())}
}

// FindByID retrieves a single review by its unique ID.
func (repo *reviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	var reviewM model.ReviewModel
	if err := repo.coll.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&reviewM); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrReviewNotFound
		}

		return nil, errors.Wrap(err, "failed to find review")
	}

	return toReviewDomain(&reviewM)
}

// FindByProduct retrieves every review written for a product.
func (repo *reviewRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]*entity.Review, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

	cursor, err := repo.coll.Find(ctx, bson.M{"product": productID.String()}, opts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find reviews by product")
	}
	defer cursor.Close(ctx)

	var models []model.ReviewModel
	if err := cursor.All(ctx, &models); err != nil {
		return nil, errors.Wrap(err, "failed to decode reviews")
	}

	reviews := make([]*entity.Review, 0, len(models))
	for i := range models {
		review, err := toReviewDomain(&models[i])
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}

	return reviews, nil
}

// Create persists a new review document.
func (repo *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	if _, err := repo.coll.InsertOne(ctx, fromReviewDomain(review)); err != nil {
		return errors.Wrap(err, "failed to create review")
	}

	return nil
}

// UpdateFields issues a targeted field-level update on a review document.
func (repo *reviewRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	result, err := repo.coll.UpdateOne(ctx, bson.M{"_id": id.String()}, setFields(fields))
	if err != nil {
		return errors.Wrap(err, "failed to update review")
	}
	if result.MatchedCount == 0 {
		return repository.ErrReviewNotFound
	}

	return nil
}

// Delete removes the review document.
func (repo *reviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := repo.coll.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return errors.Wrap(err, "failed to delete review")
	}
	if result.DeletedCount == 0 {
		return repository.ErrReviewNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toReviewDomain converts a ReviewModel document to a domain Review entity.
func toReviewDomain(data *model.ReviewModel) (*entity.Review, error) {
	id, err := uuid.Parse(data.ID)
	if err != nil {
		return nil, errors.Wrap(err, "malformed review id")
	}
	owner, err := uuid.Parse(data.Owner)
	if err != nil {
		return nil, errors.Wrap(err, "malformed owner id")
	}
	product, err := uuid.Parse(data.Product)
	if err != nil {
		return nil, errors.Wrap(err, "malformed product id")
	}

	return &entity.Review{
		ID:        id,
		Owner:     owner,
		Product:   product,
		Rating:    data.Rating,
		Comment:   data.Comment,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}, nil
}

// fromReviewDomain converts a domain Review entity to a ReviewModel document.
func fromReviewDomain(data *entity.Review) *model.ReviewModel {
	return &model.ReviewModel{
		ID:        data.ID.String(),
		Owner:     data.Owner.String(),
		Product:   data.Product.String(),
		Rating:    data.Rating,
		Comment:   data.Comment,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}
