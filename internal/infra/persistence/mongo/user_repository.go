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

// userRepository implements the repository.UserRepository interface on MongoDB.
type userRepository struct {
	coll *mongo.Collection
}

// NewUserRepository is the constructor for userRepository.
func NewUserRepository(db *mongo.Database) repository.UserRepository {
	return &userRepository{coll: db.Collection(model.UserModel{}.CollectionName())}
}

// FindByID retrieves a single user by their unique ID.
func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return repo.findOne(ctx, bson.M{"_id": id.String()})
}

// FindByEmail retrieves a single user by their email address.
func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return repo.findOne(ctx, bson.M{"email": email})
}

// FindByResetToken retrieves the user holding the given hashed reset token.
func (repo *userRepository) FindByResetToken(ctx context.Context, tokenHash string) (*entity.User, error) {
	if tokenHash == "" {
		return nil, repository.ErrUserNotFound
	}

	return repo.findOne(ctx, bson.M{"passwordResetToken": tokenHash})
}

func (repo *userRepository) findOne(ctx context.Context, filter bson.M) (*entity.User, error) {
	var userM model.UserModel
	if err := repo.coll.FindOne(ctx, filter).Decode(&userM); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	return toUserDomain(&userM)
}

// List retrieves a page of users in id order.
func (repo *userRepository) List(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := repo.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}
	defer cursor.Close(ctx)

	var models []model.UserModel
	if err := cursor.All(ctx, &models); err != nil {
		return nil, errors.Wrap(err, "failed to decode users")
	}

	users := make([]*entity.User, 0, len(models))
	for i := range models {
		user, err := toUserDomain(&models[i])
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, nil
}

// Create persists a new user document, enforcing email uniqueness through
// the collection's unique index.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	if _, err := repo.coll.InsertOne(ctx, fromUserDomain(user)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicateEmail
		}

		return errors.Wrap(err, "failed to create user")
	}

	return nil
}

// UpdateFields issues a targeted field-level update on a user document.
func (repo *userRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	result, err := repo.coll.UpdateOne(ctx, bson.M{"_id": id.String()}, setFields(fields))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicateEmail
		}

		return errors.Wrap(err, "failed to update user")
	}
	if result.MatchedCount == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// AddProductOwned inserts a product id into the user's ownership set.
func (repo *userRepository) AddProductOwned(ctx context.Context, userID, productID uuid.UUID) error {
	return repo.mutateSet(ctx, userID, "$addToSet", "productsOwned", productID)
}

// RemoveProductOwned removes a product id from the user's ownership set.
func (repo *userRepository) RemoveProductOwned(ctx context.Context, userID, productID uuid.UUID) error {
	return repo.mutateSet(ctx, userID, "$pull", "productsOwned", productID)
}

// AddWishlist inserts a product id into the user's wishlist set.
func (repo *userRepository) AddWishlist(ctx context.Context, userID, productID uuid.UUID) error {
	return repo.mutateSet(ctx, userID, "$addToSet", "wishList", productID)
}

// RemoveWishlist removes a product id from the user's wishlist set.
func (repo *userRepository) RemoveWishlist(ctx context.Context, userID, productID uuid.UUID) error {
	return repo.mutateSet(ctx, userID, "$pull", "wishList", productID)
}

// PullWishlistFromAll removes a product id from every wishlist holding it.
func (repo *userRepository) PullWishlistFromAll(ctx context.Context, productID uuid.UUID) error {
	_, err := repo.coll.UpdateMany(ctx,
		bson.M{"wishList": productID.String()},
		bson.M{"$pull": bson.M{"wishList": productID.String()}},
	)

	return errors.Wrap(err, "failed to pull product from wishlists")
}

// AddReview inserts a review id into the user's authorship set.
func (repo *userRepository) AddReview(ctx context.Context, userID, reviewID uuid.UUID) error {
	return repo.mutateSet(ctx, userID, "$addToSet", "reviews", reviewID)
}

// RemoveReview removes a review id from the user's authorship set.
func (repo *userRepository) RemoveReview(ctx context.Context, userID, reviewID uuid.UUID) error {
	return repo.mutateSet(ctx, userID, "$pull", "reviews", reviewID)
}

// mutateSet applies a single set operator. A missing user is a no-op: set
// mutations must stay retryable mid-cascade.
func (repo *userRepository) mutateSet(ctx context.Context, userID uuid.UUID, op, field string, member uuid.UUID) error {
	_, err := repo.coll.UpdateOne(ctx,
		bson.M{"_id": userID.String()},
		bson.M{op: bson.M{field: member.String()}},
	)

	return errors.Wrapf(err, "failed to apply %s on %s", op, field)
}

// Delete removes the user document.
func (repo *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := repo.coll.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return errors.Wrap(err, "failed to delete user")
	}
	if result.DeletedCount == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toUserDomain converts a UserModel document to a domain User entity.
func toUserDomain(data *model.UserModel) (*entity.User, error) {
	id, err := uuid.Parse(data.ID)
	if err != nil {
		return nil, errors.Wrap(err, "malformed user id")
	}

	owned, err := parseIDs(data.ProductsOwned)
	if err != nil {
		return nil, err
	}
	wishlist, err := parseIDs(data.WishList)
	if err != nil {
		return nil, err
	}
	reviews, err := parseIDs(data.Reviews)
	if err != nil {
		return nil, err
	}

	return &entity.User{
		ID:                   id,
		Name:                 data.Name,
		Email:                data.Email,
		PasswordHash:         data.Password,
		Photo:                data.Photo,
		Role:                 entity.Role(data.Role),
		ProductsOwned:        owned,
		WishList:             wishlist,
		Reviews:              reviews,
		PasswordResetToken:   data.PasswordResetToken,
		PasswordResetExpires: data.PasswordResetExpires,
		CreatedAt:            data.CreatedAt,
		UpdatedAt:            data.UpdatedAt,
	}, nil
}

// fromUserDomain converts a domain User entity to a UserModel document.
func fromUserDomain(data *entity.User) *model.UserModel {
	return &model.UserModel{
		ID:                   data.ID.String(),
		Name:                 data.Name,
		Email:                data.Email,
		Password:             data.PasswordHash,
		Photo:                data.Photo,
		Role:                 string(data.Role),
		ProductsOwned:        idStrings(data.ProductsOwned),
		WishList:             idStrings(data.WishList),
		Reviews:              idStrings(data.Reviews),
		PasswordResetToken:   data.PasswordResetToken,
		PasswordResetExpires: data.PasswordResetExpires,
		CreatedAt:            data.CreatedAt,
		UpdatedAt:            data.UpdatedAt,
	}
}
