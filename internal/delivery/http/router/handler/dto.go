package handler

import (
	"time"

	"souq/internal/domain/entity"

	"github.com/google/uuid"
)

// View types shape what crosses the wire. Credentials and reset state
// never leave the service.

// UserView is the public representation of a user.
type UserView struct {
	ID            uuid.UUID   `json:"id"`
	Name          string      `json:"name"`
	Email         string      `json:"email"`
	Photo         string      `json:"photo,omitempty"`
	Role          entity.Role `json:"role"`
	ProductsOwned []uuid.UUID `json:"products_owned"`
	WishList      []uuid.UUID `json:"wish_list"`
	Reviews       []uuid.UUID `json:"reviews"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

func toUserView(user *entity.User) *UserView {
	return &UserView{
		ID:            user.ID,
		Name:          user.Name,
		Email:         user.Email,
		Photo:         user.Photo,
		Role:          user.Role,
		ProductsOwned: user.ProductsOwned,
		WishList:      user.WishList,
		Reviews:       user.Reviews,
		CreatedAt:     user.CreatedAt,
		UpdatedAt:     user.UpdatedAt,
	}
}

func toUserViews(users []*entity.User) []*UserView {
	views := make([]*UserView, 0, len(users))
	for _, user := range users {
		views = append(views, toUserView(user))
	}

	return views
}

// ProductView is the public representation of a product.
type ProductView struct {
	ID              uuid.UUID   `json:"id"`
	Name            string      `json:"name"`
	Price           float64     `json:"price"`
	Description     string      `json:"description,omitempty"`
	Photo           string      `json:"photo,omitempty"`
	Category        uuid.UUID   `json:"category"`
	OwnedBy         uuid.UUID   `json:"owned_by"`
	Reviews         []uuid.UUID `json:"reviews"`
	UsersWishlisted []uuid.UUID `json:"users_wishlisted"`
	RatingsQuantity int         `json:"ratings_quantity"`
	AvgRating       float64     `json:"avg_rating"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

func toProductView(product *entity.Product) *ProductView {
	return &ProductView{
		ID:              product.ID,
		Name:            product.Name,
		Price:           product.Price,
		Description:     product.Description,
		Photo:           product.Photo,
		Category:        product.Category,
		OwnedBy:         product.OwnedBy,
		Reviews:         product.Reviews,
		UsersWishlisted: product.UsersWishlisted,
		RatingsQuantity: product.RatingsQuantity,
		AvgRating:       product.AvgRating,
		CreatedAt:       product.CreatedAt,
		UpdatedAt:       product.UpdatedAt,
	}
}

func toProductViews(products []*entity.Product) []*ProductView {
	views := make([]*ProductView, 0, len(products))
	for _, product := range products {
		views = append(views, toProductView(product))
	}

	return views
}

// CategoryView is the public representation of a category.
type CategoryView struct {
	ID        uuid.UUID   `json:"id"`
	Name      string      `json:"name"`
	Products  []uuid.UUID `json:"products"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

func toCategoryView(category *entity.Category) *CategoryView {
	return &CategoryView{
		ID:        category.ID,
		Name:      category.Name,
		Products:  category.Products,
		CreatedAt: category.CreatedAt,
		UpdatedAt: category.UpdatedAt,
	}
}

func toCategoryViews(categories []*entity.Category) []*CategoryView {
	views := make([]*CategoryView, 0, len(categories))
	for _, category := range categories {
		views = append(views, toCategoryView(category))
	}

	return views
}

// ReviewView is the public representation of a review.
type ReviewView struct {
	ID        uuid.UUID `json:"id"`
	Owner     uuid.UUID `json:"owner"`
	Product   uuid.UUID `json:"product"`
	Rating    float64   `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toReviewView(review *entity.Review) *ReviewView {
	return &ReviewView{
		ID:        review.ID,
		Owner:     review.Owner,
		Product:   review.Product,
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt,
		UpdatedAt: review.UpdatedAt,
	}
}

func toReviewViews(reviews []*entity.Review) []*ReviewView {
	views := make([]*ReviewView, 0, len(reviews))
	for _, review := range reviews {
		views = append(views, toReviewView(review))
	}

	return views
}
