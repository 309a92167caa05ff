package model

import "time"

// ProductModel mirrors the 'products' collection.
type ProductModel struct {
	ID          string  `bson:"_id"`
	Name        string  `bson:"name"`
	Price       float64 `bson:"price"`
	Description string  `bson:"description,omitempty"`
	Photo       string  `bson:"photo,omitempty"`

	Category string `bson:"category"`
	OwnedBy  string `bson:"ownedBy"`

	Reviews         []string `bson:"reviews"`
	UsersWishlisted []string `bson:"usersWishlisted"`

	RatingsQuantity int     `bson:"ratingsQuantity"`
	AvgRating       float64 `bson:"avgRating"`

	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// CollectionName returns the MongoDB collection for products.
func (ProductModel) CollectionName() string {
	return "products"
}
