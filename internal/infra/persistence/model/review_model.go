package model

import "time"

// ReviewModel mirrors the 'reviews' collection.
type ReviewModel struct {
	ID      string  `bson:"_id"`
	Owner   string  `bson:"owner"`
	Product string  `bson:"product"`
	Rating  float64 `bson:"rating"`
	Comment string  `bson:"comment,omitempty"`

	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// CollectionName returns the MongoDB collection for reviews.
func (ReviewModel) CollectionName() string {
	return "reviews"
}
