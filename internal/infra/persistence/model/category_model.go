package model

import "time"

// CategoryModel mirrors the 'categories' collection.
type CategoryModel struct {
	ID       string   `bson:"_id"`
	Name     string   `bson:"name"`
	Products []string `bson:"products"`

	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// CollectionName returns the MongoDB collection for categories.
func (CategoryModel) CollectionName() string {
	return "categories"
}
