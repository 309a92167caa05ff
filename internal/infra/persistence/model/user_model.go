// Package model contains the BSON document shapes persisted to MongoDB.
// UUIDs are stored as their canonical string form so documents stay
// readable in shells and logs.
package model

import (
	"time"
)

// UserModel mirrors the 'users' collection.
type UserModel struct {
	ID           string `bson:"_id"`
	Name         string `bson:"name"`
	Email        string `bson:"email"`
	Password     string `bson:"password"`
	Photo        string `bson:"photo,omitempty"`
	Role         string `bson:"role"`

	ProductsOwned []string `bson:"productsOwned"`
	WishList      []string `bson:"wishList"`
	Reviews       []string `bson:"reviews"`

	PasswordResetToken   string    `bson:"passwordResetToken,omitempty"`
	PasswordResetExpires time.Time `bson:"passwordResetExpires,omitempty"`

	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// CollectionName returns the MongoDB collection for users.
func (UserModel) CollectionName() string {
	return "users"
}
