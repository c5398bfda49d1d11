package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is the identity document. Password holds the bcrypt hash and is never
// serialized in responses.
type User struct {
	ID        primitive.ObjectID   `json:"_id,omitempty" bson:"_id,omitempty"`
	Name      string               `json:"name" bson:"name"`
	Email     string               `json:"email" bson:"email"`
	Password  string               `json:"-" bson:"password"`
	IsAdmin   bool                 `json:"is_admin" bson:"is_admin"`
	Phone     string               `json:"phone,omitempty" bson:"phone,omitempty"`
	Address   string               `json:"address,omitempty" bson:"address,omitempty"`
	Favorites []primitive.ObjectID `json:"favorites" bson:"favorites"`
	CreatedAt time.Time            `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time            `json:"updated_at" bson:"updated_at"`
}

// Requester is the authenticated identity attached to every service call.
// Built once by the auth middleware; services never read ambient request state.
type Requester struct {
	UserID  primitive.ObjectID
	IsAdmin bool
}
