package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a document in the users collection.
type User struct {
	ID           primitive.ObjectID `json:"id"    bson:"_id,omitempty"`
	Name         string             `json:"name"  bson:"name"`
	Email        string             `json:"email" bson:"email"`
	PasswordHash string             `json:"-"     bson:"password"` // never serialize
}

// RegisterRequest is the JSON body for POST /api/v1/register.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the JSON body for POST /api/v1/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
