package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// User lives in the tbusuario collection. CpfHash is the salted one-way
// hash of the user's CPF; the json:"-" tag keeps it out of every response.
type User struct {
	ID        bson.ObjectID `json:"id" bson:"_id,omitempty"`
	Email     string        `json:"email" bson:"email"`
	CpfHash   string        `json:"-" bson:"cpfHash"`
	IsAdmin   bool          `json:"isAdmin" bson:"isAdmin"`
	Active    bool          `json:"active" bson:"active"`
	CreatedAt time.Time     `json:"createdAt" bson:"createdAt,omitempty"`
}

// CreateUserRequest is the body of POST /admin/tbusuario.
type CreateUserRequest struct {
	Email   string `json:"email" validate:"required,email"`
	Cpf     string `json:"cpf" validate:"required"`
	IsAdmin *bool  `json:"isAdmin"`
	Active  *bool  `json:"active"`
}

// PatchUserRequest is the body of PATCH /admin/tbusuario/:id. Only fields
// that are present change; booleans use pointers so false is distinguishable
// from absent.
type PatchUserRequest struct {
	Email   string `json:"email"`
	Cpf     string `json:"cpf"`
	IsAdmin *bool  `json:"isAdmin"`
	Active  *bool  `json:"active"`
}

// LoginRequest is the body of POST /login.
type LoginRequest struct {
	Email string `json:"email" validate:"required,email"`
	Cpf   string `json:"cpf" validate:"required"`
}
