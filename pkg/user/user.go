package user

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"movielists/pkg/list"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrAlreadyExists      = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNoFields           = errors.New("no fields to update")
	ErrPasswordTooLong    = errors.New("password exceeds 72 bytes")
)

// User is the per-user document. Lists are embedded, so deleting the
// document removes every list and movie it owns.
type User struct {
	MongoID  primitive.ObjectID `json:"-" bson:"_id,omitempty"`
	ID       string             `json:"id" bson:"id"`
	Username string             `json:"username" bson:"username"`
	Email    string             `json:"email" bson:"email"`
	Password string             `json:"-" bson:"password"`
	Lists    []list.List        `json:"lists" bson:"lists"`
}

// Fields is a partial profile update; nil members are left untouched.
type Fields struct {
	Email    *string
	Password *string
}

func (f Fields) Empty() bool {
	return f.Email == nil && f.Password == nil
}

type Repository interface {
	Create(ctx context.Context, user *User) error
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	Update(ctx context.Context, username string, fields Fields) (*User, error)
	Delete(ctx context.Context, username string) error
}
