package list

import (
	"context"
	"errors"
)

var ErrValidation = errors.New("missing required field")

type Movie struct {
	MovieID string   `json:"movie_id" bson:"movie_id"`
	Title   string   `json:"title" bson:"title"`
	Rating  *float64 `json:"rating,omitempty" bson:"rating,omitempty"`
}

type List struct {
	Name   string  `json:"name" bson:"name"`
	Movies []Movie `json:"movies" bson:"movies"`
}

// Repository mutates the lists embedded in one user document. Every boolean
// result reports whether the document was actually modified.
type Repository interface {
	GetLists(ctx context.Context, username string) ([]List, error)
	AddList(ctx context.Context, username, name string) (bool, error)
	DeleteList(ctx context.Context, username, name string) (bool, error)
	RenameList(ctx context.Context, username, oldName, newName string) (bool, error)
	AddMovie(ctx context.Context, username, listName string, movie Movie) (bool, error)
	RemoveMovie(ctx context.Context, username, listName, movieID string) (bool, error)
	UpdateMovieRating(ctx context.Context, username, listName, movieID string, rating float64) (bool, error)
}
