package list

import "context"

type ServiceList interface {
	GetLists(ctx context.Context, username string) ([]List, error)
	AddList(ctx context.Context, username, name string) (bool, error)
	DeleteList(ctx context.Context, username, name string) (bool, error)
	RenameList(ctx context.Context, username, oldName, newName string) (bool, error)
	AddMovie(ctx context.Context, username, listName, movieID, title string, rating *float64) (bool, error)
	RemoveMovie(ctx context.Context, username, listName, movieID string) (bool, error)
	UpdateMovieRating(ctx context.Context, username, listName, movieID string, rating float64) (bool, error)
}

type ListService struct {
	Repo Repository
}

func NewService(repo Repository) *ListService {
	return &ListService{Repo: repo}
}

func (s *ListService) GetLists(ctx context.Context, username string) ([]List, error) {
	if username == "" {
		return []List{}, nil
	}
	return s.Repo.GetLists(ctx, username)
}

func (s *ListService) AddList(ctx context.Context, username, name string) (bool, error) {
	if username == "" || name == "" {
		return false, ErrValidation
	}
	return s.Repo.AddList(ctx, username, name)
}

func (s *ListService) DeleteList(ctx context.Context, username, name string) (bool, error) {
	if username == "" || name == "" {
		return false, ErrValidation
	}
	return s.Repo.DeleteList(ctx, username, name)
}

func (s *ListService) RenameList(ctx context.Context, username, oldName, newName string) (bool, error) {
	if username == "" || oldName == "" || newName == "" {
		return false, ErrValidation
	}
	return s.Repo.RenameList(ctx, username, oldName, newName)
}

// AddMovie appends an entry; rating stays absent from the document when nil.
func (s *ListService) AddMovie(ctx context.Context, username, listName, movieID, title string, rating *float64) (bool, error) {
	if username == "" || listName == "" || movieID == "" || title == "" {
		return false, ErrValidation
	}
	return s.Repo.AddMovie(ctx, username, listName, Movie{
		MovieID: movieID,
		Title:   title,
		Rating:  rating,
	})
}

func (s *ListService) RemoveMovie(ctx context.Context, username, listName, movieID string) (bool, error) {
	if username == "" || listName == "" || movieID == "" {
		return false, ErrValidation
	}
	return s.Repo.RemoveMovie(ctx, username, listName, movieID)
}

func (s *ListService) UpdateMovieRating(ctx context.Context, username, listName, movieID string, rating float64) (bool, error) {
	if username == "" || listName == "" || movieID == "" {
		return false, ErrValidation
	}
	return s.Repo.UpdateMovieRating(ctx, username, listName, movieID, rating)
}
