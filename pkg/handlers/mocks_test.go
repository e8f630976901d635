package handlers_test

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/stretchr/testify/mock"
	"movielists/pkg/claims"
	"movielists/pkg/list"
	"movielists/pkg/user"
)

var (
	logger        = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{}))
	defaultClaims = claims.New("testuser", "user123", "sess123", time.Hour)
)

func withClaims(req *http.Request) *http.Request {
	return req.WithContext(claims.WithClaims(req.Context(), defaultClaims))
}

type mockUserService struct {
	mock.Mock
}

func (m *mockUserService) Register(ctx context.Context, username, email, password string) (*user.User, error) {
	args := m.Called(username, email, password)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

func (m *mockUserService) Authenticate(ctx context.Context, username, password string) (*user.User, error) {
	args := m.Called(username, password)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

func (m *mockUserService) Login(ctx context.Context, username, password string) (*user.User, string, error) {
	args := m.Called(username, password)
	u, _ := args.Get(0).(*user.User)
	return u, args.String(1), args.Error(2)
}

func (m *mockUserService) Logout(ctx context.Context, sessionID string) error {
	return m.Called(sessionID).Error(0)
}

func (m *mockUserService) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	args := m.Called(username)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

func (m *mockUserService) GetByID(ctx context.Context, id string) (*user.User, error) {
	args := m.Called(id)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

func (m *mockUserService) Update(ctx context.Context, username string, fields user.Fields) (*user.User, error) {
	args := m.Called(username, fields)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

func (m *mockUserService) Delete(ctx context.Context, username string) error {
	return m.Called(username).Error(0)
}

type mockListService struct {
	mock.Mock
}

func (m *mockListService) GetLists(ctx context.Context, username string) ([]list.List, error) {
	args := m.Called(username)
	l, _ := args.Get(0).([]list.List)
	return l, args.Error(1)
}

func (m *mockListService) AddList(ctx context.Context, username, name string) (bool, error) {
	args := m.Called(username, name)
	return args.Bool(0), args.Error(1)
}

func (m *mockListService) DeleteList(ctx context.Context, username, name string) (bool, error) {
	args := m.Called(username, name)
	return args.Bool(0), args.Error(1)
}

func (m *mockListService) RenameList(ctx context.Context, username, oldName, newName string) (bool, error) {
	args := m.Called(username, oldName, newName)
	return args.Bool(0), args.Error(1)
}

func (m *mockListService) AddMovie(ctx context.Context, username, listName, movieID, title string, rating *float64) (bool, error) {
	args := m.Called(username, listName, movieID, title, rating)
	return args.Bool(0), args.Error(1)
}

func (m *mockListService) RemoveMovie(ctx context.Context, username, listName, movieID string) (bool, error) {
	args := m.Called(username, listName, movieID)
	return args.Bool(0), args.Error(1)
}

func (m *mockListService) UpdateMovieRating(ctx context.Context, username, listName, movieID string, rating float64) (bool, error) {
	args := m.Called(username, listName, movieID, rating)
	return args.Bool(0), args.Error(1)
}
