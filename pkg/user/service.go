package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"movielists/pkg/credential"
	"movielists/pkg/generator"
	"movielists/pkg/list"
	"movielists/pkg/session"
)

const sessionIDLen = 24

type ServiceInterface interface {
	Register(ctx context.Context, username, email, password string) (*User, error)
	Authenticate(ctx context.Context, username, password string) (*User, error)
	Login(ctx context.Context, username, password string) (*User, string, error)
	Logout(ctx context.Context, sessionID string) error
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	Update(ctx context.Context, username string, fields Fields) (*User, error)
	Delete(ctx context.Context, username string) error
}

type Service struct {
	Repo    Repository
	Session session.Repository
}

func NewService(repo Repository, session session.Repository) *Service {
	return &Service{Repo: repo, Session: session}
}

// Register creates a user with an empty list collection. The existence check
// is a fast path; the unique index on username is what closes the race.
func (s *Service) Register(ctx context.Context, username, email, password string) (*User, error) {
	exist, err := s.Repo.FindByUsername(ctx, username)
	if exist != nil && err == nil {
		return nil, ErrAlreadyExists
	}
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	hashedPassword, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &User{
		ID:       uuid.NewString(),
		Username: username,
		Email:    email,
		Password: hashedPassword,
		Lists:    make([]list.List, 0),
	}

	if err := s.Repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Authenticate never tells an unknown username apart from a wrong password.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*User, error) {
	user, err := s.Repo.FindByUsername(ctx, username)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !credential.Verify(password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// Login authenticates and opens a server-side session, returning its id.
func (s *Service) Login(ctx context.Context, username, password string) (*User, string, error) {
	user, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return nil, "", err
	}

	sessionID, err := generator.GenerateRandomID(sessionIDLen)
	if err != nil {
		return nil, "", fmt.Errorf("SessionID gen error: %w", err)
	}
	if _, err := s.Session.Create(ctx, user.ID, sessionID); err != nil {
		return nil, "", fmt.Errorf("failed to create session: %w", err)
	}

	return user, sessionID, nil
}

func (s *Service) Logout(ctx context.Context, sessionID string) error {
	return s.Session.Invalidate(ctx, sessionID)
}

func (s *Service) GetByUsername(ctx context.Context, username string) (*User, error) {
	return s.Repo.FindByUsername(ctx, username)
}

func (s *Service) GetByID(ctx context.Context, id string) (*User, error) {
	return s.Repo.FindByID(ctx, id)
}

// Update rehashes a supplied password before it reaches the store.
func (s *Service) Update(ctx context.Context, username string, fields Fields) (*User, error) {
	if fields.Empty() {
		return nil, ErrNoFields
	}

	if fields.Password != nil {
		hashed, err := hashPassword(*fields.Password)
		if err != nil {
			return nil, err
		}
		fields.Password = &hashed
	}

	return s.Repo.Update(ctx, username, fields)
}

// Delete removes the user document and every session it still holds.
func (s *Service) Delete(ctx context.Context, username string) error {
	user, err := s.Repo.FindByUsername(ctx, username)
	if err != nil {
		return err
	}

	if err := s.Repo.Delete(ctx, username); err != nil {
		return err
	}

	if err := s.Session.InvalidateUser(ctx, user.ID); err != nil {
		return fmt.Errorf("failed to invalidate sessions: %w", err)
	}
	return nil
}

// bcrypt only looks at the first 72 bytes, so longer passwords are refused
// as input errors rather than silently truncated.
func hashPassword(password string) (string, error) {
	hashed, err := credential.Hash(password)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", ErrPasswordTooLong
	}
	if err != nil {
		return "", fmt.Errorf("hashing password error: %w", err)
	}
	return hashed, nil
}
