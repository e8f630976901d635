package session

import (
	"context"
	"errors"
	"time"
)

const DefaultTTL = time.Hour

var ErrUnauthorized = errors.New("unauthorized")

// Repository stores server-side sessions. A session is valid until it expires
// or is invalidated; InvalidateUser drops every session of one user.
type Repository interface {
	Create(ctx context.Context, userID, sessionID string) (string, error)
	IsValid(ctx context.Context, sessionID string) (bool, error)
	Invalidate(ctx context.Context, sessionID string) error
	InvalidateUser(ctx context.Context, userID string) error
}
