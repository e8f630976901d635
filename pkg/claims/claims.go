package claims

import (
	"context"
	"errors"
	"time"

	jwt "github.com/dgrijalva/jwt-go"
)

type contextKey string

const (
	TokenContextKey contextKey = "token"
)

var ErrBadSignMethod = errors.New("bad sign method")

type Principal struct {
	Username string `json:"username"`
	ID       string `json:"id"`
}

// Claims ties a signed token to one server-side session.
type Claims struct {
	User      Principal `json:"user"`
	SessionID string    `json:"sid"`
	jwt.StandardClaims
}

func New(username, userID, sessionID string, ttl time.Duration) *Claims {
	now := time.Now().UTC()
	return &Claims{
		User:      Principal{Username: username, ID: userID},
		SessionID: sessionID,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(ttl).Unix(),
		},
	}
}

func (c *Claims) Sign(secret []byte) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(secret)
}

// Parse verifies an HS256 token and returns its claims.
func Parse(token string, secret []byte) (*Claims, error) {
	c := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, c, func(t *jwt.Token) (interface{}, error) {
		method, ok := t.Method.(*jwt.SigningMethodHMAC)
		if !ok || method.Alg() != "HS256" {
			return nil, ErrBadSignMethod
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !parsed.Valid || c.User.Username == "" || c.SessionID == "" {
		return nil, errors.New("invalid token")
	}
	return c, nil
}

func WithClaims(ctx context.Context, c *Claims) context.Context {
	return context.WithValue(ctx, TokenContextKey, c)
}

func FromContext(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(TokenContextKey).(*Claims)
	if !ok || c == nil || c.User.Username == "" {
		return nil, false
	}
	return c, true
}
