package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"movielists/pkg/claims"
	"movielists/pkg/session"
)

const SessionCookie = "session"

// Routes reachable without a principal, by mux route name.
var publicRoutes = map[string]string{
	"register": http.MethodPost,
	"login":    http.MethodPost,
	"logout":   http.MethodPost,
}

// Auth resolves the principal from a Bearer token or the session cookie and
// checks the server-side session before the handler runs.
func Auth(sessions session.Repository, secret []byte, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if route := mux.CurrentRoute(r); route != nil {
				if method, ok := publicRoutes[route.GetName()]; ok && method == r.Method {
					next.ServeHTTP(w, r)
					return
				}
			}

			c, err := authenticate(r, sessions, secret)
			if errors.Is(err, session.ErrUnauthorized) {
				logger.Info("rejected request", "path", r.URL.Path, "error", err)
				unauthorized(w)
				return
			}
			if err != nil {
				logger.Error("session lookup", "error", err)
				http.Error(w, `{"error":"session store unavailable"}`, http.StatusInternalServerError)
				return
			}

			next.ServeHTTP(w, r.WithContext(claims.WithClaims(r.Context(), c)))
		})
	}
}

func authenticate(r *http.Request, sessions session.Repository, secret []byte) (*claims.Claims, error) {
	token := TokenFromRequest(r)
	if token == "" {
		return nil, session.ErrUnauthorized
	}

	c, err := claims.Parse(token, secret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", session.ErrUnauthorized, err)
	}

	ok, err := sessions.IsValid(r.Context(), c.SessionID)
	if err != nil {
		return nil, fmt.Errorf("user %s: %w", c.User.ID, err)
	}
	if !ok {
		return nil, session.ErrUnauthorized
	}
	return c, nil
}

// TokenFromRequest prefers the Authorization header over the session cookie.
func TokenFromRequest(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		return cookie.Value
	}
	return ""
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"Authentication required"}` + "\n"))
}
