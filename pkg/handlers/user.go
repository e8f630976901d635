package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"movielists/pkg/claims"
	"movielists/pkg/list"
	"movielists/pkg/middleware"
	"movielists/pkg/user"
)

const (
	muxVarUsername string = "username"
	muxVarUserID   string = "user_id"

	passwordTooLongMsg = "Password must be at most 72 bytes"
)

type RegisterForm struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginForm carries no validate tags: a login with missing fields is rejected
// like any other bad credential.
type LoginForm struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type UpdateUserForm struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// UserView is what other principals may see of a user document.
type UserView struct {
	Username string      `json:"username"`
	Email    string      `json:"email"`
	Lists    []list.List `json:"lists"`
}

func newUserView(u *user.User) UserView {
	lists := u.Lists
	if lists == nil {
		lists = []list.List{}
	}
	return UserView{Username: u.Username, Email: u.Email, Lists: lists}
}

type Handler struct {
	Service  user.ServiceInterface
	Logger   *slog.Logger
	Secret   []byte
	TokenTTL time.Duration
}

func NewUserHandler(service user.ServiceInterface, logger *slog.Logger, secret []byte, ttl time.Duration) *Handler {
	return &Handler{
		Service:  service,
		Logger:   logger,
		Secret:   secret,
		TokenTTL: ttl,
	}
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterForm
	if ok := DecodeJSONBody(w, r, &req); !ok {
		return
	}

	u, err := h.Service.Register(r.Context(), req.Username, req.Email, req.Password)
	if errors.Is(err, user.ErrAlreadyExists) {
		writeError(w, http.StatusConflict, "User already exists")
		return
	}
	if errors.Is(err, user.ErrPasswordTooLong) {
		writeError(w, http.StatusBadRequest, passwordTooLongMsg)
		return
	}
	if err != nil {
		internalError(w, h.Logger, "register", err)
		return
	}

	if ok := writeMessage(w, h.Logger, http.StatusCreated, "User created"); ok {
		h.Logger.Info("register", "user", u.ID)
	}
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginForm
	if ok := DecodeJSONBody(w, r, &req); !ok {
		return
	}

	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	u, sessionID, err := h.Service.Login(r.Context(), req.Username, req.Password)
	if errors.Is(err, user.ErrInvalidCredentials) {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err != nil {
		internalError(w, h.Logger, "login", err)
		return
	}

	token, err := claims.New(u.Username, u.ID, sessionID, h.TokenTTL).Sign(h.Secret)
	if err != nil {
		internalError(w, h.Logger, "token signing", err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(h.TokenTTL),
	})

	if ok := writeJSON(w, h.Logger, http.StatusOK, map[string]string{
		typeMessage: "Login successful",
		"token":     token,
	}); ok {
		h.Logger.Info("login", "user", u.ID)
	}
}

// Logout never fails: it drops the caller's session when the token still
// resolves to one, then clears the cookie.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if c := h.claimsFromRequest(r); c != nil {
		if err := h.Service.Logout(r.Context(), c.SessionID); err != nil {
			h.Logger.Error("logout", "error", err, "user", c.User.ID)
		} else {
			h.Logger.Info("logout", "user", c.User.ID)
		}
	}

	clearSessionCookie(w)
	writeMessage(w, h.Logger, http.StatusOK, "Logged out")
}

// claimsFromRequest is a best-effort lookup for routes outside the auth gate.
func (h *Handler) claimsFromRequest(r *http.Request) *claims.Claims {
	if c, ok := claims.FromContext(r.Context()); ok {
		return c
	}
	token := middleware.TokenFromRequest(r)
	if token == "" {
		return nil
	}
	c, err := claims.Parse(token, h.Secret)
	if err != nil {
		return nil
	}
	return c
}

func (h *Handler) ViewUser(w http.ResponseWriter, r *http.Request) {
	u, err := h.Service.GetByUsername(r.Context(), mux.Vars(r)[muxVarUsername])
	h.writeUser(w, u, err)
}

func (h *Handler) ViewUserByID(w http.ResponseWriter, r *http.Request) {
	u, err := h.Service.GetByID(r.Context(), mux.Vars(r)[muxVarUserID])
	h.writeUser(w, u, err)
}

func (h *Handler) writeUser(w http.ResponseWriter, u *user.User, err error) {
	if errors.Is(err, user.ErrNotFound) {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		internalError(w, h.Logger, "view user", err)
		return
	}
	writeJSON(w, h.Logger, http.StatusOK, newUserView(u))
}

func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	c, username, ok := h.authorizeSelf(w, r)
	if !ok {
		return
	}

	var req UpdateUserForm
	if ok := DecodeJSONBody(w, r, &req); !ok {
		return
	}

	u, err := h.Service.Update(r.Context(), username, user.Fields{Email: req.Email, Password: req.Password})
	switch {
	case errors.Is(err, user.ErrNoFields):
		writeError(w, http.StatusBadRequest, "No fields to update")
		return
	case errors.Is(err, user.ErrPasswordTooLong):
		writeError(w, http.StatusBadRequest, passwordTooLongMsg)
		return
	case errors.Is(err, user.ErrNotFound):
		writeError(w, http.StatusBadRequest, "Could not update user")
		return
	case err != nil:
		internalError(w, h.Logger, "update user", err)
		return
	}

	if ok := writeJSON(w, h.Logger, http.StatusOK, map[string]any{
		typeMessage: "User updated",
		"user":      newUserView(u),
	}); ok {
		h.Logger.Info("update user", "user", c.User.ID)
	}
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	c, username, ok := h.authorizeSelf(w, r)
	if !ok {
		return
	}

	err := h.Service.Delete(r.Context(), username)
	if errors.Is(err, user.ErrNotFound) {
		writeError(w, http.StatusBadRequest, "Could not delete user")
		return
	}
	if err != nil {
		internalError(w, h.Logger, "delete user", err)
		return
	}

	clearSessionCookie(w)
	if ok := writeMessage(w, h.Logger, http.StatusOK, "User deleted"); ok {
		h.Logger.Info("delete user", "user", c.User.ID)
	}
}

// authorizeSelf only lets a principal act on its own user record.
func (h *Handler) authorizeSelf(w http.ResponseWriter, r *http.Request) (*claims.Claims, string, bool) {
	c, ok := getClaimsFromContext(w, r)
	if !ok {
		return nil, "", false
	}

	username := mux.Vars(r)[muxVarUsername]
	if username != c.User.Username {
		writeError(w, http.StatusForbidden, "Not permitted to modify another user")
		return nil, "", false
	}
	return c, username, true
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}
