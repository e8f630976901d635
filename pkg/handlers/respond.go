package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"movielists/pkg/claims"
)

const (
	typeError   string = "error"
	typeMessage string = "message"
)

var validate = validator.New()

// DecodeJSONBody decodes and presence-checks req, answering 400 itself on
// failure.
func DecodeJSONBody(w http.ResponseWriter, r *http.Request, req any) bool {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		writeError(w, http.StatusBadRequest, "invalid Content-Type")
		return false
	}

	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		if errors.Is(err, io.EOF) {
			writeError(w, http.StatusBadRequest, "Missing JSON body")
			return false
		}
		writeError(w, http.StatusBadRequest, "bad json")
		return false
	}

	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err))
		return false
	}

	return true
}

func validationMessage(err error) string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) || len(ve) == 0 {
		return "Invalid input data"
	}
	fields := make([]string, 0, len(ve))
	for _, e := range ve {
		fields = append(fields, strings.ToLower(e.Field()))
	}
	return "Missing fields: " + strings.Join(fields, ", ")
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, data any) bool {
	resp, err := json.Marshal(data)
	if err != nil {
		logger.Error("Failed to serialize JSON response", "error", err)
		writeError(w, http.StatusInternalServerError, "failed json marshal")
		return false
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if _, err := w.Write(resp); err != nil {
		logger.Error("Failed to write response to client", "error", err)
		return false
	}
	return true
}

func writeMessage(w http.ResponseWriter, logger *slog.Logger, status int, msg string) bool {
	return writeJSON(w, logger, status, map[string]string{typeMessage: msg})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]string{typeError: msg}); err != nil {
		return
	}
}

// internalError logs a store fault and hides it from the client.
func internalError(w http.ResponseWriter, logger *slog.Logger, action string, err error) {
	logger.Error(action, "error", err)
	writeError(w, http.StatusInternalServerError, "internal server error")
}

func getClaimsFromContext(w http.ResponseWriter, r *http.Request) (*claims.Claims, bool) {
	c, ok := claims.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return nil, false
	}
	return c, true
}
