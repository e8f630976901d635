package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"movielists/pkg/list"
)

const (
	muxVarListName string = "list_name"
	muxVarOldName  string = "old_name"
	muxVarMovieID  string = "movie_id"
)

type ListForm struct {
	Name string `json:"name" validate:"required"`
}

type RenameForm struct {
	NewName string `json:"new_name" validate:"required"`
}

type MovieForm struct {
	MovieID string   `json:"movie_id" validate:"required"`
	Title   string   `json:"title" validate:"required"`
	Rating  *float64 `json:"rating"`
}

type RatingForm struct {
	Rating *float64 `json:"rating" validate:"required"`
}

type ListHandler struct {
	Service list.ServiceList
	Logger  *slog.Logger
}

func NewListHandler(service list.ServiceList, logger *slog.Logger) *ListHandler {
	return &ListHandler{
		Service: service,
		Logger:  logger,
	}
}

func (h *ListHandler) GetLists(w http.ResponseWriter, r *http.Request) {
	c, ok := getClaimsFromContext(w, r)
	if !ok {
		return
	}

	lists, err := h.Service.GetLists(r.Context(), c.User.Username)
	if err != nil {
		internalError(w, h.Logger, "get lists", err)
		return
	}

	writeJSON(w, h.Logger, http.StatusOK, lists)
}

func (h *ListHandler) CreateList(w http.ResponseWriter, r *http.Request) {
	var req ListForm
	h.mutate(w, r, &req, http.StatusCreated, "List added", "Could not add list",
		func(ctx context.Context, username string) (bool, error) {
			return h.Service.AddList(ctx, username, req.Name)
		})
}

func (h *ListHandler) DeleteList(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)[muxVarListName]
	h.mutate(w, r, nil, http.StatusOK, "List deleted", "Could not delete list",
		func(ctx context.Context, username string) (bool, error) {
			return h.Service.DeleteList(ctx, username, name)
		})
}

func (h *ListHandler) RenameList(w http.ResponseWriter, r *http.Request) {
	var req RenameForm
	oldName := mux.Vars(r)[muxVarOldName]
	h.mutate(w, r, &req, http.StatusOK, "List renamed", "Could not rename list",
		func(ctx context.Context, username string) (bool, error) {
			return h.Service.RenameList(ctx, username, oldName, req.NewName)
		})
}

func (h *ListHandler) AddMovie(w http.ResponseWriter, r *http.Request) {
	var req MovieForm
	listName := mux.Vars(r)[muxVarListName]
	h.mutate(w, r, &req, http.StatusCreated, "Movie added", "Could not add movie",
		func(ctx context.Context, username string) (bool, error) {
			return h.Service.AddMovie(ctx, username, listName, req.MovieID, req.Title, req.Rating)
		})
}

func (h *ListHandler) RemoveMovie(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	listName, movieID := vars[muxVarListName], vars[muxVarMovieID]
	h.mutate(w, r, nil, http.StatusOK, "Movie removed", "Could not remove movie",
		func(ctx context.Context, username string) (bool, error) {
			return h.Service.RemoveMovie(ctx, username, listName, movieID)
		})
}

func (h *ListHandler) UpdateRating(w http.ResponseWriter, r *http.Request) {
	var req RatingForm
	vars := mux.Vars(r)
	listName, movieID := vars[muxVarListName], vars[muxVarMovieID]
	h.mutate(w, r, &req, http.StatusOK, "Rating updated", "Could not update rating",
		func(ctx context.Context, username string) (bool, error) {
			return h.Service.UpdateMovieRating(ctx, username, listName, movieID, *req.Rating)
		})
}

// mutate runs one list operation for the principal. body may be nil for
// requests that carry everything in the path.
func (h *ListHandler) mutate(
	w http.ResponseWriter,
	r *http.Request,
	body any,
	status int,
	okMsg, failMsg string,
	op func(ctx context.Context, username string) (bool, error),
) {
	c, ok := getClaimsFromContext(w, r)
	if !ok {
		return
	}

	if body != nil {
		if ok := DecodeJSONBody(w, r, body); !ok {
			return
		}
	}

	changed, err := op(r.Context(), c.User.Username)
	if errors.Is(err, list.ErrValidation) {
		writeError(w, http.StatusBadRequest, failMsg)
		return
	}
	if err != nil {
		internalError(w, h.Logger, failMsg, err)
		return
	}
	if !changed {
		writeError(w, http.StatusBadRequest, failMsg)
		return
	}

	if ok := writeMessage(w, h.Logger, status, okMsg); ok {
		h.Logger.Info(okMsg, "user", c.User.ID)
	}
}
