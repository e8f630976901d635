package handlers_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"movielists/pkg/handlers"
	"movielists/pkg/list"
)

func ratingOf(v float64) *float64 { return &v }

func TestGetLists(t *testing.T) {
	m := new(mockListService)
	handler := handlers.NewListHandler(m, logger)

	t.Run("unauthorized", func(t *testing.T) {
		rr := httptest.NewRecorder()

		handler.GetLists(rr, httptest.NewRequest(http.MethodGet, "/lists", nil))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("success", func(t *testing.T) {
		m.On("GetLists", "testuser").Return([]list.List{
			{Name: "watch", Movies: []list.Movie{{MovieID: "tt1", Title: "Dune", Rating: ratingOf(8.5)}}},
		}, nil).Once()
		rr := httptest.NewRecorder()

		handler.GetLists(rr, withClaims(httptest.NewRequest(http.MethodGet, "/lists", nil)))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `[{"name":"watch","movies":[{"movie_id":"tt1","title":"Dune","rating":8.5}]}]`, rr.Body.String())
	})

	t.Run("empty", func(t *testing.T) {
		m.On("GetLists", "testuser").Return([]list.List{}, nil).Once()
		rr := httptest.NewRecorder()

		handler.GetLists(rr, withClaims(httptest.NewRequest(http.MethodGet, "/lists", nil)))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `[]`, rr.Body.String())
	})

	t.Run("store error", func(t *testing.T) {
		m.On("GetLists", "testuser").Return(nil, errors.New("db down")).Once()
		rr := httptest.NewRecorder()

		handler.GetLists(rr, withClaims(httptest.NewRequest(http.MethodGet, "/lists", nil)))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})

	m.AssertExpectations(t)
}

func TestCreateList(t *testing.T) {
	m := new(mockListService)
	handler := handlers.NewListHandler(m, logger)

	t.Run("unauthorized", func(t *testing.T) {
		rr := httptest.NewRecorder()

		handler.CreateList(rr, jsonRequest(http.MethodPost, "/lists", `{"name":"favs"}`))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("missing name", func(t *testing.T) {
		rr := httptest.NewRecorder()

		handler.CreateList(rr, withClaims(jsonRequest(http.MethodPost, "/lists", `{}`)))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "Missing fields: name")
	})

	t.Run("success", func(t *testing.T) {
		m.On("AddList", "testuser", "favs").Return(true, nil).Once()
		rr := httptest.NewRecorder()

		handler.CreateList(rr, withClaims(jsonRequest(http.MethodPost, "/lists", `{"name":"favs"}`)))

		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.Contains(t, rr.Body.String(), "List added")
	})

	t.Run("not modified", func(t *testing.T) {
		m.On("AddList", "testuser", "favs").Return(false, nil).Once()
		rr := httptest.NewRecorder()

		handler.CreateList(rr, withClaims(jsonRequest(http.MethodPost, "/lists", `{"name":"favs"}`)))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "Could not add list")
	})

	t.Run("store error", func(t *testing.T) {
		m.On("AddList", "testuser", "favs").Return(false, errors.New("db down")).Once()
		rr := httptest.NewRecorder()

		handler.CreateList(rr, withClaims(jsonRequest(http.MethodPost, "/lists", `{"name":"favs"}`)))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})

	m.AssertExpectations(t)
}

func TestDeleteAndRenameList(t *testing.T) {
	m := new(mockListService)
	handler := handlers.NewListHandler(m, logger)

	t.Run("delete", func(t *testing.T) {
		m.On("DeleteList", "testuser", "favs").Return(true, nil).Once()
		req := mux.SetURLVars(withClaims(httptest.NewRequest(http.MethodDelete, "/lists/favs", nil)), map[string]string{"list_name": "favs"})
		rr := httptest.NewRecorder()

		handler.DeleteList(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "List deleted")
	})

	t.Run("delete missing list", func(t *testing.T) {
		m.On("DeleteList", "testuser", "nope").Return(false, nil).Once()
		req := mux.SetURLVars(withClaims(httptest.NewRequest(http.MethodDelete, "/lists/nope", nil)), map[string]string{"list_name": "nope"})
		rr := httptest.NewRecorder()

		handler.DeleteList(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("rename", func(t *testing.T) {
		m.On("RenameList", "testuser", "favs", "top").Return(true, nil).Once()
		req := mux.SetURLVars(withClaims(jsonRequest(http.MethodPut, "/lists/favs/rename", `{"new_name":"top"}`)), map[string]string{"old_name": "favs"})
		rr := httptest.NewRecorder()

		handler.RenameList(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "List renamed")
	})

	t.Run("rename missing new_name", func(t *testing.T) {
		req := mux.SetURLVars(withClaims(jsonRequest(http.MethodPut, "/lists/favs/rename", `{"name":"top"}`)), map[string]string{"old_name": "favs"})
		rr := httptest.NewRecorder()

		handler.RenameList(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "newname")
	})

	t.Run("service validation", func(t *testing.T) {
		m.On("RenameList", "testuser", "", "top").Return(false, list.ErrValidation).Once()
		req := mux.SetURLVars(withClaims(jsonRequest(http.MethodPut, "/lists//rename", `{"new_name":"top"}`)), map[string]string{"old_name": ""})
		rr := httptest.NewRecorder()

		handler.RenameList(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "Could not rename list")
	})

	m.AssertExpectations(t)
}

func TestMovies(t *testing.T) {
	m := new(mockListService)
	handler := handlers.NewListHandler(m, logger)
	vars := map[string]string{"list_name": "watch", "movie_id": "tt1"}

	t.Run("add with rating", func(t *testing.T) {
		m.On("AddMovie", "testuser", "watch", "tt1", "Dune", mock.MatchedBy(func(r *float64) bool {
			return r != nil && *r == 8.5
		})).Return(true, nil).Once()
		req := mux.SetURLVars(withClaims(jsonRequest(http.MethodPost, "/lists/watch/movies", `{"movie_id":"tt1","title":"Dune","rating":8.5}`)), vars)
		rr := httptest.NewRecorder()

		handler.AddMovie(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.Contains(t, rr.Body.String(), "Movie added")
	})

	t.Run("add without rating", func(t *testing.T) {
		m.On("AddMovie", "testuser", "watch", "tt2", "Heat", (*float64)(nil)).Return(true, nil).Once()
		req := mux.SetURLVars(withClaims(jsonRequest(http.MethodPost, "/lists/watch/movies", `{"movie_id":"tt2","title":"Heat"}`)), vars)
		rr := httptest.NewRecorder()

		handler.AddMovie(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
	})

	t.Run("add missing title", func(t *testing.T) {
		req := mux.SetURLVars(withClaims(jsonRequest(http.MethodPost, "/lists/watch/movies", `{"movie_id":"tt1"}`)), vars)
		rr := httptest.NewRecorder()

		handler.AddMovie(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("add to missing list", func(t *testing.T) {
		m.On("AddMovie", "testuser", "watch", "tt3", "Alien", (*float64)(nil)).Return(false, nil).Once()
		req := mux.SetURLVars(withClaims(jsonRequest(http.MethodPost, "/lists/watch/movies", `{"movie_id":"tt3","title":"Alien"}`)), vars)
		rr := httptest.NewRecorder()

		handler.AddMovie(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "Could not add movie")
	})

	t.Run("remove", func(t *testing.T) {
		m.On("RemoveMovie", "testuser", "watch", "tt1").Return(true, nil).Once()
		req := mux.SetURLVars(withClaims(httptest.NewRequest(http.MethodDelete, "/lists/watch/movies/tt1", nil)), vars)
		rr := httptest.NewRecorder()

		handler.RemoveMovie(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "Movie removed")
	})

	t.Run("remove missing", func(t *testing.T) {
		m.On("RemoveMovie", "testuser", "watch", "tt1").Return(false, nil).Once()
		req := mux.SetURLVars(withClaims(httptest.NewRequest(http.MethodDelete, "/lists/watch/movies/tt1", nil)), vars)
		rr := httptest.NewRecorder()

		handler.RemoveMovie(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("rate", func(t *testing.T) {
		m.On("UpdateMovieRating", "testuser", "watch", "tt1", 10.0).Return(true, nil).Once()
		req := mux.SetURLVars(withClaims(jsonRequest(http.MethodPut, "/lists/watch/movies/tt1/rating", `{"rating":10}`)), vars)
		rr := httptest.NewRecorder()

		handler.UpdateRating(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "Rating updated")
	})

	t.Run("rate zero is a rating", func(t *testing.T) {
		m.On("UpdateMovieRating", "testuser", "watch", "tt1", 0.0).Return(true, nil).Once()
		req := mux.SetURLVars(withClaims(jsonRequest(http.MethodPut, "/lists/watch/movies/tt1/rating", `{"rating":0}`)), vars)
		rr := httptest.NewRecorder()

		handler.UpdateRating(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("rate missing rating", func(t *testing.T) {
		req := mux.SetURLVars(withClaims(jsonRequest(http.MethodPut, "/lists/watch/movies/tt1/rating", `{}`)), vars)
		rr := httptest.NewRecorder()

		handler.UpdateRating(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "rating")
	})

	m.AssertExpectations(t)
}
