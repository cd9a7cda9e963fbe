package handler

import (
	"errors"
	"net/http"
	"strconv"

	"movierec/internal/recommend"
	"movierec/internal/service"

	"github.com/go-chi/chi/v5"
)

type MovieHandler struct {
	svc *service.MovieService
}

func NewMovieHandler(s *service.MovieService) *MovieHandler { return &MovieHandler{svc: s} }

func movieIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	idx, err := strconv.Atoi(chi.URLParam(r, "idx"))
	if err != nil {
		http.Error(w, "idx must be an integer", http.StatusBadRequest)
		return 0, false
	}
	return idx, true
}

// @Summary Get movie
// @Tags movies
// @Produce json
// @Param idx path int true "catalog index"
// @Success 200 {object} models.Movie
// @Failure 404 {string} string "no such movie"
// @Router /movies/{idx} [get]
func (h *MovieHandler) GetMovie(w http.ResponseWriter, r *http.Request) {
	idx, ok := movieIndex(w, r)
	if !ok {
		return
	}
	m, err := h.svc.GetMovie(idx)
	if errors.Is(err, recommend.ErrBadIndex) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// @Summary Movies similar to a catalog row
// @Tags movies
// @Produce json
// @Param idx path int true "catalog index"
// @Param k query int false "number of recommendations (default 10, max 50)"
// @Success 200 {array} models.RecItem
// @Failure 404 {string} string "no such movie"
// @Router /movies/{idx}/similar [get]
func (h *MovieHandler) Similar(w http.ResponseWriter, r *http.Request) {
	idx, ok := movieIndex(w, r)
	if !ok {
		return
	}
	k, _ := strconv.Atoi(r.URL.Query().Get("k"))

	items, err := h.svc.Similar(idx, k)
	if errors.Is(err, recommend.ErrBadIndex) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// @Summary Titles close to a query
// @Tags movies
// @Produce json
// @Param q query string true "text to match against titles"
// @Param limit query int false "max candidates (default 10)"
// @Success 200 {array} models.TitleCandidate
// @Router /movies/search [get]
func (h *MovieHandler) Search(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	writeJSON(w, http.StatusOK, h.svc.Search(r.URL.Query().Get("q"), limit))
}
