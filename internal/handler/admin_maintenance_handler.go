package handler

import (
	"errors"
	"net/http"
	"strconv"

	"movierec/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
)

// AdminMaintenanceHandler exposes operator endpoints.
type AdminMaintenanceHandler struct {
	svc  *service.AdminMaintenanceService
	recs *service.RecommendService
}

func NewAdminMaintenanceHandler(svc *service.AdminMaintenanceService, recs *service.RecommendService) *AdminMaintenanceHandler {
	return &AdminMaintenanceHandler{svc: svc, recs: recs}
}

// @Summary Catalog summary
// @Description Movie count, vocabulary size and vectors without any token.
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.CatalogSummary
// @Router /admin/catalog/summary [get]
func (h *AdminMaintenanceHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.GetCatalogSummary())
}

// @Summary Recent queries
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Param limit query int false "max entries (default 50)"
// @Success 200 {array} models.QueryLog
// @Failure 503 {string} string "history disabled"
// @Router /admin/history [get]
func (h *AdminMaintenanceHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	if !h.recs.HistoryEnabled() {
		http.Error(w, service.ErrStoreDisabled.Error(), http.StatusServiceUnavailable)
		return
	}
	limit, _ := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)

	out, err := h.recs.History(r.Context(), limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// @Summary Export top-k neighbours
// @Description Writes every movie's top-k neighbour list to the similarities collection.
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Param k query int false "neighbours per movie (default 20, max 50)"
// @Success 200 {object} models.SimilarityExport
// @Failure 503 {string} string "mongo not configured"
// @Router /admin/similarities/export [post]
func (h *AdminMaintenanceHandler) PostExport(w http.ResponseWriter, r *http.Request) {
	k, _ := strconv.Atoi(r.URL.Query().Get("k"))

	res, err := h.svc.ExportSimilarities(r.Context(), k)
	if errors.Is(err, service.ErrStoreDisabled) {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// @Summary Stored neighbours of a movie
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Param idx path int true "catalog index"
// @Param k query int false "max neighbours (default 20)"
// @Success 200 {array} models.Neighbor
// @Failure 503 {string} string "mongo not configured"
// @Router /admin/similarities/{idx} [get]
func (h *AdminMaintenanceHandler) GetStoredNeighbors(w http.ResponseWriter, r *http.Request) {
	idx, err := strconv.Atoi(chi.URLParam(r, "idx"))
	if err != nil {
		http.Error(w, "idx must be an integer", http.StatusBadRequest)
		return
	}
	k, _ := strconv.Atoi(r.URL.Query().Get("k"))

	out, err := h.svc.GetStoredNeighbors(r.Context(), idx, k)
	if errors.Is(err, service.ErrStoreDisabled) {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func MountAdminMaintenanceRoutes(r chi.Router, h *AdminMaintenanceHandler) {
	r.Route("/admin", func(r chi.Router) {
		r.Get("/catalog/summary", h.GetSummary)
		r.Get("/history", h.GetHistory)
		r.Post("/similarities/export", h.PostExport)
		r.Get("/similarities/{idx}", h.GetStoredNeighbors)
	})
}
