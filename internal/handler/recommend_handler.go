package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"movierec/internal/logging"
	"movierec/internal/models"
	"movierec/internal/recommend"
	"movierec/internal/service"

	"github.com/gorilla/websocket"
)

type RecommendHandler struct {
	svc *service.RecommendService
}

func NewRecommendHandler(s *service.RecommendService) *RecommendHandler {
	return &RecommendHandler{svc: s}
}

func parseRecRequest(r *http.Request, surface string) service.RecRequest {
	k, _ := strconv.Atoi(r.URL.Query().Get("k"))
	return service.RecRequest{
		Query:   r.URL.Query().Get("q"),
		K:       k,
		Refresh: r.URL.Query().Get("refresh") == "true",
		Surface: surface,
	}
}

// @Summary Movies similar to a title
// @Description Fuzzy-matches q against the catalog and ranks the rest by TF-IDF cosine similarity.
// @Tags recommend
// @Produce json
// @Param q query string true "movie title, typos allowed"
// @Param k query int false "number of recommendations (default 10, max 50)"
// @Param refresh query bool false "if true, skip the Redis cache"
// @Success 200 {object} models.RecResult
// @Success 204 "empty query"
// @Failure 404 {string} string "movie not found"
// @Router /recommendations [get]
func (h *RecommendHandler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Recommend(r.Context(), parseRecRequest(r, "http"))
	switch {
	case errors.Is(err, recommend.ErrEmptyQuery):
		w.WriteHeader(http.StatusNoContent)
		return
	case errors.Is(err, recommend.ErrNoMatch):
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	case err != nil:
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// ====== WebSocket ======

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsQuery is what a client sends on an open socket.
type wsQuery struct {
	Q       string `json:"q"`
	K       int    `json:"k"`
	Refresh bool   `json:"refresh"`
}

// @Summary Recommendations over a WebSocket
// @Description With q the socket answers once and closes. Without q it reads {"q","k"} messages until the client leaves.
// @Tags recommend
// @Param q query string false "movie title"
// @Param k query int false "number of recommendations (default 10, max 50)"
// @Param refresh query bool false "if true, skip the Redis cache"
// @Success 101 "switching protocols"
// @Router /ws/recommendations [get]
func (h *RecommendHandler) GetRecommendationsWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already replied to the client
		logging.Warn().Err(err).Msg("[ws] upgrade failed")
		return
	}
	defer conn.Close()

	if r.URL.Query().Get("q") != "" {
		h.answerWS(conn, r, parseRecRequest(r, "ws"))
		return
	}

	for {
		var msg wsQuery
		if err := conn.ReadJSON(&msg); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logging.Debug().Err(err).Msg("[ws] read ended")
			}
			return
		}
		req := service.RecRequest{Query: msg.Q, K: msg.K, Refresh: msg.Refresh, Surface: "ws"}
		if !h.answerWS(conn, r, req) {
			return
		}
	}
}

// answerWS streams one query's messages and reports whether the socket is
// still writable.
func (h *RecommendHandler) answerWS(conn *websocket.Conn, r *http.Request, req service.RecRequest) bool {
	if req.Query == "" {
		return true
	}

	if err := conn.WriteJSON(map[string]any{
		"type":  "start",
		"query": req.Query,
	}); err != nil {
		return false
	}

	res, err := h.svc.Recommend(r.Context(), req)
	switch {
	case errors.Is(err, recommend.ErrEmptyQuery):
		return true
	case errors.Is(err, recommend.ErrNoMatch):
		return conn.WriteJSON(map[string]any{
			"type":  "not_found",
			"query": req.Query,
			"msg":   "Movie not found!",
		}) == nil
	case err != nil:
		return conn.WriteJSON(map[string]any{
			"type":  "error",
			"error": err.Error(),
		}) == nil
	}

	if err := conn.WriteJSON(map[string]any{
		"type":         "match",
		"match":        res.Match,
		"matchIndex":   res.MatchIndex,
		"ratio":        res.MatchRatio,
		"alternatives": res.Alternatives,
	}); err != nil {
		return false
	}

	return conn.WriteJSON(wsRecommendations{
		Type:        "recommendations",
		Match:       res.Match,
		Items:       res.Items,
		GeneratedAt: time.Now(),
	}) == nil
}

type wsRecommendations struct {
	Type        string           `json:"type"`
	Match       string           `json:"match"`
	Items       []models.RecItem `json:"items"`
	GeneratedAt time.Time        `json:"generatedAt"`
}
