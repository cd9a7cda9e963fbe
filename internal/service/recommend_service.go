package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"movierec/internal/cache"
	"movierec/internal/logging"
	"movierec/internal/metrics"
	"movierec/internal/models"
	"movierec/internal/recommend"
	"movierec/internal/repository"
)

type RecommendService struct {
	index *recommend.Index
	// nil when Mongo is not configured
	history  *repository.RecommendationRepository
	cacheTTL time.Duration
}

func NewRecommendService(
	index *recommend.Index,
	history *repository.RecommendationRepository,
	cacheTTL time.Duration,
) *RecommendService {
	return &RecommendService{
		index:    index,
		history:  history,
		cacheTTL: cacheTTL,
	}
}

// ====== Request parameters that vary per call ======

type RecRequest struct {
	Query   string
	K       int
	Refresh bool
	// metrics label: http, ws, page, tcp, cli
	Surface string
}

// cacheKey scopes entries to the loaded catalog so a reload never serves
// results computed from an older one.
func (s *RecommendService) cacheKey(query string, k int) string {
	return fmt.Sprintf("rec:%s:q:%s:k:%d", s.index.Fingerprint(), query, k)
}

// Recommend resolves a title query. recommend.ErrEmptyQuery and
// recommend.ErrNoMatch are per-query outcomes; callers decide how to show them.
// Cache and history failures are logged and never fail the query.
func (s *RecommendService) Recommend(ctx context.Context, req RecRequest) (*models.RecResult, error) {
	start := time.Now()
	if req.Surface == "" {
		req.Surface = "http"
	}
	if req.K <= 0 || req.K > recommend.MaxK {
		req.K = 0
	}

	// 1) cache, unless the caller asked for a fresh computation
	key := s.cacheKey(req.Query, req.K)
	if !req.Refresh && cache.Enabled() {
		var cached models.RecResult
		ok, err := cache.GetJSON(ctx, key, &cached)
		if err != nil {
			logging.Warn().Err(err).Str("key", key).Msg("[recommend] cache read failed")
		}
		if ok {
			metrics.CacheHits.Inc()
			metrics.RecordQuery(req.Surface, metrics.OutcomeOK, start)
			return &cached, nil
		}
		metrics.CacheMisses.Inc()
	}

	// 2) resolve against the precomputed index
	res, err := s.index.Resolve(req.Query, req.K)
	switch {
	case errors.Is(err, recommend.ErrEmptyQuery):
		metrics.RecordQuery(req.Surface, metrics.OutcomeEmpty, start)
		return nil, err
	case errors.Is(err, recommend.ErrNoMatch):
		metrics.RecordQuery(req.Surface, metrics.OutcomeNoMatch, start)
		s.saveHistory(ctx, req, nil)
		return nil, err
	case err != nil:
		metrics.RecordQuery(req.Surface, metrics.OutcomeError, start)
		return nil, err
	}

	// 3) history and cache are best effort
	s.saveHistory(ctx, req, res)
	if err := cache.SetJSON(ctx, key, res, s.cacheTTL); err != nil {
		logging.Warn().Err(err).Str("key", key).Msg("[recommend] cache write failed")
	}

	metrics.RecordQuery(req.Surface, metrics.OutcomeOK, start)
	logging.Debug().
		Str("query", req.Query).
		Str("match", res.Match).
		Int("items", len(res.Items)).
		Dur("took", time.Since(start)).
		Msg("[recommend] resolved")
	return res, nil
}

func (s *RecommendService) saveHistory(ctx context.Context, req RecRequest, res *models.RecResult) {
	if s.history == nil {
		return
	}
	entry := &models.QueryLog{Query: req.Query, K: req.K}
	if res != nil {
		entry.Found = true
		entry.Match = res.Match
		entry.Items = res.Items
	}
	if err := s.history.Insert(ctx, entry); err != nil {
		logging.Warn().Err(err).Msg("[recommend] saving history failed")
	}
}

// History lists recent queries, or nil when history is disabled.
func (s *RecommendService) History(ctx context.Context, limit int64) ([]models.QueryLog, error) {
	if s.history == nil {
		return nil, nil
	}
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	return s.history.Recent(ctx, limit)
}

// HistoryEnabled reports whether queries are being recorded.
func (s *RecommendService) HistoryEnabled() bool { return s.history != nil }
