package service

import (
	"context"
	"fmt"
	"time"

	"movierec/internal/catalog"
	"movierec/internal/config"
	"movierec/internal/logging"
	"movierec/internal/metrics"
	"movierec/internal/models"
	"movierec/internal/recommend"
	"movierec/internal/repository"
)

// LoadIndex reads the catalog from CATALOG_SOURCE and builds the index.
// Load failures come back as *catalog.LoadError; vectorization failures wrap
// tfidf.ErrEmptyCorpus or tfidf.ErrEmptyVocabulary.
func LoadIndex(ctx context.Context, cfg *config.Config) (*recommend.Index, error) {
	start := time.Now()

	var (
		movies []models.Movie
		err    error
	)
	switch cfg.CatalogSource {
	case "mongo":
		movies, err = repository.NewMovieRepository().All(ctx)
		if err != nil {
			return nil, &catalog.LoadError{Path: "mongo:movies", Err: err}
		}
		catalog.Reindex(movies)
	default:
		movies, err = catalog.LoadCSV(cfg.CatalogPath)
		if err != nil {
			return nil, err
		}
	}
	logging.Info().Str("source", cfg.CatalogSource).Int("movies", len(movies)).Msg("[catalog] loaded")

	idx, err := recommend.Build(movies, recommend.Options{
		Cutoff:     cfg.MatchCutoff,
		Candidates: cfg.MatchCandidates,
		K:          cfg.TopN,
	})
	if err != nil {
		return nil, fmt.Errorf("build index: %w", err)
	}

	took := time.Since(start)
	summary := idx.Summary(cfg.CatalogSource)
	metrics.RecordIndex(summary.Movies, summary.VocabularySize, took)
	logging.Info().
		Int("movies", summary.Movies).
		Int("terms", summary.VocabularySize).
		Int("empty_vectors", summary.EmptyVectors).
		Dur("took", took).
		Msg("[catalog] index ready")
	return idx, nil
}
