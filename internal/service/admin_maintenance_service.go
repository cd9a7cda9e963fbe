package service

import (
	"context"
	"errors"
	"time"

	"movierec/internal/logging"
	"movierec/internal/models"
	"movierec/internal/recommend"
	"movierec/internal/repository"
)

// SimilarityMetric tags exported neighbour lists.
const SimilarityMetric = "tfidf-cosine"

var ErrStoreDisabled = errors.New("mongo is not configured")

// AdminMaintenanceService reports on the loaded catalog and exports
// neighbour lists.
type AdminMaintenanceService struct {
	index  *recommend.Index
	source string
	// nil when Mongo is not configured
	sims *repository.SimilarityRepository
}

func NewAdminMaintenanceService(
	index *recommend.Index,
	source string,
	sims *repository.SimilarityRepository,
) *AdminMaintenanceService {
	return &AdminMaintenanceService{index: index, source: source, sims: sims}
}

// ---------------------- SUMMARY ----------------------

func (s *AdminMaintenanceService) GetCatalogSummary() models.CatalogSummary {
	return s.index.Summary(s.source)
}

// ---------------------- EXPORT ----------------------

// ExportSimilarities writes the top-k neighbours of every movie to the
// similarities collection, replacing earlier exports for the same metric.
func (s *AdminMaintenanceService) ExportSimilarities(ctx context.Context, k int) (*models.SimilarityExport, error) {
	if s.sims == nil {
		return nil, ErrStoreDisabled
	}
	if k <= 0 {
		k = 20
	}
	if k > recommend.MaxK {
		k = recommend.MaxK
	}

	start := time.Now()
	now := start.UTC().Format(time.RFC3339)

	all := s.index.Neighbors(k)
	docs := make([]models.SimilarityDoc, 0, len(all))
	for i, items := range all {
		m, err := s.index.Movie(i)
		if err != nil {
			return nil, err
		}
		neighbors := make([]models.Neighbor, len(items))
		for j, it := range items {
			neighbors[j] = models.Neighbor{IIdx: it.Index, Title: it.Title, Sim: it.Score}
		}
		docs = append(docs, models.SimilarityDoc{
			ID:        repository.DocID(SimilarityMetric, i),
			IIdx:      i,
			Title:     m.Title,
			Metric:    SimilarityMetric,
			K:         k,
			Neighbors: neighbors,
			UpdatedAt: now,
		})
	}

	written, err := s.sims.ReplaceAll(ctx, docs, 500)
	if err != nil {
		return nil, err
	}

	elapsed := time.Since(start)
	logging.Info().Int("written", written).Int("k", k).Dur("took", elapsed).Msg("[admin] similarities exported")

	return &models.SimilarityExport{
		Metric:   SimilarityMetric,
		K:        k,
		Written:  written,
		Elapsed:  elapsed.String(),
		Finished: time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// GetStoredNeighbors reads back an exported neighbour list.
func (s *AdminMaintenanceService) GetStoredNeighbors(ctx context.Context, iIdx, k int) ([]models.Neighbor, error) {
	if s.sims == nil {
		return nil, ErrStoreDisabled
	}
	if k <= 0 {
		k = 20
	}
	return s.sims.GetNeighbors(ctx, SimilarityMetric, iIdx, k)
}
