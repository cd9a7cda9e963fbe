package service

import (
	"movierec/internal/models"
	"movierec/internal/recommend"
)

type MovieService struct {
	index *recommend.Index
}

func NewMovieService(idx *recommend.Index) *MovieService {
	return &MovieService{index: idx}
}

func (s *MovieService) GetMovie(idx int) (*models.Movie, error) {
	m, err := s.index.Movie(idx)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Similar skips title matching and ranks neighbours of a known row.
func (s *MovieService) Similar(idx, k int) ([]models.RecItem, error) {
	return s.index.Similar(idx, k)
}

// Search lists titles resembling q, best first.
func (s *MovieService) Search(q string, limit int) []models.TitleCandidate {
	if limit <= 0 || limit > recommend.MaxK {
		limit = 10
	}
	if q == "" {
		return []models.TitleCandidate{}
	}
	return s.index.Candidates(q, limit)
}
