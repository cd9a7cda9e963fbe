// Package recommend owns the precomputed, read-only state built at startup
// and answers title queries against it.
//
// An *Index is safe for concurrent use: nothing in it changes after Build.
package recommend

import (
	"encoding/hex"
	"errors"
	"fmt"
	"hash/fnv"
	"sort"
	"time"

	"movierec/internal/catalog"
	"movierec/internal/fuzzy"
	"movierec/internal/models"
	"movierec/internal/similarity"
	"movierec/internal/tfidf"
)

const (
	DefaultK = 10
	MaxK     = 50
)

var (
	ErrNoMatch    = errors.New("movie not found")
	ErrEmptyQuery = errors.New("empty query")
	ErrBadIndex   = errors.New("movie index out of range")
	ErrNoMatrix   = errors.New("nil similarity matrix")
)

// Options tune title matching.
type Options struct {
	Cutoff     float64
	Candidates int
	K          int
}

func (o Options) withDefaults() Options {
	if o.Cutoff <= 0 {
		o.Cutoff = fuzzy.DefaultCutoff
	}
	if o.Candidates <= 0 {
		o.Candidates = fuzzy.DefaultN
	}
	if o.K <= 0 {
		o.K = DefaultK
	}
	return o
}

type Index struct {
	movies  []models.Movie
	titles  []string
	firstOf map[string]int
	vocab   *tfidf.Model
	vectors []tfidf.Vector
	sims    *similarity.Matrix
	opts    Options
	builtAt time.Time

	fingerprint string
}

// Build runs compose, vectorize and similarity once over movies. Errors are
// startup failures.
func Build(movies []models.Movie, opts Options) (*Index, error) {
	texts := catalog.ComposeAll(movies)
	vocab, vectors, err := tfidf.Fit(texts)
	if err != nil {
		return nil, fmt.Errorf("vectorizing catalog: %w", err)
	}
	return newIndex(movies, vocab, vectors, similarity.Build(vectors), opts)
}

// NewWithMatrix builds an Index over a precomputed matrix, skipping
// vectorization.
func NewWithMatrix(movies []models.Movie, sims *similarity.Matrix, opts Options) (*Index, error) {
	return newIndex(movies, nil, nil, sims, opts)
}

func newIndex(movies []models.Movie, vocab *tfidf.Model, vectors []tfidf.Vector, sims *similarity.Matrix, opts Options) (*Index, error) {
	if sims == nil {
		return nil, ErrNoMatrix
	}
	if sims.Size() != len(movies) {
		return nil, fmt.Errorf("similarity matrix is %dx%d for %d movies", sims.Size(), sims.Size(), len(movies))
	}

	idx := &Index{
		movies:  make([]models.Movie, len(movies)),
		titles:  make([]string, len(movies)),
		firstOf: make(map[string]int, len(movies)),
		vocab:   vocab,
		vectors: vectors,
		sims:    sims,
		opts:    opts.withDefaults(),
		builtAt: time.Now().UTC(),

		fingerprint: fingerprint(movies),
	}
	copy(idx.movies, movies)
	for i, m := range idx.movies {
		idx.titles[i] = m.Title
		if _, seen := idx.firstOf[m.Title]; !seen {
			idx.firstOf[m.Title] = i
		}
	}
	return idx, nil
}

// fingerprint hashes titles and composite texts in row order.
func fingerprint(movies []models.Movie) string {
	h := fnv.New64a()
	for _, m := range movies {
		h.Write([]byte(m.Title))
		h.Write([]byte{0})
		h.Write([]byte(catalog.Compose(m)))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

func (x *Index) Len() int { return len(x.movies) }

// Fingerprint is a short hex digest of the catalog the index was built from.
func (x *Index) Fingerprint() string { return x.fingerprint }

// Movie returns the record at row i.
func (x *Index) Movie(i int) (models.Movie, error) {
	if i < 0 || i >= len(x.movies) {
		return models.Movie{}, fmt.Errorf("%w: %d", ErrBadIndex, i)
	}
	return x.movies[i], nil
}

// Titles returns a copy of the titles in catalog order.
func (x *Index) Titles() []string {
	out := make([]string, len(x.titles))
	copy(out, x.titles)
	return out
}

// Candidates lists titles that resemble query, best first.
func (x *Index) Candidates(query string, n int) []models.TitleCandidate {
	if n <= 0 {
		n = x.opts.Candidates
	}
	hits := fuzzy.CloseMatches(query, x.titles, n, x.opts.Cutoff)
	out := make([]models.TitleCandidate, len(hits))
	for i, h := range hits {
		out[i] = models.TitleCandidate{Index: h.Index, Title: h.Value, Ratio: h.Ratio}
	}
	return out
}

// Resolve fuzzy-matches query to a title and returns up to k movies most
// similar to it. k <= 0 uses the configured default; k is capped at MaxK.
func (x *Index) Resolve(query string, k int) (*models.RecResult, error) {
	if query == "" {
		return nil, ErrEmptyQuery
	}

	hits := fuzzy.CloseMatches(query, x.titles, x.opts.Candidates, x.opts.Cutoff)
	if len(hits) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoMatch, query)
	}
	best := hits[0]
	row := x.firstOf[best.Value]

	var alts []string
	for _, h := range hits[1:] {
		if h.Value != best.Value {
			alts = append(alts, h.Value)
		}
	}

	items, err := x.Similar(row, k)
	if err != nil {
		return nil, err
	}
	return &models.RecResult{
		Query:        query,
		Match:        best.Value,
		MatchIndex:   row,
		MatchRatio:   best.Ratio,
		Alternatives: alts,
		Items:        items,
	}, nil
}

// Similar ranks every other movie against row and returns the top k. Scores
// sort descending; equal scores keep catalog order. The row itself is always
// left out.
func (x *Index) Similar(row, k int) ([]models.RecItem, error) {
	if row < 0 || row >= len(x.movies) {
		return nil, fmt.Errorf("%w: %d", ErrBadIndex, row)
	}
	k = x.clampK(k)

	scores := x.sims.Row(row)
	order := make([]int, 0, len(scores))
	for i := range scores {
		if i != row {
			order = append(order, i)
		}
	}
	sort.SliceStable(order, func(a, b int) bool { return scores[order[a]] > scores[order[b]] })

	if len(order) > k {
		order = order[:k]
	}
	items := make([]models.RecItem, len(order))
	for n, i := range order {
		items[n] = models.RecItem{Index: i, Title: x.titles[i], Score: scores[i]}
	}
	return items, nil
}

func (x *Index) clampK(k int) int {
	if k <= 0 {
		k = x.opts.K
	}
	if k > MaxK {
		k = MaxK
	}
	return k
}

// Neighbors returns the top-k neighbours of every movie, in catalog order.
func (x *Index) Neighbors(k int) [][]models.RecItem {
	out := make([][]models.RecItem, len(x.movies))
	for i := range x.movies {
		out[i], _ = x.Similar(i, k)
	}
	return out
}

// Summary describes the index for operators.
func (x *Index) Summary(source string) models.CatalogSummary {
	s := models.CatalogSummary{
		Source:          source,
		Movies:          len(x.movies),
		DuplicateTitles: len(x.titles) - len(x.firstOf),
		BuiltAt:         x.builtAt.Format(time.RFC3339),
		Fingerprint:     x.fingerprint,
	}
	if x.vocab != nil {
		s.VocabularySize = x.vocab.Size()
	}
	for _, v := range x.vectors {
		if len(v) == 0 {
			s.EmptyVectors++
		}
	}
	return s
}
