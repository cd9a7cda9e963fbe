// Package catalog loads the movie table and derives the text each movie is
// compared on.
package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"movierec/internal/models"
)

// Required header names. Column order in the file does not matter.
const (
	ColTitle    = "title"
	ColGenres   = "genres"
	ColKeywords = "keywords"
	ColTagline  = "tagline"
	ColCast     = "cast"
	ColDirector = "director"
	colID       = "id"
)

var RequiredColumns = []string{ColTitle, ColGenres, ColKeywords, ColTagline, ColCast, ColDirector}

var (
	ErrMissingColumn = errors.New("required column missing")
	ErrNoHeader      = errors.New("no header row")
)

// LoadError is returned for any failure to produce a catalog. It is fatal for
// the process.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("catalog load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// LoadCSV reads the catalog file at path.
func LoadCSV(path string) ([]models.Movie, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close()

	movies, err := ReadCSV(f)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return movies, nil
}

// ReadCSV parses a catalog with a header row. Empty cells, and cells missing
// from short rows, become "".
func ReadCSV(r io.Reader) ([]models.Movie, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := cols[name]; !dup {
			cols[name] = i
		}
	}
	for _, c := range RequiredColumns {
		if _, ok := cols[c]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, c)
		}
	}

	cell := func(rec []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return rec[i]
	}

	var movies []models.Movie
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row %d: %w", line, err)
		}

		m := models.Movie{
			Index:    len(movies),
			Title:    cell(rec, ColTitle),
			Genres:   cell(rec, ColGenres),
			Keywords: cell(rec, ColKeywords),
			Tagline:  cell(rec, ColTagline),
			Cast:     cell(rec, ColCast),
			Director: cell(rec, ColDirector),
		}
		if id, err := strconv.Atoi(strings.TrimSpace(cell(rec, colID))); err == nil {
			m.MovieID = id
		}
		movies = append(movies, m)
	}
	return movies, nil
}

// Reindex assigns Index by slice position, for catalogs that come from a store
// rather than a file.
func Reindex(movies []models.Movie) {
	for i := range movies {
		movies[i].Index = i
	}
}
