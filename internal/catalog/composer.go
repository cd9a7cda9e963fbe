package catalog

import "movierec/internal/models"

// Compose joins the descriptive fields of m with single spaces in a fixed
// order. Inner whitespace is kept as is.
func Compose(m models.Movie) string {
	return m.Genres + " " + m.Keywords + " " + m.Tagline + " " + m.Cast + " " + m.Director
}

// ComposeAll returns one composite text per movie, in catalog order.
func ComposeAll(movies []models.Movie) []string {
	out := make([]string, len(movies))
	for i, m := range movies {
		out[i] = Compose(m)
	}
	return out
}
