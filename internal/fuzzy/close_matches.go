// Package fuzzy ranks candidate strings by sequence-matcher similarity to a
// word, the way "did you mean" lookups usually do.
package fuzzy

import (
	"sort"

	"github.com/pmezard/go-difflib/difflib"
)

const (
	DefaultN      = 3
	DefaultCutoff = 0.6
)

// Match is a candidate that passed the cutoff. Index is its position in the
// possibilities slice.
type Match struct {
	Index int
	Value string
	Ratio float64
}

func runes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

// Ratio is 2*M/T for the two strings compared rune by rune, where M is the
// number of matched runes and T the total rune count. 1.0 for identical
// strings, 0.0 for nothing in common.
func Ratio(a, b string) float64 {
	return difflib.NewMatcher(runes(a), runes(b)).Ratio()
}

// CloseMatches returns up to n possibilities whose ratio against word is at
// least cutoff, best first. Equal ratios are ordered by descending value, then
// by position.
func CloseMatches(word string, possibilities []string, n int, cutoff float64) []Match {
	if n <= 0 {
		return nil
	}

	m := difflib.NewMatcher(nil, runes(word))
	var hits []Match
	for i, p := range possibilities {
		m.SetSeq1(runes(p))
		if m.RealQuickRatio() < cutoff || m.QuickRatio() < cutoff {
			continue
		}
		if r := m.Ratio(); r >= cutoff {
			hits = append(hits, Match{Index: i, Value: p, Ratio: r})
		}
	}

	sort.Slice(hits, func(i, j int) bool {
		a, b := hits[i], hits[j]
		if a.Ratio != b.Ratio {
			return a.Ratio > b.Ratio
		}
		if a.Value != b.Value {
			return a.Value > b.Value
		}
		return a.Index < b.Index
	})
	if len(hits) > n {
		hits = hits[:n]
	}
	return hits
}
