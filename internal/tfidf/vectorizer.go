// Package tfidf turns a corpus of short documents into L2-normalised TF-IDF
// vectors over a shared, frozen vocabulary.
//
// Tokens are lowercased runs of letters, digits and underscores at least two
// runes long. Weights are raw term counts times a smoothed idf:
//
//	idf(t) = ln((1 + n) / (1 + df(t))) + 1
package tfidf

import (
	"errors"
	"math"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	ErrEmptyCorpus     = errors.New("tfidf: empty corpus")
	ErrEmptyVocabulary = errors.New("tfidf: empty vocabulary, documents contain no tokens")
)

// Term is one non-zero dimension of a Vector.
type Term struct {
	ID     int
	Weight float64
}

// Vector is a sparse row sorted by term id. A nil Vector is the zero vector.
type Vector []Term

// Norm returns the euclidean length of v.
func (v Vector) Norm() float64 {
	var s float64
	for _, t := range v {
		s += t.Weight * t.Weight
	}
	return math.Sqrt(s)
}

// Dot is the inner product of two id-sorted vectors.
func Dot(a, b Vector) float64 {
	var s float64
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i].ID == b[j].ID:
			s += a[i].Weight * b[j].Weight
			i++
			j++
		case a[i].ID < b[j].ID:
			i++
		default:
			j++
		}
	}
	return s
}

// Dense expands v to a slice of length dim.
func (v Vector) Dense(dim int) []float64 {
	out := make([]float64, dim)
	for _, t := range v {
		out[t.ID] = t.Weight
	}
	return out
}

// Model is the fitted vocabulary. It is never extended after Fit.
type Model struct {
	terms []string
	ids   map[string]int
	idf   []float64
	docs  int
}

// Tokenize applies the tokenizer used by Fit.
func Tokenize(doc string) []string {
	fields := strings.FieldsFunc(strings.ToLower(doc), func(r rune) bool {
		return !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_')
	})
	out := fields[:0]
	for _, f := range fields {
		if utf8.RuneCountInString(f) >= 2 {
			out = append(out, f)
		}
	}
	return out
}

// Fit builds the vocabulary from docs and returns one vector per document, in
// input order.
func Fit(docs []string) (*Model, []Vector, error) {
	if len(docs) == 0 {
		return nil, nil, ErrEmptyCorpus
	}

	tokenized := make([][]string, len(docs))
	df := make(map[string]int)
	for i, d := range docs {
		toks := Tokenize(d)
		tokenized[i] = toks
		seen := make(map[string]bool, len(toks))
		for _, t := range toks {
			if !seen[t] {
				df[t]++
				seen[t] = true
			}
		}
	}
	if len(df) == 0 {
		return nil, nil, ErrEmptyVocabulary
	}

	terms := make([]string, 0, len(df))
	for t := range df {
		terms = append(terms, t)
	}
	sort.Strings(terms)

	m := &Model{
		terms: terms,
		ids:   make(map[string]int, len(terms)),
		idf:   make([]float64, len(terms)),
		docs:  len(docs),
	}
	n := float64(len(docs))
	for id, t := range terms {
		m.ids[t] = id
		m.idf[id] = math.Log((1+n)/(1+float64(df[t]))) + 1
	}

	vectors := make([]Vector, len(docs))
	for i, toks := range tokenized {
		vectors[i] = m.weigh(toks)
	}
	return m, vectors, nil
}

// Transform vectorises a document against the frozen vocabulary; unknown
// tokens are dropped.
func (m *Model) Transform(doc string) Vector {
	return m.weigh(Tokenize(doc))
}

func (m *Model) weigh(tokens []string) Vector {
	counts := make(map[int]int)
	for _, t := range tokens {
		if id, ok := m.ids[t]; ok {
			counts[id]++
		}
	}
	if len(counts) == 0 {
		return nil
	}

	v := make(Vector, 0, len(counts))
	for id, c := range counts {
		v = append(v, Term{ID: id, Weight: float64(c) * m.idf[id]})
	}
	sort.Slice(v, func(i, j int) bool { return v[i].ID < v[j].ID })

	norm := v.Norm()
	for i := range v {
		v[i].Weight /= norm
	}
	return v
}

// Size is the vocabulary size, the dense dimension of every vector.
func (m *Model) Size() int { return len(m.terms) }

// Docs is the number of documents the model was fitted on.
func (m *Model) Docs() int { return m.docs }

// Term returns the token for a term id.
func (m *Model) Term(id int) string { return m.terms[id] }

// ID looks up a token's term id.
func (m *Model) ID(token string) (int, bool) {
	id, ok := m.ids[token]
	return id, ok
}

// IDF returns the inverse document frequency of a term id.
func (m *Model) IDF(id int) float64 { return m.idf[id] }
