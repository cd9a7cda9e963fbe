package repository

import "testing"

func TestDocID(t *testing.T) {
	if got := DocID("tfidf-cosine", 42); got != "tfidf-cosine:42" {
		t.Errorf("DocID = %q", got)
	}
}
