package models

// Movie is one catalog row. Index is the row position and addresses the
// similarity matrix; MovieID is the dataset's own id when the source has one.
type Movie struct {
	Index    int    `json:"index" bson:"iIdx"`
	MovieID  int    `json:"movieId,omitempty" bson:"movieId,omitempty"`
	Title    string `json:"title" bson:"title"`
	Genres   string `json:"genres" bson:"genres"`
	Keywords string `json:"keywords" bson:"keywords"`
	Tagline  string `json:"tagline" bson:"tagline"`
	Cast     string `json:"cast" bson:"cast"`
	Director string `json:"director" bson:"director"`
}

// CatalogSummary describes the precomputed state served by the process.
type CatalogSummary struct {
	Source          string `json:"source"`
	Movies          int    `json:"movies"`
	VocabularySize  int    `json:"vocabularySize"`
	EmptyVectors    int    `json:"emptyVectors"`
	DuplicateTitles int    `json:"duplicateTitles"`
	BuiltAt         string `json:"builtAt"`
	Fingerprint     string `json:"fingerprint"`
}
