package models

import "time"

type RecItem struct {
	Index int     `bson:"iIdx"  json:"index"`
	Title string  `bson:"title" json:"title"`
	Score float64 `bson:"score" json:"score"`
}

// RecResult is the answer to one title query.
type RecResult struct {
	Query        string    `bson:"query"        json:"query"`
	Match        string    `bson:"match"        json:"match"`
	MatchIndex   int       `bson:"matchIndex"   json:"matchIndex"`
	MatchRatio   float64   `bson:"matchRatio"   json:"matchRatio"`
	Alternatives []string  `bson:"alternatives" json:"alternatives"`
	Items        []RecItem `bson:"items"        json:"items"`
}

// TitleCandidate is a fuzzy-match hit for a query.
type TitleCandidate struct {
	Index int     `json:"index"`
	Title string  `json:"title"`
	Ratio float64 `json:"ratio"`
}

// QueryLog is the history record stored per answered query.
type QueryLog struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	Query     string    `bson:"query"         json:"query"`
	K         int       `bson:"k"             json:"k"`
	Found     bool      `bson:"found"         json:"found"`
	Match     string    `bson:"match"         json:"match,omitempty"`
	Items     []RecItem `bson:"items"         json:"items,omitempty"`
	CreatedAt time.Time `bson:"createdAt"     json:"createdAt"`
}
