package models

type Neighbor struct {
	IIdx  int     `json:"iIdx" bson:"iIdx"`
	Title string  `json:"title" bson:"title"`
	Sim   float64 `json:"sim" bson:"sim"`
}

type SimilarityDoc struct {
	ID        string     `json:"_id" bson:"_id"`
	IIdx      int        `json:"iIdx" bson:"iIdx"`
	Title     string     `json:"title" bson:"title"`
	Metric    string     `json:"metric" bson:"metric"`
	K         int        `json:"k" bson:"k"`
	Neighbors []Neighbor `json:"neighbors" bson:"neighbors"`
	UpdatedAt string     `json:"updatedAt" bson:"updatedAt"`
}

// SimilarityExport reports an export of top-k neighbours to the store.
type SimilarityExport struct {
	Metric   string `json:"metric"`
	K        int    `json:"k"`
	Written  int    `json:"written"`
	Elapsed  string `json:"elapsed"`
	Finished string `json:"finished"`
}
