package cluster

import "movierec/internal/models"

// QueryTask is one title query sent to a query node, one JSON object per line.
type QueryTask struct {
	Query   string `json:"query"`
	K       int    `json:"k"`
	Refresh bool   `json:"refresh,omitempty"`
}

// Outcomes reported by a node alongside the result.
const (
	StatusOK       = "ok"
	StatusNotFound = "not_found"
	StatusEmpty    = "empty"
	StatusError    = "error"
)

// QueryResponse is the node's answer. Result is set only when Status is ok.
type QueryResponse struct {
	NodeID string            `json:"nodeId"`
	Status string            `json:"status"`
	Result *models.RecResult `json:"result,omitempty"`
	Error  string            `json:"error,omitempty"`
	TookMS int64             `json:"tookMs"`
}
