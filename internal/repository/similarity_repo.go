package repository

import (
	"context"
	"fmt"

	"movierec/internal/db"
	"movierec/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SimilarityRepository struct {
	col *mongo.Collection
}

func NewSimilarityRepository() *SimilarityRepository {
	return &SimilarityRepository{col: db.DB().Collection("similarities")}
}

// DocID is the _id used for a movie's neighbour list under a metric.
func DocID(metric string, iIdx int) string {
	return fmt.Sprintf("%s:%d", metric, iIdx)
}

// GetNeighbors returns the stored neighbours of a movie, truncated to k.
func (r *SimilarityRepository) GetNeighbors(ctx context.Context, metric string, iIdx, k int) ([]models.Neighbor, error) {
	var doc models.SimilarityDoc
	err := r.col.FindOne(ctx, bson.M{"_id": DocID(metric, iIdx)}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return []models.Neighbor{}, nil
	}
	if err != nil {
		return nil, err
	}

	neighbors := doc.Neighbors
	if len(neighbors) > k {
		neighbors = neighbors[:k]
	}
	return neighbors, nil
}

// ReplaceAll upserts docs in batches of batchSize.
func (r *SimilarityRepository) ReplaceAll(ctx context.Context, docs []models.SimilarityDoc, batchSize int) (int, error) {
	if batchSize <= 0 {
		batchSize = 500
	}

	written := 0
	for start := 0; start < len(docs); start += batchSize {
		end := start + batchSize
		if end > len(docs) {
			end = len(docs)
		}

		writes := make([]mongo.WriteModel, 0, end-start)
		for _, d := range docs[start:end] {
			writes = append(writes, mongo.NewReplaceOneModel().
				SetFilter(bson.M{"_id": d.ID}).
				SetReplacement(d).
				SetUpsert(true))
		}

		res, err := r.col.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false))
		if err != nil {
			return written, err
		}
		written += int(res.UpsertedCount + res.MatchedCount)
	}
	return written, nil
}
