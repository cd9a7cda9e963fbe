package repository

import (
	"context"

	"movierec/internal/db"
	"movierec/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MovieRepository struct {
	col *mongo.Collection
}

func NewMovieRepository() *MovieRepository {
	return &MovieRepository{col: db.DB().Collection("movies")}
}

// All returns the whole catalog ordered by iIdx, then _id for rows without
// one, so the order is stable across restarts.
func (r *MovieRepository) All(ctx context.Context) ([]models.Movie, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "iIdx", Value: 1}, {Key: "_id", Value: 1}}).
		SetProjection(bson.M{
			"iIdx":     1,
			"movieId":  1,
			"title":    1,
			"genres":   1,
			"keywords": 1,
			"tagline":  1,
			"cast":     1,
			"director": 1,
		})

	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Movie
	for cur.Next(ctx) {
		var m models.Movie
		if err := cur.Decode(&m); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, cur.Err()
}
