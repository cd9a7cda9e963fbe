package db

import (
	"context"
	"time"

	"movierec/internal/config"
	"movierec/internal/logging"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var mongoClient *mongo.Client
var mongoDB *mongo.Database

// InitMongo connects when MONGO_URI is set. Without it DB() returns nil and
// the history, export and mongo catalog features stay off.
func InitMongo(cfg *config.Config) {
	if cfg.MongoURI == "" {
		logging.Info().Msg("[mongo] MONGO_URI not set, history and export disabled")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logging.Fatal().Err(err).Msg("[mongo] connect failed")
	}

	if err := client.Ping(ctx, nil); err != nil {
		logging.Fatal().Err(err).Msg("[mongo] ping failed")
	}

	mongoClient = client
	mongoDB = client.Database(cfg.MongoDB)
	logging.Info().Str("db", cfg.MongoDB).Msg("[mongo] connected")
}

func DB() *mongo.Database {
	return mongoDB
}

// Close disconnects the client, if any.
func Close(ctx context.Context) error {
	if mongoClient == nil {
		return nil
	}
	return mongoClient.Disconnect(ctx)
}
