package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"

	"movierec/internal/cache"
	"movierec/internal/cluster"
	"movierec/internal/config"
	"movierec/internal/db"
	"movierec/internal/logging"
	"movierec/internal/repository"
	"movierec/internal/service"
)

func main() {
	cfg := config.Load()
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Output: os.Stdout})
	if err := cfg.Validate(); err != nil {
		logging.Fatal().Err(err).Msg("[node] bad configuration")
	}

	db.InitMongo(cfg)
	cache.InitRedis(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	idx, err := service.LoadIndex(ctx, cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("[node] cannot build recommendation index")
	}

	var history *repository.RecommendationRepository
	if db.DB() != nil {
		history = repository.NewRecommendationRepository()
	}

	ln, err := net.Listen("tcp", cfg.MLNodeAddr)
	if err != nil {
		logging.Fatal().Err(err).Str("addr", cfg.MLNodeAddr).Msg("[node] listen failed")
	}
	logging.Info().Str("node", cfg.NodeID).Str("addr", ln.Addr().String()).Msg("[node] listening")

	node := &cluster.Node{
		ID:  cfg.NodeID,
		Svc: service.NewRecommendService(idx, history, cfg.CacheTTL),
	}
	if err := node.Serve(ctx, ln); err != nil {
		logging.Error().Err(err).Msg("[node] serve")
	}

	_ = cache.Close()
	_ = db.Close(context.Background())
	logging.Info().Str("node", cfg.NodeID).Msg("[node] stopped")
}
