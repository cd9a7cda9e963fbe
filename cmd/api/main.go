package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "movierec/docs" // swagger docs

	"movierec/internal/cache"
	"movierec/internal/config"
	"movierec/internal/db"
	"movierec/internal/handler"
	"movierec/internal/logging"
	"movierec/internal/repository"
	"movierec/internal/service"
)

// @title Movie Recommender API
// @version 1.0
// @description Content-based movie recommendations (TF-IDF + cosine similarity) with fuzzy title matching.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Output: os.Stdout})
	if err := cfg.Validate(); err != nil {
		logging.Fatal().Err(err).Msg("[api] bad configuration")
	}

	// Mongo and Redis are optional
	db.InitMongo(cfg)
	cache.InitRedis(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ============================
	// Catalog and similarity index
	// ============================
	idx, err := service.LoadIndex(ctx, cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("[api] cannot build recommendation index")
	}

	// repos, nil when Mongo is off
	var (
		recRepo *repository.RecommendationRepository
		simRepo *repository.SimilarityRepository
	)
	if db.DB() != nil {
		recRepo = repository.NewRecommendationRepository()
		simRepo = repository.NewSimilarityRepository()
	}

	// services
	recSvc := service.NewRecommendService(idx, recRepo, cfg.CacheTTL)
	movieSvc := service.NewMovieService(idx)
	adminMaintSvc := service.NewAdminMaintenanceService(idx, cfg.CatalogSource, simRepo)
	authSvc := service.NewAuthService(cfg.AdminUser, cfg.AdminPasswordHash, cfg.JWTSecret, cfg.TokenTTL)
	if !authSvc.LoginEnabled() {
		logging.Info().Msg("[api] ADMIN_PASSWORD_HASH not set, /auth/login disabled")
	}

	r := handler.NewRouter(handler.RouterDeps{
		Recommend:    recSvc,
		Movies:       movieSvc,
		Admin:        adminMaintSvc,
		Auth:         authSvc,
		JWTSecret:    cfg.JWTSecret,
		RateLimitRPM: cfg.RateLimitRPM,
		CORSOrigins:  cfg.CORSOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logging.Info().Str("addr", srv.Addr).Msg("[api] HTTP listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("[api] server failed")
		}
	}()

	<-ctx.Done()
	logging.Info().Msg("[api] shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("[api] shutdown")
	}
	if err := cache.Close(); err != nil {
		logging.Warn().Err(err).Msg("[api] redis close")
	}
	if err := db.Close(shutdownCtx); err != nil {
		logging.Warn().Err(err).Msg("[api] mongo close")
	}
}
