package handler

import (
	"net/http"
	"time"

	"movierec/internal/logging"
	"movierec/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

// RouterDeps carries everything NewRouter wires into routes.
type RouterDeps struct {
	Recommend *service.RecommendService
	Movies    *service.MovieService
	Admin     *service.AdminMaintenanceService
	Auth      *service.AuthService

	JWTSecret string
	// requests per minute per IP on query routes, 0 disables the limit
	RateLimitRPM int
	CORSOrigins  []string
}

func NewRouter(d RouterDeps) http.Handler {
	pageH := NewPageHandler(d.Recommend)
	recH := NewRecommendHandler(d.Recommend)
	movieH := NewMovieHandler(d.Movies)
	adminMaintH := NewAdminMaintenanceHandler(d.Admin, d.Recommend)
	authH := NewAuthHandler(d.Auth)

	origins := d.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	// =============
	// Public routes
	// =============
	r.Get("/health", Health)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)
	r.Post("/auth/login", authH.Login)

	r.Group(func(r chi.Router) {
		if d.RateLimitRPM > 0 {
			r.Use(httprate.LimitByIP(d.RateLimitRPM, time.Minute))
		}

		r.Get("/", pageH.Index)
		r.Get("/recommendations", recH.GetRecommendations)
		r.Get("/ws/recommendations", recH.GetRecommendationsWS)

		r.Get("/movies/search", movieH.Search)
		r.Get("/movies/{idx}", movieH.GetMovie)
		r.Get("/movies/{idx}/similar", movieH.Similar)
	})

	// ===========================
	// Admin routes (JWT, role=admin)
	// ===========================
	if d.JWTSecret == "" {
		logging.Warn().Msg("JWT_SECRET not set, admin routes disabled")
		return r
	}
	r.Group(func(r chi.Router) {
		r.Use(JWTAuth(d.JWTSecret))
		r.Use(AdminOnly())

		MountAdminMaintenanceRoutes(r, adminMaintH)
	})

	return r
}
