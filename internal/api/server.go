package api

import (
	"context"
	"fmt"
	"net/http"

	"garage/internal/auth"
	"garage/internal/config"
	"garage/internal/domain"
	"garage/internal/export"
	"garage/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Server exposes the REST API.
type Server struct {
	cfg    config.ServerConfig
	tokens *auth.TokenManager
	logger *zerolog.Logger

	authService      *service.AuthService
	carService       *service.CarService
	rentalService    *service.RentalService
	reviewService    *service.ReviewService
	userService      *service.UserService
	referenceService *service.ReferenceService

	loginLimiter domain.RateLimiter
	exporter     *export.Exporter

	server *http.Server
}

type Services struct {
	Auth      *service.AuthService
	Cars      *service.CarService
	Rentals   *service.RentalService
	Reviews   *service.ReviewService
	Users     *service.UserService
	Reference *service.ReferenceService
}

func NewServer(
	cfg *config.Config,
	tokens *auth.TokenManager,
	services Services,
	loginLimiter domain.RateLimiter,
	exporter *export.Exporter,
	logger *zerolog.Logger,
) *Server {
	serverLogger := logger.With().Str("component", "api").Logger()

	s := &Server{
		cfg:              cfg.Server,
		tokens:           tokens,
		logger:           &serverLogger,
		authService:      services.Auth,
		carService:       services.Cars,
		rentalService:    services.Rentals,
		reviewService:    services.Reviews,
		userService:      services.Users,
		referenceService: services.Reference,
		loginLimiter:     loginLimiter,
		exporter:         exporter,
	}

	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           s.routes(cfg.RateLimit),
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
	}

	return s
}

func (s *Server) routes(rl config.RateLimitConfig) http.Handler {
	r := chi.NewRouter()

	limiter := newPerClientLimiter(rl.RPS, rl.Burst)
	r.Use(requestIDMiddleware)
	r.Use(accessLogMiddleware(s.logger))
	r.Use(limiter.middleware)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/signup", s.handleSignup)
		r.Post("/login", s.handleLogin)

		// Публичное чтение каталога и справочников.
		r.Get("/body-types", s.handleListBodyTypes)
		r.Get("/classes", s.handleListClasses)
		r.Get("/fuel-types", s.handleListFuelTypes)
		r.Get("/statuses", s.handleListStatuses)
		r.Get("/cars", s.handleListCars)
		r.Get("/cars/{id}", s.handleGetCar)
		r.Get("/cars/{id}/reviews", s.handleListCarReviews)

		// Всё остальное только с токеном.
		r.Group(func(r chi.Router) {
			r.Use(s.authenticate)

			r.Get("/verify-token", s.handleVerifyToken)

			r.Post("/cars/{id}/check-availability", s.handleCheckAvailability)
			r.Post("/cars/{id}/reviews", s.handleCreateReview)
			r.Delete("/reviews/{id}", s.handleDeleteReview)

			r.Post("/rentals", s.handleCreateRental)
			r.Get("/rentals", s.handleListRentals)
			r.Put("/rentals/{id}", s.handleUpdateRental)
			r.Delete("/rentals/{id}", s.handleDeleteRental)

			r.Group(func(r chi.Router) {
				r.Use(s.requireAdmin)

				r.Post("/cars", s.handleCreateCar)
				r.Put("/cars/{id}", s.handleUpdateCar)
				r.Delete("/cars/{id}", s.handleDeleteCar)

				r.Get("/rentals/export", s.handleExportRentals)

				r.Get("/users", s.handleListUsers)
				r.Get("/users/{id}", s.handleGetUser)
				r.Put("/users/{id}", s.handleUpdateUser)
				r.Delete("/users/{id}", s.handleDeleteUser)
			})
		})
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) Start() error {
	s.logger.Info().Str("addr", s.server.Addr).Msg("HTTP API listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Handler отдаёт роутер для httptest.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}
