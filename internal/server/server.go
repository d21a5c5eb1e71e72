package server

import (
	"fmt"
	"net/http"
	"time"

	"pc-catalog/internal/config"
	"pc-catalog/internal/database"
	custommiddleware "pc-catalog/internal/middleware"
	"pc-catalog/internal/repository"
	"pc-catalog/internal/service"
	"pc-catalog/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	db     database.Service
	redis  *redis.Client
}

// NewServer wires repositories, services and handlers onto a chi router.
// redisClient may be nil, in which case requests are not rate limited.
func NewServer(cfg *config.Config, logger *zap.Logger, db database.Service, redisClient *redis.Client) *Server {
	router := chi.NewRouter()

	router.Use(custommiddleware.DefaultMiddlewareStack()...)
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.CORSMiddleware(cfg.Server.AllowedOrigins, cfg.IsDevelopment()))

	if redisClient != nil {
		router.Use(custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
			RequestsPerWindow: cfg.RateLimit.Requests,
			Window:            cfg.RateLimit.Window,
			KeyPrefix:         "pc-catalog:ratelimit",
		}, logger))
	}

	router.NotFound(custommiddleware.NotFoundHandler)
	router.MethodNotAllowed(custommiddleware.MethodNotAllowedHandler)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		health := db.Health()
		status := http.StatusOK
		if health["status"] != "up" {
			status = http.StatusServiceUnavailable
		}
		custommiddleware.RespondWithJSON(w, status, health)
	})

	// Initialize repositories
	productRepo := repository.NewProductRepository(db.DB())
	componentRepo := repository.NewComponentRepository(db.DB())

	// Initialize services
	productService := service.NewProductService(productRepo, componentRepo)
	componentService := service.NewComponentService(componentRepo)

	// Initialize handlers
	productHandler := transport.NewProductHandler(productService, logger)
	componentHandler := transport.NewComponentHandler(componentService, logger)

	writeGuard := custommiddleware.WriteGuard(cfg.JWT.Secret, logger)
	if len(writeGuard) == 0 {
		logger.Warn("JWT_SECRET is not set, catalog writes are unauthenticated")
	}

	productHandler.RegisterRoutes(router, writeGuard...)
	componentHandler.RegisterRoutes(router, writeGuard...)

	return &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config: cfg,
		logger: logger,
		db:     db,
		redis:  redisClient,
	}
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close redis connection", zap.Error(err))
		}
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
