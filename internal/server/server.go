package server

import (
	"fmt"
	"net/http"
	"time"

	"storefront/internal/config"
	"storefront/internal/database"
	custommiddleware "storefront/internal/middleware"
	"storefront/internal/repository"
	"storefront/internal/service"
	"storefront/internal/storage"
	"storefront/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config      *config.Config
	logger      *zap.Logger
	dbService   *database.Service
	redisClient *redis.Client
}

// NewServer wires repositories, services, handlers and middleware into an
// HTTP server. redisClient and objectStore may be nil; the features that
// depend on them are then left out of the stack.
func NewServer(cfg *config.Config, logger *zap.Logger, dbService *database.Service, redisClient *redis.Client, objectStore storage.ObjectStore) *Server {
	router := chi.NewRouter()

	// Basic middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(custommiddleware.CORSMiddleware(nil, cfg.Server.Env != "production"))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.LoggingMiddleware(logger))

	if cfg.Telemetry.Enabled && redisClient != nil {
		router.Use(custommiddleware.TelemetryMiddleware(redisClient, cfg.Telemetry, logger))
	}

	if cfg.RateLimit.Enabled && redisClient != nil {
		router.Use(custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
			RequestsPerWindow: cfg.RateLimit.RequestsPerWindow,
			Window:            time.Duration(cfg.RateLimit.WindowSeconds) * time.Second,
			KeyPrefix:         "rate_limit",
		}, logger))
	}

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		custommiddleware.RespondWithJSON(w, http.StatusOK, dbService.Health(r.Context()))
	})

	// Initialize repositories
	db := dbService.DB()
	productRepo := repository.NewProductRepository(db)
	inventoryRepo := repository.NewInventoryRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	// Initialize services
	presignExpiry := time.Duration(cfg.Storage.PresignExpiry) * time.Second
	catalogService := service.NewCatalogService(productRepo, objectStore, presignExpiry)
	inventoryService := service.NewInventoryService(inventoryRepo)
	orderService := service.NewOrderService(orderRepo)

	// Initialize handlers
	productHandler := transport.NewProductHandler(catalogService, logger)
	inventoryHandler := transport.NewInventoryHandler(inventoryService, logger)
	orderHandler := transport.NewOrderHandler(orderService, logger)

	// Catalog mutations go through auth only when it is configured
	authMiddleware := passthroughMiddleware
	if cfg.Auth.Enabled {
		authMiddleware = custommiddleware.AuthMiddleware(cfg.Auth.Secret, logger)
	}

	// Register routes
	productHandler.RegisterRoutes(router, authMiddleware)
	inventoryHandler.RegisterRoutes(router)
	orderHandler.RegisterRoutes(router)

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config:      cfg,
		logger:      logger,
		dbService:   dbService,
		redisClient: redisClient,
	}

	return server
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.dbService != nil {
		if err := s.dbService.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			s.logger.Error("Failed to close redis client", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}

func passthroughMiddleware(next http.Handler) http.Handler {
	return next
}
