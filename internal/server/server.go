package server

import (
	"fmt"
	"net/http"
	"time"

	"greenshop/internal/assistant"
	"greenshop/internal/config"
	"greenshop/internal/events"
	"greenshop/internal/kv"
	custommiddleware "greenshop/internal/middleware"
	"greenshop/internal/repository"
	"greenshop/internal/service"
	"greenshop/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config    *config.Config
	logger    *zap.Logger
	publisher events.Publisher
}

// NewServer wires stores, services and handlers onto a chi router.
// redisClient is optional; without it the login rate limiter and the
// cross-process cart broadcast are disabled.
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	store kv.Store,
	redisClient *redis.Client,
	publisher events.Publisher,
) *Server {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(custommiddleware.CORSMiddleware(nil, cfg.Server.Env != "production"))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Initialize repositories
	catalogRepo := repository.NewCatalogRepository(store)
	cartRepo := repository.NewCartRepository(store)
	orderRepo := repository.NewOrderRepository(store)

	if redisClient != nil {
		broadcaster := events.NewCartBroadcaster(redisClient, logger)
		cartRepo.Subscribe(broadcaster.Listener())
	}

	// Initialize services
	authService := service.NewAuthService(
		store,
		cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.TokenExpiry)*time.Minute,
		cfg.Auth.DefaultPassword,
	)
	orderService := service.NewOrderService(orderRepo, cartRepo, publisher, logger)
	generator := assistant.NewGeminiClient(cfg.Gemini.APIKey, cfg.Gemini.Model, logger)

	// Initialize handlers
	catalogHandler := transport.NewCatalogHandler(catalogRepo, logger)
	cartHandler := transport.NewCartHandler(cartRepo, catalogRepo, logger)
	orderHandler := transport.NewOrderHandler(orderService, logger)
	authHandler := transport.NewAuthHandler(authService, logger)
	assistantHandler := transport.NewAssistantHandler(generator, logger)

	// Admin routes require a valid token with the admin role
	authMiddleware := custommiddleware.AuthMiddleware(cfg.Auth.JWTSecret, logger)
	requireAdmin := custommiddleware.RequireAdmin(logger)
	adminOnly := func(next http.Handler) http.Handler {
		return authMiddleware(requireAdmin(next))
	}

	var loginRateLimit func(http.Handler) http.Handler
	if redisClient != nil {
		loginRateLimit = custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
			RequestsPerWindow: 10,
			Window:            time.Minute,
			KeyPrefix:         "greenshop:ratelimit:login",
		}, logger)
	}

	// Register routes
	catalogHandler.RegisterRoutes(router, adminOnly)
	cartHandler.RegisterRoutes(router)
	orderHandler.RegisterRoutes(router, adminOnly)
	authHandler.RegisterRoutes(router, adminOnly, loginRateLimit)
	assistantHandler.RegisterRoutes(router, adminOnly)

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config:    cfg,
		logger:    logger,
		publisher: publisher,
	}

	return server
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			s.logger.Error("Failed to close event publisher", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
