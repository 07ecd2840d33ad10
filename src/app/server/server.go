// Package server provides HTTP server initialization and lifecycle management.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"lightbnb/src/app/http/handler"
	"lightbnb/src/app/http/response"
	"lightbnb/src/app/middleware"
	"lightbnb/src/core/ports"
	"lightbnb/src/core/usecase"
	"lightbnb/src/infra/config"
)

// Deps are the adapters the server's services run on.
type Deps struct {
	Users        ports.UserRepository
	Reservations ports.ReservationRepository
	Properties   ports.PropertyRepository
	Hasher       ports.PasswordHasher
}

// Server wraps the HTTP server and its dependencies.
type Server struct {
	cfg    *config.Config
	log    *slog.Logger
	router *gin.Engine
	http   *http.Server

	users ports.UserRepository

	// Handlers
	healthHandler      *handler.HealthHandler
	userHandler        *handler.UserHandler
	reservationHandler *handler.ReservationHandler
	propertyHandler    *handler.PropertyHandler
}

// New creates a new Server with all dependencies wired up.
func New(cfg *config.Config, log *slog.Logger, deps Deps) *Server {
	// Set Gin mode based on log level
	if cfg.Log.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create router without default middleware
	router := gin.New()

	// Create services
	healthService := usecase.NewHealthService(log, map[string]ports.Repository{
		"database": deps.Users,
	})
	userService := usecase.NewUserService(deps.Users, deps.Hasher, log)
	reservationService := usecase.NewReservationService(deps.Reservations, log)
	propertyService := usecase.NewPropertyService(deps.Properties, log)

	s := &Server{
		cfg:                cfg,
		log:                log,
		router:             router,
		users:              deps.Users,
		healthHandler:      handler.NewHealthHandler(healthService),
		userHandler:        handler.NewUserHandler(userService),
		reservationHandler: handler.NewReservationHandler(reservationService),
		propertyHandler:    handler.NewPropertyHandler(propertyService),
	}

	s.setupMiddleware()
	s.setupRoutes()
	s.setupHTTPServer()

	return s
}

// setupMiddleware configures global middleware.
func (s *Server) setupMiddleware() {
	// Order matters: Recovery should be first to catch all panics
	s.router.Use(middleware.Recovery(s.log))
	s.router.Use(middleware.RequestID())
	s.router.Use(middleware.CORS())
	s.router.Use(middleware.Logging(s.log))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	// Health check endpoints (no auth required)
	s.router.GET("/health", s.healthHandler.Health)
	s.router.GET("/health/detailed", s.healthHandler.DetailedHealth)

	requireUser := middleware.RequireUser(s.users)

	v1 := s.router.Group("/v1")
	{
		// Users
		v1.POST("/users", s.userHandler.Register)
		v1.POST("/users/login", s.userHandler.Login)
		v1.GET("/users/me", requireUser, s.userHandler.Me)
		v1.GET("/users/:user_id", s.userHandler.Get)

		// Reservations
		v1.GET("/reservations", requireUser, s.reservationHandler.List)

		// Properties
		v1.GET("/properties", s.propertyHandler.Search)
		v1.GET("/properties/:property_id", s.propertyHandler.Get)
		v1.POST("/properties", requireUser, s.propertyHandler.Create)
	}

	s.router.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "The requested resource was not found", middleware.GetRequestID(c))
	})
}

// setupHTTPServer configures the underlying HTTP server.
func (s *Server) setupHTTPServer() {
	s.http = &http.Server{
		Addr:         s.cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}
}

// Run starts the HTTP server and blocks until ctx is cancelled or the
// process receives SIGINT/SIGTERM, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Channel to receive server errors
	errCh := make(chan error, 1)

	// Start server in goroutine
	go func() {
		s.log.Info("starting HTTP server",
			"addr", s.cfg.Server.Addr(),
		)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("server error: %w", err)
		}
	}()

	// Wait for shutdown signal or error
	select {
	case <-ctx.Done():
		s.log.Info("shutdown requested", "cause", context.Cause(ctx))
	case err := <-errCh:
		return err
	}

	// Graceful shutdown
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	s.log.Info("shutting down server", "timeout", s.cfg.Server.ShutdownTimeout)

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := s.http.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	s.log.Info("server stopped gracefully")
	return nil
}

// Router returns the Gin router for testing.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// WaitForReady waits until the server is ready to accept connections.
// Useful for integration tests.
func (s *Server) WaitForReady(timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		resp, err := http.Get(fmt.Sprintf("http://%s/health", s.cfg.Server.Addr()))
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		time.Sleep(10 * time.Millisecond)
	}
	return fmt.Errorf("server not ready after %v", timeout)
}

