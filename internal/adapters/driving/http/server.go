package http

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/custodia-labs/legislativas/internal/core/ports/driving"
)

// Pinger is a simple health check interface
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	router     *http.ServeMux
	handler    http.Handler
	version    string
	logger     *slog.Logger

	// Services
	answerService driving.AnswerService
	adminService  driving.AdminService
	authService   driving.AuthService // nil disables the admin routes

	// Infrastructure
	db          Pinger // PostgreSQL health check (optional)
	redisClient Pinger // Redis health check (optional)
}

// Config holds server configuration
type Config struct {
	Host        string
	Port        int
	Version     string
	CORSOrigins []string
	Logger      *slog.Logger
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Host:        "0.0.0.0",
		Port:        3000,
		Version:     "dev",
		CORSOrigins: []string{"*"},
	}
}

// NewServer creates a new HTTP server
func NewServer(
	cfg Config,
	answerService driving.AnswerService,
	adminService driving.AdminService,
	authService driving.AuthService, // can be nil
	db Pinger, // can be nil
	redisClient Pinger, // can be nil
) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		router:        http.NewServeMux(),
		version:       cfg.Version,
		logger:        logger,
		answerService: answerService,
		adminService:  adminService,
		authService:   authService,
		db:            db,
		redisClient:   redisClient,
	}

	s.setupRoutes()

	// Outermost first: every request gets an id before it is logged
	s.handler = NewRequestIDMiddleware().Handler(
		NewLoggingMiddleware(logger).Handler(
			NewRecoveryMiddleware(logger, "internal server error").Handler(
				NewCORSMiddleware(cfg.CORSOrigins).Handler(s.router))))

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      s.handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // covers a full fetch plus LLM round trip
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	// Health endpoints
	s.router.HandleFunc("GET /health", s.handleHealth)
	s.router.HandleFunc("GET /ready", s.handleReady)
	s.router.HandleFunc("GET /version", s.handleVersion)
	s.router.HandleFunc("GET /swagger/doc.json", s.handleSwaggerDoc)

	// Question answering (public)
	s.router.Handle("POST /api/generate-answer",
		NewRecoveryMiddleware(s.logger, msgAnswerFailed).Handler(http.HandlerFunc(s.handleGenerateAnswer)))
	s.router.HandleFunc("GET /api/v1/parties", s.handleListParties)

	if s.authService == nil || s.adminService == nil {
		return
	}

	authMiddleware := NewAuthMiddleware(s.authService)

	// Admin endpoints (admin-only)
	s.router.Handle("DELETE /api/v1/admin/cache",
		authMiddleware.Authenticate(
			authMiddleware.RequireAdmin(http.HandlerFunc(s.handlePurgeCache))))
	s.router.Handle("GET /api/v1/admin/queries",
		authMiddleware.Authenticate(
			authMiddleware.RequireAdmin(http.HandlerFunc(s.handleRecentQueries))))
}

// Handler returns the fully wrapped handler, for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start starts the HTTP server with graceful shutdown
func (s *Server) Start() error {
	// Channel to listen for OS signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// Start server in goroutine
	go func() {
		log.Printf("Starting server on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for shutdown signal
	<-stop
	log.Println("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Attempt graceful shutdown
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Println("Server stopped")
	return nil
}

// Stop stops the server
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
