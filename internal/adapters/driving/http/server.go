package http

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/custodia-labs/dri-core/internal/core/ports/driven"
	"github.com/custodia-labs/dri-core/internal/core/ports/driving"
)

// Pinger is a simple health check interface
type Pinger interface {
	Ping(ctx context.Context) error
}

// ChatStatus reports the currently configured completion provider.
// runtime.Services satisfies it.
type ChatStatus interface {
	ChatCompleter() driven.ChatCompleter
}

// Services groups the driving ports the API exposes
type Services struct {
	Auth      driving.AuthService
	User      driving.UserService
	Company   driving.CompanyService
	Indicator driving.IndicatorService
	Chat      driving.ChatService
	Explain   driving.ExplainService
	Feedback  driving.FeedbackService
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	router     *http.ServeMux
	version    string

	// Services
	authService      driving.AuthService
	userService      driving.UserService
	companyService   driving.CompanyService
	indicatorService driving.IndicatorService
	chatService      driving.ChatService
	explainService   driving.ExplainService
	feedbackService  driving.FeedbackService

	// Infrastructure
	chatStatus  ChatStatus // can be nil
	db          Pinger     // PostgreSQL health check
	redisClient Pinger     // Redis health check (optional)
}

// Config holds server configuration
type Config struct {
	Host        string
	Port        int
	Version     string
	CORSOrigins []string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Host:        "0.0.0.0",
		Port:        8080,
		Version:     "dev",
		CORSOrigins: []string{"*"},
	}
}

// NewServer creates a new HTTP server
func NewServer(
	cfg Config,
	svc Services,
	chatStatus ChatStatus, // can be nil
	db Pinger,
	redisClient Pinger, // can be nil
) *Server {
	s := &Server{
		router:           http.NewServeMux(),
		version:          cfg.Version,
		authService:      svc.Auth,
		userService:      svc.User,
		companyService:   svc.Company,
		indicatorService: svc.Indicator,
		chatService:      svc.Chat,
		explainService:   svc.Explain,
		feedbackService:  svc.Feedback,
		chatStatus:       chatStatus,
		db:               db,
		redisClient:      redisClient,
	}

	s.setupRoutes()

	handler := NewRecoveryMiddleware().Handler(
		NewLoggingMiddleware().Handler(
			NewCORSMiddleware(cfg.CORSOrigins).Handler(s.router)))

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler returns the fully wrapped handler, used by tests
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	// Create middleware
	authMiddleware := NewAuthMiddleware(s.authService)
	admin := func(h http.HandlerFunc) http.Handler {
		return authMiddleware.Authenticate(authMiddleware.RequireAdmin(h))
	}

	// Health endpoints (no auth)
	s.router.HandleFunc("GET /api/health", s.handleHealth)
	s.router.HandleFunc("GET /api/version", s.handleVersion)
	s.router.HandleFunc("GET /swagger/doc.json", s.handleSwaggerDoc)

	// Auth endpoints (public)
	s.router.HandleFunc("POST /api/auth/login", s.handleLogin)
	s.router.HandleFunc("POST /api/auth/refresh", s.handleRefresh)
	s.router.Handle("POST /api/auth/logout",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleLogout)))

	// Catalogue and scores (public reads)
	s.router.HandleFunc("GET /api/indicators", s.handleListIndicators)
	s.router.HandleFunc("GET /api/indicators/{name}", s.handleGetIndicator)
	s.router.HandleFunc("GET /api/companies", s.handleListCompanies)
	s.router.HandleFunc("GET /api/companies/{id}", s.handleGetCompany)
	s.router.HandleFunc("GET /api/companies/{id}/scores", s.handleGetCompanyScores)
	s.router.HandleFunc("GET /api/leaderboard", s.handleLeaderboard)
	s.router.HandleFunc("POST /api/scores/preview", s.handlePreviewScores)
	s.router.HandleFunc("GET /api/badge/{id}", s.handleBadge)

	// Company mutations (admin-only)
	s.router.Handle("POST /api/companies", admin(s.handleCreateCompany))
	s.router.Handle("PUT /api/companies/{id}", admin(s.handleUpdateCompany))
	s.router.Handle("DELETE /api/companies/{id}", admin(s.handleDeleteCompany))
	s.router.Handle("POST /api/leaderboard/rebuild", admin(s.handleRebuildLeaderboard))

	// Assistant endpoints (public)
	s.router.HandleFunc("POST /api/llm/chat", s.handleChat)
	s.router.HandleFunc("POST /api/llm-explain", s.handleExplain)

	// Feedback: anyone submits, staff reads
	s.router.HandleFunc("POST /api/feedback", s.handleSubmitFeedback)
	s.router.Handle("GET /api/feedback",
		authMiddleware.Authenticate(
			authMiddleware.RequireFeedbackReader(http.HandlerFunc(s.handleListFeedback))))

	// Staff management (admin-only)
	s.router.Handle("GET /api/users", admin(s.handleListUsers))
	s.router.Handle("POST /api/users", admin(s.handleCreateUser))
	s.router.Handle("DELETE /api/users/{id}", admin(s.handleDeleteUser))
}

// Start starts the HTTP server and blocks until SIGINT/SIGTERM or ctx is done,
// then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting server on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Println("Server stopped")
	return nil
}

// Stop stops the server
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
