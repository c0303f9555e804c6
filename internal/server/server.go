package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/osa911/uplink/internal/api/handlers"
	"github.com/osa911/uplink/internal/api/middleware"
	"github.com/osa911/uplink/internal/config"
	"github.com/osa911/uplink/internal/contact"
	"github.com/osa911/uplink/internal/logging"
	"github.com/osa911/uplink/internal/server/routes"
	"github.com/osa911/uplink/internal/service"
	"github.com/osa911/uplink/internal/tasks"

	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

// Server represents the HTTP server
type Server struct {
	router  *gin.Engine
	cfg     *config.Config
	logger  *logging.Logger
	forms   *service.FormService
	cleanup *tasks.SessionCleanup
}

// NewServer wires services, handlers and routes around relay
func NewServer(cfg *config.Config, relay contact.Relay, logger *logging.Logger) *Server {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Disable Gin's default logger entirely because we're using our custom logger
	gin.DisableConsoleColor()
	gin.DefaultWriter = io.Discard

	// Create a new engine without default middleware
	router := gin.New()
	router.HandleMethodNotAllowed = true

	forms := service.NewFormService(relay, logger, cfg.StatusResetDelay)
	recaptcha := service.NewRecaptchaService(cfg.RecaptchaSecretKey, cfg.RecaptchaMinScore)

	h := &routes.Handlers{
		Health:  handlers.NewHealthHandler(forms),
		Profile: handlers.NewProfileHandler(cfg),
		Contact: handlers.NewContactHandler(service.NewContactService(relay, logger), recaptcha),
		Form:    handlers.NewFormHandler(forms, recaptcha),
	}
	m := &routes.Middleware{
		Validation: middleware.NewValidationMiddleware(),
		// 1 request per second with bursts of 5 per client
		Submit: middleware.RateLimitConfig{RPS: 1, Burst: 5},
	}

	routes.SetupGlobalMiddleware(router, cfg, logger)
	routes.Setup(router, h, m, logger)

	return &Server{
		router:  router,
		cfg:     cfg,
		logger:  logger,
		forms:   forms,
		cleanup: tasks.NewSessionCleanup(forms, cfg.FormSessionTTL, logger),
	}
}

// Handler returns the HTTP handler, for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until ctx is done, then drains requests and closes every
// form session, cancelling in-flight deliveries
func (s *Server) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.cleanup.Start(ctx)
	s.logger.Info("Started session cleanup task (ttl %s)", s.cfg.FormSessionTTL)

	srv := &http.Server{
		Addr:              ":" + s.cfg.Port,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Listening on %s (%s relay)", srv.Addr, s.cfg.RelayProvider)
		errCh <- srv.ListenAndServe()
	}()

	var serveErr error
	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			serveErr = fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
		s.logger.Info("Shutting down server...")
		shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
		defer stop()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			serveErr = fmt.Errorf("server shutdown failed: %w", err)
		}
	}

	cancel()
	s.cleanup.Wait()
	s.forms.Shutdown()
	s.logger.Info("Server stopped")

	return serveErr
}
