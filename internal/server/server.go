// Package server exposes the proposal workflow over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/khrees2412/proposly/internal/logger"
)

const shutdownTimeout = 10 * time.Second

type RouterConfig struct {
	ProposalHandler *ProposalHandler
	ProviderHandler *ProviderHandler
	Logger          *zap.Logger
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), RequestLogger(cfg.Logger), CORS())

	router.GET("/healthcheck", HealthCheck)

	api := router.Group("/api")
	api.Use(RequireUser())
	{
		api.POST("/proposals/generate", cfg.ProposalHandler.Generate)
		api.GET("/proposals", cfg.ProposalHandler.List)
		api.GET("/proposals/:id", cfg.ProposalHandler.Get)
		api.POST("/proposals/:id/feedback", cfg.ProposalHandler.Feedback)
		api.GET("/usage", cfg.ProposalHandler.Usage)

		api.GET("/providers", cfg.ProviderHandler.List)
		api.GET("/providers/:name/test", cfg.ProviderHandler.Test)
		api.POST("/providers/compare", cfg.ProviderHandler.Compare)
	}

	return router
}

// Server runs the API until its context is cancelled
type Server struct {
	httpServer *http.Server
	logger     *zap.Logger
}

func New(addr string, handler http.Handler, log *zap.Logger) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: logger.OrNop(log),
	}
}

// Run serves until ctx is done, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	s.logger.Info("shutting down HTTP server")
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	return nil
}
