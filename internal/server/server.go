// Package server exposes a service.Client as the REST "tasks" resource that
// the rest backend speaks.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"minitask/internal/service"
)

// ShutdownTimeout bounds graceful shutdown.
const ShutdownTimeout = 5 * time.Second

// Options configures the server.
type Options struct {
	// Prefix is the route group the resource is mounted under, e.g. "/api/v1".
	Prefix string

	// Token, when set, is required as a bearer token on every request.
	Token string
}

// Server routes HTTP requests to a service.Client.
type Server struct {
	client service.Client
	logger zerolog.Logger
	opts   Options
	router *gin.Engine
}

// New builds the router.
func New(client service.Client, logger zerolog.Logger, opts Options) *Server {
	s := &Server{
		client: client,
		logger: logger,
		opts:   opts,
	}

	router := gin.New()
	router.Use(s.handleRequestID)
	router.Use(s.handleLogging)
	router.Use(gin.Recovery())
	if opts.Token != "" {
		router.Use(s.handleAuth)
	}

	group := router.Group(opts.Prefix)
	group.GET("/:resource", s.handleFetch)
	group.POST("/:resource", s.handlePost)
	group.PUT("/:resource", s.handlePut)
	group.DELETE("/:resource", s.handleDelete)

	router.NoRoute(func(c *gin.Context) {
		abort(c, newStatusTextError(http.StatusNotFound))
	})

	s.router = router
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().
			Str("addr", addr).
			Str("prefix", s.opts.Prefix).
			Msg("setting up http server")
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			s.logger.Error().Err(err).Msg("failed to listen and serve http")
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info().Msg("shutting down http server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		s.logger.Error().Err(err).Msg("failed to shutdown http server")
		return err
	}
	s.logger.Info().Msg("shut down http server")
	return nil
}
