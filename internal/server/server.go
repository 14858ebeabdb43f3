// Package server exposes the documentation collection and its search over
// HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/tealinux/teasite/internal/content"
	"github.com/tealinux/teasite/internal/metrics"
	"github.com/tealinux/teasite/internal/search"
	"github.com/tealinux/teasite/pkg/models"
)

const shutdownTimeout = 10 * time.Second

// Config holds HTTP server configuration.
type Config struct {
	Addr         string
	SiteName     string
	DocsPrefix   string // e.g. "/docs/"
	CORSOrigins  []string
	AllowReload  bool
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Content is the document source served by the server.
type Content interface {
	Documents(ctx context.Context) ([]models.Document, error)
	Get(ctx context.Context, id string) (models.Document, error)
	Navigation(ctx context.Context) ([]models.NavSection, error)
	Reload(ctx context.Context) (*content.Collection, error)
}

// Server is the docs HTTP server.
type Server struct {
	config  Config
	echo    *echo.Echo
	content Content
	engine  *search.Engine
	metrics *metrics.Metrics
}

// New creates a server and registers its routes.
func New(config Config, docs Content, m *metrics.Metrics) *Server {
	if config.DocsPrefix == "" {
		config.DocsPrefix = search.DefaultURLPrefix
	}
	if m == nil {
		m = metrics.New()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		config:  config,
		echo:    e,
		content: docs,
		engine:  search.New(docs, search.Config{URLPrefix: config.DocsPrefix}),
		metrics: m,
	}

	e.HTTPErrorHandler = s.handleError
	e.Use(middleware.Recover())
	e.Use(requestLogger())
	if len(config.CORSOrigins) > 0 {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: config.CORSOrigins,
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowHeaders: []string{echo.HeaderContentType},
		}))
	}

	s.routes()
	return s
}

func (s *Server) routes() {
	s.echo.GET("/health", s.handleHealth)
	s.echo.GET("/metrics", echo.WrapHandler(s.metrics.Handler()))

	api := s.echo.Group("/api")
	api.GET("/search", s.handleSearch)
	api.GET("/search-index.json", s.handleSearchIndex)
	api.GET("/docs/nav", s.handleNavigation)
	if s.config.AllowReload {
		api.POST("/reload", s.handleReload)
	}

	s.echo.GET(s.config.DocsPrefix+"*", s.handleDocument)
}

// Handler returns the server as an http.Handler.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Preload loads the content collection before the first request.
func (s *Server) Preload(ctx context.Context) error {
	_, err := s.reload(ctx)
	return err
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	s.echo.Server.ReadTimeout = s.config.ReadTimeout
	s.echo.Server.WriteTimeout = s.config.WriteTimeout

	errCh := make(chan error, 1)
	go func() {
		slog.Info("listening", "addr", s.config.Addr)
		errCh <- s.echo.Start(s.config.Addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("failed to serve: %w", err)
	case <-ctx.Done():
		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return s.echo.Shutdown(shutdownCtx)
	}
}

func (s *Server) reload(ctx context.Context) (*content.Collection, error) {
	coll, err := s.content.Reload(ctx)
	if err != nil {
		s.metrics.ObserveReload(err, 0)
		return nil, err
	}
	s.metrics.ObserveReload(nil, coll.Len())
	return coll, nil
}

// handleError writes every error as {"error": message}.
func (s *Server) handleError(err error, c echo.Context) {
	code := http.StatusInternalServerError
	msg := http.StatusText(code)

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		msg = fmt.Sprint(he.Message)
	}

	req := c.Request()
	if code >= http.StatusInternalServerError {
		slog.Error("request failed", "method", req.Method, "path", req.URL.Path, "status", code, "error", err)
	}

	if c.Response().Committed {
		return
	}
	if req.Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	_ = c.JSON(code, map[string]string{"error": msg})
}

func requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{"method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency}
			if v.Error != nil {
				attrs = append(attrs, "error", v.Error)
			}
			slog.Debug("request", attrs...)
			return nil
		},
	})
}
