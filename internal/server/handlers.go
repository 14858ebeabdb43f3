package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/tealinux/teasite/internal/content"
	"github.com/tealinux/teasite/internal/metrics"
	"github.com/tealinux/teasite/internal/render"
	"github.com/tealinux/teasite/internal/search"
	"github.com/tealinux/teasite/pkg/models"
)

// handleSearch answers GET /api/search?q=. The body is always a JSON array:
// short queries get [] with 200, content failures get [] with 500.
func (s *Server) handleSearch(c echo.Context) error {
	start := time.Now()
	query := c.QueryParam("q")

	if _, ok := search.Normalize(query); !ok {
		s.metrics.ObserveSearch(metrics.OutcomeEmptyQuery, 0, time.Since(start))
		return c.JSON(http.StatusOK, []models.SearchResult{})
	}

	results, err := s.engine.Search(c.Request().Context(), query)
	if err != nil {
		slog.Error("search failed", "query", query, "error", err)
		s.metrics.ObserveSearch(metrics.OutcomeError, 0, time.Since(start))
		return c.JSON(http.StatusInternalServerError, []models.SearchResult{})
	}

	s.metrics.ObserveSearch(metrics.OutcomeOK, len(results), time.Since(start))
	return c.JSON(http.StatusOK, results)
}

// handleSearchIndex serves the prerendered search index used by clients
// that search locally.
func (s *Server) handleSearchIndex(c echo.Context) error {
	docs, err := s.content.Documents(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "content unavailable").SetInternal(err)
	}

	entries := make([]models.IndexEntry, len(docs))
	for i, doc := range docs {
		entries[i] = models.IndexEntry{Title: doc.Title, ID: doc.ID, Body: doc.Body, Category: doc.Category}
	}
	return c.JSON(http.StatusOK, entries)
}

func (s *Server) handleNavigation(c echo.Context) error {
	nav, err := s.content.Navigation(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "content unavailable").SetInternal(err)
	}
	return c.JSON(http.StatusOK, nav)
}

func (s *Server) handleDocument(c echo.Context) error {
	ctx := c.Request().Context()
	id := strings.Trim(c.Param("*"), "/")

	doc, err := s.content.Get(ctx, id)
	if errors.Is(err, content.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "document not found")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "content unavailable").SetInternal(err)
	}

	nav, err := s.content.Navigation(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "content unavailable").SetInternal(err)
	}

	page, err := render.Page(render.PageData{
		Site:   s.config.SiteName,
		Prefix: s.config.DocsPrefix,
		Doc:    doc,
		Nav:    nav,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "render failed").SetInternal(err)
	}
	return c.HTML(http.StatusOK, page)
}

type healthResponse struct {
	Status    string `json:"status"`
	Documents int    `json:"documents"`
}

func (s *Server) handleHealth(c echo.Context) error {
	docs, err := s.content.Documents(c.Request().Context())
	if err != nil {
		slog.Warn("health check failed", "error", err)
		return c.JSON(http.StatusServiceUnavailable, healthResponse{Status: "unavailable"})
	}
	return c.JSON(http.StatusOK, healthResponse{Status: "ok", Documents: len(docs)})
}

type reloadResponse struct {
	Documents int       `json:"documents"`
	LoadedAt  time.Time `json:"loaded_at"`
}

func (s *Server) handleReload(c echo.Context) error {
	coll, err := s.reload(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "reload failed").SetInternal(err)
	}
	return c.JSON(http.StatusOK, reloadResponse{Documents: coll.Len(), LoadedAt: time.Now().UTC()})
}
