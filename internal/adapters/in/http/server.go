package http

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Server exposes liveness and readiness for the process. Business operations
// are served by whatever transport embeds the application handlers.
type Server struct {
	db    Pinger
	cache Pinger
}

// NewServer accepts a nil cache when the eligibility cache is off.
func NewServer(db Pinger, cache Pinger) *Server {
	return &Server{db: db, cache: cache}
}

func (s *Server) Register(e *echo.Echo) {
	e.GET("/health", s.Health)
	e.GET("/ready", s.Ready)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// Ready handles GET /ready. The cache is optional for reads, so only the
// database decides readiness; a cache failure is reported but not fatal.
func (s *Server) Ready(ctx echo.Context) error {
	reqCtx, cancel := context.WithTimeout(ctx.Request().Context(), 2*time.Second)
	defer cancel()

	status := map[string]string{"database": "ok"}
	if err := s.db.PingContext(reqCtx); err != nil {
		status["database"] = err.Error()
		return ctx.JSON(http.StatusServiceUnavailable, status)
	}
	if s.cache != nil {
		status["cache"] = "ok"
		if err := s.cache.PingContext(reqCtx); err != nil {
			status["cache"] = err.Error()
		}
	}
	return ctx.JSON(http.StatusOK, status)
}
