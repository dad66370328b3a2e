package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/deadanime/proxy/internal/apperr"
	"github.com/deadanime/proxy/internal/config"
	mw "github.com/deadanime/proxy/pkg/middleware"
	pkgserver "github.com/deadanime/proxy/pkg/server"
)

const (
	GracefulShutdownTimeout = 10 * time.Second

	healthProbeTimeout = 2 * time.Second
)

type Server struct {
	Echo *echo.Echo

	cfg     *config.Config
	checker pkgserver.HealthChecker
	ctx     context.Context
	stop    context.CancelFunc
}

func New(cfg *config.Config, checker pkgserver.HealthChecker) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	return &Server{
		Echo:    e,
		cfg:     cfg,
		checker: checker,
		ctx:     ctx,
		stop:    stop,
	}
}

func (s *Server) SetupMiddlewares() *Server {
	s.Echo.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	s.Echo.Use(mw.Logger())
	s.Echo.Use(middleware.Recover())
	s.Echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: s.cfg.CorsOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodOptions},
	}))
	return s
}

func (s *Server) SetupErrorHandler() *Server {
	s.Echo.HTTPErrorHandler = apperr.GlobalErrorHandler(s.cfg.IsDevelopment())
	return s
}

type healthResponse struct {
	Status      string `json:"status"`
	Environment string `json:"environment"`
	Timestamp   string `json:"timestamp"`
	Upstream    string `json:"upstream,omitempty"`
}

func (s *Server) SetupHealthChecks(path string) *Server {
	s.Echo.GET(path, func(c echo.Context) error {
		resp := healthResponse{
			Status:      "ok",
			Environment: string(s.cfg.Env),
			Timestamp:   time.Now().UTC().Format(time.RFC3339),
		}
		if s.checker != nil {
			hctx, cancel := context.WithTimeout(c.Request().Context(), healthProbeTimeout)
			defer cancel()
			// The probe is informational, an unreachable upstream never
			// fails the health endpoint itself.
			if s.checker.Healthy(hctx) {
				resp.Upstream = "reachable"
			} else {
				resp.Upstream = "unreachable"
			}
		}
		return c.JSON(http.StatusOK, resp)
	})
	return s
}

func (s *Server) SetupOpenApi(path string) *Server {
	s.Echo.GET(path, echoSwagger.WrapHandler)
	return s
}

// ShutdownSignal is closed once an interrupt or SIGTERM arrives.
func (s *Server) ShutdownSignal() <-chan struct{} {
	return s.ctx.Done()
}

// Start serves until a shutdown signal arrives, then drains in-flight
// requests for up to GracefulShutdownTimeout.
func (s *Server) Start() error {
	go func() {
		if err := s.Echo.Start(":" + s.cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server stopped unexpectedly", "error", err)
			s.stop()
		}
	}()

	<-s.ctx.Done()
	s.stop()

	ctx, cancel := context.WithTimeout(context.Background(), GracefulShutdownTimeout)
	defer cancel()

	return s.Echo.Shutdown(ctx)
}
