// Package main DeadAnime Proxy API
// @title DeadAnime Proxy API
// @version 1.0
// @description HTTP proxy for the DeadAnime catalog API with parameter sanitization and bounded retries
// @BasePath /
package main

import (
	"log/slog"
	"os"

	_ "github.com/deadanime/proxy/docs"
	"github.com/deadanime/proxy/internal/config"
	"github.com/deadanime/proxy/internal/router"
	"github.com/deadanime/proxy/internal/server"
	"github.com/deadanime/proxy/internal/upstream"
	pkgserver "github.com/deadanime/proxy/pkg/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	if cfg.IsDevelopment() {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	checker := pkgserver.NewUpstreamHealthChecker(cfg.UpstreamBaseURL)

	s := server.New(cfg, checker).
		SetupMiddlewares().
		SetupErrorHandler().
		SetupHealthChecks("/api/health").
		SetupOpenApi("/swagger/*")

	client, err := upstream.New(cfg)
	if err != nil {
		slog.Error("Failed to create upstream client", "error", err)
		os.Exit(1)
	}

	catalog := router.NewCatalogRouter(s.Echo, client, cfg)
	catalog.Bind()

	go func() {
		<-s.ShutdownSignal()
		slog.Info("Shutdown started, draining connections...")
	}()

	slog.Info("Starting deadanime-proxy",
		"port", cfg.Port,
		"environment", cfg.Env,
		"upstream", cfg.UpstreamBaseURL,
	)

	if err := s.Start(); err != nil {
		slog.Error("Server shutdown failed", "error", err)
		os.Exit(1)
	}
}
