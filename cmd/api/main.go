package main

import (
	"log"
	"log/slog"
	nethttp "net/http"
	"os"

	"mdtable-dashboard/internal/config"
	"mdtable-dashboard/internal/http"
	"mdtable-dashboard/internal/service"
	"mdtable-dashboard/internal/session"
)

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	sessions := session.NewMemoryStore(cfg.SessionTTL, cfg.SessionMaxEntries)
	slog.Info("Session store initialized", "ttl", cfg.SessionTTL, "max_entries", cfg.SessionMaxEntries)

	dashboards := service.NewDashboardService(sessions, service.Options{
		TableMarker:    cfg.TableMarker,
		DashboardTitle: cfg.DashboardTitle,
	})

	deps := &http.Deps{
		DashboardService: dashboards,
		Sessions:         sessions,
		DashboardTitle:   cfg.DashboardTitle,
		MaxUploadBytes:   cfg.MaxUploadBytes,
	}
	router := http.NewRouter(deps)

	addr := ":" + cfg.APIPort
	slog.Info("Starting API server", "addr", addr, "table_marker", cfg.TableMarker)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("API server failed to start: %v", err)
	}
}
