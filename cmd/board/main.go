package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/lmittmann/tint"

	"MonitorBoard/internal/api"
	"MonitorBoard/internal/board"
	"MonitorBoard/internal/collector"
	"MonitorBoard/internal/config"
	"MonitorBoard/internal/model"
	"MonitorBoard/internal/recorder"
)

// Version is set at build time.
var Version = "development"

func main() {
	defaultPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		defaultPath = v
	}
	cfgPath := flag.String("config", defaultPath, "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("config validation", "error", err)
		os.Exit(1)
	}
	level, _ := cfg.LogLevel()

	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: level}))
	slog.SetDefault(logger)
	logger.Info("MonitorBoard starting ("+Version+")",
		"go", runtime.Version(),
		"backend", cfg.API.BaseURL)

	// Init fetcher
	fetcher := collector.NewAPIClient(cfg.API.BaseURL, cfg.Proxy, cfg.API.Timeout, logger.With("component", "collector"))

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath, logger)
		if err != nil {
			logger.Warn("init sqlite recorder failed, using noop", "error", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}
	defer rec.Close()

	b := board.New(fetcher, board.Options{
		DashboardInterval: cfg.Pages.DashboardPollInterval,
		ListInterval:      cfg.Pages.ListPollInterval,
		ListLimit:         cfg.Pages.ListLimit,
		TransferLimit:     cfg.Pages.TransferLimit,
		OnSummary: func(s *model.Summary) {
			if err := rec.RecordSummary(s); err != nil {
				logger.Warn("record summary", "error", err)
			}
		},
	}, logger)
	defer b.Close()

	srv, err := api.NewServer(api.ServerOpts{
		Logger:         logger.With("component", "api"),
		Board:          b,
		Recorder:       rec,
		Port:           cfg.Server.Port,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	})
	if err != nil {
		logger.Error("init api server", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := srv.ListenAndServe(ctx); err != nil {
		logger.Error("api server stopped", "error", err)
		b.Close()
		rec.Close()
		os.Exit(1)
	}
	logger.Info("MonitorBoard stopped")
}
