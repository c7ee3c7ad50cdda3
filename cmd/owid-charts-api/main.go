package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"owid-charts/internal/api"
	"owid-charts/internal/api/handler"
	"owid-charts/internal/config"
	"owid-charts/internal/model"
	"owid-charts/internal/store"
	"owid-charts/pkg/router"
	"owid-charts/pkg/utils"
)

func main() {
	cfg := config.Load()
	logger := utils.NewLogger(os.Stderr, cfg.LogLevel, cfg.LogColor)
	slog.SetDefault(logger)

	// Init DB
	if err := store.InitDB(cfg.DBPath); err != nil {
		logger.Error("failed to open history db", "path", cfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Create router
	r := router.New(logger)

	// Register API routes
	api.RegisterRoutes(r, handler.NewChartHandler(ctx, cfg, model.DefaultRunSpec()))

	// Start server
	if err := r.Start(ctx, cfg.Addr); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
