package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"example.com/octofit/internal/api"
	"example.com/octofit/internal/config"
	"example.com/octofit/internal/dashboard"
	httptransport "example.com/octofit/internal/transport/http"
	"example.com/octofit/internal/upstream"
)

func main() {
	cfg := config.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := upstream.NewClient(cfg.APIBaseURL, cfg.HTTPTimeout,
		upstream.WithStrictShapes(cfg.StrictShapes),
		upstream.WithLogger(logger),
	)

	service, err := dashboard.NewService(client, logger)
	if err != nil {
		logger.Error("invalid dashboard views", slog.Any("err", err))
		os.Exit(1)
	}

	handler := api.NewHandler(service, logger, cfg.AllowedOrigins)

	server := httptransport.NewServer(httptransport.ServerConfig{
		Address:         cfg.HTTPAddress,
		ReadTimeout:     5 * time.Second,
		WriteTimeout:    cfg.HTTPTimeout + 5*time.Second,
		IdleTimeout:     60 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}, handler.Router(), logger)

	logger.Info("starting octofit dashboard",
		slog.String("api_base_url", cfg.APIBaseURL),
		slog.Bool("strict_shapes", cfg.StrictShapes),
	)
	if err := server.ListenAndServe(ctx); err != nil {
		logger.Error("server error", slog.Any("err", err))
		os.Exit(1)
	}
	logger.Info("server stopped")
}
