// Package main is the entry point for the freetier-router MCP stdio server.
// Stdout carries the protocol, so logs and errors go to stderr.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hpn/freetier-router/internal/adapter"
	"github.com/hpn/freetier-router/internal/config"
	"github.com/hpn/freetier-router/internal/mcptool"
	"github.com/hpn/freetier-router/internal/security"
	"github.com/hpn/freetier-router/internal/ui"
)

const serverName = "freetier-router"

func main() {
	cfg, err := config.GetConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := security.NewLogger(os.Stderr, cfg.Logging, os.Getenv(adapter.EnvAPIKey))
	slog.SetDefault(logger)

	opts := append(adapter.ConfigOptions(cfg.OpenRouter), adapter.WithLogger(logger))
	provider, err := adapter.NewOpenRouterAdapter(opts...)
	if err != nil {
		logger.Error("failed to initialise provider", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("mcp server starting",
		slog.String("name", serverName),
		slog.Int("models", len(provider.ListModels())),
	)

	server := mcptool.New(serverName, ui.Version, provider, logger)
	if err := server.Serve(ctx, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("mcp server stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
