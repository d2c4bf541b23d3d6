// Package main is the entry point for the freetier-router HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hpn/freetier-router/internal/adapter"
	"github.com/hpn/freetier-router/internal/config"
	"github.com/hpn/freetier-router/internal/handler"
	"github.com/hpn/freetier-router/internal/security"
	"github.com/hpn/freetier-router/internal/ui"
)

func main() {
	// =========================================================================
	// 1. Load configuration (Singleton, reads .env first)
	// =========================================================================
	cfg, err := config.GetConfig()
	if err != nil {
		ui.PrintFatal(err.Error())
		os.Exit(1)
	}

	// =========================================================================
	// 2. Setup structured logger with credential redaction
	// =========================================================================
	logger := security.NewLogger(os.Stdout, cfg.Logging, os.Getenv(adapter.EnvAPIKey))
	slog.SetDefault(logger)

	logger.Info("starting freetier-router",
		slog.String("host", cfg.Server.Host),
		slog.Int("port", cfg.Server.Port),
		slog.String("base_url", cfg.OpenRouter.BaseURL),
		slog.Duration("timeout", cfg.OpenRouter.Timeout()),
	)

	// =========================================================================
	// 3. Create the provider and router
	// =========================================================================
	provider, router, err := buildRouter(cfg, logger, true)
	if err != nil {
		logger.Error("failed to initialise provider", slog.String("error", err.Error()))
		ui.PrintFatal(err.Error())
		os.Exit(1)
	}

	// =========================================================================
	// 4. Start HTTP server with graceful shutdown
	// =========================================================================
	srv := newHTTPServer(cfg.Server, router)

	ui.PrintBanner()
	ui.PrintStartupInfo(cfg.Server.Host, cfg.Server.Port, provider.ProviderType().String(), len(provider.ListModels()))
	ui.PrintRouterInfo(fmt.Sprintf("Upstream %s (timeout %s, max_tokens %d)",
		cfg.OpenRouter.BaseURL, cfg.OpenRouter.Timeout(), cfg.OpenRouter.MaxTokens))

	go func() {
		logger.Info("server starting", slog.String("address", srv.Addr))

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// =========================================================================
	// 5. Graceful shutdown on SIGTERM/SIGINT
	// =========================================================================
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("shutdown signal received", slog.String("signal", sig.String()))
	ui.PrintShutdown()

	shutdownTimeout := time.Duration(cfg.Server.ShutdownTimeoutSeconds) * time.Second
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("server stopped gracefully")
	ui.PrintGoodbye()
}

// buildRouter constructs the OpenRouter adapter from cfg and mounts it on a
// gin engine. It fails when OPENROUTER_API_KEY is missing.
func buildRouter(cfg *config.Configuration, logger *slog.Logger, console bool) (*adapter.OpenRouterAdapter, *gin.Engine, error) {
	opts := append(adapter.ConfigOptions(cfg.OpenRouter), adapter.WithLogger(logger))

	provider, err := adapter.NewOpenRouterAdapter(opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("create openrouter adapter: %w", err)
	}

	if cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	return provider, handler.NewRouter(provider, logger, console), nil
}

// newHTTPServer applies the server section of the configuration.
func newHTTPServer(cfg config.ServerConfig, h http.Handler) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      h,
		ReadTimeout:  time.Duration(cfg.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeoutSeconds) * time.Second,
	}
}
