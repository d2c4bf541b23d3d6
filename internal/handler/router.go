package handler

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/hpn/freetier-router/internal/adapter"
)

// NewRouter builds the gin engine with the middleware chain and all routes.
// console enables the coloured per-request line on stdout.
func NewRouter(provider adapter.ModelProvider, logger *slog.Logger, console bool) *gin.Engine {
	router := gin.New()

	router.Use(RecoveryMiddleware(logger))
	router.Use(CORSMiddleware())
	router.Use(LoggingMiddleware(logger))
	if console {
		router.Use(ConsoleMiddleware())
	}

	NewGenerateHandler(provider, WithLogger(logger)).RegisterRoutes(router)

	return router
}
