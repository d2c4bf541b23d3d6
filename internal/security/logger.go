package security

import (
	"io"
	"log/slog"

	"github.com/hpn/freetier-router/internal/config"
)

// NewLogger builds the application logger: a JSON or text slog handler at
// the configured level, wrapped so that secrets never reach w.
func NewLogger(w io.Writer, cfg config.LoggingConfig, secrets ...string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}

	var inner slog.Handler
	if cfg.Format == "text" {
		inner = slog.NewTextHandler(w, opts)
	} else {
		inner = slog.NewJSONHandler(w, opts)
	}

	return slog.New(NewRedactedHandler(inner, secrets...))
}
