// Package security provides data leakage prevention utilities.
package security

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
)

// Redaction placeholder for sensitive data.
const RedactedPlaceholder = "[REDACTED_KEY_XYZ]"

// minSecretLen guards against registering trivially short values that would
// shred unrelated log text.
const minSecretLen = 8

// sensitivePatterns contains regex patterns for common API key formats.
var sensitivePatterns = []*regexp.Regexp{
	// OpenRouter keys: sk-or-v1-<hex>
	regexp.MustCompile(`sk-or-(?:v\d+-)?[a-zA-Z0-9]{20,}`),
	// Anthropic keys: sk-ant-...
	regexp.MustCompile(`sk-ant-[a-zA-Z0-9_-]{20,}`),
	// OpenAI keys: sk-... (varies 32-100+ chars)
	regexp.MustCompile(`sk-[a-zA-Z0-9]{20,}`),
	// Google AI keys: AIza...
	regexp.MustCompile(`AIza[a-zA-Z0-9_-]{30,}`),
	// Generic Bearer tokens in strings
	regexp.MustCompile(`Bearer\s+[a-zA-Z0-9_-]{20,}`),
	// API keys in query params: key=...
	regexp.MustCompile(`key=[a-zA-Z0-9_-]{20,}`),
	// Generic long alphanumeric strings that look like keys (40+ chars)
	regexp.MustCompile(`[a-zA-Z0-9_-]{40,}`),
}

// Redact scans a string for sensitive patterns and replaces them.
// This is the primary function for sanitizing log output.
func Redact(s string) string {
	result := s
	for _, pattern := range sensitivePatterns {
		result = pattern.ReplaceAllString(result, RedactedPlaceholder)
	}
	return result
}

// RedactedHandler wraps an slog.Handler and redacts sensitive data from log records.
// Besides the built-in patterns it masks every registered secret verbatim,
// which covers credentials that do not follow a known key format.
type RedactedHandler struct {
	inner   slog.Handler
	secrets []string
}

// NewRedactedHandler creates a new handler that wraps an existing handler
// and redacts sensitive data from all log output. Empty or very short
// secrets are ignored.
func NewRedactedHandler(inner slog.Handler, secrets ...string) *RedactedHandler {
	h := &RedactedHandler{inner: inner}
	for _, s := range secrets {
		s = strings.TrimSpace(s)
		if len(s) >= minSecretLen {
			h.secrets = append(h.secrets, s)
		}
	}
	return h
}

// Enabled reports whether the handler handles records at the given level.
func (h *RedactedHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle processes a log record, redacting sensitive data.
func (h *RedactedHandler) Handle(ctx context.Context, r slog.Record) error {
	out := slog.NewRecord(r.Time, r.Level, h.redact(r.Message), r.PC)

	r.Attrs(func(a slog.Attr) bool {
		out.AddAttrs(h.redactAttr(a))
		return true
	})

	return h.inner.Handle(ctx, out)
}

// WithAttrs returns a new handler with the given attributes added.
func (h *RedactedHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	redacted := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		redacted[i] = h.redactAttr(a)
	}
	return &RedactedHandler{inner: h.inner.WithAttrs(redacted), secrets: h.secrets}
}

// WithGroup returns a new handler with the given group name.
func (h *RedactedHandler) WithGroup(name string) slog.Handler {
	return &RedactedHandler{inner: h.inner.WithGroup(name), secrets: h.secrets}
}

// redact masks registered secrets first, then the generic patterns.
func (h *RedactedHandler) redact(s string) string {
	for _, secret := range h.secrets {
		s = strings.ReplaceAll(s, secret, RedactedPlaceholder)
	}
	return Redact(s)
}

// redactAttr redacts sensitive data from a single attribute.
func (h *RedactedHandler) redactAttr(a slog.Attr) slog.Attr {
	// Check for known sensitive keys
	if isSensitiveKey(strings.ToLower(a.Key)) {
		return slog.String(a.Key, RedactedPlaceholder)
	}

	a.Value = a.Value.Resolve()

	switch a.Value.Kind() {
	case slog.KindString:
		return slog.String(a.Key, h.redact(a.Value.String()))
	case slog.KindGroup:
		group := a.Value.Group()
		redacted := make([]any, len(group))
		for i, ga := range group {
			redacted[i] = h.redactAttr(ga)
		}
		return slog.Group(a.Key, redacted...)
	case slog.KindAny:
		switch v := a.Value.Any().(type) {
		case error:
			return slog.String(a.Key, h.redact(v.Error()))
		case []string:
			redacted := make([]string, len(v))
			for i, s := range v {
				redacted[i] = h.redact(s)
			}
			return slog.Any(a.Key, redacted)
		}
	}

	return a
}

// isSensitiveKey checks if an attribute key is known to contain sensitive data.
// Token counts (prompt_tokens, max_tokens) are not secrets; only keys naming a
// single token are.
func isSensitiveKey(key string) bool {
	sensitiveKeys := []string{
		"authorization",
		"api_key",
		"apikey",
		"api-key",
		"secret",
		"password",
		"bearer",
		"credential",
	}

	for _, k := range sensitiveKeys {
		if strings.Contains(key, k) {
			return true
		}
	}
	return key == "token" || strings.HasSuffix(key, "_token") || strings.HasSuffix(key, "-token")
}
