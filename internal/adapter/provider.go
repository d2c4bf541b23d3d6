// Package adapter provides implementations for external AI provider integrations.
// It uses the Adapter pattern to abstract provider-specific APIs behind a common interface.
package adapter

import (
	"context"

	"github.com/hpn/freetier-router/internal/domain"
)

// ModelProvider defines the contract every chat-style model backend satisfies,
// so a higher-level caller can treat providers uniformly.
type ModelProvider interface {
	// ProviderType returns the backend family this provider talks to.
	ProviderType() domain.ProviderType

	// SupportsModel reports whether the provider can serve modelName.
	// It must not perform I/O.
	SupportsModel(modelName string) bool

	// GenerateResponse sends a single prompt and returns a normalised response.
	// Per-call failures are reported through the response's error kind, never
	// as a Go error.
	GenerateResponse(ctx context.Context, req domain.GenerateRequest) domain.ModelResponse

	// CountTokens estimates the token count of text without a network call.
	CountTokens(text string) int
}

// ModelLister is implemented by providers that expose their alias table.
type ModelLister interface {
	ListModels() []domain.ModelAlias
}
