// Package domain contains the core business entities and value objects.
// These structs are framework-agnostic and shared by every model provider.
package domain

// ProviderType represents the backend family a model provider talks to.
type ProviderType string

const ProviderOpenRouter ProviderType = "openrouter"

// String returns the provider identifier.
func (p ProviderType) String() string {
	return string(p)
}

// ModelAlias maps a short human-chosen model name to the vendor's
// fully-qualified model identifier.
type ModelAlias struct {
	// Alias is the short name callers use (e.g. "qwen-coder-free").
	Alias string `json:"id"`

	// VendorID is the identifier sent upstream (e.g. "qwen/qwq-32b:free").
	VendorID string `json:"vendor_id"`
}
