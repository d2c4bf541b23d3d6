package domain

import "time"

// RateLimitInfo holds rate limit state reported by the vendor on a
// rate-limited response. Zero fields mean the header was absent.
type RateLimitInfo struct {
	Limit     int       `json:"limit,omitempty"`
	Remaining int       `json:"remaining"`
	Reset     time.Time `json:"reset,omitzero"`

	// RetryAfterSeconds is the Retry-After delay in whole seconds.
	RetryAfterSeconds int `json:"retry_after_seconds,omitempty"`
}
