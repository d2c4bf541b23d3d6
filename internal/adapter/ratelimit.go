package adapter

import (
	"net/http"
	"strconv"
	"time"

	"github.com/hpn/freetier-router/internal/domain"
)

// millisThreshold separates unix-seconds from unix-millisecond reset values.
const millisThreshold = 1_000_000_000_000

// parseRateLimitHeaders extracts OpenRouter rate limit headers.
// Headers: X-RateLimit-{Limit,Remaining,Reset}, Retry-After.
// It returns nil when none of them are present.
func parseRateLimitHeaders(h http.Header, now time.Time) *domain.RateLimitInfo {
	limit := h.Get("X-RateLimit-Limit")
	remaining := h.Get("X-RateLimit-Remaining")
	reset := h.Get("X-RateLimit-Reset")
	retryAfter := h.Get("Retry-After")

	if limit == "" && remaining == "" && reset == "" && retryAfter == "" {
		return nil
	}

	info := &domain.RateLimitInfo{}
	if v, err := strconv.Atoi(limit); err == nil {
		info.Limit = v
	}
	if v, err := strconv.Atoi(remaining); err == nil {
		info.Remaining = v
	}
	info.Reset = parseResetTime(reset)
	info.RetryAfterSeconds = int(parseRetryAfter(retryAfter, now).Round(time.Second) / time.Second)

	return info
}

// parseResetTime accepts unix seconds or unix milliseconds.
func parseResetTime(val string) time.Time {
	if val == "" {
		return time.Time{}
	}
	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil || n <= 0 {
		return time.Time{}
	}
	if n >= millisThreshold {
		return time.UnixMilli(n).UTC()
	}
	return time.Unix(n, 0).UTC()
}

// parseRetryAfter accepts delta-seconds or an HTTP date relative to now.
func parseRetryAfter(val string, now time.Time) time.Duration {
	if val == "" {
		return 0
	}
	if secs, err := strconv.Atoi(val); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(val); err == nil && t.After(now) {
		return t.Sub(now)
	}
	return 0
}
