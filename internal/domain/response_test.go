package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModelResponse_Failed(t *testing.T) {
	assert.False(t, ModelResponse{Content: "hi"}.Failed())
	assert.True(t, ModelResponse{Metadata: ResponseMetadata{ErrorKind: ErrorKindTimeout}}.Failed())
}

func TestModelResponse_JSONOmitsEmptyMetadata(t *testing.T) {
	raw, err := json.Marshal(ModelResponse{
		Content:  "hello",
		Metadata: ResponseMetadata{Model: "qwen/qwq-32b:free"},
	})
	require.NoError(t, err)

	assert.JSONEq(t, `{"content":"hello","metadata":{"model":"qwen/qwq-32b:free"}}`, string(raw))
}

func TestRateLimitInfo_JSON(t *testing.T) {
	raw, err := json.Marshal(RateLimitInfo{Limit: 50})
	require.NoError(t, err)
	assert.JSONEq(t, `{"limit":50,"remaining":0}`, string(raw))

	raw, err = json.Marshal(RateLimitInfo{
		Remaining:         0,
		Reset:             time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		RetryAfterSeconds: 30,
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"remaining":0,"reset":"2026-03-01T00:00:00Z","retry_after_seconds":30}`, string(raw))
}

func TestConfigurationError(t *testing.T) {
	err := &ConfigurationError{Key: "OPENROUTER_API_KEY"}
	assert.Equal(t, "configuration error: OPENROUTER_API_KEY is required", err.Error())

	withReason := &ConfigurationError{Key: "server.port", Reason: "must be positive"}
	assert.Equal(t, "configuration error: server.port: must be positive", withReason.Error())

	wrapped := fmt.Errorf("startup: %w", err)
	assert.True(t, IsConfigurationError(wrapped))
	assert.False(t, IsConfigurationError(errors.New("other")))
}
