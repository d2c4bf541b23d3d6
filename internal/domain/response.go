package domain

// ErrorKind classifies a per-call failure carried inside a ModelResponse.
// The zero value means the call succeeded.
type ErrorKind string

const (
	ErrorKindNone          ErrorKind = ""
	ErrorKindRateLimit     ErrorKind = "rate_limit"
	ErrorKindHTTP          ErrorKind = "http_error"
	ErrorKindTimeout       ErrorKind = "timeout"
	ErrorKindEmptyResponse ErrorKind = "empty_response"
	ErrorKindTransport     ErrorKind = "transport"
)

// GenerateRequest is the canonical request every provider accepts.
type GenerateRequest struct {
	// ModelName is an alias or a vendor model id.
	ModelName string `json:"model"`

	// SystemPrompt is sent as the first message.
	SystemPrompt string `json:"system_prompt"`

	// UserPrompt is sent as the second message.
	UserPrompt string `json:"prompt"`

	// Temperature controls randomness (0.0-2.0).
	Temperature float64 `json:"temperature"`

	// TopP is nucleus sampling. Optional.
	TopP *float64 `json:"top_p,omitempty"`

	// Stop sequences to halt generation. Optional.
	Stop []string `json:"stop,omitempty"`
}

// Usage contains token accounting reported by the vendor.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// ResponseMetadata describes how a response was produced.
type ResponseMetadata struct {
	// Model is the vendor model id the request was sent with.
	Model string `json:"model,omitempty"`

	// Usage is present only when the vendor reported it.
	Usage *Usage `json:"usage,omitempty"`

	// ErrorKind is empty on success.
	ErrorKind ErrorKind `json:"error_kind,omitempty"`

	// Error carries the raw error text (response body or stringified failure).
	Error string `json:"error,omitempty"`

	// ThinkingContent is the reasoning trace some models return alongside the answer.
	ThinkingContent string `json:"thinking_content,omitempty"`

	// StatusCode is the upstream HTTP status when one was received.
	StatusCode int `json:"status_code,omitempty"`

	// RateLimit is populated from response headers on rate-limited calls.
	RateLimit *RateLimitInfo `json:"rate_limit,omitempty"`
}

// ModelResponse is the uniform result of a generate call.
// Failures are reported through Metadata.ErrorKind; Content always holds
// a human-readable message.
type ModelResponse struct {
	Content  string           `json:"content"`
	Metadata ResponseMetadata `json:"metadata"`
}

// Failed reports whether the response carries an error kind.
func (r ModelResponse) Failed() bool {
	return r.Metadata.ErrorKind != ErrorKindNone
}
