package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/hpn/freetier-router/internal/config"
	"github.com/hpn/freetier-router/internal/domain"
)

const (
	// EnvAPIKey is the environment variable holding the OpenRouter credential.
	EnvAPIKey = "OPENROUTER_API_KEY"

	// DefaultOpenRouterBaseURL is the default OpenRouter API endpoint.
	DefaultOpenRouterBaseURL = config.DefaultOpenRouterBaseURL

	// DefaultTimeout bounds a whole generate call.
	DefaultTimeout = config.DefaultOpenRouterTimeoutSeconds * time.Second

	// DefaultMaxTokens caps generated tokens.
	DefaultMaxTokens = config.DefaultOpenRouterMaxTokens

	// DefaultReferer and DefaultTitle identify the application to OpenRouter.
	DefaultReferer = config.DefaultOpenRouterReferer
	DefaultTitle   = config.DefaultOpenRouterTitle

	// charsPerToken is the fixed estimation ratio; the free tier exposes no tokenizer.
	charsPerToken = 4

	// maxErrorBodyBytes caps how much of an error body is read.
	maxErrorBodyBytes = 1 << 20

	completionsPath = "/chat/completions"
)

// Fixed user-facing messages for classified failures.
const (
	MsgRateLimited = "Rate limit exceeded. Free tier models have daily limits (50-1000 requests). Try again later or use a different free model."
	MsgTimeout     = "Request timed out. Free tier models may be under heavy load. Try again later."
	MsgNoResponse  = "No response from model"
)

// OpenRouterAdapter implements ModelProvider for OpenRouter free tier models.
// All fields are set at construction and read-only afterwards, so a single
// adapter is safe for concurrent use.
type OpenRouterAdapter struct {
	apiKey     string
	baseURL    string
	referer    string
	title      string
	maxTokens  int
	timeout    time.Duration
	aliases    map[string]string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option is a functional option for configuring OpenRouterAdapter.
type Option func(*OpenRouterAdapter)

// WithBaseURL sets a custom base URL for the OpenRouter API.
func WithBaseURL(url string) Option {
	return func(a *OpenRouterAdapter) {
		if url != "" {
			a.baseURL = strings.TrimSuffix(url, "/")
		}
	}
}

// WithHTTPClient sets a custom HTTP client. The call timeout still applies
// through the request context.
func WithHTTPClient(client *http.Client) Option {
	return func(a *OpenRouterAdapter) {
		if client != nil {
			a.httpClient = client
		}
	}
}

// WithTimeout sets the total time allowed for one generate call.
// Non-positive values are ignored; a call is never unbounded.
func WithTimeout(timeout time.Duration) Option {
	return func(a *OpenRouterAdapter) {
		if timeout > 0 {
			a.timeout = timeout
		}
	}
}

// WithMaxTokens overrides the max_tokens sent upstream.
func WithMaxTokens(n int) Option {
	return func(a *OpenRouterAdapter) {
		if n > 0 {
			a.maxTokens = n
		}
	}
}

// WithReferer sets the HTTP-Referer identification header.
func WithReferer(referer string) Option {
	return func(a *OpenRouterAdapter) {
		if referer != "" {
			a.referer = referer
		}
	}
}

// WithTitle sets the X-Title identification header.
func WithTitle(title string) Option {
	return func(a *OpenRouterAdapter) {
		if title != "" {
			a.title = title
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *OpenRouterAdapter) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithAliases adds or overrides alias table entries at construction.
// Aliases are case-insensitive; config loaders lowercase map keys.
func WithAliases(extra map[string]string) Option {
	return func(a *OpenRouterAdapter) {
		for alias, vendorID := range extra {
			a.aliases[strings.ToLower(alias)] = vendorID
		}
	}
}

// NewOpenRouterAdapter creates an adapter using the credential from
// OPENROUTER_API_KEY. It fails with a *domain.ConfigurationError when the
// variable is unset or empty.
func NewOpenRouterAdapter(opts ...Option) (*OpenRouterAdapter, error) {
	apiKey := strings.TrimSpace(os.Getenv(EnvAPIKey))
	if apiKey == "" {
		return nil, &domain.ConfigurationError{Key: EnvAPIKey}
	}

	a := &OpenRouterAdapter{
		apiKey:    apiKey,
		baseURL:   DefaultOpenRouterBaseURL,
		referer:   DefaultReferer,
		title:     DefaultTitle,
		maxTokens: DefaultMaxTokens,
		timeout:   DefaultTimeout,
		aliases:   DefaultAliases(),
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		opt(a)
	}

	if a.httpClient == nil {
		a.httpClient = &http.Client{Timeout: a.timeout}
	}

	return a, nil
}

// ProviderType returns the provider identifier.
func (a *OpenRouterAdapter) ProviderType() domain.ProviderType {
	return domain.ProviderOpenRouter
}

// SupportsModel reports whether modelName follows the free model naming convention.
func (a *OpenRouterAdapter) SupportsModel(modelName string) bool {
	return strings.HasSuffix(modelName, FreeModelSuffix)
}

// ResolveModel maps an alias to its vendor id (passing unknown names through)
// and ensures the free tier suffix is present exactly once.
func (a *OpenRouterAdapter) ResolveModel(modelName string) string {
	vendorID, ok := a.aliases[strings.ToLower(modelName)]
	if !ok {
		vendorID = modelName
	}
	return ensureFreeTier(vendorID)
}

// ListModels returns the alias table ordered by alias.
func (a *OpenRouterAdapter) ListModels() []domain.ModelAlias {
	return sortedAliases(a.aliases)
}

// CountTokens estimates tokens as characters divided by a fixed ratio.
func (a *OpenRouterAdapter) CountTokens(text string) int {
	return utf8.RuneCountInString(text) / charsPerToken
}

// GenerateResponse sends one chat completion request and classifies the outcome.
// It always returns a usable response; failures are reported via
// Metadata.ErrorKind.
func (a *OpenRouterAdapter) GenerateResponse(ctx context.Context, req domain.GenerateRequest) (resp domain.ModelResponse) {
	vendorID := a.ResolveModel(req.ModelName)

	defer func() {
		if r := recover(); r != nil {
			resp = a.failureResponse(vendorID, fmt.Errorf("panic: %v", r))
		}
	}()

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	a.logger.Debug("using openrouter model",
		slog.String("alias", req.ModelName),
		slog.String("model", vendorID),
	)

	body, err := json.Marshal(a.buildRequest(vendorID, req))
	if err != nil {
		return a.failureResponse(vendorID, fmt.Errorf("failed to marshal openrouter request: %w", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+completionsPath, bytes.NewReader(body))
	if err != nil {
		return a.failureResponse(vendorID, fmt.Errorf("failed to create http request: %w", err))
	}
	a.setHeaders(httpReq)

	httpResp, err := a.httpClient.Do(httpReq)
	if err != nil {
		return a.failureResponse(vendorID, err)
	}
	defer httpResp.Body.Close()

	return a.classify(httpResp, vendorID)
}

// buildRequest converts the canonical request into the OpenRouter body.
func (a *OpenRouterAdapter) buildRequest(vendorID string, req domain.GenerateRequest) chatRequest {
	return chatRequest{
		Model: vendorID,
		Messages: []chatMessage{
			{Role: "system", Content: req.SystemPrompt},
			{Role: "user", Content: req.UserPrompt},
		},
		Temperature: req.Temperature,
		MaxTokens:   a.maxTokens,
		TopP:        req.TopP,
		Stop:        req.Stop,
	}
}

func (a *OpenRouterAdapter) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.apiKey)
	req.Header.Set("HTTP-Referer", a.referer)
	req.Header.Set("X-Title", a.title)
}

// classify maps an HTTP response onto exactly one outcome.
func (a *OpenRouterAdapter) classify(httpResp *http.Response, vendorID string) domain.ModelResponse {
	status := httpResp.StatusCode

	if status == http.StatusTooManyRequests {
		// Drain so the connection can be reused; the body content is irrelevant.
		_, _ = io.Copy(io.Discard, io.LimitReader(httpResp.Body, maxErrorBodyBytes))

		a.logger.Warn("openrouter rate limit hit", slog.String("model", vendorID))
		return domain.ModelResponse{
			Content: MsgRateLimited,
			Metadata: domain.ResponseMetadata{
				Model:      vendorID,
				ErrorKind:  domain.ErrorKindRateLimit,
				StatusCode: status,
				RateLimit:  parseRateLimitHeaders(httpResp.Header, time.Now()),
			},
		}
	}

	if status < 200 || status >= 300 {
		raw, err := io.ReadAll(io.LimitReader(httpResp.Body, maxErrorBodyBytes))
		if err != nil {
			return a.failureResponse(vendorID, fmt.Errorf("failed to read openrouter error body: %w", err))
		}
		errorText := string(raw)

		a.logger.Error("openrouter api error",
			slog.Int("status", status),
			slog.String("model", vendorID),
			slog.String("body", errorText),
		)
		return domain.ModelResponse{
			Content: fmt.Sprintf("OpenRouter API error: %d", status),
			Metadata: domain.ResponseMetadata{
				Model:      vendorID,
				ErrorKind:  domain.ErrorKindHTTP,
				Error:      errorText,
				StatusCode: status,
			},
		}
	}

	var parsed chatResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&parsed); err != nil {
		return a.failureResponse(vendorID, fmt.Errorf("failed to decode openrouter response: %w", err))
	}

	if len(parsed.Choices) == 0 {
		return domain.ModelResponse{
			Content: MsgNoResponse,
			Metadata: domain.ResponseMetadata{
				Model:      vendorID,
				ErrorKind:  domain.ErrorKindEmptyResponse,
				StatusCode: status,
			},
		}
	}

	msg := parsed.Choices[0].Message
	return domain.ModelResponse{
		Content: msg.Content,
		Metadata: domain.ResponseMetadata{
			Model:           vendorID,
			Usage:           parsed.Usage,
			ThinkingContent: msg.thinking(),
			StatusCode:      status,
		},
	}
}

// failureResponse turns a transport-level error into a timeout or transport response.
func (a *OpenRouterAdapter) failureResponse(vendorID string, err error) domain.ModelResponse {
	if isTimeout(err) {
		a.logger.Warn("openrouter request timed out",
			slog.String("model", vendorID),
			slog.Duration("timeout", a.timeout),
		)
		return domain.ModelResponse{
			Content: MsgTimeout,
			Metadata: domain.ResponseMetadata{
				Model:     vendorID,
				ErrorKind: domain.ErrorKindTimeout,
				Error:     err.Error(),
			},
		}
	}

	a.logger.Error("openrouter request failed",
		slog.String("model", vendorID),
		slog.String("error", err.Error()),
	)
	return domain.ModelResponse{
		Content: "Error calling OpenRouter: " + err.Error(),
		Metadata: domain.ResponseMetadata{
			Model:     vendorID,
			ErrorKind: domain.ErrorKindTransport,
			Error:     err.Error(),
		},
	}
}

// isTimeout reports whether err was caused by a deadline rather than a
// refused connection or a cancelled caller.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

var (
	_ ModelProvider = (*OpenRouterAdapter)(nil)
	_ ModelLister   = (*OpenRouterAdapter)(nil)
)
