// Package handler provides HTTP handlers for the API router.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hpn/freetier-router/internal/adapter"
	"github.com/hpn/freetier-router/internal/domain"
)

const (
	// DefaultTemperature is used when a request omits temperature.
	DefaultTemperature = 0.7

	// HeaderErrorKind carries the response's error kind, if any.
	HeaderErrorKind = "X-Error-Kind"

	// Gin context keys read by LoggingMiddleware.
	ctxKeyModel     = "model"
	ctxKeyErrorKind = "error_kind"
)

// generateRequest is the wire shape of POST /v1/generate.
type generateRequest struct {
	Model        string   `json:"model" binding:"required"`
	SystemPrompt string   `json:"system_prompt"`
	Prompt       string   `json:"prompt" binding:"required"`
	Temperature  *float64 `json:"temperature" binding:"omitempty,gte=0,lte=2"`
	TopP         *float64 `json:"top_p" binding:"omitempty,gt=0,lte=1"`
	Stop         []string `json:"stop"`
}

func (r generateRequest) toDomain() domain.GenerateRequest {
	temperature := DefaultTemperature
	if r.Temperature != nil {
		temperature = *r.Temperature
	}
	return domain.GenerateRequest{
		ModelName:    r.Model,
		SystemPrompt: r.SystemPrompt,
		UserPrompt:   r.Prompt,
		Temperature:  temperature,
		TopP:         r.TopP,
		Stop:         r.Stop,
	}
}

type countTokensRequest struct {
	Text string `json:"text"`
}

// GenerateHandler exposes a ModelProvider over HTTP.
type GenerateHandler struct {
	provider adapter.ModelProvider
	logger   *slog.Logger
}

// GenerateHandlerOption is a functional option for configuring GenerateHandler.
type GenerateHandlerOption func(*GenerateHandler)

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) GenerateHandlerOption {
	return func(h *GenerateHandler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// NewGenerateHandler creates a new GenerateHandler.
func NewGenerateHandler(provider adapter.ModelProvider, opts ...GenerateHandlerOption) *GenerateHandler {
	h := &GenerateHandler{
		provider: provider,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// RegisterRoutes mounts the handler's endpoints on r.
func (h *GenerateHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.HandleHealth)

	v1 := r.Group("/v1")
	v1.POST("/generate", h.HandleGenerate)
	v1.GET("/models", h.HandleModels)
	v1.POST("/tokens/count", h.HandleCountTokens)
}

// HandleGenerate handles POST /v1/generate.
// Every outcome the provider classifies is returned as 200 with the error
// kind mirrored in the X-Error-Kind header; only bad input yields 400.
func (h *GenerateHandler) HandleGenerate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "invalid_request_error", "Invalid request body: "+err.Error())
		return
	}

	c.Set(ctxKeyModel, req.Model)

	if !h.provider.SupportsModel(req.Model) {
		sendError(c, http.StatusBadRequest, "model_not_supported",
			"Model '"+req.Model+"' is not served by the "+h.provider.ProviderType().String()+" provider")
		return
	}

	resp := h.provider.GenerateResponse(c.Request.Context(), req.toDomain())

	if resp.Metadata.Model != "" {
		c.Set(ctxKeyModel, resp.Metadata.Model)
	}
	if resp.Failed() {
		c.Set(ctxKeyErrorKind, string(resp.Metadata.ErrorKind))
		c.Header(HeaderErrorKind, string(resp.Metadata.ErrorKind))
		h.logger.Warn("generation failed",
			slog.String("model", resp.Metadata.Model),
			slog.String("error_kind", string(resp.Metadata.ErrorKind)),
		)
	}

	c.JSON(http.StatusOK, resp)
}

// HandleModels handles GET /v1/models.
// Returns the provider's alias table when it exposes one.
func (h *GenerateHandler) HandleModels(c *gin.Context) {
	data := make([]gin.H, 0)

	if lister, ok := h.provider.(adapter.ModelLister); ok {
		for _, m := range lister.ListModels() {
			data = append(data, gin.H{
				"id":        m.Alias,
				"object":    "model",
				"vendor_id": m.VendorID,
				"owned_by":  h.provider.ProviderType().String(),
			})
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"object": "list",
		"data":   data,
	})
}

// HandleCountTokens handles POST /v1/tokens/count.
func (h *GenerateHandler) HandleCountTokens(c *gin.Context) {
	var req countTokensRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "invalid_request_error", "Invalid request body: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"tokens": h.provider.CountTokens(req.Text)})
}

// HandleHealth handles GET /health.
func (h *GenerateHandler) HandleHealth(c *gin.Context) {
	models := 0
	if lister, ok := h.provider.(adapter.ModelLister); ok {
		models = len(lister.ListModels())
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"provider": h.provider.ProviderType().String(),
		"models":   models,
	})
}

// sendError sends an error response in OpenAI-compatible format.
func sendError(c *gin.Context, status int, errType, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"error": gin.H{
			"message": message,
			"type":    errType,
		},
	})
}
