// Package mcptool exposes a ModelProvider as Model Context Protocol tools,
// so MCP clients can call free models over stdio.
package mcptool

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/hpn/freetier-router/internal/adapter"
	"github.com/hpn/freetier-router/internal/domain"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Tool names.
const (
	ToolChat        = "chat"
	ToolListModels  = "list_models"
	ToolCountTokens = "count_tokens"
)

// DefaultTemperature is used when a chat call omits temperature.
const DefaultTemperature = 0.7

var (
	chatSchema = json.RawMessage(`{
  "type": "object",
  "properties": {
    "model": {"type": "string", "description": "Model alias or vendor id ending in -free"},
    "prompt": {"type": "string", "description": "User prompt"},
    "system_prompt": {"type": "string", "description": "Optional system prompt"},
    "temperature": {"type": "number", "minimum": 0, "maximum": 2}
  },
  "required": ["model", "prompt"]
}`)

	listModelsSchema = json.RawMessage(`{"type":"object","properties":{}}`)

	countTokensSchema = json.RawMessage(`{
  "type": "object",
  "properties": {"text": {"type": "string"}},
  "required": ["text"]
}`)
)

type chatArgs struct {
	Model        string   `json:"model"`
	Prompt       string   `json:"prompt"`
	SystemPrompt string   `json:"system_prompt"`
	Temperature  *float64 `json:"temperature"`
}

type countTokensArgs struct {
	Text string `json:"text"`
}

// Server serves the provider's operations over MCP using the official Go SDK.
type Server struct {
	server   *mcp.Server
	provider adapter.ModelProvider
	logger   *slog.Logger
}

// New creates a Server named name/version with all tools registered.
func New(name, version string, provider adapter.ModelProvider, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		server: mcp.NewServer(&mcp.Implementation{
			Name:    name,
			Version: version,
		}, nil),
		provider: provider,
		logger:   logger,
	}

	s.server.AddTool(&mcp.Tool{
		Name:        ToolChat,
		Description: "Send one prompt to an OpenRouter free-tier model. Failures are reported as tool errors carrying a readable message.",
		InputSchema: chatSchema,
	}, s.handleChat)

	s.server.AddTool(&mcp.Tool{
		Name:        ToolListModels,
		Description: "List the model aliases and the vendor ids they resolve to.",
		InputSchema: listModelsSchema,
	}, s.handleListModels)

	s.server.AddTool(&mcp.Tool{
		Name:        ToolCountTokens,
		Description: "Estimate the token count of a text (characters / 4).",
		InputSchema: countTokensSchema,
	}, s.handleCountTokens)

	return s
}

// Serve reads requests from in and writes responses to out until ctx is
// cancelled or the transport closes.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	transport := &mcp.IOTransport{
		Reader: io.NopCloser(in),
		Writer: nopWriteCloser{out},
	}
	return s.run(ctx, transport)
}

func (s *Server) run(ctx context.Context, transport mcp.Transport) error {
	return s.server.Run(ctx, transport)
}

func (s *Server) handleChat(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args chatArgs
	if err := decodeArgs(req, &args); err != nil {
		return errorResult(err.Error()), nil
	}

	switch {
	case args.Model == "":
		return errorResult("model is required"), nil
	case args.Prompt == "":
		return errorResult("prompt is required"), nil
	case !s.provider.SupportsModel(args.Model):
		return errorResult(fmt.Sprintf("model %q is not supported: free models end in %q", args.Model, adapter.FreeModelSuffix)), nil
	}

	temperature := DefaultTemperature
	if args.Temperature != nil {
		temperature = *args.Temperature
	}

	resp := s.provider.GenerateResponse(ctx, domain.GenerateRequest{
		ModelName:    args.Model,
		SystemPrompt: args.SystemPrompt,
		UserPrompt:   args.Prompt,
		Temperature:  temperature,
	})

	s.logger.Info("mcp chat completed",
		slog.String("model", resp.Metadata.Model),
		slog.String("error_kind", string(resp.Metadata.ErrorKind)),
	)

	if resp.Failed() {
		return errorResult(resp.Content), nil
	}
	return textResult(resp.Content), nil
}

func (s *Server) handleListModels(_ context.Context, _ *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	lister, ok := s.provider.(adapter.ModelLister)
	if !ok {
		return textResult("[]"), nil
	}

	raw, err := json.Marshal(lister.ListModels())
	if err != nil {
		return errorResult(err.Error()), nil
	}
	return textResult(string(raw)), nil
}

func (s *Server) handleCountTokens(_ context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args countTokensArgs
	if err := decodeArgs(req, &args); err != nil {
		return errorResult(err.Error()), nil
	}
	return textResult(fmt.Sprintf("%d", s.provider.CountTokens(args.Text))), nil
}

// decodeArgs unmarshals tool arguments; absent arguments decode as {}.
func decodeArgs(req *mcp.CallToolRequest, dst any) error {
	raw := req.Params.Arguments
	if len(raw) == 0 || strings.TrimSpace(string(raw)) == "null" {
		raw = json.RawMessage("{}")
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}
}

// nopWriteCloser wraps an io.Writer as an io.WriteCloser with a no-op Close.
type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
