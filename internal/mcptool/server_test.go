package mcptool

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/hpn/freetier-router/internal/domain"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	mu       sync.Mutex
	response domain.ModelResponse
	lastReq  *domain.GenerateRequest
}

func (p *fakeProvider) ProviderType() domain.ProviderType { return domain.ProviderOpenRouter }

func (p *fakeProvider) SupportsModel(name string) bool { return strings.HasSuffix(name, "-free") }

func (p *fakeProvider) GenerateResponse(_ context.Context, req domain.GenerateRequest) domain.ModelResponse {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lastReq = &req
	return p.response
}

func (p *fakeProvider) CountTokens(text string) int { return len(text) / 4 }

func (p *fakeProvider) ListModels() []domain.ModelAlias {
	return []domain.ModelAlias{{Alias: "qwq-32b-free", VendorID: "qwen/qwq-32b:free"}}
}

func (p *fakeProvider) last() *domain.GenerateRequest {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastReq
}

// setupTestClient connects an SDK client to a Server via in-memory transports.
func setupTestClient(t *testing.T, p *fakeProvider) *mcp.ClientSession {
	t.Helper()

	s := New("freetier-router-test", "1.0.0", p, slog.New(slog.NewTextHandler(io.Discard, nil)))

	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	serverDone := make(chan error, 1)
	go func() {
		serverDone <- s.run(ctx, serverTransport)
	}()
	t.Cleanup(func() {
		cancel()
		<-serverDone
	})

	client := mcp.NewClient(&mcp.Implementation{
		Name:    "test-client",
		Version: "1.0.0",
	}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })

	return session
}

func callText(t *testing.T, session *mcp.ClientSession, name string, args map[string]any) (string, bool) {
	t.Helper()

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	require.NoError(t, err)
	require.Len(t, result.Content, 1)

	tc, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	return tc.Text, result.IsError
}

func TestListTools(t *testing.T) {
	session := setupTestClient(t, &fakeProvider{})

	result, err := session.ListTools(context.Background(), nil)
	require.NoError(t, err)

	names := make([]string, 0, len(result.Tools))
	for _, tool := range result.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{ToolChat, ToolListModels, ToolCountTokens}, names)
}

func TestChat_Success(t *testing.T) {
	p := &fakeProvider{response: domain.ModelResponse{
		Content:  "Hello!",
		Metadata: domain.ResponseMetadata{Model: "qwen/qwq-32b:free"},
	}}
	session := setupTestClient(t, p)

	text, isErr := callText(t, session, ToolChat, map[string]any{
		"model":         "qwq-32b-free",
		"prompt":        "hi",
		"system_prompt": "be brief",
		"temperature":   0.2,
	})

	assert.False(t, isErr)
	assert.Equal(t, "Hello!", text)

	req := p.last()
	require.NotNil(t, req)
	assert.Equal(t, "qwq-32b-free", req.ModelName)
	assert.Equal(t, "hi", req.UserPrompt)
	assert.Equal(t, "be brief", req.SystemPrompt)
	assert.Equal(t, 0.2, req.Temperature)
}

func TestChat_DefaultTemperature(t *testing.T) {
	p := &fakeProvider{response: domain.ModelResponse{Content: "ok"}}
	session := setupTestClient(t, p)

	_, isErr := callText(t, session, ToolChat, map[string]any{"model": "qwq-32b-free", "prompt": "hi"})

	assert.False(t, isErr)
	require.NotNil(t, p.last())
	assert.Equal(t, DefaultTemperature, p.last().Temperature)
}

func TestChat_ErrorKindBecomesToolError(t *testing.T) {
	p := &fakeProvider{response: domain.ModelResponse{
		Content:  "Rate limit exceeded.",
		Metadata: domain.ResponseMetadata{Model: "qwen/qwq-32b:free", ErrorKind: domain.ErrorKindRateLimit},
	}}
	session := setupTestClient(t, p)

	text, isErr := callText(t, session, ToolChat, map[string]any{"model": "qwq-32b-free", "prompt": "hi"})

	assert.True(t, isErr)
	assert.Equal(t, "Rate limit exceeded.", text)
}

func TestChat_UnsupportedModel(t *testing.T) {
	p := &fakeProvider{}
	session := setupTestClient(t, p)

	text, isErr := callText(t, session, ToolChat, map[string]any{"model": "gpt-4", "prompt": "hi"})

	assert.True(t, isErr)
	assert.Contains(t, text, "not supported")
	assert.Nil(t, p.last(), "provider must not be called")
}

func TestListModelsTool(t *testing.T) {
	session := setupTestClient(t, &fakeProvider{})

	text, isErr := callText(t, session, ToolListModels, map[string]any{})
	require.False(t, isErr)

	var models []domain.ModelAlias
	require.NoError(t, json.Unmarshal([]byte(text), &models))
	assert.Equal(t, []domain.ModelAlias{{Alias: "qwq-32b-free", VendorID: "qwen/qwq-32b:free"}}, models)
}

func TestCountTokensTool(t *testing.T) {
	session := setupTestClient(t, &fakeProvider{})

	text, isErr := callText(t, session, ToolCountTokens, map[string]any{"text": "aaaaaaaaaaaa"})

	assert.False(t, isErr)
	assert.Equal(t, "3", text)
}

func TestDecodeArgs(t *testing.T) {
	var args chatArgs

	req := &mcp.CallToolRequest{Params: &mcp.CallToolParamsRaw{}}
	require.NoError(t, decodeArgs(req, &args))

	req.Params.Arguments = json.RawMessage(`null`)
	require.NoError(t, decodeArgs(req, &args))

	req.Params.Arguments = json.RawMessage(`{"model":1}`)
	assert.Error(t, decodeArgs(req, &args))
}
