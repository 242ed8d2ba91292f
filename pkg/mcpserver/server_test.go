package mcpserver

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boqier/slack-mcp-server/pkg/config"
	"github.com/boqier/slack-mcp-server/pkg/metrics"
	"github.com/boqier/slack-mcp-server/pkg/slack"
)

// newTestClient wires a Server for cfg to an initialized in-process client.
func newTestClient(t *testing.T, cfg *config.ServerConfig, opts ...slack.Option) *client.Client {
	t.Helper()
	poster, err := slack.New(cfg, opts...)
	require.NoError(t, err)
	srv := New(cfg, poster, metrics.New(), slog.New(slog.NewTextHandler(io.Discard, nil)))

	c, err := client.NewInProcessClient(srv.MCP())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	ctx := t.Context()
	require.NoError(t, c.Start(ctx))
	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{Name: "test-client", Version: "1.0.0"}
	_, err = c.Initialize(ctx, initReq)
	require.NoError(t, err)
	return c
}

func callPost(ctx context.Context, c *client.Client, name string, args map[string]any) (*mcp.CallToolResult, error) {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return c.CallTool(ctx, req)
}

func TestServer_listTools(t *testing.T) {
	c := newTestClient(t, &config.ServerConfig{Mode: config.ModeBot, BotToken: "xoxb-1", Channel: "C12345678"})

	res, err := c.ListTools(t.Context(), mcp.ListToolsRequest{})
	require.NoError(t, err)
	require.Len(t, res.Tools, 1)
	tool := res.Tools[0]
	assert.Equal(t, "post_slack_message", tool.Name)
	assert.Contains(t, tool.Description, "bot mode")
	assert.Equal(t, []string{"message"}, tool.InputSchema.Required)
	assert.Contains(t, tool.InputSchema.Properties, "message")
}

func TestServer_callTool(t *testing.T) {
	stub := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "ok")
	}))
	t.Cleanup(stub.Close)

	c := newTestClient(t, &config.ServerConfig{
		Mode:       config.ModeWebhook,
		WebhookURL: stub.URL + "/services/T/B/X",
		Channel:    "#general",
	})

	res, err := callPost(t.Context(), c, "post_slack_message", map[string]any{"message": "hello"})
	require.NoError(t, err)
	assert.False(t, res.IsError)
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	assert.Equal(t, "Message posted to Slack successfully via webhook!", text.Text)
}

func TestServer_callTool_errorIsResult(t *testing.T) {
	stub := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"ok":false,"error":"not_authed"}`)
	}))
	t.Cleanup(stub.Close)

	c := newTestClient(t,
		&config.ServerConfig{Mode: config.ModeBot, BotToken: "xoxb-1", Channel: "C12345678"},
		slack.WithAPIURL(stub.URL))

	res, err := callPost(t.Context(), c, "post_slack_message", map[string]any{"message": "hello"})
	require.NoError(t, err)
	assert.True(t, res.IsError)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	assert.Contains(t, text.Text, "not_authed")

	// The server keeps serving after a failed call.
	res, err = callPost(t.Context(), c, "post_slack_message", map[string]any{"message": ""})
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestServer_unknownTool(t *testing.T) {
	c := newTestClient(t, &config.ServerConfig{Mode: config.ModeBot, BotToken: "xoxb-1", Channel: "C12345678"})

	_, err := callPost(t.Context(), c, "delete_slack_message", map[string]any{"message": "hello"})
	assert.Error(t, err)
}

func TestServer_promptAndResource(t *testing.T) {
	c := newTestClient(t, &config.ServerConfig{Mode: config.ModeBot, BotToken: "xoxb-1", Channel: "C12345678"})

	prompts, err := c.ListPrompts(t.Context(), mcp.ListPromptsRequest{})
	require.NoError(t, err)
	require.Len(t, prompts.Prompts, 1)
	assert.Equal(t, "slack-mrkdwn", prompts.Prompts[0].Name)

	req := mcp.ReadResourceRequest{}
	req.Params.URI = "slack://destination"
	res, err := c.ReadResource(t.Context(), req)
	require.NoError(t, err)
	require.Len(t, res.Contents, 1)
	text, ok := res.Contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	assert.JSONEq(t, `{"mode":"bot","channel":"C12345678"}`, text.Text)
}

func TestParseTransport(t *testing.T) {
	for _, s := range []string{"stdio", "http"} {
		got, err := ParseTransport(s)
		require.NoError(t, err)
		assert.Equal(t, Transport(s), got)
	}
	_, err := ParseTransport("sse")
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	assert.NotEmpty(t, Version())
}
