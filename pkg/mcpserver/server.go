package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/common/version"

	"github.com/boqier/slack-mcp-server/handlers"
	"github.com/boqier/slack-mcp-server/pkg/config"
	"github.com/boqier/slack-mcp-server/pkg/metrics"
	"github.com/boqier/slack-mcp-server/prompts"
	"github.com/boqier/slack-mcp-server/resources"
	"github.com/boqier/slack-mcp-server/tools"
)

const serverName = "slack-mcp-server"

// Transport selects how the server talks to its MCP client.
type Transport string

const (
	TransportStdio Transport = "stdio"
	TransportHTTP  Transport = "http"
)

// ParseTransport validates a --transport value.
func ParseTransport(s string) (Transport, error) {
	switch t := Transport(s); t {
	case TransportStdio, TransportHTTP:
		return t, nil
	}
	return "", fmt.Errorf("unknown transport %q (want %q or %q)", s, TransportStdio, TransportHTTP)
}

// Server is the MCP server exposing post_slack_message.
type Server struct {
	mcp    *server.MCPServer
	mode   config.Mode
	logger *slog.Logger
}

// New registers the tool, prompt and resource on a fresh MCP server.
func New(cfg *config.ServerConfig, poster handlers.Poster, rec *metrics.Recorder, lg *slog.Logger) *Server {
	if lg == nil {
		lg = slog.Default()
	}
	s := server.NewMCPServer(
		serverName,
		Version(),
		server.WithToolCapabilities(false),
		server.WithPromptCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)
	s.AddTool(tools.PostSlackMessageTool(cfg.Mode), handlers.PostSlackMessage(poster, rec, lg))
	s.AddPrompt(prompts.SlackMrkdwnPrompt(), handlers.SlackMrkdwnPrompt())
	s.AddResource(resources.DestinationResource(), handlers.GetDestination(cfg))

	return &Server{mcp: s, mode: cfg.Mode, logger: lg}
}

// MCP returns the underlying server.
func (s *Server) MCP() *server.MCPServer {
	return s.mcp
}

// Version is the build version reported to clients.
func Version() string {
	if version.Version == "" {
		return "dev"
	}
	return version.Version
}

// ServeStdio serves over stdin/stdout until ctx is cancelled or the client
// closes stdin.
func (s *Server) ServeStdio(ctx context.Context) error {
	srv := server.NewStdioServer(s.mcp)
	s.logger.InfoContext(ctx, "Slack MCP server running on stdio", "mode", s.mode)
	if err := srv.Listen(ctx, os.Stdin, os.Stdout); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
			return nil
		}
		return fmt.Errorf("mcp stdio server error: %w", err)
	}
	return nil
}

// ServeHTTP serves the Streamable HTTP transport on addr until ctx is
// cancelled.
func (s *Server) ServeHTTP(ctx context.Context, addr string) error {
	httpSrv := &http.Server{Addr: addr}
	streamSrv := server.NewStreamableHTTPServer(s.mcp,
		server.WithStreamableHTTPServer(httpSrv),
	)

	s.logger.InfoContext(ctx, "Slack MCP server listening on http", "addr", addr, "mode", s.mode)

	errCh := make(chan error, 1)
	go func() {
		if err := streamSrv.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("mcp http server error: %w", err)
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		s.logger.InfoContext(ctx, "mcp server shutting down")
		if err := streamSrv.Shutdown(context.Background()); err != nil {
			return fmt.Errorf("mcp http server shutdown error: %w", err)
		}
		return nil
	case err := <-errCh:
		return err
	}
}

// Serve dispatches to the transport t.
func (s *Server) Serve(ctx context.Context, t Transport, addr string) error {
	switch t {
	case TransportHTTP:
		return s.ServeHTTP(ctx, addr)
	default:
		return s.ServeStdio(ctx)
	}
}
