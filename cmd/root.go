// Package cmd implements the slack-mcp-server command line.
package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/common/version"
	"github.com/spf13/cobra"

	"github.com/boqier/slack-mcp-server/pkg/config"
	"github.com/boqier/slack-mcp-server/pkg/mcpserver"
	"github.com/boqier/slack-mcp-server/pkg/metrics"
	"github.com/boqier/slack-mcp-server/pkg/slack"
)

const programName = "slack-mcp-server"

const longHelp = `MCP server that posts messages to one Slack channel.

Webhook Mode:
  --webhook-url <url>    Slack webhook URL (required for webhook mode)

Bot Mode:
  --bot-token <token>    Slack bot token (required for bot mode, starts with xoxb-)

Common Options:
  --channel <channel>    Channel to post to (required)
  --username <username>  Default bot username (optional)
  --icon-emoji <emoji>   Default bot emoji (optional, e.g. :robot_face:)`

const examples = `  # Webhook mode
  slack-mcp-server --webhook-url "https://hooks.slack.com/services/YOUR/SLACK/WEBHOOK" --channel "#general"

  # Bot mode
  slack-mcp-server --bot-token "xoxb-..." --channel "CXXXXXXXXXX"`

// Options are the flags that do not belong to the Slack configuration.
type Options struct {
	Transport   mcpserver.Transport
	HTTPAddr    string
	MetricsAddr string
	LogLevel    string
}

// RunFunc starts the server for a validated configuration.
type RunFunc func(ctx context.Context, cfg *config.ServerConfig, opts Options) error

// NewRootCommand builds the root command. run is called once the flags
// are validated.
func NewRootCommand(run RunFunc) *cobra.Command {
	var (
		flags     config.Flags
		opts      Options
		transport string
	)
	cmd := &cobra.Command{
		Use:           programName + " [options]",
		Short:         "MCP server that posts messages to a Slack channel",
		Long:          longHelp,
		Example:       examples,
		Args:          cobra.NoArgs,
		Version:       mcpserver.Version(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags.BotTokenSet = cmd.Flags().Changed("bot-token")
			cfg, err := config.Resolve(flags)
			if err != nil {
				return err
			}
			if opts.Transport, err = mcpserver.ParseTransport(transport); err != nil {
				return err
			}
			return run(cmd.Context(), cfg, opts)
		},
	}
	cmd.SetVersionTemplate(version.Print(programName) + "\n")

	fs := cmd.Flags()
	fs.StringVar(&flags.WebhookURL, "webhook-url", "", "Slack webhook URL (webhook mode)")
	fs.StringVar(&flags.BotToken, "bot-token", "", "Slack bot token, starts with xoxb- (bot mode)")
	fs.StringVar(&flags.Channel, "channel", "", "channel to post to (required; a channel ID in bot mode)")
	fs.StringVar(&flags.Username, "username", "", "display name override")
	fs.StringVar(&flags.IconEmoji, "icon-emoji", "", "emoji icon override, e.g. :robot_face:")
	fs.StringVar(&transport, "transport", string(mcpserver.TransportStdio), "MCP transport: stdio or http")
	fs.StringVar(&opts.HTTPAddr, "http-addr", "127.0.0.1:8483", "listen address for the http transport")
	fs.StringVar(&opts.MetricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address (disabled when empty)")
	fs.StringVar(&opts.LogLevel, "log-level", "info", "log level: debug, info, warn or error")
	fs.SortFlags = false

	return cmd
}

// Execute runs the command line and exits the process on error.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := NewRootCommand(Run).ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// Run starts the MCP server and blocks until ctx is done or the transport
// stops.
func Run(ctx context.Context, cfg *config.ServerConfig, opts Options) error {
	lg, err := newLogger(os.Stderr, opts.LogLevel)
	if err != nil {
		return err
	}

	client, err := slack.New(cfg)
	if err != nil {
		return err
	}
	rec := metrics.New()
	srv := mcpserver.New(cfg, client, rec, lg)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if opts.MetricsAddr != "" {
		go func() {
			lg.InfoContext(ctx, "serving metrics", "addr", opts.MetricsAddr)
			if err := rec.Serve(ctx, opts.MetricsAddr); err != nil {
				lg.ErrorContext(ctx, "metrics server stopped", "error", err)
			}
		}()
	}

	return srv.Serve(ctx, opts.Transport, opts.HTTPAddr)
}

// newLogger returns a text logger on w. Stdout is reserved for the stdio
// transport, so callers pass stderr.
func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", level, err)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}
