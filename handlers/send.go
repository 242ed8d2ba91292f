package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/boqier/slack-mcp-server/pkg/config"
	"github.com/boqier/slack-mcp-server/pkg/metrics"
	"github.com/boqier/slack-mcp-server/pkg/slack"
	"github.com/boqier/slack-mcp-server/tools"
)

// Poster delivers a message to Slack in a fixed mode.
type Poster interface {
	Post(ctx context.Context, text string) error
	Mode() config.Mode
}

var (
	errMessageRequired = errors.New("message is required and must be a string")
	errMessageTooLong  = fmt.Errorf("message is too long (max %d characters)", tools.MaxMessageLength)
)

// PostSlackMessage handles post_slack_message. Every failure is reported as
// an error result; the returned Go error is always nil.
func PostSlackMessage(poster Poster, rec *metrics.Recorder, lg *slog.Logger) func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if lg == nil {
		lg = slog.Default()
	}
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		mode := string(poster.Mode())

		message, err := messageArg(request)
		if err != nil {
			rec.Count(mode, metrics.OutcomeInvalidInput)
			lg.DebugContext(ctx, "rejected message", "mode", mode, "error", err)
			return mcp.NewToolResultError(err.Error()), nil
		}

		lg.DebugContext(ctx, "posting message", "mode", mode, "length", utf8.RuneCountInString(message))
		start := time.Now()
		err = poster.Post(ctx, message)
		rec.ObserveDuration(mode, time.Since(start))
		if err != nil {
			outcome := outcomeOf(err)
			rec.Count(mode, outcome)
			lg.WarnContext(ctx, "failed to post message", "mode", mode, "outcome", outcome, "error", err)
			return mcp.NewToolResultError(fmt.Sprintf("Failed to post message to Slack: %s", err)), nil
		}

		rec.Count(mode, metrics.OutcomeSuccess)
		return mcp.NewToolResultText(fmt.Sprintf("Message posted to Slack successfully via %s!", mode)), nil
	}
}

// messageArg returns the message argument, or an error when it is missing,
// not a string, empty or longer than MaxMessageLength characters.
func messageArg(request mcp.CallToolRequest) (string, error) {
	v, ok := request.GetArguments()[tools.MessageArg]
	if !ok {
		return "", errMessageRequired
	}
	message, ok := v.(string)
	if !ok || message == "" {
		return "", errMessageRequired
	}
	if utf8.RuneCountInString(message) > tools.MaxMessageLength {
		return "", errMessageTooLong
	}
	return message, nil
}

func outcomeOf(err error) string {
	var re *slack.RequestError
	switch {
	case errors.As(err, &re):
		switch re.Kind {
		case slack.KindNoResponse:
			return metrics.OutcomeNoResponse
		case slack.KindResponse:
			return metrics.OutcomeResponse
		default:
			return metrics.OutcomeRequest
		}
	case errors.Is(err, slack.ErrNotConfigured), errors.Is(err, config.ErrMissingChannel):
		return metrics.OutcomeNotConfigured
	}
	return metrics.OutcomeRequest
}
