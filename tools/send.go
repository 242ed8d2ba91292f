package tools

import (
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/boqier/slack-mcp-server/pkg/config"
)

const (
	PostSlackMessageName = "post_slack_message"
	MessageArg           = "message"
	MaxMessageLength     = 4000
)

const messageDescription = "The message content to send (max 4000 characters). " +
	"Supports Slack mrkdwn formatting: *bold*, `code`, ~strikethrough~, ```code blocks```, and >quotes. " +
	"Note: Use single asterisks (*) for bold, not double (**) like standard Markdown."

func PostSlackMessageTool(mode config.Mode) mcp.Tool {
	return mcp.NewTool(
		PostSlackMessageName,
		mcp.WithDescription(fmt.Sprintf("Post a message to the configured Slack channel only (%s mode)", mode)),
		mcp.WithString(MessageArg,
			mcp.Required(),
			mcp.MaxLength(MaxMessageLength),
			mcp.Description(messageDescription),
		),
		mcp.WithSchemaAdditionalProperties(false),
	)
}
