package handlers

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/boqier/slack-mcp-server/prompts"
)

const mrkdwnGuide = `Messages sent with post_slack_message are rendered as Slack mrkdwn, not Markdown.
- Bold: *text* (single asterisks, never **text**)
- Italic: _text_
- Strikethrough: ~text~
- Inline code: ` + "`code`" + `
- Code block: ` + "```code```" + `
- Quote: >text at the start of a line
- Links: <https://example.com|label>
Keep messages under 4000 characters.`

// SlackMrkdwnPrompt reminds the model which formatting Slack understands.
func SlackMrkdwnPrompt() func(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	return func(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		return mcp.NewGetPromptResult(
			prompts.SlackMrkdwnName,
			[]mcp.PromptMessage{
				mcp.NewPromptMessage(
					mcp.RoleAssistant,
					mcp.NewTextContent(mrkdwnGuide),
				),
			},
		), nil
	}
}
