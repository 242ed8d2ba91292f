package prompts

import "github.com/mark3labs/mcp-go/mcp"

const SlackMrkdwnName = "slack-mrkdwn"

func SlackMrkdwnPrompt() mcp.Prompt {
	return mcp.NewPrompt(
		SlackMrkdwnName,
		mcp.WithPromptDescription("How to format messages for post_slack_message using Slack mrkdwn instead of Markdown"),
	)
}
