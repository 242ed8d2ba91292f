package slack

import "github.com/boqier/slack-mcp-server/pkg/config"

// WebhookPayload is the body sent to an incoming webhook.
type WebhookPayload struct {
	Text      string `json:"text"`
	Mrkdwn    bool   `json:"mrkdwn"`
	Channel   string `json:"channel,omitempty"`
	Username  string `json:"username,omitempty"`
	IconEmoji string `json:"icon_emoji,omitempty"`
}

// BotPayload is the body sent to chat.postMessage.
type BotPayload struct {
	Channel   string `json:"channel"`
	Text      string `json:"text"`
	Username  string `json:"username,omitempty"`
	IconEmoji string `json:"icon_emoji,omitempty"`
}

func newWebhookPayload(cfg *config.ServerConfig, text string) WebhookPayload {
	return WebhookPayload{
		Text:      text,
		Mrkdwn:    true,
		Channel:   cfg.Channel,
		Username:  cfg.Username,
		IconEmoji: cfg.IconEmoji,
	}
}

func newBotPayload(cfg *config.ServerConfig, text string) BotPayload {
	return BotPayload{
		Channel:   cfg.Channel,
		Text:      text,
		Username:  cfg.Username,
		IconEmoji: cfg.IconEmoji,
	}
}
