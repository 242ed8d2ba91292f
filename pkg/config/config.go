package config

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// Mode selects how messages reach Slack.
type Mode string

const (
	ModeWebhook Mode = "webhook"
	ModeBot     Mode = "bot"
)

const (
	webhookHost       = "hooks.slack.com"
	webhookPathPrefix = "/services/"
	botTokenPrefix    = "xoxb-"
)

var channelIDPattern = regexp.MustCompile(`^[CD][A-Z0-9]{8,}$`)

var (
	ErrMissingWebhookURL = errors.New("--webhook-url is required for webhook mode")
	ErrInvalidWebhookURL = errors.New("invalid Slack webhook URL provided")
	ErrMissingBotToken   = errors.New("--bot-token is required for bot mode")
	ErrInvalidBotToken   = errors.New("invalid Slack bot token provided")
	ErrMissingChannel    = errors.New("--channel is required")
	ErrInvalidChannelID  = errors.New("invalid Slack channel ID provided for bot mode")
)

// Flags is the raw, unvalidated startup input.
type Flags struct {
	WebhookURL string
	BotToken   string
	Channel    string
	Username   string
	IconEmoji  string

	// BotTokenSet records that --bot-token was given, even with an empty
	// value, so that bot mode is still selected and reported as missing.
	BotTokenSet bool
}

// ServerConfig is the validated configuration. It is built once by Resolve
// and only read afterwards.
type ServerConfig struct {
	Mode       Mode
	WebhookURL string
	BotToken   string
	Channel    string
	Username   string
	IconEmoji  string
}

// Resolve validates f and returns the configuration for the selected mode.
// A bot token always selects bot mode; otherwise webhook mode is used.
func Resolve(f Flags) (*ServerConfig, error) {
	if f.BotToken != "" || f.BotTokenSet {
		return resolveBot(f)
	}
	return resolveWebhook(f)
}

func resolveWebhook(f Flags) (*ServerConfig, error) {
	if f.WebhookURL == "" {
		return nil, ErrMissingWebhookURL
	}
	if err := validateWebhookURL(f.WebhookURL); err != nil {
		return nil, err
	}
	if f.Channel == "" {
		return nil, fmt.Errorf("%w for webhook mode", ErrMissingChannel)
	}
	return &ServerConfig{
		Mode:       ModeWebhook,
		WebhookURL: f.WebhookURL,
		Channel:    f.Channel,
		Username:   f.Username,
		IconEmoji:  f.IconEmoji,
	}, nil
}

func resolveBot(f Flags) (*ServerConfig, error) {
	if f.BotToken == "" {
		return nil, ErrMissingBotToken
	}
	if !strings.HasPrefix(f.BotToken, botTokenPrefix) {
		return nil, fmt.Errorf("%w: must start with %q", ErrInvalidBotToken, botTokenPrefix)
	}
	if f.Channel == "" {
		return nil, fmt.Errorf("%w for bot mode", ErrMissingChannel)
	}
	if !channelIDPattern.MatchString(f.Channel) {
		return nil, fmt.Errorf("%w: channel ID should start with 'C' or 'D' (e.g., CXXXXXXXXXX)", ErrInvalidChannelID)
	}
	return &ServerConfig{
		Mode:      ModeBot,
		BotToken:  f.BotToken,
		Channel:   f.Channel,
		Username:  f.Username,
		IconEmoji: f.IconEmoji,
	}, nil
}

func validateWebhookURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidWebhookURL, err)
	}
	if u.Scheme != "https" && u.Scheme != "http" {
		return fmt.Errorf("%w: must be a valid URL", ErrInvalidWebhookURL)
	}
	if !strings.EqualFold(u.Hostname(), webhookHost) || !strings.HasPrefix(u.Path, webhookPathPrefix) {
		return fmt.Errorf("%w: must be a valid Slack webhook URL", ErrInvalidWebhookURL)
	}
	return nil
}
