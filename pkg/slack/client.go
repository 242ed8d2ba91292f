package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	slackgo "github.com/slack-go/slack"

	"github.com/boqier/slack-mcp-server/pkg/config"
)

const (
	// DefaultTimeout bounds every outbound request.
	DefaultTimeout = 10 * time.Second
	// PostMessageURL is the Web API method used in bot mode.
	PostMessageURL = "https://slack.com/api/chat.postMessage"

	maxResponseBody = 64 << 10
)

// Client posts messages to Slack using the webhook or the bot credential
// from the configuration it was built with. It holds no per-call state and
// is safe for concurrent use.
type Client struct {
	cfg        *config.ServerConfig
	httpClient *http.Client
	apiURL     string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithAPIURL overrides the chat.postMessage endpoint used in bot mode.
func WithAPIURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.apiURL = u
		}
	}
}

// New creates a Client bound to cfg.
func New(cfg *config.ServerConfig, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("slack client: %w", ErrNotConfigured)
	}
	c := &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		apiURL: PostMessageURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Mode returns the mode the client posts in.
func (c *Client) Mode() config.Mode {
	return c.cfg.Mode
}

// Post sends text to the configured channel.
func (c *Client) Post(ctx context.Context, text string) error {
	switch c.cfg.Mode {
	case config.ModeWebhook:
		return c.postWebhook(ctx, text)
	case config.ModeBot:
		return c.postBot(ctx, text)
	default:
		return fmt.Errorf("unknown mode %q: %w", c.cfg.Mode, ErrNotConfigured)
	}
}

func (c *Client) postWebhook(ctx context.Context, text string) error {
	if c.cfg.WebhookURL == "" {
		return fmt.Errorf("webhook URL %w", ErrNotConfigured)
	}

	code, body, err := c.do(ctx, config.ModeWebhook, c.cfg.WebhookURL, "", newWebhookPayload(c.cfg, text))
	if err != nil {
		return err
	}

	if code == http.StatusOK && string(body) == "ok" {
		return nil
	}
	detail := strings.TrimSpace(string(body))
	if detail == "" {
		detail = http.StatusText(code)
	}
	return &RequestError{Mode: config.ModeWebhook, Kind: KindResponse, StatusCode: code, Detail: detail}
}

func (c *Client) postBot(ctx context.Context, text string) error {
	if c.cfg.BotToken == "" {
		return fmt.Errorf("bot token %w", ErrNotConfigured)
	}
	if c.cfg.Channel == "" {
		return config.ErrMissingChannel
	}

	code, body, err := c.do(ctx, config.ModeBot, c.apiURL, c.cfg.BotToken, newBotPayload(c.cfg, text))
	if err != nil {
		return err
	}

	var resp slackgo.SlackResponse
	decodeErr := json.Unmarshal(body, &resp)
	if code == http.StatusOK && decodeErr == nil && resp.Ok {
		return nil
	}
	detail := resp.Error
	switch {
	case detail != "":
	case code == http.StatusOK:
		// A 200 without an error field is not a success either.
		detail = "unknown error"
	default:
		detail = http.StatusText(code)
	}
	return &RequestError{Mode: config.ModeBot, Kind: KindResponse, StatusCode: code, Detail: detail}
}

// do marshals payload, posts it to endpoint and returns the status code and the
// (size-limited) response body. Errors are always *RequestError.
func (c *Client) do(ctx context.Context, mode config.Mode, endpoint, token string, payload any) (int, []byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, &RequestError{Mode: mode, Kind: KindRequest, Err: fmt.Errorf("failed to marshal payload: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return 0, nil, &RequestError{Mode: mode, Kind: KindRequest, Err: fmt.Errorf("failed to create HTTP request: %w", stripURL(err))}
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, &RequestError{Mode: mode, Kind: KindNoResponse, Err: stripURL(err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		// Headers arrived but the body did not.
		return 0, nil, &RequestError{Mode: mode, Kind: KindNoResponse, Err: fmt.Errorf("failed to read response body: %w", err)}
	}
	return resp.StatusCode, body, nil
}

// stripURL drops the request URL from net/http errors. A webhook URL is a
// credential and must not end up in tool results or logs.
func stripURL(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		return ue.Err
	}
	return err
}
