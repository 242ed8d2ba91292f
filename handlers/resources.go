package handlers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/boqier/slack-mcp-server/pkg/config"
	"github.com/boqier/slack-mcp-server/resources"
)

// destination is the public part of the configuration.
type destination struct {
	Mode      config.Mode `json:"mode"`
	Channel   string      `json:"channel"`
	Username  string      `json:"username,omitempty"`
	IconEmoji string      `json:"icon_emoji,omitempty"`
}

func GetDestination(cfg *config.ServerConfig) func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		content, err := json.Marshal(destination{
			Mode:      cfg.Mode,
			Channel:   cfg.Channel,
			Username:  cfg.Username,
			IconEmoji: cfg.IconEmoji,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to serialize destination: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      resources.DestinationURI,
				MIMEType: "application/json",
				Text:     string(content),
			},
		}, nil
	}
}
