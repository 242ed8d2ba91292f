package handlers

import (
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlackMrkdwnPrompt(t *testing.T) {
	result, err := SlackMrkdwnPrompt()(t.Context(), mcp.GetPromptRequest{})
	require.NoError(t, err)
	require.Len(t, result.Messages, 1)

	text, ok := result.Messages[0].Content.(mcp.TextContent)
	require.True(t, ok)
	assert.Contains(t, text.Text, "*text* (single asterisks")
	assert.Contains(t, text.Text, "4000")
}
