package resources

import "github.com/mark3labs/mcp-go/mcp"

const DestinationURI = "slack://destination"

func DestinationResource() mcp.Resource {
	return mcp.NewResource(
		DestinationURI,
		"Slack destination",
		mcp.WithResourceDescription("Mode, channel and display overrides that post_slack_message uses. Credentials are not included."),
		mcp.WithMIMEType("application/json"),
	)
}
