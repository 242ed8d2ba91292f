package main

import "github.com/boqier/slack-mcp-server/cmd"

func main() {
	cmd.Execute()
}
