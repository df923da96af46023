// ABOUTME: MCP server subcommand
// ABOUTME: Starts the MCP server exposing the directory as tools and resources over stdio
package cli

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/harperreed/mobiledir/client"
	"github.com/harperreed/mobiledir/handlers"
)

// NewMCPServer registers the directory tools on a fresh server.
func NewMCPServer(dir *client.Client, version string) *mcp.Server {
	directoryHandlers := handlers.NewDirectoryHandlers(dir)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "mobiledir",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_states",
		Description: "List the states a number can be filed under",
	}, directoryHandlers.ListStates)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_number",
		Description: "Add a mobile number with its place, district and state, or as one free-text line",
	}, directoryHandlers.AddNumber)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_numbers",
		Description: "Search numbers by place, district or state. Leave every filter empty to list all numbers",
	}, directoryHandlers.SearchNumbers)

	destructive := true
	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_number",
		Description: "Delete a mobile number from the directory. Confirm with the user first and pass confirm=true",
		Annotations: &mcp.ToolAnnotations{DestructiveHint: &destructive},
	}, directoryHandlers.DeleteNumber)

	resourceHandlers := handlers.NewResourceHandlers(dir)
	server.AddResource(&mcp.Resource{
		URI:         handlers.StatesURI,
		Name:        "states",
		Description: "States a number can be filed under",
		MIMEType:    "application/json",
	}, resourceHandlers.ReadResource)
	server.AddResource(&mcp.Resource{
		URI:         handlers.NumbersURI,
		Name:        "numbers",
		Description: "Every number in the directory",
		MIMEType:    "application/json",
	}, resourceHandlers.ReadResource)

	return server
}

// MCPCommand starts the MCP server on stdio
func MCPCommand(dir *client.Client, logger *zap.Logger, version string) error {
	logger.Info("starting mcp server", zap.String("backend", dir.BaseURL()))

	server := NewMCPServer(dir, version)

	// Run server on stdio transport
	ctx := context.Background()
	return server.Run(ctx, &mcp.StdioTransport{})
}
