// ABOUTME: MCP resource handlers for exposing directory data
// ABOUTME: Provides read-only access to states and numbers via URI
package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/mobiledir/client"
	"github.com/harperreed/mobiledir/models"
)

const (
	StatesURI  = "directory://states"
	NumbersURI = "directory://numbers"
)

type ResourceHandlers struct {
	dir *client.Client
}

func NewResourceHandlers(dir *client.Client) *ResourceHandlers {
	return &ResourceHandlers{dir: dir}
}

// ReadResource handles resource read requests
func (h *ResourceHandlers) ReadResource(ctx context.Context, request *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	uri := request.Params.URI
	if !strings.HasPrefix(uri, "directory://") {
		return nil, fmt.Errorf("invalid URI scheme: expected directory://")
	}

	switch strings.TrimPrefix(uri, "directory://") {
	case "states":
		return jsonResource(StatesURI, h.dir.States(ctx))

	case "numbers":
		contacts, err := h.dir.Search(ctx, models.SearchFilter{})
		if err != nil {
			return nil, fmt.Errorf("failed to fetch numbers: %s", client.UserMessage(err, models.MsgSearchFailed))
		}
		out := make([]ContactOutput, 0, len(contacts))
		for _, c := range contacts {
			out = append(out, contactToOutput(c))
		}
		return jsonResource(NumbersURI, out)

	default:
		return nil, fmt.Errorf("unknown resource: %s", uri)
	}
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{Contents: []*mcp.ResourceContents{
		{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}}, nil
}
