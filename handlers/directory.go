// ABOUTME: Directory MCP tool handlers
// ABOUTME: Implements list_states, add_number, search_numbers and delete_number tools
package handlers

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/mobiledir/client"
	"github.com/harperreed/mobiledir/compose"
	"github.com/harperreed/mobiledir/models"
)

type DirectoryHandlers struct {
	dir *client.Client
}

func NewDirectoryHandlers(dir *client.Client) *DirectoryHandlers {
	return &DirectoryHandlers{dir: dir}
}

type ListStatesInput struct{}

type StatesOutput struct {
	States []string `json:"states"`
}

type AddNumberInput struct {
	Number   string `json:"number,omitempty" jsonschema:"10-digit mobile number starting with 6-9"`
	Place    string `json:"place,omitempty" jsonschema:"Place, e.g. Gandhipuram"`
	District string `json:"district,omitempty" jsonschema:"District, e.g. Coimbatore"`
	State    string `json:"state,omitempty" jsonschema:"State, one of list_states"`
	Text     string `json:"text,omitempty" jsonschema:"Number and place in one line, parsed by the backend. Use instead of the other fields"`
}

type ContactOutput struct {
	Number    string `json:"number"`
	Place     string `json:"place"`
	District  string `json:"district"`
	State     string `json:"state"`
	CreatedAt string `json:"created_at,omitempty"`
}

type AddNumberOutput struct {
	Message string         `json:"message"`
	Entry   *ContactOutput `json:"entry,omitempty"`
}

type SearchNumbersInput struct {
	Place    string `json:"place,omitempty" jsonschema:"Filter by place (case-insensitive exact match)"`
	District string `json:"district,omitempty" jsonschema:"Filter by district"`
	State    string `json:"state,omitempty" jsonschema:"Filter by state"`
}

type SearchNumbersOutput struct {
	Query    string          `json:"query"`
	Contacts []ContactOutput `json:"contacts"`
	Message  string          `json:"message,omitempty"`
}

type DeleteNumberInput struct {
	Number  string `json:"number" jsonschema:"The number to delete, exactly as stored"`
	Confirm bool   `json:"confirm" jsonschema:"Must be true. Ask the user before deleting; this cannot be undone"`
}

// ErrDeleteNotConfirmed is returned when delete_number is called without confirm.
var ErrDeleteNotConfirmed = errors.New("delete not confirmed: ask the user, then call again with confirm set to true")

// ErrTextWithFields is returned when add_number gets free text and fields together.
var ErrTextWithFields = errors.New("text cannot be combined with number, place, district or state")

type DeleteNumberOutput struct {
	Number  string `json:"number"`
	Message string `json:"message"`
}

func (h *DirectoryHandlers) ListStates(ctx context.Context, _ *mcp.CallToolRequest, _ ListStatesInput) (*mcp.CallToolResult, StatesOutput, error) {
	return nil, StatesOutput{States: h.dir.States(ctx)}, nil
}

func (h *DirectoryHandlers) AddNumber(ctx context.Context, _ *mcp.CallToolRequest, input AddNumberInput) (*mcp.CallToolResult, AddNumberOutput, error) {
	var (
		req models.AddRequest
		err error
	)
	if strings.TrimSpace(input.Text) != "" {
		if input.Number != "" || input.Place != "" || input.District != "" || input.State != "" {
			return nil, AddNumberOutput{}, ErrTextWithFields
		}
		req, err = compose.FreeText(input.Text)
	} else {
		req, err = compose.Entry(input.Number, input.Place, input.District, input.State)
	}
	if err != nil {
		return nil, AddNumberOutput{}, err
	}

	result, err := h.dir.Add(ctx, req)
	if err != nil {
		return nil, AddNumberOutput{}, errors.New(client.UserMessage(err, models.MsgAddFailed))
	}

	out := AddNumberOutput{Message: models.MsgAdded}
	if result.Entry != nil {
		entry := contactToOutput(*result.Entry)
		out.Entry = &entry
	}
	return nil, out, nil
}

func (h *DirectoryHandlers) SearchNumbers(ctx context.Context, _ *mcp.CallToolRequest, input SearchNumbersInput) (*mcp.CallToolResult, SearchNumbersOutput, error) {
	filter := models.SearchFilter{Place: input.Place, District: input.District, State: input.State}

	contacts, err := h.dir.Search(ctx, filter)
	if err != nil {
		return nil, SearchNumbersOutput{}, errors.New(client.UserMessage(err, models.MsgSearchFailed))
	}

	out := SearchNumbersOutput{Query: compose.Query(filter), Contacts: make([]ContactOutput, 0, len(contacts))}
	for _, c := range contacts {
		out.Contacts = append(out.Contacts, contactToOutput(c))
	}
	if len(contacts) == 0 {
		out.Message = models.MsgNoResults
	}
	return nil, out, nil
}

func (h *DirectoryHandlers) DeleteNumber(ctx context.Context, _ *mcp.CallToolRequest, input DeleteNumberInput) (*mcp.CallToolResult, DeleteNumberOutput, error) {
	if input.Number == "" {
		return nil, DeleteNumberOutput{}, errors.New("number is required")
	}
	if !input.Confirm {
		return nil, DeleteNumberOutput{}, ErrDeleteNotConfirmed
	}

	if err := h.dir.Delete(ctx, input.Number); err != nil {
		return nil, DeleteNumberOutput{}, errors.New(client.UserMessage(err, models.MsgDeleteFailed))
	}

	return nil, DeleteNumberOutput{Number: input.Number, Message: models.MsgDeleted}, nil
}

func contactToOutput(c models.Contact) ContactOutput {
	out := ContactOutput{
		Number:   c.Number,
		Place:    c.Place,
		District: c.District,
		State:    c.State,
	}
	if c.CreatedAt != nil && !c.CreatedAt.IsZero() {
		out.CreatedAt = c.CreatedAt.Format(time.RFC3339)
	}
	return out
}
