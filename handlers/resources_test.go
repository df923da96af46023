package handlers

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/mobiledir/backendtest"
	"github.com/harperreed/mobiledir/client"
	"github.com/harperreed/mobiledir/models"
)

func readResource(t *testing.T, h *ResourceHandlers, uri string) (*mcp.ReadResourceResult, error) {
	t.Helper()
	return h.ReadResource(context.Background(), &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{URI: uri},
	})
}

func TestReadStatesResource(t *testing.T) {
	srv := backendtest.New(t)
	srv.SetStates([]string{"Goa", "Kerala"})
	h := NewResourceHandlers(client.New(srv.URL))

	result, err := readResource(t, h, StatesURI)
	require.NoError(t, err)
	require.Len(t, result.Contents, 1)
	assert.Equal(t, "application/json", result.Contents[0].MIMEType)

	var states []string
	require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &states))
	assert.Equal(t, []string{"Goa", "Kerala"}, states)
}

func TestReadNumbersResource(t *testing.T) {
	srv := backendtest.New(t,
		models.Contact{Number: "9876543210", Place: "Gandhipuram", District: "Coimbatore", State: "Tamil Nadu"},
	)
	h := NewResourceHandlers(client.New(srv.URL))

	result, err := readResource(t, h, NumbersURI)
	require.NoError(t, err)

	var contacts []ContactOutput
	require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &contacts))
	require.Len(t, contacts, 1)
	assert.Equal(t, "9876543210", contacts[0].Number)
	assert.Equal(t, []string{""}, srv.Queries())
}

func TestReadResourceRejectsUnknownURI(t *testing.T) {
	h := NewResourceHandlers(client.New("http://127.0.0.1:1"))

	_, err := readResource(t, h, "crm://contacts")
	assert.Error(t, err)

	_, err = readResource(t, h, "directory://deals")
	assert.Error(t, err)
}
