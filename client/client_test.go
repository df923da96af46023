// ABOUTME: Tests for the backend HTTP client
// ABOUTME: Runs every endpoint against the in-memory fake backend
package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/mobiledir/backendtest"
	"github.com/harperreed/mobiledir/compose"
	"github.com/harperreed/mobiledir/models"
)

var seed = []models.Contact{
	{Number: "9876543210", Place: "Gandhipuram", District: "Coimbatore", State: "Tamil Nadu"},
	{Number: "9123456780", Place: "Kochi", District: "Ernakulam", State: "Kerala"},
}

func TestStatesFromBackend(t *testing.T) {
	srv := backendtest.New(t)
	srv.SetStates([]string{"Goa", "Kerala"})
	c := New(srv.URL)

	assert.Equal(t, []string{"Goa", "Kerala"}, c.States(context.Background()))
}

func TestStatesFallbackOnFailure(t *testing.T) {
	srv := backendtest.New(t)
	srv.FailStates()
	c := New(srv.URL)

	states := c.States(context.Background())
	assert.Equal(t, []string{"Tamil Nadu", "Kerala", "Karnataka", "Andhra Pradesh", "Telangana"}, states)
}

func TestStatesFallbackWhenUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := New(url)
	assert.Equal(t, models.FallbackStates(), c.States(context.Background()))
}

func TestStatesLoadedOncePerClient(t *testing.T) {
	srv := backendtest.New(t)
	c := New(srv.URL)

	first := c.States(context.Background())
	first[0] = "mutated"
	second := c.States(context.Background())

	assert.Equal(t, 1, srv.Hits(backendtest.RouteStates))
	assert.Equal(t, "Tamil Nadu", second[0])
}

func TestStatesLoadedOnceUnderConcurrentCalls(t *testing.T) {
	srv := backendtest.New(t)
	srv.SetStates([]string{"Goa", "Kerala"})
	srv.SetStatesDelay(100 * time.Millisecond)
	c := New(srv.URL)

	var wg sync.WaitGroup
	results := make([][]string, 4)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = c.States(context.Background())
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, srv.Hits(backendtest.RouteStates))
	for _, states := range results {
		assert.Equal(t, []string{"Goa", "Kerala"}, states)
	}
}

func TestWithTimeoutLeavesCallerClientAlone(t *testing.T) {
	hc := &http.Client{}
	c := New("http://localhost:5000", WithHTTPClient(hc), WithTimeout(5*time.Second))

	assert.Zero(t, hc.Timeout)
	assert.Equal(t, 5*time.Second, c.http.Timeout)
	assert.NotSame(t, hc, c.http)

	c = New("http://localhost:5000", WithTimeout(5*time.Second), WithHTTPClient(hc))
	assert.Equal(t, 5*time.Second, c.http.Timeout, "order of options does not matter")
	assert.Zero(t, hc.Timeout)
}

func TestAddStructured(t *testing.T) {
	srv := backendtest.New(t)
	c := New(srv.URL)

	req, err := compose.Entry("9876543210", "Gandhipuram", "Coimbatore", "Tamil Nadu")
	require.NoError(t, err)

	result, err := c.Add(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "Number added successfully!", result.Message)
	require.NotNil(t, result.Entry)
	assert.Equal(t, "9876543210", result.Entry.Number)

	bodies := srv.Bodies()
	require.Len(t, bodies, 1)
	assert.JSONEq(t, `{"number":"9876543210","place":"Gandhipuram","district":"Coimbatore","state":"Tamil Nadu"}`, string(bodies[0]))
}

func TestAddFreeTextSendsTextOnly(t *testing.T) {
	srv := backendtest.New(t)
	c := New(srv.URL)

	req, err := compose.FreeText("9876543210 Gandhipuram")
	require.NoError(t, err)

	_, err = c.Add(context.Background(), req)
	require.NoError(t, err)

	bodies := srv.Bodies()
	require.Len(t, bodies, 1)
	assert.JSONEq(t, `{"text":"9876543210 Gandhipuram"}`, string(bodies[0]))
}

func TestAddFreeTextBackendRejection(t *testing.T) {
	srv := backendtest.New(t)
	c := New(srv.URL)

	req, err := compose.FreeText("aaaaaaaaaaaa")
	require.NoError(t, err, "the client accepts any text over ten characters")

	_, err = c.Add(context.Background(), req)
	var backendErr *BackendError
	require.ErrorAs(t, err, &backendErr)
	assert.Equal(t, http.StatusBadRequest, backendErr.StatusCode)
	assert.Equal(t, "Could not find a mobile number and place", UserMessage(err, models.MsgAddFailed))
}

func TestAddDuplicateSurfacesError(t *testing.T) {
	srv := backendtest.New(t, seed...)
	c := New(srv.URL)

	req, err := compose.Entry("9876543210", "Gandhipuram", "Coimbatore", "Tamil Nadu")
	require.NoError(t, err)

	_, err = c.Add(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, "Number already exists", UserMessage(err, models.MsgAddFailed))
	assert.False(t, IsNetworkError(err))
}

func TestAddJoinsErrorList(t *testing.T) {
	srv := backendtest.New(t)
	c := New(srv.URL)

	// Bypass the composer to reach the backend's own validation.
	req := models.NewEntryRequest(models.Entry{Number: "123", Place: "", District: "Coimbatore", State: "Kerala"})

	_, err := c.Add(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, "Invalid mobile number. Use 10 digits starting with 6-9., Place is required.", UserMessage(err, models.MsgAddFailed))
}

func TestAddFallbackMessageWithoutPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer srv.Close()
	c := New(srv.URL)

	_, err := c.Add(context.Background(), models.NewTextRequest("9876543210 Gandhipuram"))
	require.Error(t, err)
	assert.Equal(t, "Failed to add", UserMessage(err, models.MsgAddFailed))
}

func TestSearchOnlyPlace(t *testing.T) {
	srv := backendtest.New(t, seed...)
	c := New(srv.URL)

	contacts, err := c.Search(context.Background(), models.SearchFilter{Place: "Gandhipuram"})
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.Equal(t, "9876543210", contacts[0].Number)
	assert.Equal(t, []string{"place=Gandhipuram"}, srv.Queries())
}

func TestSearchShowAllSendsNoQuery(t *testing.T) {
	srv := backendtest.New(t, seed...)
	c := New(srv.URL)

	contacts, err := c.Search(context.Background(), models.SearchFilter{})
	require.NoError(t, err)
	assert.Len(t, contacts, 2)
	assert.Equal(t, []string{""}, srv.Queries())
}

func TestSearchNoMatchesIsEmptyNotNil(t *testing.T) {
	srv := backendtest.New(t, seed...)
	c := New(srv.URL)

	contacts, err := c.Search(context.Background(), models.SearchFilter{State: "Goa"})
	require.NoError(t, err)
	assert.NotNil(t, contacts)
	assert.Empty(t, contacts)
}

func TestSearchUndecodableBodyIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()
	c := New(srv.URL)

	_, err := c.Search(context.Background(), models.SearchFilter{})
	require.Error(t, err)
	assert.True(t, IsNetworkError(err))
	assert.Equal(t, "Network error.", UserMessage(err, models.MsgSearchFailed))
}

func TestDelete(t *testing.T) {
	srv := backendtest.New(t, seed...)
	c := New(srv.URL)

	require.NoError(t, c.Delete(context.Background(), "9876543210"))
	assert.Len(t, srv.Contacts(), 1)

	err := c.Delete(context.Background(), "9876543210")
	require.Error(t, err)
	assert.Equal(t, "Number not found", UserMessage(err, models.MsgDeleteFailed))
}

func TestDeleteEscapesPath(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()
	c := New(srv.URL + "/")

	require.NoError(t, c.Delete(context.Background(), "98765 432/10"))
	assert.Equal(t, "/delete/98765%20432%2F10", gotPath)
}

func TestNetworkErrorWhenUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	c := New(url)

	err := c.Delete(context.Background(), "9876543210")
	require.Error(t, err)
	assert.True(t, IsNetworkError(err))
	assert.Equal(t, "Network error.", UserMessage(err, models.MsgDeleteFailed))
}

func TestRequestHeaders(t *testing.T) {
	var headers http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		headers = r.Header.Clone()
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "ok"})
	}))
	defer srv.Close()
	c := New(srv.URL)

	_, err := c.Add(context.Background(), models.NewTextRequest("9876543210 Gandhipuram"))
	require.NoError(t, err)
	assert.Equal(t, "application/json", headers.Get("Content-Type"))
	assert.NotEmpty(t, headers.Get("X-Request-ID"))
}

func TestHealth(t *testing.T) {
	srv := backendtest.New(t)
	c := New(srv.URL)

	status, err := c.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", status)
}

func TestUserMessageValidation(t *testing.T) {
	_, err := compose.Entry("12345", "a", "b", "c")
	assert.Equal(t, "Please fill all fields correctly.", UserMessage(err, models.MsgAddFailed))
	assert.Equal(t, "", UserMessage(nil, models.MsgAddFailed))
}
