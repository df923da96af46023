// ABOUTME: HTTP client for the directory backend
// ABOUTME: Wraps the /states, /add, /search and /delete endpoints with typed errors
package client

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
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/harperreed/mobiledir/compose"
	"github.com/harperreed/mobiledir/models"
)

const statesCacheKey = "states"

// Client talks to one backend. It is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
	timeout time.Duration
	memo    *cache.Cache

	// statesMu serialises the first state list load.
	statesMu sync.Mutex
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithTimeout sets a per-request timeout. Zero means none. The timeout is
// applied to a copy of the HTTP client, never to the one passed in.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithLogger attaches a logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// New returns a client for the backend at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		logger:  zap.NewNop(),
		memo:    cache.New(cache.NoExpiration, 0),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.http
		hc.Timeout = c.timeout
		c.http = &hc
	}
	return c
}

// BaseURL returns the backend address requests are sent to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// AddResult is the decoded success body of an add.
type AddResult struct {
	Message string          `json:"message,omitempty"`
	Entry   *models.Contact `json:"entry,omitempty"`
}

type errorPayload struct {
	Error  string   `json:"error"`
	Errors []string `json:"errors"`
}

// States returns the backend state list, or the fixed fallback list if it
// cannot be loaded. The first outcome is kept for the life of the client.
func (c *Client) States(ctx context.Context) []string {
	if cached, ok := c.memo.Get(statesCacheKey); ok {
		return copyStates(cached.([]string))
	}

	c.statesMu.Lock()
	defer c.statesMu.Unlock()

	// Another caller may have loaded it while we waited.
	if cached, ok := c.memo.Get(statesCacheKey); ok {
		return copyStates(cached.([]string))
	}

	states, err := c.FetchStates(ctx)
	if err != nil {
		c.logger.Warn("state list unavailable, using fallback", zap.Error(err))
		states = models.FallbackStates()
	}

	c.memo.Set(statesCacheKey, states, cache.NoExpiration)
	return copyStates(states)
}

// FetchStates loads the state list from the backend without any fallback.
func (c *Client) FetchStates(ctx context.Context) ([]string, error) {
	var states []string
	if err := c.do(ctx, "states", http.MethodGet, "/states", nil, &states); err != nil {
		return nil, err
	}
	if states == nil {
		return nil, &NetworkError{Op: "states", Err: errors.New("backend returned no state list")}
	}
	return states, nil
}

// Add submits an add request built by the compose package.
func (c *Client) Add(ctx context.Context, req models.AddRequest) (*AddResult, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode add request: %w", err)
	}

	result := &AddResult{}
	if err := c.do(ctx, "add", http.MethodPost, "/add", body, result); err != nil {
		return nil, err
	}
	return result, nil
}

// Search lists the contacts matching f. An empty filter lists everything.
func (c *Client) Search(ctx context.Context, f models.SearchFilter) ([]models.Contact, error) {
	path := "/search"
	if qs := compose.Query(f); qs != "" {
		path += "?" + qs
	}

	var contacts []models.Contact
	if err := c.do(ctx, "search", http.MethodGet, path, nil, &contacts); err != nil {
		return nil, err
	}
	if contacts == nil {
		contacts = []models.Contact{}
	}
	return contacts, nil
}

// Delete removes the contact with the literal number given.
func (c *Client) Delete(ctx context.Context, number string) error {
	return c.do(ctx, "delete", http.MethodDelete, "/delete/"+url.PathEscape(number), nil, nil)
}

// Health checks that the backend answers on its root path.
func (c *Client) Health(ctx context.Context) (string, error) {
	var status struct {
		Status string `json:"status"`
	}
	if err := c.do(ctx, "health", http.MethodGet, "/", nil, &status); err != nil {
		return "", err
	}
	return status.Status, nil
}

func (c *Client) do(ctx context.Context, op, method, path string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}

	requestID := uuid.New().String()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	logger := c.logger.With(
		zap.String("op", op),
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", requestID),
	)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		logger.Warn("request failed", zap.Error(err), zap.Duration("elapsed", time.Since(start)))
		return &NetworkError{Op: op, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	logger.Info("request finished",
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		backendErr := &BackendError{Op: op, StatusCode: resp.StatusCode}
		var payload errorPayload
		if err := json.Unmarshal(data, &payload); err == nil {
			backendErr.Message = payload.Error
			backendErr.Errors = payload.Errors
		}
		logger.Info("backend rejected request", zap.String("error", backendErr.payloadMessage()))
		return backendErr
	}

	if out == nil || (len(bytes.TrimSpace(data)) == 0 && isOptionalBody(out)) {
		return nil
	}

	if err := json.Unmarshal(data, out); err != nil {
		return &NetworkError{Op: op, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return nil
}

// isOptionalBody reports whether an empty 2xx body is acceptable for out.
func isOptionalBody(out any) bool {
	_, ok := out.(*AddResult)
	return ok
}

// IsNetworkError reports whether err came from the transport rather than the backend.
func IsNetworkError(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}

func copyStates(states []string) []string {
	out := make([]string, len(states))
	copy(out, states)
	return out
}
