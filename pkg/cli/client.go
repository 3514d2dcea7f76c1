package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/getmockd/mockswitch/pkg/api/types"
)

// AdminClient provides methods for communicating with the mockswitch admin API.
type AdminClient interface {
	// Health checks if the server is running.
	Health() (*types.HealthResponse, error)
	// WorkerStatus returns the state of the mock worker.
	WorkerStatus() (*types.WorkerStatus, error)
	// ListHandlers returns every registered handler in listing order.
	ListHandlers() ([]types.Handler, error)
	// GetHandler returns a specific handler by ID.
	GetHandler(id string) (*types.Handler, error)
	// SetHandler enables or disables a handler by ID.
	SetHandler(id string, enabled bool) (*types.Handler, error)
	// SetGroup enables or disables every handler in a group.
	SetGroup(name string, enabled bool) (*types.GroupResponse, error)
	// SetAll enables or disables every handler.
	SetAll(enabled bool) ([]types.Handler, error)
	// GetConfig returns the handler state map.
	GetConfig() (map[string]bool, error)
	// ApplyConfig sets the named handlers' states in one restart.
	ApplyConfig(states map[string]bool) (map[string]bool, error)
	// SaveConfig writes the in-memory states to storage.
	SaveConfig() (map[string]bool, error)
	// ReloadConfig re-reads the states from storage.
	ReloadConfig() (map[string]bool, error)
	// ResetConfig restores the states declared in configuration.
	ResetConfig() (map[string]bool, error)
}

// APIError represents an error response from the admin API.
type APIError struct {
	StatusCode int
	ErrorCode  string
	Message    string
	Details    []string
}

func (e *APIError) Error() string {
	if len(e.Details) > 0 {
		return e.Message + ": " + strings.Join(e.Details, ", ")
	}
	return e.Message
}

// adminClient implements AdminClient using HTTP.
type adminClient struct {
	baseURL    string
	httpClient *http.Client
}

// ClientOption configures an admin client.
type ClientOption func(*adminClient)

// WithTimeout sets the HTTP timeout for the client.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *adminClient) {
		c.httpClient.Timeout = timeout
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *adminClient) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// NewAdminClient creates a new admin API client.
// The baseURL should be the admin API base URL (e.g., "http://localhost:4290").
func NewAdminClient(baseURL string, opts ...ClientOption) AdminClient {
	c := &adminClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Health checks if the server is running.
func (c *adminClient) Health() (*types.HealthResponse, error) {
	var out types.HealthResponse
	if err := c.call(http.MethodGet, "/health", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// WorkerStatus returns the state of the mock worker.
func (c *adminClient) WorkerStatus() (*types.WorkerStatus, error) {
	var out types.WorkerStatus
	if err := c.call(http.MethodGet, "/worker", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListHandlers returns every registered handler.
func (c *adminClient) ListHandlers() ([]types.Handler, error) {
	var out types.HandlerListResponse
	if err := c.call(http.MethodGet, "/handlers", nil, &out); err != nil {
		return nil, err
	}
	return out.Handlers, nil
}

// GetHandler returns a specific handler by ID.
func (c *adminClient) GetHandler(id string) (*types.Handler, error) {
	var out types.Handler
	if err := c.call(http.MethodGet, "/handlers/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SetHandler enables or disables a handler by ID.
func (c *adminClient) SetHandler(id string, enabled bool) (*types.Handler, error) {
	var out types.Handler
	path := "/handlers/" + url.PathEscape(id) + "/" + action(enabled)
	if err := c.call(http.MethodPost, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SetGroup enables or disables every handler in a group.
func (c *adminClient) SetGroup(name string, enabled bool) (*types.GroupResponse, error) {
	var out types.GroupResponse
	path := "/groups/" + url.PathEscape(name) + "/" + action(enabled)
	if err := c.call(http.MethodPost, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SetAll enables or disables every handler.
func (c *adminClient) SetAll(enabled bool) ([]types.Handler, error) {
	var out types.HandlerListResponse
	if err := c.call(http.MethodPost, "/handlers/"+action(enabled)+"-all", nil, &out); err != nil {
		return nil, err
	}
	return out.Handlers, nil
}

// GetConfig returns the handler state map.
func (c *adminClient) GetConfig() (map[string]bool, error) {
	return c.configCall(http.MethodGet, "/config", nil)
}

// ApplyConfig sets the named handlers' states.
func (c *adminClient) ApplyConfig(states map[string]bool) (map[string]bool, error) {
	body, err := json.Marshal(states)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return c.configCall(http.MethodPut, "/config", body)
}

// SaveConfig writes the in-memory states to storage.
func (c *adminClient) SaveConfig() (map[string]bool, error) {
	return c.configCall(http.MethodPost, "/config/save", nil)
}

// ReloadConfig re-reads the states from storage.
func (c *adminClient) ReloadConfig() (map[string]bool, error) {
	return c.configCall(http.MethodPost, "/config/reload", nil)
}

// ResetConfig restores the states declared in configuration.
func (c *adminClient) ResetConfig() (map[string]bool, error) {
	return c.configCall(http.MethodPost, "/config/reset", nil)
}

func (c *adminClient) configCall(method, path string, body []byte) (map[string]bool, error) {
	var out types.ConfigResponse
	if err := c.call(method, path, body, &out); err != nil {
		return nil, err
	}
	return out.Config, nil
}

func action(enabled bool) string {
	if enabled {
		return "enable"
	}
	return "disable"
}

// call performs a request and decodes a 200 response into out.
func (c *adminClient) call(method, path string, body []byte, out any) error {
	resp, err := c.doRequest(method, path, body)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return c.parseError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

func (c *adminClient) doRequest(method, path string, body []byte) (*http.Response, error) {
	fullURL := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}

	req, err := http.NewRequest(method, fullURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &APIError{
			StatusCode: 0,
			ErrorCode:  "connection_error",
			Message:    fmt.Sprintf("cannot connect to admin API at %s: %v", c.baseURL, err),
		}
	}
	return resp, nil
}

// parseError parses an error response from the API.
func (c *adminClient) parseError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)

	var errResp struct {
		Error   string   `json:"error"`
		Message string   `json:"message"`
		Details []string `json:"details"`
	}
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Message != "" {
		return &APIError{
			StatusCode: resp.StatusCode,
			ErrorCode:  errResp.Error,
			Message:    errResp.Message,
			Details:    errResp.Details,
		}
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		ErrorCode:  "unknown_error",
		Message:    fmt.Sprintf("server returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
	}
}

// FormatConnectionError returns a user-friendly error for connection failures
// and passes every other error through.
func FormatConnectionError(err error) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.ErrorCode == "connection_error" {
		return fmt.Errorf(`%s

Suggestions:
  • Start the server: mockswitch serve
  • Check that the admin API listens on the expected address
  • Pass --admin-url or set %s`, apiErr.Message, EnvAdminURL)
	}
	return err
}
