package kleio

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
	"time"

	"github.com/google/uuid"

	"clio/internal/collection"
	"clio/internal/services"
)

const component = "kleio"

// SyncComplete is the server's terminal sync status. Anything else means a
// sync is still running.
const SyncComplete = "complete"

// HTTPDoer abstracts the HTTP client for testability.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to a Kleio server.
type Client struct {
	baseURL  string
	token    string
	httpDoer HTTPDoer
}

// Option customizes client construction.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(doer HTTPDoer) Option {
	return func(c *Client) {
		if doer != nil {
			c.httpDoer = doer
		}
	}
}

// New validates the base URL and builds a client. The token may be empty for
// servers running without authentication.
func New(baseURL, token string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, services.Wrap(services.ErrConfiguration, component, "new", "base URL is required", nil)
	}
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, services.Wrap(services.ErrConfiguration, component, "new", fmt.Sprintf("invalid base URL %q", baseURL), err)
	}

	client := &Client{
		baseURL:  baseURL,
		token:    strings.TrimSpace(token),
		httpDoer: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// SyncState is the server's answer to a sync status probe.
type SyncState struct {
	Status     string               `json:"status"`
	LastSynced collection.Timestamp `json:"lastSync"`
}

// Complete reports whether the sync has finished.
func (s SyncState) Complete() bool {
	return s.Status == SyncComplete
}

// PlayRequest creates or updates a play event.
type PlayRequest struct {
	ReleaseID string    `json:"releaseId"`
	StylusID  *string   `json:"stylusId,omitempty"`
	PlayedAt  time.Time `json:"playedAt"`
	Notes     string    `json:"notes,omitempty"`
}

// CleaningRequest creates or updates a cleaning event.
type CleaningRequest struct {
	ReleaseID string    `json:"releaseId"`
	CleanedAt time.Time `json:"cleanedAt"`
	Notes     string    `json:"notes,omitempty"`
}

// StylusRequest creates or updates a stylus.
type StylusRequest struct {
	Name             string     `json:"name"`
	Manufacturer     string     `json:"manufacturer,omitempty"`
	ExpectedLifespan int        `json:"expectedLifespan,omitempty"`
	PurchaseDate     *time.Time `json:"purchaseDate,omitempty"`
	Active           bool       `json:"active"`
	Primary          bool       `json:"primary"`
	Owned            bool       `json:"owned"`
}

// Collection fetches the current snapshot.
func (c *Client) Collection(ctx context.Context) (collection.Snapshot, error) {
	var snap collection.Snapshot
	err := c.do(ctx, http.MethodGet, "/collection", nil, &snap)
	return snap, err
}

// Resync asks the server to refresh its collection from the upstream source
// and returns the snapshot it answers with. The server may keep syncing in
// the background; watch SyncStatus for completion.
func (c *Client) Resync(ctx context.Context) (collection.Snapshot, error) {
	var snap collection.Snapshot
	err := c.do(ctx, http.MethodGet, "/collection/resync", nil, &snap)
	return snap, err
}

// SyncStatus probes the server's sync progress.
func (c *Client) SyncStatus(ctx context.Context) (SyncState, error) {
	var state SyncState
	err := c.do(ctx, http.MethodGet, "/collection/sync", nil, &state)
	return state, err
}

// LogPlay records a play and returns the refreshed snapshot.
func (c *Client) LogPlay(ctx context.Context, req PlayRequest) (collection.Snapshot, error) {
	var snap collection.Snapshot
	err := c.do(ctx, http.MethodPost, "/plays", req, &snap)
	return snap, err
}

// UpdatePlay rewrites an existing play event.
func (c *Client) UpdatePlay(ctx context.Context, id string, req PlayRequest) (collection.Snapshot, error) {
	var snap collection.Snapshot
	err := c.do(ctx, http.MethodPut, "/plays/"+url.PathEscape(id), req, &snap)
	return snap, err
}

// DeletePlay removes a play event.
func (c *Client) DeletePlay(ctx context.Context, id string) (collection.Snapshot, error) {
	var snap collection.Snapshot
	err := c.do(ctx, http.MethodDelete, "/plays/"+url.PathEscape(id), nil, &snap)
	return snap, err
}

// LogCleaning records a cleaning and returns the refreshed snapshot.
func (c *Client) LogCleaning(ctx context.Context, req CleaningRequest) (collection.Snapshot, error) {
	var snap collection.Snapshot
	err := c.do(ctx, http.MethodPost, "/cleanings", req, &snap)
	return snap, err
}

// DeleteCleaning removes a cleaning event.
func (c *Client) DeleteCleaning(ctx context.Context, id string) (collection.Snapshot, error) {
	var snap collection.Snapshot
	err := c.do(ctx, http.MethodDelete, "/cleanings/"+url.PathEscape(id), nil, &snap)
	return snap, err
}

// CreateStylus adds a stylus to the registry.
func (c *Client) CreateStylus(ctx context.Context, req StylusRequest) (collection.Snapshot, error) {
	var snap collection.Snapshot
	err := c.do(ctx, http.MethodPost, "/styluses", req, &snap)
	return snap, err
}

// UpdateStylus rewrites an existing stylus.
func (c *Client) UpdateStylus(ctx context.Context, id string, req StylusRequest) (collection.Snapshot, error) {
	var snap collection.Snapshot
	err := c.do(ctx, http.MethodPut, "/styluses/"+url.PathEscape(id), req, &snap)
	return snap, err
}

// DeleteStylus removes a stylus.
func (c *Client) DeleteStylus(ctx context.Context, id string) (collection.Snapshot, error) {
	var snap collection.Snapshot
	err := c.do(ctx, http.MethodDelete, "/styluses/"+url.PathEscape(id), nil, &snap)
	return snap, err
}

// ActivateStylus marks a stylus as the one in use; the server deactivates
// the rest.
func (c *Client) ActivateStylus(ctx context.Context, id string) (collection.Snapshot, error) {
	var snap collection.Snapshot
	err := c.do(ctx, http.MethodPut, "/styluses/active/"+url.PathEscape(id), nil, &snap)
	return snap, err
}

// Export streams the server's collection export to w.
func (c *Client) Export(ctx context.Context, w io.Writer) error {
	req, err := c.newRequest(ctx, http.MethodGet, "/export", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpDoer.Do(req)
	if err != nil {
		return c.transportError("export", err)
	}
	defer resp.Body.Close()
	if err := c.statusError("export", resp); err != nil {
		return err
	}
	if _, err := io.Copy(w, resp.Body); err != nil {
		return services.Wrap(services.ErrTransient, component, "export", "stream export", err)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, services.Wrap(services.ErrValidation, component, method+" "+path, "encode request body", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, component, method+" "+path, "build request", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	requestID, ok := services.RequestIDFromContext(ctx)
	if !ok {
		requestID = uuid.NewString()
	}
	req.Header.Set("X-Request-ID", requestID)
	return req, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	operation := method + " " + path
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}

	resp, err := c.httpDoer.Do(req)
	if err != nil {
		return c.transportError(operation, err)
	}
	defer resp.Body.Close()

	if err := c.statusError(operation, resp); err != nil {
		return err
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return services.Wrap(services.ErrTransient, component, operation, "decode response", err)
	}
	return nil
}

func (c *Client) transportError(operation string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return services.Wrap(services.ErrTimeout, component, operation, "request timed out", err)
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	return services.Wrap(services.ErrTransient, component, operation, "request failed", err)
}

func (c *Client) statusError(operation string, resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	detail := fmt.Sprintf("server returned %s", resp.Status)
	if body, err := io.ReadAll(io.LimitReader(resp.Body, 512)); err == nil {
		if trimmed := strings.TrimSpace(string(body)); trimmed != "" {
			detail = fmt.Sprintf("%s: %s", detail, trimmed)
		}
	}
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return services.Wrap(services.ErrNotFound, component, operation, detail, nil)
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return services.Wrap(services.ErrConfiguration, component, operation, detail, nil)
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return services.Wrap(services.ErrValidation, component, operation, detail, nil)
	default:
		return services.Wrap(services.ErrTransient, component, operation, detail, nil)
	}
}
