package loadtest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client is a thin JSON client for the activities API.
type Client struct {
	base   string
	client *http.Client
}

// NewClient creates a client for baseURL with a per-request timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		base:   baseURL,
		client: &http.Client{Timeout: timeout},
	}
}

// Health returns nil when GET /healthz answers 200.
func (c *Client) Health(ctx context.Context) error {
	status, _, err := c.do(ctx, http.MethodGet, "/healthz")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnhealthy, err)
	}
	if status != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrUnhealthy, status)
	}
	return nil
}

// Activities fetches the full activity map.
func (c *Client) Activities(ctx context.Context) (map[string]ActivityView, error) {
	status, body, err := c.do(ctx, http.MethodGet, "/activities")
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("%w: GET /activities status %d", ErrUnexpected, status)
	}
	var out map[string]ActivityView
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decode activities: %w", err)
	}
	return out, nil
}

// Stats fetches GET /stats.
func (c *Client) Stats(ctx context.Context) (map[string]any, error) {
	status, body, err := c.do(ctx, http.MethodGet, "/stats")
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("%w: GET /stats status %d", ErrUnexpected, status)
	}
	var out map[string]any
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decode stats: %w", err)
	}
	return out, nil
}

// Signup posts one signup and returns the HTTP status.
func (c *Client) Signup(ctx context.Context, s Signup) (int, error) {
	status, _, err := c.do(ctx, http.MethodPost, membershipPath(s, "signup"))
	return status, err
}

// Withdraw deletes one membership and returns the HTTP status.
func (c *Client) Withdraw(ctx context.Context, s Signup) (int, error) {
	status, _, err := c.do(ctx, http.MethodDelete, membershipPath(s, "unregister"))
	return status, err
}

func membershipPath(s Signup, action string) string {
	return "/activities/" + url.PathEscape(s.Activity) + "/" + action + "?email=" + url.QueryEscape(s.Email)
}

func (c *Client) do(ctx context.Context, method, path string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, http.NoBody)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read body: %w", err)
	}
	return resp.StatusCode, body, nil
}
