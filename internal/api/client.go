// Package api implements the uniform HTTP/JSON client every admin component
// talks through. It attaches the bearer credential and site id from the
// session accessor, serializes JSON bodies, and turns non-2xx responses into
// typed errors carrying the server's machine-readable code.
//
// There is deliberately no retry or backoff: every failure surfaces to the
// operator, who decides whether to re-issue the action.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"shopctl/internal/logging"
	"shopctl/internal/session"
)

// Config holds client construction parameters.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client is the admin API client. Safe for concurrent use.
type Client struct {
	mu         sync.RWMutex
	baseURL    string
	httpClient *http.Client
	session    *session.Session
}

// New creates a Client. The session provides the bearer token and site id on
// every request.
func New(cfg Config, sess *session.Session) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		session:    sess,
	}
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.baseURL
}

// SetBaseURL swaps the base URL. The config watcher calls this from its own
// goroutine, so in-flight requests may still use the old value.
func (c *Client) SetBaseURL(u string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.baseURL = strings.TrimRight(u, "/")
}

// Get issues a GET with query parameters and decodes the JSON response into
// out (which may be nil).
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// Post issues a POST with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

// Put issues a PUT with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

// Delete issues a DELETE.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.httpClient.Timeout)
		defer cancel()
	}

	u := c.BaseURL() + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("api: create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if err := c.authorize(req); err != nil {
		return err
	}

	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logging.APIError("[%s] %s %s transport error: %v", requestID, method, u, err)
		return fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("api: read response: %w", err)
	}
	logging.APIDebug("[%s] %s %s -> %d (%d bytes, %v)",
		requestID, method, u, resp.StatusCode, len(respBody), time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return parseError(resp.StatusCode, respBody)
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("api: decode response: %w", err)
	}
	return nil
}

// authorize attaches the bearer token and site header from the session.
func (c *Client) authorize(req *http.Request) error {
	token, err := c.session.Token()
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if siteID := c.session.SiteID(); siteID != "" {
		req.Header.Set("X-Site-ID", siteID)
	}
	return nil
}

// parseError builds an *Error from a non-2xx body. Bodies that are not the
// structured {error, message} shape still produce a usable message.
func parseError(status int, body []byte) error {
	apiErr := &Error{Status: status}
	if len(body) > 0 {
		if err := json.Unmarshal(body, apiErr); err != nil {
			apiErr.Message = strings.TrimSpace(string(body))
		}
	}
	return apiErr
}
