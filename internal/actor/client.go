// Package actor is the typed HTTP client for the partnerhub backend. Each
// backend method has a Go method here; queries go through a short-lived
// cache that mutations and server events invalidate.
package actor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"partnerhub/internal/health"
	wire "partnerhub/pkg/models"
)

const principalHeader = "X-Principal"

type Client struct {
	BaseURL    string
	Token      string
	Principal  string
	HTTPClient *http.Client
	cache      *Cache
}

type Options struct {
	Token     string
	Principal string
	// CacheTTL is how long query results are reused; zero disables reuse.
	CacheTTL time.Duration
}

func NewClient(baseURL string, opts Options) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		Token:      opts.Token,
		Principal:  opts.Principal,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		cache:      NewCache(opts.CacheTTL),
	}
}

// Invalidate drops cached queries for keys.
func (c *Client) Invalidate(keys ...string) {
	if c == nil {
		return
	}
	c.cache.Invalidate(keys...)
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return nil, err
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	if c.Principal != "" {
		req.Header.Set(principalHeader, c.Principal)
	}
	return req, nil
}

// do sends req and returns the response when it is 2xx. Anything else
// becomes an *Error.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		if req.Context().Err() != nil {
			return nil, req.Context().Err()
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	return nil, parseError(resp.StatusCode, body)
}

func parseError(status int, body []byte) *Error {
	e := &Error{Status: status}
	var er wire.ErrorResponse
	if err := json.Unmarshal(body, &er); err == nil && er.Error != "" {
		e.Code = er.Code
		e.Message = er.Error
		return e
	}
	e.Message = strings.TrimSpace(string(body))
	if e.Message == "" {
		e.Message = http.StatusText(status)
	}
	return e
}

// call invokes POST /api/rpc/<method> with in as the JSON body and decodes
// the answer into out. A nil in sends an empty body; a nil out discards it.
func (c *Client) call(ctx context.Context, method string, in, out interface{}) error {
	if c == nil {
		return ErrUnavailable
	}
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/api/rpc/"+method, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		_, err := io.Copy(io.Discard, resp.Body)
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", method, err)
	}
	return nil
}

// query is call behind the cache.
func query[T any](ctx context.Context, c *Client, key, method string, in interface{}) (T, error) {
	var zero T
	if c == nil {
		return zero, ErrUnavailable
	}
	v, err := c.cache.Do(ctx, key, func(ctx context.Context) (interface{}, error) {
		var out T
		err := c.call(ctx, method, in, &out)
		return out, err
	})
	if err != nil {
		return zero, err
	}
	return v.(T), nil
}

// mutate is call followed by local invalidation of keys.
func (c *Client) mutate(ctx context.Context, method string, in, out interface{}, keys ...string) error {
	if err := c.call(ctx, method, in, out); err != nil {
		return err
	}
	c.cache.Invalidate(keys...)
	return nil
}

// GetBackendHealth fetches and parses the health line. Unparseable text
// yields Unknown fields, not an error.
func (c *Client) GetBackendHealth(ctx context.Context) (health.Report, error) {
	if c == nil {
		return health.Report{}, ErrUnavailable
	}
	req, err := c.newRequest(ctx, http.MethodGet, "/api/health", nil)
	if err != nil {
		return health.Report{}, err
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return health.Report{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return health.Report{}, fmt.Errorf("health check failed: %s", resp.Status)
	}
	text, err := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
	if err != nil {
		return health.Report{}, err
	}
	return health.Parse(string(text)), nil
}
