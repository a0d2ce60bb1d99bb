package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dmitrymomot/applib/pkg/logger"
)

// DefaultTimeout applies when no timeout option is given.
const DefaultTimeout = 10 * time.Second

// Client is a thin JSON-over-HTTP client bound to a base URL.
// It is safe for concurrent use.
type Client struct {
	baseURL    string
	headers    http.Header
	timeout    time.Duration
	httpClient *http.Client
	logger     *slog.Logger
	cache      *responseCache

	mu    sync.RWMutex
	token string
}

// New creates a Client for baseURL. A trailing slash on baseURL is ignored.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		headers:    make(http.Header),
		timeout:    DefaultTimeout,
		httpClient: http.DefaultClient,
		logger:     logger.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken replaces the bearer token. An empty token removes the header.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// PurgeCache drops every cached GET response.
func (c *Client) PurgeCache() {
	if c.cache != nil {
		c.cache.purge()
	}
}

// URL resolves endpoint against the base URL. Absolute endpoints are
// returned unchanged; trailing slashes are trimmed.
func (c *Client) URL(endpoint string) string {
	if u, err := url.Parse(endpoint); err == nil && u.IsAbs() {
		return endpoint
	}
	return strings.TrimRight(c.baseURL+"/"+strings.TrimLeft(endpoint, "/"), "/")
}

// Get issues a GET request and decodes the JSON response into out.
// out may be nil to discard the body.
func (c *Client) Get(ctx context.Context, endpoint string, out any, opts ...RequestOption) error {
	return c.Do(ctx, http.MethodGet, endpoint, nil, out, opts...)
}

// Post sends body and decodes the response into out. A url.Values body is
// sent form-encoded; an io.Reader is streamed as is; anything else is JSON.
func (c *Client) Post(ctx context.Context, endpoint string, body, out any, opts ...RequestOption) error {
	return c.Do(ctx, http.MethodPost, endpoint, body, out, opts...)
}

// Put sends body as JSON and decodes the response into out.
func (c *Client) Put(ctx context.Context, endpoint string, body, out any, opts ...RequestOption) error {
	return c.Do(ctx, http.MethodPut, endpoint, body, out, opts...)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, endpoint string, out any, opts ...RequestOption) error {
	return c.Do(ctx, http.MethodDelete, endpoint, nil, out, opts...)
}

// Do performs a request. Non-2xx responses produce a *TransportError,
// undecodable bodies a *ParseError, and an expired timeout ErrTimeout.
// Cancellation of ctx by the caller is returned as ctx.Err().
func (c *Client) Do(ctx context.Context, method, endpoint string, body, out any, opts ...RequestOption) error {
	ro := requestOptions{query: make(url.Values), headers: make(http.Header)}
	for _, opt := range opts {
		opt(&ro)
	}

	target, err := c.withQuery(c.URL(endpoint), ro.query)
	if err != nil {
		return errors.Join(ErrBuildRequest, err)
	}

	cacheable := method == http.MethodGet && c.cache != nil && !ro.noCache
	if cacheable {
		if cached, ok := c.cache.get(target); ok {
			c.logger.DebugContext(ctx, "api cache hit", logger.URL(target))
			return decode(target, cached, out)
		}
	}

	timeout := c.timeout
	if ro.timeout != nil {
		timeout = *ro.timeout
	}
	reqCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := c.newRequest(reqCtx, method, target, body, ro)
	if err != nil {
		return errors.Join(ErrBuildRequest, err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.requestError(ctx, reqCtx, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.requestError(ctx, reqCtx, err)
	}

	c.logger.DebugContext(ctx, "api request",
		slog.String("method", method),
		logger.URL(target),
		logger.Status(resp.StatusCode),
		logger.Duration(time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &TransportError{
			Method:     method,
			URL:        target,
			StatusCode: resp.StatusCode,
			Message:    errorMessage(resp.StatusCode, data),
		}
	}

	if err := decode(target, data, out); err != nil {
		return err
	}
	if cacheable {
		c.cache.put(target, data)
	}
	return nil
}

func (c *Client) withQuery(target string, query url.Values) (string, error) {
	if len(query) == 0 {
		return target, nil
	}
	u, err := url.Parse(target)
	if err != nil {
		return "", err
	}
	q := u.Query()
	for k, vs := range query {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (c *Client) newRequest(ctx context.Context, method, target string, body any, ro requestOptions) (*http.Request, error) {
	var (
		reader      io.Reader
		contentType = "application/json"
	)
	switch b := body.(type) {
	case nil:
	case url.Values:
		reader = strings.NewReader(b.Encode())
		contentType = "application/x-www-form-urlencoded"
	case io.Reader:
		reader = b
	default:
		payload, err := json.Marshal(b)
		if err != nil {
			return nil, fmt.Errorf("encode body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	for k, vs := range c.headers {
		req.Header[k] = append([]string(nil), vs...)
	}

	c.mu.RLock()
	token := c.token
	c.mu.RUnlock()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	if ro.noCache {
		req.Header.Set("Cache-Control", "no-cache")
		req.Header.Set("Pragma", "no-cache")
	}
	for k, vs := range ro.headers {
		req.Header[k] = append([]string(nil), vs...)
	}
	return req, nil
}

// requestError classifies a failed round trip. parent is the caller's
// context, reqCtx the one carrying the timeout.
func (c *Client) requestError(parent, reqCtx context.Context, err error) error {
	if parentErr := parent.Err(); parentErr != nil {
		return parentErr
	}
	if errors.Is(reqCtx.Err(), context.DeadlineExceeded) {
		return ErrTimeout
	}
	return errors.Join(ErrRequestFailed, err)
}

func decode(target string, data []byte, out any) error {
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if raw, ok := out.(*json.RawMessage); ok {
		*raw = append((*raw)[:0], data...)
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &ParseError{URL: target, Err: err}
	}
	return nil
}

func errorMessage(status int, body []byte) string {
	fallback := fmt.Sprintf("request failed with status %d", status)
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || !json.Valid(trimmed) {
		return fallback
	}

	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(trimmed, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, trimmed); err != nil {
		return fallback
	}
	return compact.String()
}
