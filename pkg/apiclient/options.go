package apiclient

import (
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// Option configures a Client.
type Option func(*Client)

// WithHeaders adds default headers sent with every request.
func WithHeaders(headers map[string]string) Option {
	return func(c *Client) {
		for k, v := range headers {
			c.headers.Set(k, v)
		}
	}
}

// WithToken sets the bearer token sent in the Authorization header.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithTimeout sets the default per-request timeout. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d >= 0 {
			c.timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithCache enables an in-memory LRU cache of successful GET responses.
// Entries older than ttl are refetched; ttl <= 0 keeps entries until evicted.
func WithCache(capacity int, ttl time.Duration) Option {
	return func(c *Client) {
		if capacity > 0 {
			c.cache = newResponseCache(capacity, ttl)
		}
	}
}

// RequestOption configures a single request.
type RequestOption func(*requestOptions)

type requestOptions struct {
	query   url.Values
	headers http.Header
	noCache bool
	timeout *time.Duration
}

// WithQuery merges params into the request URL's query string.
func WithQuery(params url.Values) RequestOption {
	return func(o *requestOptions) {
		for k, vs := range params {
			for _, v := range vs {
				o.query.Add(k, v)
			}
		}
	}
}

// WithParam adds a single query parameter.
func WithParam(key, value string) RequestOption {
	return func(o *requestOptions) { o.query.Add(key, value) }
}

// WithHeader sets a header for this request only.
func WithHeader(key, value string) RequestOption {
	return func(o *requestOptions) { o.headers.Set(key, value) }
}

// NoCache sends Cache-Control/Pragma no-cache headers and bypasses the
// client's response cache.
func NoCache() RequestOption {
	return func(o *requestOptions) { o.noCache = true }
}

// WithRequestTimeout overrides the client timeout for this request.
func WithRequestTimeout(d time.Duration) RequestOption {
	return func(o *requestOptions) { o.timeout = &d }
}
