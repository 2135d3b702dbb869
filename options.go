package fmxml

import (
	"time"
)

// Option configures a Client at construction time.
type Option func(*Client)

// WithScheme sets the protocol scheme, "http" (default) or "https".
func WithScheme(scheme string) Option {
	return func(c *Client) {
		c.scheme = scheme
	}
}

// WithPort sets the TCP port of the Web Publishing Engine.
// The default is 80.
func WithPort(port int) Option {
	return func(c *Client) {
		c.port = port
	}
}

// WithHTTPClient sets a custom HTTP client.
// This allows customizing transport, TLS settings, and proxies.
// The client must implement the HTTPDoer interface (e.g., *http.Client).
func WithHTTPClient(httpClient HTTPDoer) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout sets the timeout for individual requests.
// The default is 30 seconds.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithRequestInterval enforces a minimum delay between successive
// requests. This helps stay within the Web Publishing Engine's session
// limits when issuing many actions in a row.
func WithRequestInterval(d time.Duration) Option {
	return func(c *Client) {
		c.interval = d
	}
}

// DatabaseOption configures a database selection.
type DatabaseOption func(*Client)

// WithResponseLayout sets the layout used to format the response when it
// differs from the layout the action runs against.
func WithResponseLayout(layout string) DatabaseOption {
	return func(c *Client) {
		c.responseLayout = layout
	}
}

// WithMaxRecords sets the page size for the new selection, overriding
// the default of 50.
func WithMaxRecords(n int) DatabaseOption {
	return func(c *Client) {
		c.maxRecords = n
	}
}
