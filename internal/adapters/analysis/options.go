package analysis

import (
	"net/http"
	"time"

	"github.com/okian/swingmatch/pkg/logger"
)

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithTimeout overrides the request deadline.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.http.Timeout = timeout
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client. The caller owns the
// replacement's timeout.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.http = client
		}
	}
}

// WithLogger sets a custom logger for the client.
func WithLogger(l logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}
