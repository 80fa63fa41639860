package dhan

import (
	"log/slog"
	"net/http"
	"time"
)

// Client provides access to the Dhan v2 REST API.
type Client struct {
	baseURL     string
	accessToken string
	clientID    string
	httpClient  *http.Client
	logger      *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// NewClient creates a new REST API client.
func NewClient(baseURL, accessToken, clientID string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:     baseURL,
		accessToken: accessToken,
		clientID:    clientID,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}
