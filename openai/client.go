package openai

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/petal-labs/openaikit/core"
)

// Client issues requests against the OpenAI API.
// Client is safe for concurrent use; every call is dispatched independently.
type Client struct {
	config     Configuration
	httpClient *http.Client
	headers    http.Header
	logger     *zap.Logger
	telemetry  core.TelemetryHook
	sessions   *sessionRegistry
}

// New creates a client. Unset Host and Timeout fields take their defaults.
func New(cfg Configuration, opts ...Option) *Client {
	o := options{
		httpClient: http.DefaultClient,
		logger:     zap.NewNop(),
		telemetry:  core.NoopTelemetryHook{},
	}
	for _, opt := range opts {
		opt(&o)
	}

	return &Client{
		config:     cfg.withDefaults(),
		httpClient: o.httpClient,
		headers:    o.headers.Clone(),
		logger:     o.logger.Named("openai"),
		telemetry:  o.telemetry,
		sessions:   newSessionRegistry(),
	}
}

// NewWithToken creates a client for token with the default configuration.
func NewWithToken(token string, opts ...Option) *Client {
	return New(NewConfiguration(token), opts...)
}

// Configuration returns a copy of the client configuration.
func (c *Client) Configuration() Configuration {
	return c.config
}

// ActiveSessions returns the number of streaming sessions that have not terminated.
func (c *Client) ActiveSessions() int {
	return c.sessions.len()
}

// Close cancels every live streaming session. Single-response calls in flight
// are not affected; cancel their context instead. The client remains usable.
func (c *Client) Close() error {
	n := c.sessions.cancelAll()
	if n > 0 {
		c.logger.Debug("cancelled streaming sessions", zap.Int("count", n))
	}
	return nil
}
