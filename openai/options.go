package openai

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/petal-labs/openaikit/core"
)

// options holds the runtime collaborators of a Client.
type options struct {
	httpClient *http.Client
	logger     *zap.Logger
	telemetry  core.TelemetryHook
	headers    http.Header
}

// Option configures a Client.
type Option func(*options)

// WithHTTPClient sets the HTTP client used for every request. Defaults to http.DefaultClient.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		if client != nil {
			o.httpClient = client
		}
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithTelemetry sets the telemetry hook.
func WithTelemetry(hook core.TelemetryHook) Option {
	return func(o *options) {
		if hook != nil {
			o.telemetry = hook
		}
	}
}

// WithHeader adds an extra header to every request.
func WithHeader(key, value string) Option {
	return func(o *options) {
		if o.headers == nil {
			o.headers = make(http.Header)
		}
		o.headers.Add(key, value)
	}
}
