package core

import "time"

// CallShape identifies how a call consumes its response.
type CallShape string

const (
	ShapeJSON   CallShape = "json"
	ShapeBinary CallShape = "binary"
	ShapeStream CallShape = "stream"
)

// TelemetryHook receives request lifecycle notifications.
//
// Events carry operational metadata only. Tokens, request bodies and
// response bodies are never included, so events can be exported as-is.
type TelemetryHook interface {
	// OnRequestStart is called before the request is sent.
	OnRequestStart(e RequestStartEvent)

	// OnRequestEnd is called once the call reaches its terminal state.
	// For streaming calls this is when the session closes.
	OnRequestEnd(e RequestEndEvent)
}

// RequestStartEvent describes a starting call.
type RequestStartEvent struct {
	ID     string    // Unique per call, shared with the matching end event
	Method string    // HTTP method
	Path   string    // API path, e.g. /v1/chat/completions
	Shape  CallShape // Response handling strategy
	Start  time.Time
}

// RequestEndEvent describes a finished call.
type RequestEndEvent struct {
	ID     string
	Method string
	Path   string
	Shape  CallShape
	Start  time.Time
	End    time.Time
	Status int   // HTTP status, 0 if no response was received
	Frames int   // Number of frames decoded, streaming only
	Err    error // nil on success
}

// Duration returns the elapsed time for the call.
func (e RequestEndEvent) Duration() time.Duration {
	return e.End.Sub(e.Start)
}

// NoopTelemetryHook discards all events.
type NoopTelemetryHook struct{}

// OnRequestStart does nothing.
func (NoopTelemetryHook) OnRequestStart(RequestStartEvent) {}

// OnRequestEnd does nothing.
func (NoopTelemetryHook) OnRequestEnd(RequestEndEvent) {}

var _ TelemetryHook = NoopTelemetryHook{}
