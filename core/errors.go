package core

import (
	"errors"
	"fmt"
)

// Sentinel errors for classification. Use errors.Is to test for them.
var (
	// ErrNetwork marks transport-level failures (DNS, TLS, connection reset).
	ErrNetwork = errors.New("network error")

	// ErrEmptyData is returned when the transport succeeded but no body was received.
	ErrEmptyData = errors.New("empty data")

	// ErrDecode marks bytes that do not match the declared result shape.
	ErrDecode = errors.New("decode error")

	// ErrBuild marks requests that could not be constructed.
	ErrBuild = errors.New("build error")

	// ErrAPI marks structured errors returned by the API itself.
	ErrAPI = errors.New("api error")

	// ErrCanceled is the terminal error of a cancelled streaming session.
	ErrCanceled = errors.New("canceled")

	// ErrTimeout is returned when a request exceeds the configured timeout.
	ErrTimeout = errors.New("timeout")
)

// Status sentinels, attached to API and status errors based on the HTTP status code.
var (
	ErrBadRequest   = errors.New("bad request")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrRateLimited  = errors.New("rate limited")
	ErrServer       = errors.New("server error")
)

// APIError is a structured error decoded from the API's own error schema:
//
//	{"error":{"message":"...","type":"...","param":"...","code":"..."}}
type APIError struct {
	Status    int
	RequestID string
	Code      string
	Type      string
	Param     string
	Message   string

	// Err is the status sentinel, nil when the error arrived with a 2xx status.
	Err error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	code := e.Code
	if code == "" {
		code = e.Type
	}
	if e.RequestID != "" {
		return fmt.Sprintf("openai: %s (status=%d, code=%s, request_id=%s)",
			e.Message, e.Status, code, e.RequestID)
	}
	return fmt.Sprintf("openai: %s (status=%d, code=%s)", e.Message, e.Status, code)
}

// Is reports whether target is ErrAPI.
func (e *APIError) Is(target error) bool {
	return target == ErrAPI
}

// Unwrap returns the status sentinel.
func (e *APIError) Unwrap() error {
	return e.Err
}

// StatusError is returned for a non-2xx response whose body is not a structured API error.
type StatusError struct {
	Status    int
	RequestID string
	Body      string
	Err       error
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("openai: unexpected status %d", e.Status)
	}
	return fmt.Sprintf("openai: unexpected status %d: %s", e.Status, e.Body)
}

// Unwrap returns ErrNetwork and the status sentinel.
func (e *StatusError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrNetwork}
	}
	return []error{ErrNetwork, e.Err}
}

// kindError pairs a classification sentinel with the error that caused it.
// Both remain reachable through errors.Is and errors.As.
type kindError struct {
	kind error
	err  error
}

func (e *kindError) Error() string {
	return e.kind.Error() + ": " + e.err.Error()
}

func (e *kindError) Unwrap() []error {
	return []error{e.kind, e.err}
}

func wrapKind(kind, err error) error {
	if err == nil {
		return nil
	}
	return &kindError{kind: kind, err: err}
}

// NetworkError classifies err as a transport failure.
func NetworkError(err error) error { return wrapKind(ErrNetwork, err) }

// DecodeError classifies err as a result decode failure.
func DecodeError(err error) error { return wrapKind(ErrDecode, err) }

// BuildError classifies err as a request construction failure.
func BuildError(err error) error { return wrapKind(ErrBuild, err) }

// CanceledError classifies err as a cancellation.
func CanceledError(err error) error { return wrapKind(ErrCanceled, err) }

// TimeoutError classifies err as a timeout.
func TimeoutError(err error) error { return wrapKind(ErrTimeout, err) }

// Buildf returns a build error with a formatted message.
func Buildf(format string, args ...any) error {
	return BuildError(fmt.Errorf(format, args...))
}
