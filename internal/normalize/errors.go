// Package normalize turns raw failure bytes into the errors callers see.
// The single-response, binary and streaming paths all go through it.
package normalize

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"
	"unicode/utf8"

	"github.com/petal-labs/openaikit/core"
)

// RequestIDHeader carries the server-side request identifier.
const RequestIDHeader = "X-Request-Id"

// maxBodySnippet bounds how much of an unstructured body is kept in a StatusError.
const maxBodySnippet = 512

// errorEnvelope is the API's error schema:
// {"error":{"message":"...","type":"...","param":"...","code":"..."}}
type errorEnvelope struct {
	Error *struct {
		Message string     `json:"message"`
		Type    string     `json:"type"`
		Param   flexString `json:"param"`
		Code    flexString `json:"code"`
	} `json:"error"`
}

// flexString accepts a JSON string, number or null. The API is not
// consistent about the type of "code" and "param".
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = flexString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*s = flexString(n.String())
	return nil
}

// Normalize makes exactly one attempt to decode body as a structured API error.
// On success it returns a *core.APIError carrying the status sentinel; otherwise
// it returns cause unchanged.
func Normalize(status int, body []byte, header http.Header, cause error) error {
	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err != nil || env.Error == nil {
		return cause
	}

	message := env.Error.Message
	if message == "" {
		message = http.StatusText(status)
	}

	return &core.APIError{
		Status:    status,
		RequestID: requestID(header),
		Code:      string(env.Error.Code),
		Type:      env.Error.Type,
		Param:     string(env.Error.Param),
		Message:   message,
		Err:       SentinelForStatus(status),
	}
}

// HasError reports whether body is a JSON object with a non-null top-level
// "error" object. Such a body decodes into any result type without failing,
// so callers check it after a successful decode.
func HasError(body []byte) bool {
	if !bytes.Contains(body, []byte(`"error"`)) {
		return false
	}
	var env errorEnvelope
	return json.Unmarshal(body, &env) == nil && env.Error != nil
}

// Failure normalizes a non-2xx response, falling back to a *core.StatusError.
func Failure(status int, body []byte, header http.Header) error {
	return Normalize(status, body, header, StatusError(status, body, header))
}

// StatusError builds the generic error for a non-2xx response.
func StatusError(status int, body []byte, header http.Header) error {
	return &core.StatusError{
		Status:    status,
		RequestID: requestID(header),
		Body:      snippet(body),
		Err:       SentinelForStatus(status),
	}
}

// SentinelForStatus maps an HTTP status code to a core sentinel error.
// Statuses below 400 map to nil.
func SentinelForStatus(status int) error {
	switch {
	case status < http.StatusBadRequest:
		return nil
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return core.ErrUnauthorized
	case status == http.StatusNotFound:
		return core.ErrNotFound
	case status == http.StatusTooManyRequests:
		return core.ErrRateLimited
	case status >= http.StatusInternalServerError:
		return core.ErrServer
	default:
		return core.ErrBadRequest
	}
}

func requestID(header http.Header) string {
	if header == nil {
		return ""
	}
	return header.Get(RequestIDHeader)
}

func snippet(body []byte) string {
	body = bytes.TrimSpace(body)
	if len(body) <= maxBodySnippet {
		return string(body)
	}
	cut := maxBodySnippet
	for cut > 0 && !utf8.RuneStart(body[cut]) {
		cut--
	}
	return string(body[:cut]) + "... (" + strconv.Itoa(len(body)) + " bytes)"
}
