package normalize

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petal-labs/openaikit/core"
)

func TestNormalizeStructuredError(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		body         string
		wantCode     string
		wantType     string
		wantParam    string
		wantMsg      string
		wantSentinel error
	}{
		{
			name:         "bad request",
			status:       http.StatusBadRequest,
			body:         `{"error":{"message":"Invalid model","type":"invalid_request_error","param":"model","code":"model_not_found"}}`,
			wantCode:     "model_not_found",
			wantType:     "invalid_request_error",
			wantParam:    "model",
			wantMsg:      "Invalid model",
			wantSentinel: core.ErrBadRequest,
		},
		{
			name:         "null code and param",
			status:       http.StatusUnauthorized,
			body:         `{"error":{"message":"Incorrect API key","type":"invalid_request_error","param":null,"code":null}}`,
			wantType:     "invalid_request_error",
			wantMsg:      "Incorrect API key",
			wantSentinel: core.ErrUnauthorized,
		},
		{
			name:         "numeric code",
			status:       http.StatusTooManyRequests,
			body:         `{"error":{"message":"slow down","type":"requests","code":429}}`,
			wantCode:     "429",
			wantType:     "requests",
			wantMsg:      "slow down",
			wantSentinel: core.ErrRateLimited,
		},
		{
			name:         "empty message uses status text",
			status:       http.StatusBadGateway,
			body:         `{"error":{}}`,
			wantMsg:      "Bad Gateway",
			wantSentinel: core.ErrServer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := http.Header{}
			header.Set("x-request-id", "req-123")
			cause := errors.New("cause")

			err := Normalize(tt.status, []byte(tt.body), header, cause)

			var apiErr *core.APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, "req-123", apiErr.RequestID)
			assert.Equal(t, tt.wantCode, apiErr.Code)
			assert.Equal(t, tt.wantType, apiErr.Type)
			assert.Equal(t, tt.wantParam, apiErr.Param)
			assert.Equal(t, tt.wantMsg, apiErr.Message)
			assert.ErrorIs(t, err, core.ErrAPI)
			assert.ErrorIs(t, err, tt.wantSentinel)
			assert.NotErrorIs(t, err, cause)
		})
	}
}

func TestNormalizeReturnsCauseUnchanged(t *testing.T) {
	var syntaxErr *json.SyntaxError
	decodeErr := json.Unmarshal([]byte("{bad"), &struct{}{})
	require.ErrorAs(t, decodeErr, &syntaxErr)
	cause := core.DecodeError(decodeErr)

	bodies := []string{
		``,
		`not json`,
		`{"id":"chatcmpl-1"}`,
		`{"error":null}`,
		`{"error":"plain string"}`,
	}

	for _, body := range bodies {
		t.Run(body, func(t *testing.T) {
			err := Normalize(http.StatusOK, []byte(body), nil, cause)
			assert.Same(t, cause, err)
		})
	}
}

func TestNormalizeOKStatusHasNoSentinel(t *testing.T) {
	err := Normalize(http.StatusOK, []byte(`{"error":{"message":"boom","type":"server_error"}}`), nil, nil)

	var apiErr *core.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Nil(t, apiErr.Err)
	assert.ErrorIs(t, err, core.ErrAPI)
	assert.NotErrorIs(t, err, core.ErrServer)
}

func TestFailureFallsBackToStatusError(t *testing.T) {
	header := http.Header{}
	header.Set(RequestIDHeader, "req-9")

	err := Failure(http.StatusServiceUnavailable, []byte("<html>upstream down</html>"), header)

	var statusErr *core.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.Status)
	assert.Equal(t, "req-9", statusErr.RequestID)
	assert.Equal(t, "<html>upstream down</html>", statusErr.Body)
	assert.ErrorIs(t, err, core.ErrNetwork)
	assert.ErrorIs(t, err, core.ErrServer)
	assert.NotErrorIs(t, err, core.ErrAPI)
}

func TestFailureTruncatesLargeBodies(t *testing.T) {
	body := strings.Repeat("x", 2*maxBodySnippet)

	err := Failure(http.StatusBadGateway, []byte(body), nil)

	var statusErr *core.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.True(t, strings.HasPrefix(statusErr.Body, strings.Repeat("x", maxBodySnippet)))
	assert.Contains(t, statusErr.Body, "1024 bytes")
}

func TestSentinelForStatus(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusOK, nil},
		{http.StatusBadRequest, core.ErrBadRequest},
		{http.StatusUnauthorized, core.ErrUnauthorized},
		{http.StatusForbidden, core.ErrUnauthorized},
		{http.StatusNotFound, core.ErrNotFound},
		{http.StatusConflict, core.ErrBadRequest},
		{http.StatusTooManyRequests, core.ErrRateLimited},
		{http.StatusInternalServerError, core.ErrServer},
		{http.StatusGatewayTimeout, core.ErrServer},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, SentinelForStatus(tt.status))
		})
	}
}

func TestHasError(t *testing.T) {
	tests := []struct {
		name string
		body string
		want bool
	}{
		{"bare envelope", `{"error":{"message":"overloaded","type":"server_error"}}`, true},
		{"envelope beside result fields", `{"id":"c1","choices":[],"error":{"message":"x"}}`, true},
		{"null error", `{"id":"c1","error":null}`, false},
		{"string error", `{"error":"nope"}`, false},
		{"nested error key", `{"choices":[{"delta":{"content":"\"error\""}}]}`, false},
		{"result", `{"id":"c1","choices":[]}`, false},
		{"not json", `data`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasError([]byte(tt.body)))
		})
	}
}
