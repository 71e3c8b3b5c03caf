package core

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  *APIError
		want string
	}{
		{
			name: "with request id",
			err:  &APIError{Status: 429, RequestID: "req-1", Code: "rate_limit_exceeded", Message: "slow down"},
			want: "openai: slow down (status=429, code=rate_limit_exceeded, request_id=req-1)",
		},
		{
			name: "code falls back to type",
			err:  &APIError{Status: 400, Type: "invalid_request_error", Message: "bad"},
			want: "openai: bad (status=400, code=invalid_request_error)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestAPIErrorClassification(t *testing.T) {
	var err error = &APIError{Status: 404, Message: "missing", Err: ErrNotFound}

	assert.ErrorIs(t, err, ErrAPI)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrNetwork)
	assert.NotErrorIs(t, err, ErrDecode)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "missing", apiErr.Message)
}

func TestAPIErrorWithoutStatusSentinel(t *testing.T) {
	var err error = &APIError{Status: 200, Message: "odd"}

	assert.ErrorIs(t, err, ErrAPI)
	assert.NotErrorIs(t, err, ErrBadRequest)
}

func TestStatusError(t *testing.T) {
	var err error = &StatusError{Status: 502, Body: "<html>", Err: ErrServer}

	assert.ErrorIs(t, err, ErrNetwork)
	assert.ErrorIs(t, err, ErrServer)
	assert.NotErrorIs(t, err, ErrAPI)
	assert.Equal(t, "openai: unexpected status 502: <html>", err.Error())

	bare := &StatusError{Status: 418}
	assert.ErrorIs(t, bare, ErrNetwork)
	assert.Equal(t, "openai: unexpected status 418", bare.Error())
}

func TestKindWrappers(t *testing.T) {
	cause := errors.New("boom")

	tests := []struct {
		name string
		wrap func(error) error
		kind error
	}{
		{"network", NetworkError, ErrNetwork},
		{"decode", DecodeError, ErrDecode},
		{"build", BuildError, ErrBuild},
		{"canceled", CanceledError, ErrCanceled},
		{"timeout", TimeoutError, ErrTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.wrap(cause)

			assert.ErrorIs(t, err, tt.kind)
			assert.ErrorIs(t, err, cause)
			assert.Equal(t, tt.kind.Error()+": boom", err.Error())
			assert.NoError(t, tt.wrap(nil))
		})
	}
}

func TestKindWrapperKeepsCauseType(t *testing.T) {
	var v struct{ N int }
	decodeErr := json.Unmarshal([]byte(`{"N":"x"}`), &v)
	require.Error(t, decodeErr)

	err := DecodeError(decodeErr)

	var typeErr *json.UnmarshalTypeError
	assert.ErrorAs(t, err, &typeErr)

	canceled := CanceledError(context.Canceled)
	assert.ErrorIs(t, canceled, context.Canceled)
}

func TestBuildf(t *testing.T) {
	err := Buildf("field %q is empty", "file")

	assert.ErrorIs(t, err, ErrBuild)
	assert.True(t, strings.Contains(err.Error(), `field "file" is empty`))
}

func TestSentinelsAreDistinct(t *testing.T) {
	sentinels := []error{
		ErrNetwork, ErrEmptyData, ErrDecode, ErrBuild, ErrAPI, ErrCanceled, ErrTimeout,
		ErrBadRequest, ErrUnauthorized, ErrNotFound, ErrRateLimited, ErrServer,
	}

	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j {
				assert.NotErrorIs(t, a, b, "%v matched %v", a, b)
			}
		}
	}
}
