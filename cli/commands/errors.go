package commands

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/petal-labs/openaikit/core"
)

// Exit codes
const (
	ExitSuccess    = 0
	ExitValidation = 1
	ExitAPI        = 2
	ExitNetwork    = 3
)

// exitError wraps an error with an exit code.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

func (e *exitError) ExitCode() int {
	return e.code
}

func exitWithCode(code int, err error) error {
	return &exitError{code: code, err: err}
}

func validationErrorf(format string, args ...any) error {
	return exitWithCode(ExitValidation, fmt.Errorf(format, args...))
}

// classify maps a client error to its exit code.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return err
	}

	switch {
	case errors.Is(err, core.ErrBuild):
		return exitWithCode(ExitValidation, err)
	case errors.Is(err, core.ErrAPI):
		return exitWithCode(ExitAPI, err)
	case errors.Is(err, core.ErrNetwork), errors.Is(err, core.ErrTimeout), errors.Is(err, core.ErrEmptyData):
		return exitWithCode(ExitNetwork, err)
	default:
		return exitWithCode(ExitAPI, err)
	}
}

// errorType names the error class in JSON output.
func errorType(err error) string {
	switch {
	case errors.Is(err, core.ErrAPI):
		return "api_error"
	case errors.Is(err, core.ErrBuild):
		return "validation_error"
	case errors.Is(err, core.ErrTimeout):
		return "timeout"
	case errors.Is(err, core.ErrCanceled):
		return "canceled"
	case errors.Is(err, core.ErrNetwork):
		return "network_error"
	case errors.Is(err, core.ErrDecode):
		return "decode_error"
	default:
		var ee *exitError
		if errors.As(err, &ee) && ee.code == ExitValidation {
			return "validation_error"
		}
		return "error"
	}
}

func (a *App) printError(err error) {
	var apiErr *core.APIError
	hasAPIErr := errors.As(err, &apiErr)

	if a.jsonOutput {
		body := map[string]any{
			"type":    errorType(err),
			"message": err.Error(),
		}
		if hasAPIErr {
			body["message"] = apiErr.Message
			body["status"] = apiErr.Status
			if apiErr.Code != "" {
				body["code"] = apiErr.Code
			}
			if apiErr.RequestID != "" {
				body["request_id"] = apiErr.RequestID
			}
		}
		enc := json.NewEncoder(a.stderr)
		enc.SetIndent("", "  ")
		_ = enc.Encode(map[string]any{"error": body})
		return
	}

	if hasAPIErr {
		fmt.Fprintf(a.stderr, "Error: %s\n", apiErr.Message)
		if apiErr.RequestID != "" {
			fmt.Fprintf(a.stderr, "  Status: %d, Request ID: %s\n", apiErr.Status, apiErr.RequestID)
		}
		return
	}
	fmt.Fprintf(a.stderr, "Error: %v\n", err)
}

// writeJSON prints v as indented JSON on stdout.
func (a *App) writeJSON(v any) error {
	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
