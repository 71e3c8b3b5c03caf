package openai

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/petal-labs/openaikit/core"
	"github.com/petal-labs/openaikit/internal/normalize"
)

// Completion receives the outcome of a single-response call. Exactly one of
// the arguments is non-nil, and the function is called at most once.
type Completion[T any] func(*core.Response[T], error)

// decodeStrategy turns a non-empty 2xx body into a result.
type decodeStrategy[T any] func(body []byte) (T, error)

// errErrorEnvelope marks a body that decoded as T but carries an error object.
// The normalizer turns it into a *core.APIError.
var errErrorEnvelope = errors.New("body carries an error object")

// decodeJSON decodes body as T. A body holding an error object fails even when
// it matches T, since unknown fields are ignored.
func decodeJSON[T any](body []byte) (T, error) {
	var v T
	if err := json.Unmarshal(body, &v); err != nil {
		var zero T
		return zero, core.DecodeError(err)
	}
	if normalize.HasError(body) {
		var zero T
		return zero, core.DecodeError(errErrorEnvelope)
	}
	return v, nil
}

// decodeSpeech wraps the raw bytes without decoding them.
func decodeSpeech(body []byte) (AudioSpeechResult, error) {
	return AudioSpeechResult{Audio: body}, nil
}

// perform dispatches d on its own goroutine. The returned future settles
// exactly once; completion, if set, is called after it settles.
func perform[T any](
	ctx context.Context,
	c *Client,
	d requestDescriptor,
	shape core.CallShape,
	decode decodeStrategy[T],
	completion Completion[T],
) *core.Future[*core.Response[T]] {
	fut := core.NewFuture[*core.Response[T]]()

	go func() {
		resp, err := execute(ctx, c, d, shape, decode)
		if fut.Resolve(resp, err) && completion != nil {
			completion(resp, err)
		}
	}()

	return fut
}

// execute runs one buffered call.
func execute[T any](
	ctx context.Context,
	c *Client,
	d requestDescriptor,
	shape core.CallShape,
	decode decodeStrategy[T],
) (*core.Response[T], error) {
	trace := c.beginCall(d, shape)

	status, header, body, err := c.roundTrip(ctx, d)
	if err != nil {
		trace.finish(status, 0, err)
		return nil, err
	}

	resp, err := handleResponse(status, header, body, decode)
	trace.finish(status, 0, err)
	return resp, err
}

// handleResponse applies the decode-then-normalize policy to a buffered response.
func handleResponse[T any](status int, header http.Header, body []byte, decode decodeStrategy[T]) (*core.Response[T], error) {
	if !isSuccess(status) {
		return nil, normalize.Failure(status, body, header)
	}
	if len(body) == 0 {
		return nil, core.ErrEmptyData
	}

	v, err := decode(body)
	if err != nil {
		return nil, normalize.Normalize(status, body, header, err)
	}
	return &core.Response[T]{Result: v, Header: header}, nil
}

// roundTrip builds and sends the request, buffering the whole body.
// The configured timeout bounds the call end to end.
func (c *Client) roundTrip(ctx context.Context, d requestDescriptor) (int, http.Header, []byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	req, err := c.buildRequest(ctx, d)
	if err != nil {
		return 0, nil, nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, nil, transportError(ctx, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, resp.Header, nil, transportError(ctx, err)
	}
	return resp.StatusCode, resp.Header, body, nil
}

// transportError classifies a failure of the HTTP client.
func transportError(ctx context.Context, err error) error {
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return core.TimeoutError(err)
	case errors.Is(ctx.Err(), context.Canceled):
		return core.CanceledError(err)
	default:
		return core.NetworkError(err)
	}
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}
