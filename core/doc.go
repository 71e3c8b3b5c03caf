// Package core holds the types shared by the openaikit client and its adapters:
// the result envelope, the once-settable Future, the error taxonomy, the
// redacting Secret and the telemetry hook.
//
// # Error Handling
//
// Every failure reaches the caller through the same channel as success. Errors
// are classified with sentinels:
//   - [ErrNetwork]: transport failure, or a non-2xx status without a structured body
//   - [ErrEmptyData]: the transport succeeded but returned no bytes
//   - [ErrDecode]: bytes did not match the declared result type
//   - [ErrAPI]: the API returned its own structured error ([APIError])
//   - [ErrBuild]: the request could not be constructed
//   - [ErrCanceled], [ErrTimeout]: the call was cancelled or timed out
//
// The original cause stays reachable:
//
//	var syntaxErr *json.SyntaxError
//	if errors.Is(err, core.ErrDecode) && errors.As(err, &syntaxErr) {
//	    // malformed JSON at syntaxErr.Offset
//	}
//
//	var apiErr *core.APIError
//	if errors.As(err, &apiErr) && errors.Is(err, core.ErrRateLimited) {
//	    // apiErr.Code, apiErr.Message
//	}
//
// # Futures
//
// Single-response calls return a [Future] that settles exactly once:
//
//	resp, err := client.Chats(ctx, query, nil).Await(ctx)
//
// # Telemetry
//
// Implement [TelemetryHook] to observe calls. Events never contain tokens or
// payloads.
package core
