package openai

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/petal-labs/openaikit/core"
	"github.com/petal-labs/openaikit/internal/normalize"
	"github.com/petal-labs/openaikit/internal/sse"
)

// doneToken is the payload of the frame that ends a stream.
const doneToken = "[DONE]"

var errIdleTimeout = errors.New("no stream data within timeout")

// SessionState is the lifecycle state of a StreamingSession.
type SessionState int32

const (
	StateIdle SessionState = iota
	StateOpen
	StateClosedOK
	StateClosedError
)

func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateOpen:
		return "open"
	case StateClosedOK:
		return "closed-ok"
	case StateClosedError:
		return "closed-error"
	default:
		return "unknown"
	}
}

// Terminal reports whether the state is closed-ok or closed-error.
func (s SessionState) Terminal() bool {
	return s == StateClosedOK || s == StateClosedError
}

// ResultHandler receives each frame of a stream: a decoded value, or the
// error for a frame that could not be decoded. A bad frame does not end the stream.
type ResultHandler[T any] func(T, error)

// StreamCompletion receives the terminal signal of a stream: nil when the stream
// ended cleanly, the error otherwise. It is called exactly once.
type StreamCompletion func(error)

// StreamingSession is the caller's handle on one open streaming connection.
//
// Callbacks run on a single goroutine owned by the session, strictly in frame
// arrival order. Callbacks must not call Wait on their own session.
type StreamingSession[T any] struct {
	id         uuid.UUID
	client     *Client
	desc       requestDescriptor
	onResult   ResultHandler[T]
	onComplete StreamCompletion

	ctx    context.Context
	cancel context.CancelCauseFunc

	mu    sync.Mutex
	state SessionState
	err   error
	done  chan struct{}
}

func newStreamingSession[T any](
	ctx context.Context,
	c *Client,
	d requestDescriptor,
	onResult ResultHandler[T],
	onComplete StreamCompletion,
) *StreamingSession[T] {
	ctx, cancel := context.WithCancelCause(ctx)
	return &StreamingSession[T]{
		id:         uuid.New(),
		client:     c,
		desc:       d,
		onResult:   onResult,
		onComplete: onComplete,
		ctx:        ctx,
		cancel:     cancel,
		done:       make(chan struct{}),
	}
}

// performStreaming registers a session and starts it. It never blocks on the network.
func performStreaming[T any](
	ctx context.Context,
	c *Client,
	d requestDescriptor,
	onResult ResultHandler[T],
	onComplete StreamCompletion,
) *StreamingSession[T] {
	s := newStreamingSession(ctx, c, d, onResult, onComplete)
	c.sessions.add(s.id, s)
	go s.run()
	return s
}

// ID returns the session identity.
func (s *StreamingSession[T]) ID() uuid.UUID {
	return s.id
}

// State returns the current lifecycle state.
func (s *StreamingSession[T]) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Err returns the terminal error, or nil while the session is live or after a clean end.
func (s *StreamingSession[T]) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Done is closed after the completion callback has returned.
func (s *StreamingSession[T]) Done() <-chan struct{} {
	return s.done
}

// Wait blocks until the session terminates or ctx is done, and returns the terminal error.
func (s *StreamingSession[T]) Wait(ctx context.Context) error {
	select {
	case <-s.done:
		return s.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Cancel moves the session to closed-error and closes the connection.
// Cancel does not wait for the delivery goroutine: a result callback that is
// already running, or that passed its final state check while Cancel was
// running, may complete after Cancel returns. No other result callback fires.
// The completion callback receives core.ErrCanceled.
// Cancel on a terminated session does nothing.
func (s *StreamingSession[T]) Cancel() {
	s.mu.Lock()
	if s.state.Terminal() {
		s.mu.Unlock()
		return
	}
	s.state = StateClosedError
	s.err = core.CanceledError(context.Canceled)
	s.mu.Unlock()

	s.cancel(context.Canceled)
}

// run owns the connection and every callback of the session.
func (s *StreamingSession[T]) run() {
	trace := s.client.beginCall(s.desc, core.ShapeStream)

	status, frames, err := s.stream()
	err = s.settle(err)

	s.client.sessions.remove(s.id)
	trace.finish(status, frames, err)

	if s.onComplete != nil {
		s.onComplete(err)
	}
	close(s.done)
	s.cancel(nil)
}

// stream reads frames until the stream ends and returns the terminal error.
func (s *StreamingSession[T]) stream() (status, frames int, err error) {
	timeout := s.client.config.Timeout
	idle := time.AfterFunc(timeout, func() { s.cancel(errIdleTimeout) })
	defer idle.Stop()

	req, err := s.client.buildRequest(s.ctx, s.desc)
	if err != nil {
		return 0, 0, err
	}
	req.Header.Set("Accept", "text/event-stream")

	if !s.transition(StateIdle, StateOpen) {
		return 0, 0, s.interruption()
	}
	s.client.logger.Debug("stream opened", zap.Stringer("session", s.id), zap.String("path", s.desc.path))

	resp, err := s.client.httpClient.Do(req)
	if err != nil {
		return 0, 0, s.readError(err)
	}
	defer resp.Body.Close()
	status = resp.StatusCode

	if !isSuccess(status) {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return status, 0, s.readError(err)
		}
		return status, 0, normalize.Failure(status, body, resp.Header)
	}

	// Unblock a pending read as soon as the session is cancelled.
	stop := context.AfterFunc(s.ctx, func() { resp.Body.Close() })
	defer stop()

	dec := sse.NewDecoder(resp.Body)
	for {
		idle.Reset(timeout)
		frame, err := dec.Next()
		idle.Stop()

		if s.ctx.Err() != nil {
			return status, frames, s.interruption()
		}
		if errors.Is(err, io.EOF) {
			return status, frames, nil
		}
		if err != nil {
			return status, frames, s.readError(err)
		}
		if frame.Data == doneToken {
			return status, frames, nil
		}
		if !s.isOpen() {
			return status, frames, s.interruption()
		}

		frames++
		data := []byte(frame.Data)
		v, derr := decodeJSON[T](data)
		if derr != nil {
			ferr := normalize.Normalize(status, data, resp.Header, derr)
			s.client.logger.Warn("malformed stream frame",
				zap.Stringer("session", s.id),
				zap.Int("frame", frames),
				zap.Error(ferr))
			s.deliver(v, ferr)
			continue
		}
		s.deliver(v, nil)
	}
}

// deliver hands one frame to onResult unless the session was cancelled
// while the frame was being decoded.
func (s *StreamingSession[T]) deliver(v T, err error) {
	if s.onResult == nil || !s.isOpen() {
		return
	}
	s.onResult(v, err)
}

// settle records the terminal state unless Cancel already did, and returns
// the error that won.
func (s *StreamingSession[T]) settle(err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.Terminal() {
		s.err = err
		if err != nil {
			s.state = StateClosedError
		} else {
			s.state = StateClosedOK
		}
	}
	return s.err
}

func (s *StreamingSession[T]) transition(from, to SessionState) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != from {
		return false
	}
	s.state = to
	return true
}

func (s *StreamingSession[T]) isOpen() bool {
	return s.State() == StateOpen
}

// interruption classifies why the session context ended.
func (s *StreamingSession[T]) interruption() error {
	cause := context.Cause(s.ctx)
	switch {
	case errors.Is(cause, errIdleTimeout), errors.Is(cause, context.DeadlineExceeded):
		return core.TimeoutError(cause)
	default:
		return core.CanceledError(cause)
	}
}

// readError classifies a transport failure while the session is live.
func (s *StreamingSession[T]) readError(err error) error {
	if s.ctx.Err() != nil {
		return s.interruption()
	}
	return core.NetworkError(err)
}

// sessionHandle is the registry's view of a session.
type sessionHandle interface {
	Cancel()
}

// sessionRegistry tracks live sessions so Client.Close can cancel them.
type sessionRegistry struct {
	mu   sync.Mutex
	live map[uuid.UUID]sessionHandle
}

func newSessionRegistry() *sessionRegistry {
	return &sessionRegistry{live: make(map[uuid.UUID]sessionHandle)}
}

func (r *sessionRegistry) add(id uuid.UUID, s sessionHandle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.live[id] = s
}

func (r *sessionRegistry) remove(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.live, id)
}

func (r *sessionRegistry) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.live)
}

// cancelAll cancels every live session and returns how many there were.
// Sessions deregister themselves once their goroutine finishes.
func (r *sessionRegistry) cancelAll() int {
	r.mu.Lock()
	handles := make([]sessionHandle, 0, len(r.live))
	for _, s := range r.live {
		handles = append(handles, s)
	}
	r.mu.Unlock()

	for _, s := range handles {
		s.Cancel()
	}
	return len(handles)
}
