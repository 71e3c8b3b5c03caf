package openai

import "context"

// StreamEvent is one frame delivered on a ChannelStream: a decoded value or
// the error for a frame that could not be decoded.
type StreamEvent[T any] struct {
	Value T
	Err   error
}

// ChannelStream exposes a StreamingSession as channels.
//
// Events is closed when the stream ends; Err then returns the terminal error.
// A consumer that stops reading must call Cancel or cancel ctx, otherwise the
// session blocks on the unread event.
type ChannelStream[T any] struct {
	Events <-chan StreamEvent[T]

	session *StreamingSession[T]
}

// Session returns the underlying session.
func (s *ChannelStream[T]) Session() *StreamingSession[T] {
	return s.session
}

// Cancel cancels the underlying session.
func (s *ChannelStream[T]) Cancel() {
	s.session.Cancel()
}

// Done is closed when the stream has terminated.
func (s *ChannelStream[T]) Done() <-chan struct{} {
	return s.session.Done()
}

// Err returns the terminal error once Events is closed.
func (s *ChannelStream[T]) Err() error {
	return s.session.Err()
}

// channelStream wires a session's callbacks to a channel. A pending send is
// abandoned once the session context ends.
func channelStream[T any](start func(ResultHandler[T], StreamCompletion) *StreamingSession[T]) *ChannelStream[T] {
	events := make(chan StreamEvent[T])
	started := make(chan struct{})
	var session *StreamingSession[T]

	onResult := func(v T, err error) {
		<-started
		select {
		case events <- StreamEvent[T]{Value: v, Err: err}:
		case <-session.ctx.Done():
		}
	}
	onComplete := func(error) {
		close(events)
	}

	session = start(onResult, onComplete)
	close(started)

	return &ChannelStream[T]{Events: events, session: session}
}

// CompletionsStreamChannel is CompletionsStream delivered on a channel.
func (c *Client) CompletionsStreamChannel(ctx context.Context, q CompletionsQuery) *ChannelStream[CompletionsResult] {
	return channelStream(func(onResult ResultHandler[CompletionsResult], onComplete StreamCompletion) *StreamingSession[CompletionsResult] {
		return c.CompletionsStream(ctx, q, onResult, onComplete)
	})
}

// ChatsStreamChannel is ChatsStream delivered on a channel.
func (c *Client) ChatsStreamChannel(ctx context.Context, q ChatQuery) *ChannelStream[ChatStreamResult] {
	return channelStream(func(onResult ResultHandler[ChatStreamResult], onComplete StreamCompletion) *StreamingSession[ChatStreamResult] {
		return c.ChatsStream(ctx, q, onResult, onComplete)
	})
}
