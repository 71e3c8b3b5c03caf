// Package openai is a client for the OpenAI REST API.
//
// Every endpoint has one method taking a typed query. Single-response methods
// dispatch on their own goroutine and return a [core.Future]; the optional
// completion callback fires exactly once with the result or the error:
//
//	client := openai.NewWithToken(os.Getenv("OPENAI_API_KEY"))
//
//	resp, err := client.Chats(ctx, openai.ChatQuery{
//	    Model:    "gpt-4o-mini",
//	    Messages: []openai.ChatMessage{openai.NewChatMessage(openai.RoleUser, "Hello")},
//	}, nil).Await(ctx)
//
// # Streaming
//
// CompletionsStream and ChatsStream return a [StreamingSession]. Frames are
// delivered in order on the session goroutine, then the completion callback
// receives nil or the terminal error:
//
//	session := client.ChatsStream(ctx, query,
//	    func(chunk openai.ChatStreamResult, err error) {
//	        if err == nil {
//	            fmt.Print(chunk.Text())
//	        }
//	    },
//	    func(err error) { done <- err },
//	)
//	defer session.Cancel()
//
// A frame that fails to decode is reported to the result callback and the
// stream continues. [Client.Close] cancels every live session.
//
// # Errors
//
// Errors are classified with the sentinels in package core. A non-2xx
// response with an API error body becomes a [core.APIError]; without one it
// becomes a [core.StatusError].
package openai
