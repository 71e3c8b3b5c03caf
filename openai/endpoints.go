package openai

import (
	"context"

	"github.com/petal-labs/openaikit/core"
)

// Completions creates a text completion.
func (c *Client) Completions(ctx context.Context, q CompletionsQuery, completion Completion[CompletionsResult]) *core.Future[*core.Response[CompletionsResult]] {
	return perform(ctx, c, jsonRequest(completionsPath, q), core.ShapeJSON, decodeJSON[CompletionsResult], completion)
}

// CompletionsStream streams a text completion. The query is sent with
// streaming enabled regardless of q.Stream.
func (c *Client) CompletionsStream(ctx context.Context, q CompletionsQuery, onResult ResultHandler[CompletionsResult], completion StreamCompletion) *StreamingSession[CompletionsResult] {
	return performStreaming(ctx, c, jsonRequest(completionsPath, q.Streamable()), onResult, completion)
}

// Chats creates a chat completion.
func (c *Client) Chats(ctx context.Context, q ChatQuery, completion Completion[ChatResult]) *core.Future[*core.Response[ChatResult]] {
	return perform(ctx, c, jsonRequest(chatsPath, q), core.ShapeJSON, decodeJSON[ChatResult], completion)
}

// ChatsStream streams a chat completion as deltas.
func (c *Client) ChatsStream(ctx context.Context, q ChatQuery, onResult ResultHandler[ChatStreamResult], completion StreamCompletion) *StreamingSession[ChatStreamResult] {
	return performStreaming(ctx, c, jsonRequest(chatsPath, q.Streamable()), onResult, completion)
}

// Edits edits text following an instruction.
func (c *Client) Edits(ctx context.Context, q EditsQuery, completion Completion[EditsResult]) *core.Future[*core.Response[EditsResult]] {
	return perform(ctx, c, jsonRequest(editsPath, q), core.ShapeJSON, decodeJSON[EditsResult], completion)
}

// Embeddings creates embedding vectors.
func (c *Client) Embeddings(ctx context.Context, q EmbeddingsQuery, completion Completion[EmbeddingsResult]) *core.Future[*core.Response[EmbeddingsResult]] {
	return perform(ctx, c, jsonRequest(embeddingsPath, q), core.ShapeJSON, decodeJSON[EmbeddingsResult], completion)
}

// Model looks up one model with GET /v1/models/{id}.
func (c *Client) Model(ctx context.Context, q ModelQuery, completion Completion[ModelResult]) *core.Future[*core.Response[ModelResult]] {
	return perform(ctx, c, getRequest(withPath(modelsPath, q.Model)), core.ShapeJSON, decodeJSON[ModelResult], completion)
}

// Models lists the available models.
func (c *Client) Models(ctx context.Context, completion Completion[ModelsResult]) *core.Future[*core.Response[ModelsResult]] {
	return perform(ctx, c, getRequest(modelsPath), core.ShapeJSON, decodeJSON[ModelsResult], completion)
}

// Moderations classifies input against the content policy.
func (c *Client) Moderations(ctx context.Context, q ModerationsQuery, completion Completion[ModerationsResult]) *core.Future[*core.Response[ModerationsResult]] {
	return perform(ctx, c, jsonRequest(moderationsPath, q), core.ShapeJSON, decodeJSON[ModerationsResult], completion)
}

// Images generates images from a prompt.
func (c *Client) Images(ctx context.Context, q ImagesQuery, completion Completion[ImagesResult]) *core.Future[*core.Response[ImagesResult]] {
	return perform(ctx, c, jsonRequest(imagesPath, q), core.ShapeJSON, decodeJSON[ImagesResult], completion)
}

// ImageEdits edits an image. The body is sent as multipart/form-data.
func (c *Client) ImageEdits(ctx context.Context, q ImageEditsQuery, completion Completion[ImagesResult]) *core.Future[*core.Response[ImagesResult]] {
	return perform(ctx, c, formRequest(imageEditsPath, q), core.ShapeJSON, decodeJSON[ImagesResult], completion)
}

// ImageVariations creates variations of an image.
func (c *Client) ImageVariations(ctx context.Context, q ImageVariationsQuery, completion Completion[ImagesResult]) *core.Future[*core.Response[ImagesResult]] {
	return perform(ctx, c, formRequest(imageVariationsPath, q), core.ShapeJSON, decodeJSON[ImagesResult], completion)
}

// AudioTranscriptions transcribes audio in its source language.
func (c *Client) AudioTranscriptions(ctx context.Context, q AudioTranscriptionQuery, completion Completion[AudioTranscriptionResult]) *core.Future[*core.Response[AudioTranscriptionResult]] {
	return perform(ctx, c, formRequest(audioTranscriptionsPath, q), core.ShapeJSON, decodeJSON[AudioTranscriptionResult], completion)
}

// AudioTranslations translates audio into English.
func (c *Client) AudioTranslations(ctx context.Context, q AudioTranslationQuery, completion Completion[AudioTranslationResult]) *core.Future[*core.Response[AudioTranslationResult]] {
	return perform(ctx, c, formRequest(audioTranslationsPath, q), core.ShapeJSON, decodeJSON[AudioTranslationResult], completion)
}

// AudioCreateSpeech synthesizes speech. A successful response body is
// returned as-is in AudioSpeechResult.Audio.
func (c *Client) AudioCreateSpeech(ctx context.Context, q AudioSpeechQuery, completion Completion[AudioSpeechResult]) *core.Future[*core.Response[AudioSpeechResult]] {
	return perform(ctx, c, jsonRequest(audioSpeechPath, q), core.ShapeBinary, decodeSpeech, completion)
}
