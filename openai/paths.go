package openai

import "net/url"

// API paths, relative to the configured host.
const (
	completionsPath         = "/v1/completions"
	chatsPath               = "/v1/chat/completions"
	editsPath               = "/v1/edits"
	embeddingsPath          = "/v1/embeddings"
	modelsPath              = "/v1/models"
	moderationsPath         = "/v1/moderations"
	imagesPath              = "/v1/images/generations"
	imageEditsPath          = "/v1/images/edits"
	imageVariationsPath     = "/v1/images/variations"
	audioTranscriptionsPath = "/v1/audio/transcriptions"
	audioTranslationsPath   = "/v1/audio/translations"
	audioSpeechPath         = "/v1/audio/speech"
)

// withPath appends one escaped path segment.
func withPath(base, segment string) string {
	return base + "/" + url.PathEscape(segment)
}
