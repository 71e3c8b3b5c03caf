package openai

import (
	"fmt"
	"slices"
)

// AudioFileType is the container format of an uploaded audio file.
type AudioFileType string

const (
	AudioFLAC AudioFileType = "flac"
	AudioMP3  AudioFileType = "mp3"
	AudioMPGA AudioFileType = "mpga"
	AudioMP4  AudioFileType = "mp4"
	AudioM4A  AudioFileType = "m4a"
	AudioMPEG AudioFileType = "mpeg"
	AudioOGG  AudioFileType = "ogg"
	AudioWAV  AudioFileType = "wav"
	AudioWEBM AudioFileType = "webm"
)

var audioFileTypes = []AudioFileType{
	AudioFLAC, AudioMP3, AudioMPGA, AudioMP4, AudioM4A, AudioMPEG, AudioOGG, AudioWAV, AudioWEBM,
}

// Valid reports whether t is an accepted upload format.
func (t AudioFileType) Valid() bool {
	return slices.Contains(audioFileTypes, t)
}

// filename is the name the upload is sent under.
func (t AudioFileType) filename() string {
	return "file." + string(t)
}

// AudioTranscriptionQuery is the form body of /v1/audio/transcriptions.
type AudioTranscriptionQuery struct {
	File           []byte
	FileType       AudioFileType
	Model          string
	Prompt         string
	ResponseFormat string
	Temperature    *float64
	Language       string
}

// EncodeForm implements FormEncoder.
func (q AudioTranscriptionQuery) EncodeForm(w *FormWriter) error {
	if err := writeAudioFile(w, q.FileType, q.File); err != nil {
		return err
	}
	if err := writeFields(w,
		field{"model", q.Model},
		field{"prompt", q.Prompt},
		field{"response_format", q.ResponseFormat},
		field{"language", q.Language},
	); err != nil {
		return err
	}
	return w.WriteFloat("temperature", q.Temperature)
}

// AudioTranslationQuery is the form body of /v1/audio/translations.
// The result is always English.
type AudioTranslationQuery struct {
	File           []byte
	FileType       AudioFileType
	Model          string
	Prompt         string
	ResponseFormat string
	Temperature    *float64
}

// EncodeForm implements FormEncoder.
func (q AudioTranslationQuery) EncodeForm(w *FormWriter) error {
	if err := writeAudioFile(w, q.FileType, q.File); err != nil {
		return err
	}
	if err := writeFields(w,
		field{"model", q.Model},
		field{"prompt", q.Prompt},
		field{"response_format", q.ResponseFormat},
	); err != nil {
		return err
	}
	return w.WriteFloat("temperature", q.Temperature)
}

func writeAudioFile(w *FormWriter, t AudioFileType, data []byte) error {
	if !t.Valid() {
		return fmt.Errorf("unsupported audio file type %q", t)
	}
	return w.WriteFile("file", t.filename(), data)
}

// AudioTranscriptionResult is returned by /v1/audio/transcriptions.
type AudioTranscriptionResult struct {
	Text string `json:"text"`
}

// AudioTranslationResult is returned by /v1/audio/translations.
type AudioTranslationResult struct {
	Text string `json:"text"`
}

// AudioSpeechQuery is the body of /v1/audio/speech.
type AudioSpeechQuery struct {
	Model          string   `json:"model"`
	Input          string   `json:"input"`
	Voice          string   `json:"voice"`
	ResponseFormat string   `json:"response_format,omitempty"`
	Speed          *float64 `json:"speed,omitempty"`
}

// AudioSpeechResult holds the encoded audio returned by /v1/audio/speech.
type AudioSpeechResult struct {
	Audio []byte
}
