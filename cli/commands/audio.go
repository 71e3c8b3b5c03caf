package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/petal-labs/openaikit/openai"
)

// errBinaryToTerminal is returned when speech output would go to a terminal.
var errBinaryToTerminal = errors.New("refusing to write audio to a terminal: use --out or redirect stdout")

func (a *App) newAudioCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audio",
		Short: "Transcribe, translate and synthesize audio",
	}
	cmd.AddCommand(a.newAudioTranscribeCommand())
	cmd.AddCommand(a.newAudioTranslateCommand())
	cmd.AddCommand(a.newAudioSpeechCommand())
	return cmd
}

// audioFile reads path and derives the upload type from its extension.
func audioFile(path string) ([]byte, openai.AudioFileType, error) {
	ft := openai.AudioFileType(strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), "."))
	if !ft.Valid() {
		return nil, "", validationErrorf("unsupported audio file %s: use flac, mp3, mpga, mp4, m4a, mpeg, ogg, wav or webm", path)
	}
	data, err := readInputFile(path)
	if err != nil {
		return nil, "", err
	}
	return data, ft, nil
}

func (a *App) newAudioTranscribeCommand() *cobra.Command {
	var model, language, prompt string
	cmd := &cobra.Command{
		Use:   "transcribe <file>",
		Short: "Transcribe audio in its source language",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, ft, err := audioFile(args[0])
			if err != nil {
				return err
			}
			client, err := a.client()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			resp, err := client.AudioTranscriptions(ctx, openai.AudioTranscriptionQuery{
				File:     data,
				FileType: ft,
				Model:    model,
				Language: language,
				Prompt:   prompt,
			}, nil).Await(ctx)
			if err != nil {
				return classify(err)
			}
			if a.jsonOutput {
				return a.writeJSON(resp.Result)
			}
			fmt.Fprintln(a.stdout, resp.Result.Text)
			return nil
		},
	}
	cmd.Flags().StringVar(&model, "audio-model", "whisper-1", "Transcription model")
	cmd.Flags().StringVar(&language, "language", "", "ISO-639-1 language of the audio")
	cmd.Flags().StringVar(&prompt, "prompt", "", "Text to guide the model's style")
	return cmd
}

func (a *App) newAudioTranslateCommand() *cobra.Command {
	var model, prompt string
	cmd := &cobra.Command{
		Use:   "translate <file>",
		Short: "Translate audio into English text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, ft, err := audioFile(args[0])
			if err != nil {
				return err
			}
			client, err := a.client()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			resp, err := client.AudioTranslations(ctx, openai.AudioTranslationQuery{
				File:     data,
				FileType: ft,
				Model:    model,
				Prompt:   prompt,
			}, nil).Await(ctx)
			if err != nil {
				return classify(err)
			}
			if a.jsonOutput {
				return a.writeJSON(resp.Result)
			}
			fmt.Fprintln(a.stdout, resp.Result.Text)
			return nil
		},
	}
	cmd.Flags().StringVar(&model, "audio-model", "whisper-1", "Translation model")
	cmd.Flags().StringVar(&prompt, "prompt", "", "Text to guide the model's style")
	return cmd
}

func (a *App) newAudioSpeechCommand() *cobra.Command {
	var model, input, voice, format, out string
	cmd := &cobra.Command{
		Use:   "speech",
		Short: "Synthesize speech from text",
		Long: `Synthesize speech from text. Audio is written to --out, or to stdout
when it is not a terminal.

Example:
  openaikit audio speech --input "Hello" --voice alloy --out hello.mp3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" && isTerminal(a.stdout) {
				return exitWithCode(ExitValidation, errBinaryToTerminal)
			}
			client, err := a.client()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			resp, err := client.AudioCreateSpeech(ctx, openai.AudioSpeechQuery{
				Model:          model,
				Input:          input,
				Voice:          voice,
				ResponseFormat: format,
			}, nil).Await(ctx)
			if err != nil {
				return classify(err)
			}

			if out == "" {
				_, err := a.stdout.Write(resp.Result.Audio)
				return err
			}
			if err := os.WriteFile(out, resp.Result.Audio, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(a.stderr, "wrote %d bytes to %s\n", len(resp.Result.Audio), out)
			return nil
		},
	}
	cmd.Flags().StringVar(&model, "audio-model", "tts-1", "Speech model")
	cmd.Flags().StringVar(&input, "input", "", "Text to speak (required)")
	cmd.Flags().StringVar(&voice, "voice", "alloy", "Voice")
	cmd.Flags().StringVar(&format, "format", "", "Audio format, e.g. mp3, opus, flac")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
