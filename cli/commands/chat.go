package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/petal-labs/openaikit/openai"
)

type chatOptions struct {
	prompt         string
	system         string
	temperature    float64
	temperatureSet bool
	maxTokens      int
	stream         bool
}

func (o *chatOptions) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.prompt, "prompt", "", "User message (required)")
	cmd.Flags().Float64Var(&o.temperature, "temperature", 0, "Sampling temperature (server default when unset)")
	cmd.Flags().IntVar(&o.maxTokens, "max-tokens", 0, "Max tokens (0 = use default)")
	cmd.Flags().BoolVar(&o.stream, "stream", false, "Enable streaming output")
	_ = cmd.MarkFlagRequired("prompt")
}

// readChanged records which optional flags were given, so an explicit zero is sent.
func (o *chatOptions) readChanged(cmd *cobra.Command) {
	o.temperatureSet = cmd.Flags().Changed("temperature")
}

func (o *chatOptions) temperaturePtr() *float64 {
	if !o.temperatureSet {
		return nil
	}
	return &o.temperature
}

func (o *chatOptions) maxTokensPtr() *int {
	if o.maxTokens <= 0 {
		return nil
	}
	return &o.maxTokens
}

func (a *App) newChatCommand() *cobra.Command {
	opts := &chatOptions{}
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Send a chat completion request",
		Long: `Send a chat completion request.

Examples:
  openaikit chat --model gpt-4o --prompt "Hello"
  openaikit chat --prompt "Hello" --stream
  openaikit chat --prompt "Hello" --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.readChanged(cmd)
			return a.runChat(cmd.Context(), opts)
		},
	}
	opts.bind(cmd)
	cmd.Flags().StringVar(&opts.system, "system", "", "System message")
	return cmd
}

func (a *App) runChat(ctx context.Context, opts *chatOptions) error {
	model, err := a.requireModel()
	if err != nil {
		return err
	}
	client, err := a.client()
	if err != nil {
		return err
	}

	var messages []openai.ChatMessage
	if opts.system != "" {
		messages = append(messages, openai.NewChatMessage(openai.RoleSystem, opts.system))
	}
	messages = append(messages, openai.NewChatMessage(openai.RoleUser, opts.prompt))

	query := openai.ChatQuery{
		Model:       model,
		Messages:    messages,
		Temperature: opts.temperaturePtr(),
		MaxTokens:   opts.maxTokensPtr(),
	}

	if !opts.stream {
		resp, err := client.Chats(ctx, query, nil).Await(ctx)
		if err != nil {
			return classify(err)
		}
		if a.jsonOutput {
			return a.writeJSON(resp.Result)
		}
		if len(resp.Result.Choices) > 0 {
			fmt.Fprintln(a.stdout, resp.Result.Choices[0].Message.Content.String())
		}
		a.logUsage(resp.Result.Usage)
		return nil
	}

	var text strings.Builder
	stream := client.ChatsStreamChannel(ctx, query)
	for ev := range stream.Events {
		if ev.Err != nil {
			a.logger.Warn("skipped malformed chunk", zap.Error(ev.Err))
			continue
		}
		delta := ev.Value.Text()
		text.WriteString(delta)
		if !a.jsonOutput {
			fmt.Fprint(a.stdout, delta)
		}
	}
	if err := stream.Err(); err != nil {
		if !a.jsonOutput {
			fmt.Fprintln(a.stdout)
		}
		return classify(err)
	}

	if a.jsonOutput {
		return a.writeJSON(map[string]string{"model": model, "output": text.String()})
	}
	fmt.Fprintln(a.stdout)
	return nil
}

func (a *App) newCompleteCommand() *cobra.Command {
	opts := &chatOptions{}
	cmd := &cobra.Command{
		Use:   "complete",
		Short: "Send a text completion request",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.readChanged(cmd)
			return a.runComplete(cmd.Context(), opts)
		},
	}
	opts.bind(cmd)
	return cmd
}

func (a *App) runComplete(ctx context.Context, opts *chatOptions) error {
	model, err := a.requireModel()
	if err != nil {
		return err
	}
	client, err := a.client()
	if err != nil {
		return err
	}

	query := openai.CompletionsQuery{
		Model:       model,
		Prompt:      opts.prompt,
		Temperature: opts.temperaturePtr(),
		MaxTokens:   opts.maxTokensPtr(),
	}

	if !opts.stream {
		resp, err := client.Completions(ctx, query, nil).Await(ctx)
		if err != nil {
			return classify(err)
		}
		if a.jsonOutput {
			return a.writeJSON(resp.Result)
		}
		if len(resp.Result.Choices) > 0 {
			fmt.Fprintln(a.stdout, resp.Result.Choices[0].Text)
		}
		a.logUsage(resp.Result.Usage)
		return nil
	}

	var text strings.Builder
	stream := client.CompletionsStreamChannel(ctx, query)
	for ev := range stream.Events {
		if ev.Err != nil {
			a.logger.Warn("skipped malformed chunk", zap.Error(ev.Err))
			continue
		}
		if len(ev.Value.Choices) == 0 {
			continue
		}
		delta := ev.Value.Choices[0].Text
		text.WriteString(delta)
		if !a.jsonOutput {
			fmt.Fprint(a.stdout, delta)
		}
	}
	if err := stream.Err(); err != nil {
		return classify(err)
	}

	if a.jsonOutput {
		return a.writeJSON(map[string]string{"model": model, "output": text.String()})
	}
	fmt.Fprintln(a.stdout)
	return nil
}

func (a *App) logUsage(u *openai.Usage) {
	if u == nil {
		return
	}
	a.logger.Debug("usage",
		zap.Int("prompt_tokens", u.PromptTokens),
		zap.Int("completion_tokens", u.CompletionTokens),
		zap.Int("total_tokens", u.TotalTokens))
}
