package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/petal-labs/openaikit/openai"
)

func (a *App) newEditCommand() *cobra.Command {
	var input, instruction string
	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit text following an instruction",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			model, err := a.requireModel()
			if err != nil {
				return err
			}
			client, err := a.client()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			resp, err := client.Edits(ctx, openai.EditsQuery{Model: model, Input: input, Instruction: instruction}, nil).Await(ctx)
			if err != nil {
				return classify(err)
			}
			if a.jsonOutput {
				return a.writeJSON(resp.Result)
			}
			for _, c := range resp.Result.Choices {
				fmt.Fprintln(a.stdout, c.Text)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&input, "input", "", "Text to edit")
	cmd.Flags().StringVar(&instruction, "instruction", "", "How to edit the input (required)")
	_ = cmd.MarkFlagRequired("instruction")
	return cmd
}

func (a *App) newEmbedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "embed <text>...",
		Short: "Create embeddings for one or more texts",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			model, err := a.requireModel()
			if err != nil {
				return err
			}
			client, err := a.client()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			query := openai.EmbeddingsQuery{Model: model, Input: openai.EmbeddingsInput{Texts: args}}
			resp, err := client.Embeddings(ctx, query, nil).Await(ctx)
			if err != nil {
				return classify(err)
			}
			if a.jsonOutput {
				return a.writeJSON(resp.Result)
			}
			for _, e := range resp.Result.Data {
				fmt.Fprintf(a.stdout, "%d\t%d dims\t%s\n", e.Index, len(e.Embedding), preview(e.Embedding))
			}
			return nil
		},
	}
}

func (a *App) newModerateCommand() *cobra.Command {
	var model string
	cmd := &cobra.Command{
		Use:   "moderate <text>...",
		Short: "Classify texts against the content policy",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runModerate(cmd.Context(), model, args)
		},
	}
	cmd.Flags().StringVar(&model, "moderation-model", "", "Moderation model (server default when empty)")
	return cmd
}

func (a *App) runModerate(ctx context.Context, model string, texts []string) error {
	client, err := a.client()
	if err != nil {
		return err
	}

	query := openai.ModerationsQuery{Model: model, Input: openai.EmbeddingsInput{Texts: texts}}
	resp, err := client.Moderations(ctx, query, nil).Await(ctx)
	if err != nil {
		return classify(err)
	}
	if a.jsonOutput {
		return a.writeJSON(resp.Result)
	}
	for i, r := range resp.Result.Results {
		status := "ok"
		if r.Flagged {
			status = "flagged: " + strings.Join(r.FlaggedCategories(), ", ")
		}
		fmt.Fprintf(a.stdout, "%d\t%s\n", i, status)
	}
	return nil
}

// preview formats the first few components of a vector.
func preview(v []float64) string {
	const n = 3
	parts := make([]string, 0, n+1)
	for i, x := range v {
		if i == n {
			parts = append(parts, "...")
			break
		}
		parts = append(parts, fmt.Sprintf("%.4f", x))
	}
	return "[" + strings.Join(parts, " ") + "]"
}
