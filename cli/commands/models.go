package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/petal-labs/openaikit/openai"
)

// maxLookups bounds concurrent model lookups.
const maxLookups = 4

func (a *App) newModelsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List available models",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			resp, err := client.Models(ctx, nil).Await(ctx)
			if err != nil {
				return classify(err)
			}

			if a.jsonOutput {
				return a.writeJSON(resp.Result)
			}
			for _, m := range resp.Result.Data {
				fmt.Fprintf(a.stdout, "%s\t%s\n", m.ID, m.OwnedBy)
			}
			return nil
		},
	}
}

func (a *App) newModelCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "model <id>...",
		Short: "Look up one or more models",
		Long: `Look up models by ID. Lookups run concurrently; output keeps argument order.

Example:
  openaikit model gpt-4o gpt-4o-mini`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}

			results := make([]openai.ModelResult, len(args))
			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(maxLookups)
			for i, id := range args {
				i, id := i, id
				g.Go(func() error {
					resp, err := client.Model(ctx, openai.ModelQuery{Model: id}, nil).Await(ctx)
					if err != nil {
						return fmt.Errorf("model %s: %w", id, err)
					}
					results[i] = resp.Result
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return classify(err)
			}

			if a.jsonOutput {
				return a.writeJSON(results)
			}
			for _, m := range results {
				fmt.Fprintf(a.stdout, "%s\t%s\t%d\n", m.ID, m.OwnedBy, m.Created)
			}
			return nil
		},
	}
}
