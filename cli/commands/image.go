package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/petal-labs/openaikit/core"
	"github.com/petal-labs/openaikit/openai"
)

type imageOptions struct {
	prompt string
	size   string
	n      int
	format string
	image  string
	mask   string
}

func (o *imageOptions) count() *int {
	if o.n <= 0 {
		return nil
	}
	return &o.n
}

func (a *App) newImageCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "image",
		Short: "Generate and edit images",
	}
	cmd.AddCommand(a.newImageGenerateCommand())
	cmd.AddCommand(a.newImageEditCommand())
	cmd.AddCommand(a.newImageVariationCommand())
	return cmd
}

func (o *imageOptions) bindCommon(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.size, "size", "", "Image size, e.g. 1024x1024")
	cmd.Flags().IntVar(&o.n, "n", 0, "Number of images (0 = server default)")
	cmd.Flags().StringVar(&o.format, "response-format", "", "url or b64_json")
}

func (a *App) newImageGenerateCommand() *cobra.Command {
	opts := &imageOptions{}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate images from a prompt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			resp, err := client.Images(ctx, openai.ImagesQuery{
				Prompt:         opts.prompt,
				Model:          a.imageModel(),
				N:              opts.count(),
				Size:           opts.size,
				ResponseFormat: opts.format,
			}, nil).Await(ctx)
			return a.printImages(resp, err)
		},
	}
	cmd.Flags().StringVar(&opts.prompt, "prompt", "", "Image description (required)")
	_ = cmd.MarkFlagRequired("prompt")
	opts.bindCommon(cmd)
	return cmd
}

func (a *App) newImageEditCommand() *cobra.Command {
	opts := &imageOptions{}
	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit an image",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			image, err := readInputFile(opts.image)
			if err != nil {
				return err
			}
			var mask []byte
			if opts.mask != "" {
				if mask, err = readInputFile(opts.mask); err != nil {
					return err
				}
			}

			client, err := a.client()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			resp, err := client.ImageEdits(ctx, openai.ImageEditsQuery{
				Image:          image,
				Mask:           mask,
				Prompt:         opts.prompt,
				Model:          a.imageModel(),
				N:              opts.count(),
				Size:           opts.size,
				ResponseFormat: opts.format,
			}, nil).Await(ctx)
			return a.printImages(resp, err)
		},
	}
	cmd.Flags().StringVar(&opts.image, "image", "", "PNG image to edit (required)")
	cmd.Flags().StringVar(&opts.mask, "mask", "", "PNG mask marking the area to edit")
	cmd.Flags().StringVar(&opts.prompt, "prompt", "", "Description of the edit (required)")
	_ = cmd.MarkFlagRequired("image")
	_ = cmd.MarkFlagRequired("prompt")
	opts.bindCommon(cmd)
	return cmd
}

func (a *App) newImageVariationCommand() *cobra.Command {
	opts := &imageOptions{}
	cmd := &cobra.Command{
		Use:   "variation",
		Short: "Create variations of an image",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			image, err := readInputFile(opts.image)
			if err != nil {
				return err
			}
			client, err := a.client()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			resp, err := client.ImageVariations(ctx, openai.ImageVariationsQuery{
				Image:          image,
				Model:          a.imageModel(),
				N:              opts.count(),
				Size:           opts.size,
				ResponseFormat: opts.format,
			}, nil).Await(ctx)
			return a.printImages(resp, err)
		},
	}
	cmd.Flags().StringVar(&opts.image, "image", "", "PNG image (required)")
	_ = cmd.MarkFlagRequired("image")
	opts.bindCommon(cmd)
	return cmd
}

// imageModel returns the model only when set on the command line, since the
// configured default is a chat model.
func (a *App) imageModel() string {
	if f := a.root.PersistentFlags().Lookup("model"); f != nil && f.Changed {
		return a.model
	}
	return ""
}

func (a *App) printImages(resp *core.Response[openai.ImagesResult], err error) error {
	if err != nil {
		return classify(err)
	}
	if a.jsonOutput {
		return a.writeJSON(resp.Result)
	}
	for i, img := range resp.Result.Data {
		switch {
		case img.URL != "":
			fmt.Fprintf(a.stdout, "%d\t%s\n", i, img.URL)
		default:
			fmt.Fprintf(a.stdout, "%d\t<b64_json, %d bytes>\n", i, len(img.B64JSON))
		}
		if img.RevisedPrompt != "" {
			fmt.Fprintf(a.stdout, "\trevised prompt: %s\n", img.RevisedPrompt)
		}
	}
	return nil
}

func readInputFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, exitWithCode(ExitValidation, fmt.Errorf("read %s: %w", path, err))
	}
	return data, nil
}
