package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/petal-labs/openaikit/cli/config"
)

type initOptions struct {
	model        string
	organization string
	host         string
}

func (a *App) newInitCommand() *cobra.Command {
	opts := &initOptions{}
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the CLI configuration file",
		Long: `Write ~/.openaikit/config.yaml (or --config).

Values come from flags, then from prompts when stdin is a terminal, then
from the current configuration. The API key is never stored; export
OPENAI_API_KEY instead.

Example:
  openaikit init --default-model gpt-4o`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runInit(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.model, "default-model", "", "Default model for chat, complete, edit and embed")
	cmd.Flags().StringVar(&opts.organization, "organization", "", "Organization ID sent with every request")
	cmd.Flags().StringVar(&opts.host, "host", "", "API host")
	return cmd
}

func (a *App) runInit(cmd *cobra.Command, opts *initOptions) error {
	path := a.cfgFile
	if path == "" {
		path = config.DefaultConfigPath()
	}

	cfg := *a.cfg
	interactive := isTerminalReader(a.stdin)
	reader := bufio.NewReader(a.stdin)

	fields := []struct {
		flag   string
		label  string
		value  string
		target *string
	}{
		{"default-model", "Default model", opts.model, &cfg.DefaultModel},
		{"organization", "Organization", opts.organization, &cfg.Organization},
		{"host", "API host", opts.host, &cfg.Host},
	}

	for _, f := range fields {
		if cmd.Flags().Changed(f.flag) {
			*f.target = f.value
			continue
		}
		if !interactive {
			continue
		}
		answer, err := a.prompt(reader, f.label, *f.target)
		if err != nil {
			return err
		}
		*f.target = answer
	}

	if err := config.SaveConfig(path, &cfg); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	fmt.Fprintf(a.stdout, "Wrote %s\n", path)
	if cfg.APIKey == "" {
		fmt.Fprintln(a.stdout, "\nNext steps:")
		fmt.Fprintln(a.stdout, "  export OPENAI_API_KEY=<your-key>")
		fmt.Fprintln(a.stdout, "  openaikit models")
	}
	return nil
}

// prompt asks for a value, returning current when the answer is empty.
func (a *App) prompt(r *bufio.Reader, label, current string) (string, error) {
	if current != "" {
		fmt.Fprintf(a.stdout, "%s [%s]: ", label, current)
	} else {
		fmt.Fprintf(a.stdout, "%s: ", label)
	}

	line, err := r.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read %s: %w", strings.ToLower(label), err)
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return current, nil
	}
	return line, nil
}

// isTerminalReader reports whether r is an interactive terminal.
func isTerminalReader(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
