package commands

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/petal-labs/openaikit/cli/config"
	"github.com/petal-labs/openaikit/openai"
)

// ConfigLoader loads CLI config from a path.
type ConfigLoader func(path string) (*config.Config, error)

// ClientFactory creates an API client from CLI config.
type ClientFactory func(cfg *config.Config, logger *zap.Logger) (*openai.Client, error)

// AppOption customizes App dependencies.
type AppOption func(*App)

// App holds CLI state and runtime dependencies.
type App struct {
	root *cobra.Command

	loadConfig   ConfigLoader
	createClient ClientFactory
	stdin        io.Reader
	stdout       io.Writer
	stderr       io.Writer
	cfgFile      string
	model        string
	jsonOutput   bool
	verbose      bool
	cfg          *config.Config
	logger       *zap.Logger
}

// WithConfigLoader injects a config loader dependency.
func WithConfigLoader(loader ConfigLoader) AppOption {
	return func(a *App) {
		if loader != nil {
			a.loadConfig = loader
		}
	}
}

// WithClientFactory injects a client factory dependency.
func WithClientFactory(factory ClientFactory) AppOption {
	return func(a *App) {
		if factory != nil {
			a.createClient = factory
		}
	}
}

// WithIO injects process I/O streams.
func WithIO(stdin io.Reader, stdout, stderr io.Writer) AppOption {
	return func(a *App) {
		if stdin != nil {
			a.stdin = stdin
		}
		if stdout != nil {
			a.stdout = stdout
		}
		if stderr != nil {
			a.stderr = stderr
		}
	}
}

// NewApp creates a new CLI app with default dependencies.
func NewApp(opts ...AppOption) *App {
	a := &App{
		loadConfig:   config.LoadConfig,
		createClient: defaultClientFactory,
		stdin:        os.Stdin,
		stdout:       os.Stdout,
		stderr:       os.Stderr,
		logger:       zap.NewNop(),
	}

	for _, opt := range opts {
		opt(a)
	}

	a.root = a.newRootCommand()
	return a
}

func (a *App) newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "openaikit",
		Short: "openaikit - command-line client for the OpenAI API",
		Long: `openaikit is a command-line client for the OpenAI API.

The API key is read from OPENAI_API_KEY. Other settings come from
~/.openaikit/config.yaml and the OPENAI_* environment variables.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initConfig()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags available to all commands.
	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is ~/.openaikit/config.yaml)")
	root.PersistentFlags().StringVar(&a.model, "model", "", "model ID (e.g. gpt-4o)")
	root.PersistentFlags().BoolVar(&a.jsonOutput, "json", false, "emit JSON output")
	root.PersistentFlags().BoolVar(&a.verbose, "verbose", false, "enable debug logging")

	root.AddCommand(a.newInitCommand())
	root.AddCommand(a.newVersionCommand())
	root.AddCommand(a.newModelsCommand())
	root.AddCommand(a.newModelCommand())
	root.AddCommand(a.newChatCommand())
	root.AddCommand(a.newCompleteCommand())
	root.AddCommand(a.newEditCommand())
	root.AddCommand(a.newEmbedCommand())
	root.AddCommand(a.newModerateCommand())
	root.AddCommand(a.newImageCommand())
	root.AddCommand(a.newAudioCommand())

	return root
}

// Execute runs the root command.
func (a *App) Execute() error {
	return a.ExecuteContext(context.Background())
}

// ExecuteContext runs the root command with ctx.
func (a *App) ExecuteContext(ctx context.Context) error {
	err := a.root.ExecuteContext(ctx)
	if err != nil {
		a.printError(err)
	}
	return err
}

// SetArgs overrides the command-line arguments.
func (a *App) SetArgs(args []string) {
	a.root.SetArgs(args)
}

func (a *App) initConfig() error {
	if a.verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return err
		}
		a.logger = logger
	}

	path := a.cfgFile
	if path == "" {
		path = config.DefaultConfigPath()
	}

	cfg, err := a.loadConfig(path)
	if err != nil {
		return exitWithCode(ExitValidation, err)
	}
	a.cfg = cfg

	if a.model == "" && cfg.DefaultModel != "" {
		a.model = cfg.DefaultModel
	}

	a.logger.Debug("config loaded", zap.String("path", path), zap.String("host", cfg.Host))
	return nil
}

// client creates the API client for a command.
func (a *App) client() (*openai.Client, error) {
	c, err := a.createClient(a.cfg, a.logger)
	if err != nil {
		return nil, exitWithCode(ExitValidation, err)
	}
	return c, nil
}

// requireModel returns the effective model or a validation error.
func (a *App) requireModel() (string, error) {
	if a.model == "" {
		return "", validationErrorf("model required: use --model flag or set default_model in config")
	}
	return a.model, nil
}

func defaultClientFactory(cfg *config.Config, logger *zap.Logger) (*openai.Client, error) {
	if cfg.APIKey == "" {
		return nil, openai.ErrTokenRequired
	}
	return openai.New(cfg.ClientConfiguration(), openai.WithLogger(logger)), nil
}

var defaultApp = NewApp()

// Execute runs the default app root command.
func Execute(ctx context.Context) error {
	return defaultApp.ExecuteContext(ctx)
}
