package terminal

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/de-tools/bp-atlas/pkg/runtime/terminal/commands"
	"github.com/de-tools/bp-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/bp-atlas/pkg/services/config"
	"github.com/de-tools/bp-atlas/pkg/services/ingest"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	env        *commands.Env
	reporter   *export.Reporter
	logOutput  io.Writer
	configPath string
	rootCmd    *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Output    io.Writer
	LogOutput io.Writer
	// NewFetcher overrides how s3:// sources are fetched.
	NewFetcher func(ctx context.Context) (ingest.Fetcher, error)
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.LogOutput == nil {
		opts.LogOutput = os.Stderr
	}

	cli := &CLI{
		env:       &commands.Env{NewFetcher: opts.NewFetcher},
		reporter:  export.NewReporter(opts.Output),
		logOutput: opts.LogOutput,
	}

	cli.rootCmd = cli.newRootCmd()
	cli.rootCmd.SetOut(opts.Output)
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) ExecuteContext(ctx context.Context, args ...string) error {
	cli.rootCmd.SetArgs(args)
	return cli.rootCmd.ExecuteContext(ctx)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "bpatlas",
		Short:             "Blood pressure report extraction tool",
		SilenceUsage:      true,
		PersistentPreRunE: cli.setup,
	}

	cmd.PersistentFlags().StringVarP(&cli.configPath, "config", "c", "", "Path to the config file (YAML, TOML or JSON)")

	cmd.AddCommand(commands.NewParseCmd(cli.env, cli.reporter))
	cmd.AddCommand(commands.NewImportCmd(cli.env))
	cmd.AddCommand(commands.NewReadingsCmd(cli.env, cli.reporter))
	cmd.AddCommand(commands.NewDialectsCmd(cli.env))

	return cmd
}

func (cli *CLI) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadConfig(cli.configPath)
	if err != nil {
		return err
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	logger := zerolog.New(cli.logOutput).Level(level).With().Timestamp().Logger()

	dialects, err := config.NewDialectRegistry(cfg.DialectsPath)
	if err != nil {
		return err
	}

	cli.env.Config = cfg
	cli.env.Dialects = dialects

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logger.WithContext(ctx))
	return nil
}
