package terminal

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/de-tools/diag-audit/pkg/runtime/terminal/commands"
	"github.com/de-tools/diag-audit/pkg/runtime/terminal/report"
	"github.com/de-tools/diag-audit/pkg/services/config"
)

// CLI represents the command-line interface
type CLI struct {
	backend   commands.Backend
	globals   *commands.Globals
	output    io.Writer
	errOutput io.Writer
	rootCmd   *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Backend   commands.Backend
	Output    io.Writer
	ErrOutput io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.ErrOutput == nil {
		opts.ErrOutput = os.Stderr
	}

	cli := &CLI{
		backend:   opts.Backend,
		globals:   &commands.Globals{},
		output:    opts.Output,
		errOutput: opts.ErrOutput,
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute(ctx context.Context) error {
	return cli.rootCmd.ExecuteContext(ctx)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "diag-audit",
		Short:             "Audit Azure diagnostic settings across subscriptions",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: cli.setup,
	}
	cmd.SetOut(cli.output)
	cmd.SetErr(cli.errOutput)

	cmd.PersistentFlags().StringVarP(&cli.globals.ConfigPath, "config", "c", "",
		"Path to a config file (yaml, json or toml)")
	cmd.PersistentFlags().StringVar(&cli.globals.LogLevel, "log-level", "",
		"Log level: debug, info, warn, error (overrides log.level)")
	cmd.PersistentFlags().BoolVar(&cli.globals.NoColor, "no-color", false, "Disable colored output")

	cmd.AddCommand(commands.NewAuditCmd(cli.globals, cli.backend, cli.output, cli.errOutput))
	cmd.AddCommand(commands.NewSubscriptionsCmd(cli.globals, cli.backend, cli.output))
	cmd.AddCommand(commands.NewCategoriesCmd())

	return cmd
}

// setup loads the configuration and attaches a logger to the command context.
func (cli *CLI) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadConfig(cli.globals.ConfigPath)
	if err != nil {
		return err
	}
	cli.globals.Config = cfg

	levelName := cfg.Log.Level
	if cli.globals.LogLevel != "" {
		levelName = cli.globals.LogLevel
	}
	level, err := zerolog.ParseLevel(levelName)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", levelName, err)
	}

	noColor := cli.globals.NoColor || cfg.Log.NoColor
	cli.globals.Progress = report.NewProgressBar(cli.errOutput, noColor)

	logger := zerolog.New(zerolog.ConsoleWriter{
		Out:        cli.globals.Progress,
		NoColor:    noColor,
		TimeFormat: time.TimeOnly,
	}).Level(level).With().Timestamp().Logger()

	cmd.SetContext(logger.WithContext(cmd.Context()))
	return nil
}
