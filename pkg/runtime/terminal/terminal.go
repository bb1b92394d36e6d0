package terminal

import (
	"io"
	"os"

	"github.com/de-tools/deal-atlas/pkg/runtime/terminal/commands"
	"github.com/de-tools/deal-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/deal-atlas/pkg/services/deal"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	newController deal.ControllerFactory
	formats       export.Registry
	output        io.Writer
	logOutput     io.Writer
	rootCmd       *cobra.Command

	profilesFile string
	debug        bool
}

// Options contain configuration for the CLI
type Options struct {
	ControllerFactory deal.ControllerFactory
	Formats           export.Registry
	Output            io.Writer
	// LogOutput receives the structured logs, stderr by default
	LogOutput io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.LogOutput == nil {
		opts.LogOutput = os.Stderr
	}
	if opts.Formats == nil {
		opts.Formats = export.NewDefaultRegistry()
	}
	if opts.ControllerFactory == nil {
		opts.ControllerFactory = deal.NewControllerFromFile
	}

	cli := &CLI{
		newController: opts.ControllerFactory,
		formats:       opts.Formats,
		output:        opts.Output,
		logOutput:     opts.LogOutput,
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

// SetArgs overrides the command line arguments, mainly for tests.
func (cli *CLI) SetArgs(args []string) {
	cli.rootCmd.SetArgs(args)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "deal-atlas",
		Short:             "Real estate deal analysis tool",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: cli.setupLogger,
	}
	cmd.SetOut(cli.output)
	cmd.SetErr(cli.logOutput)

	cmd.PersistentFlags().BoolVar(&cli.debug, "debug", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&cli.profilesFile, "profiles-file", "",
		"Path to the assumption profiles file (default is $HOME/.dealatlascfg)")

	output := export.NewOutput(cli.formats, cli.output)
	cmd.AddCommand(commands.NewAnalyzeCmd(cli.newController, cli.formats, output, &cli.profilesFile))
	cmd.AddCommand(commands.NewProfilesCmd(cli.newController, &cli.profilesFile))

	return cmd
}

func (cli *CLI) setupLogger(cmd *cobra.Command, _ []string) error {
	level := zerolog.InfoLevel
	if cli.debug {
		level = zerolog.DebugLevel
	}

	logger := zerolog.New(zerolog.SyncWriter(cli.logOutput)).Level(level).With().Timestamp().Logger()
	cmd.SetContext(logger.WithContext(cmd.Context()))
	return nil
}
