package commands

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/de-tools/deal-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/deal-atlas/pkg/services/batch"
	"github.com/de-tools/deal-atlas/pkg/services/deal"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type AnalyzeCmd struct {
	profilesFile  *string
	profile       string
	format        string
	write         bool
	outputDir     string
	debugView     bool
	workers       int
	newController deal.ControllerFactory
	output        *export.Output
	formats       export.Registry
}

func NewAnalyzeCmd(
	newController deal.ControllerFactory,
	formats export.Registry,
	output *export.Output,
	profilesFile *string,
) *cobra.Command {
	ac := &AnalyzeCmd{
		profilesFile:  profilesFile,
		newController: newController,
		output:        output,
		formats:       formats,
	}
	cmd := &cobra.Command{
		Use:   "analyze <input>...",
		Short: "Compute the investment metrics of one or more deals",
		Args:  cobra.MinimumNArgs(1),
		RunE:  ac.run,
	}

	cmd.Flags().StringVar(&ac.profile, "profile", "", "Assumption profile supplying defaults for omitted keys")
	cmd.Flags().StringVar(&ac.format, "format", export.FormatText,
		fmt.Sprintf("Report format (%s)", strings.Join(formats.ListFormats(), "|")))
	cmd.Flags().BoolVar(&ac.write, "write", false, "Write each report to the output directory instead of stdout")
	cmd.Flags().StringVar(&ac.outputDir, "output-dir", export.DefaultOutputDir, "Directory for written reports")
	cmd.Flags().BoolVar(&ac.debugView, "debug-view", false, "Show every computed field under its raw name")
	cmd.Flags().IntVar(&ac.workers, "parallel", 0, "Number of inputs analyzed concurrently (default is the CPU count)")

	return cmd
}

func (ac *AnalyzeCmd) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := zerolog.Ctx(ctx)

	ext, err := ac.formats.Extension(ac.format)
	if err != nil {
		return err
	}
	if ac.write {
		if err := checkOutputNames(args, ext, ac.outputDir); err != nil {
			return err
		}
	}

	ctrl, err := ac.newController(*ac.profilesFile)
	if err != nil {
		return err
	}

	opts := deal.Options{Profile: ac.profile, Debug: ac.debugView}
	dest := export.Destination{Format: ac.format, Write: ac.write, OutputDir: ac.outputDir}

	runner := batch.NewRunner(ctrl, batch.RunnerConfig{Workers: ac.workers})
	drained := make(chan struct{})
	go func() {
		defer close(drained)
		for p := range runner.Progress() {
			logger.Debug().
				Str("input", p.LastInput).
				Int("processed", p.Processed).
				Int("failed", p.Failed).
				Int("total", p.Total).
				Msg("analysis progress")
		}
	}()
	outcomes := runner.Run(ctx, args, opts)
	<-drained

	var errs []error
	for _, outcome := range outcomes {
		if outcome.Err != nil {
			errs = append(errs, fmt.Errorf("failed to analyze %s: %w", outcome.Input, outcome.Err))
			continue
		}

		path, err := ac.output.Deliver(outcome.Report, dest)
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to deliver report for %s: %w", outcome.Input, err))
			continue
		}
		if path != "" {
			logger.Info().Str("input", outcome.Input).Str("report", path).Msg("report written")
		}
	}

	return errors.Join(errs...)
}

// checkOutputNames fails when two inputs would be written to the same report
// file, e.g. a/deal.yml and b/deal.yml.
func checkOutputNames(inputs []string, ext, dir string) error {
	if dir == "" {
		dir = export.DefaultOutputDir
	}
	seen := make(map[string]string, len(inputs))
	for _, input := range inputs {
		path := filepath.Join(dir, export.OutputName(input, ext))
		if prev, ok := seen[path]; ok {
			return fmt.Errorf("inputs %s and %s both write %s", prev, input, path)
		}
		seen[path] = input
	}
	return nil
}
