package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/seatplan/pkg/compose"
	"github.com/matzehuels/seatplan/pkg/errors"
	"github.com/matzehuels/seatplan/pkg/pipeline"
)

// generateOpts holds the command-line flags shared by seat-plan and roster.
type generateOpts struct {
	output  string // output directory, or "-" for stdout
	formats string // comma-separated output formats
	date    string // footer date override (YYYY-MM-DD)
	refresh bool   // bypass cache reads
}

// seatPlanCommand creates the seat-plan command.
func (c *CLI) seatPlanCommand() *cobra.Command {
	return c.generateCommand(compose.KindSeatPlan,
		"seat-plan [file]",
		"Render the seat plan for an exam",
		`Render the seat plan for an exam described by a TOML or JSON file.

Students are split across the configured rooms as evenly as possible, with
earlier rooms taking the remainder, and numbered continuously from room to
room. Each room is drawn as a grid with the configured number of columns.`)
}

// rosterCommand creates the roster command.
func (c *CLI) rosterCommand() *cobra.Command {
	cmd := c.generateCommand(compose.KindDutyRoster,
		"roster [file]",
		"Render the invigilation duty roster for an exam",
		`Render the invigilation duty roster for an exam described by a TOML or
JSON file. Invigilators are assigned to rooms in order, wrapping around when
there are more rooms than invigilators.`)
	cmd.Aliases = []string{"duty-roster"}
	return cmd
}

// generateCommand builds a document command for kind.
func (c *CLI) generateCommand(kind compose.Kind, use, short, long string) *cobra.Command {
	var opts generateOpts

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Long:  long,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(cmd, kind, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", ".", "output directory, or - for stdout (single format)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): pdf (default), svg, json, txt (comma-separated)")
	cmd.Flags().StringVar(&opts.date, "date", "", "date printed in page footers (default today)")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even when cached")
	addPageFlags(cmd.Flags())
	addCacheFlags(cmd.Flags())

	return cmd
}

// runGenerate loads the input, runs the pipeline and writes every artifact.
func (c *CLI) runGenerate(cmd *cobra.Command, kind compose.Kind, input string, g generateOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	v := viperForCmd(cmd, logger)

	opts := pageOptions(v)
	opts.Kind = kind
	opts.Formats = parseFormats(g.formats)
	opts.Date = g.date
	opts.Refresh = g.refresh
	opts.Logger = logger
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	if g.output == "-" && len(opts.Formats) != 1 {
		return errors.New(errors.ErrCodeInvalidInput, "writing to stdout needs exactly one format, got %d", len(opts.Formats))
	}
	if g.output != "-" {
		if err := errors.ValidateOutputPath(g.output); err != nil {
			return err
		}
	}

	f, err := pipeline.LoadInput(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, cacheSettingsFrom(v), nil)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	spinner := newSpinnerWithContext(ctx, os.Stderr, "Rendering "+kind.Title())
	spinner.Start()
	result, err := runner.Execute(ctx, f, opts)
	spinner.Stop()
	if err != nil {
		return err
	}
	if !result.Ready() {
		printWarning("Nothing to render: %s", result.Compose.Reason)
		return nil
	}
	prog.done(fmt.Sprintf("Rendered %s", kind.Title()))

	if g.output == "-" {
		_, err := cmd.OutOrStdout().Write(result.Artifacts[opts.Formats[0]])
		return err
	}
	printSuccess("%s for %s", kind.Title(), StyleHighlight.Render(f.Exam.Label()))
	printStats(result.Stats.Pages, result.Stats.Rooms, result.CacheInfo.RenderHit)
	for _, title := range result.Stats.Overflows {
		printWarning("%s is taller than a page and was shrunk to fit", title)
	}
	if err := writeArtifacts(ctx, g.output, result, opts.Formats); err != nil {
		return err
	}
	printNextStep("Browse it in the terminal", appName+" view "+input)
	return nil
}

// writeArtifacts writes each artifact into dir under its document filename.
func writeArtifacts(ctx context.Context, dir string, result *pipeline.Result, formats []string) error {
	logger := loggerFromContext(ctx)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	for _, format := range formats {
		path := filepath.Join(dir, result.Filename(format))
		if err := os.WriteFile(path, result.Artifacts[format], 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		logger.Debug("Wrote artifact", "path", path, "bytes", len(result.Artifacts[format]))
		printFile(path)
	}
	return nil
}

// pagesLabel formats a page count for status output.
func pagesLabel(n int) string {
	if n == 1 {
		return "1 page"
	}
	return strconv.Itoa(n) + " pages"
}
