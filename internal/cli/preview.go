package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/seatplan/pkg/compose"
	"github.com/matzehuels/seatplan/pkg/pipeline"
	"github.com/matzehuels/seatplan/pkg/render/sink"
)

// previewCommand creates the preview command, which prints a composition
// to the terminal instead of writing files.
func (c *CLI) previewCommand() *cobra.Command {
	var (
		kind   string
		asJSON bool
		layout bool
	)

	cmd := &cobra.Command{
		Use:   "preview [file]",
		Short: "Print a seat plan or duty roster to the terminal",
		Long: `Print a seat plan or duty roster to the terminal as tables, or as the
JSON preview structure with --json. --layout prints the paginated layout
itself (pages, placements, footers and drawing operations) as JSON.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			v := viperForCmd(cmd, logger)

			k, err := compose.ParseKind(kind)
			if err != nil {
				return err
			}
			opts := pageOptions(v)
			opts.Kind = k
			opts.Logger = logger

			f, err := pipeline.LoadInput(args[0])
			if err != nil {
				return err
			}

			runner, err := c.newRunner(ctx, cacheSettingsFrom(v), nil)
			if err != nil {
				return err
			}
			defer runner.Close()

			if asJSON {
				data, cached, err := runner.Preview(ctx, f, opts)
				if err != nil {
					return err
				}
				logger.Debug("Preview ready", "cached", cached)
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}

			res, err := runner.Compose(ctx, f, opts)
			if err != nil {
				return err
			}
			if layout && res.Ready {
				data, err := sink.RenderDocumentJSON(res.Document, true)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), sink.RenderText(res))
			return nil
		},
	}

	cmd.Flags().StringVarP(&kind, "kind", "k", string(pipeline.DefaultKind), "document kind: seat-plan, duty-roster")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the JSON preview structure")
	cmd.Flags().BoolVar(&layout, "layout", false, "print the paginated layout as JSON")
	cmd.MarkFlagsMutuallyExclusive("json", "layout")
	addPageFlags(cmd.Flags())
	addCacheFlags(cmd.Flags())

	return cmd
}
