package cli

import (
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/seatplan/pkg/compose"
	"github.com/matzehuels/seatplan/pkg/paginate"
	"github.com/matzehuels/seatplan/pkg/pipeline"
)

// completionCommand prints a shell completion script. Flag values for
// --format, --page-size and --kind complete from the values the pipeline
// accepts.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a shell completion script for seatplan.

  $ source <(seatplan completion bash)
  $ seatplan completion zsh > "${fpath[1]}/_seatplan"
  $ seatplan completion fish | source
  PS> seatplan completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}

// flagCompletions maps flag names to their value completers.
var flagCompletions = map[string]cobra.CompletionFunc{
	"format":    completeFormats,
	keyPageSize: completePageSizes,
	"kind":      completeKinds,
}

// registerFlagCompletions attaches value completers to every command in the
// tree that defines one of the completed flags.
func registerFlagCompletions(cmd *cobra.Command) {
	for name, fn := range flagCompletions {
		if cmd.Flags().Lookup(name) != nil {
			_ = cmd.RegisterFlagCompletionFunc(name, fn)
		}
	}
	for _, sub := range cmd.Commands() {
		registerFlagCompletions(sub)
	}
}

// completeFormats completes a comma-separated format list, offering only
// formats not already given.
func completeFormats(_ *cobra.Command, _ []string, toComplete string) ([]cobra.Completion, cobra.ShellCompDirective) {
	prefix := ""
	if i := strings.LastIndex(toComplete, ","); i >= 0 {
		prefix = toComplete[:i+1]
	}
	seen := make(map[string]bool)
	for _, f := range strings.Split(prefix, ",") {
		seen[strings.TrimSpace(f)] = true
	}

	var out []cobra.Completion
	for _, f := range slices.Sorted(maps.Keys(pipeline.ValidFormats)) {
		if !seen[f] {
			out = append(out, prefix+f)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
}

func completePageSizes(_ *cobra.Command, _ []string, _ string) ([]cobra.Completion, cobra.ShellCompDirective) {
	return []cobra.Completion{
		cobra.CompletionWithDesc(paginate.A4.Name, "210 x 297 mm"),
		cobra.CompletionWithDesc(paginate.Letter.Name, "8.5 x 11 in"),
	}, cobra.ShellCompDirectiveNoFileComp
}

func completeKinds(_ *cobra.Command, _ []string, _ string) ([]cobra.Completion, cobra.ShellCompDirective) {
	return []cobra.Completion{
		cobra.CompletionWithDesc(string(compose.KindSeatPlan), "numbered seat grid per room"),
		cobra.CompletionWithDesc(string(compose.KindDutyRoster), "invigilators per room"),
	}, cobra.ShellCompDirectiveNoFileComp
}
