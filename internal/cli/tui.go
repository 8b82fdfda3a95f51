package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/seatplan/pkg/compose"
	"github.com/matzehuels/seatplan/pkg/pipeline"
	"github.com/matzehuels/seatplan/pkg/render/sink"
)

// Pager styles
var (
	pagerTabStyle    = lipgloss.NewStyle().Foreground(colorDim).Padding(0, 1)
	pagerActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(colorTeal).Padding(0, 1)
	pagerDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
)

// viewCommand creates the view command, an interactive room-by-room pager.
func (c *CLI) viewCommand() *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "view [file]",
		Short: "Browse a seat plan room by room in the terminal",
		Args:  cobra.ExactArgs(1),
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

			// Composition is cheap and nothing is rendered, so no cache.
			runner := pipeline.NewRunner(nil, nil, logger)
			res, err := runner.Compose(ctx, f, opts)
			if err != nil {
				return err
			}
			if !res.Ready {
				printWarning("Nothing to show: %s", res.Reason)
				return nil
			}

			_, err = tea.NewProgram(NewPagerModel(res), tea.WithContext(ctx)).Run()
			return err
		},
	}

	cmd.Flags().StringVarP(&kind, "kind", "k", string(pipeline.DefaultKind), "document kind: seat-plan, duty-roster")
	addPageFlags(cmd.Flags())

	return cmd
}

// =============================================================================
// PagerModel - Interactive room-by-room preview
// =============================================================================

// pagerPage is one screen of the pager.
type pagerPage struct {
	Tab  string
	Body string
}

// PagerModel is the bubbletea model for browsing a composition. A seat plan
// gets one page per room; a duty roster is a single page.
type PagerModel struct {
	Title  string
	Header []string
	Pages  []pagerPage
	Cursor int
}

// NewPagerModel creates a pager for a ready composition.
func NewPagerModel(res compose.Result) PagerModel {
	m := PagerModel{Title: res.Kind.Title(), Header: res.Document.Header}
	switch {
	case res.SeatPlan != nil:
		for _, room := range res.SeatPlan.Rooms {
			m.Pages = append(m.Pages, pagerPage{
				Tab:  room.Room,
				Body: sink.RoomText(room, res.SeatPlan.Style),
			})
		}
	case res.Roster != nil:
		m.Pages = []pagerPage{{Tab: "Invigilation Duty", Body: sink.RosterTable(res.Roster.Rows)}}
	}
	return m
}

func (m PagerModel) Init() tea.Cmd {
	return nil
}

func (m PagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h", "pgup", "shift+tab":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "right", "l", "pgdown", "tab", " ":
			if m.Cursor < len(m.Pages)-1 {
				m.Cursor++
			}
		case "home", "g":
			m.Cursor = 0
		case "end", "G":
			m.Cursor = max(0, len(m.Pages)-1)
		}
	}
	return m, nil
}

func (m PagerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")
	for _, line := range m.Header {
		b.WriteString(pagerDimStyle.Render(line))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if len(m.Pages) == 0 {
		b.WriteString(pagerDimStyle.Render("No rooms"))
		b.WriteString("\n")
		return b.String()
	}

	tabs := make([]string, len(m.Pages))
	for i, p := range m.Pages {
		if i == m.Cursor {
			tabs[i] = pagerActiveStyle.Render(p.Tab)
		} else {
			tabs[i] = pagerTabStyle.Render(p.Tab)
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n\n")
	b.WriteString(m.Pages[m.Cursor].Body)
	b.WriteString("\n")
	b.WriteString(pagerDimStyle.Render(fmt.Sprintf("  [%d/%d]  ←/→ rooms  q quit", m.Cursor+1, len(m.Pages))))
	b.WriteString("\n")

	return b.String()
}
