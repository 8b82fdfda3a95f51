package sink

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/seatplan/pkg/compose"
	"github.com/matzehuels/seatplan/pkg/exam"
	"github.com/matzehuels/seatplan/pkg/roster"
	"github.com/matzehuels/seatplan/pkg/seating"
)

var (
	textTitleStyle  = lipgloss.NewStyle().Bold(true)
	textHeaderStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	textCellStyle   = lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Right)
	textShadeStyle  = textCellStyle.Faint(true)
	textDimStyle    = lipgloss.NewStyle().Faint(true)
)

// RenderText renders a composition as terminal text: one table per room for
// a seat plan, or a single table for a duty roster. A result that is not
// ready renders its reason.
func RenderText(res compose.Result) string {
	if !res.Ready {
		return textDimStyle.Render("Nothing to render: "+res.Reason) + "\n"
	}

	var b strings.Builder
	b.WriteString(textTitleStyle.Render(res.Kind.Title()))
	b.WriteString("\n")
	for _, line := range res.Document.Header {
		b.WriteString(textDimStyle.Render(line))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch {
	case res.SeatPlan != nil:
		for i, room := range res.SeatPlan.Rooms {
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString(RoomText(room, res.SeatPlan.Style))
		}
	case res.Roster != nil:
		b.WriteString(RosterTable(res.Roster.Rows))
		b.WriteString("\n")
	}
	return b.String()
}

// RoomText renders one room's heading and seat grid. Row style labels rows
// R1, R2, ...; Zig-Zag style dims alternating cells.
func RoomText(p seating.RoomPlan, style exam.SeatingStyle) string {
	var b strings.Builder
	b.WriteString(textTitleStyle.Render(fmt.Sprintf("%s (%d seats)", p.Room, p.Count)))
	if r := p.Range(); r != "" {
		b.WriteString("  " + textDimStyle.Render("Seats "+r))
	}
	b.WriteString("\n")

	if p.Grid.Rows() == 0 {
		b.WriteString(textDimStyle.Render("No students assigned"))
		b.WriteString("\n")
		return b.String()
	}

	labelled := style == exam.StyleRow
	rows := make([][]string, p.Grid.Rows())
	for r, seats := range p.Grid {
		row := make([]string, 0, len(seats)+1)
		if labelled {
			row = append(row, fmt.Sprintf("R%d", r+1))
		}
		for _, s := range seats {
			row = append(row, s.String())
		}
		rows[r] = row
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderRow(false).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if labelled && col == 0 {
				return textHeaderStyle
			}
			seatCol := col
			if labelled {
				seatCol--
			}
			if style == exam.StyleZigZag && (row+seatCol)%2 == 1 {
				return textShadeStyle
			}
			return textCellStyle
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	return b.String()
}

// RosterTable renders duty roster rows as a table. Rooms without an
// invigilator show [roster.Placeholder].
func RosterTable(rows []compose.RosterRow) string {
	data := make([][]string, len(rows))
	for i, r := range rows {
		seats := ""
		if r.Seats > 0 {
			seats = fmt.Sprintf("%d (%s)", r.Seats, r.Range)
		}
		inv := roster.Entry{Room: r.Room, Invigilator: r.Invigilator}.Display()
		data[i] = []string{fmt.Sprint(r.Index), r.Room, inv, seats}
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "Room", "Invigilator", "Seats").
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return textHeaderStyle
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	return t.Render()
}
