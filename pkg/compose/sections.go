package compose

import (
	"fmt"

	"github.com/matzehuels/seatplan/pkg/exam"
	"github.com/matzehuels/seatplan/pkg/paginate"
	"github.com/matzehuels/seatplan/pkg/roster"
	"github.com/matzehuels/seatplan/pkg/seating"
)

// Section geometry, in points.
const (
	sectionTitleHeight = 20.0
	sectionTitleSize   = 11.0
	cellHeight         = 20.0
	cellTextSize       = 9.0
	maxCellWidth       = 72.0
	rowLabelWidth      = 30.0
	tableRowHeight     = 18.0
)

// gridSection draws one room's seat grid. Style only changes decoration:
// Row adds row labels, Zig-Zag shades alternating cells.
func gridSection(p seating.RoomPlan, columns int, style exam.SeatingStyle) paginate.Section {
	title := fmt.Sprintf("%s (%d seats)", p.Room, p.Count)
	rows := max(1, p.Grid.Rows())

	return paginate.Section{
		Title:  title,
		Height: sectionTitleHeight + float64(rows)*cellHeight,
		Draw: func(c paginate.Canvas, box paginate.Box) {
			titleFont := paginate.Font{Size: sectionTitleSize, Bold: true}
			c.Text(box.X, box.Y+sectionTitleSize, box.W, title, titleFont, paginate.AlignLeft)
			if r := p.Range(); r != "" {
				c.Text(box.X, box.Y+sectionTitleSize, box.W, "Seats "+r, paginate.Font{Size: cellTextSize}, paginate.AlignRight)
			}

			top := box.Y + sectionTitleHeight
			if p.Grid.Rows() == 0 {
				c.Text(box.X, top+cellHeight*0.65, box.W, "No students assigned", paginate.Font{Size: cellTextSize}, paginate.AlignLeft)
				return
			}

			rowH, cellFont := fitRows(box, rows, cellHeight)

			left := box.X
			avail := box.W
			if style == exam.StyleRow {
				left += rowLabelWidth
				avail -= rowLabelWidth
			}
			cellW := min(maxCellWidth, avail/float64(columns))
			labelFont := paginate.Font{Size: cellFont.Size, Bold: true}

			for r, row := range p.Grid {
				y := top + float64(r)*rowH
				if style == exam.StyleRow {
					c.Text(box.X, y+rowH*0.65, rowLabelWidth-4, fmt.Sprintf("R%d", r+1), labelFont, paginate.AlignLeft)
				}
				for col, seat := range row {
					cell := paginate.Box{X: left + float64(col)*cellW, Y: y, W: cellW, H: rowH}
					var fill *paginate.Color
					if style == exam.StyleZigZag && (r+col)%2 == 1 {
						fill = &paginate.LightGray
					}
					c.Rect(cell, fill, true)
					if !seat.IsBlank() {
						c.Text(cell.X, y+rowH*0.65, cell.W, seat.String(), cellFont, paginate.AlignCenter)
					}
				}
			}
		},
	}
}

// fitRows returns the row height and cell font for n rows below the section
// title. Rows keep their natural height unless the box is shorter than
// that, in which case rows and text shrink so the last row ends at the box
// bottom.
func fitRows(box paginate.Box, n int, natural float64) (float64, paginate.Font) {
	rowH := natural
	if avail := box.H - sectionTitleHeight; n > 0 && float64(n)*natural > avail {
		rowH = max(0, avail) / float64(n)
	}
	return rowH, paginate.Font{Size: min(cellTextSize, rowH*0.7)}
}

// rosterColumns are the duty roster table columns as fractions of the width.
var rosterColumns = []struct {
	title string
	frac  float64
	align paginate.Align
}{
	{"#", 0.08, paginate.AlignCenter},
	{"Room", 0.34, paginate.AlignLeft},
	{"Invigilator", 0.34, paginate.AlignLeft},
	{"Seats", 0.24, paginate.AlignCenter},
}

// rosterSection draws the duty roster as a single table. An empty row list
// still renders the header row.
func rosterSection(rows []RosterRow) paginate.Section {
	const title = "Invigilation Duty"
	return paginate.Section{
		Title:  title,
		Height: sectionTitleHeight + float64(len(rows)+1)*tableRowHeight,
		Draw: func(c paginate.Canvas, box paginate.Box) {
			c.Text(box.X, box.Y+sectionTitleSize, box.W, title, paginate.Font{Size: sectionTitleSize, Bold: true}, paginate.AlignLeft)

			rowH, font := fitRows(box, len(rows)+1, tableRowHeight)
			t := table{box: box, rowH: rowH, font: font}

			y := box.Y + sectionTitleHeight
			headers := make([]string, len(rosterColumns))
			for i, col := range rosterColumns {
				headers[i] = col.title
			}
			t.row(c, y, headers, true)

			for _, row := range rows {
				y += rowH
				seats := ""
				if row.Seats > 0 {
					seats = fmt.Sprintf("%d (%s)", row.Seats, row.Range)
				}
				inv := roster.Entry{Room: row.Room, Invigilator: row.Invigilator}.Display()
				t.row(c, y, []string{fmt.Sprint(row.Index), row.Room, inv, seats}, false)
			}
		},
	}
}

// table draws roster rows of a fixed height.
type table struct {
	box  paginate.Box
	rowH float64
	font paginate.Font
}

func (t table) row(c paginate.Canvas, y float64, cells []string, header bool) {
	font := paginate.Font{Size: t.font.Size, Bold: header}
	x := t.box.X
	for i, col := range rosterColumns {
		w := t.box.W * col.frac
		cell := paginate.Box{X: x, Y: y, W: w, H: t.rowH}
		var fill *paginate.Color
		if header {
			fill = &paginate.LightGray
		}
		c.Rect(cell, fill, true)
		c.Text(x+4, y+t.rowH*0.65, w-8, cells[i], font, col.align)
		x += w
	}
}
