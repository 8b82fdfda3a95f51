package seating

import (
	"strconv"

	"github.com/matzehuels/seatplan/pkg/errors"
)

// Seat is a seat number. The zero value is a blank cell: seat numbers start
// at 1.
type Seat int

// Blank is the empty cell that pads the last row of a grid.
const Blank Seat = 0

// IsBlank reports whether s is an unoccupied cell.
func (s Seat) IsBlank() bool { return s == Blank }

// String returns the seat number, or "" for a blank cell.
func (s Seat) String() string {
	if s.IsBlank() {
		return ""
	}
	return strconv.Itoa(int(s))
}

// MarshalJSON encodes blank cells as null so consumers can tell them apart
// from seat numbers.
func (s Seat) MarshalJSON() ([]byte, error) {
	if s.IsBlank() {
		return []byte("null"), nil
	}
	return strconv.AppendInt(nil, int64(s), 10), nil
}

// Grid is a rows x columns seat matrix. Every row has the same length.
type Grid [][]Seat

// Rows returns the number of rows.
func (g Grid) Rows() int { return len(g) }

// Columns returns the number of columns, or 0 for an empty grid.
func (g Grid) Columns() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// Seats returns the occupied seat numbers in row-major order.
func (g Grid) Seats() []Seat {
	var out []Seat
	for _, row := range g {
		for _, s := range row {
			if !s.IsBlank() {
				out = append(out, s)
			}
		}
	}
	return out
}

// BuildGrid lays out count seats in rows of the given width, numbering them
// consecutively from start, left to right and top to bottom. Cells after the
// last seat in the final row are [Blank].
//
// It returns the grid and the seat number the next room should start from.
// A zero count yields an empty grid and returns start unchanged. Columns
// below 1 are clamped to 1.
//
// A negative count or a start below 1 is a precondition violation.
func BuildGrid(count, columns, start int) (Grid, int, error) {
	if count < 0 {
		return nil, start, errors.New(errors.ErrCodeInvalidStudentCount, "room seat count %d is negative", count)
	}
	if start < 1 {
		return nil, start, errors.New(errors.ErrCodeInvalidSeatNumber, "starting seat %d must be at least 1", start)
	}
	columns = max(1, columns)
	if count == 0 {
		return Grid{}, start, nil
	}

	rows := (count + columns - 1) / columns
	cells := make([]Seat, rows*columns)
	for i := 0; i < count; i++ {
		cells[i] = Seat(start + i)
	}

	grid := make(Grid, rows)
	for r := range grid {
		grid[r] = cells[r*columns : (r+1)*columns : (r+1)*columns]
	}
	return grid, start + count, nil
}
