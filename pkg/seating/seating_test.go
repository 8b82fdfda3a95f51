package seating

import (
	"encoding/json"
	"fmt"
	"slices"
	"testing"

	"github.com/matzehuels/seatplan/pkg/errors"
)

func rooms(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("R%d", i+1)
	}
	return out
}

func TestAllocate(t *testing.T) {
	tests := []struct {
		name  string
		total int
		rooms []string
		want  []int
	}{
		{"even split", 90, rooms(3), []int{30, 30, 30}},
		{"remainder to first rooms", 100, rooms(3), []int{34, 33, 33}},
		{"remainder two", 11, rooms(3), []int{4, 4, 3}},
		{"fewer students than rooms", 2, rooms(4), []int{1, 1, 0, 0}},
		{"single room", 7, rooms(1), []int{7}},
		{"no rooms", 50, nil, nil},
		{"no students", 0, rooms(3), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Allocate(tt.total, tt.rooms)
			if err != nil {
				t.Fatalf("Allocate() error: %v", err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("Allocate(%d, %d rooms) = %v, want %v", tt.total, len(tt.rooms), got, tt.want)
			}
		})
	}
}

func TestAllocateNegative(t *testing.T) {
	_, err := Allocate(-1, rooms(2))
	if !errors.Is(err, errors.ErrCodeInvalidStudentCount) {
		t.Errorf("Allocate(-1) error = %v, want %s", err, errors.ErrCodeInvalidStudentCount)
	}
}

func TestAllocateConservation(t *testing.T) {
	for n := 1; n <= 12; n++ {
		for total := 0; total <= 250; total++ {
			counts, err := Allocate(total, rooms(n))
			if err != nil {
				t.Fatalf("Allocate(%d, %d) error: %v", total, n, err)
			}
			if total == 0 {
				if counts != nil {
					t.Fatalf("Allocate(0, %d) = %v, want nil", n, counts)
				}
				continue
			}
			if len(counts) != n {
				t.Fatalf("Allocate(%d, %d) returned %d counts", total, n, len(counts))
			}
			sum := 0
			for _, c := range counts {
				sum += c
			}
			if sum != total {
				t.Fatalf("Allocate(%d, %d) sums to %d", total, n, sum)
			}
			if spread := slices.Max(counts) - slices.Min(counts); spread > 1 {
				t.Fatalf("Allocate(%d, %d) = %v, spread %d > 1", total, n, counts, spread)
			}
		}
	}
}

func TestBuildGrid(t *testing.T) {
	grid, next, err := BuildGrid(8, 3, 5)
	if err != nil {
		t.Fatalf("BuildGrid() error: %v", err)
	}
	want := Grid{
		{5, 6, 7},
		{8, 9, 10},
		{11, 12, Blank},
	}
	if len(grid) != len(want) {
		t.Fatalf("rows = %d, want %d", len(grid), len(want))
	}
	for r := range want {
		if !slices.Equal(grid[r], want[r]) {
			t.Errorf("row %d = %v, want %v", r, grid[r], want[r])
		}
	}
	if next != 13 {
		t.Errorf("next = %d, want 13", next)
	}
}

func TestBuildGridShape(t *testing.T) {
	for columns := 1; columns <= 9; columns++ {
		for count := 0; count <= 40; count++ {
			grid, next, err := BuildGrid(count, columns, 1)
			if err != nil {
				t.Fatalf("BuildGrid(%d, %d) error: %v", count, columns, err)
			}
			wantRows := (count + columns - 1) / columns
			if grid.Rows() != wantRows {
				t.Fatalf("BuildGrid(%d, %d) rows = %d, want %d", count, columns, grid.Rows(), wantRows)
			}
			for r, row := range grid {
				if len(row) != columns {
					t.Fatalf("BuildGrid(%d, %d) row %d has %d cells", count, columns, r, len(row))
				}
			}
			if len(grid.Seats()) != count {
				t.Fatalf("BuildGrid(%d, %d) has %d seats", count, columns, len(grid.Seats()))
			}
			if next != count+1 {
				t.Fatalf("BuildGrid(%d, %d) next = %d, want %d", count, columns, next, count+1)
			}
		}
	}
}

func TestBuildGridEdgeCases(t *testing.T) {
	t.Run("zero count", func(t *testing.T) {
		grid, next, err := BuildGrid(0, 6, 35)
		if err != nil {
			t.Fatalf("error: %v", err)
		}
		if grid.Rows() != 0 {
			t.Errorf("rows = %d, want 0", grid.Rows())
		}
		if next != 35 {
			t.Errorf("next = %d, want 35", next)
		}
	})

	t.Run("non-positive columns clamp to 1", func(t *testing.T) {
		for _, cols := range []int{0, -3} {
			grid, _, err := BuildGrid(3, cols, 1)
			if err != nil {
				t.Fatalf("error: %v", err)
			}
			if grid.Rows() != 3 || grid.Columns() != 1 {
				t.Errorf("BuildGrid(3, %d) shape = %dx%d, want 3x1", cols, grid.Rows(), grid.Columns())
			}
		}
	})

	t.Run("negative count", func(t *testing.T) {
		_, _, err := BuildGrid(-1, 6, 1)
		if !errors.Is(err, errors.ErrCodeInvalidStudentCount) {
			t.Errorf("error = %v, want %s", err, errors.ErrCodeInvalidStudentCount)
		}
	})

	t.Run("start below one", func(t *testing.T) {
		_, _, err := BuildGrid(3, 6, 0)
		if !errors.Is(err, errors.ErrCodeInvalidSeatNumber) {
			t.Errorf("error = %v, want %s", err, errors.ErrCodeInvalidSeatNumber)
		}
	})
}

func TestPlanScenario(t *testing.T) {
	plans, err := Plan(100, []string{"Hall A", "Hall B", "Hall C"}, 6)
	if err != nil {
		t.Fatalf("Plan() error: %v", err)
	}

	want := []struct {
		count, first, last, rows int
	}{
		{34, 1, 34, 6},
		{33, 35, 67, 6},
		{33, 68, 100, 6},
	}
	for i, w := range want {
		p := plans[i]
		if p.Count != w.count || p.FirstSeat != w.first || p.LastSeat != w.last {
			t.Errorf("room %s = count %d seats %d-%d, want %d seats %d-%d",
				p.Room, p.Count, p.FirstSeat, p.LastSeat, w.count, w.first, w.last)
		}
		if p.Grid.Rows() != w.rows || p.Grid.Columns() != 6 {
			t.Errorf("room %s grid = %dx%d, want %dx6", p.Room, p.Grid.Rows(), p.Grid.Columns(), w.rows)
		}
	}

	last := plans[0].Grid[5]
	if !slices.Equal(last, []Seat{31, 32, 33, 34, Blank, Blank}) {
		t.Errorf("Hall A last row = %v, want [31 32 33 34 _ _]", last)
	}
}

func TestPlanNumberingBijection(t *testing.T) {
	for n := 1; n <= 7; n++ {
		for _, total := range []int{1, 5, 17, 100, 243} {
			for _, cols := range []int{1, 4, 6} {
				plans, err := Plan(total, rooms(n), cols)
				if err != nil {
					t.Fatalf("Plan() error: %v", err)
				}
				var all []Seat
				for _, p := range plans {
					all = append(all, p.Grid.Seats()...)
				}
				if len(all) != total {
					t.Fatalf("Plan(%d, %d, %d) produced %d seats", total, n, cols, len(all))
				}
				for i, s := range all {
					if int(s) != i+1 {
						t.Fatalf("Plan(%d, %d, %d) seat %d = %d, want ascending from 1", total, n, cols, i, s)
					}
				}
			}
		}
	}
}

func TestPlanNothingToSeat(t *testing.T) {
	if plans, err := Plan(0, rooms(3), 6); err != nil || plans != nil {
		t.Errorf("Plan(0) = %v, %v; want nil, nil", plans, err)
	}
	if plans, err := Plan(10, nil, 6); err != nil || plans != nil {
		t.Errorf("Plan(no rooms) = %v, %v; want nil, nil", plans, err)
	}
}

func TestPlanEmptyRooms(t *testing.T) {
	plans, err := Plan(2, rooms(4), 6)
	if err != nil {
		t.Fatalf("Plan() error: %v", err)
	}
	if plans[3].Count != 0 || plans[3].Grid.Rows() != 0 || plans[3].Range() != "" {
		t.Errorf("empty room plan = %+v", plans[3])
	}
	if plans[1].Range() != "2-2" {
		t.Errorf("Range() = %q, want 2-2", plans[1].Range())
	}
}

func TestGridJSON(t *testing.T) {
	grid, _, _ := BuildGrid(3, 2, 1)
	data, err := json.Marshal(grid)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if got, want := string(data), "[[1,2],[3,null]]"; got != want {
		t.Errorf("Marshal() = %s, want %s", got, want)
	}
}
