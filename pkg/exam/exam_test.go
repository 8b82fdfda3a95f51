package exam

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/seatplan/pkg/errors"
)

func TestParseStyle(t *testing.T) {
	tests := []struct {
		input   string
		want    SeatingStyle
		wantErr bool
	}{
		{"", StyleGrid, false},
		{"Row", StyleRow, false},
		{"grid", StyleGrid, false},
		{"Zig-Zag", StyleZigZag, false},
		{"zig_zag", StyleZigZag, false},
		{" ZIGZAG ", StyleZigZag, false},
		{"spiral", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseStyle(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseStyle(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseStyle(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestStyleDisplayName(t *testing.T) {
	if got := StyleZigZag.DisplayName(); got != "Zig-Zag" {
		t.Errorf("DisplayName() = %q, want %q", got, "Zig-Zag")
	}
	if got := SeatingStyle("").DisplayName(); got != "Grid" {
		t.Errorf("DisplayName() = %q, want %q", got, "Grid")
	}
}

func TestSetupColumns(t *testing.T) {
	tests := []struct {
		columns int
		want    int
	}{
		{6, 6},
		{1, 1},
		{0, 1},
		{-4, 1},
	}

	for _, tt := range tests {
		s := Setup{ColumnsPerRoom: tt.columns}
		if got := s.Columns(); got != tt.want {
			t.Errorf("Setup{ColumnsPerRoom: %d}.Columns() = %d, want %d", tt.columns, got, tt.want)
		}
	}

	if got := NewSetup("A").Columns(); got != DefaultColumns {
		t.Errorf("NewSetup().Columns() = %d, want %d", got, DefaultColumns)
	}
}

func TestSetupValidate(t *testing.T) {
	if err := NewSetup().Validate(); err != nil {
		t.Errorf("empty setup: unexpected error %v", err)
	}
	if err := NewSetup("Hall A", "Hall A").Validate(); err != nil {
		t.Errorf("duplicate rooms: unexpected error %v", err)
	}
	if err := NewSetup("Hall A", "").Validate(); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("empty room name: error = %v, want %s", err, errors.ErrCodeInvalidInput)
	}
}

func TestRecordValidate(t *testing.T) {
	start := time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		rec  Record
		code errors.Code
	}{
		{"valid", Record{Title: "Midterm", StudentCount: 100, Status: StatusScheduled}, ""},
		{"zero students", Record{StudentCount: 0}, ""},
		{"negative students", Record{StudentCount: -1}, errors.ErrCodeInvalidStudentCount},
		{"negative duration", Record{DurationMinutes: -5}, errors.ErrCodeInvalidExam},
		{"negative marks", Record{TotalMarks: -1}, errors.ErrCodeInvalidExam},
		{"unknown status", Record{Status: "postponed"}, errors.ErrCodeInvalidExam},
		{"end before start", Record{Start: start, End: start.Add(-time.Hour)}, errors.ErrCodeInvalidExam},
		{"end after start", Record{Start: start, End: start.Add(2 * time.Hour)}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rec.Validate()
			if tt.code == "" {
				if err != nil {
					t.Fatalf("Validate() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("Validate() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestEnsureID(t *testing.T) {
	start := time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)
	r := Record{Title: "Midterm", Subject: "Maths", Start: start}

	a := r.EnsureID()
	b := r.EnsureID()
	if a.ID == uuid.Nil {
		t.Fatal("EnsureID() left a nil ID")
	}
	if a.ID != b.ID {
		t.Errorf("EnsureID() not stable: %s != %s", a.ID, b.ID)
	}
	if r.ID != uuid.Nil {
		t.Error("EnsureID() mutated the receiver")
	}

	fixed := uuid.New()
	r.ID = fixed
	if got := r.EnsureID().ID; got != fixed {
		t.Errorf("EnsureID() replaced existing ID: %s, want %s", got, fixed)
	}
}

func TestLabel(t *testing.T) {
	tests := []struct {
		rec  Record
		want string
	}{
		{Record{Title: "Midterm", Subject: "Maths"}, "Midterm - Maths"},
		{Record{Title: "Midterm"}, "Midterm"},
		{Record{Subject: "Maths"}, "Maths"},
	}
	for _, tt := range tests {
		if got := tt.rec.Label(); got != tt.want {
			t.Errorf("Label() = %q, want %q", got, tt.want)
		}
	}
}
