package exam

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/matzehuels/seatplan/pkg/errors"
)

const sampleTOML = `
[exam]
title = "Midterm"
subject = "Mathematics"
start = 2026-05-04T09:00:00Z
end = 2026-05-04T11:00:00Z
duration_minutes = 120
total_marks = 80
venue = "Main Block"
instructor = "Dr. Amara"
student_count = 100
status = "scheduled"

[setup]
rooms = ["Hall A", "Hall B", "Hall C"]
style = "Zig-Zag"

[supervision]
invigilators = ["Ms. Osei", "Mr. Lund"]
reporting_time = "08:30"
relief_interval = "60 min"
`

func TestDecode(t *testing.T) {
	f, err := Decode(strings.NewReader(sampleTOML))
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}

	if f.Exam == nil {
		t.Fatal("Exam = nil, want record")
	}
	if f.Exam.StudentCount != 100 {
		t.Errorf("StudentCount = %d, want 100", f.Exam.StudentCount)
	}
	if f.Exam.ID == uuid.Nil {
		t.Error("ID should be derived when absent")
	}
	if f.Exam.Start.Hour() != 9 {
		t.Errorf("Start hour = %d, want 9", f.Exam.Start.Hour())
	}
	if len(f.Setup.Rooms) != 3 {
		t.Errorf("Rooms = %v, want 3 rooms", f.Setup.Rooms)
	}
	if f.Setup.ColumnsPerRoom != DefaultColumns {
		t.Errorf("ColumnsPerRoom = %d, want default %d", f.Setup.ColumnsPerRoom, DefaultColumns)
	}
	if f.Setup.Style != StyleZigZag {
		t.Errorf("Style = %q, want %q", f.Setup.Style, StyleZigZag)
	}
	if got := f.Supervision.Invigilators; len(got) != 2 || got[1] != "Mr. Lund" {
		t.Errorf("Invigilators = %v", got)
	}
}

func TestDecodeExplicitZeroColumns(t *testing.T) {
	f, err := Decode(strings.NewReader("[setup]\nrooms = [\"A\"]\ncolumns_per_room = 0\n"))
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if f.Setup.ColumnsPerRoom != 0 {
		t.Errorf("ColumnsPerRoom = %d, want 0 (kept as given)", f.Setup.ColumnsPerRoom)
	}
	if f.Setup.Columns() != 1 {
		t.Errorf("Columns() = %d, want clamped 1", f.Setup.Columns())
	}
}

func TestDecodeNoExam(t *testing.T) {
	f, err := Decode(strings.NewReader("[setup]\nrooms = [\"A\"]\n"))
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if f.Exam != nil {
		t.Errorf("Exam = %+v, want nil", f.Exam)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  errors.Code
	}{
		{"malformed toml", "[exam\n", errors.ErrCodeInvalidInput},
		{"negative students", "[exam]\nstudent_count = -3\n", errors.ErrCodeInvalidStudentCount},
		{"bad style", "[setup]\nstyle = \"spiral\"\n", errors.ErrCodeInvalidInput},
		{"blank room", "[setup]\nrooms = [\" \"]\n", errors.ErrCodeInvalidInput},
		{"blank invigilator", "[supervision]\ninvigilators = [\"\"]\n", errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.input))
			if !errors.Is(err, tt.code) {
				t.Errorf("Decode() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	input := `{"exam": {"title": "Quiz", "student_count": 7}, "setup": {"rooms": ["R1", "R2"], "style": "Row"}}`
	f, err := DecodeJSON(strings.NewReader(input))
	if err != nil {
		t.Fatalf("DecodeJSON() error: %v", err)
	}
	if f.Exam.StudentCount != 7 {
		t.Errorf("StudentCount = %d, want 7", f.Exam.StudentCount)
	}
	if f.Setup.Style != StyleRow {
		t.Errorf("Style = %q, want %q", f.Setup.Style, StyleRow)
	}
	if f.Setup.ColumnsPerRoom != DefaultColumns {
		t.Errorf("ColumnsPerRoom = %d, want default %d", f.Setup.ColumnsPerRoom, DefaultColumns)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "exam.toml")
	if err := os.WriteFile(path, []byte(sampleTOML), 0o644); err != nil {
		t.Fatal(err)
	}

	f, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if f.Exam.Title != "Midterm" {
		t.Errorf("Title = %q, want Midterm", f.Exam.Title)
	}

	_, err = LoadFile(filepath.Join(dir, "missing.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("LoadFile(missing) error = %v, want %s", err, errors.ErrCodeFileNotFound)
	}
}
