package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/seatplan/pkg/errors"
)

const testExam = `
[exam]
title = "Final"
subject = "Physics"
start = 2026-06-10T09:00:00Z
student_count = 25

[setup]
rooms = ["Hall A", "Hall B"]
columns_per_room = 5
style = "zigzag"

[supervision]
invigilators = ["Ada", "Grace", "Barbara"]
`

func writeExam(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "exam.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func run(t *testing.T, args ...string) error {
	t.Helper()
	root := New(io.Discard, LogInfo).RootCommand()
	root.SetArgs(args)
	return root.ExecuteContext(context.Background())
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", []string{"pdf"}},
		{"svg", []string{"svg"}},
		{"pdf,json,txt", []string{"pdf", "json", "txt"}},
	}

	for _, tt := range tests {
		got := parseFormats(tt.input)
		if len(got) != len(tt.want) {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("parseFormats(%q)[%d] = %q, want %q", tt.input, i, got[i], tt.want[i])
			}
		}
	}
}

func TestSeatPlanCommandWritesArtifacts(t *testing.T) {
	input := writeExam(t, testExam)
	out := t.TempDir()

	if err := run(t, "seat-plan", input, "-o", out, "-f", "pdf,json", "--no-cache"); err != nil {
		t.Fatalf("seat-plan: %v", err)
	}

	pdf, err := os.ReadFile(filepath.Join(out, "Seat_Plan_Physics_2026-06-10.pdf"))
	if err != nil {
		t.Fatalf("pdf not written: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF-")) {
		t.Error("pdf artifact is not a PDF")
	}
	if _, err := os.Stat(filepath.Join(out, "Seat_Plan_Physics_2026-06-10.json")); err != nil {
		t.Errorf("json not written: %v", err)
	}
}

func TestRosterCommandUsesFileCache(t *testing.T) {
	input := writeExam(t, testExam)
	out := t.TempDir()
	cacheDir := t.TempDir()

	for i := 0; i < 2; i++ {
		if err := run(t, "roster", input, "-o", out, "-f", "svg", "--cache-dir", cacheDir); err != nil {
			t.Fatalf("roster run %d: %v", i, err)
		}
	}
	if _, err := os.Stat(filepath.Join(out, "Duty_Roster_Physics_2026-06-10.svg")); err != nil {
		t.Errorf("svg not written: %v", err)
	}

	entries, _ := os.ReadDir(cacheDir)
	if len(entries) == 0 {
		t.Error("file cache is empty after rendering")
	}
}

func TestGenerateRejectsBadInput(t *testing.T) {
	input := writeExam(t, testExam)
	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"format", []string{"seat-plan", input, "-f", "docx", "--no-cache"}, errors.ErrCodeInvalidFormat},
		{"page size", []string{"seat-plan", input, "--page-size", "A3", "--no-cache"}, errors.ErrCodeInvalidPageSize},
		{"stdout with two formats", []string{"seat-plan", input, "-o", "-", "-f", "pdf,svg", "--no-cache"}, errors.ErrCodeInvalidInput},
		{"traversal", []string{"seat-plan", input, "-o", "../out", "--no-cache"}, errors.ErrCodeInvalidInput},
		{"missing file", []string{"seat-plan", filepath.Join(t.TempDir(), "nope.toml"), "--no-cache"}, errors.ErrCodeFileNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := run(t, tt.args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestGenerateNotReadyWritesNothing(t *testing.T) {
	input := writeExam(t, "[exam]\ntitle = \"Empty\"\nstudent_count = 10\n")
	out := t.TempDir()
	if err := run(t, "seat-plan", input, "-o", out, "--no-cache"); err != nil {
		t.Fatalf("not-ready input should not fail: %v", err)
	}
	entries, _ := os.ReadDir(out)
	if len(entries) != 0 {
		t.Errorf("wrote %d files for a not-ready document", len(entries))
	}
}

func TestPagesLabel(t *testing.T) {
	if pagesLabel(1) != "1 page" || pagesLabel(3) != "3 pages" {
		t.Errorf("pagesLabel = %q, %q", pagesLabel(1), pagesLabel(3))
	}
}
