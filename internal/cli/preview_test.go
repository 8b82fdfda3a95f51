package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"
)

func runOutput(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	root := New(io.Discard, LogInfo).RootCommand()
	root.SetOut(&buf)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return buf.String(), err
}

func TestPreviewText(t *testing.T) {
	input := writeExam(t, testExam)

	got, err := runOutput(t, "preview", input, "--no-cache")
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	for _, want := range []string{"Hall A (13 seats)", "Hall B (12 seats)", "Seats 14-25"} {
		if !strings.Contains(got, want) {
			t.Errorf("preview missing %q:\n%s", want, got)
		}
	}
}

func TestPreviewJSONRoster(t *testing.T) {
	input := writeExam(t, testExam)

	got, err := runOutput(t, "preview", input, "--kind", "roster", "--json", "--no-cache")
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	var res struct {
		Kind   string `json:"kind"`
		Ready  bool   `json:"ready"`
		Roster struct {
			Rows []struct {
				Room        string `json:"room"`
				Invigilator string `json:"invigilator"`
			} `json:"rows"`
		} `json:"roster"`
	}
	if err := json.Unmarshal([]byte(got), &res); err != nil {
		t.Fatalf("json.Unmarshal: %v\n%s", err, got)
	}
	if !res.Ready || res.Kind != "duty-roster" {
		t.Errorf("kind = %q, ready = %v", res.Kind, res.Ready)
	}
	if len(res.Roster.Rows) != 2 || res.Roster.Rows[1].Invigilator != "Grace" {
		t.Errorf("rows = %+v", res.Roster.Rows)
	}
}

func TestPreviewLayout(t *testing.T) {
	input := writeExam(t, testExam)

	got, err := runOutput(t, "preview", input, "--layout", "--no-cache")
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	var doc struct {
		Pages []struct {
			Sections []string `json:"sections"`
			Ops      []any    `json:"ops"`
		} `json:"pages"`
	}
	if err := json.Unmarshal([]byte(got), &doc); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}
	var sections []string
	for _, p := range doc.Pages {
		sections = append(sections, p.Sections...)
		if len(p.Ops) == 0 {
			t.Error("page without drawing operations")
		}
	}
	if len(sections) != 2 {
		t.Errorf("sections = %v, want both halls", sections)
	}
}

func TestPreviewFlagConflicts(t *testing.T) {
	input := writeExam(t, testExam)
	if _, err := runOutput(t, "preview", input, "--json", "--layout"); err == nil {
		t.Error("--json with --layout should fail")
	}
	if _, err := runOutput(t, "preview", input, "--kind", "timetable"); err == nil {
		t.Error("unknown kind should fail")
	}
}

func TestSeatPlanToStdout(t *testing.T) {
	input := writeExam(t, testExam)

	got, err := runOutput(t, "seat-plan", input, "-o", "-", "-f", "txt", "--no-cache")
	if err != nil {
		t.Fatalf("seat-plan: %v", err)
	}
	if !strings.Contains(got, "Hall B (12 seats)") {
		t.Errorf("stdout = %q", got)
	}
}
