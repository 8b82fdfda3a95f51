package cli

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/seatplan/pkg/compose"
	"github.com/matzehuels/seatplan/pkg/exam"
	"github.com/matzehuels/seatplan/pkg/paginate"
)

func composeForTest(t *testing.T, kind compose.Kind) compose.Result {
	t.Helper()
	c := compose.New(paginate.Options{})
	c.Now = func() time.Time { return time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC) }
	rec := exam.Record{Title: "Quiz", StudentCount: 9}.EnsureID()
	res, err := c.Compose(kind, &exam.File{
		Exam:        &rec,
		Setup:       exam.NewSetup("A", "B", "C"),
		Supervision: exam.Supervision{Invigilators: []string{"Ada"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	return res
}

func key(s string) tea.KeyMsg {
	switch s {
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestPagerModelNavigation(t *testing.T) {
	var m tea.Model = NewPagerModel(composeForTest(t, compose.KindSeatPlan))
	if got := len(m.(PagerModel).Pages); got != 3 {
		t.Fatalf("pages = %d, want one per room", got)
	}

	steps := []struct {
		key  string
		want int
	}{
		{"left", 0},
		{"right", 1},
		{"l", 2},
		{"right", 2},
		{"h", 1},
		{"g", 0},
		{"G", 2},
	}
	for _, s := range steps {
		m, _ = m.Update(key(s.key))
		if got := m.(PagerModel).Cursor; got != s.want {
			t.Errorf("after %q cursor = %d, want %d", s.key, got, s.want)
		}
	}
}

func TestPagerModelQuit(t *testing.T) {
	m := NewPagerModel(composeForTest(t, compose.KindSeatPlan))
	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestPagerModelView(t *testing.T) {
	m := NewPagerModel(composeForTest(t, compose.KindSeatPlan))
	m.Cursor = 1
	view := m.View()
	for _, want := range []string{"Seat Plan", "B (3 seats)", "Seats 4-6", "[2/3]"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestPagerModelRoster(t *testing.T) {
	m := NewPagerModel(composeForTest(t, compose.KindDutyRoster))
	if len(m.Pages) != 1 {
		t.Fatalf("roster pages = %d, want 1", len(m.Pages))
	}
	if !strings.Contains(m.View(), "Ada") {
		t.Error("roster view missing invigilator")
	}
}
