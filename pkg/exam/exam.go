// Package exam defines the inputs handed to the seating engine: the exam
// record, the room setup and the supervision configuration.
//
// These values are owned by whatever collaborator collects them (a form, an
// HTTP request, a TOML file). The engine reads them as immutable snapshots
// and never mutates them.
//
// # File Format
//
// [LoadFile] and [Decode] read a TOML document with three tables:
//
//	[exam]
//	title = "Midterm"
//	subject = "Mathematics"
//	start = 2026-05-04T09:00:00
//	end = 2026-05-04T11:00:00
//	duration_minutes = 120
//	student_count = 100
//
//	[setup]
//	rooms = ["Hall A", "Hall B", "Hall C"]
//	columns_per_room = 6
//	style = "Grid"
//
//	[supervision]
//	invigilators = ["Ms. Osei", "Mr. Lund"]
//	reporting_time = "08:30"
//
// A missing [exam] table means "no exam selected", which is a valid state:
// the composer reports nothing to render instead of failing.
package exam

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/seatplan/pkg/errors"
)

// Status is the lifecycle state of an exam.
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusOngoing   Status = "ongoing"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Record is a single exam as supplied by the exam-management collaborator.
type Record struct {
	ID              uuid.UUID `toml:"id" json:"id"`
	Title           string    `toml:"title" json:"title"`
	Subject         string    `toml:"subject" json:"subject"`
	Start           time.Time `toml:"start" json:"start"`
	End             time.Time `toml:"end" json:"end"`
	DurationMinutes int       `toml:"duration_minutes" json:"duration_minutes" validate:"gte=0"`
	TotalMarks      int       `toml:"total_marks" json:"total_marks" validate:"gte=0"`
	Venue           string    `toml:"venue" json:"venue"`
	Instructor      string    `toml:"instructor" json:"instructor"`
	StudentCount    int       `toml:"student_count" json:"student_count" validate:"gte=0"`
	Status          Status    `toml:"status" json:"status" validate:"omitempty,oneof=scheduled ongoing completed cancelled"`
}

// idNamespace scopes IDs derived for records that arrive without one.
var idNamespace = uuid.MustParse("5f1b7c1e-2f43-4c1a-9d43-7a8f3f5e0b21")

// EnsureID returns a copy of r with a stable ID. Records without an ID get one
// derived from title, subject and start time, so the same exam always maps to
// the same ID across runs.
func (r Record) EnsureID() Record {
	if r.ID != uuid.Nil {
		return r
	}
	key := fmt.Sprintf("%s|%s|%s", r.Title, r.Subject, r.Start.Format(time.RFC3339))
	r.ID = uuid.NewSHA1(idNamespace, []byte(key))
	return r
}

// Label returns "Title - Subject", dropping whichever part is empty.
func (r Record) Label() string {
	switch {
	case r.Title == "":
		return r.Subject
	case r.Subject == "":
		return r.Title
	default:
		return r.Title + " - " + r.Subject
	}
}

// SeatingStyle is a display hint for seat grids. It never changes numbering.
type SeatingStyle string

const (
	StyleRow    SeatingStyle = "row"
	StyleGrid   SeatingStyle = "grid"
	StyleZigZag SeatingStyle = "zigzag"
)

// DefaultStyle is used when a setup does not name a style.
const DefaultStyle = StyleGrid

// ParseStyle parses a seating style name. It accepts the display spellings
// ("Row", "Grid", "Zig-Zag") as well as the canonical lower-case forms.
func ParseStyle(s string) (SeatingStyle, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("-", "", "_", "", " ", "").Replace(norm)
	switch norm {
	case "":
		return DefaultStyle, nil
	case "row":
		return StyleRow, nil
	case "grid":
		return StyleGrid, nil
	case "zigzag":
		return StyleZigZag, nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "invalid seating style: %q (must be one of: Row, Grid, Zig-Zag)", s)
}

// UnmarshalText implements encoding.TextUnmarshaler for TOML and JSON input.
func (s *SeatingStyle) UnmarshalText(text []byte) error {
	v, err := ParseStyle(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// DisplayName returns the human-facing spelling of the style.
func (s SeatingStyle) DisplayName() string {
	switch s {
	case StyleRow:
		return "Row"
	case StyleZigZag:
		return "Zig-Zag"
	default:
		return "Grid"
	}
}

// DefaultColumns is the column count used when a setup does not set one.
const DefaultColumns = 6

// Setup is the room configuration for one exam.
type Setup struct {
	Rooms          []string     `toml:"rooms" json:"rooms"`
	ColumnsPerRoom int          `toml:"columns_per_room" json:"columns_per_room"`
	Style          SeatingStyle `toml:"style" json:"style"`
	Instructions   string       `toml:"instructions" json:"instructions"`
}

// NewSetup returns a setup for rooms with default columns and style.
func NewSetup(rooms ...string) Setup {
	return Setup{
		Rooms:          rooms,
		ColumnsPerRoom: DefaultColumns,
		Style:          DefaultStyle,
	}
}

// Columns returns the effective column count. Zero or negative values are
// clamped to 1 rather than rejected.
func (s Setup) Columns() int {
	return max(1, s.ColumnsPerRoom)
}

// EffectiveStyle returns the effective style, falling back to [DefaultStyle].
func (s Setup) EffectiveStyle() SeatingStyle {
	if s.Style == "" {
		return DefaultStyle
	}
	return s.Style
}

// Validate checks room names. An empty room list is valid.
func (s Setup) Validate() error {
	for _, room := range s.Rooms {
		if err := errors.ValidateName("room", room); err != nil {
			return err
		}
	}
	return nil
}

// Supervision is the invigilation configuration for one exam.
type Supervision struct {
	Invigilators   []string `toml:"invigilators" json:"invigilators"`
	ReportingTime  string   `toml:"reporting_time" json:"reporting_time"`
	ReliefInterval string   `toml:"relief_interval" json:"relief_interval"`
	Notes          string   `toml:"notes" json:"notes"`
}

// Validate checks invigilator names. An empty list is valid.
func (s Supervision) Validate() error {
	for _, name := range s.Invigilators {
		if err := errors.ValidateName("invigilator", name); err != nil {
			return err
		}
	}
	return nil
}
