// Package compose turns an exam record and its setup into finished seat plan
// and duty roster documents.
//
// A [Composer] runs the seating allocator, the grid builder and the roster
// assigner, wraps their output into [paginate.Section] values and paginates
// them. Each call returns a [Result] holding both the preview structure
// (rooms -> grids, rooms -> invigilators) for on-screen consumers and the
// paginated [paginate.Document] for export.
//
// Incomplete configuration is not an error. A seat plan without an exam,
// rooms or students, or a roster without an exam, yields a Result with
// Ready set to false and a Reason. Errors are returned only for malformed
// input such as a negative student count.
package compose

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/seatplan/pkg/errors"
	"github.com/matzehuels/seatplan/pkg/exam"
	"github.com/matzehuels/seatplan/pkg/paginate"
	"github.com/matzehuels/seatplan/pkg/seating"
)

// Kind is the type of document produced.
type Kind string

const (
	KindSeatPlan   Kind = "seat-plan"
	KindDutyRoster Kind = "duty-roster"
)

// ParseKind parses a document kind name.
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindSeatPlan, "seatplan", "seats":
		return KindSeatPlan, nil
	case KindDutyRoster, "roster", "duty":
		return KindDutyRoster, nil
	}
	return "", errors.New(errors.ErrCodeInvalidKind, "invalid document kind: %q (must be one of: seat-plan, duty-roster)", s)
}

// Title returns the document title, e.g. "Seat Plan".
func (k Kind) Title() string {
	if k == KindDutyRoster {
		return "Duty Roster"
	}
	return "Seat Plan"
}

// Reasons reported when there is nothing to render.
const (
	ReasonNoExam     = "no exam selected"
	ReasonNoRooms    = "no rooms configured"
	ReasonNoStudents = "exam has no students"
)

// Result is the outcome of one composition.
type Result struct {
	Kind  Kind `json:"kind"`
	Ready bool `json:"ready"`
	// Reason explains why Ready is false.
	Reason   string            `json:"reason,omitempty"`
	Filename string            `json:"filename,omitempty"`
	Document paginate.Document `json:"-"`
	SeatPlan *SeatPlanPreview  `json:"seat_plan,omitempty"`
	Roster   *RosterPreview    `json:"roster,omitempty"`
}

// Preview returns the on-screen structure for the result's kind, or nil when
// the result is not ready.
func (r Result) Preview() any {
	switch {
	case !r.Ready:
		return nil
	case r.Kind == KindDutyRoster:
		return r.Roster
	default:
		return r.SeatPlan
	}
}

// SeatPlanPreview is the seat plan as nested data: rooms -> grids.
type SeatPlanPreview struct {
	ExamID   uuid.UUID          `json:"exam_id"`
	Title    string             `json:"title"`
	Subject  string             `json:"subject"`
	Students int                `json:"students"`
	Columns  int                `json:"columns"`
	Style    exam.SeatingStyle  `json:"style"`
	Rooms    []seating.RoomPlan `json:"rooms"`
}

// RosterPreview is the duty roster as nested data: rows -> invigilators.
type RosterPreview struct {
	ExamID         uuid.UUID   `json:"exam_id"`
	Title          string      `json:"title"`
	Subject        string      `json:"subject"`
	ReportingTime  string      `json:"reporting_time,omitempty"`
	ReliefInterval string      `json:"relief_interval,omitempty"`
	Rows           []RosterRow `json:"rows"`
}

// RosterRow is one room of the duty roster.
type RosterRow struct {
	Index       int    `json:"index"`
	Room        string `json:"room"`
	Invigilator string `json:"invigilator"`
	Seats       int    `json:"seats"`
	Range       string `json:"range,omitempty"`
}

// Composer builds documents with a fixed page setup.
type Composer struct {
	Page paginate.Options
	// Now supplies the generation date for footers and fallback filenames.
	Now func() time.Time
}

// New returns a Composer using page options opts.
func New(opts paginate.Options) *Composer {
	return &Composer{Page: opts, Now: time.Now}
}

func (c *Composer) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

// pageOptions returns the page options with the footer date filled in.
func (c *Composer) pageOptions(generated time.Time) paginate.Options {
	opts := c.Page
	if opts.Date == "" {
		opts.Date = generated.Format(dateLayout)
	}
	return opts
}

const dateLayout = "2006-01-02"

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// Filename returns the export filename (without extension) for a document of
// kind k about rec, e.g. "Seat_Plan_Mathematics_2026-05-04". The date is the
// exam's start date, or generated when the exam has no start time.
func Filename(k Kind, rec *exam.Record, generated time.Time) string {
	subject := "Exam"
	date := generated
	if rec != nil {
		if s := strings.Trim(unsafeFilenameChars.ReplaceAllString(rec.Subject, "_"), "_"); s != "" {
			subject = s
		}
		if !rec.Start.IsZero() {
			date = rec.Start
		}
	}
	prefix := strings.ReplaceAll(k.Title(), " ", "_")
	return prefix + "_" + subject + "_" + date.Format(dateLayout)
}

func notReady(k Kind, reason string) Result {
	return Result{Kind: k, Reason: reason}
}
