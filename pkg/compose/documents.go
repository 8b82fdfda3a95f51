package compose

import (
	"github.com/matzehuels/seatplan/pkg/exam"
	"github.com/matzehuels/seatplan/pkg/paginate"
	"github.com/matzehuels/seatplan/pkg/roster"
	"github.com/matzehuels/seatplan/pkg/seating"
)

// SeatPlan composes the seat plan for rec. It needs an exam, at least one
// room and a positive student count; otherwise the result is not ready.
// Each room becomes one section titled with the room name and its seat count.
func (c *Composer) SeatPlan(rec *exam.Record, setup exam.Setup) (Result, error) {
	if rec == nil {
		return notReady(KindSeatPlan, ReasonNoExam), nil
	}
	if err := rec.Validate(); err != nil {
		return Result{}, err
	}
	if err := setup.Validate(); err != nil {
		return Result{}, err
	}
	if len(setup.Rooms) == 0 {
		return notReady(KindSeatPlan, ReasonNoRooms), nil
	}
	if rec.StudentCount == 0 {
		return notReady(KindSeatPlan, ReasonNoStudents), nil
	}

	columns := setup.Columns()
	style := setup.EffectiveStyle()
	plans, err := seating.Plan(rec.StudentCount, setup.Rooms, columns)
	if err != nil {
		return Result{}, err
	}

	sections := make([]paginate.Section, len(plans))
	for i, p := range plans {
		sections[i] = gridSection(p, columns, style)
	}

	generated := c.now()
	doc := paginate.Render(KindSeatPlan.Title(), seatPlanLines(rec, setup), sections, c.pageOptions(generated))

	return Result{
		Kind:     KindSeatPlan,
		Ready:    true,
		Filename: Filename(KindSeatPlan, rec, generated),
		Document: doc,
		SeatPlan: &SeatPlanPreview{
			ExamID:   rec.ID,
			Title:    rec.Title,
			Subject:  rec.Subject,
			Students: rec.StudentCount,
			Columns:  columns,
			Style:    style,
			Rooms:    plans,
		},
	}, nil
}

// DutyRoster composes the invigilation roster for rec. It needs an exam.
// With no rooms the roster is an empty table, which is still a valid
// document. Invigilators are assigned cyclically; rooms without one show a
// placeholder.
func (c *Composer) DutyRoster(rec *exam.Record, setup exam.Setup, sup exam.Supervision) (Result, error) {
	if rec == nil {
		return notReady(KindDutyRoster, ReasonNoExam), nil
	}
	if err := rec.Validate(); err != nil {
		return Result{}, err
	}
	if err := setup.Validate(); err != nil {
		return Result{}, err
	}
	if err := sup.Validate(); err != nil {
		return Result{}, err
	}

	// Seat ranges are informational; they are empty when nothing is seated.
	plans, err := seating.Plan(rec.StudentCount, setup.Rooms, setup.Columns())
	if err != nil {
		return Result{}, err
	}

	entries := roster.Build(setup.Rooms, sup.Invigilators)
	rows := make([]RosterRow, len(entries))
	for i, e := range entries {
		row := RosterRow{Index: i + 1, Room: e.Room, Invigilator: e.Invigilator}
		if plans != nil {
			row.Seats = plans[i].Count
			row.Range = plans[i].Range()
		}
		rows[i] = row
	}

	generated := c.now()
	doc := paginate.Render(KindDutyRoster.Title(), rosterLines(rec, setup, sup),
		[]paginate.Section{rosterSection(rows)}, c.pageOptions(generated))

	return Result{
		Kind:     KindDutyRoster,
		Ready:    true,
		Filename: Filename(KindDutyRoster, rec, generated),
		Document: doc,
		Roster: &RosterPreview{
			ExamID:         rec.ID,
			Title:          rec.Title,
			Subject:        rec.Subject,
			ReportingTime:  sup.ReportingTime,
			ReliefInterval: sup.ReliefInterval,
			Rows:           rows,
		},
	}, nil
}

// Compose dispatches on kind.
func (c *Composer) Compose(kind Kind, f *exam.File) (Result, error) {
	if kind == KindDutyRoster {
		return c.DutyRoster(f.Exam, f.Setup, f.Supervision)
	}
	return c.SeatPlan(f.Exam, f.Setup)
}
