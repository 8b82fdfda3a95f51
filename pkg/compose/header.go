package compose

import (
	"fmt"
	"strings"

	"github.com/matzehuels/seatplan/pkg/exam"
)

const sep = " • "

// examLines returns the header lines describing the exam itself: label,
// schedule, and venue details. Empty parts are left out.
func examLines(rec *exam.Record) []string {
	lines := []string{rec.Label()}

	var sched []string
	if !rec.Start.IsZero() {
		sched = append(sched, "Date: "+rec.Start.Format("Mon, 02 Jan 2006"))
		window := rec.Start.Format("15:04")
		if !rec.End.IsZero() {
			window += "-" + rec.End.Format("15:04")
		}
		sched = append(sched, "Time: "+window)
	}
	if rec.DurationMinutes > 0 {
		sched = append(sched, fmt.Sprintf("Duration: %d min", rec.DurationMinutes))
	}
	lines = appendJoined(lines, sched)

	var details []string
	if rec.Venue != "" {
		details = append(details, "Venue: "+rec.Venue)
	}
	if rec.Instructor != "" {
		details = append(details, "Instructor: "+rec.Instructor)
	}
	if rec.TotalMarks > 0 {
		details = append(details, fmt.Sprintf("Total marks: %d", rec.TotalMarks))
	}
	return appendJoined(lines, details)
}

func seatPlanLines(rec *exam.Record, setup exam.Setup) []string {
	lines := examLines(rec)
	lines = append(lines, fmt.Sprintf("Students: %d%sRooms: %d%sColumns: %d%sLayout: %s",
		rec.StudentCount, sep, len(setup.Rooms), sep, setup.Columns(), sep, setup.EffectiveStyle().DisplayName()))
	if s := strings.TrimSpace(setup.Instructions); s != "" {
		lines = append(lines, "Instructions: "+s)
	}
	return lines
}

func rosterLines(rec *exam.Record, setup exam.Setup, sup exam.Supervision) []string {
	lines := examLines(rec)

	var summary []string
	if sup.ReportingTime != "" {
		summary = append(summary, "Reporting: "+sup.ReportingTime)
	}
	if sup.ReliefInterval != "" {
		summary = append(summary, "Relief: "+sup.ReliefInterval)
	}
	summary = append(summary,
		fmt.Sprintf("Invigilators: %d", len(sup.Invigilators)),
		fmt.Sprintf("Rooms: %d", len(setup.Rooms)))
	lines = appendJoined(lines, summary)

	if s := strings.TrimSpace(sup.Notes); s != "" {
		lines = append(lines, "Notes: "+s)
	}
	return lines
}

func appendJoined(lines, parts []string) []string {
	if len(parts) == 0 {
		return lines
	}
	return append(lines, strings.Join(parts, sep))
}
