// Package seating partitions an exam's students across rooms and lays each
// room out as a row-major seat grid.
//
// # Allocation
//
// [Allocate] splits a student count across an ordered room list so that room
// sizes differ by at most one. The first total%N rooms (in input order) get
// the extra student:
//
//	counts, _ := seating.Allocate(100, []string{"Hall A", "Hall B", "Hall C"})
//	// counts == [34 33 33]
//
// # Grids
//
// [BuildGrid] lays out one room. Seat numbers are threaded explicitly: each
// call returns the next starting seat, which the caller passes to the call for
// the following room. [Plan] does this threading for a whole exam, which
// guarantees that seat numbers 1..N appear exactly once across all rooms, in
// room order, then row order, then column order.
//
// All functions are pure: they neither retain nor mutate their arguments.
package seating

import (
	"github.com/matzehuels/seatplan/pkg/errors"
)

// Allocate returns one seat count per room such that the counts sum to total
// and differ by at most one. It returns nil when there are no rooms or no
// students; that is the "not configured yet" state, not an error.
//
// A negative total is a precondition violation.
func Allocate(total int, rooms []string) ([]int, error) {
	if total < 0 {
		return nil, errors.New(errors.ErrCodeInvalidStudentCount, "student count %d is negative", total)
	}
	n := len(rooms)
	if n == 0 || total == 0 {
		return nil, nil
	}

	base, remainder := total/n, total%n
	counts := make([]int, n)
	for i := range counts {
		counts[i] = base
		if i < remainder {
			counts[i]++
		}
	}
	return counts, nil
}
