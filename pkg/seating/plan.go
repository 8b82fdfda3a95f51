package seating

import "fmt"

// RoomPlan is the seating layout of one room.
type RoomPlan struct {
	Room      string `json:"room"`
	Count     int    `json:"count"`
	FirstSeat int    `json:"first_seat,omitempty"`
	LastSeat  int    `json:"last_seat,omitempty"`
	Grid      Grid   `json:"grid"`
}

// Range returns "first-last", or "" for an empty room.
func (p RoomPlan) Range() string {
	if p.Count == 0 {
		return ""
	}
	return fmt.Sprintf("%d-%d", p.FirstSeat, p.LastSeat)
}

// Plan allocates total students across rooms and builds a grid for each
// room, threading the seat counter from one room into the next. It returns
// nil when there is nothing to seat (no rooms or no students).
func Plan(total int, rooms []string, columns int) ([]RoomPlan, error) {
	counts, err := Allocate(total, rooms)
	if err != nil || counts == nil {
		return nil, err
	}

	plans := make([]RoomPlan, len(rooms))
	next := 1
	for i, room := range rooms {
		grid, after, err := BuildGrid(counts[i], columns, next)
		if err != nil {
			return nil, fmt.Errorf("room %q: %w", room, err)
		}
		p := RoomPlan{Room: room, Count: counts[i], Grid: grid}
		if counts[i] > 0 {
			p.FirstSeat, p.LastSeat = next, after-1
		}
		plans[i] = p
		next = after
	}
	return plans, nil
}
