// Package roster assigns invigilators to exam rooms.
package roster

// Placeholder is what consumers display for a room without an invigilator.
const Placeholder = "-"

// Assign maps invigilators onto rooms cyclically: room i gets
// invigilators[i % len(invigilators)]. Invigilators are reused when there are
// fewer of them than rooms. With no invigilators every entry is "".
//
// The result has one entry per room, in room order.
func Assign(rooms, invigilators []string) []string {
	out := make([]string, len(rooms))
	if len(invigilators) == 0 {
		return out
	}
	for i := range rooms {
		out[i] = invigilators[i%len(invigilators)]
	}
	return out
}

// Entry is one row of a duty roster.
type Entry struct {
	Room        string `json:"room"`
	Invigilator string `json:"invigilator"`
}

// Display returns the invigilator name or [Placeholder].
func (e Entry) Display() string {
	if e.Invigilator == "" {
		return Placeholder
	}
	return e.Invigilator
}

// Build pairs each room with its assigned invigilator.
func Build(rooms, invigilators []string) []Entry {
	names := Assign(rooms, invigilators)
	entries := make([]Entry, len(rooms))
	for i, room := range rooms {
		entries[i] = Entry{Room: room, Invigilator: names[i]}
	}
	return entries
}
