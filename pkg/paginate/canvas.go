package paginate

import "slices"

// Align is horizontal text alignment within a box.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Font selects the text size and weight. Sinks choose the family.
type Font struct {
	Size float64 `json:"size"`
	Bold bool    `json:"bold,omitempty"`
}

// Color is an RGB color.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Common colors.
var (
	Black     = Color{0, 0, 0}
	LightGray = Color{235, 235, 235}
	MidGray   = Color{120, 120, 120}
)

// Box is a rectangle in page coordinates: points, origin at the top-left.
type Box struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Canvas is the drawing surface handed to section draw callbacks.
type Canvas interface {
	// Text draws s with its baseline at y, aligned within [x, x+w].
	Text(x, y, w float64, s string, f Font, a Align)
	// Rect outlines and/or fills a rectangle.
	Rect(b Box, fill *Color, stroke bool)
	// Line draws a straight line of the given width.
	Line(x1, y1, x2, y2, width float64)
}

// OpKind identifies a drawing operation.
type OpKind string

const (
	OpText OpKind = "text"
	OpRect OpKind = "rect"
	OpLine OpKind = "line"
)

// Op is one recorded drawing operation. Which fields are meaningful depends
// on Kind: text uses X, Y (baseline), W, Text, Font, Align; rect uses X, Y,
// W, H, Fill, Stroke; line uses X, Y, X2, Y2, Width.
type Op struct {
	Kind   OpKind  `json:"kind"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	W      float64 `json:"w,omitempty"`
	H      float64 `json:"h,omitempty"`
	X2     float64 `json:"x2,omitempty"`
	Y2     float64 `json:"y2,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Text   string  `json:"text,omitempty"`
	Font   Font    `json:"font,omitzero"`
	Align  Align   `json:"align,omitempty"`
	Fill   *Color  `json:"fill,omitempty"`
	Stroke bool    `json:"stroke,omitempty"`
}

// Recorder is a [Canvas] that records operations into a display list for
// later replay by an output sink.
type Recorder struct {
	ops []Op
}

// Text records a text operation.
func (r *Recorder) Text(x, y, w float64, s string, f Font, a Align) {
	r.ops = append(r.ops, Op{Kind: OpText, X: x, Y: y, W: w, Text: s, Font: f, Align: a})
}

// Rect records a rectangle operation.
func (r *Recorder) Rect(b Box, fill *Color, stroke bool) {
	var c *Color
	if fill != nil {
		cc := *fill
		c = &cc
	}
	r.ops = append(r.ops, Op{Kind: OpRect, X: b.X, Y: b.Y, W: b.W, H: b.H, Fill: c, Stroke: stroke})
}

// Line records a line operation.
func (r *Recorder) Line(x1, y1, x2, y2, width float64) {
	r.ops = append(r.ops, Op{Kind: OpLine, X: x1, Y: y1, X2: x2, Y2: y2, Width: width})
}

// Ops returns a copy of the recorded operations.
func (r *Recorder) Ops() []Op {
	return slices.Clone(r.ops)
}

var _ Canvas = (*Recorder)(nil)
