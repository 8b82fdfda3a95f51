package paginate

// state is the layout pass state.
type state int

const (
	awaitingSection state = iota
	layingOutSection
	pageFull
	done
)

// layouter carries the layout pass between states. It owns everything it
// writes; nothing escapes until run returns.
type layouter struct {
	opts   Options
	title  string
	header []string

	pages      []Page
	rec        *Recorder
	placements []Placement
	cursor     float64
	top        float64
	bottom     float64
}

// Layout places sections onto pages without footers. Each page starts with
// the header block (title and header lines, wrapped to the content width).
// Sections keep their input order.
//
// Layout always returns at least one page, even with no sections.
func Layout(title string, header []string, sections []Section, opts Options) []Page {
	opts = opts.withDefaults()
	header = opts.FitHeader(header)
	l := &layouter{
		opts:   opts,
		title:  title,
		header: header,
		top:    opts.ContentTop(len(header)),
		bottom: opts.ContentBottom(),
	}
	return l.run(sections)
}

func (l *layouter) run(sections []Section) []Page {
	l.startPage()

	next := 0
	st := awaitingSection
	for st != done {
		switch st {
		case awaitingSection:
			if next == len(sections) {
				st = done
				continue
			}
			if l.needsBreak(sections[next]) {
				st = pageFull
				continue
			}
			st = layingOutSection

		case pageFull:
			l.flushPage()
			l.startPage()
			st = layingOutSection

		case layingOutSection:
			l.place(sections[next])
			next++
			st = awaitingSection
		}
	}

	l.flushPage()
	return l.pages
}

// needsBreak reports whether s must move to a fresh page. A page that has no
// sections yet never breaks: an oversized section goes there alone.
func (l *layouter) needsBreak(s Section) bool {
	if len(l.placements) == 0 {
		return false
	}
	return l.cursor+height(s) > l.bottom
}

// place draws s at the cursor. An oversized section gets a box clamped to
// the rest of the page; its Draw must fit its content into box.H.
func (l *layouter) place(s Section) {
	h := height(s)
	overflow := h > l.bottom-l.top
	if overflow {
		h = l.bottom - l.cursor
	}
	box := Box{X: l.opts.Margin, Y: l.cursor, W: l.opts.ContentWidth(), H: h}
	if s.Draw != nil {
		s.Draw(l.rec, box)
	}
	l.placements = append(l.placements, Placement{
		Section:  s.Title,
		Box:      box,
		Overflow: overflow,
	})
	l.cursor += h + l.opts.Spacing
}

func (l *layouter) startPage() {
	l.rec = &Recorder{}
	l.placements = nil
	l.drawHeader()
	l.cursor = l.top
}

func (l *layouter) flushPage() {
	l.pages = append(l.pages, Page{
		Number:     len(l.pages) + 1,
		Placements: l.placements,
		Ops:        l.rec.Ops(),
	})
}

func (l *layouter) drawHeader() {
	o := l.opts
	x, w := o.Margin, o.ContentWidth()
	y := o.Margin + o.TitleSize

	l.rec.Text(x, y, w, l.title, Font{Size: o.TitleSize, Bold: true}, AlignCenter)
	y += o.TitleSize * (lineSpacing - 1)
	for _, line := range l.header {
		y += o.HeaderSize * lineSpacing
		l.rec.Text(x, y, w, line, Font{Size: o.HeaderSize}, AlignCenter)
	}

	ruleY := l.top - o.HeaderSize/2
	l.rec.Line(x, ruleY, x+w, ruleY, 0.75)
}

func height(s Section) float64 {
	return max(0, s.Height)
}
