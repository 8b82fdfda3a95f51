// Package paginate lays out titled sections onto fixed-size pages.
//
// # Overview
//
// A [Section] is an independently measured block of content (a room's seat
// grid, a roster table) with a draw callback. [Render] places sections top to
// bottom below a header block that is repeated on every page, and never
// splits a section across pages: when a section does not fit in the space
// left on the current page, a new page is started first.
//
// # Two Passes
//
// Pagination runs in two passes because the total page count is not known
// until every section has been placed:
//
//  1. Layout: [Layout] places sections and records their drawing into a
//     per-page display list.
//  2. Footers: [Finalize] stamps "Generated by <source> • <date>" on the left
//     and "Page i of N" on the right of every page.
//
// [Render] runs both. The returned [Document] is a value: sinks in
// pkg/render/sink replay each page's [Op] list into PDF, SVG or other
// formats.
//
// # Oversized Sections
//
// A section taller than the usable page height is placed alone on its own
// page and marked with [Placement.Overflow]. Its box is clamped to the
// usable height and its Draw callback is expected to compress its content
// into that box, so nothing is drawn past the footer band. It never causes
// an error; callers may log it.
package paginate

import (
	"fmt"
	"slices"
)

// Section is one titled block of content.
type Section struct {
	Title  string
	Height float64
	// Draw renders the section into box, whose top-left corner is the
	// section's position on the page. box.H is Height, or less for an
	// oversized section, in which case Draw must fit into box.H.
	Draw func(c Canvas, box Box)
}

// Placement records where a section landed.
type Placement struct {
	Section  string `json:"section"`
	Box      Box    `json:"box"`
	Overflow bool   `json:"overflow,omitempty"`
}

// Footer is the text stamped at the bottom of a page.
type Footer struct {
	Left  string `json:"left"`
	Right string `json:"right"`
}

// Page is one laid-out page.
type Page struct {
	Number     int         `json:"number"`
	Placements []Placement `json:"placements"`
	Ops        []Op        `json:"ops"`
	Footer     Footer      `json:"footer"`
}

// Document is a finished, paginated document.
type Document struct {
	Title  string   `json:"title"`
	Header []string `json:"header"`
	Size   Size     `json:"size"`
	Pages  []Page   `json:"pages"`
}

// PageCount returns the number of pages.
func (d Document) PageCount() int { return len(d.Pages) }

// Overflows returns the titles of sections that did not fit on a page.
func (d Document) Overflows() []string {
	var out []string
	for _, p := range d.Pages {
		for _, pl := range p.Placements {
			if pl.Overflow {
				out = append(out, pl.Section)
			}
		}
	}
	return out
}

// Render lays out sections under a repeated header and stamps page footers.
// Header lines wider than the page are wrapped (see [Options.FitHeader]).
func Render(title string, header []string, sections []Section, opts Options) Document {
	opts = opts.withDefaults()
	header = opts.FitHeader(header)
	pages := Layout(title, header, sections, opts)
	return Document{
		Title:  title,
		Header: header,
		Size:   opts.Size,
		Pages:  Finalize(pages, opts),
	}
}

// Finalize returns copies of pages with footers stamped. It must run after
// layout is complete, since every footer carries the final page count.
func Finalize(pages []Page, opts Options) []Page {
	opts = opts.withDefaults()
	total := len(pages)
	left := "Generated by " + opts.Source
	if opts.Date != "" {
		left += " • " + opts.Date
	}

	out := make([]Page, total)
	for i, p := range pages {
		footer := Footer{Left: left, Right: fmt.Sprintf("Page %d of %d", i+1, total)}
		p.Number = i + 1
		p.Footer = footer
		p.Placements = slices.Clone(p.Placements)
		p.Ops = append(slices.Clone(p.Ops), footerOps(footer, opts)...)
		out[i] = p
	}
	return out
}

func footerOps(f Footer, opts Options) []Op {
	var rec Recorder
	x := opts.Margin
	w := opts.ContentWidth()
	ruleY := opts.Size.Height - opts.Margin + opts.FooterSize/2
	baseline := ruleY + opts.FooterSize*lineSpacing
	font := Font{Size: opts.FooterSize}

	rec.Line(x, ruleY, x+w, ruleY, 0.5)
	rec.Text(x, baseline, w, f.Left, font, AlignLeft)
	rec.Text(x, baseline, w, f.Right, font, AlignRight)
	return rec.ops
}
