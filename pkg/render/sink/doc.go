// Package sink provides output format renderers for paginated documents.
//
// # Overview
//
// A "sink" turns a [paginate.Document] (or a composition preview) into a
// final output format. Pages carry a display list of drawing operations
// with absolute coordinates in points, origin top-left, so every sink
// replays the same list:
//
//   - PDF: print-ready output via go-pdf/fpdf, one PDF page per page
//   - SVG: all pages stacked vertically, or one page with [WithPage]
//   - JSON: the preview structure for on-screen consumers
//   - Text: lipgloss tables for terminal preview
//
// Basic usage:
//
//	res, _ := composer.SeatPlan(rec, setup)
//	pdf, err := sink.RenderPDF(res.Document, sink.WithPDFTitle(res.Filename))
//	svg := sink.RenderSVG(res.Document, sink.WithPage(0))
//	data, err := sink.RenderJSON(res.Preview())
//
// # Fonts
//
// PDF output uses the Helvetica core font with the cp1252 translator, so
// the "•" separator in footers and headers renders without embedding a
// font. SVG output names a sans-serif font stack and leaves glyph choice to
// the viewer.
//
// [paginate.Document]: github.com/matzehuels/seatplan/pkg/paginate.Document
package sink
