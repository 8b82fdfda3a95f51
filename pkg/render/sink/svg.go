package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/matzehuels/seatplan/pkg/paginate"
)

const (
	svgFontFamily = `Helvetica, Arial, sans-serif`
	svgPageGap    = 24.0
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	page int // -1 renders every page
	gap  float64
}

// WithPage renders only page i (zero-based). Out-of-range indexes render
// an empty page frame.
func WithPage(i int) SVGOption { return func(r *svgRenderer) { r.page = i } }

// RenderSVG renders doc as a single SVG. Pages are stacked top to bottom,
// each on a white sheet with a thin border.
func RenderSVG(doc paginate.Document, opts ...SVGOption) []byte {
	r := svgRenderer{page: -1, gap: svgPageGap}
	for _, opt := range opts {
		opt(&r)
	}

	pages := doc.Pages
	if r.page >= 0 {
		pages = nil
		if r.page < len(doc.Pages) {
			pages = doc.Pages[r.page : r.page+1]
		}
	}
	n := max(1, len(pages))

	w, h := doc.Size.Width, doc.Size.Height
	total := float64(n)*h + float64(n-1)*r.gap

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f" font-family="%s">`+"\n",
		w, total, w, total, svgFontFamily)

	for i := 0; i < n; i++ {
		offset := float64(i) * (h + r.gap)
		fmt.Fprintf(&buf, `  <g class="page" transform="translate(0 %.2f)">`+"\n", offset)
		fmt.Fprintf(&buf, `    <rect class="sheet" x="0" y="0" width="%.2f" height="%.2f" fill="white" stroke="#ccc"/>`+"\n", w, h)
		if i < len(pages) {
			for _, op := range pages[i].Ops {
				renderSVGOp(&buf, op)
			}
		}
		buf.WriteString("  </g>\n")
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderSVGOp(buf *bytes.Buffer, op paginate.Op) {
	switch op.Kind {
	case paginate.OpText:
		if op.Text == "" {
			return
		}
		x, anchor := op.X, "start"
		switch op.Align {
		case paginate.AlignCenter:
			x, anchor = op.X+op.W/2, "middle"
		case paginate.AlignRight:
			x, anchor = op.X+op.W, "end"
		}
		weight := ""
		if op.Font.Bold {
			weight = ` font-weight="bold"`
		}
		fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f" font-size="%.1f" text-anchor="%s"%s>%s</text>`+"\n",
			x, op.Y, op.Font.Size, anchor, weight, escapeXML(op.Text))

	case paginate.OpRect:
		fill := "none"
		if op.Fill != nil {
			fill = hexColor(*op.Fill)
		}
		stroke := "none"
		if op.Stroke {
			stroke = hexColor(paginate.MidGray)
		}
		fmt.Fprintf(buf, `    <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s" stroke="%s" stroke-width="0.5"/>`+"\n",
			op.X, op.Y, op.W, op.H, fill, stroke)

	case paginate.OpLine:
		fmt.Fprintf(buf, `    <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="black" stroke-width="%.2f"/>`+"\n",
			op.X, op.Y, op.X2, op.Y2, op.Width)
	}
}

func hexColor(c paginate.Color) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
