package sink

import (
	"bytes"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/matzehuels/seatplan/pkg/errors"
	"github.com/matzehuels/seatplan/pkg/paginate"
)

const pdfFontFamily = "Helvetica"

// PDFOption configures PDF rendering.
type PDFOption func(*pdfRenderer)

type pdfRenderer struct {
	title    string
	creator  string
	producer string
	created  time.Time
}

// WithPDFTitle sets the document title metadata.
func WithPDFTitle(title string) PDFOption { return func(r *pdfRenderer) { r.title = title } }

// WithPDFCreator sets the creator metadata, e.g. the footer source name.
func WithPDFCreator(creator string) PDFOption { return func(r *pdfRenderer) { r.creator = creator } }

// WithPDFProducer replaces the library's default producer string.
func WithPDFProducer(producer string) PDFOption {
	return func(r *pdfRenderer) { r.producer = producer }
}

// WithPDFCreated fixes the creation date. Output is byte-for-byte
// reproducible only when this is set.
func WithPDFCreated(t time.Time) PDFOption { return func(r *pdfRenderer) { r.created = t } }

// RenderPDF renders doc as a PDF with one page per document page.
func RenderPDF(doc paginate.Document, opts ...PDFOption) ([]byte, error) {
	r := pdfRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	size := doc.Size
	if size.Width <= 0 || size.Height <= 0 {
		size = paginate.A4
	}

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: size.Width, Ht: size.Height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCatalogSort(true)
	if r.title != "" {
		pdf.SetTitle(r.title, true)
	} else if doc.Title != "" {
		pdf.SetTitle(doc.Title, true)
	}
	if r.creator != "" {
		pdf.SetCreator(r.creator, true)
	}
	if r.producer != "" {
		pdf.SetProducer(r.producer, false)
	}
	if !r.created.IsZero() {
		pdf.SetCreationDate(r.created)
		pdf.SetModificationDate(r.created)
	}

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	for _, page := range doc.Pages {
		pdf.AddPage()
		for _, op := range page.Ops {
			drawPDFOp(pdf, tr, op)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render pdf")
	}
	return buf.Bytes(), nil
}

func drawPDFOp(pdf *fpdf.Fpdf, tr func(string) string, op paginate.Op) {
	switch op.Kind {
	case paginate.OpText:
		if op.Text == "" {
			return
		}
		style := ""
		if op.Font.Bold {
			style = "B"
		}
		pdf.SetFont(pdfFontFamily, style, op.Font.Size)
		pdf.SetTextColor(0, 0, 0)
		s := tr(op.Text)
		pdf.Text(alignX(op.X, op.W, pdf.GetStringWidth(s), op.Align), op.Y, s)

	case paginate.OpRect:
		style := ""
		if op.Fill != nil {
			pdf.SetFillColor(int(op.Fill.R), int(op.Fill.G), int(op.Fill.B))
			style += "F"
		}
		if op.Stroke {
			pdf.SetDrawColor(int(paginate.MidGray.R), int(paginate.MidGray.G), int(paginate.MidGray.B))
			pdf.SetLineWidth(0.5)
			style += "D"
		}
		if style == "" {
			return
		}
		pdf.Rect(op.X, op.Y, op.W, op.H, style)

	case paginate.OpLine:
		pdf.SetDrawColor(0, 0, 0)
		pdf.SetLineWidth(max(0.1, op.Width))
		pdf.Line(op.X, op.Y, op.X2, op.Y2)
	}
}

// alignX returns the left edge of a run of text of width tw placed in the
// span [x, x+w] with alignment a.
func alignX(x, w, tw float64, a paginate.Align) float64 {
	switch a {
	case paginate.AlignCenter:
		return x + (w-tw)/2
	case paginate.AlignRight:
		return x + w - tw
	default:
		return x
	}
}
