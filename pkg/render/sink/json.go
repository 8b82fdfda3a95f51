package sink

import (
	"encoding/json"

	"github.com/matzehuels/seatplan/pkg/errors"
	"github.com/matzehuels/seatplan/pkg/paginate"
)

// RenderJSON exports v, typically a composition preview, as pretty-printed
// JSON. Blank seats in seat grids encode as null.
func RenderJSON(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render json")
	}
	return append(data, '\n'), nil
}

type jsonDocument struct {
	Title  string     `json:"title"`
	Header []string   `json:"header"`
	Width  float64    `json:"width"`
	Height float64    `json:"height"`
	Pages  []jsonPage `json:"pages"`
}

type jsonPage struct {
	Number   int             `json:"number"`
	Sections []string        `json:"sections"`
	Overflow []string        `json:"overflow,omitempty"`
	Footer   paginate.Footer `json:"footer"`
	Ops      []paginate.Op   `json:"ops,omitempty"`
}

// RenderDocumentJSON exports the paginated layout itself: pages, the
// sections placed on each and their footers. With ops set, every page's
// display list is included too.
func RenderDocumentJSON(doc paginate.Document, ops bool) ([]byte, error) {
	out := jsonDocument{
		Title:  doc.Title,
		Header: doc.Header,
		Width:  doc.Size.Width,
		Height: doc.Size.Height,
		Pages:  make([]jsonPage, len(doc.Pages)),
	}
	for i, p := range doc.Pages {
		jp := jsonPage{Number: p.Number, Footer: p.Footer, Sections: []string{}}
		for _, pl := range p.Placements {
			jp.Sections = append(jp.Sections, pl.Section)
			if pl.Overflow {
				jp.Overflow = append(jp.Overflow, pl.Section)
			}
		}
		if ops {
			jp.Ops = p.Ops
		}
		out.Pages[i] = jp
	}
	return RenderJSON(out)
}
