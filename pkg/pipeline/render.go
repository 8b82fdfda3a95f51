package pipeline

import (
	"fmt"
	"time"

	"github.com/matzehuels/seatplan/pkg/buildinfo"
	"github.com/matzehuels/seatplan/pkg/compose"
	"github.com/matzehuels/seatplan/pkg/render/sink"
)

const dateLayout = "2006-01-02"

// Render generates output artifacts in the given formats. created stamps
// the PDF metadata so identical inputs render identical bytes.
func Render(res compose.Result, formats []string, created time.Time, opts Options) (map[string][]byte, error) {
	if !res.Ready {
		return nil, fmt.Errorf("nothing to render: %s", res.Reason)
	}

	artifacts := make(map[string][]byte, len(formats))
	for _, format := range formats {
		var data []byte
		var err error

		switch format {
		case FormatPDF:
			data, err = sink.RenderPDF(res.Document,
				sink.WithPDFTitle(res.Document.Title+" - "+res.Filename),
				sink.WithPDFCreator(opts.Source),
				sink.WithPDFProducer(buildinfo.Get().Producer()),
				sink.WithPDFCreated(created.Truncate(24*time.Hour)))
		case FormatSVG:
			data = sink.RenderSVG(res.Document)
		case FormatJSON:
			data, err = sink.RenderJSON(res.Preview())
		case FormatText:
			data = []byte(sink.RenderText(res))
		default:
			err = ValidateFormat(format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}
