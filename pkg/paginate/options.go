package paginate

import (
	"strings"

	"github.com/matzehuels/seatplan/pkg/errors"
)

// Size is a page size in points (1/72 inch), portrait orientation.
type Size struct {
	Name   string  `json:"name"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Standard page sizes.
var (
	A4     = Size{Name: "A4", Width: 595.28, Height: 841.89}
	Letter = Size{Name: "Letter", Width: 612, Height: 792}
)

// ParseSize returns the page size with the given name (case-insensitive).
func ParseSize(name string) (Size, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "a4":
		return A4, nil
	case "letter":
		return Letter, nil
	}
	return Size{}, errors.New(errors.ErrCodeInvalidPageSize, "invalid page size: %q (must be one of: a4, letter)", name)
}

// Default layout values, in points.
const (
	DefaultMargin     = 40.0
	DefaultSpacing    = 14.0
	DefaultTitleSize  = 16.0
	DefaultHeaderSize = 10.0
	DefaultFooterSize = 8.0
	DefaultSource     = "seatplan"

	// lineSpacing is the ratio of line height to font size.
	lineSpacing = 1.4
)

// Options controls page geometry and the footer stamp.
// Zero fields take the package defaults.
type Options struct {
	Size       Size
	Margin     float64
	Spacing    float64 // vertical gap after each section
	TitleSize  float64
	HeaderSize float64
	FooterSize float64

	// Source and Date fill the left footer: "Generated by <Source> • <Date>".
	Source string
	Date   string
}

// DefaultOptions returns A4 portrait with default margins and fonts.
func DefaultOptions() Options {
	return Options{}.withDefaults()
}

func (o Options) withDefaults() Options {
	if o.Size.Width <= 0 || o.Size.Height <= 0 {
		o.Size = A4
	}
	if o.Margin <= 0 {
		o.Margin = DefaultMargin
	}
	if o.Spacing < 0 {
		o.Spacing = 0
	} else if o.Spacing == 0 {
		o.Spacing = DefaultSpacing
	}
	if o.TitleSize <= 0 {
		o.TitleSize = DefaultTitleSize
	}
	if o.HeaderSize <= 0 {
		o.HeaderSize = DefaultHeaderSize
	}
	if o.FooterSize <= 0 {
		o.FooterSize = DefaultFooterSize
	}
	if o.Source == "" {
		o.Source = DefaultSource
	}
	return o
}

// HeaderHeight returns the height of the header block for the given number
// of header lines: the title, the lines and a gap below the rule.
func (o Options) HeaderHeight(lines int) float64 {
	o = o.withDefaults()
	return o.TitleSize*lineSpacing + float64(lines)*o.HeaderSize*lineSpacing + o.HeaderSize
}

// ContentTop returns the y coordinate where section content starts on a page
// whose header has the given number of lines.
func (o Options) ContentTop(lines int) float64 {
	o = o.withDefaults()
	return o.Margin + o.HeaderHeight(lines)
}

// ContentBottom returns the lowest y coordinate content may reach.
func (o Options) ContentBottom() float64 {
	o = o.withDefaults()
	return o.Size.Height - o.Margin
}

// ContentWidth returns the page width between the margins.
func (o Options) ContentWidth() float64 {
	o = o.withDefaults()
	return o.Size.Width - 2*o.Margin
}

// Usable returns the vertical space available to sections on one page.
func (o Options) Usable(lines int) float64 {
	return o.ContentBottom() - o.ContentTop(lines)
}
