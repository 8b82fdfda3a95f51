// Package pipeline provides the compose → render pipeline for seat plans and
// duty rosters.
//
// This package implements the complete pipeline used by the CLI and the HTTP
// API. By centralizing it, both entry points apply the same defaults, the
// same validation and the same artifact cache.
//
// # Architecture
//
// The pipeline has two stages:
//
//  1. Compose: allocate seats, build grids, assign invigilators and paginate
//     the document ([compose.Composer]). This is pure and cheap.
//  2. Render: replay the paginated document into each requested output
//     format ([sink]). PDF rendering dominates the cost, so artifacts are
//     cached by a hash of the input and render options.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Kind:    "seat-plan",
//	    Formats: []string{"pdf", "json"},
//	}
//	result, err := runner.Execute(ctx, file, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !result.Ready() {
//	    fmt.Println(result.Compose.Reason)
//	}
//	pdf := result.Artifacts["pdf"]
//
// [compose.Composer]: github.com/matzehuels/seatplan/pkg/compose.Composer
// [sink]: github.com/matzehuels/seatplan/pkg/render/sink
package pipeline

import (
	"io"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/seatplan/pkg/cache"
	"github.com/matzehuels/seatplan/pkg/compose"
	"github.com/matzehuels/seatplan/pkg/errors"
	"github.com/matzehuels/seatplan/pkg/paginate"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultKind is the document produced when none is named.
	DefaultKind = compose.KindSeatPlan

	// DefaultPageSize is the default page size name.
	DefaultPageSize = "A4"

	// DefaultSource is the footer source name.
	DefaultSource = paginate.DefaultSource
)

// Format constants for output formats.
const (
	FormatPDF  = "pdf"
	FormatSVG  = "svg"
	FormatJSON = "json"
	FormatText = "txt"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatPDF:  true,
	FormatSVG:  true,
	FormatJSON: true,
	FormatText: true,
}

// ValidKinds is the set of supported document kinds.
var ValidKinds = map[compose.Kind]bool{
	compose.KindSeatPlan:   true,
	compose.KindDutyRoster: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	Kind     compose.Kind `json:"kind,omitempty"`
	Formats  []string     `json:"formats,omitempty"`
	PageSize string       `json:"page_size,omitempty"`
	Margin   float64      `json:"margin,omitempty"`
	Source   string       `json:"source,omitempty"`
	// Date is printed in page footers. Defaults to the run date.
	Date    string `json:"date,omitempty"`
	Refresh bool   `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	size      paginate.Size
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Compose is the composition, including the preview and the paginated
	// document.
	Compose compose.Result

	// InputHash is the content hash of the normalized input.
	InputHash string

	// Artifacts contains rendered outputs keyed by format. It is empty when
	// the composition is not ready.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which artifacts came from the cache.
	CacheInfo CacheInfo
}

// Ready reports whether there was anything to render.
func (r *Result) Ready() bool { return r.Compose.Ready }

// Filename returns the output filename for format, e.g.
// "Seat_Plan_Mathematics_2026-05-04.pdf".
func (r *Result) Filename(format string) string {
	return r.Compose.Filename + "." + format
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Pages       int
	Rooms       int
	Students    int
	Overflows   []string
	ComposeTime time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for the render stage.
type CacheInfo struct {
	Hits      []string // Formats served from cache
	RenderHit bool     // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", format, formatList())
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateKind checks that a document kind is valid.
func ValidateKind(kind compose.Kind) error {
	if !ValidKinds[kind] {
		return errors.New(errors.ErrCodeInvalidKind, "invalid kind: %q (must be one of: seat-plan, duty-roster)", kind)
	}
	return nil
}

func formatList() string {
	names := make([]string, 0, len(ValidFormats))
	for f := range ValidFormats {
		names = append(names, f)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the options and applies defaults.
// This method is idempotent - calling it multiple times has the same effect
// as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	if o.Kind == "" {
		o.Kind = DefaultKind
	} else {
		k, err := compose.ParseKind(string(o.Kind))
		if err != nil {
			return err
		}
		o.Kind = k
	}

	if len(o.Formats) == 0 {
		o.Formats = []string{FormatPDF}
	}
	o.Formats = dedupe(o.Formats)
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}

	if o.PageSize == "" {
		o.PageSize = DefaultPageSize
	}
	size, err := paginate.ParseSize(o.PageSize)
	if err != nil {
		return err
	}
	o.size = size
	o.PageSize = size.Name

	if o.Margin < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "margin must not be negative, got %g", o.Margin)
	}
	if o.Margin*2 >= min(size.Width, size.Height) {
		return errors.New(errors.ErrCodeInvalidInput, "margin %g leaves no room on a %s page", o.Margin, size.Name)
	}
	if o.Source == "" {
		o.Source = DefaultSource
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.validated = true
	return nil
}

// PageOptions returns the paginator options. Call after
// ValidateAndSetDefaults.
func (o *Options) PageOptions() paginate.Options {
	return paginate.Options{
		Size:   o.size,
		Margin: o.Margin,
		Source: o.Source,
		Date:   o.Date,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Kind:     string(o.Kind),
		Format:   format,
		PageSize: o.PageSize,
		Margin:   o.Margin,
		Source:   o.Source,
		Date:     o.Date,
	}
}

func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "text" {
			s = FormatText
		}
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
