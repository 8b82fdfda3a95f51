package paginate

import (
	"strings"
	"unicode/utf8"
)

// avgGlyphWidth approximates the mean Helvetica advance width as a fraction
// of the font size. It errs wide so estimated lines stay inside the margins.
const avgGlyphWidth = 0.55

// MaxWrappedLines caps how many header lines one input line may wrap into.
// Text beyond the cap is cut and ends in an ellipsis.
const MaxWrappedLines = 3

const ellipsis = "…"

// HeaderChars returns how many header characters fit the content width.
func (o Options) HeaderChars() int {
	o = o.withDefaults()
	return max(8, int(o.ContentWidth()/(o.HeaderSize*avgGlyphWidth)))
}

// FitHeader wraps each header line at word boundaries so it fits the
// content width. Words longer than a line are split.
func (o Options) FitHeader(lines []string) []string {
	limit := o.HeaderChars()
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		out = append(out, wrap(line, limit, MaxWrappedLines)...)
	}
	return out
}

// wrap breaks s into lines of at most limit runes, keeping at most
// maxLines of them.
func wrap(s string, limit, maxLines int) []string {
	var lines []string
	var cur strings.Builder
	curLen := 0
	flush := func() {
		if curLen > 0 {
			lines = append(lines, cur.String())
			cur.Reset()
			curLen = 0
		}
	}

	for _, word := range strings.Fields(s) {
		for utf8.RuneCountInString(word) > limit {
			flush()
			r := []rune(word)
			lines = append(lines, string(r[:limit]))
			word = string(r[limit:])
		}
		n := utf8.RuneCountInString(word)
		if curLen > 0 && curLen+1+n > limit {
			flush()
		}
		if curLen > 0 {
			cur.WriteByte(' ')
			curLen++
		}
		cur.WriteString(word)
		curLen += n
	}
	flush()

	if len(lines) == 0 {
		return []string{""}
	}
	if len(lines) > maxLines {
		lines = lines[:maxLines]
		last := []rune(lines[maxLines-1])
		if len(last) > limit-1 {
			last = last[:limit-1]
		}
		lines[maxLines-1] = strings.TrimRight(string(last), " ") + ellipsis
	}
	return lines
}
