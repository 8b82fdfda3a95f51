package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// out receives all status output. Tests swap it for a buffer.
var out io.Writer = os.Stdout

var (
	colorTeal  = lipgloss.Color("36")
	colorGreen = lipgloss.Color("35")
	colorAmber = lipgloss.Color("220")
	colorRed   = lipgloss.Color("167")
	colorBlue  = lipgloss.Color("75")
	colorWhite = lipgloss.Color("255")
	colorGray  = lipgloss.Color("245")
	colorDim   = lipgloss.Color("240")
)

var (
	// StyleTitle is for headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorTeal)
	// StyleHighlight marks counts and names inside status lines.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorTeal)
	// StyleLink marks addresses.
	StyleLink = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)
	// StyleDim is for secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	styleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	styleWarning = lipgloss.NewStyle().Foreground(colorAmber)
	styleKey     = lipgloss.NewStyle().Foreground(colorGray).Width(12)
	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)

	styleIconSpinner = lipgloss.NewStyle().Foreground(colorTeal)
)

// status icons, each with its color.
var (
	iconSuccess = lipgloss.NewStyle().Foreground(colorGreen).Render("✓")
	iconError   = lipgloss.NewStyle().Foreground(colorRed).Render("✗")
	iconWarning = lipgloss.NewStyle().Foreground(colorAmber).Render("!")
	iconInfo    = lipgloss.NewStyle().Foreground(colorGray).Render("›")
)

func statusLine(icon, format string, args ...any) {
	fmt.Fprintln(out, icon+" "+fmt.Sprintf(format, args...))
}

func printSuccess(format string, args ...any) { statusLine(iconSuccess, format, args...) }

func printError(format string, args ...any) { statusLine(iconError, format, args...) }

func printInfo(format string, args ...any) { statusLine(iconInfo, format, args...) }

func printWarning(format string, args ...any) {
	statusLine(iconWarning, "%s", styleWarning.Render(fmt.Sprintf(format, args...)))
}

// printDetail prints an indented, dimmed line under the previous status.
func printDetail(format string, args ...any) {
	fmt.Fprintln(out, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile lists a written file.
func printFile(path string) {
	fmt.Fprintln(out, "  "+StyleDim.Render("→")+" "+styleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Fprintln(out, styleKey.Render(key)+" "+styleValue.Render(value))
}

// printStats summarizes a rendered document: page count, room count and
// whether the artifacts came from the cache.
func printStats(pages, rooms int, cached bool) {
	var parts []string
	if pages > 0 {
		parts = append(parts, pagesLabel(pages))
	}
	if rooms > 0 {
		parts = append(parts, fmt.Sprintf("%d rooms", rooms))
	}
	origin := "fresh"
	if cached {
		origin = "cached"
	}
	parts = append(parts, origin)
	fmt.Fprintln(out, "  "+StyleDim.Render(strings.Join(parts, " · ")))
}

// printNextStep suggests the command to run next.
func printNextStep(description, cmd string) {
	fmt.Fprintln(out, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}
