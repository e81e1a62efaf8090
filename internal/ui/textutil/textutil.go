// Package textutil provides unicode-aware text utilities for TUI rendering.
package textutil

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

// TruncateEllipsis is the unicode ellipsis character used for truncation.
const TruncateEllipsis = "…"

// VisualWidth returns the number of terminal columns a plain string occupies.
func VisualWidth(s string) int {
	return runewidth.StringWidth(s)
}

// Truncate truncates a plain string to fit within maxWidth visual columns,
// appending … when something was cut.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if VisualWidth(s) <= maxWidth {
		return s
	}
	return runewidth.Truncate(s, maxWidth, TruncateEllipsis)
}

// PadRightVisual pads a plain string with spaces to targetWidth columns,
// truncating it if it is already wider.
func PadRightVisual(s string, targetWidth int) string {
	if VisualWidth(s) >= targetWidth {
		return Truncate(s, targetWidth)
	}
	return runewidth.FillRight(s, targetWidth)
}

// Splice writes the styled block top over the styled block base, with top's
// upper-left corner at column x, row y. Rows of base outside top are kept;
// base is extended with blank rows if top reaches below it.
func Splice(base, top string, x, y int) string {
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	baseLines := strings.Split(base, "\n")
	topLines := strings.Split(top, "\n")
	for len(baseLines) < y+len(topLines) {
		baseLines = append(baseLines, "")
	}

	for i, tl := range topLines {
		row := baseLines[y+i]
		left := ansi.Truncate(row, x, "")
		if w := lipgloss.Width(left); w < x {
			left += strings.Repeat(" ", x-w)
		}
		right := ansi.TruncateLeft(row, x+lipgloss.Width(tl), "")
		baseLines[y+i] = left + tl + right
	}
	return strings.Join(baseLines, "\n")
}
