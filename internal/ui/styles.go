package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme colors used throughout the UI
const (
	ColorAccent    = "86"  // Cyan/green - for titles, highlights
	ColorHighlight = "205" // Magenta - default modal border
	ColorMuted     = "241" // Gray - for dimmed text, hints
	ColorText      = "252" // Light gray - for normal text
	ColorDim       = "243" // Darker gray - for the backdrop behind an open modal
)

// Styles contains shared style definitions used by the host and content views.
var Styles = struct {
	Title    lipgloss.Style // Bold accent color - for view titles
	Box      lipgloss.Style // Modal box with rounded border
	Selected lipgloss.Style // Current step, focused item
	Muted    lipgloss.Style // Dimmed text
	Normal   lipgloss.Style // Body text
	Hint     lipgloss.Style // Help/hint text
	Backdrop lipgloss.Style // Base view while a modal covers it
	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style
}{
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccent)),
	Box: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorHighlight)).
		Padding(1, 2),
	Selected: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHighlight)).
		Bold(true),
	Muted: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Normal: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorText)),
	Hint: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Backdrop: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorDim)).
		Faint(true),
	HelpKey: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHighlight)).
		Bold(true),
	HelpDesc: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
}

// boxStyle returns the modal box style for the given content width and
// border color.
func boxStyle(width int, borderColor string) lipgloss.Style {
	s := Styles.Box.Width(width)
	if borderColor != "" {
		s = s.BorderForeground(lipgloss.Color(borderColor))
	}
	return s
}
