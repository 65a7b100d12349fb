// Package styles holds the Dracula palette and the lipgloss styles built
// from it, shared by every renderer.
package styles

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Palette holds the Dracula theme colors.
type Palette struct {
	Background  color.Color
	CurrentLine color.Color
	Foreground  color.Color
	Comment     color.Color
	Cyan        color.Color
	Green       color.Color
	Orange      color.Color
	Pink        color.Color
	Purple      color.Color
	Red         color.Color
	Yellow      color.Color
}

// Dracula is the palette everything is drawn with.
var Dracula = Palette{
	Background:  lipgloss.Color("#282a36"),
	CurrentLine: lipgloss.Color("#44475a"),
	Foreground:  lipgloss.Color("#f8f8f2"),
	Comment:     lipgloss.Color("#6272a4"),
	Cyan:        lipgloss.Color("#8be9fd"),
	Green:       lipgloss.Color("#50fa7b"),
	Orange:      lipgloss.Color("#ffb86c"),
	Pink:        lipgloss.Color("#ff79c6"),
	Purple:      lipgloss.Color("#bd93f9"),
	Red:         lipgloss.Color("#ff5555"),
	Yellow:      lipgloss.Color("#f1fa8c"),
}

// Semantic colors
var (
	Primary = Dracula.Purple
	Accent  = Dracula.Pink
	Success = Dracula.Green
	Error   = Dracula.Red
	Muted   = Dracula.Comment
	Normal  = Dracula.Foreground
	Info    = Dracula.Cyan
	Warning = Dracula.Orange
)

var (
	Bold = lipgloss.NewStyle().Bold(true)

	PrimaryStyle = lipgloss.NewStyle().Foreground(Primary)
	AccentStyle  = lipgloss.NewStyle().Foreground(Accent).Bold(true)
	SuccessStyle = lipgloss.NewStyle().Foreground(Success)
	ErrorStyle   = lipgloss.NewStyle().Foreground(Error)
	MutedStyle   = lipgloss.NewStyle().Foreground(Muted)
	NormalStyle  = lipgloss.NewStyle().Foreground(Normal)
	InfoStyle    = lipgloss.NewStyle().Foreground(Info)
	WarningStyle = lipgloss.NewStyle().Foreground(Warning)

	// HeaderStyle is used for table headers and card titles.
	HeaderStyle = lipgloss.NewStyle().Foreground(Primary).Bold(true)

	// LabelStyle is used for field names in cards.
	LabelStyle = lipgloss.NewStyle().Foreground(Dracula.Cyan)

	// CommandStyle highlights shell commands.
	CommandStyle = lipgloss.NewStyle().Foreground(Dracula.Yellow)

	// Card frames one app in the dashboard and in `show`.
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Primary).
		Padding(0, 1)

	// HighlightStyle marks fuzzy-matched characters.
	HighlightStyle = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true).
			Underline(true)
)

// Symbols
const (
	StarSymbol  = "★"
	ForkSymbol  = "⑂"
	StaleSymbol = "~"
)
