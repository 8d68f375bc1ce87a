package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Names of the available palettes.
const (
	Light = "light"
	Dark  = "dark"
)

// Palette is one set of UI colors.
type Palette struct {
	Primary   color.Color
	Secondary color.Color
	Accent    color.Color
	Success   color.Color
	Error     color.Color
	Text      color.Color
	TextDim   color.Color
	BgCard    color.Color
	Border    color.Color
}

var palettes = map[string]Palette{
	Light: {
		Primary:   lipgloss.Color("#6D28D9"), // Deep Violet
		Secondary: lipgloss.Color("#0F766E"), // Dark Teal
		Accent:    lipgloss.Color("#C2410C"), // Burnt Orange
		Success:   lipgloss.Color("#15803D"), // Green
		Error:     lipgloss.Color("#BE123C"), // Rose
		Text:      lipgloss.Color("#0F172A"), // Navy
		TextDim:   lipgloss.Color("#64748B"), // Slate
		BgCard:    lipgloss.Color("#F1F5F9"), // Mist
		Border:    lipgloss.Color("#CBD5E1"), // Light Slate
	},
	Dark: {
		Primary:   lipgloss.Color("#8B5CF6"), // Vivid Purple
		Secondary: lipgloss.Color("#14B8A6"), // Teal
		Accent:    lipgloss.Color("#F97316"), // Orange
		Success:   lipgloss.Color("#22C55E"), // Green
		Error:     lipgloss.Color("#F43F5E"), // Rose
		Text:      lipgloss.Color("#F8FAFC"), // White
		TextDim:   lipgloss.Color("#94A3B8"), // Slate
		BgCard:    lipgloss.Color("#1E293B"), // Dark Slate
		Border:    lipgloss.Color("#334155"), // Slate
	},
}

// Active colors. Screens read these at render time, so Apply takes effect
// on the next frame.
var (
	Primary   color.Color
	Secondary color.Color
	Accent    color.Color
	Success   color.Color
	Error     color.Color
	Text      color.Color
	TextDim   color.Color
	BgCard    color.Color
	Border    color.Color
)

// Styles derived from the active palette.
var (
	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Hint      lipgloss.Style
	Selected  lipgloss.Style
	Correct   lipgloss.Style
	Incorrect lipgloss.Style
	Card      lipgloss.Style
)

var current string

func init() {
	Apply(Light)
}

// Apply switches to the named palette. Unknown names fall back to Light.
// It returns the name actually applied.
func Apply(name string) string {
	p, ok := palettes[name]
	if !ok {
		name = Light
		p = palettes[Light]
	}
	current = name

	Primary, Secondary, Accent = p.Primary, p.Secondary, p.Accent
	Success, Error = p.Success, p.Error
	Text, TextDim = p.Text, p.TextDim
	BgCard, Border = p.BgCard, p.Border

	Title = lipgloss.NewStyle().Bold(true).Foreground(Primary).Align(lipgloss.Center)
	Subtitle = lipgloss.NewStyle().Foreground(TextDim).Align(lipgloss.Center)
	Hint = lipgloss.NewStyle().Foreground(TextDim).Italic(true)
	Selected = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	Correct = lipgloss.NewStyle().Foreground(Success).Bold(true)
	Incorrect = lipgloss.NewStyle().Foreground(Error).Bold(true)
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)

	return name
}

// Current returns the active palette name.
func Current() string {
	return current
}

// Toggle flips between light and dark and returns the new name.
func Toggle() string {
	if current == Dark {
		return Apply(Light)
	}
	return Apply(Dark)
}
