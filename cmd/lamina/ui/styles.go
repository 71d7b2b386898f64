// Package ui holds the lipgloss styles of the lamina studio: an indigo and
// violet palette in light and dark variants.
package ui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Status colors, shared by both palettes.
var (
	ColorSuccess = lipgloss.Color("#34d399")
	ColorError   = lipgloss.Color("#f87171")
	ColorInfo    = lipgloss.Color("#60a5fa")
	colorOnBrand = lipgloss.Color("#ffffff")
)

// Palette is one color scheme.
type Palette struct {
	Ink    lipgloss.Color // body text
	Indigo lipgloss.Color // sections, active tab
	Violet lipgloss.Color // titles, focus, spinner
	Faint  lipgloss.Color // labels, help
	Rule   lipgloss.Color // borders, disabled fields
	Dark   bool
}

// LightPalette is used on light terminal backgrounds.
func LightPalette() Palette {
	return Palette{
		Ink:    lipgloss.Color("#111827"),
		Indigo: lipgloss.Color("#4f46e5"),
		Violet: lipgloss.Color("#9333ea"),
		Faint:  lipgloss.Color("#6b7280"),
		Rule:   lipgloss.Color("#d1d5db"),
	}
}

// DarkPalette is the default.
func DarkPalette() Palette {
	return Palette{
		Ink:    lipgloss.Color("#f3f4f6"),
		Indigo: lipgloss.Color("#818cf8"),
		Violet: lipgloss.Color("#c084fc"),
		Faint:  lipgloss.Color("#9ca3af"),
		Rule:   lipgloss.Color("#374151"),
		Dark:   true,
	}
}

// PaletteFor maps the ui.theme config value to a palette. Anything other
// than "light" or "dark" is detected from the terminal.
func PaletteFor(name string) Palette {
	switch strings.ToLower(name) {
	case "light":
		return LightPalette()
	case "dark":
		return DarkPalette()
	}
	return DetectPalette()
}

// DetectPalette picks light for LAMINA_LIGHT_MODE=1 or a light COLORFGBG
// background, dark otherwise.
func DetectPalette() Palette {
	if os.Getenv("LAMINA_LIGHT_MODE") == "1" {
		return LightPalette()
	}

	// COLORFGBG is "fg;bg"; 7 and 15 are light backgrounds.
	if parts := strings.Split(os.Getenv("COLORFGBG"), ";"); len(parts) == 2 {
		if bg, err := strconv.Atoi(parts[1]); err == nil && (bg == 7 || bg == 15) {
			return LightPalette()
		}
	}
	return DarkPalette()
}

// Styles are the rendered pieces of the studio.
type Styles struct {
	Palette Palette

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style
	Bold     lipgloss.Style

	// Generator form
	Section      lipgloss.Style
	Label        lipgloss.Style
	LabelFocused lipgloss.Style
	Disabled     lipgloss.Style
	Badge        lipgloss.Style

	Tab       lipgloss.Style
	TabActive lipgloss.Style

	Success lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style

	Card    lipgloss.Style
	Spinner lipgloss.Style
	Divider lipgloss.Style
	Footer  lipgloss.Style
}

// LabelWidth fits the longest field label.
const LabelWidth = 38

// NewStyles builds the studio styles for p.
func NewStyles(p Palette) Styles {
	return Styles{
		Palette: p,

		Title:    lipgloss.NewStyle().Foreground(p.Violet).Bold(true),
		Subtitle: lipgloss.NewStyle().Foreground(p.Faint).Italic(true).MarginBottom(1),
		Body:     lipgloss.NewStyle().Foreground(p.Ink),
		Muted:    lipgloss.NewStyle().Foreground(p.Faint),
		Bold:     lipgloss.NewStyle().Foreground(p.Ink).Bold(true),

		Section: lipgloss.NewStyle().
			Foreground(p.Indigo).
			Bold(true).
			BorderBottom(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(p.Rule),
		Label:        lipgloss.NewStyle().Foreground(p.Faint).Width(LabelWidth),
		LabelFocused: lipgloss.NewStyle().Foreground(p.Violet).Bold(true).Width(LabelWidth),
		Disabled:     lipgloss.NewStyle().Foreground(p.Rule).Strikethrough(true),
		Badge: lipgloss.NewStyle().
			Background(p.Violet).
			Foreground(colorOnBrand).
			Padding(0, 1).
			Bold(true),

		Tab: lipgloss.NewStyle().Foreground(p.Faint).Padding(0, 2),
		TabActive: lipgloss.NewStyle().
			Foreground(p.Indigo).
			Bold(true).
			Padding(0, 2).
			BorderBottom(true).
			BorderStyle(lipgloss.ThickBorder()).
			BorderForeground(p.Indigo),

		Success: lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true),
		Error:   lipgloss.NewStyle().Foreground(ColorError).Bold(true),
		Info:    lipgloss.NewStyle().Foreground(ColorInfo),

		Card: lipgloss.NewStyle().
			Foreground(p.Ink).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Rule),
		Spinner: lipgloss.NewStyle().Foreground(p.Violet),
		Divider: lipgloss.NewStyle().Foreground(p.Rule),
		Footer:  lipgloss.NewStyle().Foreground(p.Faint).PaddingTop(1),
	}
}

// Logo returns the studio banner.
func Logo(s Styles) string {
	title := s.Title.Render("Instagram Post Generator AI")
	sub := s.Subtitle.Render("Create stunning Instagram visuals in seconds with the power of Gemini.")
	return lipgloss.JoinVertical(lipgloss.Left, title, sub)
}

// RenderDivider returns a horizontal rule width cells wide.
func (s Styles) RenderDivider(width int) string {
	if width < 0 {
		width = 0
	}
	return s.Divider.Render(strings.Repeat("─", width))
}
