package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestDetectPalette(t *testing.T) {
	tests := []struct {
		name     string
		light    string
		colorfgb string
		wantDark bool
	}{
		{"default is dark", "", "", true},
		{"env forces light", "1", "", false},
		{"light background 15", "", "0;15", false},
		{"light background 7", "", "0;7", false},
		{"dark background", "", "15;0", true},
		{"malformed COLORFGBG", "", "garbage", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("LAMINA_LIGHT_MODE", tt.light)
			t.Setenv("COLORFGBG", tt.colorfgb)
			assert.Equal(t, tt.wantDark, DetectPalette().Dark)
		})
	}
}

func TestPaletteFor(t *testing.T) {
	assert.False(t, PaletteFor("light").Dark)
	assert.True(t, PaletteFor("DARK").Dark)

	t.Setenv("LAMINA_LIGHT_MODE", "1")
	assert.False(t, PaletteFor("auto").Dark)
}

func TestRenderDivider(t *testing.T) {
	s := NewStyles(DarkPalette())
	assert.Contains(t, s.RenderDivider(4), "────")
	assert.NotContains(t, s.RenderDivider(-1), "─")
}

func TestLabelsShareWidth(t *testing.T) {
	s := NewStyles(LightPalette())
	short := s.Label.Render("Color")
	focused := s.LabelFocused.Render("Color")
	assert.Equal(t, LabelWidth, lipgloss.Width(short))
	assert.Equal(t, lipgloss.Width(short), lipgloss.Width(focused))
}

func TestLogo(t *testing.T) {
	logo := Logo(NewStyles(DarkPalette()))
	assert.True(t, strings.Contains(logo, "Instagram Post Generator AI"))
}
