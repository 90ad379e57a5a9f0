package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Terminal palette (Gruvbox), named by role rather than hue.
var (
	ColorAccent = lipgloss.Color("#fe8019")
	ColorText   = lipgloss.Color("#ebdbb2")
	ColorMuted  = lipgloss.Color("#928374")
	ColorGood   = lipgloss.Color("#8ec07c")
	ColorWarn   = lipgloss.Color("#fabd2f")
	ColorBad    = lipgloss.Color("#fb4934")
	ColorInfo   = lipgloss.Color("#83a598")
	ColorAI     = lipgloss.Color("#d3869b")
)

var (
	StyleTitle  = lipgloss.NewStyle().Foreground(ColorAccent).Bold(true)
	StyleMuted  = lipgloss.NewStyle().Foreground(ColorMuted)
	StyleStrong = lipgloss.NewStyle().Foreground(ColorText).Bold(true)
	StyleGood   = lipgloss.NewStyle().Foreground(ColorGood)
	StyleWarn   = lipgloss.NewStyle().Foreground(ColorWarn)
	StyleBad    = lipgloss.NewStyle().Foreground(ColorBad)
	StyleInfo   = lipgloss.NewStyle().Foreground(ColorInfo)
	StyleAI     = lipgloss.NewStyle().Foreground(ColorAI)
)

// CategoryStyle renders in the catalog color of a category.
func CategoryStyle(hex string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Bold(true)
}

// ScoreStyle colors a 0-100 value using the data quality bands.
func ScoreStyle(score int) lipgloss.Style {
	switch {
	case score >= 80:
		return StyleGood
	case score >= 50:
		return StyleWarn
	default:
		return StyleBad
	}
}

// Header renders an upper-cased section title over a rule of the same width.
func Header(text string) string {
	title := strings.ToUpper(text)
	return fmt.Sprintf("%s\n%s", StyleTitle.Render(title), StyleMuted.Render(strings.Repeat("─", lipgloss.Width(title))))
}

func Dim(text string) string  { return StyleMuted.Render(text) }
func Bold(text string) string { return StyleStrong.Render(text) }
