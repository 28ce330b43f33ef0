// Package ui provides the pages and visual styling for the Aastha terminal
// app. Behavior lives in the page models; how a card or a button looks is
// decided by a Renderer so the glass and card variants share every page.
package ui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Status colors, shared by both themes.
var (
	Healthy  = lipgloss.Color("#43a047")
	Disease  = lipgloss.Color("#e53935")
	Caution  = lipgloss.Color("#fb8c00")
	Sky      = lipgloss.Color("#1e88e5")
	OnBadge  = lipgloss.Color("#ffffff")
	fieldDay = Theme{
		Foreground: "#1d2b12",
		Primary:    "#2e7d32", // leaf
		Accent:     "#f9a825", // wheat
		Secondary:  "#e3ecd9",
		Muted:      "#7a8a6c",
		Border:     "#c5d3b5",
	}
	fieldNight = Theme{
		Foreground: "#eef3e8",
		Primary:    "#8bc34a",
		Accent:     "#ffca28",
		Secondary:  "#1f2a17",
		Muted:      "#8f9f80",
		Border:     "#3a4a2c",
		IsDark:     true,
	}
)

// Theme is one palette of the farm colors.
type Theme struct {
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Secondary  lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	IsDark     bool
}

// LightTheme is the daylight palette.
func LightTheme() Theme { return fieldDay }

// DarkTheme is the night palette.
func DarkTheme() Theme { return fieldNight }

// ThemeFor picks the palette for a dark or light terminal.
func ThemeFor(dark bool) Theme {
	if dark {
		return fieldNight
	}
	return fieldDay
}

// DetectDark guesses whether the terminal has a dark background.
func DetectDark() bool {
	// COLORFGBG is "fg;bg"; ANSI 0-6 and 8 are dark backgrounds.
	fields := strings.Split(os.Getenv("COLORFGBG"), ";")
	if bg, err := strconv.Atoi(fields[len(fields)-1]); err == nil && len(fields) > 1 {
		return bg <= 6 || bg == 8
	}
	return os.Getenv("AASTHA_DARK_MODE") == "1"
}

// Styles are the lipgloss styles every page draws with.
type Styles struct {
	Theme Theme

	Header, Footer, Content lipgloss.Style

	Title, Subtitle, Body, Muted, Bold, Large lipgloss.Style

	Success, Error, Warning, Info lipgloss.Style

	Spinner, Divider, Badge, Key lipgloss.Style
}

// NewStyles derives the style set from a palette.
func NewStyles(t Theme) Styles {
	text := func(c lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }
	strong := func(c lipgloss.Color) lipgloss.Style { return text(c).Bold(true) }

	return Styles{
		Theme: t,

		Header:  strong(t.Primary),
		Footer:  text(t.Muted).Padding(0, 1),
		Content: lipgloss.NewStyle().Padding(1, 2),

		Title:    strong(t.Primary),
		Subtitle: text(t.Muted).Italic(true),
		Body:     text(t.Foreground),
		Muted:    text(t.Muted),
		Bold:     strong(t.Foreground),
		Large:    strong(t.Foreground).Underline(true),

		Success: strong(Healthy),
		Error:   strong(Disease),
		Warning: strong(Caution),
		Info:    text(Sky),

		Spinner: text(t.Accent),
		Divider: text(t.Border),
		Badge:   strong(OnBadge).Background(t.Primary).Padding(0, 1),
		Key:     strong(t.Accent),
	}
}

// SeverityStyle colors a severity label.
func (s Styles) SeverityStyle(level string) lipgloss.Style {
	switch level {
	case "high":
		return s.Error
	case "moderate":
		return s.Warning
	default:
		return s.Success
	}
}

const wordmark = `
   __           _   _
  /  \ __ _ ___| |_| |_  __ _
 | () / _` + "`" + ` (_-<  _| ' \/ _` + "`" + ` |
 |_||_\__,_/__/\__|_||_\__,_|
`

// Logo returns the Aastha wordmark.
func Logo(s Styles) string {
	return s.Title.Render(wordmark)
}

// RenderDivider draws a rule of the given width.
func (s Styles) RenderDivider(width int) string {
	return s.Divider.Render(strings.Repeat("─", max(width, 1)))
}
