package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Renderer draws the building blocks every page is made of. Pages decide
// what to show; the renderer decides how it looks.
type Renderer interface {
	Name() string
	// Header is the top bar. back adds the "esc" affordance.
	Header(title string, back bool, width int) string
	// Hero is the page's main panel.
	Hero(body string, width int) string
	Card(body string, width int) string
	// Info is a small highlighted note inside a card.
	Info(body string, width int) string
	Button(label, key string, primary, focused bool) string
	// Bubble is one chat message; mine aligns it to the right.
	Bubble(body string, mine bool, width int) string
}

// Variant names.
const (
	VariantGlass = "glass"
	VariantCard  = "card"
)

// Variants lists the available renderers.
var Variants = []string{VariantGlass, VariantCard}

// NewRenderer returns the renderer for variant. Unknown names get glass.
func NewRenderer(variant string, s Styles) Renderer {
	if strings.EqualFold(variant, VariantCard) {
		return cardRenderer{s: s}
	}
	return glassRenderer{s: s}
}

// glassRenderer draws floating rounded panels with tinted borders.
type glassRenderer struct{ s Styles }

func (glassRenderer) Name() string { return VariantGlass }

func (g glassRenderer) Header(title string, back bool, width int) string {
	text := g.s.Title.Render(title)
	if back {
		text = g.s.Muted.Render("← ") + text
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(g.s.Theme.Border).
		Padding(0, 2).
		Width(boxWidth(width)).
		Render(text)
}

func (g glassRenderer) Hero(body string, width int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(g.s.Theme.Primary).
		Padding(1, 3).
		Width(boxWidth(width)).
		Align(lipgloss.Center).
		Render(body)
}

func (g glassRenderer) Card(body string, width int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(g.s.Theme.Border).
		Padding(0, 2).
		Width(boxWidth(width)).
		Render(body)
}

func (g glassRenderer) Info(body string, width int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(g.s.Theme.Accent).
		Padding(0, 1).
		Width(boxWidth(width)).
		Render(body)
}

func (g glassRenderer) Button(label, key string, primary, focused bool) string {
	st := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(g.s.Theme.Border).
		Padding(0, 2)
	if primary {
		st = st.BorderForeground(g.s.Theme.Primary).Foreground(g.s.Theme.Primary).Bold(true)
	}
	if focused {
		st = st.BorderForeground(g.s.Theme.Accent).Foreground(g.s.Theme.Accent).Bold(true)
	}
	return st.Render(keyed(g.s, label, key))
}

func (g glassRenderer) Bubble(body string, mine bool, width int) string {
	w := boxWidth(width) - 8
	st := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1).
		Width(max(w, 10))
	if mine {
		st = st.BorderForeground(g.s.Theme.Primary).MarginLeft(8)
	} else {
		st = st.BorderForeground(g.s.Theme.Accent).MarginRight(8)
	}
	return st.Render(body)
}

// cardRenderer draws plain square cards.
type cardRenderer struct{ s Styles }

func (cardRenderer) Name() string { return VariantCard }

func (c cardRenderer) Header(title string, back bool, width int) string {
	text := c.s.Title.Render(title)
	if back {
		text = c.s.Muted.Render("< ") + text
	}
	return text + "\n" + c.s.RenderDivider(boxWidth(width))
}

func (c cardRenderer) Hero(body string, width int) string {
	return c.Card(body, width)
}

func (c cardRenderer) Card(body string, width int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(c.s.Theme.Border).
		Padding(0, 1).
		Width(boxWidth(width)).
		Render(body)
}

func (c cardRenderer) Info(body string, width int) string {
	return lipgloss.NewStyle().
		Background(c.s.Theme.Secondary).
		Padding(0, 1).
		Width(boxWidth(width)).
		Render(body)
}

func (c cardRenderer) Button(label, key string, primary, focused bool) string {
	st := c.s.Body
	if primary {
		st = c.s.Bold
	}
	text := "[ " + keyed(c.s, label, key) + " ]"
	if focused {
		return c.s.Badge.Render("> " + label + " ")
	}
	return st.Render(text)
}

func (c cardRenderer) Bubble(body string, mine bool, width int) string {
	st := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		PaddingLeft(1).
		Width(max(boxWidth(width)-4, 10))
	if mine {
		st = st.BorderForeground(c.s.Theme.Primary).MarginLeft(4)
	} else {
		st = st.BorderForeground(c.s.Theme.Accent)
	}
	return st.Render(body)
}

func keyed(s Styles, label, key string) string {
	if key == "" {
		return label
	}
	return fmt.Sprintf("%s %s", s.Key.Render(key), label)
}

// boxWidth is the inner width passed to lipgloss Width for a bordered box.
func boxWidth(width int) int {
	if width <= PanelBorderWidth {
		return MinContentWidth
	}
	return width - PanelBorderWidth
}
