package ui

import (
	"aastha/internal/locale"
	"aastha/internal/router"

	tea "github.com/charmbracelet/bubbletea"
)

// Page is one screen. Pages are created when the screen is entered and
// closed when it is left.
type Page interface {
	Screen() router.Screen
	Init() tea.Cmd
	Update(msg tea.Msg) tea.Cmd
	View() string
	SetSize(width, height int)
	// Close releases whatever the page holds. It must be safe to call twice.
	Close()
}

// Skin is the shared look. The shell swaps its fields when the config
// changes and every page picks them up on the next View.
type Skin struct {
	Styles   Styles
	Renderer Renderer
}

// NewSkin builds styles and a renderer.
func NewSkin(variant string, dark bool) *Skin {
	styles := NewStyles(ThemeFor(dark))
	return &Skin{Styles: styles, Renderer: NewRenderer(variant, styles)}
}

// Apply rebuilds the skin in place.
func (k *Skin) Apply(variant string, dark bool) {
	*k = *NewSkin(variant, dark)
}

// base carries what every page needs.
type base struct {
	skin   *Skin
	lang   locale.Locale
	layout LayoutConfig
}

func newBase(skin *Skin, lang locale.Locale) base {
	return base{skin: skin, lang: lang, layout: NewLayoutConfig(80, 24)}
}

func (b *base) SetSize(width, height int) {
	b.layout = NewLayoutConfig(width, height)
}

func (b *base) width() int { return b.layout.ContentWidth() }

func (b *base) t(text locale.Text) string { return text.In(b.lang) }

// footer renders the key hints line.
func (b *base) footer(hints ...string) string {
	s := b.skin.Styles
	out := ""
	for i := 0; i+1 < len(hints); i += 2 {
		if out != "" {
			out += s.Muted.Render("  •  ")
		}
		out += s.Key.Render(hints[i]) + " " + s.Muted.Render(hints[i+1])
	}
	return s.Footer.Render(out)
}
