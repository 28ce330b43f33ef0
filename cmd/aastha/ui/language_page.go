package ui

import (
	"strings"

	"aastha/internal/locale"
	"aastha/internal/router"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// LanguagePageModel is the first screen: pick English or Punjabi.
type LanguagePageModel struct {
	base
	cursor int
}

// NewLanguagePageModel creates the language picker. Its labels are shown in
// both languages.
func NewLanguagePageModel(skin *Skin) *LanguagePageModel {
	return &LanguagePageModel{base: newBase(skin, locale.English)}
}

func (m *LanguagePageModel) Screen() router.Screen { return router.ScreenLanguage }

func (m *LanguagePageModel) Init() tea.Cmd { return nil }

func (m *LanguagePageModel) Close() {}

func (m *LanguagePageModel) Update(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch key.String() {
	case "up", "k", "shift+tab":
		m.cursor = (m.cursor + len(locale.All) - 1) % len(locale.All)
	case "down", "j", "tab":
		m.cursor = (m.cursor + 1) % len(locale.All)
	case "1", "e":
		return selectLanguage(locale.English)
	case "2", "p":
		return selectLanguage(locale.Punjabi)
	case "enter", " ":
		return selectLanguage(locale.All[m.cursor])
	}
	return nil
}

func selectLanguage(l locale.Locale) tea.Cmd {
	return func() tea.Msg { return LanguageSelectedMsg{Locale: l} }
}

func (m *LanguagePageModel) View() string {
	s := m.skin.Styles
	r := m.skin.Renderer
	w := m.width()

	hero := r.Hero(lipgloss.JoinVertical(lipgloss.Center,
		Logo(s),
		s.Muted.Render("Your Farming Companion"),
	), w)

	var buttons []string
	for i, l := range locale.All {
		buttons = append(buttons, r.Button(l.Name(), string('1'+rune(i)), i == 0, i == m.cursor))
	}
	picker := r.Card(lipgloss.JoinVertical(lipgloss.Left,
		s.Large.Render("Select your language"),
		s.Large.Render("ਆਪਣੀ ਭਾਸ਼ਾ ਚੁਣੋ"),
		"",
		strings.Join(buttons, "\n"),
	), w)

	return lipgloss.JoinVertical(lipgloss.Left,
		hero,
		"",
		picker,
		m.footer("↑/↓", "move", "enter", "select", "ctrl+c", "quit"),
	)
}
