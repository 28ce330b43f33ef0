package ui

import (
	"fmt"

	"aastha/internal/locale"
	"aastha/internal/router"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var homeText = struct {
	Greeting, Weather, Perfect, Manage locale.Text
	Scan, Ask, Data, Track, ViewData   locale.Text
	Scans, Issues, Health              locale.Text
}{
	Greeting: locale.Text{EN: "Good Morning, Leonard", PA: "ਸਤ ਸ੍ਰੀ ਅਕਾਲ, ਲਿਓਨਾਰਡ"},
	Weather:  locale.Text{EN: "Today's Weather", PA: "ਅੱਜ ਦਾ ਮੌਸਮ"},
	Perfect:  locale.Text{EN: "Perfect for farming", PA: "ਖੇਤੀ ਲਈ ਚੰਗਾ"},
	Manage:   locale.Text{EN: "Manage Your Farm", PA: "ਆਪਣਾ ਫਾਰਮ ਸੰਭਾਲੋ"},
	Scan:     locale.Text{EN: "Scan Crop", PA: "ਫ਼ਸਲ ਸਕੈਨ"},
	Ask:      locale.Text{EN: "Ask Aastha", PA: "ਆਸਥਾ ਨੂੰ ਪੁੱਛੋ"},
	Data:     locale.Text{EN: "My Farm Data", PA: "ਮੇਰਾ ਫਾਰਮ ਡਾਟਾ"},
	Track:    locale.Text{EN: "Track your progress", PA: "ਆਪਣੀ ਤਰੱਕੀ ਦੇਖੋ"},
	ViewData: locale.Text{EN: "View Data", PA: "ਡਾਟਾ ਦੇਖੋ"},
	Scans:    locale.Text{EN: "Scans", PA: "ਸਕੈਨ"},
	Issues:   locale.Text{EN: "Issues", PA: "ਸਮੱਸਿਆਵਾਂ"},
	Health:   locale.Text{EN: "Health", PA: "ਸਿਹਤ"},
}

// Weather shown on the dashboard.
const (
	weatherTemp     = "30°C"
	weatherHumidity = "65%"
	weatherWind     = "3 km/h"
)

type homeAction struct {
	key    string
	label  locale.Text
	target router.Screen
}

var homeActions = []homeAction{
	{"s", homeText.Scan, router.ScreenScan},
	{"a", homeText.Ask, router.ScreenVoice},
	{"d", homeText.Data, router.ScreenData},
}

// HomePageModel is the dashboard.
type HomePageModel struct {
	base
	cursor int
}

// NewHomePageModel creates the dashboard for lang.
func NewHomePageModel(skin *Skin, lang locale.Locale) *HomePageModel {
	return &HomePageModel{base: newBase(skin, lang)}
}

func (m *HomePageModel) Screen() router.Screen { return router.ScreenHome }

func (m *HomePageModel) Init() tea.Cmd { return nil }

func (m *HomePageModel) Close() {}

func (m *HomePageModel) Update(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch key.String() {
	case "up", "k", "shift+tab":
		m.cursor = (m.cursor + len(homeActions) - 1) % len(homeActions)
	case "down", "j", "tab":
		m.cursor = (m.cursor + 1) % len(homeActions)
	case "enter", " ":
		return Navigate(string(homeActions[m.cursor].target))
	default:
		for _, a := range homeActions {
			if key.String() == a.key {
				return Navigate(string(a.target))
			}
		}
	}
	return nil
}

func (m *HomePageModel) View() string {
	s := m.skin.Styles
	r := m.skin.Renderer
	w := m.width()

	header := r.Header("Aastha", false, w) + "\n" + s.Muted.Render(m.t(homeText.Greeting))

	weather := r.Card(lipgloss.JoinVertical(lipgloss.Left,
		s.Bold.Render(m.t(homeText.Weather))+"  ☀",
		s.Muted.Render(m.t(homeText.Perfect)),
		"",
		fmt.Sprintf("%s   💧 %s   🌬 %s", s.Large.Render(weatherTemp), weatherHumidity, weatherWind),
	), w)

	var buttons []string
	for i, a := range homeActions {
		label := m.t(a.label)
		if a.target == router.ScreenData {
			label += s.Muted.Render(" · " + m.t(homeText.Track))
		}
		buttons = append(buttons, r.Button(label, a.key, i == 0, i == m.cursor))
	}
	actions := lipgloss.JoinVertical(lipgloss.Left,
		s.Large.Render(m.t(homeText.Manage)),
		lipgloss.JoinVertical(lipgloss.Left, buttons...),
	)

	stat := func(value string, label locale.Text, st lipgloss.Style) string {
		return r.Info(lipgloss.JoinVertical(lipgloss.Center, st.Render(value), s.Muted.Render(m.t(label))), w/3-1)
	}
	stats := lipgloss.JoinHorizontal(lipgloss.Top,
		stat(fmt.Sprint(farmTotals.Scans), homeText.Scans, s.Title),
		" ",
		stat(fmt.Sprint(farmTotals.Issues), homeText.Issues, s.Warning),
		" ",
		stat(fmt.Sprintf("%d%%", farmTotals.Health), homeText.Health, s.Title),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		weather,
		"",
		actions,
		"",
		stats,
		m.footer("s", m.t(homeText.Scan), "a", m.t(homeText.Ask), "d", m.t(homeText.ViewData)),
	)
}
