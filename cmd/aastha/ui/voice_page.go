package ui

import (
	"time"

	"aastha/internal/locale"
	"aastha/internal/router"
	"aastha/internal/voice"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var voiceText = struct {
	Title, Greeting, Listening, TapToSpeak  locale.Text
	Conversation, You, QuickActions         locale.Text
	ScanAnother, ViewData, Speak, StopLabel locale.Text
	Home                                    locale.Text
}{
	Title:        locale.Text{EN: "Ask Aastha", PA: "ਆਸਥਾ ਨੂੰ ਪੁੱਛੋ"},
	Greeting:     locale.Text{EN: "I am Aastha. How can I help you?", PA: "ਮੈਂ ਆਸਥਾ ਹਾਂ। ਮੈਂ ਤੁਹਾਡੀ ਕਿਵੇਂ ਮਦਦ ਕਰ ਸਕਦੀ ਹਾਂ?"},
	Listening:    locale.Text{EN: "Listening...", PA: "ਸੁਣ ਰਿਹਾ ਹੈ..."},
	TapToSpeak:   locale.Text{EN: "Tap to speak", PA: "ਬੋਲਣ ਲਈ ਦਬਾਓ"},
	Conversation: locale.Text{EN: "Conversation", PA: "ਗੱਲਬਾਤ"},
	You:          locale.Text{EN: "You", PA: "ਤੁਸੀਂ"},
	QuickActions: locale.Text{EN: "Quick Actions", PA: "ਤੁਰੰਤ ਕਾਰਵਾਈਆਂ"},
	ScanAnother:  locale.Text{EN: "Scan Another Crop", PA: "ਹੋਰ ਫ਼ਸਲ ਸਕੈਨ ਕਰੋ"},
	ViewData:     locale.Text{EN: "View Farm Data", PA: "ਫਾਰਮ ਡਾਟਾ ਦੇਖੋ"},
	Speak:        locale.Text{EN: "speak", PA: "ਬੋਲੋ"},
	StopLabel:    locale.Text{EN: "stop", PA: "ਰੋਕੋ"},
	Home:         locale.Text{EN: "home", PA: "ਘਰ"},
}

// VoicePageModel plays the scripted conversation. The transcript lives as
// long as the page does.
type VoicePageModel struct {
	base
	assistant *voice.Assistant
	spinner   spinner.Model
	viewport  viewport.Model
	md        markdown
}

// NewVoicePageModel creates the voice page around assistant.
func NewVoicePageModel(skin *Skin, lang locale.Locale, assistant *voice.Assistant) *VoicePageModel {
	sp := spinner.New(spinner.WithSpinner(spinner.Points))
	m := &VoicePageModel{
		base:      newBase(skin, lang),
		assistant: assistant,
		spinner:   sp,
		viewport:  viewport.New(80, 20),
	}
	m.SetSize(80, 24)
	return m
}

func (m *VoicePageModel) Screen() router.Screen { return router.ScreenVoice }

func (m *VoicePageModel) Init() tea.Cmd { return nil }

// Assistant exposes the transcript owner for inspection.
func (m *VoicePageModel) Assistant() *voice.Assistant { return m.assistant }

// Close drops any pending response.
func (m *VoicePageModel) Close() { m.assistant.Close() }

// SetSize updates the size of the viewport.
func (m *VoicePageModel) SetSize(w, h int) {
	m.base.SetSize(w, h)
	m.viewport.Width = m.width()
	m.viewport.Height = m.layout.BodyHeight()
}

// StartListening begins a listening period and schedules its completion.
func (m *VoicePageModel) StartListening() tea.Cmd {
	ticket, ok := m.assistant.StartListening()
	if !ok {
		return nil
	}
	id := m.assistant.ID()
	return tea.Batch(
		m.spinner.Tick,
		tea.Tick(voice.ResponseDelay, func(time.Time) tea.Msg {
			return VoiceResponseMsg{Assistant: id, Ticket: ticket}
		}),
	)
}

func (m *VoicePageModel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case VoiceResponseMsg:
		if msg.Assistant == m.assistant.ID() && m.assistant.Complete(msg.Ticket) {
			m.viewport.SetContent(m.content())
			m.viewport.GotoBottom()
		}
		return nil

	case spinner.TickMsg:
		if !m.assistant.Listening() {
			return nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return cmd

	case tea.KeyMsg:
		switch msg.String() {
		case " ", "enter", "m":
			if m.assistant.Listening() {
				m.assistant.StopListening()
				return nil
			}
			return m.StartListening()
		case "x":
			m.assistant.StopListening()
			return nil
		case "esc", "backspace", "h":
			m.assistant.StopListening()
			return Navigate(string(router.ScreenHome))
		case "s":
			return Navigate(string(router.ScreenScan))
		case "d":
			return Navigate(string(router.ScreenData))
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return cmd
}

func (m *VoicePageModel) content() string {
	s := m.skin.Styles
	r := m.skin.Renderer
	w := m.width()

	mic := r.Button("🎤 "+m.t(voiceText.Speak), "space", true, false)
	status := m.t(voiceText.TapToSpeak)
	if m.assistant.Listening() {
		mic = r.Button("■ "+m.t(voiceText.StopLabel), "space", true, true)
		status = s.Spinner.Render(m.spinner.View()) + " " + m.t(voiceText.Listening)
	}
	hero := r.Hero(lipgloss.JoinVertical(lipgloss.Center,
		"💬",
		s.Title.Render(m.t(voiceText.Greeting)),
		"",
		mic,
		"",
		r.Info(status, w-10),
	), w)

	parts := []string{hero}

	if msgs := m.assistant.Transcript(); len(msgs) > 0 {
		parts = append(parts, "", s.Large.Render(m.t(voiceText.Conversation)))
		for _, msg := range msgs {
			mine := msg.Role == voice.RoleUser
			who := "Aastha"
			text := m.md.render(msg.Text, s.Theme.IsDark, w-16)
			if mine {
				who = m.t(voiceText.You)
				text = msg.Text
			}
			head := s.Bold.Render(who) + "  " + s.Muted.Render(msg.Time.Format("15:04:05"))
			parts = append(parts, r.Bubble(head+"\n"+text, mine, w))
		}
	}

	parts = append(parts, "",
		s.Large.Render(m.t(voiceText.QuickActions)),
		r.Button(m.t(voiceText.ScanAnother), "s", true, false),
		r.Button(m.t(voiceText.ViewData), "d", false, false),
	)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *VoicePageModel) View() string {
	w := m.width()
	m.viewport.SetContent(m.content())
	return lipgloss.JoinVertical(lipgloss.Left,
		m.skin.Renderer.Header(m.t(voiceText.Title), true, w),
		m.viewport.View(),
		m.footer("space", m.t(voiceText.Speak), "s", m.t(voiceText.ScanAnother), "esc", m.t(voiceText.Home)),
	)
}
