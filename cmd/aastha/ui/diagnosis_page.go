package ui

import (
	"fmt"
	"strings"

	"aastha/internal/camera"
	"aastha/internal/locale"
	"aastha/internal/router"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Diagnosis is the fixed finding shown for every capture.
type Diagnosis struct {
	Disease    locale.Text
	Severity   locale.Text
	Confidence int
	Treatment  []locale.Text
	Recovery   locale.Text
}

// YellowRust is the only diagnosis the prototype knows.
var YellowRust = Diagnosis{
	Disease:    locale.Text{EN: "Yellow Rust", PA: "ਪੀਲੀ ਕੰਗੀ"},
	Severity:   locale.Text{EN: "Moderate", PA: "ਮੱਧਮ"},
	Confidence: 87,
	Treatment: []locale.Text{
		{EN: "Remove infected leaves immediately", PA: "ਸੰਕਰਮਿਤ ਪੱਤਿਆਂ ਨੂੰ ਤੁਰੰਤ ਹਟਾਓ"},
		{EN: "Apply fungicide spray (Propiconazole)", PA: "ਫੰਗੀਸਾਈਡ ਸਪਰੇ ਕਰੋ (ਪ੍ਰੋਪੀਕੋਨਾਜ਼ੋਲ)"},
		{EN: "Improve field drainage", PA: "ਖੇਤ ਦੀ ਨਿਕਾਸੀ ਸੁਧਾਰੋ"},
		{EN: "Monitor crop regularly for 2 weeks", PA: "2 ਹਫ਼ਤਿਆਂ ਤੱਕ ਫ਼ਸਲ ਦੀ ਨਿਯਮਿਤ ਨਿਗਰਾਨੀ ਕਰੋ"},
	},
	Recovery: locale.Text{EN: "Expected recovery: 2-3 weeks", PA: "ਰਿਕਵਰੀ ਦਾ ਸਮਾਂ: 2-3 ਹਫ਼ਤੇ"},
}

var diagnosisText = struct {
	Title, Detected, Severity, Confidence locale.Text
	Treatment, Ask, Home                  locale.Text
	Captured, Sample, Rescan              locale.Text
}{
	Title:      locale.Text{EN: "Diagnosis Results", PA: "ਨਿਦਾਨ ਦੇ ਨਤੀਜੇ"},
	Detected:   locale.Text{EN: "Disease detected in your crop", PA: "ਤੁਹਾਡੀ ਫ਼ਸਲ ਵਿੱਚ ਬਿਮਾਰੀ ਮਿਲੀ"},
	Severity:   locale.Text{EN: "Severity", PA: "ਗੰਭੀਰਤਾ"},
	Confidence: locale.Text{EN: "Confidence", PA: "ਭਰੋਸਾ"},
	Treatment:  locale.Text{EN: "Treatment Plan", PA: "ਇਲਾਜ ਦੀ ਯੋਜਨਾ"},
	Ask:        locale.Text{EN: "Ask More Questions", PA: "ਹੋਰ ਸਵਾਲ ਪੁੱਛੋ"},
	Home:       locale.Text{EN: "Back to Home", PA: "ਘਰ ਵਾਪਸ ਜਾਓ"},
	Captured:   locale.Text{EN: "Photo captured", PA: "ਫੋਟੋ ਲਈ ਗਈ"},
	Sample:     locale.Text{EN: "Sample image", PA: "ਨਮੂਨਾ ਤਸਵੀਰ"},
	Rescan:     locale.Text{EN: "scan again", PA: "ਮੁੜ ਸਕੈਨ"},
}

// DiagnosisPageModel shows the fixed diagnosis. The image only decides the
// capture badge; nothing is computed from it.
type DiagnosisPageModel struct {
	base
	image    camera.Image
	viewport viewport.Model
	md       markdown
}

// NewDiagnosisPageModel creates the results page for img.
func NewDiagnosisPageModel(skin *Skin, lang locale.Locale, img camera.Image) *DiagnosisPageModel {
	m := &DiagnosisPageModel{
		base:     newBase(skin, lang),
		image:    img,
		viewport: viewport.New(80, 20),
	}
	m.SetSize(80, 24)
	return m
}

func (m *DiagnosisPageModel) Screen() router.Screen { return router.ScreenDiagnosis }

func (m *DiagnosisPageModel) Init() tea.Cmd { return nil }

func (m *DiagnosisPageModel) Close() {}

// SetSize updates the size of the viewport.
func (m *DiagnosisPageModel) SetSize(w, h int) {
	m.base.SetSize(w, h)
	m.viewport.Width = m.width()
	m.viewport.Height = m.layout.BodyHeight()
	m.UpdateContent()
}

// UpdateContent re-renders the scrollable body.
func (m *DiagnosisPageModel) UpdateContent() {
	m.viewport.SetContent(m.content())
}

func (m *DiagnosisPageModel) content() string {
	s := m.skin.Styles
	r := m.skin.Renderer
	w := m.width()
	d := YellowRust

	badge := s.Success.Render("✔ " + m.t(diagnosisText.Captured))
	if m.image.Empty() || m.image.IsPlaceholder() {
		badge = s.Muted.Render("◌ " + m.t(diagnosisText.Sample))
	}

	stat := func(value string, label locale.Text, st lipgloss.Style) string {
		return r.Info(lipgloss.JoinVertical(lipgloss.Center, st.Render(value), s.Muted.Render(m.t(label))), w/2-3)
	}
	summary := r.Hero(lipgloss.JoinVertical(lipgloss.Center,
		s.Warning.Render("⚠ "+m.t(d.Disease)),
		s.Muted.Render(m.t(diagnosisText.Detected)),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top,
			stat(m.t(d.Severity), diagnosisText.Severity, s.Warning),
			" ",
			stat(fmt.Sprintf("%d%%", d.Confidence), diagnosisText.Confidence, s.Title),
		),
		"",
		badge,
	), w)

	var plan strings.Builder
	for i, step := range d.Treatment {
		fmt.Fprintf(&plan, "%d. %s\n", i+1, m.t(step))
	}
	treatment := r.Card(lipgloss.JoinVertical(lipgloss.Left,
		s.Large.Render("💊 "+m.t(diagnosisText.Treatment)),
		m.md.render(plan.String(), s.Theme.IsDark, w-6),
		"",
		r.Info("⏱ "+m.t(d.Recovery), w-6),
	), w)

	actions := lipgloss.JoinVertical(lipgloss.Left,
		r.Button(m.t(diagnosisText.Ask), "a", true, false),
		r.Button(m.t(diagnosisText.Home), "h", false, false),
	)

	return lipgloss.JoinVertical(lipgloss.Left, summary, "", treatment, "", actions)
}

func (m *DiagnosisPageModel) Update(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "a", "v":
			return Navigate(string(router.ScreenVoice))
		case "h", "esc", "backspace":
			return Navigate(string(router.ScreenHome))
		case "s":
			return Navigate(string(router.ScreenScan))
		}
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return cmd
}

func (m *DiagnosisPageModel) View() string {
	w := m.width()
	m.UpdateContent()
	return lipgloss.JoinVertical(lipgloss.Left,
		m.skin.Renderer.Header(m.t(diagnosisText.Title), true, w),
		m.viewport.View(),
		m.footer("a", m.t(diagnosisText.Ask), "s", m.t(diagnosisText.Rescan), "h", m.t(diagnosisText.Home)),
	)
}
