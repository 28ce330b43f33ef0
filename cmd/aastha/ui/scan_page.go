package ui

import (
	"context"
	"strings"

	"aastha/internal/camera"
	"aastha/internal/capture"
	"aastha/internal/locale"
	"aastha/internal/router"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var scanText = struct {
	Title, Ready, Hint, Start, Starting locale.Text
	Focus, Capture, Capturing, Back     locale.Text
}{
	Title:    locale.Text{EN: "Crop Scan", PA: "ਫ਼ਸਲ ਸਕੈਨ"},
	Ready:    locale.Text{EN: "Ready to scan your crop?", PA: "ਆਪਣੀ ਫ਼ਸਲ ਸਕੈਨ ਕਰਨ ਲਈ ਤਿਆਰ?"},
	Hint:     locale.Text{EN: "Focus on the leaf for best results", PA: "ਵਧੀਆ ਨਤੀਜਿਆਂ ਲਈ ਪੱਤੇ ਤੇ ਫੋਕਸ ਕਰੋ"},
	Start:    locale.Text{EN: "Start Camera", PA: "ਕੈਮਰਾ ਸ਼ੁਰੂ ਕਰੋ"},
	Starting: locale.Text{EN: "Starting camera...", PA: "ਕੈਮਰਾ ਸ਼ੁਰੂ ਹੋ ਰਿਹਾ ਹੈ..."},
	Focus:    locale.Text{EN: "Focus on the leaf", PA: "ਪੱਤੇ ਤੇ ਫੋਕਸ ਕਰੋ"},
	Capture:  locale.Text{EN: "Take Photo", PA: "ਫੋਟੋ ਖਿੱਚੋ"},
	Back:     locale.Text{EN: "back", PA: "ਵਾਪਸ"},

	Capturing: locale.Text{EN: "Taking photo...", PA: "ਫੋਟੋ ਖਿੱਚੀ ਜਾ ਰਹੀ ਹੈ..."},
}

// ScanPageModel drives the camera: start it, show the viewfinder, take a
// photo. It owns the capture session and stops it on every way out.
type ScanPageModel struct {
	base
	session   *capture.Session
	spinner   spinner.Model
	capturing bool
	ctx       context.Context
	cancel    context.CancelFunc
}

// photoReadyMsg carries a frame grabbed off the event loop.
type photoReadyMsg struct {
	session string
	image   camera.Image
}

// NewScanPageModel creates the scan page around session.
func NewScanPageModel(skin *Skin, lang locale.Locale, session *capture.Session) *ScanPageModel {
	ctx, cancel := context.WithCancel(context.Background())
	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	return &ScanPageModel{
		base:    newBase(skin, lang),
		session: session,
		spinner: sp,
		ctx:     ctx,
		cancel:  cancel,
	}
}

func (m *ScanPageModel) Screen() router.Screen { return router.ScreenScan }

func (m *ScanPageModel) Init() tea.Cmd { return nil }

// Session exposes the capture session for inspection.
func (m *ScanPageModel) Session() *capture.Session { return m.session }

// Close stops the camera and abandons any pending acquisition.
func (m *ScanPageModel) Close() {
	m.session.Stop()
	m.cancel()
}

// StartCamera begins acquisition and returns the command that completes it.
func (m *ScanPageModel) StartCamera() tea.Cmd {
	req, ok := m.session.Begin()
	if !ok {
		return nil
	}
	ctx := m.ctx
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		return CameraResultMsg{Result: req.Do(ctx)}
	})
}

// Capturing reports whether a photo is being taken.
func (m *ScanPageModel) Capturing() bool { return m.capturing }

// TakePhoto detaches the stream and returns the command that grabs the
// frame (or the placeholder) and stops the camera.
func (m *ScanPageModel) TakePhoto() tea.Cmd {
	if m.capturing {
		return nil
	}
	m.capturing = true
	shot := m.session.Detach()
	ctx := m.ctx
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		return photoReadyMsg{session: shot.Session, image: shot.Take(ctx)}
	})
}

func (m *ScanPageModel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case CameraResultMsg:
		if msg.Result.Session != m.session.ID() {
			msg.Result.Release()
			return nil
		}
		m.session.Resolve(msg.Result)
		return nil

	case photoReadyMsg:
		if !m.capturing || msg.session != m.session.ID() {
			return nil
		}
		m.capturing = false
		img := msg.image
		return func() tea.Msg { return PhotoTakenMsg{Image: img} }

	case spinner.TickMsg:
		if m.session.State() != capture.StateStarting && !m.capturing {
			return nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "backspace", "h":
			m.session.Stop()
			return Navigate(string(router.ScreenHome))
		case "c":
			if m.capturing {
				return nil
			}
			return m.StartCamera()
		case "enter", " ", "p":
			if m.capturing {
				return nil
			}
			switch m.session.State() {
			case capture.StateIdle:
				return m.StartCamera()
			case capture.StateStreaming:
				return m.TakePhoto()
			}
		}
	}
	return nil
}

func (m *ScanPageModel) View() string {
	s := m.skin.Styles
	r := m.skin.Renderer
	w := m.width()

	var body string
	switch {
	case m.capturing:
		body = r.Hero(s.Spinner.Render(m.spinner.View())+" "+s.Muted.Render(m.t(scanText.Capturing)), w)
	case m.session.State() == capture.StateIdle:
		body = r.Hero(lipgloss.JoinVertical(lipgloss.Center,
			"📷",
			s.Large.Render(m.t(scanText.Ready)),
			"",
			r.Info(s.Muted.Render(m.t(scanText.Hint)), w-10),
			"",
			r.Button(m.t(scanText.Start), "enter", true, true),
		), w)
	case m.session.State() == capture.StateStarting:
		body = r.Hero(s.Spinner.Render(m.spinner.View())+" "+s.Muted.Render(m.t(scanText.Starting)), w)
	default:
		body = lipgloss.JoinVertical(lipgloss.Center,
			m.viewfinder(w),
			"",
			r.Button(m.t(scanText.Capture), "space", true, true),
		)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		r.Header(m.t(scanText.Title), true, w),
		"",
		body,
		m.footer("enter", m.t(scanText.Capture), "esc", m.t(scanText.Back)),
	)
}

// viewfinder draws the live preview frame with a focus square.
func (m *ScanPageModel) viewfinder(width int) string {
	s := m.skin.Styles
	inner := width - 4
	if inner < 20 {
		inner = 20
	}
	height := 9
	focus := m.t(scanText.Focus)

	lines := make([]string, 0, height)
	for y := 0; y < height; y++ {
		switch y {
		case 2, height - 3:
			mark := "┌" + strings.Repeat(" ", 14) + "┐"
			if y != 2 {
				mark = "└" + strings.Repeat(" ", 14) + "┘"
			}
			lines = append(lines, lipgloss.PlaceHorizontal(inner, lipgloss.Center, s.Key.Render(mark)))
		case height / 2:
			lines = append(lines, lipgloss.PlaceHorizontal(inner, lipgloss.Center, s.Body.Render("🌿")))
		case height - 1:
			lines = append(lines, lipgloss.PlaceHorizontal(inner, lipgloss.Center, s.Badge.Render(focus)))
		default:
			lines = append(lines, strings.Repeat(" ", inner))
		}
	}
	return lipgloss.NewStyle().
		Border(lipgloss.ThickBorder()).
		BorderForeground(s.Theme.Primary).
		Render(strings.Join(lines, "\n"))
}
