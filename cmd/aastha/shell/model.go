// Package shell is the root Bubble Tea model. It owns the router, builds a
// page for the current screen, and turns page messages into router
// transitions.
package shell

import (
	"sync"

	"aastha/cmd/aastha/ui"
	"aastha/internal/camera"
	"aastha/internal/capture"
	"aastha/internal/config"
	"aastha/internal/locale"
	"aastha/internal/router"
	"aastha/internal/voice"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

// ConfigReloadedMsg delivers a config change from the file watcher. Err is
// set when the new file could not be used.
type ConfigReloadedMsg struct {
	Config *config.Config
	Err    error
}

// Options configures a Model.
type Options struct {
	Config *config.Config
	Device camera.Device
	Logger *zap.Logger
	// DarkDetected is the terminal's own preference, used when the theme
	// setting is auto.
	DarkDetected bool
}

// Model is the application shell.
type Model struct {
	router       *router.Router
	skin         *ui.Skin
	page         ui.Page
	device       camera.Device
	constraints  camera.Constraints
	logger       *zap.Logger
	darkDetected bool

	width  int
	height int
	status string

	shutdownOnce sync.Once
}

// New builds the shell. A valid preselected language skips the picker.
func New(opts Options) *Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	device := opts.Device
	if device == nil {
		device = camera.Unavailable{}
	}

	m := &Model{
		router:       router.New(logger),
		skin:         ui.NewSkin(cfg.UI.Variant, cfg.DarkMode(opts.DarkDetected)),
		device:       device,
		constraints:  Constraints(cfg.Camera),
		logger:       logger,
		darkDetected: opts.DarkDetected,
		width:        80,
		height:       24,
	}

	if cfg.UI.Language != "" {
		if l, ok := locale.Parse(cfg.UI.Language); ok {
			m.router.SelectLanguage(l)
		} else {
			logger.Warn("ignoring unknown language", zap.String("language", cfg.UI.Language))
		}
	}
	m.page = m.buildPage()
	return m
}

// Constraints converts camera settings into stream hints.
func Constraints(c config.CameraConfig) camera.Constraints {
	out := camera.DefaultConstraints()
	if c.FacingMode != "" {
		out.FacingMode = camera.FacingMode(c.FacingMode)
	}
	if c.Width > 0 && c.Height > 0 {
		out.Width, out.Height = c.Width, c.Height
	}
	return out
}

// Router exposes the application state for inspection.
func (m *Model) Router() *router.Router { return m.router }

// Page returns the page currently shown.
func (m *Model) Page() ui.Page { return m.page }

// Skin returns the shared look.
func (m *Model) Skin() *ui.Skin { return m.skin }

// Status returns the status line text, if any.
func (m *Model) Status() string { return m.status }

func (m *Model) Init() tea.Cmd {
	return tea.Batch(tea.SetWindowTitle("Aastha"), m.page.Init())
}

// Shutdown closes the current page, releasing the camera if it is on.
// Safe to call multiple times.
func (m *Model) Shutdown() {
	m.shutdownOnce.Do(func() {
		if m.page != nil {
			m.page.Close()
		}
		m.logger.Info("shutdown")
	})
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.page.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.Shutdown()
			return m, tea.Quit
		case "q":
			if s := m.router.Screen(); s == router.ScreenLanguage || s == router.ScreenHome {
				m.Shutdown()
				return m, tea.Quit
			}
		}

	case ui.LanguageSelectedMsg:
		m.router.SelectLanguage(msg.Locale)
		return m, m.show()

	case ui.NavigateMsg:
		m.router.Navigate(msg.Target)
		return m, m.show()

	case ui.PhotoTakenMsg:
		m.router.OnPhotoTaken(msg.Image)
		m.router.Navigate(string(router.ScreenDiagnosis))
		return m, m.show()

	case ui.CameraResultMsg:
		if m.page.Screen() != router.ScreenScan {
			msg.Result.Release()
			return m, nil
		}

	case ConfigReloadedMsg:
		if msg.Err != nil {
			m.status = "config: " + msg.Err.Error()
			return m, nil
		}
		m.status = ""
		m.skin.Apply(msg.Config.UI.Variant, msg.Config.DarkMode(m.darkDetected))
		m.logger.Info("appearance updated",
			zap.String("variant", m.skin.Renderer.Name()),
			zap.Bool("dark", m.skin.Styles.Theme.IsDark))
		return m, nil
	}

	return m, m.page.Update(msg)
}

// show replaces the page with the one for the router's current screen.
func (m *Model) show() tea.Cmd {
	if m.page != nil {
		if m.page.Screen() == router.ScreenScan {
			m.logger.Debug("leaving scan, camera stopped")
		}
		m.page.Close()
	}
	m.page = m.buildPage()
	m.page.SetSize(m.width, m.height)
	return m.page.Init()
}

func (m *Model) buildPage() ui.Page {
	st := m.router.State()
	switch st.Screen {
	case router.ScreenHome:
		return ui.NewHomePageModel(m.skin, st.Locale)
	case router.ScreenScan:
		session := capture.NewSession(m.device, m.constraints, m.logger)
		return ui.NewScanPageModel(m.skin, st.Locale, session)
	case router.ScreenDiagnosis:
		return ui.NewDiagnosisPageModel(m.skin, st.Locale, st.CapturedImage)
	case router.ScreenVoice:
		return ui.NewVoicePageModel(m.skin, st.Locale, voice.NewAssistant(voice.YellowRust, st.Locale, m.logger))
	case router.ScreenData:
		return ui.NewFarmDataPageModel(m.skin, st.Locale)
	default:
		return ui.NewLanguagePageModel(m.skin)
	}
}

func (m *Model) View() string {
	layout := ui.NewLayoutConfig(m.width, m.height)
	if layout.TooSmall() {
		return m.skin.Styles.Warning.Render("Please enlarge the terminal window.")
	}
	view := m.page.View()
	if m.status != "" {
		view = lipgloss.JoinVertical(lipgloss.Left, view, m.skin.Styles.Error.Render(m.status))
	}
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, m.skin.Styles.Content.Render(view))
}
