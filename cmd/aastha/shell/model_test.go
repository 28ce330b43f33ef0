package shell

import (
	"context"
	"errors"
	"testing"
	"time"

	"aastha/cmd/aastha/ui"
	"aastha/internal/camera"
	"aastha/internal/capture"
	"aastha/internal/config"
	"aastha/internal/locale"
	"aastha/internal/router"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newModel(t *testing.T, device camera.Device) *Model {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.UI.Theme = config.ThemeLight
	m := New(Options{Config: cfg, Device: device})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 200})
	t.Cleanup(m.Shutdown)
	return m
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// drive feeds msg to the model and keeps feeding whatever the resulting
// commands produce. Spinner frames and commands that take longer than a
// moment, like the voice delay, are left unresolved.
func drive(m *Model, msg tea.Msg) {
	queue := []tea.Msg{msg}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		_, cmd := m.Update(next)
		queue = append(queue, collect(cmd)...)
	}
}

func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()
	select {
	case msg := <-done:
		if batch, ok := msg.(tea.BatchMsg); ok {
			var out []tea.Msg
			for _, c := range batch {
				out = append(out, collect(c)...)
			}
			return out
		}
		if _, ok := msg.(spinner.TickMsg); ok || msg == nil {
			return nil
		}
		return []tea.Msg{msg}
	case <-time.After(300 * time.Millisecond):
		return nil
	}
}

func TestStartsOnLanguageScreen(t *testing.T) {
	m := newModel(t, nil)
	assert.Equal(t, router.ScreenLanguage, m.Router().Screen())
	assert.Equal(t, router.ScreenLanguage, m.Page().Screen())
	assert.Contains(t, m.View(), "Select your language")
}

func TestSelectEnglishShowsHomeGreeting(t *testing.T) {
	m := newModel(t, nil)
	drive(m, keyMsg("enter"))

	assert.Equal(t, router.ScreenHome, m.Router().Screen())
	assert.Equal(t, locale.English, m.Router().Locale())
	assert.Contains(t, m.View(), "Good Morning, Leonard")
}

func TestSelectPunjabi(t *testing.T) {
	m := newModel(t, nil)
	drive(m, ui.LanguageSelectedMsg{Locale: locale.Punjabi})
	assert.Equal(t, router.ScreenHome, m.Router().Screen())
	assert.Contains(t, m.View(), "ਸਤ ਸ੍ਰੀ ਅਕਾਲ")
}

func TestPreselectedLanguageSkipsPicker(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.UI.Language = "pa-IN"
	m := New(Options{Config: cfg})
	defer m.Shutdown()
	assert.Equal(t, router.ScreenHome, m.Router().Screen())
	assert.Equal(t, locale.Punjabi, m.Router().Locale())
}

func TestUnknownNavigationFallsBackToLanguage(t *testing.T) {
	m := newModel(t, nil)
	drive(m, ui.LanguageSelectedMsg{Locale: locale.English})
	drive(m, ui.NavigateMsg{Target: "settings"})
	assert.Equal(t, router.ScreenLanguage, m.Router().Screen())
	assert.Equal(t, router.ScreenLanguage, m.Page().Screen())
}

func TestLanguageIsChosenOnce(t *testing.T) {
	m := newModel(t, camera.Unavailable{})
	drive(m, ui.LanguageSelectedMsg{Locale: locale.Punjabi})

	keys := []string{"enter", "esc", " ", "tab", "down"}
	for r := '0'; r <= '9'; r++ {
		keys = append(keys, string(r))
	}
	for r := 'a'; r <= 'z'; r++ {
		if r != 'q' {
			keys = append(keys, string(r))
		}
	}
	for _, k := range keys {
		drive(m, ui.NavigateMsg{Target: "home"})
		require.Equal(t, router.ScreenHome, m.Router().Screen())

		drive(m, keyMsg(k))
		assert.NotEqual(t, router.ScreenLanguage, m.Router().Screen(), "key %q on home", k)
		assert.Equal(t, locale.Punjabi, m.Router().Locale(), "key %q on home", k)
	}
	assert.NotContains(t, m.Page().View(), "ਭਾਸ਼ਾ")
}

func TestScanWithoutCameraUsesPlaceholder(t *testing.T) {
	m := newModel(t, camera.Unavailable{})
	drive(m, ui.LanguageSelectedMsg{Locale: locale.English})
	drive(m, keyMsg("s"))
	require.Equal(t, router.ScreenScan, m.Router().Screen())

	drive(m, keyMsg("enter"))
	scan := m.Page().(*ui.ScanPageModel)
	assert.True(t, scan.Session().Streaming())
	assert.False(t, scan.Session().HasStream())

	drive(m, keyMsg(" "))
	assert.Equal(t, router.ScreenDiagnosis, m.Router().Screen())
	assert.Equal(t, camera.Placeholder, m.Router().CapturedImage())
	assert.Contains(t, m.View(), "Yellow Rust")
}

func TestScanWithCameraStoresFrame(t *testing.T) {
	m := newModel(t, camera.NewPatternDevice())
	drive(m, ui.LanguageSelectedMsg{Locale: locale.English})
	drive(m, ui.NavigateMsg{Target: "scan"})
	drive(m, keyMsg("enter"))

	scan := m.Page().(*ui.ScanPageModel)
	require.True(t, scan.Session().HasStream())

	drive(m, keyMsg(" "))
	assert.Equal(t, router.ScreenDiagnosis, m.Router().Screen())
	img := m.Router().CapturedImage()
	assert.False(t, img.Empty())
	assert.False(t, img.IsPlaceholder())
	assert.False(t, scan.Session().HasStream())

	drive(m, keyMsg("h"))
	assert.Equal(t, router.ScreenHome, m.Router().Screen())
	assert.True(t, m.Router().CapturedImage().Empty())
}

// trackingDevice records every stream it hands out.
type trackingDevice struct {
	inner   camera.Device
	streams []camera.Stream
}

func (d *trackingDevice) Name() string { return "tracking" }

func (d *trackingDevice) Open(ctx context.Context, c camera.Constraints) (camera.Stream, error) {
	s, err := d.inner.Open(ctx, c)
	if s != nil {
		d.streams = append(d.streams, s)
	}
	return s, err
}

func (d *trackingDevice) active() int {
	n := 0
	for _, s := range d.streams {
		if s.Active() {
			n++
		}
	}
	return n
}

func TestLeavingScanReleasesCamera(t *testing.T) {
	for _, leave := range []tea.Msg{
		keyMsg("esc"),
		ui.NavigateMsg{Target: "voice"},
		ui.NavigateMsg{Target: "nowhere"},
		keyMsg("ctrl+c"),
	} {
		dev := &trackingDevice{inner: camera.NewPatternDevice()}
		m := newModel(t, dev)
		drive(m, ui.LanguageSelectedMsg{Locale: locale.English})
		drive(m, ui.NavigateMsg{Target: "scan"})
		drive(m, keyMsg("enter"))
		require.Equal(t, 1, dev.active())

		drive(m, leave)
		assert.Zero(t, dev.active(), "after %#v", leave)
	}
}

func TestLateCameraResultIsReleased(t *testing.T) {
	dev := &trackingDevice{inner: camera.NewPatternDevice()}
	m := newModel(t, dev)
	drive(m, ui.LanguageSelectedMsg{Locale: locale.English})
	drive(m, ui.NavigateMsg{Target: "scan"})

	scan := m.Page().(*ui.ScanPageModel)
	req, ok := scan.Session().Begin()
	require.True(t, ok)

	drive(m, keyMsg("esc"))
	require.Equal(t, router.ScreenHome, m.Router().Screen())

	drive(m, ui.CameraResultMsg{Result: req.Do(context.Background())})
	assert.Len(t, dev.streams, 1)
	assert.Zero(t, dev.active())
}

func TestLateResultOnNewScanPageIsReleased(t *testing.T) {
	dev := &trackingDevice{inner: camera.NewPatternDevice()}
	m := newModel(t, dev)
	drive(m, ui.LanguageSelectedMsg{Locale: locale.English})
	drive(m, ui.NavigateMsg{Target: "scan"})

	old := m.Page().(*ui.ScanPageModel)
	req, _ := old.Session().Begin()

	drive(m, keyMsg("esc"))
	drive(m, ui.NavigateMsg{Target: "scan"})
	fresh := m.Page().(*ui.ScanPageModel)
	require.NotSame(t, old, fresh)

	drive(m, ui.CameraResultMsg{Result: req.Do(context.Background())})
	assert.Zero(t, dev.active())
	assert.Equal(t, capture.StateIdle, fresh.Session().State())
}

func TestVoiceExchange(t *testing.T) {
	m := newModel(t, nil)
	drive(m, ui.LanguageSelectedMsg{Locale: locale.English})
	drive(m, keyMsg("a"))
	require.Equal(t, router.ScreenVoice, m.Router().Screen())

	drive(m, keyMsg(" "))
	page := m.Page().(*ui.VoicePageModel)
	require.True(t, page.Assistant().Listening())

	drive(m, ui.VoiceResponseMsg{Assistant: page.Assistant().ID(), Ticket: 1})
	assert.False(t, page.Assistant().Listening())
	assert.Equal(t, 2, page.Assistant().Len())
	assert.Contains(t, m.View(), "How do I treat yellow rust in wheat?")
}

func TestVoiceResponseAfterLeavingIsIgnored(t *testing.T) {
	m := newModel(t, nil)
	drive(m, ui.LanguageSelectedMsg{Locale: locale.English})
	drive(m, ui.NavigateMsg{Target: "voice"})
	drive(m, keyMsg(" "))
	first := m.Page().(*ui.VoicePageModel)

	drive(m, keyMsg("esc"))
	drive(m, ui.NavigateMsg{Target: "voice"})
	second := m.Page().(*ui.VoicePageModel)
	drive(m, keyMsg(" "))

	drive(m, ui.VoiceResponseMsg{Assistant: first.Assistant().ID(), Ticket: 1})
	assert.Zero(t, first.Assistant().Len())
	assert.Zero(t, second.Assistant().Len())
	assert.True(t, second.Assistant().Listening())
}

func TestQuitKeys(t *testing.T) {
	m := newModel(t, nil)
	_, cmd := m.Update(keyMsg("ctrl+c"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	m = newModel(t, nil)
	drive(m, ui.LanguageSelectedMsg{Locale: locale.English})
	drive(m, ui.NavigateMsg{Target: "data"})
	_, cmd = m.Update(keyMsg("q"))
	assert.Nil(t, cmd, "q only quits from home and language")
}

func TestConfigReload(t *testing.T) {
	m := newModel(t, nil)
	assert.Equal(t, ui.VariantGlass, m.Skin().Renderer.Name())

	cfg := config.DefaultConfig()
	cfg.UI.Variant = config.VariantCard
	cfg.UI.Theme = config.ThemeDark
	m.Update(ConfigReloadedMsg{Config: cfg})
	assert.Equal(t, ui.VariantCard, m.Skin().Renderer.Name())
	assert.True(t, m.Skin().Styles.Theme.IsDark)
	assert.Empty(t, m.Status())

	m.Update(ConfigReloadedMsg{Err: errors.New("ui.variant: bad")})
	assert.Contains(t, m.Status(), "ui.variant")
	assert.Contains(t, m.View(), "ui.variant")
	assert.Equal(t, ui.VariantCard, m.Skin().Renderer.Name())
}

func TestSmallTerminal(t *testing.T) {
	m := newModel(t, nil)
	m.Update(tea.WindowSizeMsg{Width: 20, Height: 10})
	assert.Contains(t, m.View(), "enlarge")
}

func TestConstraints(t *testing.T) {
	c := Constraints(config.CameraConfig{FacingMode: "user", Width: 640, Height: 480})
	assert.Equal(t, camera.Constraints{FacingMode: camera.FacingUser, Width: 640, Height: 480}, c)
	assert.Equal(t, camera.DefaultConstraints(), Constraints(config.CameraConfig{}))
}
