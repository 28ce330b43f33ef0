// Package router holds the application's only cross-cutting state: which
// screen is showing, the chosen display language, and the image captured for
// the next diagnosis.
package router

import (
	"aastha/internal/camera"
	"aastha/internal/locale"

	"go.uber.org/zap"
)

// Screen names one of the six views.
type Screen string

const (
	ScreenLanguage  Screen = "language"
	ScreenHome      Screen = "home"
	ScreenScan      Screen = "scan"
	ScreenDiagnosis Screen = "diagnosis"
	ScreenVoice     Screen = "voice"
	ScreenData      Screen = "data"
)

// Screens lists every screen in display order.
var Screens = []Screen{
	ScreenLanguage,
	ScreenHome,
	ScreenScan,
	ScreenDiagnosis,
	ScreenVoice,
	ScreenData,
}

// ParseScreen reports whether name is a known screen.
func ParseScreen(name string) (Screen, bool) {
	for _, s := range Screens {
		if string(s) == name {
			return s, true
		}
	}
	return ScreenLanguage, false
}

// State is a read-only snapshot of the router.
type State struct {
	Screen        Screen
	Locale        locale.Locale
	CapturedImage camera.Image
}

// Router owns State. It is not safe for concurrent use; every call happens
// on the UI event loop.
type Router struct {
	state  State
	logger *zap.Logger
}

// New returns a router on the language screen.
func New(logger *zap.Logger) *Router {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Router{
		state: State{
			Screen: ScreenLanguage,
			Locale: locale.English,
		},
		logger: logger.Named("router"),
	}
}

// State returns a copy of the current state.
func (r *Router) State() State { return r.state }

// Screen returns the current screen.
func (r *Router) Screen() Screen { return r.state.Screen }

// Locale returns the selected display language.
func (r *Router) Locale() locale.Locale { return r.state.Locale }

// CapturedImage returns the image held for the diagnosis screen.
func (r *Router) CapturedImage() camera.Image { return r.state.CapturedImage }

// SelectLanguage records the display language and moves to the home screen.
// Unsupported values are read as English.
func (r *Router) SelectLanguage(l locale.Locale) {
	if !l.Valid() {
		r.logger.Debug("unsupported locale, using english", zap.String("locale", string(l)))
		l = locale.English
	}
	r.state.Locale = l
	r.logger.Info("language selected", zap.String("locale", string(l)))
	r.setScreen(ScreenHome)
}

// Navigate switches to target. Unknown targets land on the language screen.
func (r *Router) Navigate(target string) Screen {
	screen, ok := ParseScreen(target)
	if !ok {
		r.logger.Warn("unknown navigation target", zap.String("target", target))
	}
	r.setScreen(screen)
	return screen
}

// OnPhotoTaken stores img until the diagnosis screen is left.
func (r *Router) OnPhotoTaken(img camera.Image) {
	r.state.CapturedImage = img
	r.logger.Debug("photo stored",
		zap.Bool("placeholder", img.IsPlaceholder()),
		zap.Int("size", len(img)))
}

func (r *Router) setScreen(next Screen) {
	prev := r.state.Screen
	if prev == ScreenDiagnosis && next != ScreenDiagnosis {
		r.state.CapturedImage = ""
	}
	r.state.Screen = next
	r.logger.Debug("navigate", zap.String("from", string(prev)), zap.String("to", string(next)))
}
