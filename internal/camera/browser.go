package camera

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"
)

//go:embed capture.html
var capturePage []byte

const stopTimeout = 2 * time.Second

// BrowserDevice reaches the platform camera through Chrome's getUserMedia,
// driven over the DevTools protocol. The capture page is served from a
// loopback listener so the page runs in a secure context.
type BrowserDevice struct {
	opts   Options
	logger *zap.Logger
}

// NewBrowserDevice returns a device backed by a locally installed Chrome.
func NewBrowserDevice(opts Options, logger *zap.Logger) *BrowserDevice {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BrowserDevice{opts: opts, logger: logger.Named("camera")}
}

func (d *BrowserDevice) Name() string { return DriverBrowser }

// Open launches the browser, requests a stream and waits until the platform
// grants or denies access.
func (d *BrowserDevice) Open(ctx context.Context, c Constraints) (Stream, error) {
	if d.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.opts.Timeout)
		defer cancel()
	}

	bin := d.opts.Browser
	if bin == "" {
		path, ok := launcher.LookPath()
		if !ok {
			return nil, fmt.Errorf("%w: no chrome or chromium binary found", ErrNoDevice)
		}
		bin = path
	}

	s := &browserStream{logger: d.logger}
	ok := false
	defer func() {
		if !ok {
			s.release()
		}
	}()

	pageURL, err := s.serve()
	if err != nil {
		return nil, err
	}

	l := launcher.New().
		Bin(bin).
		Headless(d.opts.Headless).
		Set(flags.Flag("use-fake-ui-for-media-stream"))
	if d.opts.Fake {
		l = l.Set(flags.Flag("use-fake-device-for-media-stream"))
	}
	s.launcher = l

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("%w: launch browser: %v", ErrNoDevice, err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("%w: connect to browser: %v", ErrNoDevice, err)
	}
	s.browser = browser

	page, err := browser.Page(proto.TargetCreateTarget{URL: pageURL})
	if err != nil {
		return nil, fmt.Errorf("open capture page: %w", err)
	}
	s.page = page
	if err := page.Context(ctx).WaitLoad(); err != nil {
		return nil, fmt.Errorf("load capture page: %w", err)
	}

	res, err := page.Context(ctx).Evaluate(&rod.EvalOptions{
		JS:           `(facingMode, width, height) => window.aastha.start(facingMode, width, height)`,
		JSArgs:       []interface{}{string(c.FacingMode), c.Width, c.Height},
		ByValue:      true,
		AwaitPromise: true,
	})
	if err != nil {
		return nil, classifyMediaError(err)
	}
	if res != nil {
		s.label = res.Value.Str()
	}

	d.logger.Info("camera stream opened",
		zap.String("track", s.label),
		zap.String("facing_mode", string(c.FacingMode)),
		zap.Int("width", c.Width),
		zap.Int("height", c.Height))

	ok = true
	s.active = true
	return s, nil
}

// classifyMediaError maps getUserMedia DOMException names onto sentinel errors.
func classifyMediaError(err error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "NotAllowedError"), strings.Contains(msg, "SecurityError"):
		return fmt.Errorf("%w: %v", ErrPermissionDenied, err)
	case strings.Contains(msg, "NotFoundError"), strings.Contains(msg, "OverconstrainedError"),
		strings.Contains(msg, "NotReadableError"):
		return fmt.Errorf("%w: %v", ErrNoDevice, err)
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return err
	default:
		return fmt.Errorf("request camera stream: %w", err)
	}
}

type browserStream struct {
	mu       sync.Mutex
	logger   *zap.Logger
	server   *http.Server
	launcher *launcher.Launcher
	browser  *rod.Browser
	page     *rod.Page
	label    string
	active   bool
	stopOnce sync.Once
}

// serve starts the loopback listener for the capture page.
func (s *browserStream) serve() (string, error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", fmt.Errorf("listen for capture page: %w", err)
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(capturePage)
	})
	s.server = &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Warn("capture page server stopped", zap.Error(err))
		}
	}()
	return "http://" + ln.Addr().String() + "/", nil
}

func (s *browserStream) Snapshot(ctx context.Context) (Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active {
		return "", ErrStopped
	}

	res, err := s.page.Context(ctx).Evaluate(&rod.EvalOptions{
		JS:      `() => window.aastha.snapshot()`,
		ByValue: true,
	})
	if err != nil {
		return "", fmt.Errorf("grab frame: %w", err)
	}
	if res == nil || res.Value.Str() == "" {
		return "", ErrNoFrame
	}
	return Image(res.Value.Str()), nil
}

func (s *browserStream) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Stop stops every track, then tears down the page, the browser process and
// the page server.
func (s *browserStream) Stop() error {
	s.stopOnce.Do(func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.active = false

		if s.page != nil {
			ctx, cancel := context.WithTimeout(context.Background(), stopTimeout)
			_, err := s.page.Context(ctx).Evaluate(&rod.EvalOptions{
				JS:      `() => window.aastha.stop()`,
				ByValue: true,
			})
			cancel()
			if err != nil {
				s.logger.Debug("stop tracks", zap.Error(err))
			}
		}
		s.release()
		s.logger.Info("camera stream released", zap.String("track", s.label))
	})
	return nil
}

// release closes whatever was acquired so far. Caller must hold the lock or
// own the stream exclusively.
func (s *browserStream) release() {
	if s.page != nil {
		_ = s.page.Close()
		s.page = nil
	}
	if s.browser != nil {
		_ = s.browser.Close()
		s.browser = nil
	}
	if s.launcher != nil {
		s.launcher.Kill()
		s.launcher.Cleanup()
		s.launcher = nil
	}
	if s.server != nil {
		_ = s.server.Close()
		s.server = nil
	}
}
