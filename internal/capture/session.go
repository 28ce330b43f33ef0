// Package capture implements the camera lifecycle behind the crop scan
// screen: Idle -> Starting -> Streaming -> (photo taken) -> Idle.
//
// Acquisition is split in three steps so that the blocking part can run off
// the UI loop while every state change stays on it:
//
//	req, ok := s.Begin()       // on the loop
//	res := req.Do(ctx)         // anywhere, blocks on the platform
//	s.Resolve(res)             // back on the loop
//
// Stop invalidates any request still in flight; its stream is released when
// the result is resolved.
//
// Taking a photo follows the same split: Detach hands the stream to a Shot on
// the loop, and Shot.Take grabs the frame and stops the stream off it.
package capture

import (
	"context"
	"errors"
	"time"

	"aastha/internal/camera"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// State is the lifecycle state of a Session.
type State int

const (
	StateIdle State = iota
	StateStarting
	StateStreaming
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateStarting:
		return "starting"
	case StateStreaming:
		return "streaming"
	default:
		return "unknown"
	}
}

// snapshotTimeout bounds how long TakePhoto waits for a frame.
const snapshotTimeout = 5 * time.Second

// Ticket identifies one acquisition attempt.
type Ticket uint64

// Request is a pending acquisition. Do is safe to call from any goroutine.
type Request struct {
	Session     string
	Ticket      Ticket
	device      camera.Device
	constraints camera.Constraints
}

// Do asks the device for a stream and blocks until it answers.
func (r Request) Do(ctx context.Context) Result {
	stream, err := r.device.Open(ctx, r.constraints)
	return Result{Session: r.Session, Ticket: r.Ticket, Stream: stream, Err: err}
}

// Result is the outcome of a Request.
type Result struct {
	Session string
	Ticket  Ticket
	Stream  camera.Stream
	Err     error
}

// Release stops the result's stream. Used when no session is left to
// resolve it.
func (r Result) Release() {
	if r.Stream != nil {
		_ = r.Stream.Stop()
	}
}

// Session owns at most one live camera stream. Methods other than
// Request.Do must be called from the UI loop.
type Session struct {
	id          string
	device      camera.Device
	constraints camera.Constraints
	logger      *zap.Logger

	state   State
	stream  camera.Stream
	pending Ticket
	last    Ticket
	lastErr error
}

// NewSession creates an idle session for device.
func NewSession(device camera.Device, constraints camera.Constraints, logger *zap.Logger) *Session {
	if device == nil {
		device = camera.Unavailable{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	id := uuid.NewString()
	return &Session{
		id:          id,
		device:      device,
		constraints: constraints,
		logger:      logger.Named("capture").With(zap.String("session", id)),
	}
}

// ID identifies the session in logs.
func (s *Session) ID() string { return s.id }

// State returns the lifecycle state.
func (s *Session) State() State { return s.state }

// Streaming reports whether the preview should be shown.
func (s *Session) Streaming() bool { return s.state == StateStreaming }

// HasStream reports whether a real stream is attached. A session can be
// streaming without one when acquisition failed.
func (s *Session) HasStream() bool { return s.stream != nil }

// LastError returns the swallowed acquisition error, if any.
func (s *Session) LastError() error { return s.lastErr }

// Begin moves Idle -> Starting and returns the request to run. It returns
// false when a request is already pending or the session is streaming.
func (s *Session) Begin() (Request, bool) {
	if s.state != StateIdle {
		return Request{}, false
	}
	s.last++
	s.pending = s.last
	s.state = StateStarting
	s.lastErr = nil
	s.logger.Debug("camera requested",
		zap.Uint64("ticket", uint64(s.pending)),
		zap.String("device", s.device.Name()))
	return Request{Session: s.id, Ticket: s.pending, device: s.device, constraints: s.constraints}, true
}

// Resolve applies a finished request. Stale results (the session was
// stopped or restarted meanwhile) are dropped and their stream released.
// Acquisition errors are logged and otherwise ignored: the session enters
// Streaming with no stream so the scan flow can continue.
func (s *Session) Resolve(res Result) bool {
	if s.state != StateStarting || res.Session != s.id || res.Ticket != s.pending {
		res.Release()
		s.logger.Debug("dropped stale camera result",
			zap.String("from_session", res.Session),
			zap.Uint64("ticket", uint64(res.Ticket)))
		return false
	}

	s.pending = 0
	s.state = StateStreaming
	if res.Err != nil {
		s.lastErr = res.Err
		s.logger.Warn("camera unavailable, continuing without a stream",
			zap.Error(res.Err),
			zap.Bool("permission_denied", errors.Is(res.Err, camera.ErrPermissionDenied)))
		return true
	}
	s.stream = res.Stream
	s.logger.Info("camera streaming")
	return true
}

// Start is the synchronous form of Begin, Do and Resolve.
func (s *Session) Start(ctx context.Context) {
	req, ok := s.Begin()
	if !ok {
		return
	}
	s.Resolve(req.Do(ctx))
}

// Shot owns a stream detached from its session. Take is safe to call from
// any goroutine and must be called exactly once.
type Shot struct {
	Session string
	stream  camera.Stream
	logger  *zap.Logger
}

// Detach hands the live stream, if any, to a Shot and leaves the session
// Idle. A session that was not streaming yields a Shot without a stream.
func (s *Session) Detach() Shot {
	shot := Shot{Session: s.id, stream: s.stream, logger: s.logger}
	s.stream = nil
	s.pending = 0
	s.state = StateIdle
	return shot
}

// Take grabs the current frame, or the placeholder when there is none, and
// stops the stream. The result is never empty.
func (p Shot) Take(ctx context.Context) camera.Image {
	img := camera.Placeholder
	if p.stream != nil {
		snapCtx, cancel := context.WithTimeout(ctx, snapshotTimeout)
		frame, err := p.stream.Snapshot(snapCtx)
		cancel()
		switch {
		case err != nil:
			p.logger.Warn("no frame captured, using placeholder", zap.Error(err))
		case frame.Empty():
			p.logger.Warn("empty frame captured, using placeholder")
		default:
			img = frame
		}
		if err := p.stream.Stop(); err != nil {
			p.logger.Warn("stop camera stream", zap.Error(err))
		}
		p.logger.Debug("camera stream stopped")
	}
	p.logger.Info("photo taken", zap.Bool("placeholder", img.IsPlaceholder()))
	return img
}

// TakePhoto is the synchronous form of Detach and Take.
func (s *Session) TakePhoto(ctx context.Context) camera.Image {
	return s.Detach().Take(ctx)
}

// Stop releases the stream and cancels any pending request. Safe to call in
// any state, any number of times.
func (s *Session) Stop() {
	if s.stream != nil {
		if err := s.stream.Stop(); err != nil {
			s.logger.Warn("stop camera stream", zap.Error(err))
		}
		s.stream = nil
		s.logger.Debug("camera stream stopped")
	}
	s.pending = 0
	s.state = StateIdle
}
