package camera

import (
	"context"
	"image"
	"image/color"
	"sync"
)

// PatternDevice produces synthetic leaf-green frames. It needs no hardware,
// which makes it useful for demos on machines without a browser or camera.
type PatternDevice struct{}

// NewPatternDevice returns a synthetic camera.
func NewPatternDevice() *PatternDevice {
	return &PatternDevice{}
}

func (*PatternDevice) Name() string { return DriverPattern }

func (*PatternDevice) Open(ctx context.Context, c Constraints) (Stream, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	w, h := c.Width, c.Height
	if w <= 0 || h <= 0 {
		d := DefaultConstraints()
		w, h = d.Width, d.Height
	}
	return &patternStream{width: w, height: h, active: true}, nil
}

type patternStream struct {
	mu     sync.Mutex
	width  int
	height int
	frame  int
	active bool
}

func (s *patternStream) Snapshot(ctx context.Context) (Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active {
		return "", ErrStopped
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.frame++
	return EncodeJPEG(renderPattern(s.width, s.height, s.frame), 80)
}

func (s *patternStream) Stop() error {
	s.mu.Lock()
	s.active = false
	s.mu.Unlock()
	return nil
}

func (s *patternStream) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// renderPattern draws diagonal green bands with a pale focus square in the
// middle, shifted by frame so consecutive snapshots differ.
func renderPattern(w, h, frame int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	fx0, fy0 := w/2-h/4, h/4
	fx1, fy1 := w/2+h/4, h*3/4
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			band := uint8(((x + y + frame*8) / 16) % 2)
			c := color.RGBA{R: 46, G: 125 + band*30, B: 50, A: 255}
			if x >= fx0 && x < fx1 && y >= fy0 && y < fy1 {
				c = color.RGBA{R: 139, G: 195, B: 74, A: 255}
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}
