// Package camera abstracts the platform camera behind a small device
// interface: open a stream with facing-mode and resolution hints, grab one
// encoded still from it, and release it.
package camera

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"strings"
)

var (
	// ErrNoDevice is returned when no camera (or no browser to reach one) exists.
	ErrNoDevice = errors.New("camera: no device available")
	// ErrPermissionDenied is returned when the platform refused camera access.
	ErrPermissionDenied = errors.New("camera: permission denied")
	// ErrNoFrame is returned by Snapshot when the stream has not produced a frame yet.
	ErrNoFrame = errors.New("camera: no frame available")
	// ErrStopped is returned by Snapshot after Stop.
	ErrStopped = errors.New("camera: stream stopped")
)

// FacingMode selects which camera to prefer on devices that have several.
type FacingMode string

const (
	FacingEnvironment FacingMode = "environment"
	FacingUser        FacingMode = "user"
)

// Constraints are the hints passed when requesting a stream.
type Constraints struct {
	FacingMode FacingMode
	Width      int
	Height     int
}

// DefaultConstraints asks for the rear camera at 1280x720.
func DefaultConstraints() Constraints {
	return Constraints{
		FacingMode: FacingEnvironment,
		Width:      1280,
		Height:     720,
	}
}

// Device opens camera streams.
type Device interface {
	Name() string
	Open(ctx context.Context, c Constraints) (Stream, error)
}

// Stream is a live camera stream. Stop must be safe to call more than once.
type Stream interface {
	Snapshot(ctx context.Context) (Image, error)
	Stop() error
	Active() bool
}

// Image is an encoded still: a data URL, or the Placeholder when no frame
// could be captured.
type Image string

// Placeholder stands in for a capture when no video frame was available.
const Placeholder Image = "demo-image-data"

const jpegMIME = "image/jpeg"

// IsPlaceholder reports whether the image is the stand-in value.
func (i Image) IsPlaceholder() bool {
	return i == Placeholder
}

// Empty reports whether no image is held.
func (i Image) Empty() bool {
	return i == ""
}

// MIMEType returns the media type of a data URL image, or "" otherwise.
func (i Image) MIMEType() string {
	rest, ok := strings.CutPrefix(string(i), "data:")
	if !ok {
		return ""
	}
	mime, _, ok := strings.Cut(rest, ";")
	if !ok {
		return ""
	}
	return mime
}

// Bytes decodes the base64 payload of a data URL image.
func (i Image) Bytes() ([]byte, error) {
	_, payload, ok := strings.Cut(string(i), ";base64,")
	if !ok || !strings.HasPrefix(string(i), "data:") {
		return nil, fmt.Errorf("image is not a base64 data URL")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decode image payload: %w", err)
	}
	return data, nil
}

// EncodeJPEG encodes a frame as a JPEG data URL, like canvas.toDataURL does.
func EncodeJPEG(frame image.Image, quality int) (Image, error) {
	if frame == nil {
		return "", ErrNoFrame
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, frame, &jpeg.Options{Quality: quality}); err != nil {
		return "", fmt.Errorf("encode jpeg: %w", err)
	}
	return Image("data:" + jpegMIME + ";base64," + base64.StdEncoding.EncodeToString(buf.Bytes())), nil
}
