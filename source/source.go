// Package source acquires live video and plays it for the compositor.
//
// The package splits acquisition from playback the same way a browser does:
// an Acquirer obtains a Stream (the equivalent of getUserMedia returning a
// media track), and a Player attaches that stream, plays it and exposes the
// most recent decoded frame for polling, like a video element.
//
// Implementations of Acquirer in this module:
//
//   - NewPattern: an animated test card drawn with gg
//   - NewStill / LoadStill: a single image repeated at a fixed rate
//   - webcam.New: a camera opened through pion/mediadevices
package source

import (
	"context"
	"errors"
	"image"
)

var (
	// ErrStreamClosed is returned by ReadFrame after the stream is closed.
	ErrStreamClosed = errors.New("source: stream closed")

	// ErrNoStream is returned by Play when no stream is attached.
	ErrNoStream = errors.New("source: no stream attached")

	// ErrPaused is returned by Play when Pause or Detach interrupts it
	// before playback begins.
	ErrPaused = errors.New("source: paused before playback began")
)

// Stream is an acquired live frame source.
type Stream interface {
	// ReadFrame blocks until the next frame is available. The returned
	// image belongs to the caller and is never modified by the stream.
	ReadFrame() (image.Image, error)

	// Close releases the underlying device or track. Close unblocks a
	// pending ReadFrame and is idempotent.
	Close() error
}

// Acquirer obtains a Stream. Acquire may block for an arbitrary time while
// waiting for permission or a device; ctx bounds the wait.
type Acquirer interface {
	Acquire(ctx context.Context) (Stream, error)
}

// AcquirerFunc adapts a function to the Acquirer interface.
type AcquirerFunc func(ctx context.Context) (Stream, error)

// Acquire calls f(ctx).
func (f AcquirerFunc) Acquire(ctx context.Context) (Stream, error) {
	return f(ctx)
}
