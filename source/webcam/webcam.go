// Package webcam acquires a camera through pion/mediadevices.
//
// Acquire is the Go counterpart of navigator.mediaDevices.getUserMedia: it
// opens the first camera that satisfies the requested constraints and hands
// back its video track as a source.Stream. Closing the stream stops the
// track and releases the device.
//
// The camera driver registers itself on import; on Linux it uses V4L2.
package webcam

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"

	"github.com/pion/mediadevices"
	_ "github.com/pion/mediadevices/pkg/driver/camera" // register camera driver
	"github.com/pion/mediadevices/pkg/io/video"
	"github.com/pion/mediadevices/pkg/prop"

	"github.com/gogpu/compositor/source"
)

// ErrNoVideoTrack is returned when the acquired media stream carries no
// usable video track.
var ErrNoVideoTrack = errors.New("webcam: no video track")

// Config holds the ideal capture size. Drivers pick the closest mode they
// support.
type Config struct {
	Width  int
	Height int
}

// DefaultConfig returns the 640x480 capture used by the compositor.
func DefaultConfig() Config {
	return Config{Width: 640, Height: 480}
}

// Acquirer opens a camera on every Acquire call.
type Acquirer struct {
	cfg Config

	// getUserMedia is replaced in tests.
	getUserMedia func(mediadevices.MediaStreamConstraints) (mediadevices.MediaStream, error)
}

// New creates a camera Acquirer.
func New(cfg Config) *Acquirer {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg = DefaultConfig()
	}
	return &Acquirer{
		cfg:          cfg,
		getUserMedia: mediadevices.GetUserMedia,
	}
}

type acquired struct {
	stream mediadevices.MediaStream
	err    error
}

// Acquire implements source.Acquirer. Opening a device can block; if ctx
// ends first Acquire returns ctx.Err() and a device opened afterwards is
// closed again in the background.
func (a *Acquirer) Acquire(ctx context.Context) (source.Stream, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ch := make(chan acquired, 1)
	go func() {
		ms, err := a.getUserMedia(mediadevices.MediaStreamConstraints{
			Video: func(c *mediadevices.MediaTrackConstraints) {
				c.Width = prop.Int(a.cfg.Width)
				c.Height = prop.Int(a.cfg.Height)
			},
		})
		ch <- acquired{stream: ms, err: err}
	}()

	select {
	case <-ctx.Done():
		go func() {
			if r := <-ch; r.err == nil {
				closeTracks(r.stream)
			}
		}()
		return nil, ctx.Err()
	case r := <-ch:
		if r.err != nil {
			return nil, fmt.Errorf("webcam: get user media: %w", r.err)
		}
		return a.open(r.stream)
	}
}

func (a *Acquirer) open(ms mediadevices.MediaStream) (source.Stream, error) {
	tracks := ms.GetVideoTracks()
	if len(tracks) == 0 {
		closeTracks(ms)
		return nil, ErrNoVideoTrack
	}
	vt, ok := tracks[0].(*mediadevices.VideoTrack)
	if !ok {
		closeTracks(ms)
		return nil, fmt.Errorf("%w: unexpected track type %T", ErrNoVideoTrack, tracks[0])
	}

	source.Logger().Info("webcam: camera acquired", "track", vt.ID(),
		"width", a.cfg.Width, "height", a.cfg.Height)
	return &stream{track: vt, reader: vt.NewReader(true)}, nil
}

func closeTracks(ms mediadevices.MediaStream) {
	for _, t := range ms.GetTracks() {
		if err := t.Close(); err != nil {
			source.Logger().Warn("webcam: close track", "err", err)
		}
	}
}

// stream adapts a mediadevices video track to source.Stream.
type stream struct {
	track  mediadevices.Track
	reader video.Reader

	once sync.Once
	err  error
}

// ReadFrame implements source.Stream. The reader copies every frame, so the
// driver buffer is released immediately.
func (s *stream) ReadFrame() (image.Image, error) {
	img, release, err := s.reader.Read()
	if err != nil {
		return nil, fmt.Errorf("webcam: read frame: %w", err)
	}
	if release != nil {
		release()
	}
	return img, nil
}

// Close implements source.Stream.
func (s *stream) Close() error {
	s.once.Do(func() {
		s.err = s.track.Close()
	})
	return s.err
}
