package webcam

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pion/mediadevices"
)

func TestNewDefaultsInvalidSize(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want Config
	}{
		{"zero", Config{}, DefaultConfig()},
		{"negative width", Config{Width: -1, Height: 480}, DefaultConfig()},
		{"custom", Config{Width: 1280, Height: 720}, Config{Width: 1280, Height: 720}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := New(tt.cfg).cfg; got != tt.want {
				t.Errorf("New(%+v).cfg = %+v, want %+v", tt.cfg, got, tt.want)
			}
		})
	}
}

func TestAcquireRequestsIdealSize(t *testing.T) {
	a := New(Config{Width: 320, Height: 240})

	var got mediadevices.MediaTrackConstraints
	a.getUserMedia = func(c mediadevices.MediaStreamConstraints) (mediadevices.MediaStream, error) {
		c.Video(&got)
		return mediadevices.NewMediaStream()
	}

	if _, err := a.Acquire(context.Background()); !errors.Is(err, ErrNoVideoTrack) {
		t.Fatalf("Acquire() = %v, want ErrNoVideoTrack", err)
	}
	if got.Width == nil || got.Height == nil {
		t.Fatal("constraints did not set width and height")
	}
}

func TestAcquireError(t *testing.T) {
	denied := errors.New("permission denied")
	a := New(DefaultConfig())
	a.getUserMedia = func(mediadevices.MediaStreamConstraints) (mediadevices.MediaStream, error) {
		return nil, denied
	}

	if _, err := a.Acquire(context.Background()); !errors.Is(err, denied) {
		t.Errorf("Acquire() = %v, want %v", err, denied)
	}
}

func TestAcquireContextEndsFirst(t *testing.T) {
	release := make(chan struct{})
	a := New(DefaultConfig())
	a.getUserMedia = func(mediadevices.MediaStreamConstraints) (mediadevices.MediaStream, error) {
		<-release
		return mediadevices.NewMediaStream()
	}
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if _, err := a.Acquire(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Acquire() = %v, want context.DeadlineExceeded", err)
	}
}
