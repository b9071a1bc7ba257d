package source

import (
	"context"
	"errors"
	"image"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// chanStream delivers frames pushed onto a channel.
type chanStream struct {
	frames chan image.Image
	err    error

	mu     sync.Mutex
	closed bool
	done   chan struct{}
}

func newChanStream() *chanStream {
	return &chanStream{
		frames: make(chan image.Image, 8),
		done:   make(chan struct{}),
	}
}

func (s *chanStream) ReadFrame() (image.Image, error) {
	if s.err != nil {
		return nil, s.err
	}
	select {
	case img := <-s.frames:
		return img, nil
	case <-s.done:
		return nil, ErrStreamClosed
	}
}

func (s *chanStream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.closed = true
		close(s.done)
	}
	return nil
}

func (s *chanStream) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// exclusiveStream produces frames slowly and records overlapping reads.
type exclusiveStream struct {
	readers atomic.Int32
	overlap atomic.Bool
}

func (s *exclusiveStream) ReadFrame() (image.Image, error) {
	if s.readers.Add(1) > 1 {
		s.overlap.Store(true)
	}
	defer s.readers.Add(-1)
	time.Sleep(time.Millisecond)
	return frame(4, 4), nil
}

func (s *exclusiveStream) Close() error { return nil }

func frame(w, h int) image.Image {
	return image.NewRGBA(image.Rect(0, 0, w, h))
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not reached")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestPlayerPlayWithoutStream(t *testing.T) {
	p := NewPlayer()
	if err := p.Play(context.Background()); !errors.Is(err, ErrNoStream) {
		t.Errorf("Play() = %v, want ErrNoStream", err)
	}
}

func TestPlayerPlayWaitsForFirstFrame(t *testing.T) {
	s := newChanStream()
	p := NewPlayer()
	p.Attach(s)

	if p.Ready() {
		t.Fatal("Ready() before Play")
	}

	s.frames <- frame(64, 48)
	if err := p.Play(context.Background()); err != nil {
		t.Fatalf("Play() = %v", err)
	}

	if !p.Ready() {
		t.Error("Ready() = false after Play returned")
	}
	if !p.Playing() {
		t.Error("Playing() = false after Play returned")
	}
	if w, h := p.FrameSize(); w != 64 || h != 48 {
		t.Errorf("FrameSize() = %dx%d, want 64x48", w, h)
	}
	if p.CurrentFrame() == nil {
		t.Error("CurrentFrame() = nil")
	}

	// Playing again is a no-op.
	if err := p.Play(context.Background()); err != nil {
		t.Errorf("second Play() = %v", err)
	}
	_ = p.Detach()
}

func TestPlayerKeepsLatestFrame(t *testing.T) {
	s := newChanStream()
	p := NewPlayer()
	p.Attach(s)

	s.frames <- frame(10, 10)
	if err := p.Play(context.Background()); err != nil {
		t.Fatalf("Play() = %v", err)
	}

	s.frames <- frame(20, 10)
	waitFor(t, func() bool {
		w, _ := p.FrameSize()
		return w == 20
	})
	if p.Frames() < 2 {
		t.Errorf("Frames() = %d, want at least 2", p.Frames())
	}
	_ = p.Detach()
}

func TestPlayerFirstReadError(t *testing.T) {
	boom := errors.New("device busy")
	s := newChanStream()
	s.err = boom

	p := NewPlayer()
	p.Attach(s)

	err := p.Play(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("Play() = %v, want %v", err, boom)
	}
	if p.Playing() {
		t.Error("Playing() = true after failed Play")
	}
}

func TestPlayerPlayContextCancelled(t *testing.T) {
	s := newChanStream()
	p := NewPlayer()
	p.Attach(s)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := p.Play(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Play() = %v, want context.DeadlineExceeded", err)
	}
	if p.Playing() {
		t.Error("Playing() = true after cancelled Play")
	}

	// A frame arriving after the cancelled Play is not published.
	s.frames <- frame(8, 8)
	time.Sleep(10 * time.Millisecond)
	if p.Ready() {
		t.Error("frame published after cancelled Play")
	}
	_ = p.Detach()
}

func TestPlayerPauseKeepsFrame(t *testing.T) {
	s := newChanStream()
	p := NewPlayer()
	p.Attach(s)

	s.frames <- frame(10, 10)
	if err := p.Play(context.Background()); err != nil {
		t.Fatalf("Play() = %v", err)
	}

	p.Pause()
	p.Pause()
	if p.Playing() {
		t.Error("Playing() after Pause")
	}

	s.frames <- frame(30, 30)
	time.Sleep(10 * time.Millisecond)
	if w, _ := p.FrameSize(); w != 10 {
		t.Errorf("frame width after Pause = %d, want the paused frame (10)", w)
	}
	if !p.Ready() {
		t.Error("paused player lost its current frame")
	}
	_ = p.Detach()
}

func TestPlayerDetachClosesStream(t *testing.T) {
	s := newChanStream()
	p := NewPlayer()
	p.Attach(s)

	s.frames <- frame(10, 10)
	if err := p.Play(context.Background()); err != nil {
		t.Fatalf("Play() = %v", err)
	}

	if err := p.Detach(); err != nil {
		t.Fatalf("Detach() = %v", err)
	}
	if !s.isClosed() {
		t.Error("Detach did not close the stream")
	}
	if p.Ready() {
		t.Error("Ready() after Detach")
	}
	if err := p.Detach(); err != nil {
		t.Errorf("Detach() with nothing attached = %v", err)
	}
	if err := p.Play(context.Background()); !errors.Is(err, ErrNoStream) {
		t.Errorf("Play() after Detach = %v, want ErrNoStream", err)
	}
}

func TestPlayerPauseResume(t *testing.T) {
	ctx := context.Background()

	s := &exclusiveStream{}
	p := NewPlayer()
	p.Attach(s)
	for range 20 {
		if err := p.Play(ctx); err != nil {
			t.Fatalf("Play() = %v", err)
		}
		p.Pause()
	}
	if err := p.Play(ctx); err != nil {
		t.Fatalf("Play() = %v", err)
	}
	n := p.Frames()
	waitFor(t, func() bool { return p.Frames() > n })
	_ = p.Detach()

	if s.overlap.Load() {
		t.Error("stream read by two readers at once")
	}

	pattern, err := NewPattern(8, 8, 200).Acquire(ctx)
	if err != nil {
		t.Fatal(err)
	}
	p.Attach(pattern)
	for range 20 {
		if err := p.Play(ctx); err != nil {
			t.Fatalf("Play() on pattern = %v", err)
		}
		p.Pause()
	}
	if err := p.Detach(); err != nil {
		t.Errorf("Detach() = %v", err)
	}
}
