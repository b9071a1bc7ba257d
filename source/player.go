package source

import (
	"context"
	"fmt"
	"image"
	"sync"
	"sync/atomic"
)

// Player plays an attached Stream and keeps its most recent frame.
//
// A reader goroutine pulls frames from the stream and overwrites a single
// frame slot: consumers poll the latest frame, older frames are never
// queued. Pause stops publishing but keeps the last frame, the way a paused
// video element keeps showing its current picture. Detach releases the
// stream.
//
// Player is safe for concurrent use.
type Player struct {
	mu      sync.Mutex
	stream  Stream
	frame   image.Image
	playing bool

	// gen invalidates reader goroutines: a reader only publishes while
	// its generation is current.
	gen uint64
	// done is closed when the reader of the attached stream exits. It is
	// nil when that stream has no reader.
	done chan struct{}

	frames    atomic.Uint64
	overwrite atomic.Uint64
	taken     bool
}

// NewPlayer creates a Player with nothing attached.
func NewPlayer() *Player {
	return &Player{}
}

// Attach replaces the attached stream. Playback of a previous stream stops
// and its last frame is discarded; the previous stream is not closed.
func (p *Player) Attach(s Stream) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stream == s {
		return
	}
	p.gen++
	p.playing = false
	p.stream = s
	p.frame = nil
	p.done = nil
}

// Play starts reading the attached stream and blocks until playback has
// begun, that is, until the first frame has been read. It returns the
// stream's error if the first read fails, or ctx.Err() if ctx ends first.
// Play on a playing Player returns nil immediately.
//
// A stream has at most one reader. After Pause the previous reader may still
// be blocked in ReadFrame; Play waits for it to return before starting anew.
func (p *Player) Play(ctx context.Context) error {
	p.mu.Lock()
	for {
		if p.stream == nil {
			p.mu.Unlock()
			return ErrNoStream
		}
		if p.playing {
			p.mu.Unlock()
			return nil
		}
		if err := ctx.Err(); err != nil {
			p.mu.Unlock()
			return err
		}
		if p.done == nil {
			break
		}
		done := p.done
		p.mu.Unlock()
		select {
		case <-done:
		case <-ctx.Done():
			return ctx.Err()
		}
		p.mu.Lock()
	}
	p.gen++
	gen := p.gen
	s := p.stream
	done := make(chan struct{})
	p.done = done
	p.playing = true
	p.mu.Unlock()

	started := make(chan error, 1)
	go p.run(s, gen, done, started)

	select {
	case err := <-started:
		if err != nil {
			return fmt.Errorf("source: playback: %w", err)
		}
		return nil
	case <-ctx.Done():
		p.stop(gen)
		return ctx.Err()
	}
}

func (p *Player) run(s Stream, gen uint64, done chan struct{}, started chan<- error) {
	first := true
	for {
		img, err := s.ReadFrame()

		p.mu.Lock()
		if p.gen != gen {
			p.exit(done)
			p.mu.Unlock()
			if first {
				started <- ErrPaused
			}
			return
		}
		if err != nil {
			p.playing = false
			p.exit(done)
			p.mu.Unlock()
			if first {
				started <- err
			} else {
				Logger().Warn("source: stream ended", "err", err)
			}
			return
		}
		if p.frame != nil && !p.taken {
			p.overwrite.Add(1)
		}
		p.frame = img
		p.taken = false
		p.mu.Unlock()

		p.frames.Add(1)
		if first {
			first = false
			started <- nil
		}
	}
}

// exit marks the reader owning done as gone. Callers hold p.mu.
func (p *Player) exit(done chan struct{}) {
	close(done)
	if p.done == done {
		p.done = nil
	}
}

// stop ends playback for generation gen if it is still current.
func (p *Player) stop(gen uint64) {
	p.mu.Lock()
	if p.gen == gen {
		p.gen++
		p.playing = false
	}
	p.mu.Unlock()
}

// Pause stops publishing new frames. The current frame stays available.
// Pause is idempotent.
func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.playing {
		return
	}
	p.gen++
	p.playing = false
}

// Detach stops playback, drops the current frame and closes the attached
// stream. Detach with nothing attached returns nil.
func (p *Player) Detach() error {
	p.mu.Lock()
	p.gen++
	p.playing = false
	s := p.stream
	p.stream = nil
	p.frame = nil
	p.done = nil
	p.mu.Unlock()

	if s == nil {
		return nil
	}
	if err := s.Close(); err != nil {
		return fmt.Errorf("source: close stream: %w", err)
	}
	return nil
}

// Playing reports whether the player is publishing frames.
func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

// Ready reports whether a current frame is available.
func (p *Player) Ready() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.frame != nil
}

// FrameSize returns the dimensions of the current frame, or zeros when
// there is none.
func (p *Player) FrameSize() (width, height int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.frame == nil {
		return 0, 0
	}
	b := p.frame.Bounds()
	return b.Dx(), b.Dy()
}

// CurrentFrame returns the most recent frame, or nil.
func (p *Player) CurrentFrame() image.Image {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.taken = true
	return p.frame
}

// Frames returns how many frames have been read since the player was created.
func (p *Player) Frames() uint64 {
	return p.frames.Load()
}

// Overwritten returns how many frames were replaced before anyone took them.
func (p *Player) Overwritten() uint64 {
	return p.overwrite.Load()
}
