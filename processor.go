package compositor

import (
	"context"
	"errors"
	"fmt"
	"image"
	"math"
	"sync"
	"sync/atomic"

	"github.com/gogpu/gg"

	"github.com/gogpu/compositor/clock"
	"github.com/gogpu/compositor/overlay"
	"github.com/gogpu/compositor/source"
	"github.com/gogpu/compositor/surface"
)

// VideoSource plays an acquired stream and exposes its latest frame.
// source.Player is the standard implementation.
type VideoSource interface {
	// Attach binds a stream. It does not start playback.
	Attach(s source.Stream)
	// Play starts playback and blocks until it has begun.
	Play(ctx context.Context) error
	// Pause stops playback, keeping the current frame.
	Pause()
	// Detach stops playback and releases the attached stream.
	Detach() error
	// Ready reports whether a current frame is available.
	Ready() bool
	// FrameSize returns the intrinsic size of the current frame.
	FrameSize() (width, height int)
	// CurrentFrame returns the latest frame, or nil.
	CurrentFrame() image.Image
}

// Scheduler runs callbacks on the next display refresh. clock.Frame is the
// standard implementation.
type Scheduler interface {
	Schedule(fn func()) clock.Handle
	Cancel(h clock.Handle)
}

// Processor drives the per-refresh loop: copy the latest video frame into
// the buffer, run the pipeline over it, recompute the presentation scale and
// publish the buffer to the target.
//
// Start, Stop and Close may be called from any goroutine. Ticks run on the
// goroutine that fires the Scheduler and never overlap.
type Processor struct {
	acquirer source.Acquirer
	sched    Scheduler
	video    VideoSource
	viewport Viewport

	buffer   surface.Surface
	target   surface.Surface
	pipeline *Pipeline

	startMu sync.Mutex // serializes Start

	mu     sync.Mutex // guards the fields below and every tick body
	handle clock.Handle
	epoch  uint64 // bumped by Stop; a Start that sees it change aborts
	closed bool

	state      atomic.Int32
	scaleBits  atomic.Uint64
	ticks      atomic.Uint64
	skipped    atomic.Uint64
	composited atomic.Uint64
}

// New creates a paused Processor that acquires video through acquirer and
// ticks on sched.
//
// Without WithSteps the pipeline holds a Face over a Cube, both the size of
// the buffer.
func New(acquirer source.Acquirer, sched Scheduler, opts ...Option) (*Processor, error) {
	if acquirer == nil {
		return nil, errors.New("compositor: nil acquirer")
	}
	if sched == nil {
		return nil, errors.New("compositor: nil scheduler")
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	buffer, err := o.factory(o.width, o.height)
	if err != nil {
		return nil, fmt.Errorf("compositor: create buffer: %w", err)
	}
	target, err := o.factory(o.width, o.height)
	if err != nil {
		_ = buffer.Close()
		return nil, fmt.Errorf("compositor: create target: %w", err)
	}

	p := &Processor{
		acquirer: acquirer,
		sched:    sched,
		video:    o.video,
		viewport: o.viewport,
		buffer:   buffer,
		target:   target,
		pipeline: NewPipeline(buffer),
	}
	if p.video == nil {
		p.video = source.NewPlayer()
	}
	if p.viewport == nil {
		p.viewport = FixedViewport{Width: target.Width(), Height: target.Height()}
	}

	steps := o.steps
	if !o.stepsSet {
		steps = []Step{
			overlay.NewFace(buffer.Width(), buffer.Height()),
			overlay.NewCube(buffer.Width(), buffer.Height()),
		}
	}
	for _, s := range steps {
		p.pipeline.AddStep(s)
	}

	vw, vh := p.viewport.Size()
	p.storeScale(ScaleToFit(vw, vh, target.Width(), target.Height()))
	return p, nil
}

// Start acquires the video source, starts playback and schedules the first
// tick. It blocks until playback has begun or ctx ends. Start on a playing
// processor returns nil without acquiring anything.
//
// On failure the processor stays paused with nothing scheduled and anything
// acquired released. The error wraps ErrSurfaceUnavailable,
// ErrSourceAcquisition, ErrPlayback or ErrStartAborted.
func (p *Processor) Start(ctx context.Context) error {
	p.startMu.Lock()
	defer p.startMu.Unlock()

	p.mu.Lock()
	if p.State() == Playing {
		p.mu.Unlock()
		return nil
	}
	if p.closed || p.buffer.Context() == nil || p.target.Context() == nil {
		p.mu.Unlock()
		return ErrSurfaceUnavailable
	}
	epoch := p.epoch
	p.mu.Unlock()

	stream, err := p.acquirer.Acquire(ctx)
	if err != nil {
		Logger().Warn("compositor: acquire failed", "err", err)
		return fmt.Errorf("%w: %w", ErrSourceAcquisition, err)
	}

	p.mu.Lock()
	if p.epoch != epoch {
		p.mu.Unlock()
		closeStream(stream)
		return ErrStartAborted
	}
	p.video.Attach(stream)
	p.mu.Unlock()

	if err := p.video.Play(ctx); err != nil {
		p.mu.Lock()
		aborted := p.epoch != epoch
		p.releaseSource()
		p.mu.Unlock()
		if aborted {
			return ErrStartAborted
		}
		Logger().Warn("compositor: play failed", "err", err)
		return fmt.Errorf("%w: %w", ErrPlayback, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.epoch != epoch {
		p.releaseSource()
		return ErrStartAborted
	}
	p.scheduleTick(epoch)
	p.state.Store(int32(Playing))

	w, h := p.video.FrameSize()
	Logger().Info("compositor: playing", "frame_width", w, "frame_height", h)
	return nil
}

// Stop cancels the scheduled tick, pauses the source and releases the
// attached stream. No tick body runs after Stop returns. Stop during a
// pending Start makes that Start fail with ErrStartAborted. Stop is
// idempotent.
func (p *Processor) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.epoch++
	p.sched.Cancel(p.handle)
	p.handle = 0
	p.releaseSource()

	if State(p.state.Swap(int32(Paused))) == Playing {
		Logger().Info("compositor: paused", "ticks", p.ticks.Load(), "skipped", p.skipped.Load())
	}
}

// Close stops the processor and releases the pipeline steps and both
// surfaces. Start fails with ErrSurfaceUnavailable afterwards. Close is
// idempotent.
func (p *Processor) Close() error {
	p.Stop()

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true

	return errors.Join(
		p.pipeline.Close(),
		p.buffer.Close(),
		p.target.Close(),
	)
}

// scheduleTick queues the next tick of the play session epoch.
// Callers hold p.mu.
func (p *Processor) scheduleTick(epoch uint64) {
	p.handle = p.sched.Schedule(func() { p.tick(epoch) })
}

// tick is one refresh worth of work. It re-schedules itself before doing
// anything else. A tick from an earlier play session, already taken off the
// queue when Stop ran, does nothing.
func (p *Processor) tick(epoch uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.epoch != epoch || p.State() != Playing {
		return
	}
	p.scheduleTick(epoch)
	p.ticks.Add(1)

	frame := p.video.CurrentFrame()
	if !p.video.Ready() || frame == nil || frame.Bounds().Empty() {
		p.skipped.Add(1)
		Logger().Debug("compositor: frame not ready")
		return
	}

	p.buffer.CopyFrom(frame)
	p.pipeline.Render()
	vw, vh := p.viewport.Size()
	p.storeScale(ScaleToFit(vw, vh, p.target.Width(), p.target.Height()))
	p.target.CopyFrom(p.buffer)
	p.composited.Add(1)
}

// releaseSource pauses playback and closes the attached stream.
// Callers hold p.mu.
func (p *Processor) releaseSource() {
	p.video.Pause()
	if err := p.video.Detach(); err != nil {
		Logger().Warn("compositor: release source", "err", err)
	}
}

func closeStream(s source.Stream) {
	if err := s.Close(); err != nil {
		Logger().Warn("compositor: close stream", "err", err)
	}
}

func (p *Processor) storeScale(s float64) {
	p.scaleBits.Store(math.Float64bits(s))
}

// State returns the current play state.
func (p *Processor) State() State {
	return State(p.state.Load())
}

// Scale returns the presentation scale computed on the last composited tick.
func (p *Processor) Scale() float64 {
	return math.Float64frombits(p.scaleBits.Load())
}

// Presentation returns the origin-anchored transform that displays the
// target inside the viewport.
func (p *Processor) Presentation() gg.Matrix {
	return presentation(p.Scale())
}

// Stats returns the current counters.
func (p *Processor) Stats() Stats {
	return Stats{
		Ticks:      p.ticks.Load(),
		Skipped:    p.skipped.Load(),
		Composited: p.composited.Load(),
		State:      p.State(),
		Scale:      p.Scale(),
	}
}

// Buffer returns the surface the pipeline renders into.
func (p *Processor) Buffer() surface.Surface {
	return p.buffer
}

// Target returns the surface holding the last composited frame. Read it
// from the goroutine that fires the Scheduler, between ticks.
func (p *Processor) Target() surface.Surface {
	return p.target
}

// Pipeline returns the composition pipeline.
func (p *Processor) Pipeline() *Pipeline {
	return p.pipeline
}
