package source

import (
	"context"
	"image"
	"math"
	"sync"
	"time"

	"github.com/gogpu/gg"
)

// DefaultFrameRate is the rate, in frames per second, of generated sources
// when none is given.
const DefaultFrameRate = 30

// tickStream produces one frame per interval. The first frame is returned
// without waiting.
type tickStream struct {
	interval time.Duration
	produce  func(n int) image.Image

	ticker *time.Ticker
	closed chan struct{}
	once   sync.Once
	n      int
}

func newTickStream(fps float64, produce func(n int) image.Image) *tickStream {
	if fps <= 0 {
		fps = DefaultFrameRate
	}
	interval := time.Duration(float64(time.Second) / fps)
	return &tickStream{
		interval: interval,
		produce:  produce,
		ticker:   time.NewTicker(interval),
		closed:   make(chan struct{}),
	}
}

// ReadFrame implements Stream. It must not be called concurrently.
func (s *tickStream) ReadFrame() (image.Image, error) {
	select {
	case <-s.closed:
		return nil, ErrStreamClosed
	default:
	}
	if s.n > 0 {
		select {
		case <-s.closed:
			return nil, ErrStreamClosed
		case <-s.ticker.C:
		}
	}
	img := s.produce(s.n)
	s.n++
	return img, nil
}

// Close implements Stream.
func (s *tickStream) Close() error {
	s.once.Do(func() {
		s.ticker.Stop()
		close(s.closed)
	})
	return nil
}

// Pattern generates an animated test card: vertical color bars with a white
// marker sweeping across them.
type Pattern struct {
	width  int
	height int
	fps    float64
}

// NewPattern returns an Acquirer whose streams produce a width x height test
// card at fps frames per second. Acquire never blocks and never fails.
func NewPattern(width, height int, fps float64) *Pattern {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}
	return &Pattern{width: width, height: height, fps: fps}
}

// Acquire implements Acquirer.
func (p *Pattern) Acquire(ctx context.Context) (Stream, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	Logger().Debug("source: pattern acquired", "width", p.width, "height", p.height)
	return newTickStream(p.fps, p.Frame), nil
}

var patternBars = []gg.RGBA{
	gg.RGB(0.75, 0.75, 0.75),
	gg.RGB(0.75, 0.75, 0),
	gg.RGB(0, 0.75, 0.75),
	gg.RGB(0, 0.75, 0),
	gg.RGB(0.75, 0, 0.75),
	gg.RGB(0.75, 0, 0),
	gg.RGB(0, 0, 0.75),
}

// Frame renders frame number n of the test card.
func (p *Pattern) Frame(n int) image.Image {
	dc := gg.NewContext(p.width, p.height)
	defer func() { _ = dc.Close() }()

	w, h := float64(p.width), float64(p.height)
	barW := w / float64(len(patternBars))
	for i, c := range patternBars {
		dc.SetColor(c.Color())
		dc.DrawRectangle(float64(i)*barW, 0, math.Ceil(barW), h)
		_ = dc.Fill()
	}

	markerW := math.Max(4, w/40)
	x := math.Mod(float64(n)*markerW/2, w+markerW) - markerW
	dc.SetRGB(1, 1, 1)
	dc.DrawRectangle(x, h*0.8, markerW, h*0.2)
	_ = dc.Fill()

	_ = dc.FlushGPU()
	return dc.Image()
}
