package main

import (
	"context"
	"errors"
	"image"
	"log"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/image/draw"

	"github.com/gogpu/compositor"
	"github.com/gogpu/compositor/clock"
	"github.com/gogpu/compositor/present"
)

// termHost shows the target in the terminal, two pixels per cell using the
// upper half block.
//
// Keys: space toggles play and pause, q or Esc quits.
type termHost struct {
	screen  tcell.Screen
	refresh float64
	cols    atomic.Int32
	rows    atomic.Int32

	dst *image.RGBA
}

func newTermHost(refresh float64) (*termHost, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.SetStyle(tcell.StyleDefault)
	screen.HideCursor()

	h := &termHost{screen: screen, refresh: refresh}
	h.resize()
	return h, nil
}

func (h *termHost) resize() {
	cols, rows := h.screen.Size()
	h.cols.Store(int32(cols))
	h.rows.Store(int32(rows))
}

// Viewport is the terminal grid at two pixels per row.
func (h *termHost) Viewport() compositor.Viewport {
	return compositor.ViewportFunc(func() (int, int) {
		return int(h.cols.Load()), int(h.rows.Load()) * 2
	})
}

func (h *termHost) Run(ctx context.Context, p *compositor.Processor, frame *clock.Frame) error {
	defer h.screen.Fini()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := p.Start(ctx); err != nil {
		return err
	}
	go h.events(ctx, cancel, p)

	err := clock.NewTicker(frame, h.refresh).Run(ctx, func() { h.draw(p) })
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (h *termHost) events(ctx context.Context, quit context.CancelFunc, p *compositor.Processor) {
	for {
		switch ev := h.screen.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventResize:
			h.resize()
			h.screen.Sync()
		case *tcell.EventKey:
			switch {
			case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC, ev.Rune() == 'q':
				quit()
				return
			case ev.Rune() == ' ':
				toggle(ctx, p)
			}
		}
	}
}

// toggle stops a playing processor or starts a paused one. Start blocks
// until playback begins, so it runs in its own goroutine.
func toggle(ctx context.Context, p *compositor.Processor) {
	if p.State() == compositor.Playing {
		p.Stop()
		return
	}
	go func() {
		if err := p.Start(ctx); err != nil && !errors.Is(err, compositor.ErrStartAborted) {
			log.Printf("start: %v", err)
		}
	}()
}

func (h *termHost) draw(p *compositor.Processor) {
	cols, rows := int(h.cols.Load()), int(h.rows.Load())
	if cols <= 0 || rows <= 0 {
		return
	}
	if h.dst == nil || h.dst.Bounds().Dx() != cols || h.dst.Bounds().Dy() != rows*2 {
		h.dst = image.NewRGBA(image.Rect(0, 0, cols, rows*2))
	}
	present.Render(h.dst, p.Target(), p.Presentation(), draw.ApproxBiLinear)

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			top := h.dst.RGBAAt(x, 2*y)
			bottom := h.dst.RGBAAt(x, 2*y+1)
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))).
				Background(tcell.NewRGBColor(int32(bottom.R), int32(bottom.G), int32(bottom.B)))
			h.screen.SetContent(x, y, '▀', nil, style)
		}
	}
	h.screen.Show()
}
