package main

import (
	"context"
	"errors"
	"log"
	"sync/atomic"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/integration/ggcanvas"
	"github.com/gogpu/gogpu"
	"github.com/gogpu/gpucontext"

	"github.com/gogpu/compositor"
	"github.com/gogpu/compositor/clock"
)

// windowHost shows the target in a GPU window. Each OnDraw is one display
// refresh: it fires the clock, then draws the target through the
// presentation transform.
//
// Keys: space toggles play and pause.
type windowHost struct {
	width, height int
	winW, winH    atomic.Int32
}

func newWindowHost(width, height int) *windowHost {
	h := &windowHost{width: width, height: height}
	h.winW.Store(int32(width))
	h.winH.Store(int32(height))
	return h
}

// Viewport is the current window size.
func (h *windowHost) Viewport() compositor.Viewport {
	return compositor.ViewportFunc(func() (int, int) {
		return int(h.winW.Load()), int(h.winH.Load())
	})
}

func (h *windowHost) Run(ctx context.Context, p *compositor.Processor, frame *clock.Frame) error {
	app := gogpu.NewApp(gogpu.DefaultConfig().
		WithTitle("Compositor").
		WithSize(h.width, h.height))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		if err := p.Start(ctx); err != nil {
			log.Printf("start: %v", err)
		}
	}()

	var canvas *ggcanvas.Canvas
	app.OnDraw(func(dc *gogpu.Context) {
		w, ht := dc.Width(), dc.Height()
		if w <= 0 || ht <= 0 {
			return
		}
		h.winW.Store(int32(w))
		h.winH.Store(int32(ht))

		frame.Fire()

		if canvas == nil {
			provider := app.GPUContextProvider()
			if provider == nil {
				return
			}
			var err error
			if canvas, err = ggcanvas.New(provider, w, ht); err != nil {
				log.Printf("canvas: %v", err)
				return
			}
		}
		if cw, ch := canvas.Size(); cw != w || ch != ht {
			if err := canvas.Resize(w, ht); err != nil {
				log.Printf("resize: %v", err)
			}
		}

		target := p.Target().Snapshot()
		if target == nil {
			return
		}
		if err := canvas.Draw(func(cc *gg.Context) {
			cc.ClearWithColor(gg.Black)
			cc.Push()
			cc.Transform(p.Presentation())
			cc.DrawImage(gg.ImageBufFromImage(target), 0, 0)
			cc.Pop()
		}); err != nil {
			log.Printf("draw: %v", err)
		}
		if err := canvas.RenderTo(dc.AsTextureDrawer()); err != nil {
			log.Printf("render: %v", err)
		}
	})

	app.EventSource().OnKeyPress(func(key gpucontext.Key, _ gpucontext.Modifiers) {
		if key == gpucontext.KeySpace {
			toggle(ctx, p)
		}
	})

	// The canvas registers with the app and is released by Run.
	app.OnClose(func() {
		cancel()
		p.Stop()
	})

	if err := app.Run(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
