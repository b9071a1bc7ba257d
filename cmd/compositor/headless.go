package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"

	"github.com/gogpu/compositor"
	"github.com/gogpu/compositor/clock"
	"github.com/gogpu/compositor/overlay"
	"github.com/gogpu/compositor/present"
	"github.com/gogpu/compositor/surface"
)

// pngHost runs a fixed number of refreshes and writes what the display
// would show. With surfaces set it also writes the buffer and the surface
// of every overlay step next to out.
type pngHost struct {
	viewport compositor.FixedViewport
	refresh  float64
	frames   int
	out      string
	surfaces bool
}

func (h *pngHost) Viewport() compositor.Viewport {
	return h.viewport
}

func (h *pngHost) Run(ctx context.Context, p *compositor.Processor, frame *clock.Frame) error {
	if err := p.Start(ctx); err != nil {
		return err
	}
	defer p.Stop()

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	n := 0
	err := clock.NewTicker(frame, h.refresh).Run(runCtx, func() {
		n++
		if n >= h.frames {
			cancel()
		}
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	st := p.Stats()
	log.Printf("%d refreshes: %d composited, %d skipped, scale %.2f",
		n, st.Composited, st.Skipped, st.Scale)
	if err := h.write(p); err != nil {
		return err
	}
	if h.surfaces {
		return h.writeSurfaces(p)
	}
	return nil
}

func (h *pngHost) write(p *compositor.Processor) error {
	dst := image.NewRGBA(image.Rect(0, 0, h.viewport.Width, h.viewport.Height))
	present.Render(dst, p.Target(), p.Presentation(), draw.CatmullRom)

	if err := writePNG(h.out, dst); err != nil {
		return err
	}
	log.Printf("Composite saved to %s (%dx%d)", h.out, h.viewport.Width, h.viewport.Height)
	return nil
}

type namedSurface struct {
	name string
	surf surface.Surface
}

// writeSurfaces writes the buffer and each overlay surface at their own size.
func (h *pngHost) writeSurfaces(p *compositor.Processor) error {
	named := []namedSurface{{"buffer", p.Buffer()}}
	for _, step := range p.Pipeline().Steps() {
		switch s := step.(type) {
		case *overlay.Face:
			named = append(named, namedSurface{"face", s.Surface()})
		case *overlay.Cube:
			named = append(named, namedSurface{"cube", s.Surface()})
		case *overlay.HUD:
			named = append(named, namedSurface{"hud", s.Surface()})
		}
	}

	for _, n := range named {
		img := n.surf.Snapshot()
		if img == nil {
			continue
		}
		path := sidePath(h.out, n.name)
		if err := writePNG(path, img); err != nil {
			return err
		}
		log.Printf("Surface %s saved to %s", n.name, path)
	}
	return nil
}

// sidePath names a file next to out: "dir/composite.png" with "face" becomes
// "dir/composite-face.png".
func sidePath(out, name string) string {
	ext := filepath.Ext(out)
	return strings.TrimSuffix(out, ext) + "-" + name + ".png"
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
