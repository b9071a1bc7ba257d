// Command compositor overlays a happy face and a spinning cube on live video.
//
// Usage:
//
//	compositor -source webcam -display window
//	compositor -source pattern -display png -frames 120 -out composite.png
//	compositor -source pattern -display png -surfaces
//	compositor -source photo.jpg -display term -hud
//
// Sources are "pattern" (a generated test card), "webcam" (the first camera)
// or a path to a PNG, JPEG or WebP image. Displays are "png" (run a fixed
// number of refreshes and write the last target, with -surfaces also the
// buffer and overlay surfaces), "term" (half-block rendering in the
// terminal) and "window" (a GPU window).
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/compositor"
	"github.com/gogpu/compositor/clock"
	"github.com/gogpu/compositor/overlay"
	"github.com/gogpu/compositor/source"
	"github.com/gogpu/compositor/source/webcam"
)

type config struct {
	source   string
	display  string
	width    int
	height   int
	fps      float64
	refresh  float64
	frames   int
	out      string
	viewport string
	surfaces bool
	hud      bool
}

// host displays the processor target and drives the refresh clock.
type host interface {
	Viewport() compositor.Viewport
	Run(ctx context.Context, p *compositor.Processor, frame *clock.Frame) error
}

func main() {
	var cfg config
	flag.StringVar(&cfg.source, "source", "pattern", "video source: pattern, webcam or an image path")
	flag.StringVar(&cfg.display, "display", "png", "display: png, term or window")
	flag.IntVar(&cfg.width, "width", compositor.DefaultWidth, "frame width")
	flag.IntVar(&cfg.height, "height", compositor.DefaultHeight, "frame height")
	flag.Float64Var(&cfg.fps, "fps", source.DefaultFrameRate, "frame rate of generated sources")
	flag.Float64Var(&cfg.refresh, "refresh", clock.DefaultRefreshRate, "display refresh rate in Hz (png, term)")
	flag.IntVar(&cfg.frames, "frames", 120, "refreshes to run before writing the image (png)")
	flag.StringVar(&cfg.out, "out", "composite.png", "output file (png)")
	flag.StringVar(&cfg.viewport, "viewport", "", "presentation viewport WxH (png), defaults to the frame size")
	flag.BoolVar(&cfg.surfaces, "surfaces", false, "also write the buffer and overlay surfaces next to -out (png)")
	flag.BoolVar(&cfg.hud, "hud", false, "draw tick counters over the video")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	if *verbose {
		compositor.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	if err := run(cfg); err != nil {
		log.Fatal(err)
	}
}

func run(cfg config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	acq, err := newAcquirer(cfg)
	if err != nil {
		return err
	}
	h, err := newHost(cfg)
	if err != nil {
		return err
	}

	var p *compositor.Processor
	steps := []compositor.Step{
		overlay.NewFace(cfg.width, cfg.height),
		overlay.NewCube(cfg.width, cfg.height),
	}
	if cfg.hud {
		printer := message.NewPrinter(language.English)
		hud, err := overlay.NewHUD(cfg.width, cfg.height, func() string {
			st := p.Stats()
			return printer.Sprintf("%s  ticks %d  skipped %d  scale %.2f",
				st.State, st.Ticks, st.Skipped, st.Scale)
		})
		if err != nil {
			return err
		}
		// First registered paints last, so the caption stays on top.
		steps = append([]compositor.Step{hud}, steps...)
	}

	frame := clock.NewFrame()
	p, err = compositor.New(acq, frame,
		compositor.WithSize(cfg.width, cfg.height),
		compositor.WithSteps(steps...),
		compositor.WithViewport(h.Viewport()))
	if err != nil {
		return err
	}
	defer func() {
		if err := p.Close(); err != nil {
			log.Printf("close: %v", err)
		}
	}()

	return h.Run(ctx, p, frame)
}

func newAcquirer(cfg config) (source.Acquirer, error) {
	switch cfg.source {
	case "pattern":
		return source.NewPattern(cfg.width, cfg.height, cfg.fps), nil
	case "webcam":
		return webcam.New(webcam.Config{Width: cfg.width, Height: cfg.height}), nil
	default:
		return source.LoadStill(cfg.source, cfg.fps)
	}
}

func newHost(cfg config) (host, error) {
	switch cfg.display {
	case "png":
		vw, vh := cfg.width, cfg.height
		if cfg.viewport != "" {
			var err error
			if vw, vh, err = parseSize(cfg.viewport); err != nil {
				return nil, err
			}
		}
		return &pngHost{
			viewport: compositor.FixedViewport{Width: vw, Height: vh},
			refresh:  cfg.refresh,
			frames:   cfg.frames,
			out:      cfg.out,
			surfaces: cfg.surfaces,
		}, nil
	case "term":
		return newTermHost(cfg.refresh)
	case "window":
		return newWindowHost(cfg.width, cfg.height), nil
	default:
		return nil, fmt.Errorf("unknown display %q", cfg.display)
	}
}

// parseSize parses "WxH".
func parseSize(s string) (w, h int, err error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("invalid size %q, want WxH", s)
	}
	if w, err = strconv.Atoi(ws); err != nil {
		return 0, 0, fmt.Errorf("invalid width in %q: %w", s, err)
	}
	if h, err = strconv.Atoi(hs); err != nil {
		return 0, 0, fmt.Errorf("invalid height in %q: %w", s, err)
	}
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("invalid size %q", s)
	}
	return w, h, nil
}
