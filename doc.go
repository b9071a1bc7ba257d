// Package compositor composites synthetic overlays onto live video frames,
// once per display refresh.
//
// # Overview
//
// A Processor owns two surfaces. On every tick it copies the latest video
// frame into the buffer, runs the Pipeline of steps over the buffer, works out
// how the result must be scaled to fit the viewport, and copies the buffer to
// the target. Hosts display the target through Presentation.
//
//	frame := clock.NewFrame()
//	p, err := compositor.New(source.NewPattern(640, 480, 30), frame)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer p.Close()
//
//	if err := p.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	_ = clock.NewTicker(frame, 60).Run(ctx, func() {
//	    show(p.Target(), p.Presentation())
//	})
//
// # Step order
//
// Pipeline applies its steps in reverse registration order. The first
// registered step paints last and ends up on top. The default pipeline
// registers overlay.Face then overlay.Cube, so the face is drawn over the
// cube.
//
// # Lifecycle
//
// A Processor starts Paused. Start acquires the video source and blocks
// until playback has begun; Stop cancels the pending tick and releases the
// source; Close also releases the steps and surfaces. While Playing exactly
// one tick is scheduled at a time.
//
// # Logging
//
// Nothing is logged by default. SetLogger enables log/slog output for the
// compositor, its sources and the gg drawing library.
package compositor
