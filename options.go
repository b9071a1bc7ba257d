package compositor

import "github.com/gogpu/compositor/surface"

// Default frame size of the buffer, target and default steps.
const (
	DefaultWidth  = 640
	DefaultHeight = 480
)

// Option configures a Processor during creation.
//
// Example:
//
//	// Default: 640x480, happy face over a spinning cube.
//	p, err := compositor.New(webcam.New(webcam.DefaultConfig()), frame)
//
//	// Custom steps, presented in a 1280x720 window.
//	p, err := compositor.New(acq, frame,
//	    compositor.WithSteps(hud, overlay.NewFace(640, 480)),
//	    compositor.WithViewport(compositor.FixedViewport{Width: 1280, Height: 720}))
type Option func(*options)

// options holds optional configuration for Processor creation.
type options struct {
	width, height int
	steps         []Step
	stepsSet      bool
	video         VideoSource
	viewport      Viewport
	factory       surface.Factory
}

func defaultOptions() options {
	return options{
		width:   DefaultWidth,
		height:  DefaultHeight,
		factory: surface.NewImageFactory(),
	}
}

// WithSize sets the size of the buffer and target surfaces, and of the
// default steps.
func WithSize(width, height int) Option {
	return func(o *options) {
		o.width = width
		o.height = height
	}
}

// WithSteps replaces the default steps. Steps are registered in the given
// order and therefore applied last to first; the first step ends up on top.
// The processor closes the steps on Close.
func WithSteps(steps ...Step) Option {
	return func(o *options) {
		o.steps = steps
		o.stepsSet = true
	}
}

// WithVideoSource replaces the default source.Player.
func WithVideoSource(v VideoSource) Option {
	return func(o *options) {
		o.video = v
	}
}

// WithViewport sets where the target is displayed. By default the viewport
// is the target's own size, giving a scale of 1.
func WithViewport(v Viewport) Option {
	return func(o *options) {
		o.viewport = v
	}
}

// WithSurfaceFactory sets how the buffer and target surfaces are created.
func WithSurfaceFactory(f surface.Factory) Option {
	return func(o *options) {
		if f != nil {
			o.factory = f
		}
	}
}
