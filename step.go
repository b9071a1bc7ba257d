package compositor

import "github.com/gogpu/compositor/surface"

// Step is one mutation applied to the frame buffer on every tick.
//
// Render advances the step's own state by one unit, repaints whatever it
// owns and composites the result onto target. Steps must not depend on
// wall-clock time. A step that holds resources implements io.Closer; the
// pipeline closes it on teardown.
type Step interface {
	Render(target surface.Surface)
}

// StepFunc adapts an ordinary function to the Step interface.
type StepFunc func(target surface.Surface)

// Render calls f(target).
func (f StepFunc) Render(target surface.Surface) {
	f(target)
}
