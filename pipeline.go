package compositor

import (
	"errors"
	"io"
	"slices"

	"github.com/gogpu/compositor/surface"
)

// Pipeline applies an ordered list of steps to a shared buffer.
//
// Steps run in REVERSE registration order: after AddStep(a).AddStep(b),
// Render applies b first and a last, so a wins wherever both paint the same
// pixels. Register the topmost overlay first.
//
// The pipeline references the buffer but does not own it.
type Pipeline struct {
	buffer surface.Surface
	steps  []Step
}

// NewPipeline creates an empty pipeline rendering into buffer.
func NewPipeline(buffer surface.Surface) *Pipeline {
	return &Pipeline{buffer: buffer}
}

// AddStep appends step and returns the pipeline for chaining.
func (p *Pipeline) AddStep(step Step) *Pipeline {
	p.steps = append(p.steps, step)
	return p
}

// Len returns the number of registered steps.
func (p *Pipeline) Len() int {
	return len(p.steps)
}

// Steps returns the steps in registration order.
func (p *Pipeline) Steps() []Step {
	return slices.Clone(p.steps)
}

// Buffer returns the surface the pipeline renders into.
func (p *Pipeline) Buffer() surface.Surface {
	return p.buffer
}

// Render applies every step to the buffer, last registered first.
func (p *Pipeline) Render() {
	for i := len(p.steps) - 1; i >= 0; i-- {
		p.steps[i].Render(p.buffer)
	}
}

// Close closes every step that implements io.Closer and returns their
// combined errors. The buffer is left alone.
func (p *Pipeline) Close() error {
	var errs []error
	for _, s := range p.steps {
		if c, ok := s.(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
