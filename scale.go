package compositor

import (
	"math"

	"github.com/gogpu/gg"
)

// Viewport reports the size of the area the target is displayed in.
type Viewport interface {
	Size() (width, height int)
}

// ViewportFunc adapts a function to Viewport.
type ViewportFunc func() (width, height int)

// Size calls f.
func (f ViewportFunc) Size() (width, height int) {
	return f()
}

// FixedViewport is a Viewport of constant size.
type FixedViewport struct {
	Width, Height int
}

// Size returns the fixed dimensions.
func (v FixedViewport) Size() (width, height int) {
	return v.Width, v.Height
}

// ScaleToFit returns the largest uniform scale at which a tw x th target
// fits inside a vw x vh viewport. It returns 1 for a degenerate target.
func ScaleToFit(vw, vh, tw, th int) float64 {
	if tw <= 0 || th <= 0 {
		return 1
	}
	return math.Min(float64(vw)/float64(tw), float64(vh)/float64(th))
}

// presentation returns the origin-anchored uniform scale matrix.
func presentation(s float64) gg.Matrix {
	return gg.Scale(s, s)
}
