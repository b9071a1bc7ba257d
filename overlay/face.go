package overlay

import (
	"image/color"
	"math"

	"github.com/gogpu/gg"

	"github.com/gogpu/compositor/surface"
)

// Face draws a blue line-art smiley in the top left corner.
type Face struct {
	surf surface.Surface
}

// NewFace creates a Face painting into a width x height private surface.
func NewFace(width, height int) *Face {
	return &Face{surf: surface.NewImageSurface(width, height)}
}

// Surface returns the private surface.
func (f *Face) Surface() surface.Surface {
	return f.surf
}

// Render repaints the face and composites it onto target. The output is the
// same on every call.
func (f *Face) Render(target surface.Surface) {
	dc := f.surf.Context()
	if dc == nil {
		return
	}
	f.surf.Clear(color.Transparent)

	dc.ClearPath()
	dc.MoveTo(125, 75)
	dc.DrawArc(75, 75, 50, 0, 2*math.Pi) // head
	dc.MoveTo(110, 75)
	dc.DrawArc(75, 75, 35, 0, math.Pi) // mouth
	dc.MoveTo(65, 65)
	dc.DrawArc(60, 65, 5, 0, 2*math.Pi) // left eye
	dc.MoveTo(95, 65)
	dc.DrawArc(90, 65, 5, 0, 2*math.Pi) // right eye

	dc.SetLineWidth(1)
	dc.SetColor(gg.Blue.Color())
	if err := dc.Stroke(); err != nil {
		gg.Logger().Debug("overlay: face stroke failed", "err", err)
	}

	target.CopyFrom(f.surf)
}

// Close releases the private surface.
func (f *Face) Close() error {
	return f.surf.Close()
}
