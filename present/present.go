// Package present draws a composited surface onto a display-sized image
// through a presentation transform.
//
// The compositor never resizes its target surface; it computes a gg.Matrix
// describing how the target is shown. Render applies that matrix with
// golang.org/x/image/draw so hosts without a GPU canvas can display it.
package present

import (
	"image"

	"github.com/gogpu/gg"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// Aff3 converts a gg.Matrix to the affine form used by x/image/draw. Both
// map (x, y) to (A*x + B*y + C, D*x + E*y + F).
func Aff3(m gg.Matrix) f64.Aff3 {
	return f64.Aff3{m.A, m.B, m.C, m.D, m.E, m.F}
}

// Render clears dst to transparent and draws src transformed by m. A nil
// interp selects bilinear filtering.
func Render(dst draw.Image, src image.Image, m gg.Matrix, interp draw.Interpolator) {
	if interp == nil {
		interp = draw.ApproxBiLinear
	}
	draw.Draw(dst, dst.Bounds(), image.Transparent, image.Point{}, draw.Src)
	interp.Transform(dst, Aff3(m), src, src.Bounds(), draw.Over, nil)
}
