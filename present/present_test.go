package present

import (
	"image"
	"image/color"
	"testing"

	"github.com/gogpu/gg"
	"golang.org/x/image/draw"
)

func TestAff3(t *testing.T) {
	m := gg.Matrix{A: 1, B: 2, C: 3, D: 4, E: 5, F: 6}
	got := Aff3(m)
	for i, want := range []float64{1, 2, 3, 4, 5, 6} {
		if got[i] != want {
			t.Errorf("Aff3()[%d] = %v, want %v", i, got[i], want)
		}
	}
}

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

func TestRenderScales(t *testing.T) {
	red := color.RGBA{255, 0, 0, 255}
	src := solid(4, 2, red)
	dst := solid(16, 16, color.RGBA{0, 255, 0, 255})

	Render(dst, src, gg.Scale(2, 2), draw.NearestNeighbor)

	tests := []struct {
		x, y int
		want color.RGBA
	}{
		{0, 0, red},
		{7, 3, red},
		{8, 0, color.RGBA{}}, // cleared outside the scaled source
		{0, 4, color.RGBA{}},
		{15, 15, color.RGBA{}},
	}
	for _, tt := range tests {
		if got := dst.RGBAAt(tt.x, tt.y); got != tt.want {
			t.Errorf("pixel (%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestRenderIdentityDefaultInterpolator(t *testing.T) {
	src := solid(3, 3, color.RGBA{0, 0, 255, 255})
	dst := image.NewRGBA(image.Rect(0, 0, 3, 3))

	Render(dst, src, gg.Identity(), nil)

	if got := dst.RGBAAt(1, 1); got != (color.RGBA{0, 0, 255, 255}) {
		t.Errorf("center pixel = %v, want blue", got)
	}
}
