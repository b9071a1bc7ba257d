// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"image"
	"image/color"

	"github.com/gogpu/gg"
	"golang.org/x/image/draw"
)

// ImageSurface is a CPU-based surface backed by a gg.Pixmap.
//
// Drawing goes through a gg.Context bound to the pixmap, and the same pixel
// memory is exposed as an *image.RGBA view, so painting and copying never
// convert between formats.
//
// Example:
//
//	s := surface.NewImageSurface(640, 480)
//	defer s.Close()
//
//	s.Clear(color.Transparent)
//	dc := s.Context()
//	dc.DrawRectangle(10, 10, 100, 50)
//	dc.SetRGB(1, 0, 0)
//	_ = dc.Fill()
//
//	img := s.Snapshot()
type ImageSurface struct {
	width  int
	height int

	pixmap *gg.Pixmap
	dc     *gg.Context

	// view aliases pixmap.Data(); it is never reallocated because the
	// surface cannot be resized.
	view *image.RGBA

	// closed tracks if Close has been called
	closed bool
}

// NewImageSurface creates a new CPU-based surface with the given dimensions.
func NewImageSurface(width, height int) *ImageSurface {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}

	pm := gg.NewPixmap(width, height)
	return &ImageSurface{
		width:  width,
		height: height,
		pixmap: pm,
		dc:     gg.NewContext(width, height, gg.WithPixmap(pm)),
		view: &image.RGBA{
			Pix:    pm.Data(),
			Stride: width * 4,
			Rect:   image.Rect(0, 0, width, height),
		},
	}
}

// Width returns the surface width.
func (s *ImageSurface) Width() int {
	return s.width
}

// Height returns the surface height.
func (s *ImageSurface) Height() int {
	return s.height
}

// Context returns the drawing context, or nil once the surface is closed.
func (s *ImageSurface) Context() *gg.Context {
	if s.closed {
		return nil
	}
	return s.dc
}

// CopyFrom composites src onto the surface at the origin.
func (s *ImageSurface) CopyFrom(src image.Image) {
	if s.closed || src == nil {
		return
	}
	s.flush()

	if other, ok := src.(*ImageSurface); ok {
		if other.closed {
			return
		}
		other.flush()
		src = other.view
	}

	draw.Draw(s.view, s.view.Bounds(), src, src.Bounds().Min, draw.Over)
}

// Clear fills the entire surface with the given color.
func (s *ImageSurface) Clear(c color.Color) {
	if s.closed {
		return
	}
	s.flush()
	draw.Draw(s.view, s.view.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

// Image returns the underlying image.RGBA after flushing pending drawing.
// This is a direct reference, not a copy.
func (s *ImageSurface) Image() *image.RGBA {
	if s.closed {
		return nil
	}
	s.flush()
	return s.view
}

// Snapshot returns a copy of the current surface contents.
func (s *ImageSurface) Snapshot() *image.RGBA {
	if s.closed {
		return nil
	}
	s.flush()

	result := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	copy(result.Pix, s.view.Pix)
	return result
}

// Close releases resources associated with the surface.
func (s *ImageSurface) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.dc.Close()
}

// ColorModel implements image.Image.
func (s *ImageSurface) ColorModel() color.Model {
	return color.RGBAModel
}

// Bounds implements image.Image.
func (s *ImageSurface) Bounds() image.Rectangle {
	return image.Rect(0, 0, s.width, s.height)
}

// At implements image.Image.
func (s *ImageSurface) At(x, y int) color.Color {
	return s.view.At(x, y)
}

// flush completes accelerated drawing queued on the context so the pixel
// memory is current before it is read or overwritten.
func (s *ImageSurface) flush() {
	if err := s.dc.FlushGPU(); err != nil {
		gg.Logger().Warn("surface: flush failed", "err", err)
	}
}

var _ Surface = (*ImageSurface)(nil)
