// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"image"
	"image/color"

	"github.com/gogpu/gg"
)

// Surface is a fixed-size raster that can be painted onto and copied from.
//
// A Surface is also an image.Image, so any surface is a valid source for
// another surface's CopyFrom.
//
// Surfaces are NOT thread-safe. Each surface should be used from a single
// goroutine, or external synchronization must be used.
//
// Example usage:
//
//	s := surface.NewImageSurface(640, 480)
//	defer s.Close()
//
//	dc := s.Context()
//	dc.SetRGB(0, 0, 1)
//	dc.DrawCircle(75, 75, 50)
//	_ = dc.Stroke()
//
//	buffer.CopyFrom(s)
type Surface interface {
	image.Image

	// Width returns the surface width in pixels.
	Width() int

	// Height returns the surface height in pixels.
	Height() int

	// Context returns the drawing context that paints directly into the
	// surface. It returns nil when no drawing context is available, which
	// is always the case after Close.
	Context() *gg.Context

	// CopyFrom composites the full extent of src onto the surface at the
	// origin using source-over. No scaling is applied: a smaller source
	// covers only part of the surface, a larger one is clipped.
	CopyFrom(src image.Image)

	// Clear fills the entire surface with the given color.
	Clear(c color.Color)

	// Snapshot returns the current surface contents as an RGBA image.
	// The returned image is a copy; modifications to it do not affect the surface.
	Snapshot() *image.RGBA

	// Close releases all resources associated with the surface.
	// After Close, the surface must not be used.
	// Close is idempotent; multiple calls are safe.
	Close() error
}

// Factory creates a surface of the given size.
type Factory func(width, height int) (Surface, error)

// NewImageFactory returns a Factory producing ImageSurfaces.
func NewImageFactory() Factory {
	return func(width, height int) (Surface, error) {
		return NewImageSurface(width, height), nil
	}
}
