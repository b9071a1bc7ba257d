// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package surface provides the raster surfaces a compositor paints on.
//
// A Surface is a fixed-size RGBA raster with two capabilities:
//
//   - a drawing context (*gg.Context) that paints directly into its pixels
//   - CopyFrom, which composites another image onto it at the origin
//
// The compositor uses one surface as the shared frame buffer, one as the
// presentation target, and every overlay step owns a private surface that it
// paints and then copies onto the buffer.
//
// # Usage
//
//	buffer := surface.NewImageSurface(640, 480)
//	defer buffer.Close()
//
//	buffer.CopyFrom(videoFrame)   // raw frame, opaque
//	buffer.CopyFrom(overlay)      // transparent areas keep the frame visible
//
// # Ownership
//
// Surfaces cannot be resized. Their creator owns them and is responsible for
// Close; after Close the drawing context is gone and Context returns nil.
package surface
