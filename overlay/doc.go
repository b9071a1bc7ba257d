// Package overlay provides the composite steps applied to every video frame.
//
// Each step owns a private surface the size of the video frame. On Render it
// advances its own state by one unit, repaints the private surface and
// composites it onto the target with source-over, so transparent pixels keep
// the frame underneath visible.
//
//	face := overlay.NewFace(640, 480)
//	defer face.Close()
//	face.Render(buffer)
//
// Steps never look at wall-clock time; animation speed follows the rate at
// which Render is called.
package overlay
