package compositor

import "errors"

// Errors returned by Processor.Start. They are wrapped with the underlying
// cause; test with errors.Is.
var (
	// ErrSurfaceUnavailable is returned when the buffer or target surface
	// has no drawing context, including after Close.
	ErrSurfaceUnavailable = errors.New("compositor: surface drawing context unavailable")

	// ErrSourceAcquisition is returned when the video device or stream
	// could not be obtained.
	ErrSourceAcquisition = errors.New("compositor: video source acquisition failed")

	// ErrPlayback is returned when the acquired stream could not start
	// playing.
	ErrPlayback = errors.New("compositor: video playback failed")

	// ErrStartAborted is returned when Stop or Close is called while Start
	// is still acquiring the source.
	ErrStartAborted = errors.New("compositor: start aborted by stop")
)
