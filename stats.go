package compositor

// Stats is a point-in-time view of a Processor's counters.
type Stats struct {
	// Ticks counts tick bodies that ran while playing.
	Ticks uint64
	// Skipped counts ticks that found no usable frame.
	Skipped uint64
	// Composited counts ticks that produced a new target image.
	Composited uint64

	State State
	// Scale is the presentation scale computed on the last composited tick.
	Scale float64
}
