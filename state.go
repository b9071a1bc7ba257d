package compositor

// State is the play state of a Processor.
type State int32

const (
	// Paused means no tick is scheduled. It is the initial state.
	Paused State = iota
	// Playing means exactly one tick is scheduled at any time.
	Playing
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Paused:
		return "paused"
	case Playing:
		return "playing"
	default:
		return "unknown"
	}
}
