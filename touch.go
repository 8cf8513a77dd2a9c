package ink

// TouchID identifies one touch sequence from press to release.
// The windowing layer assigns IDs; ink only requires that an ID stays
// stable for the lifetime of its touch and is not reused while the
// touch is still active.
type TouchID int64

// Phase describes where a touch event sits in its lifecycle.
type Phase uint8

const (
	// PhasePressed starts a new touch sequence.
	PhasePressed Phase = iota

	// PhaseMoved extends an active touch sequence.
	PhaseMoved

	// PhaseReleased ends an active touch sequence normally.
	PhaseReleased

	// PhaseCancelled ends an active touch sequence abnormally, for
	// example when the system claims the gesture. The stroke drawn so
	// far is discarded.
	PhaseCancelled
)

// String returns the phase name for logging.
func (p Phase) String() string {
	switch p {
	case PhasePressed:
		return "pressed"
	case PhaseMoved:
		return "moved"
	case PhaseReleased:
		return "released"
	case PhaseCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// TouchEvent is a single touch sample delivered by the host event loop.
//
// Location is in logical coordinates; Canvas converts it to pixels
// before storing. Released and Cancelled events ignore Location
// entirely, so hosts that do not know the final position may leave it
// zero.
type TouchEvent struct {
	ID       TouchID
	Phase    Phase
	Location Point
}
