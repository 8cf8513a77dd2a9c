package ink

import "sort"

// Tracker is the stroke lifecycle state machine.
//
// Each active touch owns one in-progress path. A press opens a path,
// moves extend it, a release moves it to the completed collection, and
// a cancel discards it. Events that do not match an active touch are
// ignored, so stale or duplicated events from the host are harmless.
//
// Tracker is not safe for concurrent use. Canvas wraps it with a lock;
// use that unless you are single-threaded.
type Tracker struct {
	active    map[TouchID]*Path
	completed []*Path
	nextSeq   uint64
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		active: make(map[TouchID]*Path),
	}
}

// HandleTouch advances the state machine with one event and reports
// whether any stroke state changed. Callers use the return value to
// decide whether a redraw is needed.
//
// The rules per phase:
//
//   - Pressed: opens a new path at the event location. If the ID is
//     already being tracked the event is a duplicate and nothing
//     happens.
//   - Moved: appends the location to the tracked path. Unknown IDs are
//     ignored.
//   - Released: moves the tracked path to the completed collection.
//     The release location is NOT appended; the last recorded move is
//     the final point. Unknown IDs are ignored.
//   - Cancelled: discards the tracked path entirely. Unknown IDs are
//     ignored.
func (t *Tracker) HandleTouch(ev TouchEvent) bool {
	switch ev.Phase {
	case PhasePressed:
		if _, ok := t.active[ev.ID]; ok {
			return false
		}
		t.active[ev.ID] = newPath(t.nextSeq, ev.Location)
		t.nextSeq++
		return true

	case PhaseMoved:
		p, ok := t.active[ev.ID]
		if !ok {
			return false
		}
		p.appendPoint(ev.Location)
		return true

	case PhaseReleased:
		p, ok := t.active[ev.ID]
		if !ok {
			return false
		}
		delete(t.active, ev.ID)
		t.completed = append(t.completed, p)
		return true

	case PhaseCancelled:
		if _, ok := t.active[ev.ID]; !ok {
			return false
		}
		delete(t.active, ev.ID)
		return true

	default:
		return false
	}
}

// Completed returns the finished strokes in completion order.
// The slice is a copy; the paths are shared.
func (t *Tracker) Completed() []*Path {
	out := make([]*Path, len(t.completed))
	copy(out, t.completed)
	return out
}

// InProgress returns the strokes still being drawn, ordered by press
// time so that rendering is deterministic regardless of map iteration.
func (t *Tracker) InProgress() []*Path {
	out := make([]*Path, 0, len(t.active))
	for _, p := range t.active {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].seq < out[j].seq
	})
	return out
}

// ActiveCount returns the number of touches currently being tracked.
func (t *Tracker) ActiveCount() int {
	return len(t.active)
}

// CompletedCount returns the number of finished strokes.
func (t *Tracker) CompletedCount() int {
	return len(t.completed)
}

// Reset discards all strokes, active and completed.
func (t *Tracker) Reset() {
	clear(t.active)
	t.completed = nil
}
