package ink

import "testing"

func pointsEqual(t *testing.T, got []Point, want ...Point) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("points = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("points[%d] = %v, want %v (full %v)", i, got[i], want[i], got)
		}
	}
}

// TestTrackerStrokeLifecycle walks one touch through press, two moves
// and a release, and checks the resulting stroke point by point.
func TestTrackerStrokeLifecycle(t *testing.T) {
	tr := NewTracker()

	events := []TouchEvent{
		{ID: 1, Phase: PhasePressed, Location: Pt(0, 0)},
		{ID: 1, Phase: PhaseMoved, Location: Pt(10, 0)},
		{ID: 1, Phase: PhaseMoved, Location: Pt(10, 10)},
		{ID: 1, Phase: PhaseReleased},
	}
	for _, ev := range events {
		if !tr.HandleTouch(ev) {
			t.Fatalf("event %+v did not change state", ev)
		}
	}

	completed := tr.Completed()
	if len(completed) != 1 {
		t.Fatalf("completed = %d strokes, want 1", len(completed))
	}
	if got := tr.InProgress(); len(got) != 0 {
		t.Fatalf("in progress = %d strokes after release, want 0", len(got))
	}

	// The release does not add a point: the stroke ends at the last move.
	pointsEqual(t, completed[0].Points(), Pt(0, 0), Pt(10, 0), Pt(10, 10))
}

// TestTrackerReleaseLocationIgnored verifies that a release carrying a
// location still does not extend the stroke.
func TestTrackerReleaseLocationIgnored(t *testing.T) {
	tr := NewTracker()

	tr.HandleTouch(TouchEvent{ID: 7, Phase: PhasePressed, Location: Pt(1, 1)})
	tr.HandleTouch(TouchEvent{ID: 7, Phase: PhaseMoved, Location: Pt(2, 2)})
	tr.HandleTouch(TouchEvent{ID: 7, Phase: PhaseReleased, Location: Pt(99, 99)})

	completed := tr.Completed()
	if len(completed) != 1 {
		t.Fatalf("completed = %d strokes, want 1", len(completed))
	}
	pointsEqual(t, completed[0].Points(), Pt(1, 1), Pt(2, 2))
}

// TestTrackerDuplicatePress verifies that pressing an ID that is
// already tracked changes nothing.
func TestTrackerDuplicatePress(t *testing.T) {
	tr := NewTracker()

	if !tr.HandleTouch(TouchEvent{ID: 1, Phase: PhasePressed, Location: Pt(0, 0)}) {
		t.Fatal("first press should change state")
	}
	if tr.HandleTouch(TouchEvent{ID: 1, Phase: PhasePressed, Location: Pt(50, 50)}) {
		t.Error("duplicate press should be a no-op")
	}

	if tr.ActiveCount() != 1 {
		t.Fatalf("active = %d, want 1", tr.ActiveCount())
	}

	// The original path is untouched: still a single point at the
	// first press location.
	pointsEqual(t, tr.InProgress()[0].Points(), Pt(0, 0))
}

// TestTrackerUnknownIDIgnored verifies that move, release and cancel
// events for IDs that are not tracked change nothing.
func TestTrackerUnknownIDIgnored(t *testing.T) {
	tr := NewTracker()

	// Seed one active stroke so we can check it is not disturbed.
	tr.HandleTouch(TouchEvent{ID: 1, Phase: PhasePressed, Location: Pt(0, 0)})

	for _, phase := range []Phase{PhaseMoved, PhaseReleased, PhaseCancelled} {
		if tr.HandleTouch(TouchEvent{ID: 42, Phase: phase, Location: Pt(5, 5)}) {
			t.Errorf("%v for unknown ID should be a no-op", phase)
		}
	}

	if tr.ActiveCount() != 1 {
		t.Errorf("active = %d, want 1", tr.ActiveCount())
	}
	if tr.CompletedCount() != 0 {
		t.Errorf("completed = %d, want 0", tr.CompletedCount())
	}
}

// TestTrackerInterleavedTouches verifies that two concurrent touches
// accumulate points independently, exactly as if each had happened
// alone.
func TestTrackerInterleavedTouches(t *testing.T) {
	tr := NewTracker()

	tr.HandleTouch(TouchEvent{ID: 1, Phase: PhasePressed, Location: Pt(0, 0)})
	tr.HandleTouch(TouchEvent{ID: 2, Phase: PhasePressed, Location: Pt(100, 100)})
	tr.HandleTouch(TouchEvent{ID: 1, Phase: PhaseMoved, Location: Pt(1, 0)})
	tr.HandleTouch(TouchEvent{ID: 2, Phase: PhaseMoved, Location: Pt(101, 100)})
	tr.HandleTouch(TouchEvent{ID: 1, Phase: PhaseMoved, Location: Pt(2, 0)})
	tr.HandleTouch(TouchEvent{ID: 2, Phase: PhaseReleased})
	tr.HandleTouch(TouchEvent{ID: 1, Phase: PhaseReleased})

	completed := tr.Completed()
	if len(completed) != 2 {
		t.Fatalf("completed = %d strokes, want 2", len(completed))
	}

	// Completion order: touch 2 released first.
	pointsEqual(t, completed[0].Points(), Pt(100, 100), Pt(101, 100))
	pointsEqual(t, completed[1].Points(), Pt(0, 0), Pt(1, 0), Pt(2, 0))
}

// TestTrackerCancelDiscards verifies that a cancelled stroke never
// reaches the completed collection.
func TestTrackerCancelDiscards(t *testing.T) {
	tr := NewTracker()

	tr.HandleTouch(TouchEvent{ID: 1, Phase: PhasePressed, Location: Pt(0, 0)})
	tr.HandleTouch(TouchEvent{ID: 1, Phase: PhaseMoved, Location: Pt(5, 5)})

	if !tr.HandleTouch(TouchEvent{ID: 1, Phase: PhaseCancelled}) {
		t.Fatal("cancel of an active touch should change state")
	}

	if tr.ActiveCount() != 0 {
		t.Errorf("active = %d after cancel, want 0", tr.ActiveCount())
	}
	if tr.CompletedCount() != 0 {
		t.Errorf("completed = %d after cancel, want 0", tr.CompletedCount())
	}

	// The ID is free again after a cancel.
	if !tr.HandleTouch(TouchEvent{ID: 1, Phase: PhasePressed, Location: Pt(9, 9)}) {
		t.Error("press after cancel should start a new stroke")
	}
}

// TestTrackerInProgressOrder verifies in-progress strokes come back in
// press order regardless of map iteration.
func TestTrackerInProgressOrder(t *testing.T) {
	tr := NewTracker()

	ids := []TouchID{9, 3, 7, 1, 5}
	for i, id := range ids {
		tr.HandleTouch(TouchEvent{ID: id, Phase: PhasePressed, Location: Pt(float64(i), 0)})
	}

	in := tr.InProgress()
	if len(in) != len(ids) {
		t.Fatalf("in progress = %d, want %d", len(in), len(ids))
	}
	for i := range ids {
		if got := in[i].At(0); got != Pt(float64(i), 0) {
			t.Errorf("in[%d] starts at %v, want %v (press order violated)", i, got, Pt(float64(i), 0))
		}
	}
}

// TestTrackerPhaseString covers the Phase name mapping.
func TestTrackerPhaseString(t *testing.T) {
	tests := []struct {
		phase Phase
		want  string
	}{
		{PhasePressed, "pressed"},
		{PhaseMoved, "moved"},
		{PhaseReleased, "released"},
		{PhaseCancelled, "cancelled"},
		{Phase(250), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.phase.String(); got != tt.want {
			t.Errorf("Phase(%d).String() = %q, want %q", tt.phase, got, tt.want)
		}
	}
}

// TestTrackerUnknownPhase verifies garbage phases change nothing.
func TestTrackerUnknownPhase(t *testing.T) {
	tr := NewTracker()
	if tr.HandleTouch(TouchEvent{ID: 1, Phase: Phase(250), Location: Pt(1, 1)}) {
		t.Error("unknown phase should be a no-op")
	}
	if tr.ActiveCount() != 0 || tr.CompletedCount() != 0 {
		t.Error("unknown phase must not create state")
	}
}

// TestTrackerReset verifies Reset drops everything.
func TestTrackerReset(t *testing.T) {
	tr := NewTracker()

	tr.HandleTouch(TouchEvent{ID: 1, Phase: PhasePressed, Location: Pt(0, 0)})
	tr.HandleTouch(TouchEvent{ID: 2, Phase: PhasePressed, Location: Pt(1, 1)})
	tr.HandleTouch(TouchEvent{ID: 1, Phase: PhaseReleased})

	tr.Reset()

	if tr.ActiveCount() != 0 {
		t.Errorf("active = %d after reset, want 0", tr.ActiveCount())
	}
	if tr.CompletedCount() != 0 {
		t.Errorf("completed = %d after reset, want 0", tr.CompletedCount())
	}

	// Previously active IDs can start fresh strokes.
	if !tr.HandleTouch(TouchEvent{ID: 2, Phase: PhasePressed, Location: Pt(4, 4)}) {
		t.Error("press after reset should start a new stroke")
	}
}

// TestTrackerCompletedIsCopy verifies mutating the returned slice does
// not affect the tracker.
func TestTrackerCompletedIsCopy(t *testing.T) {
	tr := NewTracker()
	tr.HandleTouch(TouchEvent{ID: 1, Phase: PhasePressed, Location: Pt(0, 0)})
	tr.HandleTouch(TouchEvent{ID: 1, Phase: PhaseReleased})

	got := tr.Completed()
	got[0] = nil

	if again := tr.Completed(); again[0] == nil {
		t.Error("Completed must return a copy of the slice")
	}
}
