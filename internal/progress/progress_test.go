package progress

import (
	"errors"
	"testing"
)

// A nil tracker must be safe to drive; callers pass nil in quiet mode.
func TestNilTrackerIsNoOp(t *testing.T) {
	var tr *Tracker
	tr.Tick()
	tr.FinishSuccess()
	tr.FinishError(errors.New("boom"))
}

func TestTrackerLifecycle(t *testing.T) {
	tr := NewTracker("testing...", 3)
	tr.Tick()
	tr.Tick()
	tr.Tick()
	tr.FinishSuccess()
}

func TestSpinnerLifecycle(t *testing.T) {
	sp := NewSpinner("spinning...")
	sp.Tick()
	sp.FinishSuccess()
}
