package game

import (
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestRecorderRoundTrip(t *testing.T) {
	dir := t.TempDir()
	r, err := NewRecorder(dir, "abc")
	if err != nil {
		t.Fatalf("NewRecorder: %v", err)
	}
	if !strings.HasPrefix(filepath.Base(r.Path()), "game_abc_") {
		t.Fatalf("unexpected file name %s", r.Path())
	}

	g := newTestSingle(t, 10, 10)
	for i := 0; i < 3; i++ {
		g.Update(None)
		r.RecordStep(StepRecord{
			Session: "abc",
			Tick:    g.Tick(),
			Time:    time.Now(),
			Inputs:  []Direction{None},
			State:   g.Snapshot(),
		})
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	// further records and closes are ignored
	r.RecordStep(StepRecord{Tick: 99})
	if err := r.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}

	recs, err := ReadRecords(r.Path())
	if err != nil {
		t.Fatalf("ReadRecords: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("got %d records want 3", len(recs))
	}
	last := recs[2]
	if last.Tick != 3 || last.State.Tick != 3 {
		t.Fatalf("last tick=%d state tick=%d", last.Tick, last.State.Tick)
	}
	if last.State.Players[0].Head() != (Point{2, 5}) {
		t.Fatalf("head=%v want=(2,5)", last.State.Players[0].Head())
	}
	if r.Dropped() != 0 {
		t.Fatalf("dropped=%d", r.Dropped())
	}
}
