package chord

import (
	"testing"
	"time"
)

// fakeClock returns a clock that advances by step on every read.
func fakeClock(start time.Time, step time.Duration) Clock {
	current := start
	return func() time.Time {
		now := current
		current = current.Add(step)
		return now
	}
}

func TestTrackerRoundTrip(t *testing.T) {
	tr := NewTracker(fakeClock(time.UnixMilli(1000), 10*time.Millisecond))
	tr.Start()
	tr.RecordKeystroke('t')
	tr.RecordKeystroke('h')
	tr.RecordKeystroke('e')
	if got := tr.KeystrokeCount(); got != 3 {
		t.Fatalf("keystroke count: got %d, want 3", got)
	}

	result := tr.Complete()
	if result.Pattern != PatternChord || result.Confidence != 0.95 {
		t.Fatalf("expected chord/0.95 for 10ms-spaced keys, got %+v", result)
	}
	if got := tr.KeystrokeCount(); got != 0 {
		t.Fatalf("tracker not cleared after Complete: %d events", got)
	}
	if got := tr.Duration(); got != 0 {
		t.Fatalf("duration after Complete: got %d, want 0", got)
	}
}

func TestTrackerSequentialWord(t *testing.T) {
	tr := NewTracker(fakeClock(time.UnixMilli(0), 150*time.Millisecond))
	tr.Start()
	tr.RecordKeystroke('c')
	tr.RecordKeystroke('a')
	tr.RecordKeystroke('t')
	result := tr.Complete()
	if result.Pattern != PatternSequential || result.Confidence != 0.85 {
		t.Fatalf("expected sequential/0.85 for 150ms-spaced keys, got %+v", result)
	}
}

func TestTrackerCompleteWithoutEvents(t *testing.T) {
	tr := NewTracker(fakeClock(time.UnixMilli(0), time.Millisecond))
	result := tr.Complete()
	if result.Pattern != PatternUnknown || result.Confidence != 0 {
		t.Fatalf("expected unknown/0 for empty session, got %+v", result)
	}
}

func TestTrackerAutoStart(t *testing.T) {
	tr := NewTracker(fakeClock(time.UnixMilli(500), 5*time.Millisecond))
	tr.RecordKeystroke('a')
	if got := tr.KeystrokeCount(); got != 1 {
		t.Fatalf("keystroke count after auto-start: got %d, want 1", got)
	}
	if got := tr.Duration(); got <= 0 {
		t.Fatalf("duration should advance after auto-start, got %d", got)
	}
}

func TestTrackerStartDiscardsPriorEvents(t *testing.T) {
	tr := NewTracker(fakeClock(time.UnixMilli(0), time.Millisecond))
	tr.RecordKeystroke('a')
	tr.RecordKeystroke('b')
	tr.Start()
	if got := tr.KeystrokeCount(); got != 0 {
		t.Fatalf("Start should discard prior events, got %d", got)
	}
}

func TestTrackerReset(t *testing.T) {
	tr := NewTracker(fakeClock(time.UnixMilli(0), time.Millisecond))
	tr.RecordKeystroke('a')
	tr.Reset()
	if got := tr.KeystrokeCount(); got != 0 {
		t.Fatalf("keystroke count after Reset: got %d, want 0", got)
	}
	if got := tr.Duration(); got != 0 {
		t.Fatalf("duration after Reset: got %d, want 0", got)
	}
}

func TestTrackerDurationIdleIsZero(t *testing.T) {
	tr := NewTracker(fakeClock(time.UnixMilli(0), time.Second))
	if got := tr.Duration(); got != 0 {
		t.Fatalf("idle duration: got %d, want 0", got)
	}
}

func TestTrackerNilClockDefaultsToWallClock(t *testing.T) {
	tr := NewTracker(nil)
	tr.RecordKeystroke('a')
	if got := tr.KeystrokeCount(); got != 1 {
		t.Fatalf("keystroke count: got %d, want 1", got)
	}
}
