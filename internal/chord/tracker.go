package chord

import "time"

// Clock supplies the current time. Injected so trackers stay deterministic
// under test.
type Clock func() time.Time

// Tracker accumulates keystroke events for the word currently being typed.
// One word is live per tracker at a time; Complete classifies the burst and
// resets the tracker for the next word. Not safe for concurrent use.
type Tracker struct {
	clock     Clock
	events    []KeystrokeEvent
	startedAt time.Time
	started   bool
}

// NewTracker returns a tracker using the given clock. A nil clock falls back
// to time.Now.
func NewTracker(clock Clock) *Tracker {
	if clock == nil {
		clock = time.Now
	}
	return &Tracker{clock: clock}
}

// Start begins a fresh word, discarding any events already recorded.
func (t *Tracker) Start() {
	t.events = t.events[:0]
	t.startedAt = t.clock()
	t.started = true
}

// RecordKeystroke appends a character with the current timestamp. Recording
// before an explicit Start begins the session implicitly.
func (t *Tracker) RecordKeystroke(char rune) {
	if !t.started {
		t.Start()
	}
	t.events = append(t.events, KeystrokeEvent{
		Char:        char,
		TimestampMs: t.clock().UnixMilli(),
	})
}

// Complete classifies the accumulated burst and resets the tracker. With no
// events recorded it returns the unknown zero-confidence result.
func (t *Tracker) Complete() Result {
	result := ClassifyEvents(t.events)
	t.Reset()
	return result
}

// Duration returns elapsed milliseconds since the session started, or 0 when
// idle.
func (t *Tracker) Duration() int64 {
	if !t.started {
		return 0
	}
	return t.clock().Sub(t.startedAt).Milliseconds()
}

// KeystrokeCount returns the number of events recorded for the current word.
func (t *Tracker) KeystrokeCount() int {
	return len(t.events)
}

// Reset unconditionally returns the tracker to idle.
func (t *Tracker) Reset() {
	t.events = nil
	t.startedAt = time.Time{}
	t.started = false
}
