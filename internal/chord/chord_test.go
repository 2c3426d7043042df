package chord

import "testing"

func ms(v int64) *int64 {
	return &v
}

func TestClassifyDuration(t *testing.T) {
	cases := []struct {
		name       string
		word       string
		rawInput   string
		durationMs *int64
		pattern    Pattern
		confidence float64
	}{
		{name: "under chord threshold", word: "the", rawInput: "the", durationMs: ms(40), pattern: PatternChord, confidence: 0.95},
		{name: "zero duration", word: "the", rawInput: "the", durationMs: ms(0), pattern: PatternChord, confidence: 0.95},
		{name: "negative duration", word: "the", rawInput: "the", durationMs: ms(-5), pattern: PatternChord, confidence: 0.95},
		{name: "low ratio", word: "keyboard", rawInput: "keyboard", durationMs: ms(120), pattern: PatternChord, confidence: 0.85},
		{name: "normal sequential", word: "hello", rawInput: "hello", durationMs: ms(450), pattern: PatternSequential, confidence: 0.8},
		{name: "empty word skips ratio", word: "", rawInput: "", durationMs: ms(90), pattern: PatternSequential, confidence: 0.8},
		{name: "instant output with delimiter", word: "the", rawInput: "the ", durationMs: nil, pattern: PatternChord, confidence: 0.7},
		{name: "instant output exact", word: "the", rawInput: "the", durationMs: nil, pattern: PatternChord, confidence: 0.7},
		{name: "no timing no match", word: "the", rawInput: "teh", durationMs: nil, pattern: PatternUnknown, confidence: 0.5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ClassifyDuration(tc.word, tc.rawInput, tc.durationMs)
			if got.Pattern != tc.pattern {
				t.Fatalf("pattern: got %v, want %v (reason: %s)", got.Pattern, tc.pattern, got.Reason)
			}
			if got.Confidence != tc.confidence {
				t.Fatalf("confidence: got %v, want %v", got.Confidence, tc.confidence)
			}
			if got.UsedChord != (tc.pattern == PatternChord) {
				t.Fatalf("UsedChord %v inconsistent with pattern %v", got.UsedChord, got.Pattern)
			}
			if got.Reason == "" {
				t.Fatalf("expected a non-empty reason")
			}
		})
	}
}

func TestClassifyDurationChordRegardlessOfWord(t *testing.T) {
	for _, word := range []string{"", "a", "hello", "antidisestablishmentarianism"} {
		got := ClassifyDuration(word, "x", ms(79))
		if got.Pattern != PatternChord || got.Confidence != 0.95 || !got.UsedChord {
			t.Fatalf("word %q: got %+v, want chord/0.95", word, got)
		}
	}
}

func TestClassifyEvents(t *testing.T) {
	cases := []struct {
		name       string
		events     []KeystrokeEvent
		pattern    Pattern
		confidence float64
	}{
		{name: "empty", events: nil, pattern: PatternUnknown, confidence: 0},
		{name: "single event", events: []KeystrokeEvent{{Char: 'a', TimestampMs: 100}}, pattern: PatternSequential, confidence: 0.9},
		{
			name:       "tight burst",
			events:     []KeystrokeEvent{{Char: 'a', TimestampMs: 0}, {Char: 'b', TimestampMs: 5}, {Char: 'c', TimestampMs: 12}},
			pattern:    PatternChord,
			confidence: 0.95,
		},
		{
			name:       "simultaneous timestamps",
			events:     []KeystrokeEvent{{Char: 'a', TimestampMs: 10}, {Char: 'b', TimestampMs: 10}, {Char: 'c', TimestampMs: 10}},
			pattern:    PatternChord,
			confidence: 0.95,
		},
		{
			name:       "slow sequential",
			events:     []KeystrokeEvent{{Char: 'a', TimestampMs: 0}, {Char: 'b', TimestampMs: 150}, {Char: 'c', TimestampMs: 310}},
			pattern:    PatternSequential,
			confidence: 0.85,
		},
		{
			name:       "small intervals over long total",
			events:     []KeystrokeEvent{{Char: 'a', TimestampMs: 0}, {Char: 'b', TimestampMs: 30}, {Char: 'c', TimestampMs: 60}, {Char: 'd', TimestampMs: 90}},
			pattern:    PatternChord,
			confidence: 0.85,
		},
		{
			name:       "ambiguous intervals",
			events:     []KeystrokeEvent{{Char: 'a', TimestampMs: 0}, {Char: 'b', TimestampMs: 90}, {Char: 'c', TimestampMs: 180}},
			pattern:    PatternUnknown,
			confidence: 0.5,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ClassifyEvents(tc.events)
			if got.Pattern != tc.pattern {
				t.Fatalf("pattern: got %v, want %v (reason: %s)", got.Pattern, tc.pattern, got.Reason)
			}
			if got.Confidence != tc.confidence {
				t.Fatalf("confidence: got %v, want %v", got.Confidence, tc.confidence)
			}
			if got.UsedChord != (tc.pattern == PatternChord) {
				t.Fatalf("UsedChord %v inconsistent with pattern %v", got.UsedChord, got.Pattern)
			}
		})
	}
}

func TestClassifyEventsDoesNotMutateInput(t *testing.T) {
	events := []KeystrokeEvent{
		{Char: 'c', TimestampMs: 310},
		{Char: 'a', TimestampMs: 0},
		{Char: 'b', TimestampMs: 150},
	}
	first := ClassifyEvents(events)
	if events[0].Char != 'c' || events[0].TimestampMs != 310 {
		t.Fatalf("input slice mutated: %+v", events)
	}
	second := ClassifyEvents(events)
	if first != second {
		t.Fatalf("repeated classification diverged: %+v vs %+v", first, second)
	}
	if first.Pattern != PatternSequential || first.Confidence != 0.85 {
		t.Fatalf("unexpected result for unsorted sequential events: %+v", first)
	}
}

func TestPatternString(t *testing.T) {
	if PatternChord.String() != "chord" || PatternSequential.String() != "sequential" || PatternUnknown.String() != "unknown" {
		t.Fatalf("unexpected pattern names: %s %s %s", PatternChord, PatternSequential, PatternUnknown)
	}
	if Pattern(42).String() != "unknown" {
		t.Fatalf("out-of-range pattern should stringify as unknown")
	}
}
