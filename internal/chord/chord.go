// Package chord classifies keystroke bursts as chorded or sequential entry.
package chord

import (
	"fmt"
	"sort"
	"unicode/utf8"
)

// Threshold constants shared by both classifiers, in milliseconds.
const (
	// ChordThresholdMs is the burst duration below which input is chorded.
	ChordThresholdMs = 80
	// SequentialThresholdMs is the expected per-character time for one-key-at-a-time typing.
	SequentialThresholdMs = 100
)

// ratio of measured to expected duration below which a burst counts as chorded
const chordRatioCutoff = 0.3

// Pattern is the detected typing pattern for one burst.
type Pattern int

const (
	// PatternUnknown means the burst could not be classified.
	PatternUnknown Pattern = iota
	// PatternChord means multiple characters entered in one near-simultaneous action.
	PatternChord
	// PatternSequential means characters entered one keystroke at a time.
	PatternSequential
)

// String returns the lowercase pattern name.
func (p Pattern) String() string {
	switch p {
	case PatternChord:
		return "chord"
	case PatternSequential:
		return "sequential"
	default:
		return "unknown"
	}
}

// KeystrokeEvent is one recorded character with its monotonic timestamp.
type KeystrokeEvent struct {
	Char        rune
	TimestampMs int64
}

// Result is the outcome of classifying one burst.
// UsedChord is a derived view: it is true exactly when Pattern is PatternChord.
type Result struct {
	UsedChord  bool
	Pattern    Pattern
	Confidence float64
	Reason     string
}

func resultFor(pattern Pattern, confidence float64, reason string) Result {
	return Result{
		UsedChord:  pattern == PatternChord,
		Pattern:    pattern,
		Confidence: confidence,
		Reason:     reason,
	}
}

// ClassifyDuration classifies a burst from its target word, the raw captured
// input, and an optional measured duration. A nil durationMs means no timing
// was measured and only structural heuristics apply. The first matching rule
// wins.
func ClassifyDuration(word, rawInput string, durationMs *int64) Result {
	if durationMs != nil {
		d := *durationMs
		if d < ChordThresholdMs {
			return resultFor(PatternChord, 0.95,
				fmt.Sprintf("entered in %dms, under the %dms chord threshold", d, ChordThresholdMs))
		}
		// The ratio rule needs a non-empty word: expected time would be zero.
		if n := utf8.RuneCountInString(word); n > 0 {
			expected := int64(n) * SequentialThresholdMs
			ratio := float64(d) / float64(expected)
			if ratio < chordRatioCutoff {
				return resultFor(PatternChord, 0.85,
					fmt.Sprintf("entered in %.0f%% of expected sequential time", ratio*100))
			}
		}
		return resultFor(PatternSequential, 0.8,
			fmt.Sprintf("entered in %dms, consistent with sequential typing", d))
	}
	if rawInput == word || rawInput == word+" " {
		return resultFor(PatternChord, 0.7,
			"full word appeared at once with an immediate trailing delimiter")
	}
	return resultFor(PatternUnknown, 0.5, "no timing data available")
}

// ClassifyEvents classifies a burst from its per-character timestamped
// events. The input may be unsorted; the caller's slice is never mutated.
func ClassifyEvents(events []KeystrokeEvent) Result {
	if len(events) == 0 {
		return resultFor(PatternUnknown, 0, "no events")
	}
	if len(events) == 1 {
		return resultFor(PatternSequential, 0.9, "single character is sequential by definition")
	}

	sorted := make([]KeystrokeEvent, len(events))
	copy(sorted, events)
	// Stable so simultaneous chord keys keep recording order.
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TimestampMs < sorted[j].TimestampMs
	})

	totalDuration := sorted[len(sorted)-1].TimestampMs - sorted[0].TimestampMs
	if totalDuration < ChordThresholdMs {
		return resultFor(PatternChord, 0.95,
			fmt.Sprintf("%d characters in %dms", len(sorted), totalDuration))
	}

	var sum, maxInterval int64
	for i := 1; i < len(sorted); i++ {
		interval := sorted[i].TimestampMs - sorted[i-1].TimestampMs
		sum += interval
		if interval > maxInterval {
			maxInterval = interval
		}
	}
	avgInterval := float64(sum) / float64(len(sorted)-1)

	switch {
	case avgInterval < ChordThresholdMs/2 && maxInterval < ChordThresholdMs:
		return resultFor(PatternChord, 0.85,
			fmt.Sprintf("average interval %.1fms between keys", avgInterval))
	case avgInterval >= SequentialThresholdMs:
		return resultFor(PatternSequential, 0.85,
			fmt.Sprintf("average interval %.1fms between keys", avgInterval))
	default:
		return resultFor(PatternUnknown, 0.5,
			fmt.Sprintf("average interval %.1fms is ambiguous", avgInterval))
	}
}
