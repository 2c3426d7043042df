// Package tips provides chorded-entry coaching tips shown at most once each.
package tips

import (
	"context"
	"sort"
	"time"

	"github.com/venn-dev/chordly/internal/chord"
)

// Tip is one coaching message from the catalog.
type Tip struct {
	ID    string
	Title string
	Body  string
}

// Flags is the durable shown-flag set backing the service.
type Flags interface {
	TipSeen(ctx context.Context, tipID string) (bool, error)
	MarkTipSeen(ctx context.Context, tipID string, shownAt time.Time) error
}

// Catalog tip IDs.
const (
	TipFirstChord     = "first-chord"
	TipAmbiguousBurst = "ambiguous-burst"
	TipSlowSequential = "slow-sequential"
	TipChordPractice  = "chord-practice"
)

var catalog = map[string]Tip{
	TipFirstChord: {
		ID:    TipFirstChord,
		Title: "First chord detected",
		Body:  "That word went in as a single chord. Chorded entry shines on short, frequent words.",
	},
	TipAmbiguousBurst: {
		ID:    TipAmbiguousBurst,
		Title: "Hard to tell",
		Body:  "That burst was neither clearly chorded nor clearly sequential. Settling into one style per word makes practice stats more useful.",
	},
	TipSlowSequential: {
		ID:    TipSlowSequential,
		Title: "Sequential typing",
		Body:  "You typed that word key by key. Short common words like 'the' and 'and' are good first chords to learn.",
	},
	TipChordPractice: {
		ID:    TipChordPractice,
		Title: "Keep chording",
		Body:  "Chords get faster with repetition. Mixing chorded and sequential entry in one session is normal while learning.",
	},
}

// chordStreakTarget is the number of consecutive chorded words that triggers
// the keep-chording tip.
const chordStreakTarget = 3

// Service hands out tips and tracks which were already shown. Construct one
// at the composition root and pass it down; there is no package-level
// instance.
type Service struct {
	flags       Flags
	enabled     bool
	now         func() time.Time
	chordStreak int
}

// NewService returns a tip service over the given flag store.
func NewService(flags Flags, enabled bool) *Service {
	return &Service{flags: flags, enabled: enabled, now: time.Now}
}

// Enabled reports whether tips are shown at all.
func (s *Service) Enabled() bool {
	return s.enabled
}

// SetEnabled turns tip display on or off for this service instance.
func (s *Service) SetEnabled(enabled bool) {
	s.enabled = enabled
}

// Lookup returns the catalog tip for an ID.
func (s *Service) Lookup(id string) (Tip, bool) {
	tip, ok := catalog[id]
	return tip, ok
}

// All returns the full catalog sorted by tip ID.
func (s *Service) All() []Tip {
	out := make([]Tip, 0, len(catalog))
	for _, tip := range catalog {
		out = append(out, tip)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out
}

// Seen reports whether a tip was already shown.
func (s *Service) Seen(ctx context.Context, id string) (bool, error) {
	return s.flags.TipSeen(ctx, id)
}

// MarkSeen records a tip as shown.
func (s *Service) MarkSeen(ctx context.Context, id string) error {
	return s.flags.MarkTipSeen(ctx, id, s.now())
}

// Next returns the tip triggered by a classification result if it is enabled,
// exists, and has not been shown yet. It marks the tip as shown before
// returning it.
func (s *Service) Next(ctx context.Context, result chord.Result) (Tip, bool, error) {
	if !s.enabled {
		return Tip{}, false, nil
	}
	if result.Pattern == chord.PatternChord {
		s.chordStreak++
	} else {
		s.chordStreak = 0
	}
	id := s.triggerFor(result)
	if id == "" {
		return Tip{}, false, nil
	}
	tip, ok := catalog[id]
	if !ok {
		return Tip{}, false, nil
	}
	seen, err := s.flags.TipSeen(ctx, id)
	if err != nil {
		return Tip{}, false, err
	}
	if seen {
		return Tip{}, false, nil
	}
	if err := s.flags.MarkTipSeen(ctx, id, s.now()); err != nil {
		return Tip{}, false, err
	}
	return tip, true, nil
}

func (s *Service) triggerFor(result chord.Result) string {
	switch result.Pattern {
	case chord.PatternChord:
		if s.chordStreak >= chordStreakTarget {
			return TipChordPractice
		}
		return TipFirstChord
	case chord.PatternSequential:
		return TipSlowSequential
	default:
		if result.Confidence > 0 {
			return TipAmbiguousBurst
		}
		return ""
	}
}
