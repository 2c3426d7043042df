package stats

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/venn-dev/chordly/internal/model"
	"github.com/venn-dev/chordly/internal/store"
)

func TestBuildReport(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "chordly.db")
	st, err := store.Open(dbPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})

	ctx := context.Background()
	var ids []int64
	for i := 0; i < 3; i++ {
		start := time.Unix(0, 0).Add(time.Duration(i) * time.Minute)
		end := start.Add(30 * time.Second)
		stats := model.SessionStats{
			StartedAt:         start,
			EndedAt:           end,
			Lang:              "en",
			Words:             10,
			CapsPct:           0,
			PunctPct:          0,
			PunctSet:          ".,?!",
			WordListPath:      "dummy",
			CorrectNonSpace:   10,
			IncorrectNonSpace: 1,
			DurationMs:        end.Sub(start).Milliseconds(),
			ChordWords:        6,
			SequentialWords:   4,
		}
		charStats := []model.CharStats{
			{Char: "a", Correct: 5, Incorrect: 0},
			{Char: "b", Correct: 4, Incorrect: 1},
		}
		words := []model.WordStats{
			{Word: "the", Pattern: "chord", Confidence: 0.95, DurationMs: 14, Keystrokes: 3},
		}
		id, err := st.InsertSession(ctx, stats, charStats, words)
		if err != nil {
			t.Fatalf("insert session: %v", err)
		}
		ids = append(ids, id)
	}

	cfg := model.StatsConfig{
		Lang:        "en",
		Last:        2,
		CurveWindow: 2,
		Chars:       "a,b",
	}
	report, err := BuildReport(ctx, st, cfg)
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if len(report.Sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(report.Sessions))
	}
	if report.Sessions[0].SessionID != ids[1] || report.Sessions[1].SessionID != ids[2] {
		t.Fatalf("unexpected session ids: %+v", report.Sessions)
	}
	if report.Sessions[0].ChordWords != 6 || report.Sessions[0].SequentialWords != 4 {
		t.Fatalf("chord word counts not loaded: %+v", report.Sessions[0])
	}
	if len(report.WindowSessionIDs) != 2 {
		t.Fatalf("expected 2 window session ids, got %d", len(report.WindowSessionIDs))
	}
	if len(report.CharAggsAll) == 0 {
		t.Fatalf("expected char aggregates for all sessions")
	}
	if len(report.CharAggsWindow) == 0 {
		t.Fatalf("expected char aggregates for window sessions")
	}
}

func TestSumChordTotals(t *testing.T) {
	sessions := []model.SessionAggregate{
		{ChordWords: 6, SequentialWords: 4},
		{ChordWords: 2, SequentialWords: 6, UnknownWords: 2},
	}
	totals := SumChordTotals(sessions)
	if totals.ChordWords != 8 || totals.SequentialWords != 10 || totals.UnknownWords != 2 {
		t.Fatalf("unexpected totals: %+v", totals)
	}
	if got := totals.Share(); got != 8.0/18.0 {
		t.Fatalf("Share() = %v, want %v", got, 8.0/18.0)
	}
	if got := SumChordTotals(nil).Share(); got != 0 {
		t.Fatalf("empty totals share = %v, want 0", got)
	}
}

func TestChordShare(t *testing.T) {
	cases := []struct {
		chord, sequential int
		want              float64
	}{
		{0, 0, 0},
		{5, 0, 1},
		{0, 5, 0},
		{3, 1, 0.75},
	}
	for _, tc := range cases {
		if got := ChordShare(tc.chord, tc.sequential); got != tc.want {
			t.Fatalf("ChordShare(%d, %d) = %v, want %v", tc.chord, tc.sequential, got, tc.want)
		}
	}
}
