package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/venn-dev/chordly/internal/model"
)

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "chordly.db")
	st, err := Open(dbPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st, dbPath
}

func TestInsertAndListSessionWords(t *testing.T) {
	st, _ := openTestStore(t)
	ctx := context.Background()

	start := time.Unix(0, 0)
	end := start.Add(30 * time.Second)
	stats := model.SessionStats{
		StartedAt:         start,
		EndedAt:           end,
		Lang:              "en",
		Words:             3,
		PunctSet:          ".,?!",
		WordListPath:      "dummy",
		CorrectNonSpace:   11,
		IncorrectNonSpace: 1,
		DurationMs:        end.Sub(start).Milliseconds(),
		ChordWords:        2,
		SequentialWords:   1,
	}
	chars := []model.CharStats{
		{Char: "t", Correct: 3, Incorrect: 0, LatencySumMs: 210, LatencyCount: 2},
		{Char: "h", Correct: 2, Incorrect: 1},
	}
	words := []model.WordStats{
		{Word: "the", Pattern: "chord", Confidence: 0.95, DurationMs: 12, Keystrokes: 3},
		{Word: "quick", Pattern: "sequential", Confidence: 0.85, DurationMs: 620, Keystrokes: 5},
		{Word: "and", Pattern: "chord", Confidence: 0.85, DurationMs: 95, Keystrokes: 3},
	}

	id, err := st.InsertSession(ctx, stats, chars, words)
	if err != nil {
		t.Fatalf("insert session: %v", err)
	}

	sessions, err := st.ListSessions(ctx, model.StatsConfig{Lang: "en"})
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("expected 1 session, got %d", len(sessions))
	}
	got := sessions[0]
	if got.SessionID != id {
		t.Fatalf("session id: got %d, want %d", got.SessionID, id)
	}
	if got.ChordWords != 2 || got.SequentialWords != 1 || got.UnknownWords != 0 {
		t.Fatalf("unexpected word counts: %+v", got)
	}

	listed, err := st.ListSessionWords(ctx, id)
	if err != nil {
		t.Fatalf("list session words: %v", err)
	}
	if len(listed) != 3 {
		t.Fatalf("expected 3 words, got %d", len(listed))
	}
	if listed[0].Word != "the" || listed[0].Pattern != "chord" || listed[0].Confidence != 0.95 {
		t.Fatalf("unexpected first word row: %+v", listed[0])
	}
	if listed[1].Word != "quick" || listed[2].Word != "and" {
		t.Fatalf("word order not preserved: %+v", listed)
	}
}

func TestListSessionsLangFilter(t *testing.T) {
	st, _ := openTestStore(t)
	ctx := context.Background()

	for _, lang := range []string{"en", "de"} {
		stats := model.SessionStats{
			StartedAt:    time.Unix(0, 0),
			EndedAt:      time.Unix(60, 0),
			Lang:         lang,
			Words:        5,
			PunctSet:     ".",
			WordListPath: "dummy",
			DurationMs:   60000,
		}
		if _, err := st.InsertSession(ctx, stats, nil, nil); err != nil {
			t.Fatalf("insert session: %v", err)
		}
	}

	sessions, err := st.ListSessions(ctx, model.StatsConfig{Lang: "de"})
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("expected 1 de session, got %d", len(sessions))
	}
}

func TestTipFlagsSurviveReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "chordly.db")
	st, err := Open(dbPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	ctx := context.Background()

	seen, err := st.TipSeen(ctx, "first-chord")
	if err != nil {
		t.Fatalf("tip seen: %v", err)
	}
	if seen {
		t.Fatalf("tip should not be seen in a fresh store")
	}
	if err := st.MarkTipSeen(ctx, "first-chord", time.Unix(100, 0)); err != nil {
		t.Fatalf("mark tip seen: %v", err)
	}
	// Marking again must not error.
	if err := st.MarkTipSeen(ctx, "first-chord", time.Unix(200, 0)); err != nil {
		t.Fatalf("mark tip seen twice: %v", err)
	}
	if err := st.Close(); err != nil {
		t.Fatalf("close store: %v", err)
	}

	st, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	seen, err = st.TipSeen(ctx, "first-chord")
	if err != nil {
		t.Fatalf("tip seen after reopen: %v", err)
	}
	if !seen {
		t.Fatalf("tip flag did not survive reopen")
	}

	ids, err := st.ListSeenTips(ctx)
	if err != nil {
		t.Fatalf("list seen tips: %v", err)
	}
	if len(ids) != 1 || ids[0] != "first-chord" {
		t.Fatalf("unexpected seen tips: %v", ids)
	}

	if err := st.ResetTips(ctx); err != nil {
		t.Fatalf("reset tips: %v", err)
	}
	seen, err = st.TipSeen(ctx, "first-chord")
	if err != nil {
		t.Fatalf("tip seen after reset: %v", err)
	}
	if seen {
		t.Fatalf("tip still marked after reset")
	}
}
