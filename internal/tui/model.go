// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/venn-dev/chordly/internal/chord"
	"github.com/venn-dev/chordly/internal/generator"
	"github.com/venn-dev/chordly/internal/model"
	statsPkg "github.com/venn-dev/chordly/internal/stats"
	"github.com/venn-dev/chordly/internal/store"
	"github.com/venn-dev/chordly/internal/tips"
)

type charStat struct {
	correct      int
	incorrect    int
	latencySumMs int64
	latencyCount int64
}

// Model implements the Bubble Tea typing UI.
type Model struct {
	config            model.Config
	store             *store.Store
	gen               *generator.Generator
	tips              *tips.Service
	words             []string
	wordListPath      string
	punctSet          []rune
	weakSet           map[rune]struct{}
	weakNoticePrinted bool

	width  int
	height int

	targetRunes []rune
	inputRunes  []rune
	wordRanges  []wordRange

	tracker      *chord.Tracker
	typedWord    []rune
	wordPatterns []chord.Pattern
	wordStats    []model.WordStats

	started       bool
	startedAt     time.Time
	prevCorrectAt time.Time

	correctNonSpace   int
	incorrectNonSpace int
	charStats         map[rune]*charStat

	lastResult *chord.Result
	tipLine    string

	lastWPM float64
	lastAcc float64
	hasLast bool

	allWPM       float64
	allAcc       float64
	allCorrect   int
	allIncorrect int
	allDuration  int64
}

var (
	correctStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	incorrectStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	currentWordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	chordWordStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#56B6C2"))
	unknownWordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#A0A0A0"))
	cursorStyle      = pendingStyle.Copy().Underline(true)
	footerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	tipStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
)

// NewModel constructs a typing TUI model.
func NewModel(cfg model.Config, store *store.Store, gen *generator.Generator, tipSvc *tips.Service, words []string, wordListPath string, punctSet []rune, weakSet map[rune]struct{}, weakNoticePrinted bool) *Model {
	m := &Model{
		config:            cfg,
		store:             store,
		gen:               gen,
		tips:              tipSvc,
		tracker:           chord.NewTracker(nil),
		words:             words,
		wordListPath:      wordListPath,
		punctSet:          punctSet,
		weakSet:           weakSet,
		weakNoticePrinted: weakNoticePrinted,
	}
	m.resetSession()
	m.loadFooterStats()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyBackspace, tea.KeyDelete:
			m.handleBackspace()
			return m, nil
		case tea.KeySpace:
			m.handleRunes([]rune{' '})
			return m, nil
		case tea.KeyRunes:
			m.handleRunes(msg.Runes)
			return m, nil
		default:
			return m, nil
		}
	default:
		return m, nil
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if len(m.targetRunes) == 0 {
		return ""
	}
	cursorIndex := -1
	if len(m.inputRunes) < len(m.targetRunes) {
		cursorIndex = len(m.inputRunes)
	}
	styledRunes := buildStyledRunes(m.targetRunes, m.inputRunes, cursorIndex, m.wordPatterns)
	if m.width == 0 || m.height == 0 {
		return renderStyledRunes(styledRunes)
	}
	contentWidth := int(float64(m.width) * 0.70)
	if contentWidth < 1 {
		contentWidth = 1
	}
	wrapped := wrapStyledRunes(styledRunes, contentWidth)
	content := lipgloss.NewStyle().Width(contentWidth).Render(wrapped)

	extraLines := []string{}
	if footer := m.renderFooter(); footer != "" {
		extraLines = append(extraLines, footer)
	}
	if m.tipLine != "" {
		extraLines = append(extraLines, tipStyle.Render(m.tipLine))
	}
	if len(extraLines) == 0 || m.height < 2+len(extraLines) {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	bodyHeight := m.height - len(extraLines)
	body := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, content)
	var b strings.Builder
	b.WriteString(body)
	for _, line := range extraLines {
		b.WriteString("\n")
		b.WriteString(lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, line))
	}
	return b.String()
}

func (m *Model) handleBackspace() {
	if len(m.inputRunes) == 0 {
		return
	}
	pos := len(m.inputRunes) - 1
	m.inputRunes = m.inputRunes[:pos]
	if m.targetRunes[pos] != ' ' && len(m.typedWord) > 0 {
		m.typedWord = m.typedWord[:len(m.typedWord)-1]
	}
}

func (m *Model) handleRunes(runes []rune) {
	for _, r := range runes {
		if len(m.inputRunes) >= len(m.targetRunes) {
			return
		}
		if !m.started {
			m.started = true
			m.startedAt = time.Now()
		}
		pos := len(m.inputRunes)
		expected := m.targetRunes[pos]
		m.inputRunes = append(m.inputRunes, r)
		m.updateStats(expected, r)
		if expected == ' ' {
			m.completeWord()
		} else {
			m.tracker.RecordKeystroke(r)
			m.typedWord = append(m.typedWord, r)
		}
		if len(m.inputRunes) == len(m.targetRunes) {
			m.completeWord()
			m.finishSession()
			m.resetSession()
		}
	}
}

// completeWord classifies the burst accumulated for the word just finished
// and resets the tracker for the next one.
func (m *Model) completeWord() {
	wordIdx := len(m.wordStats)
	if wordIdx >= len(m.wordRanges) {
		return
	}
	rng := m.wordRanges[wordIdx]
	wordText := string(m.targetRunes[rng.start:rng.end])

	durationMs := m.tracker.Duration()
	keystrokes := m.tracker.KeystrokeCount()
	result := m.tracker.Complete()
	if result.Pattern == chord.PatternUnknown && keystrokes > 0 {
		// Second opinion from the duration heuristics for ambiguous bursts.
		if fallback := chord.ClassifyDuration(wordText, string(m.typedWord), &durationMs); fallback.Confidence > result.Confidence {
			result = fallback
		}
	}

	m.wordPatterns = append(m.wordPatterns, result.Pattern)
	m.wordStats = append(m.wordStats, model.WordStats{
		Word:       wordText,
		Pattern:    result.Pattern.String(),
		Confidence: result.Confidence,
		DurationMs: durationMs,
		Keystrokes: keystrokes,
	})
	m.lastResult = &result
	m.typedWord = m.typedWord[:0]

	m.maybeShowTip(result)
}

func (m *Model) maybeShowTip(result chord.Result) {
	if m.tips == nil {
		return
	}
	tip, ok, err := m.tips.Next(context.Background(), result)
	if err != nil {
		logErrf("failed to load tip: %v\n", err)
		return
	}
	if ok {
		m.tipLine = fmt.Sprintf("Tip (%s): %s", tip.Title, tip.Body)
	}
}

func (m *Model) loadFooterStats() {
	ctx := context.Background()
	sessions, err := m.store.ListSessions(ctx, model.StatsConfig{Lang: m.config.Lang})
	if err != nil {
		logErrf("failed to load session stats: %v\n", err)
		return
	}
	if len(sessions) == 0 {
		return
	}
	last := sessions[len(sessions)-1]
	wpm, _, acc := statsPkg.SessionMetrics(last.Correct, last.Incorrect, last.DurationMs)
	m.lastWPM = wpm
	m.lastAcc = acc
	m.hasLast = true

	for _, s := range sessions {
		m.allCorrect += s.Correct
		m.allIncorrect += s.Incorrect
		m.allDuration += s.DurationMs
	}
	m.recomputeAllTime()
}

func (m *Model) recomputeAllTime() {
	wpm, _, acc := statsPkg.SessionMetrics(m.allCorrect, m.allIncorrect, m.allDuration)
	m.allWPM = wpm
	m.allAcc = acc
}

func (m *Model) renderFooter() string {
	if len(m.targetRunes) == 0 {
		return ""
	}
	progress := 0
	if len(m.targetRunes) > 0 {
		progress = int(float64(len(m.inputRunes)) / float64(len(m.targetRunes)) * 100)
	}
	segments := []string{fmt.Sprintf("Progress %d%%", progress)}
	if m.lastResult != nil {
		segments = append(segments, fmt.Sprintf("Word: %s %.2f", m.lastResult.Pattern, m.lastResult.Confidence))
	}
	if chordCount, seqCount := m.patternCounts(); chordCount+seqCount > 0 {
		segments = append(segments, fmt.Sprintf("Chorded %.0f%%", statsPkg.ChordShare(chordCount, seqCount)*100))
	}
	if m.hasLast {
		segments = append(segments, fmt.Sprintf("Last %.1f WPM · %.1f%%", m.lastWPM, m.lastAcc*100))
	}
	segments = append(segments, fmt.Sprintf("All-time %.1f WPM · %.1f%%", m.allWPM, m.allAcc*100))
	footer := strings.Join(segments, "  ")
	return footerStyle.Render(footer)
}

func (m *Model) patternCounts() (chordCount, sequentialCount int) {
	for _, p := range m.wordPatterns {
		switch p {
		case chord.PatternChord:
			chordCount++
		case chord.PatternSequential:
			sequentialCount++
		}
	}
	return chordCount, sequentialCount
}

func (m *Model) updateStats(expected, typed rune) {
	if expected == ' ' {
		return
	}
	entry := m.charEntry(expected)
	if typed == expected {
		m.correctNonSpace++
		entry.correct++
		now := time.Now()
		if !m.prevCorrectAt.IsZero() {
			delta := now.Sub(m.prevCorrectAt)
			entry.latencySumMs += delta.Milliseconds()
			entry.latencyCount++
		}
		m.prevCorrectAt = now
		return
	}
	m.incorrectNonSpace++
	entry.incorrect++
}

func (m *Model) charEntry(expected rune) *charStat {
	if m.charStats == nil {
		m.charStats = map[rune]*charStat{}
	}
	entry, ok := m.charStats[expected]
	if !ok {
		entry = &charStat{}
		m.charStats[expected] = entry
	}
	return entry
}

func (m *Model) resetSession() {
	m.inputRunes = nil
	m.started = false
	m.startedAt = time.Time{}
	m.prevCorrectAt = time.Time{}
	m.correctNonSpace = 0
	m.incorrectNonSpace = 0
	m.charStats = map[rune]*charStat{}
	m.tracker.Reset()
	m.typedWord = nil
	m.wordPatterns = nil
	m.wordStats = nil
	m.tipLine = ""

	text := m.generateText()
	m.targetRunes = []rune(text)
	m.wordRanges = findWords(m.targetRunes)
}

func (m *Model) generateText() string {
	var words []string
	if m.config.FocusWeak && len(m.weakSet) > 0 {
		words = m.gen.GenerateWeighted(m.words, m.config.Words, m.config.CapsPct, m.config.PunctPct, m.punctSet, m.weakSet, m.config.WeakFactor)
	} else {
		words = m.gen.Generate(m.words, m.config.Words, m.config.CapsPct, m.config.PunctPct, m.punctSet)
	}
	return strings.Join(words, " ")
}

func (m *Model) finishSession() {
	if !m.started {
		return
	}
	endedAt := time.Now()
	chordCount, seqCount := m.patternCounts()
	stats := model.SessionStats{
		StartedAt:         m.startedAt,
		EndedAt:           endedAt,
		Lang:              m.config.Lang,
		Words:             m.config.Words,
		CapsPct:           m.config.CapsPct,
		PunctPct:          m.config.PunctPct,
		PunctSet:          m.config.PunctSet,
		WordListPath:      m.wordListPath,
		CorrectNonSpace:   m.correctNonSpace,
		IncorrectNonSpace: m.incorrectNonSpace,
		DurationMs:        endedAt.Sub(m.startedAt).Milliseconds(),
		ChordWords:        chordCount,
		SequentialWords:   seqCount,
		UnknownWords:      len(m.wordPatterns) - chordCount - seqCount,
	}

	charStats := make([]model.CharStats, 0, len(m.charStats))
	for ch, entry := range m.charStats {
		charStats = append(charStats, model.CharStats{
			Char:         string(ch),
			Correct:      entry.correct,
			Incorrect:    entry.incorrect,
			LatencySumMs: entry.latencySumMs,
			LatencyCount: entry.latencyCount,
		})
	}

	ctx := context.Background()
	if _, err := m.store.InsertSession(ctx, stats, charStats, m.wordStats); err != nil {
		logErrf("failed to save session: %v\n", err)
	}
	wpm, _, acc := statsPkg.SessionMetrics(stats.CorrectNonSpace, stats.IncorrectNonSpace, stats.DurationMs)
	m.lastWPM = wpm
	m.lastAcc = acc
	m.hasLast = true
	m.allCorrect += stats.CorrectNonSpace
	m.allIncorrect += stats.IncorrectNonSpace
	m.allDuration += stats.DurationMs
	m.recomputeAllTime()

	if m.config.FocusWeak {
		m.refreshWeakSet()
	}
}

func (m *Model) refreshWeakSet() {
	ctx := context.Background()
	aggs, err := m.store.GetWeakChars(ctx, m.config.WeakWindow, m.config.Lang)
	if err != nil {
		logErrf("failed to load weak chars: %v\n", err)
		return
	}
	if len(aggs) == 0 {
		if !m.weakNoticePrinted {
			logErrln("no stats available for weak-char focus yet; using normal generator")
			m.weakNoticePrinted = true
		}
		m.weakSet = map[rune]struct{}{}
		return
	}
	m.weakSet = statsPkg.SelectWeakChars(aggs, m.config.WeakTop)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
