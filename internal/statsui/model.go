// Package statsui provides the Bubble Tea stats interface.
package statsui

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/venn-dev/chordly/internal/model"
	"github.com/venn-dev/chordly/internal/stats"
	"github.com/venn-dev/chordly/internal/store"
)

const (
	tabOverview = iota
	tabSessions
	tabChars
)

const plotHeight = 10

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
)

// Model implements the Bubble Tea stats UI.
type Model struct {
	store *store.Store
	cfg   model.StatsConfig

	report stats.Report
	errMsg string

	tabs      []string
	activeTab int

	charSelection []string

	overviewVP   viewport.Model
	charsVP      viewport.Model
	sessionTable table.Model

	detailVP      viewport.Model
	showingDetail bool
	detailID      int64

	width  int
	height int
}

// NewModel constructs a stats UI model.
func NewModel(st *store.Store, cfg model.StatsConfig) *Model {
	m := &Model{
		store: st,
		cfg:   cfg,
		tabs:  []string{"Overview", "Sessions", "Characters"},
	}
	m.charSelection = parseChars(cfg.Chars)
	m.overviewVP = viewport.New(80, 20)
	m.charsVP = viewport.New(80, 20)
	m.detailVP = viewport.New(80, 20)
	m.initSessionTable()
	m.refreshReport()
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
		m.updateLayout()
		m.renderTabContents()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.String() == "q" {
			return m, tea.Quit
		}
		if m.showingDetail {
			return m.updateDetail(msg)
		}
		switch msg.String() {
		case "left", "h":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "=":
			m.cfg.CurveWindow = m.cfg.CurveWindow + 5
			m.refreshReport()
			return m, nil
		case "-":
			if m.cfg.CurveWindow > 5 {
				m.cfg.CurveWindow -= 5
				m.refreshReport()
			}
			return m, nil
		case "enter":
			if m.activeTab == tabSessions {
				m.openDetail()
				return m, tea.ClearScreen
			}
			return m, nil
		}
		return m.updateActiveTab(msg)
	default:
		return m, nil
	}
}

func (m *Model) updateActiveTab(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.activeTab {
	case tabOverview:
		m.overviewVP, cmd = m.overviewVP.Update(msg)
	case tabSessions:
		m.sessionTable, cmd = m.sessionTable.Update(msg)
	case tabChars:
		m.charsVP, cmd = m.charsVP.Update(msg)
	}
	return m, cmd
}

func (m *Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		m.showingDetail = false
		return m, tea.ClearScreen
	}
	var cmd tea.Cmd
	m.detailVP, cmd = m.detailVP.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(m.renderNav())
	b.WriteString("\n")
	if m.errMsg != "" {
		b.WriteString(errorStyle.Render(m.errMsg))
		b.WriteString("\n")
	}
	if m.showingDetail {
		b.WriteString(m.detailVP.View())
		b.WriteString("\n")
		b.WriteString(headerStyle.Render("esc: back  ↑/↓: scroll  q: quit"))
		return b.String()
	}
	switch m.activeTab {
	case tabOverview:
		b.WriteString(m.overviewVP.View())
	case tabSessions:
		b.WriteString(m.sessionTable.View())
	case tabChars:
		b.WriteString(m.charsVP.View())
	}
	b.WriteString("\n")
	b.WriteString(headerStyle.Render("←/→: tabs  enter: session detail  =/-: curve window  q: quit"))
	return b.String()
}

func (m *Model) renderNav() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) moveTab(delta int) {
	m.activeTab += delta
	if m.activeTab < 0 {
		m.activeTab = len(m.tabs) - 1
	}
	if m.activeTab >= len(m.tabs) {
		m.activeTab = 0
	}
}

func (m *Model) initSessionTable() {
	columns := []table.Column{
		{Title: "Date", Width: 19},
		{Title: "WPM", Width: 7},
		{Title: "Accuracy", Width: 9},
		{Title: "Chord %", Width: 8},
		{Title: "Duration", Width: 9},
	}
	m.sessionTable = table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Foreground(lipgloss.Color("#C89A3A"))
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("#F0F0F0")).Background(lipgloss.Color("#3A3A3A"))
	m.sessionTable.SetStyles(styles)
}

func (m *Model) refreshReport() {
	report, err := stats.BuildReport(context.Background(), m.store, m.cfg)
	if err != nil {
		m.errMsg = fmt.Sprintf("failed to load stats: %v", err)
		return
	}
	m.errMsg = ""
	m.report = report
	m.fillSessionTable()
	m.renderTabContents()
}

func (m *Model) fillSessionTable() {
	rows := make([]table.Row, 0, len(m.report.Sessions))
	// Newest first for browsing.
	for i := len(m.report.Sessions) - 1; i >= 0; i-- {
		s := m.report.Sessions[i]
		wpm, _, acc := stats.SessionMetrics(s.Correct, s.Incorrect, s.DurationMs)
		rows = append(rows, table.Row{
			s.EndedAt.Local().Format("2006-01-02 15:04:05"),
			fmt.Sprintf("%.1f", wpm),
			fmt.Sprintf("%.1f%%", acc*100),
			fmt.Sprintf("%.0f%%", stats.ChordShare(s.ChordWords, s.SequentialWords)*100),
			(time.Duration(s.DurationMs) * time.Millisecond).Truncate(time.Second).String(),
		})
	}
	m.sessionTable.SetRows(rows)
}

func (m *Model) renderTabContents() {
	width := m.width
	if width <= 0 {
		width = 80
	}

	var overview bytes.Buffer
	if err := stats.RenderSummary(&overview, m.report.Sessions); err != nil {
		m.errMsg = fmt.Sprintf("failed to render summary: %v", err)
	}
	if err := stats.RenderCurvesWithSize(&overview, m.report.Sessions, m.cfg.CurveWindow, width, plotHeight, false); err != nil {
		m.errMsg = fmt.Sprintf("failed to render curves: %v", err)
	}
	m.overviewVP.SetContent(overview.String())

	var chars bytes.Buffer
	if err := stats.RenderCharTable(&chars, m.report.CharAggsWindow); err != nil {
		m.errMsg = fmt.Sprintf("failed to render char table: %v", err)
	}
	selection := m.charSelection
	if len(selection) == 0 {
		selection = stats.TopCharsByFrequency(m.report.CharAggsAll, 5)
	}
	if len(selection) > 0 {
		perSession, err := m.store.ListCharStatsForSessions(context.Background(), m.report.WindowSessionIDs, selection)
		if err != nil {
			m.errMsg = fmt.Sprintf("failed to load char stats: %v", err)
		} else if err := stats.RenderCharCurvesWithSize(&chars, m.report.Sessions, perSession, selection, m.cfg.CurveWindow, width, plotHeight, false); err != nil {
			m.errMsg = fmt.Sprintf("failed to render char curves: %v", err)
		}
	}
	m.charsVP.SetContent(chars.String())
}

func (m *Model) openDetail() {
	idx := m.sessionTable.Cursor()
	if idx < 0 || idx >= len(m.report.Sessions) {
		return
	}
	// Table rows are newest-first, sessions oldest-first.
	session := m.report.Sessions[len(m.report.Sessions)-1-idx]
	words, err := m.store.ListSessionWords(context.Background(), session.SessionID)
	if err != nil {
		m.errMsg = fmt.Sprintf("failed to load session words: %v", err)
		return
	}
	var buf bytes.Buffer
	wpm, cpm, acc := stats.SessionMetrics(session.Correct, session.Incorrect, session.DurationMs)
	fmt.Fprintf(&buf, "Session %d (%s)\n", session.SessionID, session.EndedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&buf, "WPM %.1f  CPM %.1f  Accuracy %.1f%%\n", wpm, cpm, acc*100)
	fmt.Fprintf(&buf, "Chorded %d  Sequential %d  Unclassified %d\n\n", session.ChordWords, session.SequentialWords, session.UnknownWords)
	if err := stats.RenderWordTable(&buf, words); err != nil {
		m.errMsg = fmt.Sprintf("failed to render word table: %v", err)
		return
	}
	m.detailVP.SetContent(buf.String())
	m.detailVP.GotoTop()
	m.detailID = session.SessionID
	m.showingDetail = true
}

func parseChars(input string) []string {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil
	}
	if strings.Contains(input, ",") {
		parts := strings.Split(input, ",")
		out := make([]string, 0, len(parts))
		for _, part := range parts {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			out = append(out, part)
		}
		return out
	}
	out := make([]string, 0, len([]rune(input)))
	for _, r := range input {
		out = append(out, string(r))
	}
	return out
}

func (m *Model) updateLayout() {
	contentHeight := m.height - 5
	if contentHeight < 5 {
		contentHeight = 5
	}
	width := m.width
	if width < 20 {
		width = 20
	}
	m.overviewVP.Width = width
	m.overviewVP.Height = contentHeight
	m.charsVP.Width = width
	m.charsVP.Height = contentHeight
	m.detailVP.Width = width
	m.detailVP.Height = contentHeight
	m.sessionTable.SetHeight(contentHeight)
}
