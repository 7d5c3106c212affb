package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"ritualloop/internal/engine"
)

type boardModel struct {
	ctx    context.Context
	svc    *engine.Service
	userID string
	today  time.Time

	width  int
	height int

	rituals *engine.TodayRituals
	stats   *engine.RitualStats

	selected int
	lastLog  string
	loading  bool
	err      error
}

type loadedMsg struct {
	rituals *engine.TodayRituals
	stats   *engine.RitualStats
	err     error
}

type loggedMsg struct {
	id  string
	res *engine.LogResult
	err error
}

func newBoardModel(ctx context.Context, svc *engine.Service, userID string, today time.Time) boardModel {
	return boardModel{
		ctx:     ctx,
		svc:     svc,
		userID:  userID,
		today:   today,
		loading: true,
		lastLog: "Loaded.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m boardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		rituals, err := m.svc.Today(m.ctx, m.userID, m.today)
		if err != nil {
			return loadedMsg{err: err}
		}
		stats, err := m.svc.Stats(m.ctx, m.userID, m.today)
		if err != nil {
			return loadedMsg{err: err}
		}
		return loadedMsg{rituals: rituals, stats: stats}
	}
}

func (m boardModel) logCmd(ritualID string) tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.LogCompletion(m.ctx, engine.LogCompletionInput{
			UserID:   m.userID,
			RitualID: ritualID,
			At:       time.Now(),
			Day:      engine.FormatDay(m.today),
		})
		return loggedMsg{id: ritualID, res: res, err: err}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case loadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.lastLog = "Load failed: " + msg.err.Error()
			return m, nil
		}
		m.rituals = msg.rituals
		m.stats = msg.stats
		m.lastLog = fmt.Sprintf("Refreshed at %s.", time.Now().Format("15:04:05"))
		return m, nil
	case loggedMsg:
		if msg.err != nil {
			m.lastLog = "Log failed: " + msg.err.Error()
			return m, nil
		}
		note := fmt.Sprintf("Completed %s: streak %d", msg.id, msg.res.CurrentStreak)
		if len(msg.res.Crossed) > 0 {
			note += " — " + msg.res.Crossed[0].Label() + "!"
		}
		m.lastLog = note
		return m, m.loadCmd()
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.loading = true
			m.lastLog = "Refreshing…"
			return m, m.loadCmd()
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "j":
			if m.selected < len(m.rows())-1 {
				m.selected++
			}
			return m, nil
		case "c", " ":
			rows := m.rows()
			if m.selected < 0 || m.selected >= len(rows) {
				return m, nil
			}
			row := rows[m.selected]
			if row.completed {
				m.lastLog = "Already done today."
				return m, nil
			}
			m.lastLog = fmt.Sprintf("Completing %s…", row.id)
			return m, m.logCmd(row.id)
		}
	}
	return m, nil
}

type ritualRow struct {
	id        string
	scope     string
	tags      []string
	global    bool
	completed bool
}

func (m boardModel) rows() []ritualRow {
	if m.rituals == nil {
		return nil
	}
	var out []ritualRow
	if g := m.rituals.GlobalRitual; g != nil {
		out = append(out, ritualRow{
			id:        g.ID,
			scope:     string(g.Scope),
			tags:      g.Tags,
			global:    true,
			completed: g.Completed,
		})
	}
	for _, r := range m.rituals.PersonalizedRituals {
		out = append(out, ritualRow{
			id:        r.ID,
			scope:     string(r.Scope),
			tags:      r.Tags,
			completed: r.Completed,
		})
	}
	return out
}

func (m boardModel) View() string {
	if m.err != nil {
		return "Error: " + m.err.Error() + "\n\nPress q to quit.\n"
	}

	header := m.renderHeader()
	sidebar := m.renderSidebar()
	main := m.renderMain()
	footer := "\n" + m.lastLog

	// Simple 2-column layout.
	leftW := 26
	if m.width > 0 {
		maxLeft := m.width / 2
		if maxLeft < leftW {
			leftW = maxLeft
		}
		if leftW < 18 {
			leftW = 18
		}
	}

	linesLeft := strings.Split(sidebar, "\n")
	linesRight := strings.Split(main, "\n")
	max := len(linesLeft)
	if len(linesRight) > max {
		max = len(linesRight)
	}

	var body strings.Builder
	for i := 0; i < max; i++ {
		l, r := "", ""
		if i < len(linesLeft) {
			l = linesLeft[i]
		}
		if i < len(linesRight) {
			r = linesRight[i]
		}
		body.WriteString(padRight(l, leftW))
		body.WriteString("  ")
		body.WriteString(r)
		body.WriteString("\n")
	}

	return header + "\n" + body.String() + footer
}

func (m boardModel) renderHeader() string {
	if m.rituals == nil {
		return "Ritualloop — loading…"
	}
	streak := 0
	if m.stats != nil {
		streak = m.stats.CurrentStreak
	}
	return fmt.Sprintf("Ritualloop | %s | User: %s | Streak %d", m.rituals.Date, m.userID, streak)
}

func (m boardModel) renderSidebar() string {
	lines := []string{"Stats"}
	if m.stats == nil {
		lines = append(lines, "Loading…")
	} else {
		lines = append(lines, fmt.Sprintf("- streak: %d", m.stats.CurrentStreak))
		lines = append(lines, fmt.Sprintf("- longest: %d", m.stats.LongestStreak))
		lines = append(lines, fmt.Sprintf("- total: %d", m.stats.TotalCompletions))
		lines = append(lines, fmt.Sprintf("- trend: %s", m.stats.Trend))
		if m.stats.BestDay != "" {
			lines = append(lines, fmt.Sprintf("- best day: %s", m.stats.BestDay))
		}
	}
	lines = append(lines, "")
	lines = append(lines, "Keys")
	lines = append(lines, "- ↑/↓ or j/k: move")
	lines = append(lines, "- c/space: complete")
	lines = append(lines, "- r: refresh")
	lines = append(lines, "- q: quit")
	return strings.Join(lines, "\n")
}

func (m boardModel) renderMain() string {
	if m.loading {
		return "Loading…"
	}
	rows := m.rows()
	out := []string{"Today's Rituals"}
	if len(rows) == 0 {
		out = append(out, "(nothing due today)")
		return strings.Join(out, "\n")
	}
	for i, row := range rows {
		cursor := "  "
		if i == m.selected {
			cursor = "> "
		}
		slot := "   "
		if row.global {
			slot = "[G]"
		}
		mark := " "
		if row.completed {
			mark = "✓"
		}
		tags := ""
		if len(row.tags) > 0 {
			tags = " #" + strings.Join(row.tags, " #")
		}
		out = append(out, fmt.Sprintf("%s%s %s %s%s (%s)", cursor, slot, mark, row.id, tags, row.scope))
	}
	return strings.Join(out, "\n")
}

func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) >= width {
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}
