package tui

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"levelup/internal/engine"
)

type boardModel struct {
	ctx context.Context
	svc *engine.Service

	width  int
	height int

	snap     *engine.Snapshot
	selected int

	lastLog string
	loading bool
	err     error
}

type loadedMsg struct {
	snap *engine.Snapshot
	err  error
}

type toggledMsg struct {
	id  string
	res *engine.CompleteResult
	err error
}

func newBoardModel(ctx context.Context, svc *engine.Service) boardModel {
	return boardModel{
		ctx:     ctx,
		svc:     svc,
		loading: true,
		lastLog: "Loaded.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m boardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		snap, err := m.svc.Snapshot(m.ctx)
		return loadedMsg{snap: snap, err: err}
	}
}

func (m boardModel) toggleCmd(id string, done bool) tea.Cmd {
	return func() tea.Msg {
		if done {
			res, err := m.svc.Uncomplete(m.ctx, id)
			return toggledMsg{id: id, res: res, err: err}
		}
		res, err := m.svc.Complete(m.ctx, id)
		return toggledMsg{id: id, res: res, err: err}
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
		m.snap = msg.snap
		m.lastLog = fmt.Sprintf("Refreshed at %s.", time.Now().Format("15:04:05"))
		return m, nil
	case toggledMsg:
		if msg.err != nil {
			// Completing a quest that is already done today is fine.
			if errors.Is(msg.err, engine.ErrAlreadyCompleted) {
				return m, m.loadCmd()
			}
			m.lastLog = "Toggle failed: " + msg.err.Error()
			return m, nil
		}
		if msg.res.XPDelta >= 0 {
			m.lastLog = fmt.Sprintf("%s: +%d XP, +%d coins", msg.res.Title, msg.res.XPDelta, msg.res.CoinsDelta)
			if msg.res.LevelUp {
				m.lastLog += fmt.Sprintf(" — level %d!", msg.res.LevelAfter)
			}
		} else {
			m.lastLog = fmt.Sprintf("%s undone: %d XP, %d coins", msg.res.Title, msg.res.XPDelta, msg.res.CoinsDelta)
		}
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
			if m.selected < len(m.questRows())-1 {
				m.selected++
			}
			return m, nil
		case "c", " ", "enter":
			rows := m.questRows()
			if m.selected < 0 || m.selected >= len(rows) {
				return m, nil
			}
			row := rows[m.selected]
			m.lastLog = "Working…"
			return m, m.toggleCmd(row.id, row.done)
		}
	}
	return m, nil
}

type questRow struct {
	id       string
	title    string
	category string
	xp       int
	done     bool
}

func (m boardModel) questRows() []questRow {
	if m.snap == nil {
		return nil
	}
	done := map[string]bool{}
	for _, id := range m.snap.TodayCompleted {
		done[id] = true
	}

	rows := make([]questRow, 0, len(m.snap.Quests))
	for _, q := range m.snap.Quests {
		rows = append(rows, questRow{
			id:       q.ID,
			title:    q.Title,
			category: q.Category,
			xp:       q.XP,
			done:     done[q.ID],
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return categoryRank(rows[i].category) < categoryRank(rows[j].category)
	})
	return rows
}

func categoryRank(c string) int {
	switch c {
	case "Health":
		return 0
	case "Wealth":
		return 1
	case "Relationships":
		return 2
	default:
		return 3
	}
}

func (m boardModel) View() string {
	if m.err != nil {
		return "Error: " + m.err.Error() + "\n\nPress q to quit.\n"
	}

	header := m.renderHeader()
	sidebar := m.renderSidebar()
	main := m.renderMain()
	footer := "\n" + m.lastLog

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
		l := ""
		r := ""
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
	if m.snap == nil {
		return "LevelUp — loading…"
	}
	lvl := m.snap.Level
	bar := progressBar(m.snap.Stats.XP-lvl.CurrentLevelXP, lvl.NextLevelXP-lvl.CurrentLevelXP, 30)
	return fmt.Sprintf("LevelUp | %s | Level %d | XP %d %s | 🪙 %d | 🔥 %d",
		m.snap.Today, lvl.Level, m.snap.Stats.XP, bar, m.snap.Stats.Coins, m.snap.Stats.CurrentStreak)
}

func (m boardModel) renderSidebar() string {
	if m.snap == nil {
		return "Stats\n\nLoading…"
	}
	st := m.snap.Stats
	lines := []string{"Stats"}
	lines = append(lines, fmt.Sprintf("- Streak: %d (best %d)", st.CurrentStreak, st.BestStreak))
	lines = append(lines, fmt.Sprintf("- Vitality: %s", progressBar(st.Vitality, 100, 10)))
	lines = append(lines, fmt.Sprintf("- Mana:     %s", progressBar(st.Mana, 100, 10)))
	lines = append(lines, fmt.Sprintf("- Done today: %d/%d", len(m.snap.TodayCompleted), len(m.snap.Quests)))
	lines = append(lines, "")
	lines = append(lines, "Keys")
	lines = append(lines, "- ↑/↓ or j/k: move")
	lines = append(lines, "- c/space/enter: toggle")
	lines = append(lines, "- r: refresh")
	lines = append(lines, "- q: quit")
	return strings.Join(lines, "\n")
}

func (m boardModel) renderMain() string {
	if m.loading {
		return "Loading…"
	}
	rows := m.questRows()
	var out []string
	out = append(out, "Today's Quests")
	if len(rows) == 0 {
		out = append(out, "(no quests — add some with `lvl add`)")
		return strings.Join(out, "\n")
	}

	lastCategory := ""
	for i, row := range rows {
		if row.category != lastCategory {
			out = append(out, "")
			out = append(out, row.category)
			lastCategory = row.category
		}
		cursor := "  "
		if i == m.selected {
			cursor = "> "
		}
		check := "[ ]"
		if row.done {
			check = "[x]"
		}
		out = append(out, fmt.Sprintf("%s%s %s (xp=%d)", cursor, check, row.title, row.xp))
	}
	return strings.Join(out, "\n")
}

func progressBar(value int, total int, width int) string {
	if total <= 0 {
		total = 1
	}
	if width <= 3 {
		width = 3
	}
	if value < 0 {
		value = 0
	}
	if value > total {
		value = total
	}
	ratio := float64(value) / float64(total)
	filled := int(ratio * float64(width))
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
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
