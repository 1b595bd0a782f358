package app

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"focusflow/internal/modules/planner/dto"
	"focusflow/internal/ui/components"
	"focusflow/internal/ui/theme"
	routinesview "focusflow/internal/ui/views/routines"
	todayview "focusflow/internal/ui/views/today"
	weekview "focusflow/internal/ui/views/week"
)

// ─── ports ───────────────────────────────────────────────────────────────────

// Port is everything the orchestration layer calls directly. The
// sub-views narrow it further.
type Port interface {
	todayview.DayPort
	weekview.WeekPort
	routinesview.TemplatePort

	ActiveDay() int
	Regenerate(ctx context.Context, dayIndex int) (dto.DayOutput, error)
	ToggleWFH(ctx context.Context, dayIndex int) (dto.WeekDayOutput, error)
	ToggleCompleted(ctx context.Context, taskID string) (dto.CompletionOutput, error)
	AddTask(ctx context.Context, dayIndex int, title string, minutes int, taskType, startTime string) (dto.TaskOutput, error)
	AddWeekendPack(ctx context.Context, dayIndex int, pack string) ([]dto.TaskOutput, error)
	SetStartTime(ctx context.Context, taskID, startTime string) (dto.TaskChangeOutput, error)
	SetDuration(ctx context.Context, taskID string, minutes int) (dto.TaskChangeOutput, error)
	ApplyMood(ctx context.Context, dayIndex int, mood string) (dto.AdaptOutput, error)
	ToggleChaos(ctx context.Context, dayIndex int) (dto.AdaptOutput, error)
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabToday tabID = iota
	tabWeek
	tabRoutines
	tabCount
)

var tabLabels = [tabCount]string{"Today", "Week", "Routines"}

const confettiFor = 2 * time.Second

// ─── async messages ──────────────────────────────────────────────────────────

// actionDoneMsg reports a finished mutation; the views reload afterwards.
type actionDoneMsg struct {
	status string
	err    error
}

type celebrationMsg struct{ cue dto.CelebrationOutput }

type confettiDoneMsg struct{ seq int }

// ─── key bindings ────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
	Toggle  key.Binding
	Chaos   key.Binding
	Mood    key.Binding
	PrevDay key.Binding
	NextDay key.Binding
	Regen   key.Binding
	WFH     key.Binding
	Add     key.Binding
	Enter   key.Binding
	Reload  key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Toggle:  key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space/x", "toggle done")),
		Chaos:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "chaos mode")),
		Mood:    key.NewBinding(key.WithKeys("1", "2", "3"), key.WithHelp("1/2/3", "mood ko/normal/motivated")),
		PrevDay: key.NewBinding(key.WithKeys("["), key.WithHelp("[/]", "prev/next day")),
		NextDay: key.NewBinding(key.WithKeys("]"), key.WithHelp("[/]", "prev/next day")),
		Regen:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "regenerate day")),
		WFH:     key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "toggle office/wfh")),
		Add:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add task")),
		Enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open day")),
		Reload:  key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "reload")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Toggle, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Enter, k.PrevDay, k.NextDay},
		{k.Toggle, k.Add, k.Chaos, k.Mood},
		{k.Regen, k.WFH, k.Reload},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It routes keys between the tabs, runs
// planner mutations as commands and shows completion celebrations.
type Model struct {
	planner Port
	cues    <-chan dto.CelebrationOutput

	todayView    todayview.Model
	weekView     weekview.Model
	routinesView routinesview.Model

	activeTab   tabID
	keys        keyMap
	help        help.Model
	showHelp    bool
	palette     components.Palette
	status      string
	confetti    string
	confettiSeq int
	width       int
	height      int
}

// NewModel builds the UI around planner. cues may be nil when completion
// effects are not wanted.
func NewModel(planner Port, translate func(string) string, cues <-chan dto.CelebrationOutput) Model {
	return Model{
		planner:      planner,
		cues:         cues,
		todayView:    todayview.New(planner, translate, planner.ActiveDay()),
		weekView:     weekview.New(planner, translate),
		routinesView: routinesview.New(planner, translate),
		activeTab:    tabToday,
		keys:         defaultKeys(),
		help:         help.New(),
		palette:      components.NewPalette(components.Hints),
		status:       "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.todayView.Init(),
		m.weekView.Init(),
		m.routinesView.Init(),
		m.waitForCue(),
	)
}

// ─── update ──────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The palette intercepts all keys while open.
	if _, isKey := msg.(tea.KeyMsg); isKey && m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		cmd := m.propagateSize()
		return m, cmd

	case actionDoneMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
		} else {
			m.status = msg.status
		}
		return m, m.reloadAll()

	case celebrationMsg:
		m.confettiSeq++
		seq := m.confettiSeq
		if msg.cue.Confetti {
			m.confetti = msg.cue.TaskTitle
			cmds = append(cmds, tea.Tick(confettiFor, func(time.Time) tea.Msg { return confettiDoneMsg{seq: seq} }))
		}
		if msg.cue.Sound {
			cmds = append(cmds, ringBell)
		}
		cmds = append(cmds, m.waitForCue())
		return m, tea.Batch(cmds...)

	case confettiDoneMsg:
		if msg.seq == m.confettiSeq {
			m.confetti = ""
		}
		return m, nil

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil

	case todayview.DayLoadedMsg:
		var cmd tea.Cmd
		m.todayView, cmd = m.todayView.Update(msg)
		return m, cmd

	case weekview.WeekLoadedMsg:
		var cmd tea.Cmd
		m.weekView, cmd = m.weekView.Update(msg)
		return m, cmd

	case routinesview.TemplatesLoadedMsg:
		var cmd tea.Cmd
		m.routinesView, cmd = m.routinesView.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		// Yield to the day list while its filter is active.
		if m.activeTab == tabToday && m.todayView.Filtering() {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case msg.String() == "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
			return m, nil
		case key.Matches(msg, m.keys.Palette):
			cmd := m.palette.Open()
			return m, cmd
		case key.Matches(msg, m.keys.Reload):
			return m, m.reloadAll()
		}
		if cmd, handled := m.handleTabKey(msg); handled {
			return m, cmd
		}
	}

	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		cmds = append(cmds, cmd)
	}

	// Propagate the message to the active tab's sub-view.
	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabToday:
		m.todayView, tabCmd = m.todayView.Update(msg)
	case tabWeek:
		m.weekView, tabCmd = m.weekView.Update(msg)
	case tabRoutines:
		m.routinesView, tabCmd = m.routinesView.Update(msg)
	}
	cmds = append(cmds, tabCmd)
	return m, tea.Batch(cmds...)
}

func (m *Model) handleTabKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch m.activeTab {
	case tabToday:
		switch {
		case key.Matches(msg, m.keys.Toggle):
			if taskID, ok := m.todayView.SelectedTaskID(); ok {
				return m.toggleCmd(taskID), true
			}
			return nil, true
		case key.Matches(msg, m.keys.Chaos):
			return m.chaosCmd(m.todayView.DayIndex()), true
		case key.Matches(msg, m.keys.Mood):
			mood := map[string]string{"1": "ko", "2": "normal", "3": "motivated"}[msg.String()]
			return m.moodCmd(m.todayView.DayIndex(), mood), true
		case key.Matches(msg, m.keys.PrevDay):
			return m.todayView.ShowDay(m.todayView.DayIndex() - 1), true
		case key.Matches(msg, m.keys.NextDay):
			return m.todayView.ShowDay(m.todayView.DayIndex() + 1), true
		case key.Matches(msg, m.keys.Regen):
			return m.regenCmd(m.todayView.DayIndex()), true
		case key.Matches(msg, m.keys.WFH):
			return m.wfhCmd(m.todayView.DayIndex()), true
		case key.Matches(msg, m.keys.Add):
			return m.palette.OpenWith("add "), true
		}
	case tabWeek:
		day, ok := m.weekView.SelectedDay()
		if !ok {
			return nil, false
		}
		switch {
		case key.Matches(msg, m.keys.Enter):
			m.activeTab = tabToday
			return m.todayView.ShowDay(day), true
		case key.Matches(msg, m.keys.Regen):
			return m.regenCmd(day), true
		case key.Matches(msg, m.keys.WFH):
			return m.wfhCmd(day), true
		}
	}
	return nil, false
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()

	contentH := m.height - lipgloss.Height(tabBar) - lipgloss.Height(statusBar)
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}
	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabToday:
		return m.todayView.View()
	case tabWeek:
		return m.weekView.View()
	case tabRoutines:
		return m.routinesView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "focusflow  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.confetti != "" {
		left = components.ConfettiLine(12) + " " + theme.Hot.Render(m.confetti) + " " + components.ConfettiLine(12)
	}
	right := theme.Muted.Render("?:help  tab:switch  :::palette  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ───────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	parts := strings.Fields(input)
	selected, hasSelected := m.todayView.SelectedTaskID()

	switch parts[0] {
	case "add":
		// add <minutes> <type> [HH:MM] <title...>
		if len(parts) < 4 {
			m.status = "usage: add <minutes> <type> [HH:MM] <title>"
			return m, nil
		}
		minutes, err := strconv.Atoi(parts[1])
		if err != nil {
			m.status = "invalid minutes"
			return m, nil
		}
		rest := parts[3:]
		start := ""
		if strings.Contains(parts[3], ":") && len(parts) > 4 {
			start, rest = parts[3], parts[4:]
		}
		return m, m.addCmd(m.todayView.DayIndex(), strings.Join(rest, " "), minutes, parts[2], start)
	case "time":
		if !hasSelected || len(parts) < 2 {
			m.status = "usage: time <HH:MM|-> (select a task first)"
			return m, nil
		}
		start := parts[1]
		if start == "-" {
			start = ""
		}
		return m, m.editCmd("start time updated", func(ctx context.Context, planner Port) (dto.TaskChangeOutput, error) {
			return planner.SetStartTime(ctx, selected, start)
		})
	case "dur":
		if !hasSelected || len(parts) < 2 {
			m.status = "usage: dur <minutes> (select a task first)"
			return m, nil
		}
		minutes, err := strconv.Atoi(parts[1])
		if err != nil {
			m.status = "invalid minutes"
			return m, nil
		}
		return m, m.editCmd("duration updated", func(ctx context.Context, planner Port) (dto.TaskChangeOutput, error) {
			return planner.SetDuration(ctx, selected, minutes)
		})
	case "weekend":
		if len(parts) < 2 {
			m.status = "usage: weekend <relax|chores|study>"
			return m, nil
		}
		pack, day := parts[1], m.todayView.DayIndex()
		return m, m.run("weekend pack added", func(ctx context.Context) error {
			_, err := m.planner.AddWeekendPack(ctx, day, pack)
			return err
		})
	case "mood":
		if len(parts) < 2 {
			m.status = "usage: mood <ko|normal|motivated>"
			return m, nil
		}
		return m, m.moodCmd(m.todayView.DayIndex(), parts[1])
	case "chaos":
		return m, m.chaosCmd(m.todayView.DayIndex())
	case "day":
		if len(parts) < 2 {
			m.status = "usage: day <0-6>"
			return m, nil
		}
		day, err := strconv.Atoi(parts[1])
		if err != nil || day < 0 || day > 6 {
			m.status = "day must be 0..6"
			return m, nil
		}
		m.activeTab = tabToday
		cmd := m.todayView.ShowDay(day)
		return m, cmd
	case "regen":
		return m, m.regenCmd(m.todayView.DayIndex())
	case "wfh":
		return m, m.wfhCmd(m.todayView.DayIndex())
	default:
		m.status = "unknown command: " + parts[0]
		return m, nil
	}
}

// ─── commands ────────────────────────────────────────────────────────────────

func (m Model) run(status string, fn func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return actionDoneMsg{status: status, err: fn(context.Background())}
	}
}

func (m Model) toggleCmd(taskID string) tea.Cmd {
	planner := m.planner
	return func() tea.Msg {
		out, err := planner.ToggleCompleted(context.Background(), taskID)
		status := "task reopened"
		switch {
		case !out.Found:
			status = "no such task"
		case out.Completed:
			status = "task done"
		}
		return actionDoneMsg{status: status, err: err}
	}
}

// Day-scoped commands take the day shown when the key was pressed; the
// view's reload may still be in flight when they run.
func (m Model) chaosCmd(day int) tea.Cmd {
	planner := m.planner
	return func() tea.Msg {
		out, err := planner.ToggleChaos(context.Background(), day)
		status := "chaos off: durations restored"
		switch {
		case out.Affected == 0:
			status = "chaos: no open tasks to change"
		case out.Chaos:
			status = fmt.Sprintf("chaos on: %d tasks shrunk", out.Affected)
		}
		return actionDoneMsg{status: status, err: err}
	}
}

func (m Model) moodCmd(day int, mood string) tea.Cmd {
	planner := m.planner
	return func() tea.Msg {
		out, err := planner.ApplyMood(context.Background(), day, mood)
		return actionDoneMsg{status: fmt.Sprintf("mood %s: %d tasks rescaled", out.Mood, out.Affected), err: err}
	}
}

func (m Model) regenCmd(day int) tea.Cmd {
	planner := m.planner
	return func() tea.Msg {
		out, err := planner.Regenerate(context.Background(), day)
		return actionDoneMsg{status: fmt.Sprintf("%s regenerated (%d tasks)", out.DayName, len(out.Tasks)), err: err}
	}
}

func (m Model) wfhCmd(day int) tea.Cmd {
	planner := m.planner
	return func() tea.Msg {
		out, err := planner.ToggleWFH(context.Background(), day)
		return actionDoneMsg{status: fmt.Sprintf("%s is now %s", out.DayName, out.Mode), err: err}
	}
}

func (m Model) addCmd(day int, title string, minutes int, taskType, start string) tea.Cmd {
	planner := m.planner
	return func() tea.Msg {
		out, err := planner.AddTask(context.Background(), day, title, minutes, taskType, start)
		return actionDoneMsg{status: "added " + out.Title, err: err}
	}
}

func (m Model) editCmd(status string, fn func(ctx context.Context, planner Port) (dto.TaskChangeOutput, error)) tea.Cmd {
	planner := m.planner
	return func() tea.Msg {
		out, err := fn(context.Background(), planner)
		if err == nil && !out.Found {
			status = "no such task"
		}
		return actionDoneMsg{status: status, err: err}
	}
}

func (m Model) reloadAll() tea.Cmd {
	return tea.Batch(m.todayView.Reload(), m.weekView.Reload(), m.routinesView.Reload())
}

func (m Model) waitForCue() tea.Cmd {
	if m.cues == nil {
		return nil
	}
	cues := m.cues
	return func() tea.Msg {
		cue, ok := <-cues
		if !ok {
			return nil
		}
		return celebrationMsg{cue: cue}
	}
}

func ringBell() tea.Msg {
	_, _ = fmt.Fprint(os.Stderr, "\a")
	return nil
}

func (m *Model) propagateSize() tea.Cmd {
	tabBarH := lipgloss.Height(m.renderTabBar())
	statusH := lipgloss.Height(m.renderStatusBar())
	contentH := max(1, m.height-tabBarH-statusH)
	size := tea.WindowSizeMsg{Width: m.width, Height: contentH}

	var c1, c2, c3 tea.Cmd
	m.todayView, c1 = m.todayView.Update(size)
	m.weekView, c2 = m.weekView.Update(size)
	m.routinesView, c3 = m.routinesView.Update(size)
	return tea.Batch(c1, c2, c3)
}
