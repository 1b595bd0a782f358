package today

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"focusflow/internal/modules/planner/dto"
	"focusflow/internal/ui/components"
	"focusflow/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type DayPort interface {
	LoadDay(ctx context.Context, dayIndex int) (dto.DayOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type DayLoadedMsg struct {
	Day dto.DayOutput
	Err error
}

// ─── list item ───────────────────────────────────────────────────────────────

type taskItem struct {
	task dto.TaskOutput
	mini string
}

func (i taskItem) Title() string {
	check := "[ ]"
	if i.task.Completed {
		check = "[x]"
	}
	start := i.task.StartTime
	if start == "" {
		start = "--:--"
	}
	title := i.task.Title
	if i.task.Completed {
		title = theme.Done.Render(title)
	}
	return fmt.Sprintf("%s %s  %s", check, start, title)
}

func (i taskItem) Description() string {
	parts := []string{fmt.Sprintf("%d min", i.task.Duration), i.task.Type}
	if i.task.IsFixed {
		parts = append(parts, theme.Fixed.Render("fixed"))
	}
	if i.task.IsMini {
		mini := theme.Mini.Render(i.mini)
		if i.task.OriginalDuration > 0 && i.task.OriginalDuration != i.task.Duration {
			mini += theme.Muted.Render(fmt.Sprintf(" was %d", i.task.OriginalDuration))
		}
		parts = append(parts, mini)
	}
	return strings.Join(parts, " · ")
}

func (i taskItem) FilterValue() string { return i.task.Title }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port      DayPort
	translate func(string) string
	list      list.Model
	spinner   spinner.Model
	day       dto.DayOutput
	dayIndex  int
	loading   bool
	err       error
	width     int
	height    int
}

func New(port DayPort, translate func(string) string, dayIndex int) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)
	l.KeyMap.Quit.SetEnabled(false)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{
		port:      port,
		translate: translate,
		list:      l,
		spinner:   sp,
		dayIndex:  dayIndex,
		loading:   true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Reload(), m.spinner.Tick)
}

// Reload fetches the current day again.
func (m Model) Reload() tea.Cmd {
	if m.port == nil {
		return nil
	}
	port, day := m.port, m.dayIndex
	return func() tea.Msg {
		out, err := port.LoadDay(context.Background(), day)
		return DayLoadedMsg{Day: out, Err: err}
	}
}

// ShowDay switches to dayIndex and returns the load command.
func (m *Model) ShowDay(dayIndex int) tea.Cmd {
	m.dayIndex = ((dayIndex % 7) + 7) % 7
	return m.Reload()
}

func (m Model) DayIndex() int { return m.dayIndex }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, max(1, msg.Height-lipgloss.Height(m.header())))

	case DayLoadedMsg:
		m.loading = false
		m.err = msg.Err
		if msg.Err != nil {
			return m, nil
		}
		m.day = msg.Day
		m.dayIndex = msg.Day.DayIndex
		items := make([]list.Item, len(msg.Day.Tasks))
		for i, t := range msg.Day.Tasks {
			items[i] = taskItem{task: t, mini: m.label("common.mini")}
		}
		cmds = append(cmds, m.list.SetItems(items))
		m.list.SetSize(m.width, max(1, m.height-lipgloss.Height(m.header())))

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	if !m.loading {
		var lCmd tea.Cmd
		m.list, lCmd = m.list.Update(msg)
		cmds = append(cmds, lCmd)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading day…")
	}
	if m.err != nil {
		return theme.Hot.Render("load day: " + m.err.Error())
	}
	body := m.list.View()
	if len(m.day.Tasks) == 0 {
		body = theme.Muted.Render(m.label("common.empty_routine"))
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.header(), body)
}

func (m Model) header() string {
	mode := m.label("common." + m.day.Mode)
	if m.day.IsWeekend {
		mode = m.label("common.weekend")
	}
	line := theme.Title.Render(m.day.DayName) + "  " + theme.Muted.Render(m.day.Date) + "  " + theme.Badge.Render(mode)
	if m.day.Chaos {
		line += " " + theme.Chaos.Render("CHAOS")
	}
	barWidth := 30
	if m.width > 20 && m.width/3 < barWidth {
		barWidth = m.width / 3
	}
	return line + "\n" + components.ProgressBar(m.day.Progress, barWidth) + "\n"
}

func (m Model) label(key string) string {
	if m.translate == nil {
		return key
	}
	return m.translate(key)
}

// SelectedTaskID returns the highlighted task, if any.
func (m Model) SelectedTaskID() (string, bool) {
	if item, ok := m.list.SelectedItem().(taskItem); ok {
		return item.task.ID, true
	}
	return "", false
}

// Filtering reports whether the list's search filter is currently active.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}
