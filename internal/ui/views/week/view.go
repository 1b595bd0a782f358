package week

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"focusflow/internal/modules/planner/dto"
	"focusflow/internal/ui/theme"
)

type WeekPort interface {
	Week(ctx context.Context) (dto.WeekOutput, error)
}

type WeekLoadedMsg struct {
	Week dto.WeekOutput
	Err  error
}

type dayItem struct {
	day  dto.WeekDayOutput
	mode string
}

func (i dayItem) Title() string {
	title := fmt.Sprintf("%s  %s", i.day.DayName, theme.Muted.Render(i.day.Date))
	if i.day.Active {
		title = "▸ " + title
	}
	return title
}

func (i dayItem) Description() string {
	desc := fmt.Sprintf("%s · %d/%d", i.mode, i.day.Completed, i.day.Total)
	if i.day.Total > 0 && i.day.Completed == i.day.Total {
		desc += " " + theme.Hot.Render("★")
	}
	return desc
}

func (i dayItem) FilterValue() string { return i.day.DayName }

// Model lists Monday to Friday with their mode and completion counts.
type Model struct {
	port      WeekPort
	translate func(string) string
	list      list.Model
	err       error
	width     int
	height    int
}

func New(port WeekPort, translate func(string) string) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Week"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.KeyMap.Quit.SetEnabled(false)
	return Model{port: port, translate: translate, list: l}
}

func (m Model) Init() tea.Cmd { return m.Reload() }

func (m Model) Reload() tea.Cmd {
	if m.port == nil {
		return nil
	}
	port := m.port
	return func() tea.Msg {
		out, err := port.Week(context.Background())
		return WeekLoadedMsg{Week: out, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.list.SetSize(msg.Width, msg.Height)
		return m, nil
	case WeekLoadedMsg:
		m.err = msg.Err
		if msg.Err != nil {
			return m, nil
		}
		items := make([]list.Item, len(msg.Week.Days))
		for i, d := range msg.Week.Days {
			items[i] = dayItem{day: d, mode: m.label("common." + d.Mode)}
		}
		cmd := m.list.SetItems(items)
		return m, cmd
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.err != nil {
		return theme.Hot.Render("load week: " + m.err.Error())
	}
	return lipgloss.NewStyle().Width(m.width).Height(m.height).Render(m.list.View())
}

// SelectedDay returns the highlighted day index.
func (m Model) SelectedDay() (int, bool) {
	if item, ok := m.list.SelectedItem().(dayItem); ok {
		return item.day.DayIndex, true
	}
	return 0, false
}

func (m Model) label(key string) string {
	if m.translate == nil {
		return key
	}
	return m.translate(key)
}
