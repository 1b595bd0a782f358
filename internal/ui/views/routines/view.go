package routines

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"focusflow/internal/modules/planner/dto"
	"focusflow/internal/ui/theme"
)

type TemplatePort interface {
	ListTemplates(ctx context.Context, mode string) ([]dto.TemplateOutput, error)
}

type TemplatesLoadedMsg struct {
	Office []dto.TemplateOutput
	WFH    []dto.TemplateOutput
	Err    error
}

// Model shows the office and wfh routines side by side.
type Model struct {
	port      TemplatePort
	translate func(string) string
	office    viewport.Model
	wfh       viewport.Model
	loaded    TemplatesLoadedMsg
	width     int
	height    int
}

func New(port TemplatePort, translate func(string) string) Model {
	return Model{port: port, translate: translate, office: viewport.New(0, 0), wfh: viewport.New(0, 0)}
}

func (m Model) Init() tea.Cmd { return m.Reload() }

func (m Model) Reload() tea.Cmd {
	if m.port == nil {
		return nil
	}
	port := m.port
	return func() tea.Msg {
		ctx := context.Background()
		office, err := port.ListTemplates(ctx, "office")
		if err != nil {
			return TemplatesLoadedMsg{Err: err}
		}
		wfh, err := port.ListTemplates(ctx, "wfh")
		return TemplatesLoadedMsg{Office: office, WFH: wfh, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		paneW := max(10, msg.Width/2-2)
		m.office.Width, m.office.Height = paneW-2, max(1, msg.Height-4)
		m.wfh.Width, m.wfh.Height = paneW-2, max(1, msg.Height-4)
	case TemplatesLoadedMsg:
		m.loaded = msg
		m.office.SetContent(m.render(msg.Office))
		m.wfh.SetContent(m.render(msg.WFH))
	}
	var oCmd, wCmd tea.Cmd
	m.office, oCmd = m.office.Update(msg)
	m.wfh, wCmd = m.wfh.Update(msg)
	return m, tea.Batch(oCmd, wCmd)
}

func (m Model) View() string {
	if m.loaded.Err != nil {
		return theme.Hot.Render("load routines: " + m.loaded.Err.Error())
	}
	paneW := max(10, m.width/2-2)
	office := theme.Pane.Width(paneW).Render(theme.Title.Render(m.label("common.office")) + "\n" + m.office.View())
	wfh := theme.Pane.Width(paneW).Render(theme.Title.Render(m.label("common.wfh")) + "\n" + m.wfh.View())
	return lipgloss.JoinHorizontal(lipgloss.Top, office, wfh)
}

func (m Model) render(list []dto.TemplateOutput) string {
	if len(list) == 0 {
		return theme.Muted.Render(m.label("common.empty_routine"))
	}
	var b strings.Builder
	for _, t := range list {
		start := t.StartTime
		if start == "" {
			start = "--:--"
		}
		line := fmt.Sprintf("%s  %-28s %3d min  %s", start, t.Title, t.Duration, theme.Muted.Render(t.Type))
		if t.IsFixed {
			line += " " + theme.Fixed.Render("fixed")
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func (m Model) label(key string) string {
	if m.translate == nil {
		return key
	}
	return m.translate(key)
}
