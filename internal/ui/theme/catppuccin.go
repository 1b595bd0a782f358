package theme

import "github.com/charmbracelet/lipgloss"

var (
	Base     = lipgloss.Color("#1e1e2e")
	Mantle   = lipgloss.Color("#181825")
	Surface0 = lipgloss.Color("#313244")
	Surface1 = lipgloss.Color("#45475a")
	Text     = lipgloss.Color("#cdd6f4")
	Subtext0 = lipgloss.Color("#a6adc8")
	Lavender = lipgloss.Color("#b4befe")
	Sapphire = lipgloss.Color("#74c7ec")
	Green    = lipgloss.Color("#a6e3a1")
	Peach    = lipgloss.Color("#fab387")
	Red      = lipgloss.Color("#f38ba8")
	Yellow   = lipgloss.Color("#f9e2af")
	Mauve    = lipgloss.Color("#cba6f7")

	// Confetti cycles through these when a task is completed.
	Confetti = []lipgloss.Color{Red, Peach, Yellow, Green, Sapphire, Mauve}

	App = lipgloss.NewStyle().
		Background(Base).
		Foreground(Text).
		Padding(1, 2)

	Pane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Surface1).
		Background(Mantle).
		Foreground(Text).
		Padding(1)

	PaneActive = Pane.BorderForeground(Lavender)

	Title = lipgloss.NewStyle().Foreground(Sapphire).Bold(true)
	Muted = lipgloss.NewStyle().Foreground(Subtext0)
	Hot   = lipgloss.NewStyle().Foreground(Peach).Bold(true)

	Done  = lipgloss.NewStyle().Foreground(Subtext0).Strikethrough(true)
	Fixed = lipgloss.NewStyle().Foreground(Sapphire)
	Mini  = lipgloss.NewStyle().Foreground(Base).Background(Peach).Bold(true).Padding(0, 1)
	Chaos = lipgloss.NewStyle().Foreground(Base).Background(Red).Bold(true).Padding(0, 1)
	Badge = lipgloss.NewStyle().Foreground(Base).Background(Lavender).Padding(0, 1)

	BarFilled = lipgloss.NewStyle().Foreground(Green)
	BarEmpty  = lipgloss.NewStyle().Foreground(Surface1)
)
