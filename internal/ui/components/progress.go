package components

import (
	"fmt"
	"strings"

	"focusflow/internal/ui/theme"
)

// ProgressBar renders percent (0..100) as a width-cell bar followed by the number.
func ProgressBar(percent, width int) string {
	percent = max(0, min(100, percent))
	if width < 4 {
		width = 4
	}
	filled := width * percent / 100
	return theme.BarFilled.Render(strings.Repeat("█", filled)) +
		theme.BarEmpty.Render(strings.Repeat("░", width-filled)) +
		fmt.Sprintf(" %3d%%", percent)
}

// ConfettiLine renders width colored pieces.
func ConfettiLine(width int) string {
	pieces := []string{"*", "+", "o", "~", "•"}
	var b strings.Builder
	for i := 0; i < width; i++ {
		c := theme.Confetti[i%len(theme.Confetti)]
		b.WriteString(theme.Hot.Foreground(c).Render(pieces[i%len(pieces)]))
	}
	return b.String()
}
