package out

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"focusflow/internal/modules/planner/domain"
	plannerout "focusflow/internal/modules/planner/port/out"
)

const bell = "\a"

var confettiColors = []lipgloss.Color{"#f38ba8", "#fab387", "#f9e2af", "#a6e3a1", "#89b4fa", "#cba6f7"}

// TerminalNotifier rings the terminal bell and prints a confetti line.
type TerminalNotifier struct {
	w io.Writer
}

func NewTerminalNotifier(w io.Writer) plannerout.CompletionNotifier {
	return &TerminalNotifier{w: w}
}

func (n *TerminalNotifier) NotifyCompletion(_ context.Context, cue domain.CompletionCue) error {
	var b strings.Builder
	if cue.Sound {
		b.WriteString(bell)
	}
	if cue.Confetti {
		b.WriteString(Confetti(24))
		b.WriteString(" ")
		b.WriteString(lipgloss.NewStyle().Bold(true).Render(cue.TaskTitle))
		b.WriteString("\n")
	}
	if b.Len() == 0 {
		return nil
	}
	if _, err := io.WriteString(n.w, b.String()); err != nil {
		return fmt.Errorf("write completion cue: %w", err)
	}
	return nil
}

// Confetti renders width colored pieces.
func Confetti(width int) string {
	pieces := []string{"*", "+", "o", "~"}
	var b strings.Builder
	for i := 0; i < width; i++ {
		style := lipgloss.NewStyle().Foreground(confettiColors[i%len(confettiColors)])
		b.WriteString(style.Render(pieces[i%len(pieces)]))
	}
	return b.String()
}
