package out

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	plannerout "focusflow/internal/modules/planner/port/out"
)

// PromptConfirmer asks a yes/no question on out and reads the answer from in.
// Anything other than an affirmative answer declines.
type PromptConfirmer struct {
	in  *bufio.Reader
	out io.Writer
}

func NewPromptConfirmer(in io.Reader, out io.Writer) plannerout.Confirmer {
	return &PromptConfirmer{in: bufio.NewReader(in), out: out}
}

func (c *PromptConfirmer) Confirm(_ context.Context, prompt string) (bool, error) {
	if _, err := fmt.Fprintf(c.out, "%s [y/N] ", prompt); err != nil {
		return false, fmt.Errorf("write prompt: %w", err)
	}
	line, err := c.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read answer: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes", "s", "si", "sí":
		return true, nil
	default:
		return false, nil
	}
}

// AssumeYes accepts every prompt. It backs --yes.
type AssumeYes struct{}

func (AssumeYes) Confirm(context.Context, string) (bool, error) { return true, nil }
