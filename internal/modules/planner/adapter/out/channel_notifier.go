package out

import (
	"context"

	"focusflow/internal/modules/planner/domain"
	"focusflow/internal/modules/planner/dto"
)

// ChannelNotifier hands completion cues to an interactive front end. Cues
// are dropped while the buffer is full.
type ChannelNotifier struct {
	ch chan dto.CelebrationOutput
}

func NewChannelNotifier(buffer int) *ChannelNotifier {
	return &ChannelNotifier{ch: make(chan dto.CelebrationOutput, buffer)}
}

func (n *ChannelNotifier) NotifyCompletion(ctx context.Context, cue domain.CompletionCue) error {
	out := dto.CelebrationOutput{TaskTitle: cue.TaskTitle, Sound: cue.Sound, Confetti: cue.Confetti}
	select {
	case n.ch <- out:
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	return nil
}

func (n *ChannelNotifier) C() <-chan dto.CelebrationOutput { return n.ch }
