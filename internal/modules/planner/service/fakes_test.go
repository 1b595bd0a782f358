package service_test

import (
	"context"
	"errors"
	"fmt"
	"time"

	"focusflow/internal/modules/planner/domain"
	apperrors "focusflow/internal/platform/errors"
)

type fakeClock struct{ now time.Time }

func (f *fakeClock) Now() time.Time { return f.now }

func (f *fakeClock) advance(d time.Duration) { f.now = f.now.Add(d) }

type seqID struct{ n int }

func (s *seqID) New() string {
	s.n++
	return fmt.Sprintf("id%d", s.n)
}

type memGateway struct {
	stored  *domain.Snapshot
	loadErr error
	saveErr error
	saves   int
	resets  int
}

func (g *memGateway) Load(context.Context) (domain.Snapshot, error) {
	if g.loadErr != nil {
		return domain.Snapshot{}, g.loadErr
	}
	if g.stored == nil {
		return domain.Snapshot{}, apperrors.ErrSnapshotAbsent
	}
	return *g.stored, nil
}

func (g *memGateway) Save(_ context.Context, snap domain.Snapshot) error {
	if g.saveErr != nil {
		return g.saveErr
	}
	g.saves++
	g.stored = &snap
	return nil
}

func (g *memGateway) Reset(context.Context) error {
	g.resets++
	g.stored = nil
	return nil
}

type recordingNotifier struct {
	cues []domain.CompletionCue
	err  error
}

func (r *recordingNotifier) NotifyCompletion(_ context.Context, cue domain.CompletionCue) error {
	r.cues = append(r.cues, cue)
	return r.err
}

type fixedConfirmer struct {
	answer  bool
	prompts []string
}

func (f *fixedConfirmer) Confirm(_ context.Context, prompt string) (bool, error) {
	f.prompts = append(f.prompts, prompt)
	return f.answer, nil
}

type keyTranslator struct{}

func (keyTranslator) Translate(key string) string { return key }
func (keyTranslator) DayName(i int) string        { return fmt.Sprintf("D%d", i) }

var errBoom = errors.New("boom")
