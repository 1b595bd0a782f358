package out

import (
	"context"

	"focusflow/internal/modules/planner/domain"
)

// PersistenceGateway is the engine's only route to stored state. Load
// reports apperrors.ErrSnapshotAbsent when nothing is stored and wraps
// apperrors.ErrPersistenceCorrupt when the record cannot be decoded.
type PersistenceGateway interface {
	Load(ctx context.Context) (domain.Snapshot, error)
	Save(ctx context.Context, snapshot domain.Snapshot) error
	Reset(ctx context.Context) error
}

// CompletionNotifier plays the best-effort celebration for a completed task.
type CompletionNotifier interface {
	NotifyCompletion(ctx context.Context, cue domain.CompletionCue) error
}

// Confirmer asks the user to approve a destructive action.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

type Translator interface {
	Translate(key string) string
	DayName(dayIndex int) string
}
