package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"focusflow/internal/modules/planner/domain"
	plannerout "focusflow/internal/modules/planner/port/out"
	apperrors "focusflow/internal/platform/errors"
)

// FileGateway keeps the snapshot as one JSON document on disk.
type FileGateway struct {
	path string
}

func NewFileGateway(path string) plannerout.PersistenceGateway {
	return &FileGateway{path: path}
}

func (g *FileGateway) Load(_ context.Context) (domain.Snapshot, error) {
	payload, err := os.ReadFile(g.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Snapshot{}, apperrors.ErrSnapshotAbsent
		}
		return domain.Snapshot{}, fmt.Errorf("read snapshot: %w", err)
	}
	return decodeSnapshot(payload)
}

// Save writes a sibling temp file and renames it over the snapshot.
func (g *FileGateway) Save(_ context.Context, snap domain.Snapshot) error {
	if err := os.MkdirAll(filepath.Dir(g.path), 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}
	payload, err := encodeSnapshot(snap)
	if err != nil {
		return err
	}
	tmp := g.path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp, g.path); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}

func (g *FileGateway) Reset(_ context.Context) error {
	if err := os.Remove(g.path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("remove snapshot: %w", err)
	}
	return nil
}
