package out

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"focusflow/internal/modules/planner/domain"
	apperrors "focusflow/internal/platform/errors"
)

//go:embed snapshot.schema.json
var snapshotSchemaJSON []byte

const snapshotSchemaURL = "focusflow://snapshot.schema.json"

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func snapshotSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.AssertFormat = true
		if err := compiler.AddResource(snapshotSchemaURL, bytes.NewReader(snapshotSchemaJSON)); err != nil {
			schemaErr = fmt.Errorf("add snapshot schema: %w", err)
			return
		}
		schema, schemaErr = compiler.Compile(snapshotSchemaURL)
	})
	return schema, schemaErr
}

// decodeSnapshot checks payload against the snapshot schema before
// decoding it. Anything that does not fit is reported as corrupt.
func decodeSnapshot(payload []byte) (domain.Snapshot, error) {
	if len(bytes.TrimSpace(payload)) == 0 {
		return domain.Snapshot{}, apperrors.ErrSnapshotAbsent
	}
	var doc any
	if err := json.Unmarshal(payload, &doc); err != nil {
		return domain.Snapshot{}, fmt.Errorf("%w: %v", apperrors.ErrPersistenceCorrupt, err)
	}
	s, err := snapshotSchema()
	if err != nil {
		return domain.Snapshot{}, err
	}
	if err := s.Validate(doc); err != nil {
		return domain.Snapshot{}, fmt.Errorf("%w: %v", apperrors.ErrPersistenceCorrupt, err)
	}
	snap := domain.Snapshot{}
	if err := json.Unmarshal(payload, &snap); err != nil {
		return domain.Snapshot{}, fmt.Errorf("%w: %v", apperrors.ErrPersistenceCorrupt, err)
	}
	return snap, nil
}

func encodeSnapshot(snap domain.Snapshot) ([]byte, error) {
	if snap.Tasks == nil {
		snap.Tasks = []domain.Task{}
	}
	payload, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	return payload, nil
}
