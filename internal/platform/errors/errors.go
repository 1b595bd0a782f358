package apperrors

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotFound           = errors.New("not found")
	ErrPersistenceCorrupt = errors.New("persisted snapshot is corrupt")
	ErrSnapshotAbsent     = errors.New("no persisted snapshot")
	ErrResetDeclined      = errors.New("reset declined")
)
