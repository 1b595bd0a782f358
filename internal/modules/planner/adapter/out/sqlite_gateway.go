package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"focusflow/internal/modules/planner/domain"
	apperrors "focusflow/internal/platform/errors"

	_ "modernc.org/sqlite"
)

// SQLiteGateway stores the snapshot as a single row of a key/value table
// under domain.StorageKey.
type SQLiteGateway struct {
	db    *sql.DB
	key   string
	clock func() time.Time
}

func NewSQLiteGateway(dbPath string) (*SQLiteGateway, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	g := &SQLiteGateway{db: db, key: domain.StorageKey, clock: time.Now}
	if err := g.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return g, nil
}

func (g *SQLiteGateway) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS kv (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updated_at TEXT NOT NULL
);
`
	if _, err := g.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create kv table: %w", err)
	}
	return nil
}

func (g *SQLiteGateway) Load(ctx context.Context) (domain.Snapshot, error) {
	var value string
	err := g.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, g.key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Snapshot{}, apperrors.ErrSnapshotAbsent
		}
		return domain.Snapshot{}, fmt.Errorf("query snapshot: %w", err)
	}
	return decodeSnapshot([]byte(value))
}

func (g *SQLiteGateway) Save(ctx context.Context, snap domain.Snapshot) error {
	payload, err := encodeSnapshot(snap)
	if err != nil {
		return err
	}
	const stmt = `
INSERT INTO kv (key, value, updated_at)
VALUES (?, ?, ?)
ON CONFLICT(key) DO UPDATE SET
  value=excluded.value,
  updated_at=excluded.updated_at;
`
	if _, err := g.db.ExecContext(ctx, stmt, g.key, string(payload), g.clock().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("upsert snapshot: %w", err)
	}
	return nil
}

func (g *SQLiteGateway) Reset(ctx context.Context) error {
	if _, err := g.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, g.key); err != nil {
		return fmt.Errorf("reset snapshot: %w", err)
	}
	return nil
}

func (g *SQLiteGateway) Close() error {
	return g.db.Close()
}
