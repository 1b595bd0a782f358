package out_test

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	plannerout "focusflow/internal/modules/planner/adapter/out"
	"focusflow/internal/modules/planner/domain"
	port "focusflow/internal/modules/planner/port/out"
	apperrors "focusflow/internal/platform/errors"
)

func sampleSnapshot() domain.Snapshot {
	orig := 50
	saved := time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)
	prefs := domain.DefaultPreferences()
	prefs.CustomTemplates = domain.Templates{
		Office: []domain.TaskTemplate{{ID: "t-water", Title: "Water", Type: domain.TaskTypeWater, Duration: 5, StartTime: "07:00", IsFixed: true}},
		WFH:    []domain.TaskTemplate{},
	}
	return domain.Snapshot{
		Tasks: []domain.Task{
			{ID: "2026-10-19-1-t-water-0", Title: "Water", Type: domain.TaskTypeWater, StartTime: "07:00", Duration: 5, Date: "2026-10-19", IsFixed: true},
			{ID: "2026-10-19-custom-x", Title: "Study", Type: domain.TaskTypeStudy, Duration: 15, OriginalDuration: &orig, IsMini: true, Date: "2026-10-19"},
		},
		Preferences: &prefs,
		LastSaved:   &saved,
	}
}

type gatewayCase struct {
	name string
	open func(t *testing.T) (port.PersistenceGateway, func(payload string))
}

func gateways() []gatewayCase {
	return []gatewayCase{
		{
			name: "file",
			open: func(t *testing.T) (port.PersistenceGateway, func(string)) {
				path := filepath.Join(t.TempDir(), "data", "focusflow_data_v1.json")
				corrupt := func(payload string) {
					require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
					require.NoError(t, os.WriteFile(path, []byte(payload), 0o644))
				}
				return plannerout.NewFileGateway(path), corrupt
			},
		},
		{
			name: "sqlite",
			open: func(t *testing.T) (port.PersistenceGateway, func(string)) {
				path := filepath.Join(t.TempDir(), "focusflow.db")
				g, err := plannerout.NewSQLiteGateway(path)
				require.NoError(t, err)
				t.Cleanup(func() { _ = g.Close() })
				corrupt := func(payload string) {
					db, err := sql.Open("sqlite", path)
					require.NoError(t, err)
					defer db.Close()
					_, err = db.Exec(`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, '') ON CONFLICT(key) DO UPDATE SET value=excluded.value`, domain.StorageKey, payload)
					require.NoError(t, err)
				}
				return g, corrupt
			},
		},
	}
}

func TestGatewayRoundTrip(t *testing.T) {
	for _, gc := range gateways() {
		t.Run(gc.name, func(t *testing.T) {
			ctx := context.Background()
			g, _ := gc.open(t)

			_, err := g.Load(ctx)
			require.ErrorIs(t, err, apperrors.ErrSnapshotAbsent)

			want := sampleSnapshot()
			require.NoError(t, g.Save(ctx, want))
			got, err := g.Load(ctx)
			require.NoError(t, err)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
			}
			assert.NotNil(t, got.Preferences.CustomTemplates.WFH, "empty list must survive as a list")

			require.NoError(t, g.Reset(ctx))
			_, err = g.Load(ctx)
			require.ErrorIs(t, err, apperrors.ErrSnapshotAbsent)
			require.NoError(t, g.Reset(ctx))
		})
	}
}

func TestGatewayReportsCorruptPayloads(t *testing.T) {
	payloads := map[string]string{
		"not json":          `{"tasks": [`,
		"tasks not a list":  `{"tasks": "nope"}`,
		"task without id":   `{"tasks": [{"title": "x", "type": "work", "duration": 5}]}`,
		"duration as text":  `{"tasks": [{"id": "a", "title": "x", "type": "work", "duration": "5"}]}`,
		"day out of range":  `{"tasks": [], "preferences": {"wfhDays": [9]}}`,
		"bad saved instant": `{"tasks": [], "lastSaved": "yesterday"}`,
	}
	for _, gc := range gateways() {
		for name, payload := range payloads {
			t.Run(gc.name+"/"+name, func(t *testing.T) {
				g, corrupt := gc.open(t)
				corrupt(payload)
				_, err := g.Load(context.Background())
				require.ErrorIs(t, err, apperrors.ErrPersistenceCorrupt)
			})
		}
	}
}

func TestGatewayAcceptsLegacyShapes(t *testing.T) {
	for _, gc := range gateways() {
		t.Run(gc.name, func(t *testing.T) {
			g, corrupt := gc.open(t)
			corrupt(`{"tasks": [{"id": "a", "title": "Old", "type": "other", "duration": 10}], "preferences": {"mood": "sleepy", "customTemplates": {}}}`)
			snap, err := g.Load(context.Background())
			require.NoError(t, err)
			require.Len(t, snap.Tasks, 1)
			assert.Empty(t, snap.Tasks[0].Date)
			require.NotNil(t, snap.Preferences)
			assert.True(t, snap.Preferences.CustomTemplates.Empty())
		})
	}
}

func TestGatewayKeepsTasksWhenCatalogIsNotAnObject(t *testing.T) {
	for _, gc := range gateways() {
		t.Run(gc.name, func(t *testing.T) {
			g, corrupt := gc.open(t)
			corrupt(`{"tasks": [{"id": "a", "title": "Mine", "type": "other", "duration": 10, "date": "2026-10-19"}], "preferences": {"mood": "normal", "customTemplates": []}}`)
			snap, err := g.Load(context.Background())
			require.NoError(t, err)
			require.Len(t, snap.Tasks, 1)
			assert.Equal(t, "Mine", snap.Tasks[0].Title)
			require.NotNil(t, snap.Preferences)
			assert.True(t, snap.Preferences.CustomTemplates.Empty())
		})
	}
}

func TestFileGatewayWritesCamelCaseDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	g := plannerout.NewFileGateway(path)
	require.NoError(t, g.Save(context.Background(), sampleSnapshot()))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	doc := string(raw)
	for _, key := range []string{`"lastSaved"`, `"customTemplates"`, `"originalDuration": 50`, `"isMini": true`, `"wfh": []`, `"officeDays"`} {
		assert.True(t, strings.Contains(doc, key), "missing %s in %s", key, doc)
	}
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestGatewaySavesEmptyTaskListAsArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	g := plannerout.NewFileGateway(path)
	prefs := domain.DefaultPreferences()
	require.NoError(t, g.Save(context.Background(), domain.Snapshot{Preferences: &prefs}))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"tasks": []`)
}
