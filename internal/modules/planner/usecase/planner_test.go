package usecase_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	plannerout "focusflow/internal/modules/planner/adapter/out"
	"focusflow/internal/modules/planner/domain"
	"focusflow/internal/modules/planner/dto"
	plannerin "focusflow/internal/modules/planner/port/in"
	"focusflow/internal/modules/planner/service"
	"focusflow/internal/modules/planner/usecase"
	apperrors "focusflow/internal/platform/errors"
	"focusflow/internal/platform/i18n"
	"focusflow/internal/platform/id"
	"focusflow/internal/platform/logging"
)

type fakeClock struct{ now time.Time }

func (f *fakeClock) Now() time.Time { return f.now }

type countingNotifier struct{ calls int }

func (c *countingNotifier) NotifyCompletion(context.Context, domain.CompletionCue) error {
	c.calls++
	return nil
}

// wednesday 2026-10-21 10:00 local.
func wednesday() *fakeClock {
	return &fakeClock{now: time.Date(2026, 10, 21, 10, 0, 0, 0, time.Local)}
}

func newUsecase(t *testing.T, path string, clk *fakeClock, notifier *countingNotifier) plannerin.Usecase {
	t.Helper()
	svc := service.NewPlannerService(service.Deps{
		Clock:      clk,
		IDs:        id.UUID{},
		Gateway:    plannerout.NewFileGateway(path),
		Notifier:   notifier,
		Confirmer:  plannerout.AssumeYes{},
		Translator: i18n.MustLoad("en"),
		Logger:     logging.Discard(),
	})
	uc := usecase.NewInteractor(svc, clk)
	require.NoError(t, uc.Open(context.Background()))
	return uc
}

func TestFirstRunBuildsTodayAndWeek(t *testing.T) {
	path := filepath.Join(t.TempDir(), "focusflow_data_v1.json")
	uc := newUsecase(t, path, wednesday(), &countingNotifier{})
	ctx := context.Background()

	assert.Equal(t, 2, uc.ActiveDay())
	day, err := uc.Day(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2026-10-21", day.Date)
	assert.Equal(t, "Wednesday", day.DayName)
	assert.Equal(t, "office", day.Mode)
	assert.False(t, day.IsWeekend)
	assert.Len(t, day.Tasks, 6)
	assert.Equal(t, "Glass of water", day.Tasks[0].Title)
	assert.Equal(t, 0, day.Progress)

	week, err := uc.Week(ctx)
	require.NoError(t, err)
	require.Len(t, week.Days, 5)
	modes := []string{}
	for _, d := range week.Days {
		modes = append(modes, d.Mode)
	}
	assert.Equal(t, []string{"wfh", "office", "office", "office", "wfh"}, modes)
	assert.Equal(t, "2026-10-19", week.Days[0].Date)
	assert.Equal(t, 0, week.Days[0].Total)
	assert.Equal(t, 6, week.Days[2].Total)
	assert.True(t, week.Days[2].Active)
}

func TestDayScopedOperationsTargetTheGivenDay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "focusflow_data_v1.json")
	uc := newUsecase(t, path, wednesday(), &countingNotifier{})
	ctx := context.Background()

	require.ErrorIs(t, uc.SelectDay(7), apperrors.ErrInvalidInput)
	task, err := uc.AddTask(ctx, 5, dto.AddTaskInput{Title: "Hike", Duration: 90, Type: "exercise"})
	require.NoError(t, err)
	assert.Equal(t, "2026-10-24", task.Date)
	assert.Equal(t, 5, task.DayIndex)

	pack, err := uc.AddWeekendPack(ctx, 5, "relax")
	require.NoError(t, err)
	assert.Len(t, pack, 3)
	assert.Equal(t, 2, uc.ActiveDay())

	require.NoError(t, uc.SelectDay(5))
	day, err := uc.Day(ctx)
	require.NoError(t, err)
	assert.True(t, day.IsWeekend)
	assert.Len(t, day.Tasks, 4)

	_, err = uc.AddWeekendPack(ctx, 5, "party")
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)
	_, err = uc.AddTask(ctx, 7, dto.AddTaskInput{Title: "Nowhere", Duration: 10, Type: "other"})
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)
	_, err = uc.ToggleChaos(ctx, -1)
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestChaosLeavesTheSelectedDayAlone(t *testing.T) {
	path := filepath.Join(t.TempDir(), "focusflow_data_v1.json")
	uc := newUsecase(t, path, wednesday(), &countingNotifier{})
	ctx := context.Background()

	_, err := uc.Regenerate(ctx, 1)
	require.NoError(t, err)
	out, err := uc.ToggleChaos(ctx, 1)
	require.NoError(t, err)
	assert.True(t, out.Chaos)
	assert.Equal(t, "2026-10-20", out.Date)

	require.NoError(t, uc.SelectDay(1))
	tuesday, err := uc.Day(ctx)
	require.NoError(t, err)
	assert.True(t, tuesday.Chaos)

	require.NoError(t, uc.SelectDay(2))
	wed, err := uc.Day(ctx)
	require.NoError(t, err)
	assert.False(t, wed.Chaos)
}

func TestRegenerateDoesNotMoveSelection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "focusflow_data_v1.json")
	uc := newUsecase(t, path, wednesday(), &countingNotifier{})
	ctx := context.Background()

	monday, err := uc.Regenerate(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, "2026-10-19", monday.Date)
	assert.Equal(t, "wfh", monday.Mode)
	assert.Len(t, monday.Tasks, 6)
	assert.Equal(t, 2, uc.ActiveDay())

	_, err = uc.Regenerate(ctx, -1)
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestCompletionAndProgressThroughUsecase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "focusflow_data_v1.json")
	notifier := &countingNotifier{}
	uc := newUsecase(t, path, wednesday(), notifier)
	ctx := context.Background()

	day, err := uc.Day(ctx)
	require.NoError(t, err)
	first := day.Tasks[0].ID

	out, err := uc.ToggleCompleted(ctx, first)
	require.NoError(t, err)
	assert.True(t, out.Completed)
	out, err = uc.SetCompleted(ctx, first, true)
	require.NoError(t, err)
	assert.False(t, out.Changed)
	assert.Equal(t, 1, notifier.calls)

	day, err = uc.Day(ctx)
	require.NoError(t, err)
	assert.Equal(t, 17, day.Progress)
	assert.Equal(t, first, day.Tasks[len(day.Tasks)-1].ID, "completed tasks sink to the bottom")

	out, err = uc.ToggleCompleted(ctx, "missing")
	require.NoError(t, err)
	assert.Equal(t, dto.CompletionOutput{TaskID: "missing"}, out)
	out, err = uc.SetCompleted(ctx, "missing", true)
	require.NoError(t, err)
	assert.False(t, out.Found)
	assert.False(t, out.Changed)
	assert.Equal(t, 1, notifier.calls)
}

func TestEditTaskThroughUsecase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "focusflow_data_v1.json")
	uc := newUsecase(t, path, wednesday(), &countingNotifier{})
	ctx := context.Background()

	added, err := uc.AddTask(ctx, 2, dto.AddTaskInput{Title: "Report", Duration: 40, Type: "work", StartTime: "15:00"})
	require.NoError(t, err)

	start, minutes, kind := "08:30", 25, "study"
	edited, err := uc.EditTask(ctx, dto.EditTaskInput{TaskID: added.ID, StartTime: &start, Duration: &minutes, Type: &kind})
	require.NoError(t, err)
	require.True(t, edited.Found)
	assert.Equal(t, "08:30", edited.Task.StartTime)
	assert.Equal(t, 25, edited.Task.Duration)
	assert.Equal(t, "study", edited.Task.Type)

	missing, err := uc.EditTask(ctx, dto.EditTaskInput{TaskID: "missing", Duration: &minutes})
	require.NoError(t, err)
	assert.Equal(t, dto.TaskChangeOutput{Task: dto.TaskOutput{ID: "missing"}}, missing)
	bad := "lunch"
	_, err = uc.EditTask(ctx, dto.EditTaskInput{TaskID: added.ID, Type: &bad})
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestChaosAndMoodThroughUsecase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "focusflow_data_v1.json")
	uc := newUsecase(t, path, wednesday(), &countingNotifier{})
	ctx := context.Background()

	out, err := uc.ToggleChaos(ctx, 2)
	require.NoError(t, err)
	assert.True(t, out.Chaos)
	assert.Equal(t, 6, out.Affected)

	day, err := uc.Day(ctx)
	require.NoError(t, err)
	assert.True(t, day.Chaos)
	for _, task := range day.Tasks {
		assert.True(t, task.IsMini)
		if task.Type == "exercise" {
			assert.Equal(t, 12, task.Duration)
			assert.Equal(t, 40, task.OriginalDuration)
		}
	}

	out, err = uc.ToggleChaos(ctx, 2)
	require.NoError(t, err)
	assert.False(t, out.Chaos)
	assert.Equal(t, 6, out.Affected)

	out, err = uc.ToggleChaos(ctx, 5)
	require.NoError(t, err)
	assert.False(t, out.Chaos)
	assert.Zero(t, out.Affected, "saturday has no open tasks")

	mood, err := uc.ApplyMood(ctx, 2, "motivated")
	require.NoError(t, err)
	assert.Equal(t, 2, mood.Affected, "tea break and workout are the flexible tasks")
	prefs, err := uc.Preferences(ctx)
	require.NoError(t, err)
	assert.Equal(t, "motivated", prefs.Mood)

	_, err = uc.ApplyMood(ctx, 2, "furious")
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestTemplatesAndWFHThroughUsecase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "focusflow_data_v1.json")
	uc := newUsecase(t, path, wednesday(), &countingNotifier{})
	ctx := context.Background()

	tpl, err := uc.AddTemplate(ctx, dto.TemplateInput{Mode: "wfh", Title: "Standup", Duration: 15, Type: "work", StartTime: "09:00"})
	require.NoError(t, err)
	assert.True(t, tpl.IsFixed)
	assert.Equal(t, "wfh", tpl.Mode)

	title := "Daily sync"
	edited, err := uc.EditTemplate(ctx, dto.EditTemplateInput{Mode: "wfh", TemplateID: tpl.ID, Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Daily sync", edited.Title)

	list, err := uc.ListTemplates(ctx, "wfh")
	require.NoError(t, err)
	assert.Len(t, list, 5)
	assert.Equal(t, "09:00", list[1].StartTime)

	_, err = uc.ListTemplates(ctx, "beach")
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)

	require.NoError(t, uc.RemoveTemplate(ctx, "wfh", tpl.ID))
	require.NoError(t, uc.RemoveTemplate(ctx, "wfh", tpl.ID))

	wd, err := uc.ToggleWFH(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "wfh", wd.Mode)
	regenerated, err := uc.Regenerate(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, regenerated.Tasks, 5, "wfh templates plus the wednesday workout")
}

func TestStatePersistsAcrossSessions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "focusflow_data_v1.json")
	clk := wednesday()
	ctx := context.Background()

	first := newUsecase(t, path, clk, &countingNotifier{})
	added, err := first.AddTask(ctx, 2, dto.AddTaskInput{Title: "Call mom", Duration: 20, Type: "other"})
	require.NoError(t, err)

	clk.now = clk.now.Add(time.Hour)
	second := newUsecase(t, path, clk, &countingNotifier{})
	day, err := second.Day(ctx)
	require.NoError(t, err)
	assert.Len(t, day.Tasks, 7)
	found := false
	for _, task := range day.Tasks {
		found = found || task.ID == added.ID
	}
	assert.True(t, found)

	prefs, err := second.Preferences(ctx)
	require.NoError(t, err)
	assert.False(t, prefs.LastSaved.IsZero())
}

func TestResetThroughUsecase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "focusflow_data_v1.json")
	uc := newUsecase(t, path, wednesday(), &countingNotifier{})
	ctx := context.Background()
	_, err := uc.AddTask(ctx, 2, dto.AddTaskInput{Title: "Gone", Duration: 20, Type: "other"})
	require.NoError(t, err)

	require.NoError(t, uc.Reset(ctx))
	day, err := uc.Day(ctx)
	require.NoError(t, err)
	assert.Len(t, day.Tasks, 6)
	for _, task := range day.Tasks {
		if task.Title == "Gone" {
			t.Fatalf("reset kept ad-hoc task %s", task.ID)
		}
	}
}
