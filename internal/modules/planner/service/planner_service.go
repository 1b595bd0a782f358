package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"focusflow/internal/modules/planner/domain"
	plannerout "focusflow/internal/modules/planner/port/out"
	"focusflow/internal/platform/calendar"
	"focusflow/internal/platform/clock"
	apperrors "focusflow/internal/platform/errors"
	"focusflow/internal/platform/id"
	"focusflow/internal/platform/logging"
)

// Deps bundles the collaborators of PlannerService.
type Deps struct {
	Clock      clock.Clock
	IDs        id.Generator
	Gateway    plannerout.PersistenceGateway
	Notifier   plannerout.CompletionNotifier
	Confirmer  plannerout.Confirmer
	Translator plannerout.Translator
	Logger     *log.Logger
}

// PlannerService is the commit boundary of the engine: every state change
// goes through it and is followed by exactly one snapshot save.
type PlannerService struct {
	mu sync.Mutex

	clock      clock.Clock
	idGen      id.Generator
	gateway    plannerout.PersistenceGateway
	notifier   plannerout.CompletionNotifier
	confirmer  plannerout.Confirmer
	translator plannerout.Translator
	logger     *log.Logger

	store     *TaskStore
	catalog   *TemplateCatalog
	adapt     *AdaptationEngine
	prefs     domain.UserPreferences
	lastSaved time.Time
}

func NewPlannerService(deps Deps) *PlannerService {
	s := &PlannerService{
		clock:      deps.Clock,
		idGen:      deps.IDs,
		gateway:    deps.Gateway,
		notifier:   deps.Notifier,
		confirmer:  deps.Confirmer,
		translator: deps.Translator,
		logger:     deps.Logger,
	}
	if s.logger == nil {
		s.logger = logging.Discard()
	}
	s.install(domain.Snapshot{Preferences: ptr(domain.DefaultPreferences())})
	return s
}

// Open loads the persisted snapshot and migrates it. When nothing is stored,
// or the stored record cannot be parsed, it starts from defaults, generates
// the plan of activeDay if it is a weekday and saves. Any other load failure
// is returned and leaves the stored record untouched.
func (s *PlannerService) Open(ctx context.Context, activeDay int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.gateway.Load(ctx)
	switch {
	case err == nil:
		today := calendar.DateKey(s.clock.Now())
		migrated, applied := domain.Migrate(snap, today, s.translate)
		if len(applied) > 0 {
			s.logger.Info("snapshot migrated", "rules", strings.Join(applied, ","))
		}
		s.install(migrated)
		if snap.LastSaved != nil {
			s.lastSaved = *snap.LastSaved
		}
		return nil
	case errors.Is(err, apperrors.ErrSnapshotAbsent):
		s.logger.Info("no snapshot stored, starting fresh")
	case errors.Is(err, apperrors.ErrPersistenceCorrupt):
		s.logger.Warn("snapshot unreadable, falling back to defaults", "err", err)
	default:
		s.logger.Error("load snapshot failed", "err", err)
		return fmt.Errorf("load snapshot: %w", err)
	}
	return s.initialize(ctx, activeDay)
}

// Reset asks for confirmation, erases the stored record and reinitializes
// as on first run.
func (s *PlannerService) Reset(ctx context.Context, activeDay int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ok, err := s.confirmer.Confirm(ctx, s.translate("common.confirm_reset"))
	if err != nil {
		return fmt.Errorf("confirm reset: %w", err)
	}
	if !ok {
		return apperrors.ErrResetDeclined
	}
	if err := s.gateway.Reset(ctx); err != nil {
		return fmt.Errorf("reset snapshot: %w", err)
	}
	s.logger.Info("stored state erased")
	s.lastSaved = time.Time{}
	return s.initialize(ctx, activeDay)
}

// Regenerate replaces every task of date with a fresh plan for mode.
func (s *PlannerService) Regenerate(ctx context.Context, dayIndex int, date string, mode domain.Mode) ([]domain.Task, error) {
	if err := calendar.ValidDayIndex(dayIndex); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	if err := mode.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	plan := s.generate(dayIndex, date, mode)
	removed := s.store.ReplaceDate(date, plan)
	s.logger.Debug("day regenerated", "date", date, "mode", mode, "removed", removed, "added", len(plan))
	return s.store.ForDate(date), s.commit(ctx, "regenerate")
}

// NewTask describes an ad-hoc task added by the user.
type NewTask struct {
	Title     string
	Duration  int
	Type      domain.TaskType
	StartTime string
}

func (n NewTask) validate() error {
	patch := domain.TaskPatch{Title: &n.Title, Type: &n.Type, Duration: &n.Duration, StartTime: &n.StartTime}
	return patch.Validate()
}

func (s *PlannerService) AddTask(ctx context.Context, dayIndex int, date string, input NewTask) (string, error) {
	if err := input.validate(); err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	task := domain.Task{
		ID:        fmt.Sprintf("%s-custom-%s", date, s.idGen.New()),
		Title:     strings.TrimSpace(input.Title),
		Type:      input.Type,
		StartTime: input.StartTime,
		Duration:  input.Duration,
		DayIndex:  dayIndex,
		Date:      date,
	}
	s.store.Append(task)
	return task.ID, s.commit(ctx, "add-task")
}

// AddWeekendPack appends the untimed tasks of a weekend pack to date.
func (s *PlannerService) AddWeekendPack(ctx context.Context, dayIndex int, date string, pack domain.WeekendPack) ([]string, error) {
	items, err := pack.Items(s.translate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	batch := s.idGen.New()
	ids := make([]string, 0, len(items))
	for idx, item := range items {
		task := domain.Task{
			ID:       fmt.Sprintf("we-%s-%d", batch, idx),
			Title:    item.Title,
			Type:     item.Type,
			Duration: item.Duration,
			DayIndex: dayIndex,
			Date:     date,
		}
		s.store.Append(task)
		ids = append(ids, task.ID)
	}
	return ids, s.commit(ctx, "weekend-pack")
}

// SetCompleted sets completion on a task. Unknown ids are ignored. A
// false->true transition triggers the celebration when enabled.
func (s *PlannerService) SetCompleted(ctx context.Context, taskID string, completed bool) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setCompleted(ctx, taskID, func(bool) bool { return completed })
}

// ToggleCompleted flips completion and returns the new state.
func (s *PlannerService) ToggleCompleted(ctx context.Context, taskID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.setCompleted(ctx, taskID, func(cur bool) bool { return !cur }); err != nil {
		return false, err
	}
	t, _ := s.store.Get(taskID)
	return t.Completed, nil
}

func (s *PlannerService) setCompleted(ctx context.Context, taskID string, next func(bool) bool) (bool, error) {
	var (
		before, after bool
		title         string
	)
	found := s.store.Update(taskID, func(t *domain.Task) {
		before = t.Completed
		t.Completed = next(before)
		after = t.Completed
		title = t.Title
	})
	if !found || before == after {
		return false, nil
	}
	if err := s.commit(ctx, "complete"); err != nil {
		return true, err
	}
	if !before && after && s.prefs.WantsCelebration() {
		s.celebrate(ctx, domain.CompletionCue{TaskTitle: title, Sound: s.prefs.UseSound, Confetti: s.prefs.UseConfetti})
	}
	return true, nil
}

// UpdateStartTime sets or, with an empty value, clears a task's start time.
func (s *PlannerService) UpdateStartTime(ctx context.Context, taskID, startTime string) (bool, error) {
	return s.EditTask(ctx, taskID, domain.TaskPatch{StartTime: &startTime})
}

func (s *PlannerService) UpdateDuration(ctx context.Context, taskID string, minutes int) (bool, error) {
	return s.EditTask(ctx, taskID, domain.TaskPatch{Duration: &minutes})
}

// EditTask merges patch into a task. It reports false without saving when
// the id is unknown.
func (s *PlannerService) EditTask(ctx context.Context, taskID string, patch domain.TaskPatch) (bool, error) {
	if err := patch.Validate(); err != nil {
		return false, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.store.Update(taskID, patch.Apply) {
		return false, nil
	}
	return true, s.commit(ctx, "edit-task")
}

// ApplyMood records mood and scales the flexible incomplete tasks of date.
func (s *PlannerService) ApplyMood(ctx context.Context, date string, mood domain.Mood) (int, error) {
	if err := mood.Validate(); err != nil {
		return 0, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.prefs.Mood = mood
	scaled := s.adapt.ApplyMood(date, mood)
	return scaled, s.commit(ctx, "mood")
}

// ToggleChaos switches chaos mode for date and reports whether it is now
// active and how many tasks changed. With no incomplete task on date nothing
// changes and nothing is saved.
func (s *PlannerService) ToggleChaos(ctx context.Context, date string) (active bool, affected int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	active, affected = s.adapt.ToggleChaos(date)
	if affected == 0 {
		return false, 0, nil
	}
	return active, affected, s.commit(ctx, "chaos")
}

// ToggleWFH flips whether dayIndex uses the wfh routine and returns the new mode.
func (s *PlannerService) ToggleWFH(ctx context.Context, dayIndex int) (domain.Mode, error) {
	if err := calendar.ValidDayIndex(dayIndex); err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.prefs.ToggleWFH(dayIndex)
	return s.prefs.ModeFor(dayIndex), s.commit(ctx, "toggle-wfh")
}

func (s *PlannerService) AddTemplate(ctx context.Context, mode domain.Mode, title string, duration int, taskType domain.TaskType, startTime string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	templateID, err := s.catalog.Add(mode, title, duration, taskType, startTime)
	if err != nil {
		return "", err
	}
	return templateID, s.commit(ctx, "add-template")
}

func (s *PlannerService) EditTemplate(ctx context.Context, mode domain.Mode, templateID string, patch domain.TemplatePatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.catalog.Edit(mode, templateID, patch); err != nil {
		return err
	}
	return s.commit(ctx, "edit-template")
}

// RemoveTemplate is idempotent: removing an unknown id is not an error and saves nothing.
func (s *PlannerService) RemoveTemplate(ctx context.Context, mode domain.Mode, templateID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed, err := s.catalog.Remove(mode, templateID)
	if err != nil || !removed {
		return err
	}
	return s.commit(ctx, "remove-template")
}

// TasksFor returns the tasks of date with incomplete tasks first, then by start time.
func (s *PlannerService) TasksFor(date string) []domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.ForDate(date)
}

// Task returns a copy of one task.
func (s *PlannerService) Task(taskID string) (domain.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Get(taskID)
}

func (s *PlannerService) Progress(date string) int {
	return domain.Progress(s.TasksFor(date))
}

func (s *PlannerService) AllTasks() []domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.All()
}

func (s *PlannerService) Templates(mode domain.Mode) []domain.TaskTemplate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.List(mode)
}

// Preferences returns a copy including the current template catalog.
func (s *PlannerService) Preferences() domain.UserPreferences {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.preferencesLocked()
}

func (s *PlannerService) LastSaved() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSaved
}

func (s *PlannerService) Translate(key string) string { return s.translate(key) }

func (s *PlannerService) DayName(dayIndex int) string {
	if s.translator == nil {
		return fmt.Sprintf("day %d", dayIndex)
	}
	return s.translator.DayName(dayIndex)
}

// ─── private ─────────────────────────────────────────────────────────────────

func (s *PlannerService) initialize(ctx context.Context, activeDay int) error {
	prefs := domain.DefaultPreferences()
	prefs.CustomTemplates = domain.DefaultTemplates(s.translate)
	s.install(domain.Snapshot{Preferences: &prefs})

	if calendar.ValidDayIndex(activeDay) == nil && !calendar.IsWeekend(activeDay) {
		date := calendar.DateOfCurrentWeek(s.clock.Now(), activeDay)
		s.store.Append(s.generate(activeDay, date, s.prefs.ModeFor(activeDay))...)
	}
	return s.commit(ctx, "initialize")
}

func (s *PlannerService) install(snap domain.Snapshot) {
	prefs := domain.DefaultPreferences()
	if snap.Preferences != nil {
		prefs = snap.Preferences.Clone()
	}
	store, dropped := NewTaskStore(snap.Tasks)
	if dropped > 0 {
		s.logger.Warn("duplicate task ids dropped on load", "count", dropped)
	}
	s.store = store
	s.adapt = NewAdaptationEngine(store)
	s.catalog = NewTemplateCatalog(s.idGen, prefs.CustomTemplates)
	prefs.CustomTemplates = domain.Templates{}
	s.prefs = prefs
}

func (s *PlannerService) generate(dayIndex int, date string, mode domain.Mode) []domain.Task {
	return domain.Generate(domain.PlanRequest{
		DayIndex:  dayIndex,
		Mode:      mode,
		Date:      date,
		Templates: s.catalog.Snapshot(),
		Now:       s.clock.Now(),
		Translate: s.translate,
	})
}

func (s *PlannerService) preferencesLocked() domain.UserPreferences {
	prefs := s.prefs.Clone()
	prefs.CustomTemplates = s.catalog.Snapshot()
	return prefs
}

func (s *PlannerService) commit(ctx context.Context, op string) error {
	now := s.clock.Now()
	prefs := s.preferencesLocked()
	snap := domain.Snapshot{Tasks: s.store.All(), Preferences: &prefs, LastSaved: &now}
	if err := s.gateway.Save(ctx, snap); err != nil {
		return fmt.Errorf("save snapshot after %s: %w", op, err)
	}
	s.lastSaved = now
	s.logger.Debug("committed", "op", op, "tasks", s.store.Len())
	return nil
}

func (s *PlannerService) celebrate(ctx context.Context, cue domain.CompletionCue) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.NotifyCompletion(ctx, cue); err != nil {
		s.logger.Warn("completion effect failed", "err", err)
	}
}

func (s *PlannerService) translate(key string) string {
	if s.translator == nil {
		return key
	}
	return s.translator.Translate(key)
}

func ptr[T any](v T) *T { return &v }
