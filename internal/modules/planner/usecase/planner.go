package usecase

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"focusflow/internal/modules/planner/domain"
	"focusflow/internal/modules/planner/dto"
	plannerin "focusflow/internal/modules/planner/port/in"
	"focusflow/internal/modules/planner/service"
	"focusflow/internal/platform/calendar"
	"focusflow/internal/platform/clock"
	apperrors "focusflow/internal/platform/errors"
)

type Interactor struct {
	svc   *service.PlannerService
	clock clock.Clock

	mu        sync.Mutex
	activeDay int
}

// NewInteractor selects today's weekday as the active day.
func NewInteractor(svc *service.PlannerService, clk clock.Clock) plannerin.Usecase {
	return &Interactor{svc: svc, clock: clk, activeDay: calendar.DayIndex(clk.Now())}
}

func (i *Interactor) Open(ctx context.Context) error {
	return i.svc.Open(ctx, i.ActiveDay())
}

func (i *Interactor) SelectDay(dayIndex int) error {
	if err := calendar.ValidDayIndex(dayIndex); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	i.mu.Lock()
	i.activeDay = dayIndex
	i.mu.Unlock()
	return nil
}

func (i *Interactor) ActiveDay() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.activeDay
}

func (i *Interactor) Day(_ context.Context) (dto.DayOutput, error) {
	return i.day(i.ActiveDay()), nil
}

func (i *Interactor) day(day int) dto.DayOutput {
	date := i.dateOf(day)
	tasks := i.svc.TasksFor(date)

	ptrs := make([]*domain.Task, len(tasks))
	out := make([]dto.TaskOutput, len(tasks))
	for idx := range tasks {
		ptrs[idx] = &tasks[idx]
		out[idx] = toTaskOutput(tasks[idx])
	}
	return dto.DayOutput{
		DayIndex:  day,
		DayName:   i.svc.DayName(day),
		Date:      date,
		Mode:      string(i.svc.Preferences().ModeFor(day)),
		IsWeekend: calendar.IsWeekend(day),
		Chaos:     domain.ChaosActive(ptrs),
		Progress:  domain.Progress(tasks),
		Tasks:     out,
	}
}

// Week summarizes Monday to Friday of the current week.
func (i *Interactor) Week(_ context.Context) (dto.WeekOutput, error) {
	prefs := i.svc.Preferences()
	active := i.ActiveDay()
	days := make([]dto.WeekDayOutput, 0, 5)
	for day := 0; day < calendar.DaysInWeek; day++ {
		if calendar.IsWeekend(day) {
			continue
		}
		days = append(days, i.weekDay(day, prefs, active))
	}
	return dto.WeekOutput{Days: days}, nil
}

func (i *Interactor) Regenerate(ctx context.Context, dayIndex int) (dto.DayOutput, error) {
	if err := calendar.ValidDayIndex(dayIndex); err != nil {
		return dto.DayOutput{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	mode := i.svc.Preferences().ModeFor(dayIndex)
	if _, err := i.svc.Regenerate(ctx, dayIndex, i.dateOf(dayIndex), mode); err != nil {
		return dto.DayOutput{}, err
	}
	return i.day(dayIndex), nil
}

func (i *Interactor) ToggleWFH(ctx context.Context, dayIndex int) (dto.WeekDayOutput, error) {
	if _, err := i.svc.ToggleWFH(ctx, dayIndex); err != nil {
		return dto.WeekDayOutput{}, err
	}
	return i.weekDay(dayIndex, i.svc.Preferences(), i.ActiveDay()), nil
}

func (i *Interactor) AddTask(ctx context.Context, dayIndex int, input dto.AddTaskInput) (dto.TaskOutput, error) {
	if err := calendar.ValidDayIndex(dayIndex); err != nil {
		return dto.TaskOutput{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	taskID, err := i.svc.AddTask(ctx, dayIndex, i.dateOf(dayIndex), service.NewTask{
		Title:     input.Title,
		Duration:  input.Duration,
		Type:      domain.TaskType(input.Type),
		StartTime: input.StartTime,
	})
	if err != nil {
		return dto.TaskOutput{}, err
	}
	return i.task(taskID)
}

func (i *Interactor) AddWeekendPack(ctx context.Context, dayIndex int, pack string) ([]dto.TaskOutput, error) {
	if err := calendar.ValidDayIndex(dayIndex); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	ids, err := i.svc.AddWeekendPack(ctx, dayIndex, i.dateOf(dayIndex), domain.WeekendPack(pack))
	if err != nil {
		return nil, err
	}
	out := make([]dto.TaskOutput, 0, len(ids))
	for _, taskID := range ids {
		t, err := i.task(taskID)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// SetCompleted ignores unknown ids and reports them with Found false.
func (i *Interactor) SetCompleted(ctx context.Context, taskID string, completed bool) (dto.CompletionOutput, error) {
	if _, ok := i.svc.Task(taskID); !ok {
		return dto.CompletionOutput{TaskID: taskID}, nil
	}
	changed, err := i.svc.SetCompleted(ctx, taskID, completed)
	if err != nil {
		return dto.CompletionOutput{}, err
	}
	return dto.CompletionOutput{TaskID: taskID, Found: true, Completed: completed, Changed: changed}, nil
}

func (i *Interactor) ToggleCompleted(ctx context.Context, taskID string) (dto.CompletionOutput, error) {
	if _, ok := i.svc.Task(taskID); !ok {
		return dto.CompletionOutput{TaskID: taskID}, nil
	}
	done, err := i.svc.ToggleCompleted(ctx, taskID)
	if err != nil {
		return dto.CompletionOutput{}, err
	}
	return dto.CompletionOutput{TaskID: taskID, Found: true, Completed: done, Changed: true}, nil
}

// EditTask ignores unknown ids and reports them with Found false.
func (i *Interactor) EditTask(ctx context.Context, input dto.EditTaskInput) (dto.TaskChangeOutput, error) {
	patch := domain.TaskPatch{Title: input.Title, Duration: input.Duration, StartTime: input.StartTime}
	if input.Type != nil {
		taskType := domain.TaskType(*input.Type)
		patch.Type = &taskType
	}
	found, err := i.svc.EditTask(ctx, input.TaskID, patch)
	if err != nil {
		return dto.TaskChangeOutput{}, err
	}
	if !found {
		return dto.TaskChangeOutput{Task: dto.TaskOutput{ID: input.TaskID}}, nil
	}
	task, err := i.task(input.TaskID)
	if err != nil {
		return dto.TaskChangeOutput{}, err
	}
	return dto.TaskChangeOutput{Task: task, Found: true}, nil
}

func (i *Interactor) ApplyMood(ctx context.Context, dayIndex int, mood string) (dto.AdaptOutput, error) {
	if err := calendar.ValidDayIndex(dayIndex); err != nil {
		return dto.AdaptOutput{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	date := i.dateOf(dayIndex)
	scaled, err := i.svc.ApplyMood(ctx, date, domain.Mood(mood))
	if err != nil {
		return dto.AdaptOutput{}, err
	}
	return dto.AdaptOutput{Date: date, Affected: scaled, Mood: mood}, nil
}

// ToggleChaos reports Affected zero when date has no incomplete task to change.
func (i *Interactor) ToggleChaos(ctx context.Context, dayIndex int) (dto.AdaptOutput, error) {
	if err := calendar.ValidDayIndex(dayIndex); err != nil {
		return dto.AdaptOutput{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	date := i.dateOf(dayIndex)
	active, affected, err := i.svc.ToggleChaos(ctx, date)
	if err != nil {
		return dto.AdaptOutput{}, err
	}
	return dto.AdaptOutput{Date: date, Affected: affected, Chaos: active, Mood: string(i.svc.Preferences().Mood)}, nil
}

func (i *Interactor) ListTemplates(_ context.Context, mode string) ([]dto.TemplateOutput, error) {
	m := domain.Mode(mode)
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	list := i.svc.Templates(m)
	out := make([]dto.TemplateOutput, 0, len(list))
	for _, tpl := range list {
		out = append(out, toTemplateOutput(m, tpl))
	}
	return out, nil
}

func (i *Interactor) AddTemplate(ctx context.Context, input dto.TemplateInput) (dto.TemplateOutput, error) {
	mode := domain.Mode(input.Mode)
	templateID, err := i.svc.AddTemplate(ctx, mode, input.Title, input.Duration, domain.TaskType(input.Type), input.StartTime)
	if err != nil {
		return dto.TemplateOutput{}, err
	}
	return i.template(mode, templateID)
}

func (i *Interactor) EditTemplate(ctx context.Context, input dto.EditTemplateInput) (dto.TemplateOutput, error) {
	mode := domain.Mode(input.Mode)
	patch := domain.TemplatePatch{Title: input.Title, Duration: input.Duration, StartTime: input.StartTime}
	if input.Type != nil {
		taskType := domain.TaskType(*input.Type)
		patch.Type = &taskType
	}
	if err := i.svc.EditTemplate(ctx, mode, input.TemplateID, patch); err != nil {
		return dto.TemplateOutput{}, err
	}
	return i.template(mode, input.TemplateID)
}

func (i *Interactor) RemoveTemplate(ctx context.Context, mode, templateID string) error {
	return i.svc.RemoveTemplate(ctx, domain.Mode(mode), templateID)
}

func (i *Interactor) Preferences(_ context.Context) (dto.PreferencesOutput, error) {
	prefs := i.svc.Preferences()
	return dto.PreferencesOutput{
		OfficeDays:  slices.Clone(prefs.OfficeDays),
		WFHDays:     slices.Clone(prefs.WFHDays),
		UseSound:    prefs.UseSound,
		UseConfetti: prefs.UseConfetti,
		Mood:        string(prefs.Mood),
		LastSaved:   i.svc.LastSaved(),
	}, nil
}

func (i *Interactor) Reset(ctx context.Context) error {
	return i.svc.Reset(ctx, i.ActiveDay())
}

func (i *Interactor) dateOf(dayIndex int) string {
	return calendar.DateOfCurrentWeek(i.clock.Now(), dayIndex)
}

func (i *Interactor) weekDay(day int, prefs domain.UserPreferences, active int) dto.WeekDayOutput {
	date := i.dateOf(day)
	tasks := i.svc.TasksFor(date)
	done := 0
	for _, t := range tasks {
		if t.Completed {
			done++
		}
	}
	return dto.WeekDayOutput{
		DayIndex:  day,
		DayName:   i.svc.DayName(day),
		Date:      date,
		Mode:      string(prefs.ModeFor(day)),
		Total:     len(tasks),
		Completed: done,
		Active:    day == active,
	}
}

func (i *Interactor) task(taskID string) (dto.TaskOutput, error) {
	t, ok := i.svc.Task(taskID)
	if !ok {
		return dto.TaskOutput{}, fmt.Errorf("task %s: %w", taskID, apperrors.ErrNotFound)
	}
	return toTaskOutput(t), nil
}

func (i *Interactor) template(mode domain.Mode, templateID string) (dto.TemplateOutput, error) {
	for _, tpl := range i.svc.Templates(mode) {
		if tpl.ID == templateID {
			return toTemplateOutput(mode, tpl), nil
		}
	}
	return dto.TemplateOutput{}, fmt.Errorf("template %s in %s: %w", templateID, mode, apperrors.ErrNotFound)
}

func toTaskOutput(t domain.Task) dto.TaskOutput {
	out := dto.TaskOutput{
		ID:        t.ID,
		Title:     t.Title,
		Type:      string(t.Type),
		StartTime: t.StartTime,
		Duration:  t.Duration,
		Completed: t.Completed,
		IsMini:    t.IsMini,
		IsFixed:   t.IsFixed,
		DayIndex:  t.DayIndex,
		Date:      t.Date,
	}
	if t.OriginalDuration != nil {
		out.OriginalDuration = *t.OriginalDuration
	}
	return out
}

func toTemplateOutput(mode domain.Mode, t domain.TaskTemplate) dto.TemplateOutput {
	return dto.TemplateOutput{
		ID:        t.ID,
		Mode:      string(mode),
		Title:     t.Title,
		Type:      string(t.Type),
		Duration:  t.Duration,
		StartTime: t.StartTime,
		IsFixed:   t.IsFixed,
	}
}
