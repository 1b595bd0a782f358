package in

import (
	"context"

	"focusflow/internal/modules/planner/dto"
)

// Usecase is the planner as seen by the CLI and the TUI. Day-scoped
// operations take the day explicitly; the selected day, which defaults to
// today, only drives Day, Week and Reset. Task mutations on unknown ids are
// no-ops reported through Found.
type Usecase interface {
	Open(ctx context.Context) error
	SelectDay(dayIndex int) error
	ActiveDay() int

	Day(ctx context.Context) (dto.DayOutput, error)
	Week(ctx context.Context) (dto.WeekOutput, error)
	Regenerate(ctx context.Context, dayIndex int) (dto.DayOutput, error)
	ToggleWFH(ctx context.Context, dayIndex int) (dto.WeekDayOutput, error)

	AddTask(ctx context.Context, dayIndex int, input dto.AddTaskInput) (dto.TaskOutput, error)
	AddWeekendPack(ctx context.Context, dayIndex int, pack string) ([]dto.TaskOutput, error)
	SetCompleted(ctx context.Context, taskID string, completed bool) (dto.CompletionOutput, error)
	ToggleCompleted(ctx context.Context, taskID string) (dto.CompletionOutput, error)
	EditTask(ctx context.Context, input dto.EditTaskInput) (dto.TaskChangeOutput, error)

	ApplyMood(ctx context.Context, dayIndex int, mood string) (dto.AdaptOutput, error)
	ToggleChaos(ctx context.Context, dayIndex int) (dto.AdaptOutput, error)

	ListTemplates(ctx context.Context, mode string) ([]dto.TemplateOutput, error)
	AddTemplate(ctx context.Context, input dto.TemplateInput) (dto.TemplateOutput, error)
	EditTemplate(ctx context.Context, input dto.EditTemplateInput) (dto.TemplateOutput, error)
	RemoveTemplate(ctx context.Context, mode, templateID string) error

	Preferences(ctx context.Context) (dto.PreferencesOutput, error)
	Reset(ctx context.Context) error
}
