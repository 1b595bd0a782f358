package in

import (
	"context"

	"focusflow/internal/modules/planner/dto"
	plannerin "focusflow/internal/modules/planner/port/in"
)

type CLIHandler struct {
	usecase plannerin.Usecase
}

func NewCLIHandler(usecase plannerin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Open(ctx context.Context) error {
	return h.usecase.Open(ctx)
}

func (h CLIHandler) SelectDay(dayIndex int) error {
	return h.usecase.SelectDay(dayIndex)
}

func (h CLIHandler) Day(ctx context.Context) (dto.DayOutput, error) {
	return h.usecase.Day(ctx)
}

func (h CLIHandler) Week(ctx context.Context) (dto.WeekOutput, error) {
	return h.usecase.Week(ctx)
}

// Regenerate rebuilds the selected day.
func (h CLIHandler) Regenerate(ctx context.Context) (dto.DayOutput, error) {
	return h.usecase.Regenerate(ctx, h.usecase.ActiveDay())
}

func (h CLIHandler) ToggleWFH(ctx context.Context) (dto.WeekDayOutput, error) {
	return h.usecase.ToggleWFH(ctx, h.usecase.ActiveDay())
}

func (h CLIHandler) AddTask(ctx context.Context, title string, minutes int, taskType, startTime string) (dto.TaskOutput, error) {
	return h.usecase.AddTask(ctx, h.usecase.ActiveDay(), dto.AddTaskInput{Title: title, Duration: minutes, Type: taskType, StartTime: startTime})
}

func (h CLIHandler) AddWeekendPack(ctx context.Context, pack string) ([]dto.TaskOutput, error) {
	return h.usecase.AddWeekendPack(ctx, h.usecase.ActiveDay(), pack)
}

func (h CLIHandler) SetCompleted(ctx context.Context, taskID string, completed bool) (dto.CompletionOutput, error) {
	return h.usecase.SetCompleted(ctx, taskID, completed)
}

func (h CLIHandler) ToggleCompleted(ctx context.Context, taskID string) (dto.CompletionOutput, error) {
	return h.usecase.ToggleCompleted(ctx, taskID)
}

func (h CLIHandler) EditTask(ctx context.Context, input dto.EditTaskInput) (dto.TaskChangeOutput, error) {
	return h.usecase.EditTask(ctx, input)
}

func (h CLIHandler) SetStartTime(ctx context.Context, taskID, startTime string) (dto.TaskChangeOutput, error) {
	return h.usecase.EditTask(ctx, dto.EditTaskInput{TaskID: taskID, StartTime: &startTime})
}

func (h CLIHandler) SetDuration(ctx context.Context, taskID string, minutes int) (dto.TaskChangeOutput, error) {
	return h.usecase.EditTask(ctx, dto.EditTaskInput{TaskID: taskID, Duration: &minutes})
}

func (h CLIHandler) ApplyMood(ctx context.Context, mood string) (dto.AdaptOutput, error) {
	return h.usecase.ApplyMood(ctx, h.usecase.ActiveDay(), mood)
}

func (h CLIHandler) ToggleChaos(ctx context.Context) (dto.AdaptOutput, error) {
	return h.usecase.ToggleChaos(ctx, h.usecase.ActiveDay())
}

func (h CLIHandler) ListTemplates(ctx context.Context, mode string) ([]dto.TemplateOutput, error) {
	return h.usecase.ListTemplates(ctx, mode)
}

func (h CLIHandler) AddTemplate(ctx context.Context, mode, title string, minutes int, taskType, startTime string) (dto.TemplateOutput, error) {
	return h.usecase.AddTemplate(ctx, dto.TemplateInput{Mode: mode, Title: title, Duration: minutes, Type: taskType, StartTime: startTime})
}

func (h CLIHandler) EditTemplate(ctx context.Context, input dto.EditTemplateInput) (dto.TemplateOutput, error) {
	return h.usecase.EditTemplate(ctx, input)
}

func (h CLIHandler) RemoveTemplate(ctx context.Context, mode, templateID string) error {
	return h.usecase.RemoveTemplate(ctx, mode, templateID)
}

func (h CLIHandler) Preferences(ctx context.Context) (dto.PreferencesOutput, error) {
	return h.usecase.Preferences(ctx)
}

func (h CLIHandler) Reset(ctx context.Context) error {
	return h.usecase.Reset(ctx)
}
