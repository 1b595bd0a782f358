package in

import (
	"context"

	"focusflow/internal/modules/planner/dto"
	plannerin "focusflow/internal/modules/planner/port/in"
)

// TUIHandler exposes the planner to the terminal UI. Day-scoped calls take
// the day explicitly so the UI owns navigation.
type TUIHandler struct {
	usecase plannerin.Usecase
}

func NewTUIHandler(usecase plannerin.Usecase) TUIHandler {
	return TUIHandler{usecase: usecase}
}

func (h TUIHandler) ActiveDay() int {
	return h.usecase.ActiveDay()
}

func (h TUIHandler) LoadDay(ctx context.Context, dayIndex int) (dto.DayOutput, error) {
	if err := h.usecase.SelectDay(dayIndex); err != nil {
		return dto.DayOutput{}, err
	}
	return h.usecase.Day(ctx)
}

func (h TUIHandler) Week(ctx context.Context) (dto.WeekOutput, error) {
	return h.usecase.Week(ctx)
}

func (h TUIHandler) Regenerate(ctx context.Context, dayIndex int) (dto.DayOutput, error) {
	return h.usecase.Regenerate(ctx, dayIndex)
}

func (h TUIHandler) ToggleWFH(ctx context.Context, dayIndex int) (dto.WeekDayOutput, error) {
	return h.usecase.ToggleWFH(ctx, dayIndex)
}

func (h TUIHandler) ToggleCompleted(ctx context.Context, taskID string) (dto.CompletionOutput, error) {
	return h.usecase.ToggleCompleted(ctx, taskID)
}

func (h TUIHandler) AddTask(ctx context.Context, dayIndex int, title string, minutes int, taskType, startTime string) (dto.TaskOutput, error) {
	return h.usecase.AddTask(ctx, dayIndex, dto.AddTaskInput{Title: title, Duration: minutes, Type: taskType, StartTime: startTime})
}

func (h TUIHandler) AddWeekendPack(ctx context.Context, dayIndex int, pack string) ([]dto.TaskOutput, error) {
	return h.usecase.AddWeekendPack(ctx, dayIndex, pack)
}

func (h TUIHandler) SetStartTime(ctx context.Context, taskID, startTime string) (dto.TaskChangeOutput, error) {
	return h.usecase.EditTask(ctx, dto.EditTaskInput{TaskID: taskID, StartTime: &startTime})
}

func (h TUIHandler) SetDuration(ctx context.Context, taskID string, minutes int) (dto.TaskChangeOutput, error) {
	return h.usecase.EditTask(ctx, dto.EditTaskInput{TaskID: taskID, Duration: &minutes})
}

func (h TUIHandler) ApplyMood(ctx context.Context, dayIndex int, mood string) (dto.AdaptOutput, error) {
	return h.usecase.ApplyMood(ctx, dayIndex, mood)
}

func (h TUIHandler) ToggleChaos(ctx context.Context, dayIndex int) (dto.AdaptOutput, error) {
	return h.usecase.ToggleChaos(ctx, dayIndex)
}

func (h TUIHandler) ListTemplates(ctx context.Context, mode string) ([]dto.TemplateOutput, error) {
	return h.usecase.ListTemplates(ctx, mode)
}

func (h TUIHandler) Preferences(ctx context.Context) (dto.PreferencesOutput, error) {
	return h.usecase.Preferences(ctx)
}
