package dto

import "time"

type TaskOutput struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Type      string `json:"type"`
	StartTime string `json:"startTime,omitempty"`
	Duration  int    `json:"duration"`
	// OriginalDuration is zero unless the task is shrunk by chaos mode.
	OriginalDuration int    `json:"originalDuration,omitempty"`
	Completed        bool   `json:"completed"`
	IsMini           bool   `json:"isMini"`
	IsFixed          bool   `json:"isFixed"`
	DayIndex         int    `json:"dayIndex"`
	Date             string `json:"date"`
}

type DayOutput struct {
	DayIndex  int          `json:"dayIndex"`
	DayName   string       `json:"dayName"`
	Date      string       `json:"date"`
	Mode      string       `json:"mode"`
	IsWeekend bool         `json:"isWeekend"`
	Chaos     bool         `json:"chaos"`
	Progress  int          `json:"progress"`
	Tasks     []TaskOutput `json:"tasks"`
}

type WeekDayOutput struct {
	DayIndex  int    `json:"dayIndex"`
	DayName   string `json:"dayName"`
	Date      string `json:"date"`
	Mode      string `json:"mode"`
	Total     int    `json:"total"`
	Completed int    `json:"completed"`
	Active    bool   `json:"active"`
}

type WeekOutput struct {
	Days []WeekDayOutput `json:"days"`
}

type AddTaskInput struct {
	Title     string
	Duration  int
	Type      string
	StartTime string
}

// EditTaskInput leaves nil fields untouched. An empty StartTime clears it.
type EditTaskInput struct {
	TaskID    string
	Title     *string
	Type      *string
	Duration  *int
	StartTime *string
}

// CompletionOutput has Found false, and nothing changed, for an unknown id.
type CompletionOutput struct {
	TaskID    string
	Found     bool
	Completed bool
	Changed   bool
}

// TaskChangeOutput carries only the id when no task has it.
type TaskChangeOutput struct {
	Task  TaskOutput
	Found bool
}

// AdaptOutput has Affected zero when nothing on Date changed.
type AdaptOutput struct {
	Date     string
	Affected int
	Chaos    bool
	Mood     string
}

type TemplateOutput struct {
	ID        string
	Mode      string
	Title     string
	Type      string
	Duration  int
	StartTime string
	IsFixed   bool
}

type TemplateInput struct {
	Mode      string
	Title     string
	Duration  int
	Type      string
	StartTime string
}

type EditTemplateInput struct {
	Mode       string
	TemplateID string
	Title      *string
	Type       *string
	Duration   *int
	StartTime  *string
}

type PreferencesOutput struct {
	OfficeDays  []int
	WFHDays     []int
	UseSound    bool
	UseConfetti bool
	Mood        string
	LastSaved   time.Time
}

// CelebrationOutput is emitted when a task flips to completed and the user
// has sound or confetti enabled.
type CelebrationOutput struct {
	TaskTitle string
	Sound     bool
	Confetti  bool
}
