package domain

import (
	"fmt"
	"strings"
)

type TaskType string

const (
	TaskTypeWater    TaskType = "water"
	TaskTypeFood     TaskType = "food"
	TaskTypeWork     TaskType = "work"
	TaskTypeStudy    TaskType = "study"
	TaskTypeExercise TaskType = "exercise"
	TaskTypeBreak    TaskType = "break"
	TaskTypeOther    TaskType = "other"
)

func (t TaskType) Validate() error {
	switch t {
	case TaskTypeWater, TaskTypeFood, TaskTypeWork, TaskTypeStudy, TaskTypeExercise, TaskTypeBreak, TaskTypeOther:
		return nil
	default:
		return fmt.Errorf("unsupported task type %q", string(t))
	}
}

// Heavy reports whether chaos mode compresses tasks of this type.
func (t TaskType) Heavy() bool {
	switch t {
	case TaskTypeStudy, TaskTypeExercise, TaskTypeWork:
		return true
	case TaskTypeWater, TaskTypeFood, TaskTypeBreak, TaskTypeOther:
		return false
	default:
		return false
	}
}

// Task is a scheduled instance on one concrete date.
type Task struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	Type             TaskType `json:"type"`
	StartTime        string   `json:"startTime,omitempty"`
	Duration         int      `json:"duration"`
	OriginalDuration *int     `json:"originalDuration,omitempty"`
	Completed        bool     `json:"completed"`
	DayIndex         int      `json:"dayIndex"`
	Date             string   `json:"date"`
	IsMini           bool     `json:"isMini"`
	IsFixed          bool     `json:"isFixed"`
}

// Clone returns a copy that shares no pointers with t.
func (t Task) Clone() Task {
	if t.OriginalDuration != nil {
		v := *t.OriginalDuration
		t.OriginalDuration = &v
	}
	return t
}

// TaskPatch carries the fields of an edit; nil fields are left untouched.
// An empty StartTime clears the start time.
type TaskPatch struct {
	Title     *string
	Type      *TaskType
	Duration  *int
	StartTime *string
}

func (p TaskPatch) Validate() error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if p.Type != nil {
		if err := p.Type.Validate(); err != nil {
			return err
		}
	}
	if p.Duration != nil {
		if err := ValidateDuration(*p.Duration); err != nil {
			return err
		}
	}
	if p.StartTime != nil && *p.StartTime != "" {
		if err := ValidateStartTime(*p.StartTime); err != nil {
			return err
		}
	}
	return nil
}

func (p TaskPatch) Apply(t *Task) {
	if p.Title != nil {
		t.Title = strings.TrimSpace(*p.Title)
	}
	if p.Type != nil {
		t.Type = *p.Type
	}
	if p.Duration != nil {
		t.Duration = *p.Duration
	}
	if p.StartTime != nil {
		t.StartTime = *p.StartTime
	}
}

func ValidateDuration(minutes int) error {
	if minutes < 1 {
		return fmt.Errorf("duration must be a positive number of minutes, got %d", minutes)
	}
	return nil
}

// ValidateStartTime accepts zero-padded 24-hour HH:MM values.
func ValidateStartTime(value string) error {
	if len(value) != 5 || value[2] != ':' {
		return fmt.Errorf("start time %q must be HH:MM", value)
	}
	for _, i := range []int{0, 1, 3, 4} {
		if value[i] < '0' || value[i] > '9' {
			return fmt.Errorf("start time %q must be HH:MM", value)
		}
	}
	hh := int(value[0]-'0')*10 + int(value[1]-'0')
	mm := int(value[3]-'0')*10 + int(value[4]-'0')
	if hh > 23 || mm > 59 {
		return fmt.Errorf("start time %q out of range", value)
	}
	return nil
}

// CompletionCue tells the effects collaborator which celebrations are enabled.
type CompletionCue struct {
	TaskTitle string
	Sound     bool
	Confetti  bool
}
