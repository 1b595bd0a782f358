package domain

import "math"

const (
	MinMoodDuration  = 5
	MinChaosDuration = 10
	chaosFactor      = 0.3
)

// ScaleForMood multiplies the current duration of a flexible, incomplete task.
// Repeated calls compound because the factor applies to the current value.
func ScaleForMood(t *Task, mood Mood) bool {
	if t.Completed || t.IsFixed {
		return false
	}
	t.Duration = max(MinMoodDuration, int(math.Round(float64(t.Duration)*mood.Multiplier())))
	return true
}

// ChaosActive reports whether any incomplete task is currently shrunk.
func ChaosActive(tasks []*Task) bool {
	for _, t := range tasks {
		if !t.Completed && t.IsMini {
			return true
		}
	}
	return false
}

// Shrink saves the current duration, compresses heavy types and flags the
// task as mini. Light types keep their duration but are still flagged.
func Shrink(t *Task) {
	original := t.Duration
	t.OriginalDuration = &original
	if t.Type.Heavy() {
		t.Duration = max(MinChaosDuration, int(math.Floor(float64(t.Duration)*chaosFactor)))
	}
	t.IsMini = true
}

// Restore undoes Shrink using the saved original duration.
func Restore(t *Task) {
	if t.OriginalDuration != nil {
		t.Duration = *t.OriginalDuration
	}
	t.OriginalDuration = nil
	t.IsMini = false
}
