package service

import "focusflow/internal/modules/planner/domain"

// AdaptationEngine runs the bulk transforms over one date of the store.
// Both skip completed tasks.
type AdaptationEngine struct {
	store *TaskStore
}

func NewAdaptationEngine(store *TaskStore) *AdaptationEngine {
	return &AdaptationEngine{store: store}
}

// ApplyMood scales every flexible incomplete task on date and returns how many changed.
func (e *AdaptationEngine) ApplyMood(date string, mood domain.Mood) int {
	scaled := 0
	for _, t := range e.store.OnDate(date) {
		if domain.ScaleForMood(t, mood) {
			scaled++
		}
	}
	return scaled
}

// ToggleChaos restores the date when any incomplete task is mini, otherwise
// shrinks it. It reports whether chaos is now active and how many tasks changed.
func (e *AdaptationEngine) ToggleChaos(date string) (active bool, affected int) {
	tasks := e.store.OnDate(date)
	restoring := domain.ChaosActive(tasks)
	for _, t := range tasks {
		if t.Completed {
			continue
		}
		if restoring {
			domain.Restore(t)
		} else {
			domain.Shrink(t)
		}
		affected++
	}
	return !restoring && affected > 0, affected
}
