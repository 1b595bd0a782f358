package domain_test

import (
	"testing"

	"focusflow/internal/modules/planner/domain"
)

func ptrs(tasks []domain.Task) []*domain.Task {
	out := make([]*domain.Task, len(tasks))
	for i := range tasks {
		out[i] = &tasks[i]
	}
	return out
}

func TestScaleForMoodFloorsAtFiveAndSkipsFixedAndCompleted(t *testing.T) {
	t.Parallel()
	flexible := domain.Task{Duration: 8}
	fixed := domain.Task{Duration: 30, IsFixed: true}
	done := domain.Task{Duration: 30, Completed: true}

	if !domain.ScaleForMood(&flexible, domain.MoodKO) || flexible.Duration != 5 {
		t.Fatalf("8*0.5 should clamp to 5, got %d", flexible.Duration)
	}
	if domain.ScaleForMood(&fixed, domain.MoodKO) || fixed.Duration != 30 {
		t.Fatalf("fixed task must not scale, got %d", fixed.Duration)
	}
	if domain.ScaleForMood(&done, domain.MoodMotivated) || done.Duration != 30 {
		t.Fatalf("completed task must not scale, got %d", done.Duration)
	}
}

func TestScaleForMoodRounding(t *testing.T) {
	t.Parallel()
	cases := []struct {
		in   int
		mood domain.Mood
		want int
	}{
		{45, domain.MoodMotivated, 54},
		{25, domain.MoodKO, 13},
		{31, domain.MoodNormal, 31},
		{1, domain.MoodMotivated, 5},
	}
	for _, tc := range cases {
		task := domain.Task{Duration: tc.in}
		domain.ScaleForMood(&task, tc.mood)
		if task.Duration != tc.want {
			t.Fatalf("%d with %s: got %d want %d", tc.in, tc.mood, task.Duration, tc.want)
		}
	}
}

// Mood factors apply to the current duration, so switching moods compounds.
func TestScaleForMoodCompoundsAcrossCalls(t *testing.T) {
	t.Parallel()
	task := domain.Task{Duration: 40}
	domain.ScaleForMood(&task, domain.MoodKO)
	domain.ScaleForMood(&task, domain.MoodMotivated)
	if task.Duration != 24 {
		t.Fatalf("expected 40 -> 20 -> 24, got %d", task.Duration)
	}
}

func TestShrinkAndRestoreRoundTrip(t *testing.T) {
	t.Parallel()
	tasks := []domain.Task{
		{Type: domain.TaskTypeStudy, Duration: 50},
		{Type: domain.TaskTypeFood, Duration: 30},
		{Type: domain.TaskTypeWork, Duration: 20},
	}
	for _, task := range ptrs(tasks) {
		domain.Shrink(task)
	}
	if tasks[0].Duration != 15 || tasks[1].Duration != 30 || tasks[2].Duration != 10 {
		t.Fatalf("unexpected shrunk durations: %+v", tasks)
	}
	for _, task := range tasks {
		if !task.IsMini || task.OriginalDuration == nil {
			t.Fatalf("shrunk task must be mini with original duration: %+v", task)
		}
	}
	if *tasks[1].OriginalDuration != 30 {
		t.Fatalf("light task keeps its original duration, got %d", *tasks[1].OriginalDuration)
	}
	if !domain.ChaosActive(ptrs(tasks)) {
		t.Fatalf("chaos should be detected")
	}

	for _, task := range ptrs(tasks) {
		domain.Restore(task)
	}
	want := []int{50, 30, 20}
	for i, task := range tasks {
		if task.Duration != want[i] || task.IsMini || task.OriginalDuration != nil {
			t.Fatalf("task %d not restored: %+v", i, task)
		}
	}
}

func TestChaosActiveIgnoresCompletedMiniTasks(t *testing.T) {
	t.Parallel()
	tasks := []domain.Task{{IsMini: true, Completed: true}, {IsMini: false}}
	if domain.ChaosActive(ptrs(tasks)) {
		t.Fatalf("completed mini tasks must not count as active chaos")
	}
}
