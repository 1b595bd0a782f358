package domain_test

import (
	"testing"

	"focusflow/internal/modules/planner/domain"
)

func TestSortForDayCompletedLastThenTime(t *testing.T) {
	t.Parallel()
	tasks := []domain.Task{
		{ID: "a", StartTime: "09:00", Completed: true},
		{ID: "b"},
		{ID: "c", StartTime: "23:59"},
		{ID: "d", StartTime: "07:00"},
		{ID: "e", StartTime: "06:00", Completed: true},
	}
	domain.SortForDay(tasks)
	got := ""
	for _, task := range tasks {
		got += task.ID
	}
	// b and c share the sentinel key and keep their input order.
	if got != "dbcea" {
		t.Fatalf("unexpected order %q", got)
	}
}

func TestProgress(t *testing.T) {
	t.Parallel()
	if p := domain.Progress(nil); p != 0 {
		t.Fatalf("empty day progress = %d", p)
	}
	three := []domain.Task{{Completed: true}, {}, {}}
	if p := domain.Progress(three); p != 33 {
		t.Fatalf("1/3 progress = %d", p)
	}
	two := []domain.Task{{Completed: true}, {}}
	if p := domain.Progress(two); p != 50 {
		t.Fatalf("1/2 progress = %d", p)
	}
	all := []domain.Task{{Completed: true}, {Completed: true}}
	if p := domain.Progress(all); p != 100 {
		t.Fatalf("all done progress = %d", p)
	}
}

func TestSortTemplatesUntimedLast(t *testing.T) {
	t.Parallel()
	list := []domain.TaskTemplate{{ID: "x"}, {ID: "y", StartTime: "12:00"}, {ID: "z", StartTime: "08:00"}}
	domain.SortTemplates(list)
	if list[0].ID != "z" || list[1].ID != "y" || list[2].ID != "x" {
		t.Fatalf("unexpected template order: %+v", list)
	}
}

func TestValidateStartTime(t *testing.T) {
	t.Parallel()
	for _, ok := range []string{"00:00", "07:05", "23:59"} {
		if err := domain.ValidateStartTime(ok); err != nil {
			t.Fatalf("%q should be valid: %v", ok, err)
		}
	}
	for _, bad := range []string{"7:05", "24:00", "12:60", "ab:cd", "12-30", ""} {
		if err := domain.ValidateStartTime(bad); err == nil {
			t.Fatalf("%q should be rejected", bad)
		}
	}
}

func TestHeavyTypesAreExactlyStudyExerciseWork(t *testing.T) {
	t.Parallel()
	heavy := map[domain.TaskType]bool{domain.TaskTypeStudy: true, domain.TaskTypeExercise: true, domain.TaskTypeWork: true}
	for _, tt := range []domain.TaskType{domain.TaskTypeWater, domain.TaskTypeFood, domain.TaskTypeWork, domain.TaskTypeStudy, domain.TaskTypeExercise, domain.TaskTypeBreak, domain.TaskTypeOther} {
		if tt.Heavy() != heavy[tt] {
			t.Fatalf("%s heavy=%t", tt, tt.Heavy())
		}
	}
}
