package domain

import (
	"fmt"
	"time"
)

const (
	exerciseStart = "18:00"
	studyStart    = "19:00"
)

// PlanRequest is everything the plan generator reads.
type PlanRequest struct {
	DayIndex  int
	Mode      Mode
	Date      string
	Templates Templates
	// Now seeds task ids; plans generated at different instants differ only in ids.
	Now       time.Time
	Translate Translate
}

// Generate materializes the tasks of one date from the mode's templates plus
// the built-in habits, sorted by start time.
func Generate(req PlanRequest) []Task {
	idBase := fmt.Sprintf("%s-%d", req.Date, req.Now.UnixMilli())
	templates := req.Templates.For(req.Mode)
	tasks := make([]Task, 0, len(templates)+2)

	for idx, tpl := range templates {
		tasks = append(tasks, Task{
			ID:        fmt.Sprintf("%s-%s-%d", idBase, tpl.ID, idx),
			Title:     tpl.Title,
			Type:      tpl.Type,
			StartTime: tpl.StartTime,
			Duration:  tpl.Duration,
			IsFixed:   tpl.IsFixed,
			DayIndex:  req.DayIndex,
			Date:      req.Date,
		})
	}

	for _, h := range habitsFor(req.DayIndex) {
		tasks = append(tasks, Task{
			ID:        fmt.Sprintf("%s-%s", idBase, h.taskType),
			Title:     req.Translate(h.titleKey),
			Type:      h.taskType,
			StartTime: h.startTime,
			Duration:  h.duration,
			DayIndex:  req.DayIndex,
			Date:      req.Date,
		})
	}

	SortByStartTime(tasks)
	return tasks
}

type habit struct {
	taskType  TaskType
	titleKey  string
	startTime string
	duration  int
}

// habitsFor returns the fixed smart habits of a weekday: exercise on
// Mon/Wed/Fri (40 minutes on Wednesday), study on Mon/Tue/Thu (60 on Monday).
func habitsFor(dayIndex int) []habit {
	var out []habit
	switch dayIndex {
	case 0, 2, 4:
		d := 45
		if dayIndex == 2 {
			d = 40
		}
		out = append(out, habit{taskType: TaskTypeExercise, titleKey: "tasks.exercise", startTime: exerciseStart, duration: d})
	}
	switch dayIndex {
	case 0, 1, 3:
		d := 45
		if dayIndex == 0 {
			d = 60
		}
		out = append(out, habit{taskType: TaskTypeStudy, titleKey: "tasks.study", startTime: studyStart, duration: d})
	}
	return out
}
