package domain

import (
	"math"
	"slices"
	"strings"
)

// MissingTimeKey sorts tasks and templates without a start time last.
const MissingTimeKey = "23:59"

func TimeKey(startTime string) string {
	if startTime == "" {
		return MissingTimeKey
	}
	return startTime
}

// SortByStartTime orders by start time only; ties keep their input order.
func SortByStartTime(tasks []Task) {
	slices.SortStableFunc(tasks, func(a, b Task) int {
		return strings.Compare(TimeKey(a.StartTime), TimeKey(b.StartTime))
	})
}

// SortForDay puts incomplete tasks first, then orders by start time.
// Ties keep their input order.
func SortForDay(tasks []Task) {
	slices.SortStableFunc(tasks, func(a, b Task) int {
		if a.Completed != b.Completed {
			if a.Completed {
				return 1
			}
			return -1
		}
		return strings.Compare(TimeKey(a.StartTime), TimeKey(b.StartTime))
	})
}

// Progress is the rounded percentage of completed tasks, 0 for an empty day.
func Progress(tasks []Task) int {
	if len(tasks) == 0 {
		return 0
	}
	done := 0
	for _, t := range tasks {
		if t.Completed {
			done++
		}
	}
	return int(math.Round(float64(done) / float64(len(tasks)) * 100))
}
