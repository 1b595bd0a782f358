package domain

import "time"

// StorageKey names the persisted record.
const StorageKey = "focusflow_data_v1"

// Snapshot is the persisted state: all tasks plus the preferences record.
type Snapshot struct {
	Tasks       []Task           `json:"tasks"`
	Preferences *UserPreferences `json:"preferences"`
	LastSaved   *time.Time       `json:"lastSaved,omitempty"`
}

// Migrate repairs a loaded snapshot in place of a version field: missing
// preferences become defaults, a catalog with neither mode gets the default
// templates, unknown moods reset to normal, and undated tasks are assigned
// today. Running it twice is the same as running it once.
func Migrate(s Snapshot, today string, t Translate) (Snapshot, []string) {
	var applied []string

	prefs := DefaultPreferences()
	if s.Preferences != nil {
		prefs = s.Preferences.Clone()
	} else {
		applied = append(applied, "preferences")
	}
	if prefs.CustomTemplates.Empty() {
		prefs.CustomTemplates = DefaultTemplates(t)
		applied = append(applied, "templates")
	}
	if prefs.Mood.Validate() != nil {
		prefs.Mood = MoodNormal
		applied = append(applied, "mood")
	}

	tasks := make([]Task, 0, len(s.Tasks))
	dated := 0
	for _, task := range s.Tasks {
		if task.Date == "" {
			task.Date = today
			dated++
		}
		tasks = append(tasks, task.Clone())
	}
	if dated > 0 {
		applied = append(applied, "task-dates")
	}

	return Snapshot{Tasks: tasks, Preferences: &prefs, LastSaved: s.LastSaved}, applied
}
