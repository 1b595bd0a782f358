package service

import "focusflow/internal/modules/planner/domain"

// TaskStore owns every task instance across all dates. Tasks live in an
// arena slice in insertion order; index maps ids to arena positions.
type TaskStore struct {
	tasks []domain.Task
	index map[string]int
}

// NewTaskStore loads tasks in order, skipping any whose id was already seen.
// It returns the number of skipped duplicates.
func NewTaskStore(tasks []domain.Task) (*TaskStore, int) {
	s := &TaskStore{tasks: make([]domain.Task, 0, len(tasks)), index: make(map[string]int, len(tasks))}
	dropped := 0
	for _, t := range tasks {
		if _, dup := s.index[t.ID]; dup {
			dropped++
			continue
		}
		s.index[t.ID] = len(s.tasks)
		s.tasks = append(s.tasks, t.Clone())
	}
	return s, dropped
}

func (s *TaskStore) Len() int { return len(s.tasks) }

func (s *TaskStore) Get(id string) (domain.Task, bool) {
	i, ok := s.index[id]
	if !ok {
		return domain.Task{}, false
	}
	return s.tasks[i].Clone(), true
}

// Update applies fn to the stored task in place. It reports false when id is unknown.
func (s *TaskStore) Update(id string, fn func(*domain.Task)) bool {
	i, ok := s.index[id]
	if !ok {
		return false
	}
	fn(&s.tasks[i])
	return true
}

// Append adds tasks whose ids are not yet stored and reports how many were added.
func (s *TaskStore) Append(tasks ...domain.Task) int {
	added := 0
	for _, t := range tasks {
		if _, dup := s.index[t.ID]; dup {
			continue
		}
		s.index[t.ID] = len(s.tasks)
		s.tasks = append(s.tasks, t.Clone())
		added++
	}
	return added
}

// ReplaceDate drops every task on date and appends the given set. Tasks on
// other dates keep their values and relative order.
func (s *TaskStore) ReplaceDate(date string, tasks []domain.Task) (removed int) {
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if t.Date == date {
			removed++
			continue
		}
		kept = append(kept, t)
	}
	clear(s.tasks[len(kept):])
	s.tasks = kept
	s.reindex()
	s.Append(tasks...)
	return removed
}

// OnDate returns pointers into the arena for the tasks of date, in arena
// order. They are invalidated by the next Append or ReplaceDate.
func (s *TaskStore) OnDate(date string) []*domain.Task {
	var out []*domain.Task
	for i := range s.tasks {
		if s.tasks[i].Date == date {
			out = append(out, &s.tasks[i])
		}
	}
	return out
}

// ForDate returns copies of the tasks of date: incomplete first, then by start time.
func (s *TaskStore) ForDate(date string) []domain.Task {
	out := []domain.Task{}
	for _, t := range s.tasks {
		if t.Date == date {
			out = append(out, t.Clone())
		}
	}
	domain.SortForDay(out)
	return out
}

// All returns copies of every task in arena order.
func (s *TaskStore) All() []domain.Task {
	out := make([]domain.Task, len(s.tasks))
	for i, t := range s.tasks {
		out[i] = t.Clone()
	}
	return out
}

func (s *TaskStore) reindex() {
	clear(s.index)
	for i, t := range s.tasks {
		s.index[t.ID] = i
	}
}
