package domain

import "fmt"

// Translate resolves a translation key, returning the key itself when unknown.
type Translate func(key string) string

// DefaultTemplates builds the starter routines for both modes.
func DefaultTemplates(t Translate) Templates {
	water := TaskTemplate{ID: "t-water", Title: t("tasks.water"), Type: TaskTypeWater, Duration: 5, StartTime: "07:00", IsFixed: true}
	dinner := TaskTemplate{ID: "t-dinner", Title: t("tasks.dinner"), Type: TaskTypeFood, Duration: 45, StartTime: "21:00", IsFixed: true}

	office := []TaskTemplate{
		water,
		{ID: "t-tea", Title: t("tasks.tea"), Type: TaskTypeWater, Duration: 15, StartTime: "09:30", IsFixed: false},
		{ID: "t-lunch1", Title: t("tasks.lunch1_office"), Type: TaskTypeFood, Duration: 20, StartTime: "11:00", IsFixed: true},
		{ID: "t-lunch2", Title: t("tasks.lunch2_office"), Type: TaskTypeFood, Duration: 45, StartTime: "14:00", IsFixed: true},
		dinner,
	}
	wfh := []TaskTemplate{
		water,
		{ID: "t-lunch1", Title: t("tasks.lunch1_wfh"), Type: TaskTypeFood, Duration: 30, StartTime: "11:00", IsFixed: true},
		{ID: "t-lunch2", Title: t("tasks.lunch2_wfh"), Type: TaskTypeFood, Duration: 45, StartTime: "14:00", IsFixed: true},
		dinner,
	}
	return Templates{Office: office, WFH: wfh}
}

type WeekendPack string

const (
	WeekendRelax  WeekendPack = "relax"
	WeekendChores WeekendPack = "chores"
	WeekendStudy  WeekendPack = "study"
)

type PackItem struct {
	Title    string
	Type     TaskType
	Duration int
}

// Items returns the untimed tasks a weekend pack contributes.
func (w WeekendPack) Items(t Translate) ([]PackItem, error) {
	switch w {
	case WeekendRelax:
		return []PackItem{
			{Title: t("tasks.read"), Type: TaskTypeBreak, Duration: 30},
			{Title: t("tasks.walk"), Type: TaskTypeExercise, Duration: 30},
			{Title: t("tasks.tasty_food"), Type: TaskTypeFood, Duration: 60},
		}, nil
	case WeekendChores:
		return []PackItem{
			{Title: t("tasks.laundry"), Type: TaskTypeWork, Duration: 15},
			{Title: t("tasks.supermarket"), Type: TaskTypeWork, Duration: 60},
			{Title: t("tasks.meal_prep"), Type: TaskTypeFood, Duration: 90},
		}, nil
	case WeekendStudy:
		return []PackItem{
			{Title: t("tasks.test"), Type: TaskTypeStudy, Duration: 45},
			{Title: t("tasks.review"), Type: TaskTypeStudy, Duration: 20},
		}, nil
	default:
		return nil, fmt.Errorf("unsupported weekend pack %q", string(w))
	}
}
