package domain

import (
	"fmt"
	"slices"
)

type Mood string

const (
	MoodKO        Mood = "ko"
	MoodNormal    Mood = "normal"
	MoodMotivated Mood = "motivated"
)

func (m Mood) Validate() error {
	switch m {
	case MoodKO, MoodNormal, MoodMotivated:
		return nil
	default:
		return fmt.Errorf("unsupported mood %q", string(m))
	}
}

// Multiplier is the duration factor applied to flexible tasks.
func (m Mood) Multiplier() float64 {
	switch m {
	case MoodKO:
		return 0.5
	case MoodMotivated:
		return 1.2
	default:
		return 1
	}
}

type UserPreferences struct {
	OfficeDays      []int     `json:"officeDays"`
	WFHDays         []int     `json:"wfhDays"`
	UseSound        bool      `json:"useSound"`
	UseConfetti     bool      `json:"useConfetti"`
	Mood            Mood      `json:"mood"`
	CustomTemplates Templates `json:"customTemplates"`
}

func DefaultPreferences() UserPreferences {
	return UserPreferences{
		OfficeDays:  []int{1, 2, 3},
		WFHDays:     []int{0, 4},
		UseSound:    true,
		UseConfetti: true,
		Mood:        MoodNormal,
	}
}

// ModeFor picks the template set for a day: wfh when listed in WFHDays, office otherwise.
func (p UserPreferences) ModeFor(dayIndex int) Mode {
	if slices.Contains(p.WFHDays, dayIndex) {
		return ModeWFH
	}
	return ModeOffice
}

// ToggleWFH adds or removes dayIndex from WFHDays.
func (p *UserPreferences) ToggleWFH(dayIndex int) {
	if i := slices.Index(p.WFHDays, dayIndex); i >= 0 {
		p.WFHDays = slices.Delete(slices.Clone(p.WFHDays), i, i+1)
		return
	}
	p.WFHDays = append(slices.Clone(p.WFHDays), dayIndex)
}

// WantsCelebration reports whether any completion effect is enabled.
func (p UserPreferences) WantsCelebration() bool {
	return p.UseSound || p.UseConfetti
}

func (p UserPreferences) Clone() UserPreferences {
	p.OfficeDays = slices.Clone(p.OfficeDays)
	p.WFHDays = slices.Clone(p.WFHDays)
	p.CustomTemplates = p.CustomTemplates.Clone()
	return p
}
