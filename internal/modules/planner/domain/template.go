package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

type Mode string

const (
	ModeOffice Mode = "office"
	ModeWFH    Mode = "wfh"
)

func (m Mode) Validate() error {
	switch m {
	case ModeOffice, ModeWFH:
		return nil
	default:
		return fmt.Errorf("unsupported mode %q", string(m))
	}
}

// TaskTemplate is a reusable recipe belonging to one mode.
type TaskTemplate struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Type      TaskType `json:"type"`
	Duration  int      `json:"duration"`
	StartTime string   `json:"startTime,omitempty"`
	IsFixed   bool     `json:"isFixed"`
}

func (t TaskTemplate) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if err := t.Type.Validate(); err != nil {
		return err
	}
	if err := ValidateDuration(t.Duration); err != nil {
		return err
	}
	if t.StartTime != "" {
		return ValidateStartTime(t.StartTime)
	}
	return nil
}

// TemplatePatch merges into an existing template. A non-empty StartTime
// also marks the template fixed.
type TemplatePatch struct {
	Title     *string
	Type      *TaskType
	Duration  *int
	StartTime *string
}

func (p TemplatePatch) Apply(t TaskTemplate) TaskTemplate {
	if p.Title != nil {
		t.Title = strings.TrimSpace(*p.Title)
	}
	if p.Type != nil {
		t.Type = *p.Type
	}
	if p.Duration != nil {
		t.Duration = *p.Duration
	}
	if p.StartTime != nil {
		t.StartTime = *p.StartTime
		t.IsFixed = t.IsFixed || *p.StartTime != ""
	}
	return t
}

// Templates is the per-mode template catalog. A nil list means the mode was
// never populated, which is distinct from an emptied one.
type Templates struct {
	Office []TaskTemplate `json:"office"`
	WFH    []TaskTemplate `json:"wfh"`
}

// UnmarshalJSON reads anything but an object as a never-populated catalog,
// which Migrate replaces with the defaults.
func (t *Templates) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		*t = Templates{}
		return nil
	}
	type plain Templates
	var out plain
	if err := json.Unmarshal(data, &out); err != nil {
		return err
	}
	*t = Templates(out)
	return nil
}

func (t Templates) For(mode Mode) []TaskTemplate {
	if mode == ModeWFH {
		return t.WFH
	}
	return t.Office
}

func (t *Templates) Set(mode Mode, list []TaskTemplate) {
	if list == nil {
		list = []TaskTemplate{}
	}
	if mode == ModeWFH {
		t.WFH = list
		return
	}
	t.Office = list
}

func (t Templates) Clone() Templates {
	out := Templates{}
	if t.Office != nil {
		out.Office = slices.Clone(t.Office)
	}
	if t.WFH != nil {
		out.WFH = slices.Clone(t.WFH)
	}
	return out
}

// Empty reports whether neither mode has ever been populated.
func (t Templates) Empty() bool {
	return t.Office == nil && t.WFH == nil
}

func SortTemplates(list []TaskTemplate) {
	slices.SortStableFunc(list, func(a, b TaskTemplate) int {
		return strings.Compare(TimeKey(a.StartTime), TimeKey(b.StartTime))
	})
}
