package service

import (
	"fmt"
	"slices"
	"strings"

	"focusflow/internal/modules/planner/domain"
	apperrors "focusflow/internal/platform/errors"
	"focusflow/internal/platform/id"
)

// TemplateCatalog owns the office and wfh templates. Each mode's list is
// kept sorted by start time with untimed templates last.
type TemplateCatalog struct {
	idGen     id.Generator
	templates domain.Templates
}

func NewTemplateCatalog(idGen id.Generator, templates domain.Templates) *TemplateCatalog {
	c := &TemplateCatalog{idGen: idGen, templates: templates.Clone()}
	for _, mode := range []domain.Mode{domain.ModeOffice, domain.ModeWFH} {
		if list := c.templates.For(mode); list != nil {
			domain.SortTemplates(list)
		}
	}
	return c
}

func (c *TemplateCatalog) Add(mode domain.Mode, title string, duration int, taskType domain.TaskType, startTime string) (string, error) {
	if err := mode.Validate(); err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	tpl := domain.TaskTemplate{
		ID:        "tpl-" + c.idGen.New(),
		Title:     strings.TrimSpace(title),
		Type:      taskType,
		Duration:  duration,
		StartTime: startTime,
		IsFixed:   startTime != "",
	}
	if err := tpl.Validate(); err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	list := append(slices.Clone(c.templates.For(mode)), tpl)
	domain.SortTemplates(list)
	c.templates.Set(mode, list)
	return tpl.ID, nil
}

func (c *TemplateCatalog) Edit(mode domain.Mode, templateID string, patch domain.TemplatePatch) error {
	if err := mode.Validate(); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	list := slices.Clone(c.templates.For(mode))
	i := slices.IndexFunc(list, func(t domain.TaskTemplate) bool { return t.ID == templateID })
	if i < 0 {
		return fmt.Errorf("template %s in %s: %w", templateID, mode, apperrors.ErrNotFound)
	}
	merged := patch.Apply(list[i])
	if err := merged.Validate(); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	list[i] = merged
	domain.SortTemplates(list)
	c.templates.Set(mode, list)
	return nil
}

// Remove deletes a template and reports whether it existed.
func (c *TemplateCatalog) Remove(mode domain.Mode, templateID string) (bool, error) {
	if err := mode.Validate(); err != nil {
		return false, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	list := c.templates.For(mode)
	kept := slices.DeleteFunc(slices.Clone(list), func(t domain.TaskTemplate) bool { return t.ID == templateID })
	if len(kept) == len(list) {
		return false, nil
	}
	c.templates.Set(mode, kept)
	return true, nil
}

func (c *TemplateCatalog) List(mode domain.Mode) []domain.TaskTemplate {
	return slices.Clone(c.templates.For(mode))
}

func (c *TemplateCatalog) Snapshot() domain.Templates {
	return c.templates.Clone()
}
