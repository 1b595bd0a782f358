package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focusflow/internal/modules/planner/domain"
	"focusflow/internal/modules/planner/service"
	apperrors "focusflow/internal/platform/errors"
)

func TestCatalogAddKeepsModeSortedAndFixesTimedTemplates(t *testing.T) {
	c := service.NewTemplateCatalog(&seqID{}, domain.Templates{})
	untimed, err := c.Add(domain.ModeOffice, "Stretch", 10, domain.TaskTypeBreak, "")
	require.NoError(t, err)
	timed, err := c.Add(domain.ModeOffice, " Standup ", 15, domain.TaskTypeWork, "09:15")
	require.NoError(t, err)
	_, err = c.Add(domain.ModeOffice, "Coffee", 5, domain.TaskTypeWater, "08:00")
	require.NoError(t, err)

	list := c.List(domain.ModeOffice)
	require.Len(t, list, 3)
	assert.Equal(t, "Coffee", list[0].Title)
	assert.Equal(t, timed, list[1].ID)
	assert.Equal(t, "Standup", list[1].Title)
	assert.True(t, list[1].IsFixed)
	assert.Equal(t, untimed, list[2].ID)
	assert.False(t, list[2].IsFixed)
	assert.Empty(t, c.List(domain.ModeWFH))
}

func TestCatalogAddRejectsInvalidInput(t *testing.T) {
	c := service.NewTemplateCatalog(&seqID{}, domain.Templates{})
	cases := []struct {
		name     string
		mode     domain.Mode
		title    string
		duration int
		typ      domain.TaskType
		start    string
	}{
		{"zero duration", domain.ModeOffice, "x", 0, domain.TaskTypeOther, ""},
		{"negative duration", domain.ModeOffice, "x", -5, domain.TaskTypeOther, ""},
		{"blank title", domain.ModeWFH, "  ", 10, domain.TaskTypeOther, ""},
		{"bad type", domain.ModeWFH, "x", 10, domain.TaskType("nap"), ""},
		{"bad mode", domain.Mode("weekend"), "x", 10, domain.TaskTypeOther, ""},
		{"bad time", domain.ModeOffice, "x", 10, domain.TaskTypeOther, "9am"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := c.Add(tc.mode, tc.title, tc.duration, tc.typ, tc.start)
			require.ErrorIs(t, err, apperrors.ErrInvalidInput)
		})
	}
	assert.Empty(t, c.List(domain.ModeOffice))
	assert.Empty(t, c.List(domain.ModeWFH))
}

func TestCatalogEditMergesResortsAndUnionsFixed(t *testing.T) {
	c := service.NewTemplateCatalog(&seqID{}, domain.Templates{WFH: []domain.TaskTemplate{
		{ID: "a", Title: "A", Type: domain.TaskTypeOther, Duration: 10, StartTime: "08:00", IsFixed: false},
		{ID: "b", Title: "B", Type: domain.TaskTypeOther, Duration: 10},
	}})

	start := "07:00"
	require.NoError(t, c.Edit(domain.ModeWFH, "b", domain.TemplatePatch{StartTime: &start}))
	list := c.List(domain.ModeWFH)
	assert.Equal(t, "b", list[0].ID)
	assert.True(t, list[0].IsFixed)

	title := "Renamed"
	require.NoError(t, c.Edit(domain.ModeWFH, "a", domain.TemplatePatch{Title: &title}))
	list = c.List(domain.ModeWFH)
	assert.Equal(t, "Renamed", list[1].Title)
	assert.False(t, list[1].IsFixed, "edit without start time keeps previous isFixed")

	err := c.Edit(domain.ModeWFH, "missing", domain.TemplatePatch{Title: &title})
	require.ErrorIs(t, err, apperrors.ErrNotFound)

	zero := 0
	err = c.Edit(domain.ModeWFH, "a", domain.TemplatePatch{Duration: &zero})
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)
	assert.Equal(t, 10, c.List(domain.ModeWFH)[1].Duration)
}

func TestCatalogRemoveIsIdempotent(t *testing.T) {
	c := service.NewTemplateCatalog(&seqID{}, domain.Templates{Office: []domain.TaskTemplate{{ID: "a", Title: "A", Type: domain.TaskTypeOther, Duration: 5}}})
	removed, err := c.Remove(domain.ModeOffice, "a")
	require.NoError(t, err)
	assert.True(t, removed)
	removed, err = c.Remove(domain.ModeOffice, "a")
	require.NoError(t, err)
	assert.False(t, removed)

	snap := c.Snapshot()
	assert.NotNil(t, snap.Office, "an emptied list stays a list")
	assert.Empty(t, snap.Office)
}
