package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortState_Toggle_SameColumnFlips(t *testing.T) {
	s := SortState{Column: "created", Order: SortDesc}

	s.Toggle("title")
	assert.Equal(t, "title", s.Column)
	assert.Equal(t, SortAsc, s.Order, "new column starts ascending")

	s.Toggle("title")
	assert.Equal(t, SortDesc, s.Order)

	s.Toggle("title")
	assert.Equal(t, SortAsc, s.Order, "toggling cycles ASC->DESC->ASC")
}

func TestSortState_Toggle_DifferentColumnResets(t *testing.T) {
	s := SortState{Column: "title", Order: SortDesc}

	s.Toggle("status")
	assert.Equal(t, "status", s.Column)
	assert.Equal(t, SortAsc, s.Order, "switching columns always resets to ASC")
}

func TestColumnMap_Field(t *testing.T) {
	assert.Equal(t, "title", TaskColumns.Field("title"))
	assert.Equal(t, "dueDate", TaskColumns.Field("dueDate"))

	// Joined-entity columns fall back to the createdAt proxy.
	assert.Equal(t, DefaultSortField, TaskColumns.Field("project"))
	assert.Equal(t, DefaultSortField, TaskColumns.Field("assignee"))
	assert.Equal(t, DefaultSortField, ActivityColumns.Field("user"))

	// Unknown columns do too.
	assert.Equal(t, DefaultSortField, TaskColumns.Field("nope"))
}

func TestSortState_Indicator(t *testing.T) {
	s := SortState{Column: "title", Order: SortAsc}
	assert.Equal(t, " ↑", s.Indicator("title"))
	assert.Equal(t, "", s.Indicator("status"))

	s.Order = SortDesc
	assert.Equal(t, " ↓", s.Indicator("title"))
}
