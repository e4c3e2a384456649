package dashboard

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"taskdash/internal/models"
)

func validTaskForm() TaskForm {
	return TaskForm{
		Title:     "Ship the dashboard",
		Status:    models.StatusTodo,
		Priority:  models.PriorityMedium,
		ProjectID: "1",
	}
}

func TestTaskForm_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*TaskForm)
		wantField string
	}{
		{"valid", func(f *TaskForm) {}, ""},
		{"blank title", func(f *TaskForm) { f.Title = "   " }, "title"},
		{"title too long", func(f *TaskForm) { f.Title = strings.Repeat("x", MaxTitleLen+1) }, "title"},
		{"description too long", func(f *TaskForm) { f.Description = strings.Repeat("x", MaxDescriptionLen+1) }, "description"},
		{"missing project", func(f *TaskForm) { f.ProjectID = "" }, "project"},
		{"bad due date", func(f *TaskForm) { f.DueDate = "tomorrow" }, "dueDate"},
		{"good due date", func(f *TaskForm) { f.DueDate = "2026-09-01" }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validTaskForm()
			tt.mutate(&f)
			errs := f.Validate()
			if tt.wantField == "" {
				assert.True(t, errs.Valid(), "expected no errors, got %v", errs)
				return
			}
			assert.Contains(t, errs, tt.wantField)
		})
	}
}

func TestActivityForm_Validate(t *testing.T) {
	valid := ActivityForm{
		Action: "closed the onboarding task",
		Type:   models.ActivityUpdated,
		UserID: "7",
	}
	assert.True(t, valid.Validate().Valid())

	blank := valid
	blank.Action = "  "
	assert.Contains(t, blank.Validate(), "action")

	long := valid
	long.Action = strings.Repeat("a", MaxActionLen+1)
	assert.Contains(t, long.Validate(), "action")

	noUser := valid
	noUser.UserID = ""
	assert.Contains(t, noUser.Validate(), "user")

	noType := valid
	noType.Type = ""
	assert.Contains(t, noType.Validate(), "type")
}
