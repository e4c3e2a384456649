package dashboard

import (
	"strings"
	"time"

	"taskdash/internal/models"
)

// Field length bounds enforced before a mutation is issued.
const (
	MaxActionLen      = 255
	MaxTitleLen       = 200
	MaxDescriptionLen = 2000
)

// DueDateLayout is the accepted input format for due dates.
const DueDateLayout = "2006-01-02"

// FieldErrors maps a form field name to its validation message. An empty map
// means the form is valid.
type FieldErrors map[string]string

// Valid reports whether the form passed validation.
func (e FieldErrors) Valid() bool {
	return len(e) == 0
}

// TaskForm carries the raw values of the task create/edit modal.
type TaskForm struct {
	Title       string
	Description string
	Status      models.TaskStatus
	Priority    models.TaskPriority
	DueDate     string // empty or DueDateLayout
	ProjectID   string
	AssigneeID  string // empty = unassigned
	TagIDs      []string
}

// Validate checks required fields and length bounds. Errors are keyed by
// field name so the modal can render them inline.
func (f TaskForm) Validate() FieldErrors {
	errs := FieldErrors{}

	title := strings.TrimSpace(f.Title)
	if title == "" {
		errs["title"] = "Title is required"
	} else if len(title) > MaxTitleLen {
		errs["title"] = "Title must be at most 200 characters"
	}

	if len(strings.TrimSpace(f.Description)) > MaxDescriptionLen {
		errs["description"] = "Description must be at most 2000 characters"
	}

	if f.ProjectID == "" {
		errs["project"] = "Project is required"
	}

	if due := strings.TrimSpace(f.DueDate); due != "" {
		if _, err := time.Parse(DueDateLayout, due); err != nil {
			errs["dueDate"] = "Due date must be YYYY-MM-DD"
		}
	}

	return errs
}

// ActivityForm carries the raw values of the activity create/edit modal.
type ActivityForm struct {
	Action       string
	Type         models.ActivityType
	UserID       string
	TargetUserID string
	ProjectID    string
	TaskID       string
}

// Validate checks required fields and length bounds.
func (f ActivityForm) Validate() FieldErrors {
	errs := FieldErrors{}

	action := strings.TrimSpace(f.Action)
	if action == "" {
		errs["action"] = "Action is required"
	} else if len(action) > MaxActionLen {
		errs["action"] = "Action must be at most 255 characters"
	}

	if f.Type == "" {
		errs["type"] = "Type is required"
	}

	if f.UserID == "" {
		errs["user"] = "User is required"
	}

	return errs
}
