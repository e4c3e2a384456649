package models

import "time"

// TaskStatus is the workflow state of a task as reported by the API.
type TaskStatus string

const (
	StatusTodo       TaskStatus = "TODO"
	StatusInProgress TaskStatus = "IN_PROGRESS"
	StatusDone       TaskStatus = "DONE"
)

// TaskStatuses lists every status in display order.
var TaskStatuses = []TaskStatus{StatusTodo, StatusInProgress, StatusDone}

// Label returns the human-readable form of the status.
func (s TaskStatus) Label() string {
	switch s {
	case StatusTodo:
		return "To Do"
	case StatusInProgress:
		return "In Progress"
	case StatusDone:
		return "Done"
	}
	return string(s)
}

// Color returns the badge color for the status.
func (s TaskStatus) Color() string {
	switch s {
	case StatusTodo:
		return "#7aa2f7"
	case StatusInProgress:
		return "#e0af68"
	case StatusDone:
		return "#9ece6a"
	}
	return "#565f89"
}

// TaskPriority is the urgency level of a task.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "LOW"
	PriorityMedium TaskPriority = "MEDIUM"
	PriorityHigh   TaskPriority = "HIGH"
)

// TaskPriorities lists every priority in display order.
var TaskPriorities = []TaskPriority{PriorityLow, PriorityMedium, PriorityHigh}

// Label returns the human-readable form of the priority.
func (p TaskPriority) Label() string {
	switch p {
	case PriorityLow:
		return "Low"
	case PriorityMedium:
		return "Medium"
	case PriorityHigh:
		return "High"
	}
	return string(p)
}

// Color returns the badge color for the priority.
func (p TaskPriority) Color() string {
	switch p {
	case PriorityLow:
		return "#9ece6a"
	case PriorityMedium:
		return "#e0af68"
	case PriorityHigh:
		return "#f7768e"
	}
	return "#565f89"
}

// ActivityType categorizes what an activity entry records.
type ActivityType string

const (
	ActivityCreated   ActivityType = "CREATED"
	ActivityUpdated   ActivityType = "UPDATED"
	ActivityDeleted   ActivityType = "DELETED"
	ActivityAssigned  ActivityType = "ASSIGNED"
	ActivityCommented ActivityType = "COMMENTED"
)

// ActivityTypes lists every activity type in display order.
var ActivityTypes = []ActivityType{
	ActivityCreated, ActivityUpdated, ActivityDeleted, ActivityAssigned, ActivityCommented,
}

// Label returns the human-readable form of the activity type.
func (t ActivityType) Label() string {
	switch t {
	case ActivityCreated:
		return "Created"
	case ActivityUpdated:
		return "Updated"
	case ActivityDeleted:
		return "Deleted"
	case ActivityAssigned:
		return "Assigned"
	case ActivityCommented:
		return "Commented"
	}
	return string(t)
}

// User is a member of the workspace.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// Project groups tasks.
type Project struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Tag is a colored label that can be attached to tasks.
type Tag struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// TaskRef is a slim task reference embedded in activities.
type TaskRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Task represents a single task as returned by the API.
type Task struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	DueDate     *time.Time   `json:"dueDate,omitempty"`
	Project     Project      `json:"project"`
	Assignee    *User        `json:"assignee,omitempty"`
	Tags        []Tag        `json:"tags,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// Activity is an audit-trail entry describing something a user did.
type Activity struct {
	ID         string       `json:"id"`
	Action     string       `json:"action"`
	Type       ActivityType `json:"type"`
	User       User         `json:"user"`
	TargetUser *User        `json:"targetUser,omitempty"`
	Project    *Project     `json:"project,omitempty"`
	Task       *TaskRef     `json:"task,omitempty"`
	CreatedAt  time.Time    `json:"createdAt"`
	UpdatedAt  time.Time    `json:"updatedAt"`
}

// PageInfo is the server-computed pagination metadata attached to every list
// response.
type PageInfo struct {
	HasNextPage     bool `json:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage"`
	TotalCount      int  `json:"totalCount"`
	CurrentPage     int  `json:"currentPage"`
	TotalPages      int  `json:"totalPages"`
}

// Clamped returns a copy with malformed values from the server forced into a
// sane range. The client never trusts counts to be non-negative or pages to
// be consistent with each other.
func (p PageInfo) Clamped() PageInfo {
	if p.TotalCount < 0 {
		p.TotalCount = 0
	}
	if p.TotalPages < 0 {
		p.TotalPages = 0
	}
	if p.CurrentPage < 1 {
		p.CurrentPage = 1
	}
	if p.TotalPages > 0 && p.CurrentPage > p.TotalPages {
		p.CurrentPage = p.TotalPages
	}
	return p
}

// FormatDate renders a date for table cells.
func FormatDate(t time.Time) string {
	return t.Format("Jan 2, 2006")
}

// FormatDateTime renders a timestamp for detail views.
func FormatDateTime(t time.Time) string {
	return t.Format("Jan 2, 2006 3:04 PM")
}
