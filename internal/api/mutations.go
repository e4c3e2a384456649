package api

import (
	"context"

	"taskdash/internal/models"
)

// TaskInput is the full task payload for create and update mutations.
type TaskInput struct {
	Title       string              `json:"title"`
	Description string              `json:"description,omitempty"`
	Status      models.TaskStatus   `json:"status"`
	Priority    models.TaskPriority `json:"priority"`
	DueDate     *string             `json:"dueDate,omitempty"` // YYYY-MM-DD
	ProjectID   string              `json:"projectId"`
	AssigneeID  *string             `json:"assigneeId,omitempty"`
	TagIDs      []string            `json:"tagIds,omitempty"`
}

// ActivityInput is the full activity payload for create and update mutations.
type ActivityInput struct {
	Action       string              `json:"action"`
	Type         models.ActivityType `json:"type"`
	UserID       string              `json:"userId"`
	TargetUserID *string             `json:"targetUserId,omitempty"`
	ProjectID    *string             `json:"projectId,omitempty"`
	TaskID       *string             `json:"taskId,omitempty"`
}

const taskFields = `
      id title description status priority dueDate createdAt updatedAt
      project { id name }
      assignee { id name }
      tags { id name color }`

const createTaskMutation = `mutation CreateTask($input: TaskInput!) {
  createTask(input: $input) {` + taskFields + `
  }
}`

// CreateTask creates a task and returns the server's view of it.
func (c *Client) CreateTask(ctx context.Context, in TaskInput) (*models.Task, error) {
	var out struct {
		CreateTask models.Task `json:"createTask"`
	}
	if err := c.do(ctx, createTaskMutation, map[string]any{"input": in}, &out); err != nil {
		return nil, err
	}
	return &out.CreateTask, nil
}

const updateTaskMutation = `mutation UpdateTask($id: ID!, $input: TaskInput!) {
  updateTask(id: $id, input: $input) {` + taskFields + `
  }
}`

// UpdateTask replaces a task's fields and returns the updated entity.
func (c *Client) UpdateTask(ctx context.Context, id string, in TaskInput) (*models.Task, error) {
	var out struct {
		UpdateTask models.Task `json:"updateTask"`
	}
	if err := c.do(ctx, updateTaskMutation, map[string]any{"id": id, "input": in}, &out); err != nil {
		return nil, err
	}
	return &out.UpdateTask, nil
}

const deleteTaskMutation = `mutation DeleteTask($id: ID!) {
  deleteTask(id: $id)
}`

// DeleteTask deletes a task.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	var out struct {
		DeleteTask bool `json:"deleteTask"`
	}
	return c.do(ctx, deleteTaskMutation, map[string]any{"id": id}, &out)
}

const activityFields = `
      id action type createdAt updatedAt
      user { id name }
      targetUser { id name }
      project { id name }
      task { id title }`

const createActivityMutation = `mutation CreateActivity($input: ActivityInput!) {
  createActivity(input: $input) {` + activityFields + `
  }
}`

// CreateActivity creates an activity entry.
func (c *Client) CreateActivity(ctx context.Context, in ActivityInput) (*models.Activity, error) {
	var out struct {
		CreateActivity models.Activity `json:"createActivity"`
	}
	if err := c.do(ctx, createActivityMutation, map[string]any{"input": in}, &out); err != nil {
		return nil, err
	}
	return &out.CreateActivity, nil
}

const updateActivityMutation = `mutation UpdateActivity($id: ID!, $input: ActivityInput!) {
  updateActivity(id: $id, input: $input) {` + activityFields + `
  }
}`

// UpdateActivity replaces an activity's fields.
func (c *Client) UpdateActivity(ctx context.Context, id string, in ActivityInput) (*models.Activity, error) {
	var out struct {
		UpdateActivity models.Activity `json:"updateActivity"`
	}
	if err := c.do(ctx, updateActivityMutation, map[string]any{"id": id, "input": in}, &out); err != nil {
		return nil, err
	}
	return &out.UpdateActivity, nil
}

const deleteActivityMutation = `mutation DeleteActivity($id: ID!) {
  deleteActivity(id: $id)
}`

// DeleteActivity deletes an activity entry.
func (c *Client) DeleteActivity(ctx context.Context, id string) error {
	var out struct {
		DeleteActivity bool `json:"deleteActivity"`
	}
	return c.do(ctx, deleteActivityMutation, map[string]any{"id": id}, &out)
}
