package demoserver

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskdash/internal/api"
	"taskdash/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func seedTasks(t *testing.T, s *Store, n int) {
	t.Helper()
	_, err := s.Exec("INSERT INTO projects (name) VALUES ('Core')")
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		_, err := s.Exec(
			"INSERT INTO tasks (title, description, status, priority, project_id) VALUES (?, '', 'TODO', 'LOW', 1)",
			fmt.Sprintf("Task %02d", i+1))
		require.NoError(t, err)
	}
}

func TestStore_ListTasks_Pagination(t *testing.T) {
	s := newTestStore(t)
	seedTasks(t, s, 25)

	tasks, info, err := s.ListTasks(ListQuery{Limit: 10, Offset: 0})
	require.NoError(t, err)
	assert.Len(t, tasks, 10)
	assert.Equal(t, 25, info.TotalCount)
	assert.Equal(t, 3, info.TotalPages)
	assert.Equal(t, 1, info.CurrentPage)
	assert.True(t, info.HasNextPage)
	assert.False(t, info.HasPreviousPage)

	// Last partial page.
	tasks, info, err = s.ListTasks(ListQuery{Limit: 10, Offset: 20})
	require.NoError(t, err)
	assert.Len(t, tasks, 5)
	assert.Equal(t, 3, info.CurrentPage)
	assert.False(t, info.HasNextPage)
	assert.True(t, info.HasPreviousPage)
}

func TestStore_ListTasks_SearchAndSort(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Exec("INSERT INTO projects (name) VALUES ('Core')")
	require.NoError(t, err)
	for _, title := range []string{"Fix login bug", "Write docs", "Fix search index"} {
		_, err := s.Exec("INSERT INTO tasks (title, project_id) VALUES (?, 1)", title)
		require.NoError(t, err)
	}

	tasks, info, err := s.ListTasks(ListQuery{Limit: 10, Search: "Fix", SortBy: "title", SortOrder: "ASC"})
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, 2, info.TotalCount)
	assert.Equal(t, "Fix login bug", tasks[0].Title)
	assert.Equal(t, "Fix search index", tasks[1].Title)

	tasks, _, err = s.ListTasks(ListQuery{Limit: 10, Search: "Fix", SortBy: "title", SortOrder: "DESC"})
	require.NoError(t, err)
	assert.Equal(t, "Fix search index", tasks[0].Title)
}

func TestStore_ListTasks_PrioritySortsByRank(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Exec("INSERT INTO projects (name) VALUES ('Core')")
	require.NoError(t, err)
	for _, p := range []string{"HIGH", "LOW", "MEDIUM"} {
		_, err := s.Exec("INSERT INTO tasks (title, priority, project_id) VALUES (?, ?, 1)", p+" task", p)
		require.NoError(t, err)
	}

	tasks, _, err := s.ListTasks(ListQuery{Limit: 10, SortBy: "priority", SortOrder: "ASC"})
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, models.PriorityLow, tasks[0].Priority)
	assert.Equal(t, models.PriorityMedium, tasks[1].Priority)
	assert.Equal(t, models.PriorityHigh, tasks[2].Priority)
}

func TestStore_TaskCRUD(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, Seed(s))

	due := "2026-09-15"
	assignee := "2"
	created, err := s.CreateTask(api.TaskInput{
		Title:      "Review release notes",
		Status:     models.StatusTodo,
		Priority:   models.PriorityHigh,
		DueDate:    &due,
		ProjectID:  "1",
		AssigneeID: &assignee,
		TagIDs:     []string{"1", "3"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Review release notes", created.Title)
	require.NotNil(t, created.DueDate)
	assert.Equal(t, "2026-09-15", created.DueDate.Format("2006-01-02"))
	require.NotNil(t, created.Assignee)
	assert.Len(t, created.Tags, 2)

	id, err := atoi(created.ID)
	require.NoError(t, err)

	updated, err := s.UpdateTask(id, api.TaskInput{
		Title:     "Review release notes v2",
		Status:    models.StatusDone,
		Priority:  models.PriorityLow,
		ProjectID: "2",
		TagIDs:    []string{"2"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Review release notes v2", updated.Title)
	assert.Equal(t, models.StatusDone, updated.Status)
	assert.Nil(t, updated.DueDate)
	assert.Nil(t, updated.Assignee)
	assert.Len(t, updated.Tags, 1)

	ok, err := s.DeleteTask(id)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.DeleteTask(id)
	require.NoError(t, err)
	assert.False(t, ok, "second delete finds nothing")
}

func TestStore_ActivityCRUD(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, Seed(s))

	target := "3"
	created, err := s.CreateActivity(api.ActivityInput{
		Action:       "assigned the rollout task",
		Type:         models.ActivityAssigned,
		UserID:       "1",
		TargetUserID: &target,
	})
	require.NoError(t, err)
	assert.Equal(t, models.ActivityAssigned, created.Type)
	require.NotNil(t, created.TargetUser)
	assert.Equal(t, "3", created.TargetUser.ID)

	id, err := atoi(created.ID)
	require.NoError(t, err)

	updated, err := s.UpdateActivity(id, api.ActivityInput{
		Action: "reassigned the rollout task",
		Type:   models.ActivityUpdated,
		UserID: "2",
	})
	require.NoError(t, err)
	assert.Equal(t, "reassigned the rollout task", updated.Action)
	assert.Nil(t, updated.TargetUser)

	ok, err := s.DeleteActivity(id)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestStore_Lookups(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, Seed(s))

	users, info, err := s.ListUsers(ListQuery{Limit: 50})
	require.NoError(t, err)
	assert.Equal(t, len(users), info.TotalCount)
	assert.NotEmpty(t, users)

	filtered, _, err := s.ListUsers(ListQuery{Limit: 50, Search: "Ada"})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "Ada Fernsby", filtered[0].Name)

	projects, _, err := s.ListProjects(ListQuery{Limit: 50})
	require.NoError(t, err)
	assert.NotEmpty(t, projects)

	tags, _, err := s.ListTags(ListQuery{Limit: 50, Search: "bug"})
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "#f7768e", tags[0].Color)
}

func TestSeed_Idempotent(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, Seed(s))
	_, first, err := s.ListTasks(ListQuery{Limit: 1})
	require.NoError(t, err)

	require.NoError(t, Seed(s))
	_, second, err := s.ListTasks(ListQuery{Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, first.TotalCount, second.TotalCount)
}
