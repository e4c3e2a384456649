package demoserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskdash/internal/api"
	"taskdash/internal/models"
)

// newDemoClient wires an api.Client to a seeded demo server over HTTP, so
// these tests exercise the full round trip the TUI performs.
func newDemoClient(t *testing.T) *api.Client {
	t.Helper()
	store := newTestStore(t)
	require.NoError(t, Seed(store))

	srv := httptest.NewServer(New(store).Handler())
	t.Cleanup(srv.Close)
	return api.NewClient(srv.URL+"/graphql", "", 5*time.Second)
}

func TestServer_DashboardTasksRoundTrip(t *testing.T) {
	c := newDemoClient(t)

	tasks, info, err := c.DashboardTasks(context.Background(), api.ListParams{
		Limit:     10,
		Offset:    20,
		SortBy:    "createdAt",
		SortOrder: "ASC",
	})
	require.NoError(t, err)

	assert.Equal(t, 30, info.TotalCount)
	assert.Equal(t, 3, info.CurrentPage)
	assert.False(t, info.HasNextPage)
	assert.Len(t, tasks, 10)
	assert.NotEmpty(t, tasks[0].Project.Name)
}

func TestServer_SearchFiltersTasks(t *testing.T) {
	c := newDemoClient(t)

	tasks, info, err := c.DashboardTasks(context.Background(), api.ListParams{
		Limit:  10,
		Search: "login",
	})
	require.NoError(t, err)
	require.NotEmpty(t, tasks)
	assert.Equal(t, len(tasks), info.TotalCount)
	for _, task := range tasks {
		assert.Contains(t, task.Title+" "+task.Description, "login")
	}
}

func TestServer_TaskMutationRoundTrip(t *testing.T) {
	c := newDemoClient(t)
	ctx := context.Background()

	created, err := c.CreateTask(ctx, api.TaskInput{
		Title:     "Triage inbox",
		Status:    models.StatusTodo,
		Priority:  models.PriorityMedium,
		ProjectID: "1",
		TagIDs:    []string{"2"},
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Len(t, created.Tags, 1)

	updated, err := c.UpdateTask(ctx, created.ID, api.TaskInput{
		Title:     "Triage inbox daily",
		Status:    models.StatusInProgress,
		Priority:  models.PriorityMedium,
		ProjectID: "1",
	})
	require.NoError(t, err)
	assert.Equal(t, "Triage inbox daily", updated.Title)
	assert.Equal(t, models.StatusInProgress, updated.Status)

	require.NoError(t, c.DeleteTask(ctx, created.ID))

	// Deleting again reports a GraphQL error, not a transport failure.
	err = c.DeleteTask(ctx, created.ID)
	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
}

func TestServer_ActivityMutationRoundTrip(t *testing.T) {
	c := newDemoClient(t)
	ctx := context.Background()

	projectID := "2"
	created, err := c.CreateActivity(ctx, api.ActivityInput{
		Action:    "archived the sprint board",
		Type:      models.ActivityDeleted,
		UserID:    "1",
		ProjectID: &projectID,
	})
	require.NoError(t, err)
	require.NotNil(t, created.Project)
	assert.Equal(t, "2", created.Project.ID)

	require.NoError(t, c.DeleteActivity(ctx, created.ID))
}

func TestServer_Lookups(t *testing.T) {
	c := newDemoClient(t)
	ctx := context.Background()

	users, _, err := c.Users(ctx, api.ListParams{Limit: 50})
	require.NoError(t, err)
	assert.Len(t, users, 4)

	projects, _, err := c.DashboardProjects(ctx, api.ListParams{Limit: 50})
	require.NoError(t, err)
	assert.Len(t, projects, 3)

	tags, _, err := c.DashboardTags(ctx, api.ListParams{Limit: 50})
	require.NoError(t, err)
	assert.Len(t, tags, 5)
}

func TestServer_UnknownOperation(t *testing.T) {
	store := newTestStore(t)
	srv := httptest.NewServer(New(store).Handler())
	t.Cleanup(srv.Close)

	resp, err := http.Post(srv.URL+"/graphql", "application/json",
		strings.NewReader(`{"query":"query Nope { nope }"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	var envelope struct {
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	require.Len(t, envelope.Errors, 1)
	assert.Contains(t, envelope.Errors[0].Message, "unknown operation")
}
