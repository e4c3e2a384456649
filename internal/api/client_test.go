package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_DashboardTasks_SendsVariables(t *testing.T) {
	var got gqlRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"dashboardTasks":{"items":[{"id":"1","title":"First","status":"TODO","priority":"LOW","project":{"id":"1","name":"Core"},"createdAt":"2026-08-01T10:00:00Z","updatedAt":"2026-08-01T10:00:00Z"}],"paginationInfo":{"hasNextPage":true,"totalCount":25,"currentPage":1,"totalPages":3}}}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret", time.Second)
	tasks, info, err := c.DashboardTasks(context.Background(), ListParams{
		Limit:     10,
		Offset:    0,
		Search:    "first",
		SortBy:    "title",
		SortOrder: "ASC",
	})
	require.NoError(t, err)

	assert.Equal(t, float64(10), got.Variables["limit"])
	assert.Equal(t, "first", got.Variables["search"])
	assert.Equal(t, "title", got.Variables["sortBy"])
	assert.Equal(t, "ASC", got.Variables["sortOrder"])

	require.Len(t, tasks, 1)
	assert.Equal(t, "First", tasks[0].Title)
	assert.Equal(t, "Core", tasks[0].Project.Name)
	assert.Equal(t, 25, info.TotalCount)
	assert.True(t, info.HasNextPage)
}

func TestClient_OmitsEmptySearchAndSort(t *testing.T) {
	var got gqlRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		w.Write([]byte(`{"data":{"users":{"items":[],"paginationInfo":{}}}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", time.Second)
	_, _, err := c.Users(context.Background(), ListParams{Limit: 10})
	require.NoError(t, err)

	assert.NotContains(t, got.Variables, "search")
	assert.NotContains(t, got.Variables, "sortBy")
	assert.NotContains(t, got.Variables, "sortOrder")
}

func TestClient_GraphQLErrorsSurfaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"errors":[{"message":"task not found"}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", time.Second)
	err := c.DeleteTask(context.Background(), "999")
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Contains(t, apiErr.Error(), "task not found")
	assert.False(t, IsCanceled(err))
}

func TestClient_HTTPStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", time.Second)
	_, _, err := c.DashboardProjects(context.Background(), ListParams{Limit: 10})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestClient_CanceledRequestIsClassified(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	c := NewClient(srv.URL, "", 10*time.Second)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		_, _, err := c.DashboardActivities(ctx, ListParams{Limit: 10})
		done <- err
	}()

	cancel()
	err := <-done
	require.Error(t, err)
	assert.True(t, IsCanceled(err), "abort must be distinguishable from real failures")
}
