package views

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskdash/internal/api"
	"taskdash/internal/config"
	"taskdash/internal/demoserver"
	"taskdash/internal/models"
)

// newTasksView wires a view to a seeded demo server so update-loop tests
// exercise real request round trips.
func newTasksView(t *testing.T) *TaskListView {
	t.Helper()
	store, err := demoserver.OpenStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	require.NoError(t, demoserver.Seed(store))

	srv := httptest.NewServer(demoserver.New(store).Handler())
	t.Cleanup(srv.Close)

	cfg := config.Default()
	cfg.SearchDebounceMS = 1
	cfg.PageDebounceMS = 1
	client := api.NewClient(srv.URL+"/graphql", "", 5*time.Second)
	return NewTaskListView(client, cfg)
}

// collect executes a command tree and flattens the messages it produces.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if msg == nil {
		return nil
	}
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// drive executes cmd and feeds every resulting message back into the model
// until no commands remain.
func drive(v tea.Model, cmd tea.Cmd) {
	for _, msg := range collect(cmd) {
		_, next := v.Update(msg)
		drive(v, next)
	}
}

func keyRune(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestTaskListView_LoadsFirstPage(t *testing.T) {
	v := newTasksView(t)
	drive(v, v.Init())

	require.True(t, v.loaded)
	assert.Len(t, v.tasks, 10)
	assert.Equal(t, 30, v.pager.Info.TotalCount)
	assert.Equal(t, 1, v.pager.Page)
	assert.Equal(t, "Showing 1 to 10 of 30", v.pager.RangeLabel())

	// Picker data arrives alongside the first page.
	assert.NotEmpty(t, v.projects)
	assert.NotEmpty(t, v.users)
	assert.NotEmpty(t, v.tags)
}

func TestTaskListView_OverlappingFetchCanceled(t *testing.T) {
	v := newTasksView(t)

	first := v.fetch()
	second := v.fetch()

	// Starting the second request cancels the first; a canceled request
	// produces no message at all.
	assert.Nil(t, first())

	msg, ok := second().(tasksLoadedMsg)
	require.True(t, ok)
	v.Update(msg)
	assert.True(t, v.loaded)
	assert.Len(t, v.tasks, 10)
}

func TestTaskListView_StaleResponseDropped(t *testing.T) {
	v := newTasksView(t)
	drive(v, v.Init())
	before := len(v.tasks)

	// Supersede the completed request, then replay a response carrying the
	// old generation. Last write wins, so it must be ignored.
	_, _ = v.inflight.Start(context.Background())
	v.Update(tasksLoadedMsg{gen: 1, tasks: nil, info: models.PageInfo{}})

	assert.Len(t, v.tasks, before)
}

func TestTaskListView_SearchDebouncesToSingleFetch(t *testing.T) {
	v := newTasksView(t)
	drive(v, v.Init())

	_, cmd := v.Update(keyRune("/"))
	collect(cmd)
	require.True(t, v.searching)

	var pending []tea.Msg
	for _, r := range "login" {
		_, cmd := v.Update(keyRune(string(r)))
		pending = append(pending, collect(cmd)...)
	}

	// Every keystroke scheduled a timer, but only the one carrying the
	// latest generation may trigger a fetch.
	fetches := 0
	for _, msg := range pending {
		deb, ok := msg.(taskSearchDebounceMsg)
		if !ok {
			continue
		}
		_, cmd := v.Update(deb)
		for _, result := range collect(cmd) {
			if loaded, ok := result.(tasksLoadedMsg); ok {
				fetches++
				v.Update(loaded)
			}
		}
	}

	assert.Equal(t, 1, fetches)
	assert.Equal(t, 1, v.pager.Page, "search resets to the first page")
	require.NotEmpty(t, v.tasks)
	for _, task := range v.tasks {
		assert.Contains(t, strings.ToLower(task.Title+" "+task.Description), "login")
	}
}

func TestTaskListView_SortKeyToggles(t *testing.T) {
	v := newTasksView(t)
	drive(v, v.Init())

	_, cmd := v.Update(keyRune("1"))
	drive(v, cmd)
	assert.Equal(t, "title", v.sort.Column)
	require.NotEmpty(t, v.tasks)
	assert.Equal(t, "Add CSV import", v.tasks[0].Title)

	// Same column again flips the order.
	_, cmd = v.Update(keyRune("1"))
	drive(v, cmd)
	assert.Equal(t, "Write onboarding docs", v.tasks[0].Title)

	// A different column resets to ascending.
	_, cmd = v.Update(keyRune("3"))
	drive(v, cmd)
	assert.Equal(t, "priority", v.sort.Column)
	assert.Equal(t, models.PriorityLow, v.tasks[0].Priority)
}

func TestTaskListView_PageKeysCoalesce(t *testing.T) {
	v := newTasksView(t)
	drive(v, v.Init())

	_, first := v.Update(tea.KeyMsg{Type: tea.KeyRight})
	_, second := v.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 3, v.pager.Page)

	// The first timer is stale by the time it fires.
	_, cmd := v.Update(first())
	assert.Nil(t, cmd)

	_, cmd = v.Update(second())
	require.NotNil(t, cmd)
	drive(v, cmd)

	assert.Equal(t, 3, v.pager.Info.CurrentPage)
	assert.Equal(t, "Showing 21 to 30 of 30", v.pager.RangeLabel())
}

func TestTaskListView_FormValidationAndCreate(t *testing.T) {
	v := newTasksView(t)
	drive(v, v.Init())

	_, _ = v.Update(keyRune("n"))
	require.Equal(t, taskModeForm, v.mode)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Nil(t, cmd, "invalid form must not issue a request")
	assert.Equal(t, "Title is required", v.form.errs["title"])

	// Editing the field clears its error.
	_, _ = v.Update(keyRune("R"))
	assert.NotContains(t, v.form.errs, "title")

	v.form.title.SetValue("Run weekly triage")
	_, cmd = v.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	require.NotNil(t, cmd)

	saved, ok := cmd().(taskSavedMsg)
	require.True(t, ok)
	require.NoError(t, saved.err)
	assert.True(t, saved.created)

	_, cmd = v.Update(saved)
	drive(v, cmd)
	assert.Equal(t, taskModeList, v.mode)
	assert.Equal(t, 31, v.pager.Info.TotalCount)
}

func TestTaskListView_EditPrefillsForm(t *testing.T) {
	v := newTasksView(t)
	drive(v, v.Init())

	task := v.tasks[0]
	_, _ = v.Update(keyRune("e"))
	require.Equal(t, taskModeForm, v.mode)
	assert.Equal(t, task.ID, v.form.editID)
	assert.Equal(t, task.Title, v.form.title.Value())
}

func TestTaskListView_DeleteFlow(t *testing.T) {
	v := newTasksView(t)
	drive(v, v.Init())

	_, _ = v.Update(keyRune("d"))
	require.Equal(t, taskModeConfirmDelete, v.mode)
	title := v.deleteTarget.Title

	// Declining leaves everything in place.
	_, _ = v.Update(keyRune("n"))
	assert.Equal(t, taskModeList, v.mode)
	assert.Equal(t, 30, v.pager.Info.TotalCount)

	_, _ = v.Update(keyRune("d"))
	_, cmd := v.Update(keyRune("y"))
	require.NotNil(t, cmd)

	deleted, ok := cmd().(taskDeletedMsg)
	require.True(t, ok)
	require.NoError(t, deleted.err)
	assert.Equal(t, title, deleted.title)

	_, cmd = v.Update(deleted)
	drive(v, cmd)
	assert.Equal(t, 29, v.pager.Info.TotalCount)
}

func TestTaskListView_SkeletonOnlyOnFirstLoad(t *testing.T) {
	v := newTasksView(t)
	v.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	cmd := v.fetch()
	assert.Contains(t, v.View(), "░", "first load shows skeleton rows")
	drive(v, cmd)

	// A refetch keeps the previous rows visible.
	v.fetch()
	out := v.View()
	assert.NotContains(t, out, "░")
	assert.Contains(t, out, "refreshing")
}
