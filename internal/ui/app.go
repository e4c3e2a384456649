package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"taskdash/internal/api"
	"taskdash/internal/config"
	"taskdash/internal/ui/styles"
	"taskdash/internal/ui/views"
)

// Currently active view
type View int

const (
	ViewTasks View = iota
	ViewActivities
)

// noticeDuration is how long a toast stays on screen.
const noticeDuration = 3 * time.Second

type clearNoticeMsg struct{ id int }

// Notifier owns the transient toast line shown under the active view. Each
// Show advances the id so an old clear timer cannot wipe a newer notice.
type Notifier struct {
	text    string
	isError bool
	id      int
}

// Show replaces the current notice and returns its id.
func (n *Notifier) Show(text string, isError bool) int {
	n.text = text
	n.isError = isError
	n.id++
	return n.id
}

// Clear drops the notice if id still refers to it.
func (n *Notifier) Clear(id int) {
	if id == n.id {
		n.text = ""
	}
}

// Active returns the current notice, if any.
func (n *Notifier) Active() (text string, isError, ok bool) {
	return n.text, n.isError, n.text != ""
}

type App struct {
	currentView View
	tasks       *views.TaskListView
	activities  *views.ActivityListView
	styles      *styles.Styles
	width       int
	height      int

	notifier Notifier

	activitiesStarted bool
}

// Creates a new application
func NewApp(client *api.Client, cfg config.Config) *App {
	return &App{
		tasks:      views.NewTaskListView(client, cfg),
		activities: views.NewActivityListView(client, cfg),
		styles:     styles.NewStyles(),
	}
}

func (a *App) Init() tea.Cmd {
	return a.tasks.Init()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.tasks.Update(msg)
		a.activities.Update(msg)
		return a, nil

	case views.SwitchView:
		if a.currentView == ViewTasks {
			a.currentView = ViewActivities
			if !a.activitiesStarted {
				a.activitiesStarted = true
				return a, a.activities.Init()
			}
		} else {
			a.currentView = ViewTasks
		}
		return a, nil

	case views.Notice:
		id := a.notifier.Show(msg.Text, msg.IsError)
		return a, tea.Tick(noticeDuration, func(time.Time) tea.Msg {
			return clearNoticeMsg{id: id}
		})

	case clearNoticeMsg:
		a.notifier.Clear(msg.id)
		return a, nil

	case tea.KeyMsg:
		var cmd tea.Cmd
		switch a.currentView {
		case ViewTasks:
			_, cmd = a.tasks.Update(msg)
		case ViewActivities:
			_, cmd = a.activities.Update(msg)
		}
		return a, cmd
	}

	// Async results carry view-specific message types, so both views can
	// safely see everything else. That way a fetch finishing after the user
	// switched views still lands in the view that started it.
	_, taskCmd := a.tasks.Update(msg)
	_, activityCmd := a.activities.Update(msg)
	return a, tea.Batch(taskCmd, activityCmd)
}

func (a *App) View() string {
	var content string
	switch a.currentView {
	case ViewActivities:
		content = a.activities.View()
	default:
		content = a.tasks.View()
	}

	if text, isError, ok := a.notifier.Active(); ok {
		st := a.styles.Toast
		if isError {
			st = a.styles.ToastError
		}
		content += "\n" + st.Render(text)
	}
	return content
}
