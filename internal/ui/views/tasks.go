package views

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"taskdash/internal/api"
	"taskdash/internal/config"
	"taskdash/internal/dashboard"
	"taskdash/internal/models"
	"taskdash/internal/ui/keys"
	"taskdash/internal/ui/styles"
)

type taskMode int

const (
	taskModeList taskMode = iota
	taskModeForm
	taskModeConfirmDelete
	taskModeDetail
)

// taskSortKeys maps number keys to the table column they sort by.
var taskSortKeys = map[string]string{
	"1": "title",
	"2": "status",
	"3": "priority",
	"4": "dueDate",
	"5": "project",
	"6": "assignee",
	"7": "created",
}

type tasksLoadedMsg struct {
	gen   int
	tasks []models.Task
	info  models.PageInfo
}

type tasksFailedMsg struct {
	gen int
	err error
}

type taskLookupsMsg struct {
	projects []models.Project
	users    []models.User
	tags     []models.Tag
	err      error
}

type taskSearchDebounceMsg struct{ gen int }

type taskPageDebounceMsg struct{ gen int }

type taskSavedMsg struct {
	task    *models.Task
	created bool
	err     error
}

type taskDeletedMsg struct {
	title string
	err   error
}

// Form field focus order.
const (
	taskFocusTitle = iota
	taskFocusDesc
	taskFocusStatus
	taskFocusPriority
	taskFocusDue
	taskFocusProject
	taskFocusAssignee
	taskFocusTags
	taskFocusSave
	taskFocusCount
)

type taskFormState struct {
	editID      string // empty when creating
	focus       int
	title       textinput.Model
	desc        textarea.Model
	due         textinput.Model
	statusIdx   int
	priorityIdx int
	projectIdx  int
	assigneeIdx int // 0 = unassigned, i+1 = users[i]
	tagIdx      int
	selected    map[string]bool
	errs        dashboard.FieldErrors
	submitErr   string
	saving      bool
}

func newTaskFormState() taskFormState {
	title := textinput.New()
	title.Placeholder = "Task title"
	title.CharLimit = dashboard.MaxTitleLen

	desc := textarea.New()
	desc.Placeholder = "Description (optional)"
	desc.CharLimit = dashboard.MaxDescriptionLen
	desc.SetWidth(50)
	desc.SetHeight(4)
	desc.ShowLineNumbers = false

	due := textinput.New()
	due.Placeholder = "YYYY-MM-DD"
	due.CharLimit = len(dashboard.DueDateLayout)

	return taskFormState{
		title:    title,
		desc:     desc,
		due:      due,
		selected: map[string]bool{},
		errs:     dashboard.FieldErrors{},
	}
}

// TaskListView is the paginated, searchable task table with its create/edit
// modal and delete confirmation.
type TaskListView struct {
	client *api.Client
	cfg    config.Config
	styles *styles.Styles
	keys   keys.KeyMap

	width  int
	height int
	mode   taskMode
	cursor int

	search    textinput.Model
	searching bool
	searchDeb dashboard.Debouncer
	pageDeb   dashboard.Debouncer
	inflight  dashboard.Inflight

	pager dashboard.Pager
	sort  dashboard.SortState

	tasks   []models.Task
	loaded  bool
	loading bool
	loadErr string

	// Lookup data for the form pickers.
	projects []models.Project
	users    []models.User
	tags     []models.Tag

	form         taskFormState
	deleteTarget models.Task
	detailTarget models.Task
}

func NewTaskListView(client *api.Client, cfg config.Config) *TaskListView {
	search := textinput.New()
	search.Placeholder = "Search tasks..."
	search.CharLimit = 100

	return &TaskListView{
		client: client,
		cfg:    cfg,
		styles: styles.NewStyles(),
		keys:   keys.DefaultKeyMap(),
		search: search,
		pager:  dashboard.NewPager(cfg.PageSize),
		sort:   dashboard.SortState{Column: "created", Order: dashboard.SortDesc},
	}
}

func (v *TaskListView) Init() tea.Cmd {
	return tea.Batch(v.fetch(), v.loadLookups())
}

// fetch issues the list request for the current search, sort and page. Any
// outstanding request is canceled; a response that is not the latest
// generation is dropped in Update.
func (v *TaskListView) fetch() tea.Cmd {
	ctx, gen := v.inflight.Start(context.Background())
	v.loading = true
	v.loadErr = ""

	params := api.ListParams{
		Limit:  v.pager.PageSize,
		Offset: v.pager.Offset(),
		Search: strings.TrimSpace(v.search.Value()),
	}
	if v.sort.Column != "" {
		params.SortBy = dashboard.TaskColumns.Field(v.sort.Column)
		params.SortOrder = string(v.sort.Order)
	}

	client := v.client
	return func() tea.Msg {
		tasks, info, err := client.DashboardTasks(ctx, params)
		if err != nil {
			if api.IsCanceled(err) {
				return nil
			}
			return tasksFailedMsg{gen: gen, err: err}
		}
		return tasksLoadedMsg{gen: gen, tasks: tasks, info: info}
	}
}

func (v *TaskListView) loadLookups() tea.Cmd {
	client := v.client
	timeout := v.cfg.RequestTimeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		projects, _, err := client.DashboardProjects(ctx, api.ListParams{Limit: 100})
		if err != nil {
			return taskLookupsMsg{err: err}
		}
		users, _, err := client.Users(ctx, api.ListParams{Limit: 100})
		if err != nil {
			return taskLookupsMsg{err: err}
		}
		tags, _, err := client.DashboardTags(ctx, api.ListParams{Limit: 100})
		if err != nil {
			return taskLookupsMsg{err: err}
		}
		return taskLookupsMsg{projects: projects, users: users, tags: tags}
	}
}

func (v *TaskListView) pageTick() tea.Cmd {
	gen := v.pageDeb.Bump()
	return tea.Tick(v.cfg.PageDebounce(), func(time.Time) tea.Msg {
		return taskPageDebounceMsg{gen: gen}
	})
}

func (v *TaskListView) selectedTask() *models.Task {
	if v.cursor < 0 || v.cursor >= len(v.tasks) {
		return nil
	}
	return &v.tasks[v.cursor]
}

func (v *TaskListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case tasksLoadedMsg:
		if !v.inflight.Current(msg.gen) {
			return v, nil
		}
		v.loading = false
		v.loaded = true
		v.tasks = msg.tasks
		v.pager.Apply(msg.info)
		if v.cursor > len(v.tasks)-1 {
			v.cursor = max(len(v.tasks)-1, 0)
		}
		return v, nil

	case tasksFailedMsg:
		if !v.inflight.Current(msg.gen) {
			return v, nil
		}
		v.loading = false
		v.loadErr = "Failed to load tasks"
		return v, nil

	case taskLookupsMsg:
		if msg.err != nil {
			return v, nil
		}
		v.projects = msg.projects
		v.users = msg.users
		v.tags = msg.tags
		return v, nil

	case taskSearchDebounceMsg:
		if !v.searchDeb.Current(msg.gen) {
			return v, nil
		}
		v.pager.Reset()
		return v, v.fetch()

	case taskPageDebounceMsg:
		if !v.pageDeb.Current(msg.gen) {
			return v, nil
		}
		return v, v.fetch()

	case taskSavedMsg:
		v.form.saving = false
		if msg.err != nil {
			if api.IsCanceled(msg.err) {
				return v, nil
			}
			v.form.submitErr = "Failed to save task"
			return v, notifyError(v.form.submitErr)
		}
		v.mode = taskModeList
		verb := "updated"
		if msg.created {
			verb = "created"
		}
		return v, tea.Batch(
			notify(fmt.Sprintf("Task %q %s", msg.task.Title, verb)),
			v.fetch(),
		)

	case taskDeletedMsg:
		if msg.err != nil {
			if api.IsCanceled(msg.err) {
				return v, nil
			}
			return v, notifyError("Failed to delete task")
		}
		return v, tea.Batch(
			notify(fmt.Sprintf("Task %q deleted", msg.title)),
			v.fetch(),
		)

	case tea.KeyMsg:
		switch v.mode {
		case taskModeForm:
			return v.updateForm(msg)
		case taskModeConfirmDelete:
			return v.updateConfirmDelete(msg)
		case taskModeDetail:
			// Any key closes the detail overlay.
			v.mode = taskModeList
			return v, nil
		}
		return v.updateList(msg)
	}

	return v, nil
}

func (v *TaskListView) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if v.searching {
		switch {
		case key.Matches(msg, v.keys.Back), msg.Type == tea.KeyEnter:
			v.searching = false
			v.search.Blur()
			return v, nil
		}

		before := v.search.Value()
		var cmd tea.Cmd
		v.search, cmd = v.search.Update(msg)
		if v.search.Value() == before {
			return v, cmd
		}
		gen := v.searchDeb.Bump()
		return v, tea.Batch(cmd, tea.Tick(v.cfg.SearchDebounce(), func(time.Time) tea.Msg {
			return taskSearchDebounceMsg{gen: gen}
		}))
	}

	switch {
	case key.Matches(msg, v.keys.Quit):
		return v, tea.Quit

	case key.Matches(msg, v.keys.Switch):
		return v, func() tea.Msg { return SwitchView{} }

	case key.Matches(msg, v.keys.Search):
		v.searching = true
		v.search.Focus()
		return v, textinput.Blink

	case key.Matches(msg, v.keys.Up):
		if v.cursor > 0 {
			v.cursor--
		}

	case key.Matches(msg, v.keys.Down):
		if v.cursor < len(v.tasks)-1 {
			v.cursor++
		}

	case key.Matches(msg, v.keys.PrevPage):
		if v.pager.Prev() {
			return v, v.pageTick()
		}

	case key.Matches(msg, v.keys.NextPage):
		if v.pager.Next() {
			return v, v.pageTick()
		}

	case key.Matches(msg, v.keys.Refresh):
		return v, v.fetch()

	case key.Matches(msg, v.keys.New):
		return v, v.openForm(nil)

	case key.Matches(msg, v.keys.Edit), key.Matches(msg, v.keys.Enter):
		if t := v.selectedTask(); t != nil {
			return v, v.openForm(t)
		}

	case key.Matches(msg, v.keys.Delete):
		if t := v.selectedTask(); t != nil {
			v.mode = taskModeConfirmDelete
			v.deleteTarget = *t
		}

	case key.Matches(msg, v.keys.View):
		if t := v.selectedTask(); t != nil {
			v.mode = taskModeDetail
			v.detailTarget = *t
		}

	default:
		if col, ok := taskSortKeys[msg.String()]; ok {
			v.sort.Toggle(col)
			return v, v.fetch()
		}
	}
	return v, nil
}

func (v *TaskListView) openForm(t *models.Task) tea.Cmd {
	f := newTaskFormState()
	if t != nil {
		f.editID = t.ID
		f.title.SetValue(t.Title)
		f.desc.SetValue(t.Description)
		if t.DueDate != nil {
			f.due.SetValue(t.DueDate.Format(dashboard.DueDateLayout))
		}
		for i, s := range models.TaskStatuses {
			if s == t.Status {
				f.statusIdx = i
			}
		}
		for i, p := range models.TaskPriorities {
			if p == t.Priority {
				f.priorityIdx = i
			}
		}
		for i, p := range v.projects {
			if p.ID == t.Project.ID {
				f.projectIdx = i
			}
		}
		if t.Assignee != nil {
			for i, u := range v.users {
				if u.ID == t.Assignee.ID {
					f.assigneeIdx = i + 1
				}
			}
		}
		for _, tag := range t.Tags {
			f.selected[tag.ID] = true
		}
	}

	v.form = f
	v.form.title.Focus()
	v.mode = taskModeForm
	return textinput.Blink
}

func (v *TaskListView) updateFormFocus() {
	v.form.title.Blur()
	v.form.desc.Blur()
	v.form.due.Blur()
	switch v.form.focus {
	case taskFocusTitle:
		v.form.title.Focus()
	case taskFocusDesc:
		v.form.desc.Focus()
	case taskFocusDue:
		v.form.due.Focus()
	}
}

// cycleStep maps a key press to a picker direction.
func cycleStep(msg tea.KeyMsg) int {
	switch msg.String() {
	case "left", "h":
		return -1
	case "right", "l", " ", "enter":
		return 1
	}
	return 0
}

func (v *TaskListView) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := &v.form
	if f.saving {
		return v, nil
	}

	switch {
	case key.Matches(msg, v.keys.Back):
		v.mode = taskModeList
		return v, nil

	case msg.String() == "ctrl+s":
		return v, v.submitForm()

	case msg.String() == "shift+tab":
		f.focus = mod(f.focus-1, taskFocusCount)
		v.updateFormFocus()
		return v, nil

	case key.Matches(msg, v.keys.Tab):
		f.focus = mod(f.focus+1, taskFocusCount)
		v.updateFormFocus()
		return v, nil
	}

	var cmd tea.Cmd
	switch f.focus {
	case taskFocusTitle:
		f.title, cmd = f.title.Update(msg)
		delete(f.errs, "title")

	case taskFocusDesc:
		f.desc, cmd = f.desc.Update(msg)
		delete(f.errs, "description")

	case taskFocusDue:
		f.due, cmd = f.due.Update(msg)
		delete(f.errs, "dueDate")

	case taskFocusStatus:
		if step := cycleStep(msg); step != 0 {
			f.statusIdx = mod(f.statusIdx+step, len(models.TaskStatuses))
		}

	case taskFocusPriority:
		if step := cycleStep(msg); step != 0 {
			f.priorityIdx = mod(f.priorityIdx+step, len(models.TaskPriorities))
		}

	case taskFocusProject:
		if step := cycleStep(msg); step != 0 && len(v.projects) > 0 {
			f.projectIdx = mod(f.projectIdx+step, len(v.projects))
			delete(f.errs, "project")
		}

	case taskFocusAssignee:
		if step := cycleStep(msg); step != 0 {
			f.assigneeIdx = mod(f.assigneeIdx+step, len(v.users)+1)
		}

	case taskFocusTags:
		switch msg.String() {
		case "up", "k":
			if f.tagIdx > 0 {
				f.tagIdx--
			}
		case "down", "j":
			if f.tagIdx < len(v.tags)-1 {
				f.tagIdx++
			}
		case " ", "enter":
			if f.tagIdx < len(v.tags) {
				id := v.tags[f.tagIdx].ID
				if f.selected[id] {
					delete(f.selected, id)
				} else {
					f.selected[id] = true
				}
			}
		}

	case taskFocusSave:
		if msg.Type == tea.KeyEnter {
			return v, v.submitForm()
		}
	}
	return v, cmd
}

func (v *TaskListView) submitForm() tea.Cmd {
	f := &v.form

	form := dashboard.TaskForm{
		Title:       f.title.Value(),
		Description: f.desc.Value(),
		Status:      models.TaskStatuses[f.statusIdx],
		Priority:    models.TaskPriorities[f.priorityIdx],
		DueDate:     f.due.Value(),
	}
	if len(v.projects) > 0 {
		form.ProjectID = v.projects[f.projectIdx].ID
	}
	if f.assigneeIdx > 0 && f.assigneeIdx <= len(v.users) {
		form.AssigneeID = v.users[f.assigneeIdx-1].ID
	}
	for id := range f.selected {
		form.TagIDs = append(form.TagIDs, id)
	}

	if errs := form.Validate(); !errs.Valid() {
		f.errs = errs
		return nil
	}

	in := api.TaskInput{
		Title:       strings.TrimSpace(form.Title),
		Description: strings.TrimSpace(form.Description),
		Status:      form.Status,
		Priority:    form.Priority,
		ProjectID:   form.ProjectID,
		TagIDs:      form.TagIDs,
	}
	if due := strings.TrimSpace(form.DueDate); due != "" {
		in.DueDate = &due
	}
	if form.AssigneeID != "" {
		in.AssigneeID = &form.AssigneeID
	}

	f.errs = dashboard.FieldErrors{}
	f.submitErr = ""
	f.saving = true

	client := v.client
	timeout := v.cfg.RequestTimeout()
	editID := f.editID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if editID == "" {
			task, err := client.CreateTask(ctx, in)
			return taskSavedMsg{task: task, created: true, err: err}
		}
		task, err := client.UpdateTask(ctx, editID, in)
		return taskSavedMsg{task: task, err: err}
	}
}

func (v *TaskListView) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.mode = taskModeList
		client := v.client
		timeout := v.cfg.RequestTimeout()
		id, title := v.deleteTarget.ID, v.deleteTarget.Title
		return v, func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()
			return taskDeletedMsg{title: title, err: client.DeleteTask(ctx, id)}
		}
	case "n", "N", "esc":
		v.mode = taskModeList
	}
	return v, nil
}

// View renders the view
func (v *TaskListView) View() string {
	switch v.mode {
	case taskModeForm:
		return v.renderForm()
	case taskModeConfirmDelete:
		return v.renderDeleteConfirm()
	case taskModeDetail:
		return v.renderDetail()
	}
	return v.renderList()
}

func (v *TaskListView) columns(contentWidth int) []column {
	titleWidth := clamp(contentWidth-84, 16, 40)
	return []column{
		{id: "title", label: "Title", width: titleWidth},
		{id: "status", label: "Status", width: 12},
		{id: "priority", label: "Priority", width: 8},
		{id: "dueDate", label: "Due", width: 12},
		{id: "project", label: "Project", width: 14},
		{id: "assignee", label: "Assignee", width: 14},
		{id: "created", label: "Created", width: 12},
	}
}

func (v *TaskListView) renderList() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	title := lipgloss.JoinHorizontal(lipgloss.Center,
		s.Title.Render("Tasks"),
		s.TitleMuted.Render("  tab: activities"),
	)

	searchStyle := s.SearchBar
	if v.searching {
		searchStyle = s.SearchBarFocused
	}
	search := searchStyle.Width(clamp(contentWidth-4, 20, 60)).Render(v.search.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		title,
		search,
		v.renderTable(contentWidth),
		v.renderFooter(),
		v.renderHelp(),
	)
	return styles.CenterView(content, v.width, v.height)
}

func (v *TaskListView) renderTable(contentWidth int) string {
	s := v.styles
	cols := v.columns(contentWidth)

	rows := []string{headerRow(s, cols, v.sort)}
	switch {
	case v.loading && !v.loaded:
		rows = append(rows, skeletonRows(s, cols, v.pager.PageSize)...)
	case len(v.tasks) == 0:
		rows = append(rows, "", s.TitleMuted.Render("No tasks found"))
	default:
		// Stale rows stay visible while a refetch is in flight.
		for i, t := range v.tasks {
			due := "-"
			if t.DueDate != nil {
				due = models.FormatDate(*t.DueDate)
			}
			assignee := "-"
			if t.Assignee != nil {
				assignee = t.Assignee.Name
			}
			row := joinCells(cols, []string{
				t.Title,
				t.Status.Label(),
				t.Priority.Label(),
				due,
				t.Project.Name,
				assignee,
				models.FormatDate(t.CreatedAt),
			})
			st := s.TableRow
			if i == v.cursor {
				st = s.TableSelected
			}
			rows = append(rows, st.Render(row))
		}
	}
	return strings.Join(rows, "\n")
}

func (v *TaskListView) renderFooter() string {
	s := v.styles

	parts := []string{v.pager.RangeLabel()}
	if v.pager.Info.TotalPages > 0 {
		parts = append(parts, fmt.Sprintf("page %d/%d", v.pager.Page, v.pager.Info.TotalPages))
	}
	if v.loading && v.loaded {
		parts = append(parts, "refreshing...")
	}
	footer := s.StatusBar.Render(strings.Join(parts, "  •  "))

	if v.loadErr != "" {
		footer += "\n" + s.ErrorText.Render(v.loadErr+", press r to retry")
	}
	return footer
}

func (v *TaskListView) renderHelp() string {
	s := v.styles
	return s.Help.Render(fmt.Sprintf(
		"%s search • %s sort • %s page • %s new • %s edit • %s view • %s del • %s refresh • %s quit",
		s.HelpKey.Render("/"),
		s.HelpKey.Render("1-7"),
		s.HelpKey.Render("←/→"),
		s.HelpKey.Render("n"),
		s.HelpKey.Render("e"),
		s.HelpKey.Render("v"),
		s.HelpKey.Render("d"),
		s.HelpKey.Render("r"),
		s.HelpKey.Render("q"),
	))
}

func (v *TaskListView) renderChoice(focused bool, value string) string {
	if focused {
		return v.styles.Title.Render("◂ " + value + " ▸")
	}
	return v.styles.TitleMuted.Render("  " + value)
}

func (v *TaskListView) fieldError(field string) string {
	if msg, ok := v.form.errs[field]; ok {
		return v.styles.FieldError.Render(msg)
	}
	return ""
}

func (v *TaskListView) renderForm() string {
	s := v.styles
	f := &v.form
	contentWidth := styles.ContentWidth(v.width)

	formTitle := "New Task"
	if f.editID != "" {
		formTitle = "Edit Task"
	}

	titleStyle := s.Input
	dueStyle := s.Input
	saveStyle := s.Button
	switch f.focus {
	case taskFocusTitle:
		titleStyle = s.InputFocused
	case taskFocusDue:
		dueStyle = s.InputFocused
	case taskFocusSave:
		saveStyle = s.ButtonFocused
	}

	inputWidth := clamp(contentWidth-6, 20, 50)

	project := "No projects"
	if len(v.projects) > 0 {
		project = v.projects[f.projectIdx].Name
	}
	assignee := "Unassigned"
	if f.assigneeIdx > 0 && f.assigneeIdx <= len(v.users) {
		assignee = v.users[f.assigneeIdx-1].Name
	}

	tagLines := []string{"Tags:"}
	for i, tag := range v.tags {
		mark := "[ ]"
		if f.selected[tag.ID] {
			mark = "[x]"
		}
		cursor := "  "
		if f.focus == taskFocusTags && i == f.tagIdx {
			cursor = "> "
		}
		tagLines = append(tagLines, cursor+mark+" "+tag.Name)
	}

	lines := []string{
		s.Title.Render(formTitle),
		"",
		"Title:",
		titleStyle.Width(inputWidth).Render(f.title.View()),
		v.fieldError("title"),
		"Description:",
		f.desc.View(),
		v.fieldError("description"),
		"",
		"Status:   " + v.renderChoice(f.focus == taskFocusStatus, models.TaskStatuses[f.statusIdx].Label()),
		"Priority: " + v.renderChoice(f.focus == taskFocusPriority, models.TaskPriorities[f.priorityIdx].Label()),
		"",
		"Due date:",
		dueStyle.Width(14).Render(f.due.View()),
		v.fieldError("dueDate"),
		"Project:  " + v.renderChoice(f.focus == taskFocusProject, project),
		v.fieldError("project"),
		"Assignee: " + v.renderChoice(f.focus == taskFocusAssignee, assignee),
		"",
	}
	lines = append(lines, tagLines...)
	lines = append(lines,
		"",
		saveStyle.Render(" Save "),
	)
	if f.saving {
		lines = append(lines, s.TitleMuted.Render("Saving..."))
	}
	if f.submitErr != "" {
		lines = append(lines, s.ErrorText.Render(f.submitErr))
	}
	lines = append(lines, "", s.TitleMuted.Render("Tab: next • ←/→: change • Ctrl+S: save • Esc: cancel"))

	form := lipgloss.JoinVertical(lipgloss.Left, lines...)
	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		s.Modal.Render(form),
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *TaskListView) renderDetail() string {
	s := v.styles
	t := v.detailTarget
	contentWidth := styles.ContentWidth(v.width)

	due := "-"
	if t.DueDate != nil {
		due = models.FormatDate(*t.DueDate)
	}
	assignee := "Unassigned"
	if t.Assignee != nil {
		assignee = t.Assignee.Name
	}
	tagNames := make([]string, len(t.Tags))
	for i, tag := range t.Tags {
		tagNames[i] = tag.Name
	}
	tags := "-"
	if len(tagNames) > 0 {
		tags = strings.Join(tagNames, ", ")
	}

	lines := []string{
		s.Title.Render(t.Title),
		"",
		"Status:   " + t.Status.Label(),
		"Priority: " + t.Priority.Label(),
		"Due:      " + due,
		"Project:  " + t.Project.Name,
		"Assignee: " + assignee,
		"Tags:     " + tags,
		"",
		s.TitleMuted.Render("Created " + models.FormatDateTime(t.CreatedAt)),
		s.TitleMuted.Render("Updated " + models.FormatDateTime(t.UpdatedAt)),
	}
	if t.Description != "" {
		lines = append(lines, "", t.Description)
	}
	lines = append(lines, "", s.TitleMuted.Render("Press any key to close"))

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		s.Modal.Render(lipgloss.JoinVertical(lipgloss.Left, lines...)),
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *TaskListView) renderDeleteConfirm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Foreground(styles.Current.Error).Render("Delete Task?"),
		"",
		s.TitleMuted.Render(fmt.Sprintf("%q will be permanently deleted.", v.deleteTarget.Title)),
		"",
		lipgloss.JoinHorizontal(lipgloss.Center,
			s.ButtonPrimary.Render(" Y - Yes "),
			"  ",
			s.Button.Render(" N - No "),
		),
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
	return styles.CenterView(centered, v.width, v.height)
}
