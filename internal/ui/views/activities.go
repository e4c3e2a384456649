package views

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
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

type activityMode int

const (
	activityModeList activityMode = iota
	activityModeForm
	activityModeConfirmDelete
	activityModeDetail
)

var activitySortKeys = map[string]string{
	"1": "action",
	"2": "type",
	"3": "user",
	"4": "target",
	"5": "created",
}

type activitiesLoadedMsg struct {
	gen        int
	activities []models.Activity
	info       models.PageInfo
}

type activitiesFailedMsg struct {
	gen int
	err error
}

type activityLookupsMsg struct {
	users    []models.User
	projects []models.Project
	tasks    []models.Task
	err      error
}

type activitySearchDebounceMsg struct{ gen int }

type activityPageDebounceMsg struct{ gen int }

type activitySavedMsg struct {
	activity *models.Activity
	created  bool
	err      error
}

type activityDeletedMsg struct {
	err error
}

const (
	activityFocusAction = iota
	activityFocusType
	activityFocusUser
	activityFocusTarget
	activityFocusProject
	activityFocusTask
	activityFocusSave
	activityFocusCount
)

type activityFormState struct {
	editID     string
	focus      int
	action     textinput.Model
	typeIdx    int
	userIdx    int // 0 = not selected, i+1 = users[i]
	targetIdx  int // 0 = none
	projectIdx int // 0 = none
	taskIdx    int // 0 = none
	errs       dashboard.FieldErrors
	submitErr  string
	saving     bool
}

func newActivityFormState() activityFormState {
	action := textinput.New()
	action.Placeholder = "What happened?"
	action.CharLimit = dashboard.MaxActionLen

	return activityFormState{
		action: action,
		errs:   dashboard.FieldErrors{},
	}
}

// ActivityListView is the paginated activity feed with its create/edit modal
// and delete confirmation.
type ActivityListView struct {
	client *api.Client
	cfg    config.Config
	styles *styles.Styles
	keys   keys.KeyMap

	width  int
	height int
	mode   activityMode
	cursor int

	search    textinput.Model
	searching bool
	searchDeb dashboard.Debouncer
	pageDeb   dashboard.Debouncer
	inflight  dashboard.Inflight

	pager dashboard.Pager
	sort  dashboard.SortState

	activities []models.Activity
	loaded     bool
	loading    bool
	loadErr    string

	users    []models.User
	projects []models.Project
	taskRefs []models.Task

	form         activityFormState
	deleteTarget models.Activity
	detailTarget models.Activity
}

func NewActivityListView(client *api.Client, cfg config.Config) *ActivityListView {
	search := textinput.New()
	search.Placeholder = "Search activity..."
	search.CharLimit = 100

	return &ActivityListView{
		client: client,
		cfg:    cfg,
		styles: styles.NewStyles(),
		keys:   keys.DefaultKeyMap(),
		search: search,
		pager:  dashboard.NewPager(cfg.PageSize),
		sort:   dashboard.SortState{Column: "created", Order: dashboard.SortDesc},
	}
}

func (v *ActivityListView) Init() tea.Cmd {
	return tea.Batch(v.fetch(), v.loadLookups())
}

func (v *ActivityListView) fetch() tea.Cmd {
	ctx, gen := v.inflight.Start(context.Background())
	v.loading = true
	v.loadErr = ""

	params := api.ListParams{
		Limit:  v.pager.PageSize,
		Offset: v.pager.Offset(),
		Search: strings.TrimSpace(v.search.Value()),
	}
	if v.sort.Column != "" {
		params.SortBy = dashboard.ActivityColumns.Field(v.sort.Column)
		params.SortOrder = string(v.sort.Order)
	}

	client := v.client
	return func() tea.Msg {
		activities, info, err := client.DashboardActivities(ctx, params)
		if err != nil {
			if api.IsCanceled(err) {
				return nil
			}
			return activitiesFailedMsg{gen: gen, err: err}
		}
		return activitiesLoadedMsg{gen: gen, activities: activities, info: info}
	}
}

func (v *ActivityListView) loadLookups() tea.Cmd {
	client := v.client
	timeout := v.cfg.RequestTimeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		users, _, err := client.Users(ctx, api.ListParams{Limit: 100})
		if err != nil {
			return activityLookupsMsg{err: err}
		}
		projects, _, err := client.DashboardProjects(ctx, api.ListParams{Limit: 100})
		if err != nil {
			return activityLookupsMsg{err: err}
		}
		tasks, _, err := client.DashboardTasks(ctx, api.ListParams{
			Limit: 100, SortBy: "createdAt", SortOrder: "DESC",
		})
		if err != nil {
			return activityLookupsMsg{err: err}
		}
		return activityLookupsMsg{users: users, projects: projects, tasks: tasks}
	}
}

func (v *ActivityListView) pageTick() tea.Cmd {
	gen := v.pageDeb.Bump()
	return tea.Tick(v.cfg.PageDebounce(), func(time.Time) tea.Msg {
		return activityPageDebounceMsg{gen: gen}
	})
}

func (v *ActivityListView) selectedActivity() *models.Activity {
	if v.cursor < 0 || v.cursor >= len(v.activities) {
		return nil
	}
	return &v.activities[v.cursor]
}

func (v *ActivityListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case activitiesLoadedMsg:
		if !v.inflight.Current(msg.gen) {
			return v, nil
		}
		v.loading = false
		v.loaded = true
		v.activities = msg.activities
		v.pager.Apply(msg.info)
		if v.cursor > len(v.activities)-1 {
			v.cursor = max(len(v.activities)-1, 0)
		}
		return v, nil

	case activitiesFailedMsg:
		if !v.inflight.Current(msg.gen) {
			return v, nil
		}
		v.loading = false
		v.loadErr = "Failed to load activity"
		return v, nil

	case activityLookupsMsg:
		if msg.err != nil {
			return v, nil
		}
		v.users = msg.users
		v.projects = msg.projects
		v.taskRefs = msg.tasks
		return v, nil

	case activitySearchDebounceMsg:
		if !v.searchDeb.Current(msg.gen) {
			return v, nil
		}
		v.pager.Reset()
		return v, v.fetch()

	case activityPageDebounceMsg:
		if !v.pageDeb.Current(msg.gen) {
			return v, nil
		}
		return v, v.fetch()

	case activitySavedMsg:
		v.form.saving = false
		if msg.err != nil {
			if api.IsCanceled(msg.err) {
				return v, nil
			}
			v.form.submitErr = "Failed to save activity"
			return v, notifyError(v.form.submitErr)
		}
		v.mode = activityModeList
		verb := "updated"
		if msg.created {
			verb = "logged"
		}
		return v, tea.Batch(
			notify(fmt.Sprintf("Activity %s", verb)),
			v.fetch(),
		)

	case activityDeletedMsg:
		if msg.err != nil {
			if api.IsCanceled(msg.err) {
				return v, nil
			}
			return v, notifyError("Failed to delete activity")
		}
		return v, tea.Batch(notify("Activity deleted"), v.fetch())

	case tea.KeyMsg:
		switch v.mode {
		case activityModeForm:
			return v.updateForm(msg)
		case activityModeConfirmDelete:
			return v.updateConfirmDelete(msg)
		case activityModeDetail:
			// Any key closes the detail overlay.
			v.mode = activityModeList
			return v, nil
		}
		return v.updateList(msg)
	}

	return v, nil
}

func (v *ActivityListView) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
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
			return activitySearchDebounceMsg{gen: gen}
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
		if v.cursor < len(v.activities)-1 {
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
		if a := v.selectedActivity(); a != nil {
			return v, v.openForm(a)
		}

	case key.Matches(msg, v.keys.Delete):
		if a := v.selectedActivity(); a != nil {
			v.mode = activityModeConfirmDelete
			v.deleteTarget = *a
		}

	case key.Matches(msg, v.keys.View):
		if a := v.selectedActivity(); a != nil {
			v.mode = activityModeDetail
			v.detailTarget = *a
		}

	default:
		if col, ok := activitySortKeys[msg.String()]; ok {
			v.sort.Toggle(col)
			return v, v.fetch()
		}
	}
	return v, nil
}

func (v *ActivityListView) openForm(a *models.Activity) tea.Cmd {
	f := newActivityFormState()
	if a != nil {
		f.editID = a.ID
		f.action.SetValue(a.Action)
		for i, t := range models.ActivityTypes {
			if t == a.Type {
				f.typeIdx = i
			}
		}
		for i, u := range v.users {
			if u.ID == a.User.ID {
				f.userIdx = i + 1
			}
		}
		if a.TargetUser != nil {
			for i, u := range v.users {
				if u.ID == a.TargetUser.ID {
					f.targetIdx = i + 1
				}
			}
		}
		if a.Project != nil {
			for i, p := range v.projects {
				if p.ID == a.Project.ID {
					f.projectIdx = i + 1
				}
			}
		}
		if a.Task != nil {
			for i, t := range v.taskRefs {
				if t.ID == a.Task.ID {
					f.taskIdx = i + 1
				}
			}
		}
	}

	v.form = f
	v.form.action.Focus()
	v.mode = activityModeForm
	return textinput.Blink
}

func (v *ActivityListView) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := &v.form
	if f.saving {
		return v, nil
	}

	switch {
	case key.Matches(msg, v.keys.Back):
		v.mode = activityModeList
		return v, nil

	case msg.String() == "ctrl+s":
		return v, v.submitForm()

	case msg.String() == "shift+tab":
		f.focus = mod(f.focus-1, activityFocusCount)
		if f.focus == activityFocusAction {
			f.action.Focus()
		} else {
			f.action.Blur()
		}
		return v, nil

	case key.Matches(msg, v.keys.Tab):
		f.focus = mod(f.focus+1, activityFocusCount)
		if f.focus == activityFocusAction {
			f.action.Focus()
		} else {
			f.action.Blur()
		}
		return v, nil
	}

	var cmd tea.Cmd
	switch f.focus {
	case activityFocusAction:
		f.action, cmd = f.action.Update(msg)
		delete(f.errs, "action")

	case activityFocusType:
		if step := cycleStep(msg); step != 0 {
			f.typeIdx = mod(f.typeIdx+step, len(models.ActivityTypes))
			delete(f.errs, "type")
		}

	case activityFocusUser:
		if step := cycleStep(msg); step != 0 && len(v.users) > 0 {
			f.userIdx = mod(f.userIdx+step, len(v.users)+1)
			delete(f.errs, "user")
		}

	case activityFocusTarget:
		if step := cycleStep(msg); step != 0 {
			f.targetIdx = mod(f.targetIdx+step, len(v.users)+1)
		}

	case activityFocusProject:
		if step := cycleStep(msg); step != 0 {
			f.projectIdx = mod(f.projectIdx+step, len(v.projects)+1)
		}

	case activityFocusTask:
		if step := cycleStep(msg); step != 0 {
			f.taskIdx = mod(f.taskIdx+step, len(v.taskRefs)+1)
		}

	case activityFocusSave:
		if msg.Type == tea.KeyEnter {
			return v, v.submitForm()
		}
	}
	return v, cmd
}

func (v *ActivityListView) submitForm() tea.Cmd {
	f := &v.form

	form := dashboard.ActivityForm{
		Action: f.action.Value(),
		Type:   models.ActivityTypes[f.typeIdx],
	}
	if f.userIdx > 0 && f.userIdx <= len(v.users) {
		form.UserID = v.users[f.userIdx-1].ID
	}
	if f.targetIdx > 0 && f.targetIdx <= len(v.users) {
		form.TargetUserID = v.users[f.targetIdx-1].ID
	}
	if f.projectIdx > 0 && f.projectIdx <= len(v.projects) {
		form.ProjectID = v.projects[f.projectIdx-1].ID
	}
	if f.taskIdx > 0 && f.taskIdx <= len(v.taskRefs) {
		form.TaskID = v.taskRefs[f.taskIdx-1].ID
	}

	if errs := form.Validate(); !errs.Valid() {
		f.errs = errs
		return nil
	}

	in := api.ActivityInput{
		Action: strings.TrimSpace(form.Action),
		Type:   form.Type,
		UserID: form.UserID,
	}
	if form.TargetUserID != "" {
		in.TargetUserID = &form.TargetUserID
	}
	if form.ProjectID != "" {
		in.ProjectID = &form.ProjectID
	}
	if form.TaskID != "" {
		in.TaskID = &form.TaskID
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
			activity, err := client.CreateActivity(ctx, in)
			return activitySavedMsg{activity: activity, created: true, err: err}
		}
		activity, err := client.UpdateActivity(ctx, editID, in)
		return activitySavedMsg{activity: activity, err: err}
	}
}

func (v *ActivityListView) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.mode = activityModeList
		client := v.client
		timeout := v.cfg.RequestTimeout()
		id := v.deleteTarget.ID
		return v, func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()
			return activityDeletedMsg{err: client.DeleteActivity(ctx, id)}
		}
	case "n", "N", "esc":
		v.mode = activityModeList
	}
	return v, nil
}

// View renders the view
func (v *ActivityListView) View() string {
	switch v.mode {
	case activityModeForm:
		return v.renderForm()
	case activityModeConfirmDelete:
		return v.renderDeleteConfirm()
	case activityModeDetail:
		return v.renderDetail()
	}
	return v.renderList()
}

func (v *ActivityListView) columns(contentWidth int) []column {
	actionWidth := clamp(contentWidth-74, 20, 46)
	return []column{
		{id: "action", label: "Action", width: actionWidth},
		{id: "type", label: "Type", width: 10},
		{id: "user", label: "User", width: 16},
		{id: "target", label: "Target", width: 16},
		{id: "created", label: "Created", width: 12},
	}
}

func (v *ActivityListView) renderList() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	title := lipgloss.JoinHorizontal(lipgloss.Center,
		s.Title.Render("Activity"),
		s.TitleMuted.Render("  tab: tasks"),
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

func (v *ActivityListView) renderTable(contentWidth int) string {
	s := v.styles
	cols := v.columns(contentWidth)

	rows := []string{headerRow(s, cols, v.sort)}
	switch {
	case v.loading && !v.loaded:
		rows = append(rows, skeletonRows(s, cols, v.pager.PageSize)...)
	case len(v.activities) == 0:
		rows = append(rows, "", s.TitleMuted.Render("No activity found"))
	default:
		for i, a := range v.activities {
			target := "-"
			if a.TargetUser != nil {
				target = a.TargetUser.Name
			}
			row := joinCells(cols, []string{
				a.Action,
				a.Type.Label(),
				a.User.Name,
				target,
				models.FormatDate(a.CreatedAt),
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

func (v *ActivityListView) renderFooter() string {
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

func (v *ActivityListView) renderHelp() string {
	s := v.styles
	return s.Help.Render(fmt.Sprintf(
		"%s search • %s sort • %s page • %s new • %s edit • %s view • %s del • %s refresh • %s quit",
		s.HelpKey.Render("/"),
		s.HelpKey.Render("1-5"),
		s.HelpKey.Render("←/→"),
		s.HelpKey.Render("n"),
		s.HelpKey.Render("e"),
		s.HelpKey.Render("v"),
		s.HelpKey.Render("d"),
		s.HelpKey.Render("r"),
		s.HelpKey.Render("q"),
	))
}

func (v *ActivityListView) renderChoice(focused bool, value string) string {
	if focused {
		return v.styles.Title.Render("◂ " + value + " ▸")
	}
	return v.styles.TitleMuted.Render("  " + value)
}

func (v *ActivityListView) fieldError(field string) string {
	if msg, ok := v.form.errs[field]; ok {
		return v.styles.FieldError.Render(msg)
	}
	return ""
}

func (v *ActivityListView) renderForm() string {
	s := v.styles
	f := &v.form
	contentWidth := styles.ContentWidth(v.width)

	formTitle := "Log Activity"
	if f.editID != "" {
		formTitle = "Edit Activity"
	}

	actionStyle := s.Input
	saveStyle := s.Button
	switch f.focus {
	case activityFocusAction:
		actionStyle = s.InputFocused
	case activityFocusSave:
		saveStyle = s.ButtonFocused
	}

	inputWidth := clamp(contentWidth-6, 20, 50)

	user := "Select user"
	if f.userIdx > 0 && f.userIdx <= len(v.users) {
		user = v.users[f.userIdx-1].Name
	}
	target := "None"
	if f.targetIdx > 0 && f.targetIdx <= len(v.users) {
		target = v.users[f.targetIdx-1].Name
	}
	project := "None"
	if f.projectIdx > 0 && f.projectIdx <= len(v.projects) {
		project = v.projects[f.projectIdx-1].Name
	}
	task := "None"
	if f.taskIdx > 0 && f.taskIdx <= len(v.taskRefs) {
		task = v.taskRefs[f.taskIdx-1].Title
	}

	lines := []string{
		s.Title.Render(formTitle),
		"",
		"Action:",
		actionStyle.Width(inputWidth).Render(f.action.View()),
		v.fieldError("action"),
		"",
		"Type:    " + v.renderChoice(f.focus == activityFocusType, models.ActivityTypes[f.typeIdx].Label()),
		v.fieldError("type"),
		"User:    " + v.renderChoice(f.focus == activityFocusUser, user),
		v.fieldError("user"),
		"Target:  " + v.renderChoice(f.focus == activityFocusTarget, target),
		"Project: " + v.renderChoice(f.focus == activityFocusProject, project),
		"Task:    " + v.renderChoice(f.focus == activityFocusTask, task),
		"",
		saveStyle.Render(" Save "),
	}
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

func (v *ActivityListView) renderDetail() string {
	s := v.styles
	a := v.detailTarget
	contentWidth := styles.ContentWidth(v.width)

	target := "-"
	if a.TargetUser != nil {
		target = a.TargetUser.Name
	}
	project := "-"
	if a.Project != nil {
		project = a.Project.Name
	}
	task := "-"
	if a.Task != nil {
		task = a.Task.Title
	}

	lines := []string{
		s.Title.Render(a.Action),
		"",
		"Type:    " + a.Type.Label(),
		"User:    " + a.User.Name,
		"Target:  " + target,
		"Project: " + project,
		"Task:    " + task,
		"",
		s.TitleMuted.Render("Created " + models.FormatDateTime(a.CreatedAt)),
		s.TitleMuted.Render("Updated " + models.FormatDateTime(a.UpdatedAt)),
		"",
		s.TitleMuted.Render("Press any key to close"),
	}

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		s.Modal.Render(lipgloss.JoinVertical(lipgloss.Left, lines...)),
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *ActivityListView) renderDeleteConfirm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Foreground(styles.Current.Error).Render("Delete Activity?"),
		"",
		s.TitleMuted.Render("This activity entry will be permanently deleted."),
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
