// Package demoserver implements the dashboard GraphQL contract on a local
// sqlite database, so the TUI can run without a real backend.
package demoserver

import (
	"database/sql"
	_ "embed"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"taskdash/internal/api"
	"taskdash/internal/models"
)

//go:embed schema.sql
var schema string

// Store wraps the sqlite database backing the demo API.
type Store struct {
	*sql.DB
}

// OpenStore opens (or creates) the demo database at path. Use ":memory:" for
// an ephemeral store.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, err
	}
	// One connection keeps ":memory:" stores coherent; sqlite serializes
	// writes anyway.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db}, nil
}

// ListQuery carries the list-query variables after decoding.
type ListQuery struct {
	Limit     int
	Offset    int
	Search    string
	SortBy    string
	SortOrder string
}

func (q ListQuery) normalized() ListQuery {
	if q.Limit < 1 {
		q.Limit = 10
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	return q
}

// orderClause builds a safe ORDER BY from whitelisted fields. Unknown fields
// fall back to created_at, matching the client's sort proxy behavior.
func orderClause(sortBy, sortOrder string, columns map[string]string) string {
	col, ok := columns[sortBy]
	if !ok {
		col = "created_at"
	}
	dir := "ASC"
	if strings.EqualFold(sortOrder, "DESC") {
		dir = "DESC"
	}
	return fmt.Sprintf(" ORDER BY %s %s, id %s", col, dir, dir)
}

func pageInfo(total, limit, offset int) models.PageInfo {
	if limit < 1 {
		limit = 1
	}
	totalPages := (total + limit - 1) / limit
	return models.PageInfo{
		HasNextPage:     offset+limit < total,
		HasPreviousPage: offset > 0,
		TotalCount:      total,
		CurrentPage:     offset/limit + 1,
		TotalPages:      totalPages,
	}.Clamped()
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

func atoi(id string) (int64, error) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", id)
	}
	return n, nil
}

var taskSortColumns = map[string]string{
	"title":     "title",
	"status":    "status",
	"dueDate":   "due_date",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	// Priority sorts by rank, not alphabetically.
	"priority": "CASE priority WHEN 'LOW' THEN 0 WHEN 'MEDIUM' THEN 1 ELSE 2 END",
}

// ListTasks returns one page of tasks plus server-computed pagination info.
func (s *Store) ListTasks(q ListQuery) ([]models.Task, models.PageInfo, error) {
	q = q.normalized()

	where := ""
	var args []any
	if q.Search != "" {
		where = " WHERE (title LIKE ? OR description LIKE ?)"
		pat := "%" + q.Search + "%"
		args = append(args, pat, pat)
	}

	var total int
	if err := s.QueryRow("SELECT COUNT(*) FROM tasks"+where, args...).Scan(&total); err != nil {
		return nil, models.PageInfo{}, err
	}

	query := `SELECT id, title, description, status, priority, due_date, project_id, assignee_id, created_at, updated_at FROM tasks` +
		where + orderClause(q.SortBy, q.SortOrder, taskSortColumns) + " LIMIT ? OFFSET ?"
	rows, err := s.Query(query, append(args, q.Limit, q.Offset)...)
	if err != nil {
		return nil, models.PageInfo{}, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		t, err := s.scanTask(rows)
		if err != nil {
			return nil, models.PageInfo{}, err
		}
		tasks = append(tasks, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, models.PageInfo{}, err
	}
	return tasks, pageInfo(total, q.Limit, q.Offset), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *Store) scanTask(row rowScanner) (*models.Task, error) {
	var (
		t          models.Task
		id         int64
		projectID  int64
		assigneeID sql.NullInt64
		dueDate    sql.NullString
	)
	if err := row.Scan(&id, &t.Title, &t.Description, &t.Status, &t.Priority,
		&dueDate, &projectID, &assigneeID, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	t.ID = itoa(id)

	if dueDate.Valid && dueDate.String != "" {
		if d, err := time.Parse("2006-01-02", dueDate.String); err == nil {
			t.DueDate = &d
		}
	}

	if err := s.QueryRow("SELECT id, name FROM projects WHERE id = ?", projectID).
		Scan(&projectID, &t.Project.Name); err != nil {
		return nil, err
	}
	t.Project.ID = itoa(projectID)

	if assigneeID.Valid {
		u, err := s.getUser(assigneeID.Int64)
		if err != nil {
			return nil, err
		}
		t.Assignee = u
	}

	tags, err := s.taskTags(id)
	if err != nil {
		return nil, err
	}
	t.Tags = tags
	return &t, nil
}

func (s *Store) getUser(id int64) (*models.User, error) {
	var u models.User
	var uid int64
	if err := s.QueryRow("SELECT id, name, email FROM users WHERE id = ?", id).
		Scan(&uid, &u.Name, &u.Email); err != nil {
		return nil, err
	}
	u.ID = itoa(uid)
	return &u, nil
}

func (s *Store) taskTags(taskID int64) ([]models.Tag, error) {
	rows, err := s.Query(`
		SELECT t.id, t.name, t.color FROM tags t
		JOIN task_tags tt ON t.id = tt.tag_id
		WHERE tt.task_id = ?
		ORDER BY t.id`, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []models.Tag
	for rows.Next() {
		var tag models.Tag
		var id int64
		if err := rows.Scan(&id, &tag.Name, &tag.Color); err != nil {
			return nil, err
		}
		tag.ID = itoa(id)
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

// GetTask retrieves a task with its project, assignee, and tags.
func (s *Store) GetTask(id int64) (*models.Task, error) {
	row := s.QueryRow(`SELECT id, title, description, status, priority, due_date, project_id, assignee_id, created_at, updated_at FROM tasks WHERE id = ?`, id)
	return s.scanTask(row)
}

// CreateTask inserts a task from the mutation input.
func (s *Store) CreateTask(in api.TaskInput) (*models.Task, error) {
	projectID, err := atoi(in.ProjectID)
	if err != nil {
		return nil, err
	}
	var assigneeID any
	if in.AssigneeID != nil {
		assigneeID, err = atoi(*in.AssigneeID)
		if err != nil {
			return nil, err
		}
	}
	var dueDate any
	if in.DueDate != nil {
		dueDate = *in.DueDate
	}

	res, err := s.Exec(`
		INSERT INTO tasks (title, description, status, priority, due_date, project_id, assignee_id)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		in.Title, in.Description, string(in.Status), string(in.Priority), dueDate, projectID, assigneeID)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	if err := s.setTaskTags(id, in.TagIDs); err != nil {
		return nil, err
	}
	return s.GetTask(id)
}

// UpdateTask replaces a task's fields from the mutation input.
func (s *Store) UpdateTask(id int64, in api.TaskInput) (*models.Task, error) {
	projectID, err := atoi(in.ProjectID)
	if err != nil {
		return nil, err
	}
	var assigneeID any
	if in.AssigneeID != nil {
		assigneeID, err = atoi(*in.AssigneeID)
		if err != nil {
			return nil, err
		}
	}
	var dueDate any
	if in.DueDate != nil {
		dueDate = *in.DueDate
	}

	res, err := s.Exec(`
		UPDATE tasks SET title = ?, description = ?, status = ?, priority = ?, due_date = ?,
			project_id = ?, assignee_id = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		in.Title, in.Description, string(in.Status), string(in.Priority), dueDate, projectID, assigneeID, id)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, fmt.Errorf("task %d not found", id)
	}
	if err := s.setTaskTags(id, in.TagIDs); err != nil {
		return nil, err
	}
	return s.GetTask(id)
}

func (s *Store) setTaskTags(taskID int64, tagIDs []string) error {
	if _, err := s.Exec("DELETE FROM task_tags WHERE task_id = ?", taskID); err != nil {
		return err
	}
	for _, raw := range tagIDs {
		tagID, err := atoi(raw)
		if err != nil {
			return err
		}
		if _, err := s.Exec("INSERT OR IGNORE INTO task_tags (task_id, tag_id) VALUES (?, ?)", taskID, tagID); err != nil {
			return err
		}
	}
	return nil
}

// DeleteTask removes a task. Reports whether a row was deleted.
func (s *Store) DeleteTask(id int64) (bool, error) {
	res, err := s.Exec("DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

var activitySortColumns = map[string]string{
	"action":    "action",
	"type":      "type",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

// ListActivities returns one page of the activity feed.
func (s *Store) ListActivities(q ListQuery) ([]models.Activity, models.PageInfo, error) {
	q = q.normalized()

	where := ""
	var args []any
	if q.Search != "" {
		where = " WHERE action LIKE ?"
		args = append(args, "%"+q.Search+"%")
	}

	var total int
	if err := s.QueryRow("SELECT COUNT(*) FROM activities"+where, args...).Scan(&total); err != nil {
		return nil, models.PageInfo{}, err
	}

	query := `SELECT id, action, type, user_id, target_user_id, project_id, task_id, created_at, updated_at FROM activities` +
		where + orderClause(q.SortBy, q.SortOrder, activitySortColumns) + " LIMIT ? OFFSET ?"
	rows, err := s.Query(query, append(args, q.Limit, q.Offset)...)
	if err != nil {
		return nil, models.PageInfo{}, err
	}
	defer rows.Close()

	var activities []models.Activity
	for rows.Next() {
		a, err := s.scanActivity(rows)
		if err != nil {
			return nil, models.PageInfo{}, err
		}
		activities = append(activities, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, models.PageInfo{}, err
	}
	return activities, pageInfo(total, q.Limit, q.Offset), nil
}

func (s *Store) scanActivity(row rowScanner) (*models.Activity, error) {
	var (
		a            models.Activity
		id           int64
		userID       int64
		targetUserID sql.NullInt64
		projectID    sql.NullInt64
		taskID       sql.NullInt64
	)
	if err := row.Scan(&id, &a.Action, &a.Type, &userID, &targetUserID, &projectID, &taskID,
		&a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	a.ID = itoa(id)

	u, err := s.getUser(userID)
	if err != nil {
		return nil, err
	}
	a.User = *u

	if targetUserID.Valid {
		tu, err := s.getUser(targetUserID.Int64)
		if err != nil {
			return nil, err
		}
		a.TargetUser = tu
	}
	if projectID.Valid {
		var p models.Project
		var pid int64
		if err := s.QueryRow("SELECT id, name FROM projects WHERE id = ?", projectID.Int64).
			Scan(&pid, &p.Name); err != nil {
			return nil, err
		}
		p.ID = itoa(pid)
		a.Project = &p
	}
	if taskID.Valid {
		var ref models.TaskRef
		var tid int64
		if err := s.QueryRow("SELECT id, title FROM tasks WHERE id = ?", taskID.Int64).
			Scan(&tid, &ref.Title); err != nil {
			return nil, err
		}
		ref.ID = itoa(tid)
		a.Task = &ref
	}
	return &a, nil
}

// GetActivity retrieves an activity with its references resolved.
func (s *Store) GetActivity(id int64) (*models.Activity, error) {
	row := s.QueryRow(`SELECT id, action, type, user_id, target_user_id, project_id, task_id, created_at, updated_at FROM activities WHERE id = ?`, id)
	return s.scanActivity(row)
}

// CreateActivity inserts an activity from the mutation input.
func (s *Store) CreateActivity(in api.ActivityInput) (*models.Activity, error) {
	userID, err := atoi(in.UserID)
	if err != nil {
		return nil, err
	}
	optional := func(raw *string) (any, error) {
		if raw == nil {
			return nil, nil
		}
		return atoi(*raw)
	}
	targetUserID, err := optional(in.TargetUserID)
	if err != nil {
		return nil, err
	}
	projectID, err := optional(in.ProjectID)
	if err != nil {
		return nil, err
	}
	taskID, err := optional(in.TaskID)
	if err != nil {
		return nil, err
	}

	res, err := s.Exec(`
		INSERT INTO activities (action, type, user_id, target_user_id, project_id, task_id)
		VALUES (?, ?, ?, ?, ?, ?)`,
		in.Action, string(in.Type), userID, targetUserID, projectID, taskID)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return s.GetActivity(id)
}

// UpdateActivity replaces an activity's fields from the mutation input.
func (s *Store) UpdateActivity(id int64, in api.ActivityInput) (*models.Activity, error) {
	userID, err := atoi(in.UserID)
	if err != nil {
		return nil, err
	}
	optional := func(raw *string) (any, error) {
		if raw == nil {
			return nil, nil
		}
		return atoi(*raw)
	}
	targetUserID, err := optional(in.TargetUserID)
	if err != nil {
		return nil, err
	}
	projectID, err := optional(in.ProjectID)
	if err != nil {
		return nil, err
	}
	taskID, err := optional(in.TaskID)
	if err != nil {
		return nil, err
	}

	res, err := s.Exec(`
		UPDATE activities SET action = ?, type = ?, user_id = ?, target_user_id = ?,
			project_id = ?, task_id = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		in.Action, string(in.Type), userID, targetUserID, projectID, taskID, id)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, fmt.Errorf("activity %d not found", id)
	}
	return s.GetActivity(id)
}

// DeleteActivity removes an activity entry. Reports whether a row was deleted.
func (s *Store) DeleteActivity(id int64) (bool, error) {
	res, err := s.Exec("DELETE FROM activities WHERE id = ?", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// ListUsers returns one page of users, filtered by name or email.
func (s *Store) ListUsers(q ListQuery) ([]models.User, models.PageInfo, error) {
	q = q.normalized()

	where := ""
	var args []any
	if q.Search != "" {
		where = " WHERE (name LIKE ? OR email LIKE ?)"
		pat := "%" + q.Search + "%"
		args = append(args, pat, pat)
	}

	var total int
	if err := s.QueryRow("SELECT COUNT(*) FROM users"+where, args...).Scan(&total); err != nil {
		return nil, models.PageInfo{}, err
	}

	rows, err := s.Query("SELECT id, name, email FROM users"+where+" ORDER BY name, id LIMIT ? OFFSET ?",
		append(args, q.Limit, q.Offset)...)
	if err != nil {
		return nil, models.PageInfo{}, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		var id int64
		if err := rows.Scan(&id, &u.Name, &u.Email); err != nil {
			return nil, models.PageInfo{}, err
		}
		u.ID = itoa(id)
		users = append(users, u)
	}
	return users, pageInfo(total, q.Limit, q.Offset), rows.Err()
}

// ListProjects returns one page of projects, filtered by name.
func (s *Store) ListProjects(q ListQuery) ([]models.Project, models.PageInfo, error) {
	q = q.normalized()

	where := ""
	var args []any
	if q.Search != "" {
		where = " WHERE name LIKE ?"
		args = append(args, "%"+q.Search+"%")
	}

	var total int
	if err := s.QueryRow("SELECT COUNT(*) FROM projects"+where, args...).Scan(&total); err != nil {
		return nil, models.PageInfo{}, err
	}

	rows, err := s.Query("SELECT id, name FROM projects"+where+" ORDER BY name, id LIMIT ? OFFSET ?",
		append(args, q.Limit, q.Offset)...)
	if err != nil {
		return nil, models.PageInfo{}, err
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		var p models.Project
		var id int64
		if err := rows.Scan(&id, &p.Name); err != nil {
			return nil, models.PageInfo{}, err
		}
		p.ID = itoa(id)
		projects = append(projects, p)
	}
	return projects, pageInfo(total, q.Limit, q.Offset), rows.Err()
}

// ListTags returns one page of tags, filtered by name.
func (s *Store) ListTags(q ListQuery) ([]models.Tag, models.PageInfo, error) {
	q = q.normalized()

	where := ""
	var args []any
	if q.Search != "" {
		where = " WHERE name LIKE ?"
		args = append(args, "%"+q.Search+"%")
	}

	var total int
	if err := s.QueryRow("SELECT COUNT(*) FROM tags"+where, args...).Scan(&total); err != nil {
		return nil, models.PageInfo{}, err
	}

	rows, err := s.Query("SELECT id, name, color FROM tags"+where+" ORDER BY name, id LIMIT ? OFFSET ?",
		append(args, q.Limit, q.Offset)...)
	if err != nil {
		return nil, models.PageInfo{}, err
	}
	defer rows.Close()

	var tags []models.Tag
	for rows.Next() {
		var tag models.Tag
		var id int64
		if err := rows.Scan(&id, &tag.Name, &tag.Color); err != nil {
			return nil, models.PageInfo{}, err
		}
		tag.ID = itoa(id)
		tags = append(tags, tag)
	}
	return tags, pageInfo(total, q.Limit, q.Offset), rows.Err()
}
