package demoserver

import (
	"fmt"
	"time"
)

// Seed populates the store with sample data so the dashboard has something
// to show in demo mode. Seeding an already-populated store is a no-op.
func Seed(s *Store) error {
	var count int
	if err := s.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	users := []struct{ name, email string }{
		{"Ada Fernsby", "ada@example.com"},
		{"Marcus Webb", "marcus@example.com"},
		{"Yuki Tanaka", "yuki@example.com"},
		{"Priya Nair", "priya@example.com"},
	}
	for _, u := range users {
		if _, err := s.Exec("INSERT INTO users (name, email) VALUES (?, ?)", u.name, u.email); err != nil {
			return err
		}
	}

	projects := []string{"Core Platform", "Mobile App", "Billing"}
	for _, p := range projects {
		if _, err := s.Exec("INSERT INTO projects (name) VALUES (?)", p); err != nil {
			return err
		}
	}

	tags := []struct{ name, color string }{
		{"bug", "#f7768e"},
		{"feature", "#9ece6a"},
		{"docs", "#7aa2f7"},
		{"infra", "#bb9af7"},
		{"urgent", "#e0af68"},
	}
	for _, t := range tags {
		if _, err := s.Exec("INSERT INTO tags (name, color) VALUES (?, ?)", t.name, t.color); err != nil {
			return err
		}
	}

	titles := []string{
		"Set up CI pipeline", "Fix login redirect loop", "Design settings page",
		"Migrate billing webhooks", "Add dark mode toggle", "Write onboarding docs",
		"Investigate slow dashboard query", "Bump API rate limits", "Refactor session storage",
		"Add CSV import", "Fix push notification badge", "Clean up feature flags",
		"Audit dependency licenses", "Ship invoice PDF export", "Tune search ranking",
		"Add keyboard shortcuts", "Fix timezone handling", "Improve empty states",
		"Add audit log retention", "Split monolith deploy", "Handle webhook retries",
		"Polish mobile nav", "Add SSO support", "Document API pagination",
		"Fix flaky signup test", "Cache project list", "Add usage metering",
		"Review error budgets", "Localize date formats", "Archive stale projects",
	}
	statuses := []string{"TODO", "IN_PROGRESS", "DONE"}
	priorities := []string{"LOW", "MEDIUM", "HIGH"}

	base := time.Now().AddDate(0, 0, -len(titles))
	for i, title := range titles {
		created := base.AddDate(0, 0, i)
		projectID := i%len(projects) + 1
		assignee := any(nil)
		if i%4 != 3 {
			assignee = i%len(users) + 1
		}
		dueDate := any(nil)
		if i%3 == 0 {
			dueDate = created.AddDate(0, 0, 14).Format("2006-01-02")
		}

		res, err := s.Exec(`
			INSERT INTO tasks (title, description, status, priority, due_date, project_id, assignee_id, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			title, fmt.Sprintf("Details for %q.", title),
			statuses[i%len(statuses)], priorities[(i/2)%len(priorities)],
			dueDate, projectID, assignee, created, created)
		if err != nil {
			return err
		}
		taskID, err := res.LastInsertId()
		if err != nil {
			return err
		}
		if _, err := s.Exec("INSERT INTO task_tags (task_id, tag_id) VALUES (?, ?)", taskID, i%len(tags)+1); err != nil {
			return err
		}
	}

	actions := []struct {
		action string
		typ    string
	}{
		{"created the task", "CREATED"},
		{"updated the description", "UPDATED"},
		{"assigned the task", "ASSIGNED"},
		{"commented on the task", "COMMENTED"},
		{"deleted an attachment", "DELETED"},
	}
	for i := 0; i < 40; i++ {
		created := base.Add(time.Duration(i) * 18 * time.Hour)
		a := actions[i%len(actions)]
		target := any(nil)
		if a.typ == "ASSIGNED" {
			target = (i+1)%len(users) + 1
		}
		if _, err := s.Exec(`
			INSERT INTO activities (action, type, user_id, target_user_id, project_id, task_id, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			a.action, a.typ, i%len(users)+1, target, i%len(projects)+1, i%len(titles)+1, created, created); err != nil {
			return err
		}
	}

	return nil
}
