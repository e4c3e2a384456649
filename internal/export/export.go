// Package export writes the full task table or activity feed to CSV or XLSX
// files by paging through the API.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"taskdash/internal/api"
	"taskdash/internal/models"
)

// fetchPageSize is the page size used when draining the API.
const fetchPageSize = 100

// FetchAllTasks pages through the task list in creation order until the
// server reports no further pages.
func FetchAllTasks(ctx context.Context, c *api.Client, search string) ([]models.Task, error) {
	var all []models.Task
	offset := 0
	for {
		tasks, info, err := c.DashboardTasks(ctx, api.ListParams{
			Limit:     fetchPageSize,
			Offset:    offset,
			Search:    search,
			SortBy:    "createdAt",
			SortOrder: "ASC",
		})
		if err != nil {
			return nil, err
		}
		all = append(all, tasks...)
		if !info.HasNextPage || len(tasks) == 0 {
			return all, nil
		}
		offset += fetchPageSize
	}
}

// FetchAllActivities pages through the activity feed in creation order.
func FetchAllActivities(ctx context.Context, c *api.Client, search string) ([]models.Activity, error) {
	var all []models.Activity
	offset := 0
	for {
		activities, info, err := c.DashboardActivities(ctx, api.ListParams{
			Limit:     fetchPageSize,
			Offset:    offset,
			Search:    search,
			SortBy:    "createdAt",
			SortOrder: "ASC",
		})
		if err != nil {
			return nil, err
		}
		all = append(all, activities...)
		if !info.HasNextPage || len(activities) == 0 {
			return all, nil
		}
		offset += fetchPageSize
	}
}

var taskHeaders = []string{
	"#", "Title", "Status", "Priority", "Due Date", "Project", "Assignee", "Tags", "Created",
}

func taskRow(i int, t models.Task) []string {
	due := ""
	if t.DueDate != nil {
		due = t.DueDate.Format("2006-01-02")
	}
	assignee := ""
	if t.Assignee != nil {
		assignee = t.Assignee.Name
	}
	tags := make([]string, len(t.Tags))
	for j, tag := range t.Tags {
		tags[j] = tag.Name
	}
	return []string{
		fmt.Sprintf("%d", i+1),
		t.Title,
		t.Status.Label(),
		t.Priority.Label(),
		due,
		t.Project.Name,
		assignee,
		strings.Join(tags, ", "),
		t.CreatedAt.Format("2006-01-02"),
	}
}

var activityHeaders = []string{
	"#", "Action", "Type", "User", "Target User", "Project", "Task", "Created",
}

func activityRow(i int, a models.Activity) []string {
	target := ""
	if a.TargetUser != nil {
		target = a.TargetUser.Name
	}
	project := ""
	if a.Project != nil {
		project = a.Project.Name
	}
	task := ""
	if a.Task != nil {
		task = a.Task.Title
	}
	return []string{
		fmt.Sprintf("%d", i+1),
		a.Action,
		a.Type.Label(),
		a.User.Name,
		target,
		project,
		task,
		a.CreatedAt.Format("2006-01-02 15:04"),
	}
}

// TasksCSV writes the task table to path.
func TasksCSV(path string, tasks []models.Task) error {
	rows := make([][]string, len(tasks))
	for i, t := range tasks {
		rows[i] = taskRow(i, t)
	}
	return writeCSV(path, taskHeaders, rows)
}

// ActivitiesCSV writes the activity feed to path.
func ActivitiesCSV(path string, activities []models.Activity) error {
	rows := make([][]string, len(activities))
	for i, a := range activities {
		rows[i] = activityRow(i, a)
	}
	return writeCSV(path, activityHeaders, rows)
}

func writeCSV(path string, headers []string, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(headers); err != nil {
		return err
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// TasksXLSX writes the task table to an xlsx workbook at path.
func TasksXLSX(path string, tasks []models.Task) error {
	rows := make([][]string, len(tasks))
	for i, t := range tasks {
		rows[i] = taskRow(i, t)
	}
	return writeXLSX(path, "Tasks", taskHeaders, rows)
}

// ActivitiesXLSX writes the activity feed to an xlsx workbook at path.
func ActivitiesXLSX(path string, activities []models.Activity) error {
	rows := make([][]string, len(activities))
	for i, a := range activities {
		rows[i] = activityRow(i, a)
	}
	return writeXLSX(path, "Activity", activityHeaders, rows)
}

func writeXLSX(path, sheetName string, headers []string, rows [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return err
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#7aa2f7"}, Pattern: 1},
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF"},
	})

	for col, header := range headers {
		cell := cellName(col+1, 1)
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for i, row := range rows {
		for col, value := range row {
			f.SetCellValue(sheetName, cellName(col+1, i+2), value)
		}
	}

	f.SetColWidth(sheetName, "A", "A", 5)
	f.SetColWidth(sheetName, "B", "B", 40)
	f.SetColWidth(sheetName, "C", columnLetter(len(headers)), 16)

	f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

func cellName(col, row int) string {
	return fmt.Sprintf("%s%d", columnLetter(col), row)
}

func columnLetter(col int) string {
	result := ""
	for col > 0 {
		col--
		result = string(rune('A'+col%26)) + result
		col /= 26
	}
	return result
}

// DefaultFileName builds a timestamped output name like tasks_2026-08-29.csv.
func DefaultFileName(entity, format string) string {
	return fmt.Sprintf("%s_%s.%s", entity, time.Now().Format("2006-01-02"), format)
}
