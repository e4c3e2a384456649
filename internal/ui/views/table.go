package views

import (
	"fmt"
	"strings"

	"taskdash/internal/dashboard"
	"taskdash/internal/ui/styles"
)

// column describes one table column. id is the sort identifier the column
// header toggles; an empty id means the column is not directly sortable and
// falls back to the default sort field.
type column struct {
	id    string
	label string
	width int
}

const columnGap = "  "

// cell truncates or pads text to exactly width cells.
func cell(text string, width int) string {
	r := []rune(text)
	if len(r) > width {
		if width < 1 {
			return ""
		}
		return string(r[:width-1]) + "…"
	}
	return text + strings.Repeat(" ", width-len(r))
}

// joinCells lays out one row of values against the column widths.
func joinCells(cols []column, values []string) string {
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = cell(values[i], c.width)
	}
	return strings.Join(parts, columnGap)
}

// headerRow renders the column headers, each prefixed with the number key
// that sorts by it and suffixed with the active sort arrow.
func headerRow(s *styles.Styles, cols []column, sort dashboard.SortState) string {
	parts := make([]string, len(cols))
	for i, c := range cols {
		label := fmt.Sprintf("%d %s%s", i+1, c.label, sort.Indicator(c.id))
		parts[i] = cell(label, c.width)
	}
	return s.TableHeader.Render(strings.Join(parts, columnGap))
}

// skeletonRows renders placeholder rows shown while the first page loads.
func skeletonRows(s *styles.Styles, cols []column, n int) []string {
	parts := make([]string, len(cols))
	for i, c := range cols {
		w := c.width - 2
		if w < 1 {
			w = 1
		}
		parts[i] = cell(strings.Repeat("░", w), c.width)
	}
	row := s.Skeleton.Render(strings.Join(parts, columnGap))

	rows := make([]string, n)
	for i := range rows {
		rows[i] = row
	}
	return rows
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// mod wraps v into [0, n) for cycling through option lists.
func mod(v, n int) int {
	return ((v % n) + n) % n
}
