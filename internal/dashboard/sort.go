package dashboard

// SortOrder is the direction sent to the API.
type SortOrder string

const (
	SortAsc  SortOrder = "ASC"
	SortDesc SortOrder = "DESC"
)

// DefaultSortField is the fallback backend field for columns the API cannot
// sort by directly. Columns showing joined entities (user, project) all fall
// back to it, so sorting by those columns orders by creation time instead.
const DefaultSortField = "createdAt"

// ColumnMap translates a UI column identifier into a backend sortable field.
type ColumnMap map[string]string

// Field returns the backend field for column, or DefaultSortField when the
// column has no direct backend counterpart.
func (m ColumnMap) Field(column string) string {
	if f, ok := m[column]; ok && f != "" {
		return f
	}
	return DefaultSortField
}

// TaskColumns maps task table columns to backend fields.
var TaskColumns = ColumnMap{
	"title":    "title",
	"status":   "status",
	"priority": "priority",
	"dueDate":  "dueDate",
	"project":  "", // joined entity, sorted by createdAt proxy
	"assignee": "", // joined entity, sorted by createdAt proxy
	"created":  "createdAt",
}

// ActivityColumns maps activity table columns to backend fields.
var ActivityColumns = ColumnMap{
	"action":  "action",
	"type":    "type",
	"user":    "", // joined entity, sorted by createdAt proxy
	"target":  "", // joined entity, sorted by createdAt proxy
	"created": "createdAt",
}

// SortState tracks the active sort column and order for one list view.
type SortState struct {
	Column string
	Order  SortOrder
}

// Toggle applies a header click: the active column flips ASC and DESC, any
// other column becomes active and resets to ASC.
func (s *SortState) Toggle(column string) {
	if s.Column == column {
		if s.Order == SortAsc {
			s.Order = SortDesc
		} else {
			s.Order = SortAsc
		}
		return
	}
	s.Column = column
	s.Order = SortAsc
}

// Indicator returns the header marker for column: an arrow when it is the
// active sort column, empty otherwise.
func (s SortState) Indicator(column string) string {
	if s.Column != column {
		return ""
	}
	if s.Order == SortDesc {
		return " ↓"
	}
	return " ↑"
}
