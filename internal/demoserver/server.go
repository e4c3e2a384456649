package demoserver

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"regexp"

	"taskdash/internal/api"
	"taskdash/internal/models"
)

// Server dispatches GraphQL operations to the store. It is not a general
// GraphQL executor; it recognizes the named operations the dashboard client
// sends and nothing else.
type Server struct {
	store *Store
}

// New creates a server over the given store.
func New(store *Store) *Server {
	return &Server{store: store}
}

// Handler returns the HTTP handler serving POST /graphql.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/graphql", s.handleGraphQL)
	return mux
}

// Start serves the demo API on a local ephemeral port and returns its
// endpoint URL plus a shutdown function.
func Start(store *Store) (string, func(), error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", nil, err
	}
	srv := &http.Server{Handler: New(store).Handler()}
	go srv.Serve(ln)

	shutdown := func() {
		srv.Close()
		store.Close()
	}
	return fmt.Sprintf("http://%s/graphql", ln.Addr()), shutdown, nil
}

type gqlRequest struct {
	Query     string          `json:"query"`
	Variables json.RawMessage `json:"variables"`
}

// operationName extracts the name of a named query/mutation.
var operationName = regexp.MustCompile(`^\s*(?:query|mutation)\s+([A-Za-z0-9_]+)`)

func (s *Server) handleGraphQL(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req gqlRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrors(w, "malformed request body")
		return
	}

	m := operationName.FindStringSubmatch(req.Query)
	if m == nil {
		writeErrors(w, "unnamed operations are not supported")
		return
	}

	switch m[1] {
	case "DashboardActivities":
		s.list(w, req.Variables, "dashboardActivities", func(q ListQuery) (any, models.PageInfo, error) {
			items, info, err := s.store.ListActivities(q)
			return items, info, err
		})
	case "DashboardTasks":
		s.list(w, req.Variables, "dashboardTasks", func(q ListQuery) (any, models.PageInfo, error) {
			items, info, err := s.store.ListTasks(q)
			return items, info, err
		})
	case "Users":
		s.list(w, req.Variables, "users", func(q ListQuery) (any, models.PageInfo, error) {
			items, info, err := s.store.ListUsers(q)
			return items, info, err
		})
	case "DashboardProjects":
		s.list(w, req.Variables, "dashboardProjects", func(q ListQuery) (any, models.PageInfo, error) {
			items, info, err := s.store.ListProjects(q)
			return items, info, err
		})
	case "DashboardTags":
		s.list(w, req.Variables, "dashboardTags", func(q ListQuery) (any, models.PageInfo, error) {
			items, info, err := s.store.ListTags(q)
			return items, info, err
		})
	case "CreateTask":
		var vars struct {
			Input api.TaskInput `json:"input"`
		}
		s.mutate(w, req.Variables, &vars, "createTask", func() (any, error) {
			return s.store.CreateTask(vars.Input)
		})
	case "UpdateTask":
		var vars struct {
			ID    string        `json:"id"`
			Input api.TaskInput `json:"input"`
		}
		s.mutate(w, req.Variables, &vars, "updateTask", func() (any, error) {
			id, err := atoi(vars.ID)
			if err != nil {
				return nil, err
			}
			return s.store.UpdateTask(id, vars.Input)
		})
	case "DeleteTask":
		var vars struct {
			ID string `json:"id"`
		}
		s.mutate(w, req.Variables, &vars, "deleteTask", func() (any, error) {
			id, err := atoi(vars.ID)
			if err != nil {
				return nil, err
			}
			ok, err := s.store.DeleteTask(id)
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, fmt.Errorf("task %s not found", vars.ID)
			}
			return true, nil
		})
	case "CreateActivity":
		var vars struct {
			Input api.ActivityInput `json:"input"`
		}
		s.mutate(w, req.Variables, &vars, "createActivity", func() (any, error) {
			return s.store.CreateActivity(vars.Input)
		})
	case "UpdateActivity":
		var vars struct {
			ID    string            `json:"id"`
			Input api.ActivityInput `json:"input"`
		}
		s.mutate(w, req.Variables, &vars, "updateActivity", func() (any, error) {
			id, err := atoi(vars.ID)
			if err != nil {
				return nil, err
			}
			return s.store.UpdateActivity(id, vars.Input)
		})
	case "DeleteActivity":
		var vars struct {
			ID string `json:"id"`
		}
		s.mutate(w, req.Variables, &vars, "deleteActivity", func() (any, error) {
			id, err := atoi(vars.ID)
			if err != nil {
				return nil, err
			}
			ok, err := s.store.DeleteActivity(id)
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, fmt.Errorf("activity %s not found", vars.ID)
			}
			return true, nil
		})
	default:
		writeErrors(w, fmt.Sprintf("unknown operation %q", m[1]))
	}
}

type listPayload struct {
	Items          any             `json:"items"`
	PaginationInfo models.PageInfo `json:"paginationInfo"`
}

func (s *Server) list(w http.ResponseWriter, rawVars json.RawMessage, field string, fn func(ListQuery) (any, models.PageInfo, error)) {
	var q ListQuery
	if len(rawVars) > 0 {
		var vars struct {
			Limit     int    `json:"limit"`
			Offset    int    `json:"offset"`
			Search    string `json:"search"`
			SortBy    string `json:"sortBy"`
			SortOrder string `json:"sortOrder"`
		}
		if err := json.Unmarshal(rawVars, &vars); err != nil {
			writeErrors(w, "malformed variables")
			return
		}
		q = ListQuery(vars)
	}

	items, info, err := fn(q)
	if err != nil {
		writeErrors(w, err.Error())
		return
	}
	writeData(w, field, listPayload{Items: items, PaginationInfo: info})
}

func (s *Server) mutate(w http.ResponseWriter, rawVars json.RawMessage, vars any, field string, fn func() (any, error)) {
	if err := json.Unmarshal(rawVars, vars); err != nil {
		writeErrors(w, "malformed variables")
		return
	}
	result, err := fn()
	if err != nil {
		writeErrors(w, err.Error())
		return
	}
	writeData(w, field, result)
}

func writeData(w http.ResponseWriter, field string, payload any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"data": map[string]any{field: payload},
	})
}

func writeErrors(w http.ResponseWriter, msgs ...string) {
	errs := make([]map[string]string, len(msgs))
	for i, m := range msgs {
		errs[i] = map[string]string{"message": m}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"errors": errs})
}
