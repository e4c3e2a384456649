package api

import (
	"context"

	"taskdash/internal/models"
)

// ListParams are the variables every dashboard list query accepts.
type ListParams struct {
	Limit     int
	Offset    int
	Search    string
	SortBy    string
	SortOrder string
}

func (p ListParams) variables() map[string]any {
	vars := map[string]any{
		"limit":  p.Limit,
		"offset": p.Offset,
	}
	if p.Search != "" {
		vars["search"] = p.Search
	}
	if p.SortBy != "" {
		vars["sortBy"] = p.SortBy
		vars["sortOrder"] = p.SortOrder
	}
	return vars
}

const activitiesQuery = `query DashboardActivities($limit: Int!, $offset: Int!, $search: String, $sortBy: String, $sortOrder: String) {
  dashboardActivities(limit: $limit, offset: $offset, search: $search, sortBy: $sortBy, sortOrder: $sortOrder) {
    items {
      id action type createdAt updatedAt
      user { id name }
      targetUser { id name }
      project { id name }
      task { id title }
    }
    paginationInfo { hasNextPage hasPreviousPage totalCount currentPage totalPages }
  }
}`

// DashboardActivities fetches one page of the activity feed.
func (c *Client) DashboardActivities(ctx context.Context, p ListParams) ([]models.Activity, models.PageInfo, error) {
	var out struct {
		DashboardActivities struct {
			Items          []models.Activity `json:"items"`
			PaginationInfo models.PageInfo   `json:"paginationInfo"`
		} `json:"dashboardActivities"`
	}
	if err := c.do(ctx, activitiesQuery, p.variables(), &out); err != nil {
		return nil, models.PageInfo{}, err
	}
	return out.DashboardActivities.Items, out.DashboardActivities.PaginationInfo, nil
}

const tasksQuery = `query DashboardTasks($limit: Int!, $offset: Int!, $search: String, $sortBy: String, $sortOrder: String) {
  dashboardTasks(limit: $limit, offset: $offset, search: $search, sortBy: $sortBy, sortOrder: $sortOrder) {
    items {
      id title description status priority dueDate createdAt updatedAt
      project { id name }
      assignee { id name }
      tags { id name color }
    }
    paginationInfo { hasNextPage hasPreviousPage totalCount currentPage totalPages }
  }
}`

// DashboardTasks fetches one page of the task table.
func (c *Client) DashboardTasks(ctx context.Context, p ListParams) ([]models.Task, models.PageInfo, error) {
	var out struct {
		DashboardTasks struct {
			Items          []models.Task   `json:"items"`
			PaginationInfo models.PageInfo `json:"paginationInfo"`
		} `json:"dashboardTasks"`
	}
	if err := c.do(ctx, tasksQuery, p.variables(), &out); err != nil {
		return nil, models.PageInfo{}, err
	}
	return out.DashboardTasks.Items, out.DashboardTasks.PaginationInfo, nil
}

const usersQuery = `query Users($limit: Int!, $offset: Int!, $search: String) {
  users(limit: $limit, offset: $offset, search: $search) {
    items { id name email }
    paginationInfo { hasNextPage hasPreviousPage totalCount currentPage totalPages }
  }
}`

// Users fetches one page of workspace members.
func (c *Client) Users(ctx context.Context, p ListParams) ([]models.User, models.PageInfo, error) {
	var out struct {
		Users struct {
			Items          []models.User   `json:"items"`
			PaginationInfo models.PageInfo `json:"paginationInfo"`
		} `json:"users"`
	}
	if err := c.do(ctx, usersQuery, p.variables(), &out); err != nil {
		return nil, models.PageInfo{}, err
	}
	return out.Users.Items, out.Users.PaginationInfo, nil
}

const projectsQuery = `query DashboardProjects($limit: Int!, $offset: Int!, $search: String) {
  dashboardProjects(limit: $limit, offset: $offset, search: $search) {
    items { id name }
    paginationInfo { hasNextPage hasPreviousPage totalCount currentPage totalPages }
  }
}`

// DashboardProjects fetches one page of projects.
func (c *Client) DashboardProjects(ctx context.Context, p ListParams) ([]models.Project, models.PageInfo, error) {
	var out struct {
		DashboardProjects struct {
			Items          []models.Project `json:"items"`
			PaginationInfo models.PageInfo  `json:"paginationInfo"`
		} `json:"dashboardProjects"`
	}
	if err := c.do(ctx, projectsQuery, p.variables(), &out); err != nil {
		return nil, models.PageInfo{}, err
	}
	return out.DashboardProjects.Items, out.DashboardProjects.PaginationInfo, nil
}

const tagsQuery = `query DashboardTags($limit: Int!, $offset: Int!, $search: String) {
  dashboardTags(limit: $limit, offset: $offset, search: $search) {
    items { id name color }
    paginationInfo { hasNextPage hasPreviousPage totalCount currentPage totalPages }
  }
}`

// DashboardTags fetches one page of tags.
func (c *Client) DashboardTags(ctx context.Context, p ListParams) ([]models.Tag, models.PageInfo, error) {
	var out struct {
		DashboardTags struct {
			Items          []models.Tag    `json:"items"`
			PaginationInfo models.PageInfo `json:"paginationInfo"`
		} `json:"dashboardTags"`
	}
	if err := c.do(ctx, tagsQuery, p.variables(), &out); err != nil {
		return nil, models.PageInfo{}, err
	}
	return out.DashboardTags.Items, out.DashboardTags.PaginationInfo, nil
}
